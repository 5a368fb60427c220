// Package pipeline builds the processed snapshot the dashboard reads.
//
// Build runs once per source read:
//
//  1. Enrich - classify each title against the level and domain taxonomies,
//     parse both salary paths, extract the state code.
//  2. Trim - compute IQR fences over the histogram-path averages of exactly
//     the records being built and keep the records inside them.
//  3. Seal - digest the enriched and trimmed record sets and derive the
//     snapshot ID from the digest.
//
// A Snapshot has no mutating methods. It never shares state with another
// build, so two builds over identical input compare equal field by field.
package pipeline
