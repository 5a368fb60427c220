// Package taxonomy holds the ordered keyword tables that classify job titles.
//
// Two independent taxonomies exist: level (Junior/Senior/Lead) and domain
// (Marketing, Financial, Technical, ...). Each is an ordered list of entries,
// each entry an ordered list of keywords. Classification walks entries in
// order and keywords in order, and the first whole-word hit wins. Table order
// is the tie-break for titles that match several categories, so loaders keep
// the order of the source file exactly.
//
// Taxonomies load from YAML or CUE:
//
//	level:
//	  Junior Data Analysts: [junior, jr, entry level]
//	  Senior Data Analysts: [senior, sr]
//	domain:
//	  BI Data Analysts: [business intelligence]
//
// Default returns the tables the dashboard ships with.
package taxonomy
