// Package listing defines the job-listing record and the shapes queries
// return.
//
// A RawRecord is one row of the tabular source. A Record is that row after
// enrichment: classified, salary-normalized and located. Records are never
// mutated once built; filtered views are new slices over the same values.
//
// Key constraints:
//   - Empty Level/Domain means unmatched; aggregation names that group "Other"
//   - AvgSalary (histogram path) and BandAvg (band path) are independent
//   - Index is the record's position in the source and the final tie-break
package listing
