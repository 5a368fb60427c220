// Package salary turns free-text salary expressions into comparable numbers.
//
// Two parsing paths exist and they are NOT interchangeable:
//
//	ParseAverage  - marker-agnostic, feeds the salary histograms and the
//	                outlier trim. Any text with digits on each side of a
//	                single "-" split yields an average, whatever the period.
//	Classify      - annual-only, feeds the salary band chart. Text without
//	                the "a year" marker lands in BandOther with no average.
//
// The same input can therefore produce an average on one path and none on the
// other ("$25-$30 an hour"). Which records appear in which chart depends on
// this split, so the two operations stay separate.
package salary
