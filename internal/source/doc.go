// Package source loads raw listing records.
//
// A source spec names where the records come from:
//
//	./data/listings.csv            CSV file
//	https://host/listings.csv      CSV over HTTP(S)
//	sqlite:./data/listings.db      listings table in a SQLite database
//
// Every failure is reported as a *LoadError and no partial record set is
// returned.
package source
