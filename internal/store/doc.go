// Package store keeps job listings in a SQLite table.
//
// The table is one of the sources the dashboard reads records from. Rows come
// back ordered by rowid, which is the order they were inserted in and the order
// a CSV export of the table would have.
//
// Writers open the file in WAL mode with synchronous=NORMAL and a five second
// busy timeout. Readers open it read-only and never touch the schema.
package store
