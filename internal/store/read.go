package store

import (
	"context"
	"fmt"

	"github.com/roach88/jobdash/internal/listing"
)

// ReadListings returns every listing in insertion (rowid) order.
//
// Returns an empty slice (not nil) if the table is empty. NULL columns read
// as the column defaults of schema.sql, so a NULL salary is the "Not
// specified" sentinel rather than a scan error.
func (s *Store) ReadListings(ctx context.Context) ([]listing.RawRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			COALESCE(title, ''),
			COALESCE(salary, 'Not specified'),
			COALESCE(location, ''),
			COALESCE(platform, '')
		FROM listings
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	out := []listing.RawRecord{}
	for rows.Next() {
		var r listing.RawRecord
		if err := rows.Scan(&r.Title, &r.Salary, &r.Location, &r.Platform); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}

	return out, nil
}

// CountListings returns the number of rows in the listings table.
func (s *Store) CountListings(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return n, nil
}
