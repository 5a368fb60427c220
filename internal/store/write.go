package store

import (
	"context"
	"fmt"

	"github.com/roach88/jobdash/internal/listing"
)

// InsertListings appends records to the listings table in one transaction.
// Either every record is written or none is.
func (s *Store) InsertListings(ctx context.Context, records []listing.RawRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert listings: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listings (title, salary, location, platform)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("insert listings: prepare: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Title, r.Salary, r.Location, r.Platform); err != nil {
			return fmt.Errorf("insert listings: row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert listings: commit: %w", err)
	}
	return nil
}
