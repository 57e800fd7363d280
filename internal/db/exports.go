package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/j-veylop/aimkt-usage-tui/internal/models"
)

// InsertExport records an export attempt. An empty ID is replaced by a
// new UUID and a zero CreatedAt by the current time.
func (db *DB) InsertExport(rec *models.ExportRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO export_log (id, kind, target, ok, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := db.ExecContext(context.Background(), query,
		rec.ID,
		rec.Kind,
		nullString(rec.Target),
		rec.OK,
		nullString(rec.Error),
		rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert export record: %w", err)
	}
	return nil
}

// RecentExports returns the most recent export records, newest first.
func (db *DB) RecentExports(limit int) ([]models.ExportRecord, error) {
	query := `
		SELECT id, kind, target, ok, error, created_at
		FROM export_log
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`
	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query export log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.ExportRecord
	for rows.Next() {
		var rec models.ExportRecord
		var target, errStr sql.NullString
		var created string

		if err := rows.Scan(&rec.ID, &rec.Kind, &target, &rec.OK, &errStr, &created); err != nil {
			return nil, fmt.Errorf("failed to scan export record: %w", err)
		}
		rec.Target = target.String
		rec.Error = errStr.String
		rec.CreatedAt = parseTime(created)
		records = append(records, rec)
	}

	return records, rows.Err()
}

func parseTime(s string) time.Time {
	for _, layout := range []string{timeLayout, time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}
