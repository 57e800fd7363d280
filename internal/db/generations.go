package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/j-veylop/aimkt-usage-tui/internal/models"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// InsertGeneration logs a regenerated snapshot.
func (db *DB) InsertGeneration(snap *usage.Snapshot, trigger string) (*models.GenerationRecord, error) {
	rec := &models.GenerationRecord{
		CreatedAt: time.Now(),
		TimeRange: snap.Range.String(),
		Legends:   strings.Join(snap.Legends.ActiveNames(), ","),
		Trigger:   trigger,
		Seed:      snap.Seed,
		Calls:     snap.KPIs.Calls,
		ErrRate:   snap.KPIs.ErrRate,
		Spend:     snap.KPIs.Spend,
		P95:       snap.KPIs.LatencyP95,
	}

	query := `
		INSERT INTO generation_log (
			time_range, legends, reason, seed, calls, err_rate, spend, p95_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := db.ExecContext(context.Background(), query,
		rec.TimeRange,
		nullString(rec.Legends),
		nullString(rec.Trigger),
		rec.Seed,
		rec.Calls,
		rec.ErrRate,
		rec.Spend,
		rec.P95,
		rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert generation: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		rec.ID = id
	}
	return rec, nil
}

// RecentGenerations returns the latest generation records, newest first.
func (db *DB) RecentGenerations(limit int) ([]models.GenerationRecord, error) {
	query := `
		SELECT id, time_range, COALESCE(legends, ''), COALESCE(reason, ''),
			   seed, calls, err_rate, spend, p95_ms, created_at
		FROM generation_log
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query generations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.GenerationRecord
	for rows.Next() {
		var rec models.GenerationRecord
		var created string
		err := rows.Scan(
			&rec.ID,
			&rec.TimeRange,
			&rec.Legends,
			&rec.Trigger,
			&rec.Seed,
			&rec.Calls,
			&rec.ErrRate,
			&rec.Spend,
			&rec.P95,
			&created,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		rec.CreatedAt = parseTime(created)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// PruneGenerations keeps only the newest keep records.
func (db *DB) PruneGenerations(keep int) (int64, error) {
	query := `
		DELETE FROM generation_log
		WHERE id NOT IN (SELECT id FROM generation_log ORDER BY id DESC LIMIT ?)
	`
	result, err := db.ExecContext(context.Background(), query, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune generations: %w", err)
	}
	return result.RowsAffected()
}
