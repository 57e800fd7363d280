package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// SaveAlerts stores the alert thresholds, replacing any previous value.
func (db *DB) SaveAlerts(a usage.AlertThresholds) error {
	query := `
		INSERT INTO alert_thresholds (id, err_rate, p95_ms, spend, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			err_rate = excluded.err_rate,
			p95_ms = excluded.p95_ms,
			spend = excluded.spend,
			updated_at = excluded.updated_at
	`
	_, err := db.ExecContext(context.Background(), query,
		a.ErrRate, a.P95, a.Spend, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to save alert thresholds: %w", err)
	}
	return nil
}

// LoadAlerts returns the stored thresholds. ok is false when none have
// been saved yet, in which case the defaults are returned.
func (db *DB) LoadAlerts() (a usage.AlertThresholds, ok bool, err error) {
	query := `SELECT err_rate, p95_ms, spend FROM alert_thresholds WHERE id = 1`
	err = db.QueryRowContext(context.Background(), query).Scan(&a.ErrRate, &a.P95, &a.Spend)
	if errors.Is(err, sql.ErrNoRows) {
		return usage.DefaultAlertThresholds(), false, nil
	}
	if err != nil {
		return usage.DefaultAlertThresholds(), false, fmt.Errorf("failed to load alert thresholds: %w", err)
	}
	return a, true, nil
}
