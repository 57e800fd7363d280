package models

import "time"

// GenerationRecord summarizes one snapshot regeneration.
type GenerationRecord struct {
	CreatedAt time.Time
	TimeRange string
	Legends   string
	Trigger   string
	ID        int64
	Seed      int64
	Calls     int
	ErrRate   float64
	Spend     float64
	P95       int
}
