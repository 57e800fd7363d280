// Package models defines records persisted by the local store.
package models

import "time"

// ExportRecord is one entry of the export log.
type ExportRecord struct {
	CreatedAt time.Time
	ID        string
	Kind      string
	Target    string
	Error     string
	OK        bool
}

// Status returns "ok" or the error text.
func (r ExportRecord) Status() string {
	if r.OK {
		return "ok"
	}
	if r.Error == "" {
		return "failed"
	}
	return r.Error
}
