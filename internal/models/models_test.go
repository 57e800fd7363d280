package models

import "testing"

func TestExportRecord_Status(t *testing.T) {
	tests := []struct {
		name string
		rec  ExportRecord
		want string
	}{
		{"OK", ExportRecord{OK: true}, "ok"},
		{"FailedWithError", ExportRecord{Error: "permission denied"}, "permission denied"},
		{"FailedNoError", ExportRecord{}, "failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}
