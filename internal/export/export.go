// Package export serializes the current usage snapshot and filter state
// to JSON, CSV and an equivalent API command line.
package export

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// File names of the exported documents.
const (
	KPIsFileName   = "usage_kpis.json"
	TablesFileName = "usage_tables.csv"
)

// Endpoint is the usage API the command string targets.
const Endpoint = "https://api.marketplace.internal/usage"

// KPIsJSON renders the KPI set as indented JSON.
func KPIsJSON(k usage.KPISet) ([]byte, error) {
	data, err := json.MarshalIndent(k, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode KPIs: %w", err)
	}
	return data, nil
}

// TablesCSV renders the spend table, the quota table and the breakdown
// table for dim as blank-line separated sections.
func TablesCSV(snap *usage.Snapshot, dim usage.Dimension) string {
	var lines []string

	lines = append(lines, "Spend Table", "Provider/Route,Calls,Tokens (in/out),Est. spend")
	for _, r := range snap.Spend {
		lines = append(lines, strings.Join([]string{
			quote(r.Label()),
			strconv.Itoa(r.Calls),
			quote(usage.FormatTokenPair(r.TokensIn, r.TokensOut)),
			usage.FormatMoney(r.Cost),
		}, ","))
	}
	lines = append(lines, "")

	lines = append(lines, "Quota Table", "Department,Calls used,RPS peak,Quota used")
	for _, r := range snap.Quotas {
		lines = append(lines, strings.Join([]string{
			quote(r.Department),
			strconv.Itoa(r.Calls),
			usage.FormatNumber(r.RPS),
			strconv.Itoa(r.Used) + "%",
		}, ","))
	}
	lines = append(lines, "")

	table := snap.Breakdowns.Table(dim)
	lines = append(lines, "Breakdown — "+dim.Title(), quoteRow(table.Header))
	for _, row := range table.Rows {
		lines = append(lines, quoteRow(row))
	}

	return strings.Join(lines, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteRow(cells []string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = quote(c)
	}
	return strings.Join(quoted, ",")
}

// Query returns the usage API query string for the filters. Parameters
// keep the order time, dim, legends.
func Query(f usage.Filters) string {
	params := [][2]string{
		{"time", f.Range.String()},
		{"dim", f.Dimension.Key()},
		{"legends", strings.Join(f.Legends.ActiveNames(), ",")},
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = url.QueryEscape(p[0]) + "=" + url.QueryEscape(p[1])
	}
	return strings.Join(parts, "&")
}

// Command returns a curl invocation equivalent to the current view.
func Command(f usage.Filters) string {
	return fmt.Sprintf(`curl -s "%s?%s" -H "Authorization: Bearer <KEY>"`, Endpoint, Query(f))
}
