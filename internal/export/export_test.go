package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

func snapshot() (*usage.Snapshot, usage.Filters) {
	p := usage.DefaultProfile()
	f := usage.DefaultFilters(p.ServiceNames()...)
	return usage.Generate(f.Range, f.Legends, usage.DefaultSeed, p), f
}

func TestKPIsJSON(t *testing.T) {
	data, err := KPIsJSON(usage.KPISet{Calls: 1000, Spend: 12.34, ErrRate: 1.5})
	if err != nil {
		t.Fatalf("KPIsJSON: %v", err)
	}
	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed["calls"] != float64(1000) || parsed["spend"] != 12.34 {
		t.Errorf("calls/spend = %v/%v", parsed["calls"], parsed["spend"])
	}
	for _, key := range []string{"callsDelta", "activeKeys", "latencyP50", "latencyP95", "errRate",
		"tokensIn", "tokensOut", "quotaMaxPct", "rpsPeak", "ragHit", "citeCoverage"} {
		if _, ok := parsed[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if !strings.Contains(string(data), "\n  \"calls\": 1000") {
		t.Errorf("expected two-space indentation:\n%s", data)
	}
}

func TestTablesCSV_Sections(t *testing.T) {
	snap, _ := snapshot()
	out := TablesCSV(snap, usage.DimDepartment)
	sections := strings.Split(out, "\n\n")
	if len(sections) != 3 {
		t.Fatalf("sections = %d, want 3:\n%s", len(sections), out)
	}

	spend := strings.Split(sections[0], "\n")
	wantSpend := []string{
		"Spend Table",
		"Provider/Route,Calls,Tokens (in/out),Est. spend",
		`"CANChat /v1/canchat/chat",498,"66,921 / 52,212",$0.11`,
		`"Cohere /v1/provider/chat",332,"54,754 / 42,719",$0.14`,
	}
	if strings.Join(spend, "\n") != strings.Join(wantSpend, "\n") {
		t.Errorf("spend section:\n%s\nwant:\n%s", sections[0], strings.Join(wantSpend, "\n"))
	}

	quota := strings.Split(sections[1], "\n")
	if quota[0] != "Quota Table" || quota[2] != `"IRCC",282,0.32,73%` {
		t.Errorf("quota section:\n%s", sections[1])
	}
	if !strings.HasPrefix(sections[2], "Breakdown — Department\n") {
		t.Errorf("breakdown heading: %q", strings.SplitN(sections[2], "\n", 2)[0])
	}
}

func TestTablesCSV_BreakdownParses(t *testing.T) {
	snap, _ := snapshot()
	for _, dim := range usage.Dimensions {
		t.Run(dim.Key(), func(t *testing.T) {
			out := TablesCSV(snap, dim)
			section := out[strings.LastIndex(out, "\n\n")+2:]
			body := section[strings.Index(section, "\n")+1:]

			records, err := csv.NewReader(strings.NewReader(body)).ReadAll()
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			table := snap.Breakdowns.Table(dim)
			if len(records) != 1+len(table.Rows) {
				t.Fatalf("records = %d, want %d", len(records), 1+len(table.Rows))
			}
			if strings.Join(records[0], "|") != strings.Join(table.Header, "|") {
				t.Errorf("header = %v", records[0])
			}
			for i, row := range table.Rows {
				if strings.Join(records[i+1], "|") != strings.Join(row, "|") {
					t.Errorf("row %d = %v, want %v", i, records[i+1], row)
				}
			}
		})
	}
}

func TestTablesCSV_NamesWithSeparators(t *testing.T) {
	p := usage.DefaultProfile()
	p.Services[0].Name = `Chat, "beta"`
	p.Keys = nil
	p.Departments[0].Name = `IRCC, "Ops"`
	snap := usage.Generate(usage.Range24h, usage.NewLegendSet(p.ServiceNames()...), usage.DefaultSeed, p)

	sections := strings.Split(TablesCSV(snap, usage.DimDepartment), "\n\n")
	for i, want := range []struct {
		first  string
		fields int
	}{
		{`Chat, "beta" ` + p.Services[0].Route, 4},
		{`IRCC, "Ops"`, 4},
	} {
		lines := strings.SplitN(sections[i], "\n", 3)
		records, err := csv.NewReader(strings.NewReader(lines[2])).ReadAll()
		if err != nil {
			t.Fatalf("section %d: parse: %v", i, err)
		}
		if len(records[0]) != want.fields {
			t.Errorf("section %d: fields = %d, want %d: %v", i, len(records[0]), want.fields, records[0])
		}
		if records[0][0] != want.first {
			t.Errorf("section %d: first cell = %q, want %q", i, records[0][0], want.first)
		}
	}
}

func TestQuoteEscapesQuotes(t *testing.T) {
	if got := quoteRow([]string{`say "hi"`, "plain"}); got != `"say ""hi""","plain"` {
		t.Errorf("quoteRow = %s", got)
	}
}

func TestCommand(t *testing.T) {
	_, f := snapshot()
	want := `curl -s "https://api.marketplace.internal/usage?time=24h&dim=dept&legends=CANChat%2CCohere" -H "Authorization: Bearer <KEY>"`
	if got := Command(f); got != want {
		t.Errorf("Command() =\n%s\nwant\n%s", got, want)
	}

	f.Range = usage.Range7d
	f.Dimension = usage.DimKey
	f.Legends = f.Legends.Toggle("Cohere")
	want = `curl -s "https://api.marketplace.internal/usage?time=7d&dim=key&legends=CANChat" -H "Authorization: Bearer <KEY>"`
	if got := Command(f); got != want {
		t.Errorf("Command() = %s", got)
	}

	f.Legends = f.Legends.Toggle("CANChat")
	if got := Query(f); got != "time=7d&dim=key&legends=" {
		t.Errorf("Query() with no legends = %s", got)
	}
}

func TestExportsArePure(t *testing.T) {
	snap, f := snapshot()
	before := snap.KPIs
	a := TablesCSV(snap, usage.DimService)
	b := TablesCSV(snap, usage.DimService)
	if a != b || Command(f) != Command(f) {
		t.Error("repeated exports differ")
	}
	if snap.KPIs != before {
		t.Error("export mutated the snapshot")
	}
}

func TestSaveFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	path, err := SaveFile(dir, KPIsFileName, []byte("{}"))
	if err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "{}" {
		t.Errorf("read back %q, %v", data, err)
	}

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := SaveFile(blocker, "x.json", nil); err == nil {
		t.Error("expected error when directory is a file")
	}
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func TestCopyCommand(t *testing.T) {
	cb := &fakeClipboard{}
	msg, err := CopyCommand(cb, "curl x")
	if err != nil || msg != CopiedMessage || cb.text != "curl x" {
		t.Errorf("CopyCommand = %q, %v (clipboard %q)", msg, err, cb.text)
	}

	msg, err = CopyCommand(&fakeClipboard{err: errors.New("no display")}, "curl x")
	if err == nil || msg != CopyFailedMessage {
		t.Errorf("CopyCommand failure = %q, %v", msg, err)
	}
}
