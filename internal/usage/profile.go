package usage

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ServiceProfile describes one AI service exposed through the marketplace.
type ServiceProfile struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	Route       string `yaml:"route"`
	Sensitivity string `yaml:"sensitivity"`

	// HourlyBase is the per-step request base for the 24h range;
	// ExtendedBase applies to 7d and 30d.
	HourlyBase   float64 `yaml:"hourly_base"`
	ExtendedBase float64 `yaml:"extended_base"`

	TokenShare float64 `yaml:"token_share"`
	RateIn     float64 `yaml:"rate_in"`
	RateOut    float64 `yaml:"rate_out"`

	P95       int     `yaml:"p95_ms"`
	ErrPct    float64 `yaml:"err_pct"`
	Throttles int     `yaml:"throttles"`
	Breaches  int     `yaml:"policy_breaches"`

	ErrorShare  float64 `yaml:"error_share"`
	ErrorSample string  `yaml:"error_sample"`
}

// Label returns the display name, falling back to Name.
func (s ServiceProfile) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.Name
}

// DepartmentProfile holds the illustrative per-department splits.
type DepartmentProfile struct {
	Name      string  `yaml:"name"`
	CallShare float64 `yaml:"call_share"`
	CostShare float64 `yaml:"cost_share"`
	RPSFactor float64 `yaml:"rps_factor"`
	QuotaUsed int     `yaml:"quota_used"`
	P95       int     `yaml:"p95_ms"`
	ErrPct    float64 `yaml:"err_pct"`
	Tokens    string  `yaml:"tokens"`
}

// KeyProfile is a sample API key row.
type KeyProfile struct {
	Label      string  `yaml:"label"`
	Department string  `yaml:"department"`
	Scope      string  `yaml:"scope"`
	Service    string  `yaml:"service"`
	CallShare  float64 `yaml:"call_share"`
	LastUsed   string  `yaml:"last_used"`
}

// BucketProfile is one prompt-length bucket.
type BucketProfile struct {
	Label string  `yaml:"label"`
	Share float64 `yaml:"share"`
}

// SafetyProfile derives a safety signal count from total failures.
type SafetyProfile struct {
	Category   string  `yaml:"category"`
	PerFailure float64 `yaml:"per_failure"`
	Offset     float64 `yaml:"offset"`
}

// FixedKPIs are KPI values that are not derived from series.
type FixedKPIs struct {
	ActiveKeys   int     `yaml:"active_keys"`
	QuotaMaxPct  float64 `yaml:"quota_max_pct"`
	RAGHit       float64 `yaml:"rag_hit"`
	CiteCoverage float64 `yaml:"cite_coverage"`
}

// Profile holds every illustrative constant the generator uses.
type Profile struct {
	Services      []ServiceProfile    `yaml:"services"`
	Departments   []DepartmentProfile `yaml:"departments"`
	Keys          []KeyProfile        `yaml:"keys"`
	PromptBuckets []BucketProfile     `yaml:"prompt_buckets"`
	Safety        []SafetyProfile     `yaml:"safety"`
	Fixed         FixedKPIs           `yaml:"fixed"`
}

// DefaultProfile returns the built-in demo profile.
func DefaultProfile() *Profile {
	return &Profile{
		Services: []ServiceProfile{
			{
				Name: "CANChat", DisplayName: "CANChat", Route: "/v1/canchat/chat",
				Sensitivity: "Protected B (pilot)",
				HourlyBase:  20, ExtendedBase: 200,
				TokenShare: 0.55, RateIn: 0.0000005, RateOut: 0.0000015,
				P95: 1650, ErrPct: 1.1, Throttles: 23, Breaches: 8,
				ErrorShare: 0.56, ErrorSample: "413 Payload too large",
			},
			{
				Name: "Cohere", DisplayName: "Cohere Command A", Route: "/v1/provider/chat",
				Sensitivity: "Unclassified/PBMM",
				HourlyBase:  14, ExtendedBase: 150,
				TokenShare: 0.45, RateIn: 0.0000010, RateOut: 0.0000020,
				P95: 1720, ErrPct: 1.3, Throttles: 14, Breaches: 11,
				ErrorShare: 0.44, ErrorSample: "504 Upstream timeout",
			},
		},
		Departments: []DepartmentProfile{
			{Name: "IRCC", CallShare: 0.34, CostShare: 0.33, RPSFactor: 0.8, QuotaUsed: 73, P95: 1700, ErrPct: 1.2, Tokens: "42M / 30M"},
			{Name: "ESDC", CallShare: 0.26, CostShare: 0.26, RPSFactor: 0.7, QuotaUsed: 64, P95: 1600, ErrPct: 0.9, Tokens: "31M / 22M"},
			{Name: "CRA", CallShare: 0.22, CostShare: 0.22, RPSFactor: 0.6, QuotaUsed: 51, P95: 1680, ErrPct: 1.5, Tokens: "26M / 19M"},
			{Name: "HC", CallShare: 0.10, CostShare: 0.10, RPSFactor: 0.4, QuotaUsed: 37, P95: 1750, ErrPct: 1.0, Tokens: "12M / 8M"},
			{Name: "TBS", CallShare: 0.08, CostShare: 0.09, RPSFactor: 0.3, QuotaUsed: 29, P95: 1620, ErrPct: 0.8, Tokens: "10M / 7M"},
		},
		Keys: []KeyProfile{
			{Label: "IRCC-prod-A…", Department: "IRCC", Scope: "canchat:chat", Service: "CANChat", CallShare: 0.22, LastUsed: "2025-09-25 09:41"},
			{Label: "IRCC-pilot-B…", Department: "IRCC", Scope: "provider:chat", Service: "Cohere", CallShare: 0.12, LastUsed: "2025-09-25 09:05"},
			{Label: "ESDC-prod-A…", Department: "ESDC", Scope: "canchat:chat", Service: "CANChat", CallShare: 0.18, LastUsed: "2025-09-25 08:44"},
		},
		PromptBuckets: []BucketProfile{
			{Label: "<200", Share: 0.21},
			{Label: "200–500", Share: 0.38},
			{Label: "500–1000", Share: 0.27},
			{Label: "1000+", Share: 0.14},
		},
		Safety: []SafetyProfile{
			{Category: "PII detected", PerFailure: 1.3, Offset: 9},
			{Category: "Unsafe content", PerFailure: 0.8, Offset: 6},
			{Category: "Policy redactions", PerFailure: 0.5, Offset: 4},
		},
		Fixed: FixedKPIs{ActiveKeys: 28, QuotaMaxPct: 72, RAGHit: 0.63, CiteCoverage: 0.48},
	}
}

// ServiceNames returns the service names in profile order.
func (p *Profile) ServiceNames() []string {
	names := make([]string, len(p.Services))
	for i, s := range p.Services {
		names[i] = s.Name
	}
	return names
}

// Service looks up a service by name.
func (p *Profile) Service(name string) (ServiceProfile, bool) {
	for _, s := range p.Services {
		if s.Name == name {
			return s, true
		}
	}
	return ServiceProfile{}, false
}

// Validate checks the profile for values the generator cannot use.
func (p *Profile) Validate() error {
	if len(p.Services) == 0 {
		return errors.New("profile has no services")
	}
	seen := make(map[string]bool)
	for _, s := range p.Services {
		if s.Name == "" {
			return errors.New("service with empty name")
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate service %q", s.Name)
		}
		seen[s.Name] = true
		if err := checkShare("token_share", s.Name, s.TokenShare); err != nil {
			return err
		}
		if err := checkShare("error_share", s.Name, s.ErrorShare); err != nil {
			return err
		}
		if s.HourlyBase < 0 || s.ExtendedBase < 0 || s.RateIn < 0 || s.RateOut < 0 {
			return fmt.Errorf("service %q has negative base or rate", s.Name)
		}
		if err := checkAmounts(s.Name, map[string]float64{
			"hourly_base":   s.HourlyBase,
			"extended_base": s.ExtendedBase,
			"rate_in":       s.RateIn,
			"rate_out":      s.RateOut,
			"err_pct":       s.ErrPct,
		}); err != nil {
			return err
		}
	}
	depts := make(map[string]bool)
	for _, d := range p.Departments {
		if depts[d.Name] {
			return fmt.Errorf("duplicate department %q", d.Name)
		}
		depts[d.Name] = true
		if err := checkShare("call_share", d.Name, d.CallShare); err != nil {
			return err
		}
		if err := checkShare("cost_share", d.Name, d.CostShare); err != nil {
			return err
		}
		if err := checkAmounts(d.Name, map[string]float64{
			"rps_factor": d.RPSFactor,
			"err_pct":    d.ErrPct,
		}); err != nil {
			return err
		}
	}
	for _, k := range p.Keys {
		if !seen[k.Service] {
			return fmt.Errorf("key %q references unknown service %q", k.Label, k.Service)
		}
		if err := checkShare("call_share", k.Label, k.CallShare); err != nil {
			return err
		}
	}
	for _, b := range p.PromptBuckets {
		if err := checkShare("share", b.Label, b.Share); err != nil {
			return err
		}
	}
	for _, c := range p.Safety {
		if err := checkAmounts(c.Category, map[string]float64{
			"per_failure": c.PerFailure,
			"offset":      c.Offset,
		}); err != nil {
			return err
		}
	}
	if err := checkAmounts("fixed", map[string]float64{
		"quota_max_pct": p.Fixed.QuotaMaxPct,
	}); err != nil {
		return err
	}
	for field, v := range map[string]float64{
		"rag_hit":       p.Fixed.RAGHit,
		"cite_coverage": p.Fixed.CiteCoverage,
	} {
		if err := checkShare(field, "fixed", v); err != nil {
			return err
		}
	}
	return nil
}

// maxAmount bounds bases and rates so rounded totals stay within int range.
const maxAmount = 1e9

func checkAmounts(owner string, fields map[string]float64) error {
	for field, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s of %q must be finite, got %v", field, owner, v)
		}
		if v < 0 || v > maxAmount {
			return fmt.Errorf("%s of %q must be within [0,%g], got %v", field, owner, float64(maxAmount), v)
		}
	}
	return nil
}

func checkShare(field, owner string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%s of %q must be within [0,1], got %v", field, owner, v)
	}
	return nil
}

// ParseProfile decodes a YAML profile. Sections missing from the document
// keep their default values.
func ParseProfile(data []byte) (*Profile, error) {
	p := DefaultProfile()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	return p, nil
}

// LoadProfile reads a YAML profile from path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return ParseProfile(data)
}

// Marshal encodes the profile as YAML.
func (p *Profile) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}
