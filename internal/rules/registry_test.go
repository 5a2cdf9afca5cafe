package rules

import (
	"regexp"
	"strings"
	"testing"

	"github.com/loglens/loglens/internal/models"
)

func validRule(id string) PatternRule {
	return PatternRule{
		ID:           id,
		Name:         "rule " + id,
		Category:     models.CategorySystem,
		Matchers:     []*regexp.Regexp{regexp.MustCompile(`boom`)},
		Keywords:     []string{"boom"},
		BaseSeverity: models.SeverityMedium,
	}
}

func TestNewRegistryValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *PatternRule)
		wantErr string
	}{
		{"missing id", func(r *PatternRule) { r.ID = "" }, "no id"},
		{"no matchers", func(r *PatternRule) { r.Matchers = nil }, "no matchers"},
		{"no keywords", func(r *PatternRule) { r.Keywords = nil }, "no keywords"},
		{"bad category", func(r *PatternRule) { r.Category = "widgets" }, "unknown category"},
		{"bad severity", func(r *PatternRule) { r.BaseSeverity = "SEVERE" }, "invalid base severity"},
		{
			"modifier without trigger",
			func(r *PatternRule) {
				r.SeverityModifiers = []SeverityModifier{{Severity: models.SeverityHigh}}
			},
			"without a trigger",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := validRule("R1")
			tt.mutate(&rule)
			_, err := NewRegistry([]PatternRule{rule})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewRegistryRejectsDuplicateIDs(t *testing.T) {
	_, err := NewRegistry([]PatternRule{validRule("R1"), validRule("R1")})
	if err == nil || !strings.Contains(err.Error(), "duplicate rule id") {
		t.Fatalf("err = %v", err)
	}
}

func TestBuiltinRulesAreValid(t *testing.T) {
	registry, err := NewRegistry(Builtin())
	if err != nil {
		t.Fatalf("built-in library failed validation: %v", err)
	}
	if registry.Len() < 25 {
		t.Errorf("unexpectedly small rule base: %d", registry.Len())
	}
}

func TestLookup(t *testing.T) {
	registry, err := NewRegistry(Builtin())
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}

	rule, ok := registry.Lookup("DB_CONN_REFUSED")
	if !ok || rule.Category != models.CategoryDatabase {
		t.Fatalf("Lookup = %v, %v", rule, ok)
	}
	if _, ok := registry.Lookup("NOPE"); ok {
		t.Error("unknown id must not resolve")
	}
}

func TestCandidatesKeywordPreFilter(t *testing.T) {
	registry, err := NewRegistry(Builtin())
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}

	candidates := registry.Candidates("Connection REFUSED by remote host")
	if len(candidates) == 0 {
		t.Fatal("expected candidates for a connection-refused line")
	}
	found := false
	for _, rule := range candidates {
		if rule.ID == "NET_CONN_REFUSED" {
			found = true
		}
	}
	if !found {
		t.Errorf("NET_CONN_REFUSED missing from candidates: %d returned", len(candidates))
	}

	if got := registry.Candidates("sunshine and rainbows"); got != nil {
		t.Errorf("expected no candidates, got %d", len(got))
	}
}

func TestCandidatesRegistrationOrder(t *testing.T) {
	registry, err := NewRegistry([]PatternRule{validRule("R1"), validRule("R2"), validRule("R3")})
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}

	candidates := registry.Candidates("boom boom boom")
	if len(candidates) != 3 {
		t.Fatalf("got %d candidates", len(candidates))
	}
	for i, want := range []string{"R1", "R2", "R3"} {
		if candidates[i].ID != want {
			t.Errorf("candidate %d = %s, want %s", i, candidates[i].ID, want)
		}
	}
}
