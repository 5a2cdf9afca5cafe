package engine

import (
	"regexp"
	"testing"

	"github.com/loglens/loglens/internal/models"
	"github.com/loglens/loglens/internal/rules"
)

func builtinMatcher(t *testing.T) *Matcher {
	t.Helper()
	registry, err := rules.NewRegistry(rules.Builtin())
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return NewMatcher(registry)
}

func TestMatchDatabaseConnectionRefused(t *testing.T) {
	m := builtinMatcher(t)
	line := "2024-01-15T10:30:00Z ERROR: connection to database failed: ECONNREFUSED 127.0.0.1:5432"

	best, ok := m.Best(line)
	if !ok {
		t.Fatal("expected a match")
	}
	if best.Rule.ID != "DB_CONN_REFUSED" {
		t.Fatalf("best rule = %s", best.Rule.ID)
	}
	// Regex covers 27 of 86 chars (0.69), four keyword hits cap at +0.15,
	// and the verbatim ECONNREFUSED adds +0.10.
	if best.Confidence != 0.94 {
		t.Errorf("confidence = %v, want 0.94", best.Confidence)
	}
}

func TestMatchSpecificRuleBeatsGenericRule(t *testing.T) {
	m := builtinMatcher(t)
	line := `FATAL: password authentication failed for user "admin"`

	candidates := m.Match(line)
	if len(candidates) < 2 {
		t.Fatalf("expected both DB_AUTH_FAILED and AUTH_FAILED to match, got %d candidates", len(candidates))
	}
	if candidates[0].Rule.ID != "DB_AUTH_FAILED" {
		t.Errorf("top candidate = %s", candidates[0].Rule.ID)
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Confidence > candidates[i-1].Confidence {
			t.Errorf("candidates not sorted descending at %d", i)
		}
	}
}

func TestMatchConfidenceCap(t *testing.T) {
	m := builtinMatcher(t)

	// The whole line is one matcher hit, so the ratio term alone saturates
	// at 0.95 and the keyword bonus pushes it to the 0.99 ceiling.
	best, ok := m.Best("out of memory")
	if !ok {
		t.Fatal("expected a match")
	}
	if best.Rule.ID != "SYS_OOM" {
		t.Fatalf("best rule = %s", best.Rule.ID)
	}
	if best.Confidence != 0.99 {
		t.Errorf("confidence = %v, want 0.99", best.Confidence)
	}
}

func TestMatchNoRule(t *testing.T) {
	m := builtinMatcher(t)

	if candidates := m.Match("Something completely random and unknown happened"); len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %d (first: %s)", len(candidates), candidates[0].Rule.ID)
	}
	if _, ok := m.Best(""); ok {
		t.Error("empty line must not match")
	}
}

func TestScoreRuleKeywordBonus(t *testing.T) {
	rule := rules.PatternRule{
		ID:       "TEST_RULE",
		Name:     "Test rule",
		Category: models.CategoryApplication,
		Matchers: []*regexp.Regexp{regexp.MustCompile(`widget failure`)},
		Keywords: []string{"widget", "failure", "gadget", "sprocket"},
	}

	// 14 of 28 chars matched: 0.6 + 0.5*0.3 = 0.75, two keyword hits +0.10.
	line := "widget failure in subsys aab"
	got := scoreRule(&rule, line, line)
	want := 0.85
	if got != want {
		t.Errorf("confidence = %v, want %v", got, want)
	}
}

func TestScoreRuleNoRegexNoScore(t *testing.T) {
	rule := rules.PatternRule{
		ID:       "TEST_RULE",
		Name:     "Test rule",
		Category: models.CategoryApplication,
		Matchers: []*regexp.Regexp{regexp.MustCompile(`zzz`)},
		Keywords: []string{"error", "failed"},
	}
	// Keywords alone never produce confidence without a regex anchor.
	if got := scoreRule(&rule, "error failed everywhere", "error failed everywhere"); got != 0 {
		t.Errorf("confidence = %v, want 0", got)
	}
}
