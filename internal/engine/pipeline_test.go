package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/loglens/loglens/internal/models"
	"github.com/loglens/loglens/internal/rules"
)

func builtinPipeline(t *testing.T) *Pipeline {
	t.Helper()
	registry, err := rules.NewRegistry(rules.Builtin())
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return NewPipeline(nil, registry)
}

func TestExplainDatabaseConnectionFailure(t *testing.T) {
	p := builtinPipeline(t)
	line := "2024-01-15T10:30:00Z ERROR: connection to database failed: ECONNREFUSED 127.0.0.1:5432"

	e := p.Explain(line, "")

	if e.PatternID != "DB_CONN_REFUSED" {
		t.Fatalf("patternId = %q", e.PatternID)
	}
	if e.Category != models.CategoryDatabase {
		t.Errorf("category = %s", e.Category)
	}
	if e.Severity != models.SeverityHigh || e.SeverityScore != 70 {
		t.Errorf("severity = %s %d, want HIGH 70", e.Severity, e.SeverityScore)
	}
	if e.Confidence != 0.94 {
		t.Errorf("confidence = %v", e.Confidence)
	}
	if e.Timestamp != "2024-01-15T10:30:00Z" {
		t.Errorf("timestamp = %q", e.Timestamp)
	}
	if e.Metadata["errorCode"] != "ECONNREFUSED" || e.Metadata["port"] != "5432" {
		t.Errorf("metadata = %v", e.Metadata)
	}
	if e.Engine != models.EngineRuleBased {
		t.Errorf("engine = %q", e.Engine)
	}
}

func TestExplainHeapExhaustion(t *testing.T) {
	p := builtinPipeline(t)
	line := "FATAL ERROR: Reached heap limit Allocation failed - JavaScript heap out of memory"

	e := p.Explain(line, "")

	if e.PatternID != "SYS_OOM" {
		t.Fatalf("patternId = %q", e.PatternID)
	}
	if e.Severity != models.SeverityCritical || e.SeverityScore != 90 {
		t.Errorf("severity = %s %d, want CRITICAL 90", e.Severity, e.SeverityScore)
	}
	if e.Metadata["logLevel"] != "FATAL" {
		t.Errorf("logLevel = %q", e.Metadata["logLevel"])
	}
}

func TestExplainAuthFailureBlendsFatalLevel(t *testing.T) {
	p := builtinPipeline(t)
	line := `FATAL: password authentication failed for user "admin"`

	e := p.Explain(line, "")

	if e.PatternID != "DB_AUTH_FAILED" {
		t.Fatalf("patternId = %q", e.PatternID)
	}
	// Base HIGH (70) blends with the FATAL level (90) to 80, CRITICAL.
	if e.SeverityScore != 80 || e.Severity != models.SeverityCritical {
		t.Errorf("severity = %s %d", e.Severity, e.SeverityScore)
	}
	if e.Metadata["username"] != "admin" {
		t.Errorf("username = %q", e.Metadata["username"])
	}
}

func TestExplainUnknownLine(t *testing.T) {
	p := builtinPipeline(t)

	e := p.Explain("Something completely random and unknown happened", "")

	if e.PatternID != models.PatternUnknown {
		t.Fatalf("patternId = %q", e.PatternID)
	}
	if e.Confidence != 0 {
		t.Errorf("confidence = %v", e.Confidence)
	}
	if e.Severity != models.SeverityMedium || e.SeverityScore != 40 {
		t.Errorf("severity = %s %d, want MEDIUM 40", e.Severity, e.SeverityScore)
	}
	if e.RootCause == "" || len(e.RecommendedFixes) == 0 {
		t.Error("unknown explanation must still be complete")
	}
}

func TestExplainSourceFallback(t *testing.T) {
	p := builtinPipeline(t)

	// No source in the line itself: the caller-supplied tag fills in.
	e := p.Explain("ERROR: disk is full", "billing-svc")
	if e.Source != "billing-svc" {
		t.Errorf("source = %q", e.Source)
	}

	// A source extracted from the line wins over the request tag.
	e = p.Explain("sshd[4721]: Failed password for invalid user root from 203.0.113.7 port 51122 ssh2", "ignored")
	if e.Source != "sshd" {
		t.Errorf("source = %q", e.Source)
	}
}

func TestExplainDeterministic(t *testing.T) {
	p := builtinPipeline(t)
	lines := []string{
		"2024-01-15T10:30:00Z ERROR: connection to database failed: ECONNREFUSED 127.0.0.1:5432",
		"FATAL ERROR: Reached heap limit Allocation failed - JavaScript heap out of memory",
		"Something completely random and unknown happened",
	}

	for _, line := range lines {
		first, err := json.Marshal(p.Explain(line, "svc"))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		second, err := json.Marshal(p.Explain(line, "svc"))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(first) != string(second) {
			t.Errorf("non-deterministic output for %q:\n%s\n%s", line, first, second)
		}
	}
}

func TestExplainBatchOrder(t *testing.T) {
	p := builtinPipeline(t)
	lines := []string{"ERROR: disk is full", "plain text", "panic: nil map write"}

	explanations := p.ExplainBatch(lines, "")
	if len(explanations) != 3 {
		t.Fatalf("got %d explanations", len(explanations))
	}
	for i, e := range explanations {
		if e.RawLog != lines[i] {
			t.Errorf("explanation %d out of order: %q", i, e.RawLog)
		}
	}
}

func TestIncidentEndToEnd(t *testing.T) {
	p := builtinPipeline(t)
	summary := p.Incident([]string{
		"2024-01-15T10:30:00Z ERROR: connection to database failed: ECONNREFUSED 127.0.0.1:5432",
		"2024-01-15T10:30:05Z ERROR: Request timeout on /api/v1/users after 30000ms",
	}, "")

	if summary.TotalLogsAnalyzed != 2 {
		t.Fatalf("totalLogsAnalyzed = %d", summary.TotalLogsAnalyzed)
	}
	if summary.Severity != models.SeverityHigh || summary.SeverityScore != 70 {
		t.Errorf("severity = %s %d, want HIGH 70", summary.Severity, summary.SeverityScore)
	}
	if len(summary.Correlations) != 1 || !strings.Contains(summary.Correlations[0], "Database connectivity") {
		t.Errorf("correlations = %v", summary.Correlations)
	}
	if len(summary.AffectedSystems) != 2 {
		t.Errorf("affectedSystems = %v", summary.AffectedSystems)
	}
	if len(summary.RootCauseChain) != 2 {
		t.Errorf("rootCauseChain = %v", summary.RootCauseChain)
	}
	if summary.Timeline[0].Timestamp >= summary.Timeline[1].Timestamp {
		t.Errorf("timeline out of order: %v", summary.Timeline)
	}
}

func TestInterestingPreFilter(t *testing.T) {
	p := builtinPipeline(t)

	if !p.Interesting("the connection was refused by the peer") {
		t.Error("line with rule keywords should be interesting")
	}
	if p.Interesting("sunshine and rainbows all day") {
		t.Error("keyword-free line should not be interesting")
	}
	if len(p.Candidates("deadlock detected in transaction")) == 0 {
		t.Error("expected candidate rules for a deadlock line")
	}
}
