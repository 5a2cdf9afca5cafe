package engine

import (
	"strings"
	"testing"

	"github.com/loglens/loglens/internal/extract"
	"github.com/loglens/loglens/internal/models"
	"github.com/loglens/loglens/internal/rules"
)

func TestSynthesizeMatched(t *testing.T) {
	s := NewSynthesizer()
	rule := &rules.PatternRule{
		ID:       "DISK_FULL",
		Name:     "Disk full",
		Category: models.CategoryDisk,
		Template: rules.ExplanationTemplate{
			Summary:          "The filesystem has no free space left.",
			RootCause:        "A volume filled up.",
			PossibleCauses:   []string{"Log growth", "Large temp files"},
			RecommendedFixes: []string{"Free space", "Add capacity"},
		},
	}
	md := extract.ParsedMetadata{
		Timestamp: "2024-01-15T10:30:00Z",
		LogLevel:  "ERROR",
		FilePath:  "/var/log/app.log",
	}
	sev := models.SeverityResult{Level: models.SeverityCritical, Score: 90, Reason: "base"}

	e := s.Synthesize("raw line", rule, md, sev, 0.88)

	if e.PatternID != "DISK_FULL" || e.Category != models.CategoryDisk {
		t.Fatalf("identity: %s %s", e.PatternID, e.Category)
	}
	if e.Summary != rule.Template.Summary || e.RootCause != rule.Template.RootCause {
		t.Error("template text not copied verbatim")
	}
	if e.Confidence != 0.88 {
		t.Errorf("confidence = %v", e.Confidence)
	}
	if e.Severity != models.SeverityCritical || e.SeverityScore != 90 {
		t.Errorf("severity: %s %d", e.Severity, e.SeverityScore)
	}
	if e.Engine != models.EngineRuleBased {
		t.Errorf("engine = %q", e.Engine)
	}
	if e.Timestamp != md.Timestamp {
		t.Errorf("timestamp = %q", e.Timestamp)
	}
	if len(e.RecommendedFixes) != 2 {
		t.Errorf("fixes = %v", e.RecommendedFixes)
	}
}

func TestSynthesizeUnknown(t *testing.T) {
	s := NewSynthesizer()
	sev := models.SeverityResult{Level: models.SeverityMedium, Score: 40, Reason: "fallback"}

	e := s.Synthesize("odd line", nil, extract.ParsedMetadata{}, sev, 0.5)

	if e.PatternID != models.PatternUnknown {
		t.Errorf("patternId = %q", e.PatternID)
	}
	if e.Category != models.CategoryUnknown {
		t.Errorf("category = %q", e.Category)
	}
	if e.Confidence != 0 {
		t.Errorf("confidence = %v, want 0 on the unknown path", e.Confidence)
	}
	if e.RootCause == "" || len(e.PossibleCauses) == 0 || len(e.RecommendedFixes) == 0 {
		t.Error("unknown path must still produce a complete explanation")
	}
}

func TestUnknownSummaryByLevelFamily(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"ERROR", "Error-level"},
		{"FATAL", "Error-level"},
		{"WARN", "Warning-level"},
		{"NOTICE", "Warning-level"},
		{"INFO", "Informational log (INFO)"},
		{"", "Informational log with no specific pattern"},
	}
	for _, tt := range tests {
		if got := unknownSummary(tt.level); !strings.Contains(got, tt.want) {
			t.Errorf("unknownSummary(%q) = %q, want substring %q", tt.level, got, tt.want)
		}
	}
}

func TestMetadataMapOmitsEmptyFields(t *testing.T) {
	md := extract.ParsedMetadata{
		LogLevel:  "ERROR",
		ErrorCode: "ENOSPC",
		IPAddress: "",
		Port:      "",
	}
	got := metadataMap(md)

	if len(got) != 2 {
		t.Fatalf("map = %v", got)
	}
	if got["logLevel"] != "ERROR" || got["errorCode"] != "ENOSPC" {
		t.Errorf("map = %v", got)
	}
	if _, present := got["ipAddress"]; present {
		t.Error("empty fields must not appear")
	}
}
