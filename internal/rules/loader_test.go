package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loglens/loglens/internal/models"
)

const samplePack = `
rules:
  - id: KAFKA_LAG
    name: Consumer lag
    category: Application
    matchers:
      - '(?i)consumer lag (exceeds|above)'
    keywords:
      - Lag
      - consumer
    errorCodes:
      - LAG01
    baseSeverity: medium
    severityModifiers:
      - trigger: '(?i)critical topic'
        severity: high
        reason: lag on a critical topic
    explanation:
      summary: Consumers are falling behind the topic.
      rootCause: Consumption throughput is below the produce rate.
      possibleCauses:
        - Slow message handlers
      recommendedFixes:
        - Scale the consumer group
`

func writePack(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pack.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write pack: %v", err)
	}
	return path
}

func TestLoadPack(t *testing.T) {
	loaded, err := LoadPack(writePack(t, samplePack))
	if err != nil {
		t.Fatalf("LoadPack: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("got %d rules", len(loaded))
	}

	rule := loaded[0]
	if rule.ID != "KAFKA_LAG" {
		t.Errorf("id = %q", rule.ID)
	}
	// Category and severity are normalized regardless of the YAML casing.
	if rule.Category != models.CategoryApplication {
		t.Errorf("category = %q", rule.Category)
	}
	if rule.BaseSeverity != models.SeverityMedium {
		t.Errorf("severity = %q", rule.BaseSeverity)
	}
	if rule.Keywords[0] != "lag" {
		t.Errorf("keywords not lowercased: %v", rule.Keywords)
	}
	if len(rule.SeverityModifiers) != 1 || rule.SeverityModifiers[0].Severity != models.SeverityHigh {
		t.Errorf("modifiers = %v", rule.SeverityModifiers)
	}
	if !rule.Matchers[0].MatchString("Consumer lag exceeds threshold") {
		t.Error("matcher not compiled correctly")
	}
}

func TestLoadPackMissingFileIsNotAnError(t *testing.T) {
	loaded, err := LoadPack(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if loaded != nil {
		t.Errorf("loaded = %v", loaded)
	}

	if loaded, err = LoadPack(""); err != nil || loaded != nil {
		t.Errorf("empty path: %v, %v", loaded, err)
	}
}

func TestLoadPackBadRegex(t *testing.T) {
	pack := `
rules:
  - id: BROKEN
    name: Broken rule
    category: system
    matchers:
      - '(unclosed'
    keywords:
      - broken
    baseSeverity: low
`
	_, err := LoadPack(writePack(t, pack))
	if err == nil || !strings.Contains(err.Error(), "bad matcher") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadPackMalformedYAML(t *testing.T) {
	if _, err := LoadPack(writePack(t, "rules: [not: {valid")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadMergesBuiltinAndPack(t *testing.T) {
	registry, err := Load(writePack(t, samplePack))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if registry.Len() != len(Builtin())+1 {
		t.Errorf("len = %d, want %d", registry.Len(), len(Builtin())+1)
	}
	if _, ok := registry.Lookup("KAFKA_LAG"); !ok {
		t.Error("pack rule not registered")
	}
	if _, ok := registry.Lookup("DB_CONN_REFUSED"); !ok {
		t.Error("built-in rule lost")
	}
}

func TestLoadRejectsPackDuplicatingBuiltinID(t *testing.T) {
	pack := `
rules:
  - id: DB_CONN_REFUSED
    name: Clash
    category: database
    matchers:
      - 'clash'
    keywords:
      - clash
    baseSeverity: low
`
	if _, err := Load(writePack(t, pack)); err == nil {
		t.Fatal("expected duplicate id error")
	}
}
