package rules

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/loglens/loglens/internal/models"
)

// packFile is the YAML root structure of a supplemental rule pack.
type packFile struct {
	Rules []packRule `yaml:"rules"`
}

type packRule struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Category   string   `yaml:"category"`
	Matchers   []string `yaml:"matchers"`
	Keywords   []string `yaml:"keywords"`
	ErrorCodes []string `yaml:"errorCodes"`
	Severity   string   `yaml:"baseSeverity"`
	Modifiers  []struct {
		Trigger  string `yaml:"trigger"`
		Severity string `yaml:"severity"`
		Reason   string `yaml:"reason"`
	} `yaml:"severityModifiers"`
	Explanation struct {
		Summary          string   `yaml:"summary"`
		RootCause        string   `yaml:"rootCause"`
		PossibleCauses   []string `yaml:"possibleCauses"`
		RecommendedFixes []string `yaml:"recommendedFixes"`
		ExtraContext     string   `yaml:"extraContext"`
	} `yaml:"explanation"`
}

// LoadPack parses a YAML rule pack, compiling every regex. A missing file is
// not an error (supplemental packs are optional); a malformed pack is.
func LoadPack(path string) ([]PatternRule, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read rule pack: %w", err)
	}

	var pack packFile
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse rule pack %s: %w", path, err)
	}

	loaded := make([]PatternRule, 0, len(pack.Rules))
	for _, raw := range pack.Rules {
		rule, err := buildRule(raw)
		if err != nil {
			return nil, fmt.Errorf("rule pack %s: %w", path, err)
		}
		loaded = append(loaded, rule)
	}
	return loaded, nil
}

func buildRule(raw packRule) (PatternRule, error) {
	rule := PatternRule{
		ID:           raw.ID,
		Name:         raw.Name,
		Category:     models.Category(strings.ToLower(raw.Category)),
		Keywords:     lowercaseAll(raw.Keywords),
		ErrorCodes:   append([]string(nil), raw.ErrorCodes...),
		BaseSeverity: models.Severity(strings.ToUpper(raw.Severity)),
		Template: ExplanationTemplate{
			Summary:          raw.Explanation.Summary,
			RootCause:        raw.Explanation.RootCause,
			PossibleCauses:   append([]string(nil), raw.Explanation.PossibleCauses...),
			RecommendedFixes: append([]string(nil), raw.Explanation.RecommendedFixes...),
			ExtraContext:     raw.Explanation.ExtraContext,
		},
	}

	for _, expr := range raw.Matchers {
		re, err := regexp.Compile(expr)
		if err != nil {
			return PatternRule{}, fmt.Errorf("rule %s: bad matcher %q: %w", raw.ID, expr, err)
		}
		rule.Matchers = append(rule.Matchers, re)
	}

	for _, mod := range raw.Modifiers {
		re, err := regexp.Compile(mod.Trigger)
		if err != nil {
			return PatternRule{}, fmt.Errorf("rule %s: bad modifier trigger %q: %w", raw.ID, mod.Trigger, err)
		}
		rule.SeverityModifiers = append(rule.SeverityModifiers, SeverityModifier{
			Trigger:  re,
			Severity: models.Severity(strings.ToUpper(mod.Severity)),
			Reason:   mod.Reason,
		})
	}

	return rule, nil
}

func lowercaseAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(v))
	}
	return out
}

// Load merges the built-in library with an optional supplemental pack and
// builds the registry. This is the one construction path the whole process
// uses; the returned handle is passed explicitly to every component.
func Load(packPath string) (*Registry, error) {
	ruleSet := Builtin()
	extra, err := LoadPack(packPath)
	if err != nil {
		return nil, err
	}
	ruleSet = append(ruleSet, extra...)
	return NewRegistry(ruleSet)
}
