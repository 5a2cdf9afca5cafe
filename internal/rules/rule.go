// Package rules holds the static pattern library: the PatternRule record,
// the immutable registry built once at startup, and the YAML pack loader
// for supplemental rules.
package rules

import (
	"regexp"

	"github.com/loglens/loglens/internal/models"
)

// SeverityModifier escalates a rule's severity when its trigger matches the
// raw line. Modifiers only ever raise the score, never lower it.
type SeverityModifier struct {
	Trigger  *regexp.Regexp
	Severity models.Severity
	Reason   string
}

// ExplanationTemplate carries the human-facing text copied verbatim into
// explanations produced from the owning rule.
type ExplanationTemplate struct {
	Summary          string
	RootCause        string
	PossibleCauses   []string
	RecommendedFixes []string
	ExtraContext     string
}

// PatternRule describes one recognizable log category: how to detect it and
// what to say about it. Rules are immutable after registry construction.
type PatternRule struct {
	ID                string
	Name              string
	Category          models.Category
	Matchers          []*regexp.Regexp
	Keywords          []string
	ErrorCodes        []string
	BaseSeverity      models.Severity
	SeverityModifiers []SeverityModifier
	Template          ExplanationTemplate
}
