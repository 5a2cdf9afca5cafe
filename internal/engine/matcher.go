// Package engine implements the interpretation pipeline: pattern matching,
// severity scoring, explanation synthesis, and incident correlation. Every
// component is a pure function of its input plus the immutable rule
// registry, so concurrent use needs no locking.
package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/loglens/loglens/internal/rules"
)

// MatchCandidate pairs a rule with the confidence that it explains a line.
type MatchCandidate struct {
	Rule       *rules.PatternRule
	Confidence float64
}

// Matcher scores every registered rule against a log line.
type Matcher struct {
	registry *rules.Registry
}

// NewMatcher constructs a Matcher over the supplied registry.
func NewMatcher(registry *rules.Registry) *Matcher {
	return &Matcher{registry: registry}
}

// Match returns all rules with nonzero confidence, sorted by confidence
// descending. Ties keep registry order; the sort is stable.
func (m *Matcher) Match(line string) []MatchCandidate {
	if line == "" {
		return nil
	}

	ruleSet := m.registry.Rules()
	lower := strings.ToLower(line)
	candidates := make([]MatchCandidate, 0, 4)

	for i := range ruleSet {
		confidence := scoreRule(&ruleSet[i], line, lower)
		if confidence > 0 {
			candidates = append(candidates, MatchCandidate{Rule: &ruleSet[i], Confidence: confidence})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	return candidates
}

// Best returns the top candidate, if any rule matched at all.
func (m *Matcher) Best(line string) (MatchCandidate, bool) {
	candidates := m.Match(line)
	if len(candidates) == 0 {
		return MatchCandidate{}, false
	}
	return candidates[0], true
}

// scoreRule computes the confidence of one rule for one line. A regex hit
// anchors the confidence between 0.6 and 0.95 in proportion to how much of
// the line it covers; keyword hits and a verbatim error-code hit add capped
// bonuses on top.
func scoreRule(rule *rules.PatternRule, line, lower string) float64 {
	confidence := 0.0
	for _, matcher := range rule.Matchers {
		matched := matcher.FindString(line)
		if matched == "" {
			continue
		}
		ratio := float64(len(matched)) / float64(len(line))
		c := 0.6 + ratio*0.3
		if c > 0.95 {
			c = 0.95
		}
		if c > confidence {
			confidence = c
		}
	}
	if confidence == 0 {
		return 0
	}

	hits := 0
	for _, keyword := range rule.Keywords {
		if strings.Contains(lower, keyword) {
			hits++
		}
	}
	bonus := float64(hits) * 0.05
	if bonus > 0.15 {
		bonus = 0.15
	}
	confidence = capConfidence(confidence + bonus)

	for _, code := range rule.ErrorCodes {
		if strings.Contains(line, code) {
			confidence = capConfidence(confidence + 0.10)
			break
		}
	}

	return math.Round(confidence*100) / 100
}

func capConfidence(c float64) float64 {
	if c > 0.99 {
		return 0.99
	}
	return c
}
