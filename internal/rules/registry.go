package rules

import (
	"fmt"
	"sort"
	"strings"
)

// Registry is the immutable rule base plus its keyword index. It is built
// once at startup and shared read-only across requests, so no locking is
// needed anywhere downstream.
type Registry struct {
	rules        []PatternRule
	keywordIndex map[string][]int
}

// NewRegistry validates the supplied rules and builds the keyword index.
// Validation enforces the rule-base invariants: unique ids, at least one
// matcher and one keyword per rule, known category and severity.
func NewRegistry(ruleSet []PatternRule) (*Registry, error) {
	seen := make(map[string]struct{}, len(ruleSet))
	index := make(map[string][]int)

	for i, rule := range ruleSet {
		if rule.ID == "" {
			return nil, fmt.Errorf("rule at position %d has no id", i)
		}
		if _, dup := seen[rule.ID]; dup {
			return nil, fmt.Errorf("duplicate rule id %q", rule.ID)
		}
		seen[rule.ID] = struct{}{}

		if len(rule.Matchers) == 0 {
			return nil, fmt.Errorf("rule %s has no matchers", rule.ID)
		}
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("rule %s has no keywords", rule.ID)
		}
		if !rule.Category.Valid() {
			return nil, fmt.Errorf("rule %s has unknown category %q", rule.ID, rule.Category)
		}
		if !rule.BaseSeverity.Valid() {
			return nil, fmt.Errorf("rule %s has invalid base severity %q", rule.ID, rule.BaseSeverity)
		}
		for _, mod := range rule.SeverityModifiers {
			if mod.Trigger == nil {
				return nil, fmt.Errorf("rule %s has a severity modifier without a trigger", rule.ID)
			}
			if !mod.Severity.Valid() {
				return nil, fmt.Errorf("rule %s has a severity modifier with invalid severity %q", rule.ID, mod.Severity)
			}
		}

		for _, kw := range rule.Keywords {
			kw = strings.ToLower(kw)
			index[kw] = append(index[kw], i)
		}
	}

	return &Registry{rules: ruleSet, keywordIndex: index}, nil
}

// Rules exposes the rule base in registration order. Callers must not
// mutate the returned slice.
func (r *Registry) Rules() []PatternRule {
	return r.rules
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// Lookup returns the rule with the given id, if registered.
func (r *Registry) Lookup(id string) (*PatternRule, bool) {
	for i := range r.rules {
		if r.rules[i].ID == id {
			return &r.rules[i], true
		}
	}
	return nil, false
}

// Candidates runs the cheap keyword pre-filter: it returns, in registration
// order, every rule with at least one keyword occurring in the line. No
// confidence is computed; this is a plausibility check, not a match.
func (r *Registry) Candidates(line string) []PatternRule {
	lower := strings.ToLower(line)

	marked := make(map[int]struct{})
	for keyword, indices := range r.keywordIndex {
		if !strings.Contains(lower, keyword) {
			continue
		}
		for _, idx := range indices {
			marked[idx] = struct{}{}
		}
	}
	if len(marked) == 0 {
		return nil
	}

	order := make([]int, 0, len(marked))
	for idx := range marked {
		order = append(order, idx)
	}
	sort.Ints(order)

	candidates := make([]PatternRule, 0, len(order))
	for _, idx := range order {
		candidates = append(candidates, r.rules[idx])
	}
	return candidates
}
