package engine

import (
	"fmt"
	"math"
	"regexp"

	"github.com/loglens/loglens/internal/models"
	"github.com/loglens/loglens/internal/rules"
)

// Escalation language checked in fixed order; the first hit adds a flat +10.
var escalationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(production|prod)\b`),
	regexp.MustCompile(`(?i)\boutage\b`),
	regexp.MustCompile(`(?i)\bdata loss\b`),
	regexp.MustCompile(`(?i)\bsecurity breach\b`),
	regexp.MustCompile(`(?i)\bransomware\b`),
	regexp.MustCompile(`(?i)\bexploit\b`),
}

// Repetition language adds a flat +5.
var repetitionPattern = regexp.MustCompile(`(?i)\b(repeated(?:ly)?|recurring|frequent(?:ly)?|multiple|consecutive)\b`)

// Scorer converts a matched rule (or its absence) plus contextual signals
// into a severity score and level.
type Scorer struct{}

// NewScorer constructs a Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score derives the severity of one log line. The step order is load
// bearing: modifiers resolve first, then the extracted log level blends in,
// then the flat boosts stack. Reordering changes scores for existing
// inputs.
func (s *Scorer) Score(line string, rule *rules.PatternRule, logLevel string) models.SeverityResult {
	if rule == nil {
		return scoreUnmatched(logLevel)
	}

	score := rule.BaseSeverity.BaseScore()
	reason := fmt.Sprintf("base severity of pattern %s", rule.Name)

	for _, mod := range rule.SeverityModifiers {
		if !mod.Trigger.MatchString(line) {
			continue
		}
		if modScore := mod.Severity.BaseScore(); modScore > score {
			score = modScore
			reason = mod.Reason
		}
	}

	if logLevel != "" {
		if levelScore := models.SeverityFromLogLevel(logLevel).BaseScore(); levelScore > score {
			score = int(math.Round(float64(score+levelScore) / 2))
			reason = fmt.Sprintf("%s, blended with %s log level", reason, logLevel)
		}
	}

	for _, pattern := range escalationPatterns {
		if pattern.MatchString(line) {
			score = boost(score, 10)
			break
		}
	}
	if repetitionPattern.MatchString(line) {
		score = boost(score, 5)
	}

	score = clampScore(score)
	return models.SeverityResult{
		Level:  models.SeverityFromScore(score),
		Score:  score,
		Reason: reason,
	}
}

func scoreUnmatched(logLevel string) models.SeverityResult {
	level := models.SeverityFromLogLevel(logLevel)
	named := logLevel
	if named == "" {
		named = "unknown"
	}
	score := level.BaseScore()
	return models.SeverityResult{
		Level:  models.SeverityFromScore(score),
		Score:  score,
		Reason: fmt.Sprintf("no pattern matched; severity derived from log level %s", named),
	}
}

// boost adds a flat addition, never letting the running total pass 100.
func boost(score, add int) int {
	score += add
	if score > 100 {
		return 100
	}
	return score
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
