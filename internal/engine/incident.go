package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/loglens/loglens/internal/models"
)

const (
	timelineSummaryLimit   = 150
	titleSummaryLimit      = 80
	maxRecommendedActions  = 10
	highScoreThreshold     = 55
	criticalScoreThreshold = 80
)

// categoryCorrelation is one entry of the fixed category-pair table. A rule
// fires at most once, when both slots are present in the incident; the
// second slot may alternatively be satisfied by a specific pattern id.
type categoryCorrelation struct {
	first     models.Category
	second    models.Category
	patternID string
	finding   string
}

// Evaluation order is fixed; output order follows it.
var categoryCorrelations = []categoryCorrelation{
	{
		first:     models.CategoryDatabase,
		second:    models.CategoryTimeout,
		patternID: "API_TIMEOUT",
		finding:   "Database connectivity issues may be the root cause of the API timeouts observed in this incident.",
	},
	{
		first:   models.CategoryMemory,
		second:  models.CategoryProcess,
		finding: "An out-of-memory condition likely caused the process crash seen in this incident.",
	},
	{
		first:   models.CategoryAuthentication,
		second:  models.CategorySecurity,
		finding: "Authentication failures alongside security events may indicate a coordinated attack.",
	},
	{
		first:   models.CategoryDNS,
		second:  models.CategoryNetwork,
		finding: "DNS resolution problems may be the initial failure point behind the wider network errors.",
	},
	{
		first:   models.CategoryDisk,
		second:  models.CategoryDatabase,
		finding: "A full or failing disk may have caused the database failures in this incident.",
	},
	{
		first:   models.CategoryConfiguration,
		second:  models.CategoryApplication,
		finding: "A configuration problem is a likely root cause of the application errors.",
	},
}

// Correlator folds an ordered list of per-line explanations into one
// incident narrative.
type Correlator struct{}

// NewCorrelator constructs a Correlator.
func NewCorrelator() *Correlator {
	return &Correlator{}
}

// Summarize builds the incident summary. It never fails; an empty input
// yields the fixed "No Logs Provided" summary.
func (c *Correlator) Summarize(explanations []models.LogExplanation, incidentContext string) models.IncidentSummary {
	if len(explanations) == 0 {
		return models.IncidentSummary{
			Title:              "No Logs Provided",
			Summary:            "No log entries were provided for incident analysis.",
			Severity:           models.SeverityFromScore(0),
			SeverityScore:      0,
			RootCauseChain:     []string{},
			AffectedSystems:    []models.Category{},
			Timeline:           []models.TimelineEvent{},
			RecommendedActions: []string{},
			CategoryBreakdown:  map[models.Category]int{},
			Correlations:       []string{},
		}
	}

	score, level := aggregateSeverity(explanations)
	breakdown, categoryOrder := categoryBreakdown(explanations)
	correlations := evaluateCorrelations(explanations)

	summary := models.IncidentSummary{
		Severity:           level,
		SeverityScore:      score,
		RootCauseChain:     rootCauseChain(explanations),
		AffectedSystems:    affectedSystems(categoryOrder),
		Timeline:           buildTimeline(explanations),
		RecommendedActions: recommendedActions(explanations),
		TotalLogsAnalyzed:  len(explanations),
		CategoryBreakdown:  breakdown,
		Correlations:       correlations,
	}
	summary.Title = buildTitle(explanations, level, breakdown, categoryOrder)
	summary.Summary = buildSummaryText(summary, incidentContext)
	return summary
}

// aggregateSeverity takes the maximum per-log score and stacks the incident
// boosts on top: +5 at three high-severity logs, +5 more at five, +10 at
// two critical-severity logs, clamped to 100.
func aggregateSeverity(explanations []models.LogExplanation) (int, models.Severity) {
	maxScore := 0
	highCount := 0
	criticalCount := 0
	for _, e := range explanations {
		if e.SeverityScore > maxScore {
			maxScore = e.SeverityScore
		}
		if e.SeverityScore >= highScoreThreshold {
			highCount++
		}
		if e.SeverityScore >= criticalScoreThreshold {
			criticalCount++
		}
	}

	score := maxScore
	if highCount >= 3 {
		score += 5
	}
	if highCount >= 5 {
		score += 5
	}
	if criticalCount >= 2 {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score, models.SeverityFromScore(score)
}

func categoryBreakdown(explanations []models.LogExplanation) (map[models.Category]int, []models.Category) {
	breakdown := make(map[models.Category]int)
	order := make([]models.Category, 0, 4)
	for _, e := range explanations {
		if _, seen := breakdown[e.Category]; !seen {
			order = append(order, e.Category)
		}
		breakdown[e.Category]++
	}
	return breakdown, order
}

func affectedSystems(categoryOrder []models.Category) []models.Category {
	affected := make([]models.Category, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		if cat == models.CategoryUnknown {
			continue
		}
		affected = append(affected, cat)
	}
	return affected
}

// buildTimeline emits one event per explanation and sorts timestamped
// entries by their raw ISO string; entries without a timestamp keep their
// relative order after all timestamped ones.
func buildTimeline(explanations []models.LogExplanation) []models.TimelineEvent {
	timeline := make([]models.TimelineEvent, 0, len(explanations))
	for _, e := range explanations {
		timeline = append(timeline, models.TimelineEvent{
			Timestamp: e.Timestamp,
			Summary:   truncate(e.Summary, timelineSummaryLimit),
			Severity:  e.Severity,
			Category:  e.Category,
		})
	}
	sort.SliceStable(timeline, func(i, j int) bool {
		if timeline[i].Timestamp == "" {
			return false
		}
		if timeline[j].Timestamp == "" {
			return true
		}
		return timeline[i].Timestamp < timeline[j].Timestamp
	})
	return timeline
}

func rootCauseChain(explanations []models.LogExplanation) []string {
	chain := make([]string, 0, len(explanations))
	seen := make(map[string]struct{})
	for _, e := range explanations {
		if !e.Matched() || e.RootCause == "" {
			continue
		}
		if _, dup := seen[e.RootCause]; dup {
			continue
		}
		seen[e.RootCause] = struct{}{}
		chain = append(chain, e.RootCause)
	}
	return chain
}

func recommendedActions(explanations []models.LogExplanation) []string {
	actions := make([]string, 0, maxRecommendedActions)
	seen := make(map[string]struct{})
	for _, e := range explanations {
		for _, fix := range e.RecommendedFixes {
			if _, dup := seen[fix]; dup {
				continue
			}
			seen[fix] = struct{}{}
			actions = append(actions, fix)
			if len(actions) == maxRecommendedActions {
				return actions
			}
		}
	}
	return actions
}

func evaluateCorrelations(explanations []models.LogExplanation) []string {
	categories := make(map[models.Category]struct{})
	patternIDs := make(map[string]struct{})
	for _, e := range explanations {
		categories[e.Category] = struct{}{}
		patternIDs[e.PatternID] = struct{}{}
	}

	findings := make([]string, 0, 2)
	for _, rule := range categoryCorrelations {
		if _, ok := categories[rule.first]; !ok {
			continue
		}
		_, secondPresent := categories[rule.second]
		if !secondPresent && rule.patternID != "" {
			_, secondPresent = patternIDs[rule.patternID]
		}
		if secondPresent {
			findings = append(findings, rule.finding)
		}
	}
	return findings
}

func buildTitle(explanations []models.LogExplanation, level models.Severity, breakdown map[models.Category]int, categoryOrder []models.Category) string {
	distinctPatterns := make([]string, 0, 2)
	seen := make(map[string]struct{})
	var firstMatched *models.LogExplanation
	for i := range explanations {
		if !explanations[i].Matched() {
			continue
		}
		if firstMatched == nil {
			firstMatched = &explanations[i]
		}
		id := explanations[i].PatternID
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			distinctPatterns = append(distinctPatterns, id)
		}
	}

	switch len(distinctPatterns) {
	case 0:
		return fmt.Sprintf("%s Incident - Unrecognized Errors Detected", level)
	case 1:
		return fmt.Sprintf("%s Incident - %s", level, truncate(firstMatched.Summary, titleSummaryLimit))
	default:
		top := topCategory(breakdown, categoryOrder)
		return fmt.Sprintf("%s Incident - %d issue types detected across %s", level, len(distinctPatterns), titleCase(string(top)))
	}
}

// topCategory picks the category with the highest count; ties go to the
// first-seen category so the result is deterministic.
func topCategory(breakdown map[models.Category]int, categoryOrder []models.Category) models.Category {
	top := models.CategoryUnknown
	best := -1
	for _, cat := range categoryOrder {
		if breakdown[cat] > best {
			best = breakdown[cat]
			top = cat
		}
	}
	return top
}

func buildSummaryText(summary models.IncidentSummary, incidentContext string) string {
	sentences := make([]string, 0, 6)
	sentences = append(sentences, fmt.Sprintf(
		"Analyzed %d log entries with an overall severity of %s (score %d/100).",
		summary.TotalLogsAnalyzed, summary.Severity, summary.SeverityScore))

	if len(summary.AffectedSystems) > 0 {
		names := make([]string, 0, len(summary.AffectedSystems))
		for _, cat := range summary.AffectedSystems {
			names = append(names, string(cat))
		}
		sentences = append(sentences, fmt.Sprintf("Affected systems: %s.", strings.Join(names, ", ")))
	}

	criticalCount := 0
	highCount := 0
	for _, event := range summary.Timeline {
		switch event.Severity {
		case models.SeverityCritical:
			criticalCount++
		case models.SeverityHigh:
			highCount++
		}
	}
	if criticalCount > 0 {
		sentences = append(sentences, fmt.Sprintf("%d log entries at CRITICAL severity.", criticalCount))
	}
	if highCount > 0 {
		sentences = append(sentences, fmt.Sprintf("%d log entries at HIGH severity.", highCount))
	}

	if len(summary.Correlations) > 0 {
		sentences = append(sentences, fmt.Sprintf("Correlation findings: %s", strings.Join(summary.Correlations, "; ")))
	}

	if incidentContext != "" {
		sentences = append(sentences, fmt.Sprintf("Context: %s", incidentContext))
	}

	return strings.Join(sentences, " ")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func titleCase(category string) string {
	words := strings.Split(strings.ReplaceAll(category, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
