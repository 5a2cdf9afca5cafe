package models

const (
	// EngineRuleBased tags explanations produced by the static rule engine.
	EngineRuleBased = "rule-based"
	// PatternUnknown is the sentinel pattern id for lines no rule matched.
	PatternUnknown = "unknown"
)

// LogExplanation is the structured interpretation of one raw log line.
// Field names form the wire contract and must not change.
type LogExplanation struct {
	RawLog           string            `json:"rawLog"`
	PatternID        string            `json:"patternId"`
	Summary          string            `json:"summary"`
	Category         Category          `json:"category"`
	Severity         Severity          `json:"severity"`
	SeverityScore    int               `json:"severityScore"`
	RootCause        string            `json:"rootCause"`
	PossibleCauses   []string          `json:"possibleCauses"`
	RecommendedFixes []string          `json:"recommendedFixes"`
	Metadata         map[string]string `json:"metadata"`
	Timestamp        string            `json:"timestamp,omitempty"`
	Source           string            `json:"source,omitempty"`
	Confidence       float64           `json:"confidence"`
	Engine           string            `json:"engine"`
}

// Matched reports whether a pattern rule produced this explanation.
func (e LogExplanation) Matched() bool {
	return e.PatternID != "" && e.PatternID != PatternUnknown
}
