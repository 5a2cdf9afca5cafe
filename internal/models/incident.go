package models

// TimelineEvent records one log entry's position in an incident timeline.
type TimelineEvent struct {
	Timestamp string   `json:"timestamp,omitempty"`
	Summary   string   `json:"summary"`
	Severity  Severity `json:"severity"`
	Category  Category `json:"category"`
}

// IncidentSummary is the aggregate interpretation of an ordered set of
// related log lines. Field names form the wire contract.
type IncidentSummary struct {
	Title              string           `json:"title"`
	Summary            string           `json:"summary"`
	Severity           Severity         `json:"severity"`
	SeverityScore      int              `json:"severityScore"`
	RootCauseChain     []string         `json:"rootCauseChain"`
	AffectedSystems    []Category       `json:"affectedSystems"`
	Timeline           []TimelineEvent  `json:"timeline"`
	RecommendedActions []string         `json:"recommendedActions"`
	TotalLogsAnalyzed  int              `json:"totalLogsAnalyzed"`
	CategoryBreakdown  map[Category]int `json:"categoryBreakdown"`
	Correlations       []string         `json:"correlations"`
}
