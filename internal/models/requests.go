package models

// ExplainRequest asks for one log line to be explained. Source is an opaque
// caller-supplied origin tag; it is attached to the result, never parsed.
type ExplainRequest struct {
	Log    string `json:"log"`
	Source string `json:"source,omitempty"`
}

// BatchRequest asks for an ordered list of independent lines. Output order
// matches input order.
type BatchRequest struct {
	Logs   []string `json:"logs"`
	Source string   `json:"source,omitempty"`
}

// IncidentRequest asks for an ordered set of related lines to be analyzed
// jointly. IncidentContext is opaque free text appended to the narrative.
type IncidentRequest struct {
	Logs            []string `json:"logs"`
	IncidentContext string   `json:"incidentContext,omitempty"`
}
