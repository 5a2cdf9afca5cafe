package models

import "strings"

// Severity captures impact levels on the four-level ordinal scale.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// BaseScore returns the numeric anchor for a severity level.
func (s Severity) BaseScore() int {
	switch s {
	case SeverityCritical:
		return 90
	case SeverityHigh:
		return 70
	case SeverityMedium:
		return 40
	case SeverityLow:
		return 15
	default:
		return 15
	}
}

// Valid reports whether s is one of the four known levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

// SeverityFromScore maps a 0-100 score back onto a level.
func SeverityFromScore(score int) Severity {
	switch {
	case score >= 80:
		return SeverityCritical
	case score >= 55:
		return SeverityHigh
	case score >= 30:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// SeverityFromLogLevel maps an extracted log-level token onto a severity.
// Unknown or absent levels default to MEDIUM.
func SeverityFromLogLevel(level string) Severity {
	switch strings.ToUpper(level) {
	case "EMERG", "EMERGENCY", "FATAL", "CRIT", "CRITICAL":
		return SeverityCritical
	case "ERR", "ERROR", "ALERT":
		return SeverityHigh
	case "WARN", "WARNING", "NOTICE":
		return SeverityMedium
	default:
		return SeverityMedium
	}
}

// SeverityResult pairs a level with its fine-grained score and the reason
// the scorer settled on it.
type SeverityResult struct {
	Level  Severity `json:"level"`
	Score  int      `json:"score"`
	Reason string   `json:"reason"`
}
