package engine

import (
	"fmt"

	"github.com/loglens/loglens/internal/extract"
	"github.com/loglens/loglens/internal/models"
	"github.com/loglens/loglens/internal/rules"
)

// Fixed fallback text for lines no rule matched. The unknown path always
// produces a complete, well-formed explanation; it is not an error.
const unknownRootCause = "The log line did not match any known pattern, so the root cause could not be determined automatically."

var unknownPossibleCauses = []string{
	"Application-specific or custom log format not covered by the pattern library",
	"A new or rare failure mode that has no pattern yet",
	"Free-form output that does not indicate a problem",
}

var unknownRecommendedFixes = []string{
	"Review the surrounding log lines for related errors",
	"Search the application's documentation or issue tracker for this message",
	"Add a pattern for this message if it recurs and matters",
}

var errorFamilyLevels = map[string]struct{}{
	"ERR": {}, "ERROR": {}, "FATAL": {}, "CRIT": {}, "CRITICAL": {},
	"EMERG": {}, "EMERGENCY": {}, "ALERT": {},
}

var warnFamilyLevels = map[string]struct{}{
	"WARN": {}, "WARNING": {}, "NOTICE": {},
}

// Synthesizer combines a matched rule (or the unknown fallback) with the
// extracted metadata and severity result into one LogExplanation.
type Synthesizer struct{}

// NewSynthesizer constructs a Synthesizer.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize builds the explanation record for one line. It never fails.
func (s *Synthesizer) Synthesize(raw string, rule *rules.PatternRule, md extract.ParsedMetadata, sev models.SeverityResult, confidence float64) models.LogExplanation {
	explanation := models.LogExplanation{
		RawLog:        raw,
		Severity:      sev.Level,
		SeverityScore: sev.Score,
		Metadata:      metadataMap(md),
		Timestamp:     md.Timestamp,
		Source:        md.Source,
		Engine:        models.EngineRuleBased,
	}

	if rule == nil {
		explanation.PatternID = models.PatternUnknown
		explanation.Category = models.CategoryUnknown
		explanation.Confidence = 0
		explanation.Summary = unknownSummary(md.LogLevel)
		explanation.RootCause = unknownRootCause
		explanation.PossibleCauses = append([]string(nil), unknownPossibleCauses...)
		explanation.RecommendedFixes = append([]string(nil), unknownRecommendedFixes...)
		return explanation
	}

	explanation.PatternID = rule.ID
	explanation.Category = rule.Category
	explanation.Confidence = confidence
	explanation.Summary = rule.Template.Summary
	explanation.RootCause = rule.Template.RootCause
	explanation.PossibleCauses = append([]string(nil), rule.Template.PossibleCauses...)
	explanation.RecommendedFixes = append([]string(nil), rule.Template.RecommendedFixes...)
	return explanation
}

// unknownSummary picks the fallback summary by the extracted level family.
func unknownSummary(logLevel string) string {
	if _, ok := errorFamilyLevels[logLevel]; ok {
		return "Error-level log that did not match any known pattern; manual review recommended."
	}
	if _, ok := warnFamilyLevels[logLevel]; ok {
		return "Warning-level log with no matching pattern; possibly non-critical."
	}
	if logLevel != "" {
		return fmt.Sprintf("Informational log (%s) with no specific pattern detected.", logLevel)
	}
	return "Informational log with no specific pattern detected."
}

// metadataMap builds the wire metadata map from the fields that are
// actually present.
func metadataMap(md extract.ParsedMetadata) map[string]string {
	out := make(map[string]string)
	put := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	put("logLevel", md.LogLevel)
	put("pid", md.PID)
	put("ipAddress", md.IPAddress)
	put("port", md.Port)
	put("errorCode", md.ErrorCode)
	put("username", md.Username)
	put("filePath", md.FilePath)
	put("httpStatus", md.HTTPStatus)
	put("httpMethod", md.HTTPMethod)
	put("url", md.URL)
	return out
}
