package engine

import (
	"log/slog"

	"github.com/loglens/loglens/internal/extract"
	"github.com/loglens/loglens/internal/models"
	"github.com/loglens/loglens/internal/rules"
)

// Pipeline wires extractor, matcher, scorer, synthesizer and correlator
// over one shared rule registry. All methods are pure and safe for
// concurrent use.
type Pipeline struct {
	logger      *slog.Logger
	registry    *rules.Registry
	extractor   *extract.Extractor
	matcher     *Matcher
	scorer      *Scorer
	synthesizer *Synthesizer
	correlator  *Correlator
}

// NewPipeline constructs the interpretation pipeline.
func NewPipeline(logger *slog.Logger, registry *rules.Registry) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:      logger,
		registry:    registry,
		extractor:   extract.NewExtractor(),
		matcher:     NewMatcher(registry),
		scorer:      NewScorer(),
		synthesizer: NewSynthesizer(),
		correlator:  NewCorrelator(),
	}
}

// Explain runs the single-line flow: extract, match, score, synthesize.
// The source argument is the caller-supplied opaque origin tag; it fills
// the explanation's source only when extraction found none.
func (p *Pipeline) Explain(line, source string) models.LogExplanation {
	md := p.extractor.Extract(line)

	var rule *rules.PatternRule
	confidence := 0.0
	if best, ok := p.matcher.Best(line); ok {
		rule = best.Rule
		confidence = best.Confidence
	}

	sev := p.scorer.Score(line, rule, md.LogLevel)
	explanation := p.synthesizer.Synthesize(line, rule, md, sev, confidence)
	if explanation.Source == "" && source != "" {
		explanation.Source = source
	}
	return explanation
}

// ExplainBatch explains every line independently. Output order matches
// input order.
func (p *Pipeline) ExplainBatch(lines []string, source string) []models.LogExplanation {
	explanations := make([]models.LogExplanation, 0, len(lines))
	for _, line := range lines {
		explanations = append(explanations, p.Explain(line, source))
	}
	return explanations
}

// Incident explains every line and correlates the results into a single
// incident narrative.
func (p *Pipeline) Incident(lines []string, incidentContext string) models.IncidentSummary {
	explanations := p.ExplainBatch(lines, "")
	return p.correlator.Summarize(explanations, incidentContext)
}

// Interesting runs only the keyword pre-filter: it reports whether any
// rule's keywords occur in the line, without computing confidence.
func (p *Pipeline) Interesting(line string) bool {
	return len(p.registry.Candidates(line)) > 0
}

// Candidates exposes the pre-filter's rule list for triage displays.
func (p *Pipeline) Candidates(line string) []rules.PatternRule {
	return p.registry.Candidates(line)
}
