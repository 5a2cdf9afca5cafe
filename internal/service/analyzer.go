package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/loglens/loglens/internal/cache"
	"github.com/loglens/loglens/internal/engine"
	"github.com/loglens/loglens/internal/metrics"
	"github.com/loglens/loglens/internal/models"
	"github.com/loglens/loglens/internal/repo"
	"github.com/loglens/loglens/internal/utils"
)

const (
	cacheKeyPrefix    = "loglens:explain:"
	latencyLogEvery   = 20
	latencySampleSize = 512
)

// Analyzer fronts the interpretation pipeline with result caching,
// metrics, latency tracking and usage reporting. It is the unit the API
// layer and the CLI talk to.
type Analyzer struct {
	logger   *slog.Logger
	pipeline *engine.Pipeline
	cache    cache.Provider
	cacheTTL time.Duration
	usage    *repo.UsageReporter
	latency  *utils.LatencyTracker
}

// NewAnalyzer wires the pipeline with its supporting services. The cache
// provider may be nil, which disables caching; the usage reporter may be
// nil, which disables reporting.
func NewAnalyzer(logger *slog.Logger, pipeline *engine.Pipeline, provider cache.Provider, cacheTTL time.Duration, usage *repo.UsageReporter) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if provider == nil {
		provider = cache.NoopProvider{}
	}
	return &Analyzer{
		logger:   logger,
		pipeline: pipeline,
		cache:    provider,
		cacheTTL: cacheTTL,
		usage:    usage,
		latency:  utils.NewLatencyTracker(latencySampleSize),
	}
}

// Explain interprets one raw log line.
func (a *Analyzer) Explain(ctx context.Context, line, source string) models.LogExplanation {
	start := time.Now()

	key := explainCacheKey(source, line)
	if cached, ok := a.cacheLookup(ctx, key); ok {
		metrics.ObserveCacheHit()
		a.reportUsage("explain", 1, start, metrics.OutcomeCached)
		return cached
	}

	explanation := a.pipeline.Explain(line, source)
	a.cacheStore(ctx, key, explanation)

	outcome := metrics.OutcomeUnknown
	if explanation.Matched() {
		outcome = metrics.OutcomeMatched
	}
	a.observe(start, outcome, string(explanation.Severity))
	a.reportUsage("explain", 1, start, outcome)
	return explanation
}

// ExplainBatch interprets each line independently, preserving input order.
func (a *Analyzer) ExplainBatch(ctx context.Context, lines []string, source string) []models.LogExplanation {
	start := time.Now()

	explanations := make([]models.LogExplanation, 0, len(lines))
	matched := 0
	for _, line := range lines {
		explanation := a.Explain(ctx, line, source)
		if explanation.Matched() {
			matched++
		}
		explanations = append(explanations, explanation)
	}

	a.logger.Debug("batch explained",
		"lines", len(lines),
		"matched", matched,
		"duration", time.Since(start))
	a.reportUsage("batch", len(lines), start, outcomeFor(matched))
	return explanations
}

// Incident correlates a group of lines into one incident summary.
// Incident results are never cached; the grouping is request specific.
func (a *Analyzer) Incident(ctx context.Context, lines []string, incidentContext string) models.IncidentSummary {
	start := time.Now()

	summary := a.pipeline.Incident(lines, incidentContext)
	metrics.ObserveIncident(time.Since(start))
	a.reportUsage("incident", len(lines), start, outcomeFor(len(summary.RootCauseChain)))
	return summary
}

// Interesting reports whether a line trips any rule's keyword pre-filter.
func (a *Analyzer) Interesting(line string) bool {
	return a.pipeline.Interesting(line)
}

func (a *Analyzer) observe(start time.Time, outcome, severity string) {
	elapsed := time.Since(start)
	metrics.ObserveExplain(elapsed, outcome, severity)

	a.latency.Observe(elapsed)
	if count := a.latency.Count(); count > 0 && count%latencyLogEvery == 0 {
		a.logger.Debug("explain latency",
			"samples", count,
			"p50", a.latency.Percentile(50),
			"p95", a.latency.Percentile(95))
	}
}

func (a *Analyzer) reportUsage(operation string, lines int, start time.Time, outcome string) {
	if a.usage == nil {
		return
	}
	rec := repo.UsageRecord{
		Operation:  operation,
		Lines:      lines,
		DurationMs: time.Since(start).Milliseconds(),
		Outcome:    outcome,
	}
	go a.usage.Report(context.Background(), rec)
}

func (a *Analyzer) cacheLookup(ctx context.Context, key string) (models.LogExplanation, bool) {
	payload, err := a.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			a.logger.Warn("cache get failed", "error", err)
		}
		return models.LogExplanation{}, false
	}

	var explanation models.LogExplanation
	if err := json.Unmarshal(payload, &explanation); err != nil {
		a.logger.Warn("cache entry corrupt, discarding", "key", key, "error", err)
		_ = a.cache.Del(ctx, key)
		return models.LogExplanation{}, false
	}
	return explanation, true
}

func (a *Analyzer) cacheStore(ctx context.Context, key string, explanation models.LogExplanation) {
	payload, err := json.Marshal(explanation)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, payload, a.cacheTTL); err != nil {
		a.logger.Warn("cache set failed", "error", err)
	}
}

func explainCacheKey(source, line string) string {
	sum := sha256.Sum256([]byte(source + "\x00" + line))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func outcomeFor(matched int) string {
	if matched > 0 {
		return metrics.OutcomeMatched
	}
	return metrics.OutcomeUnknown
}
