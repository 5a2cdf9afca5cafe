package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/loglens/loglens/internal/utils"
)

// UsageRecord describes one analysis operation for the usage endpoint.
type UsageRecord struct {
	Operation  string `json:"operation"`
	Lines      int    `json:"lines"`
	DurationMs int64  `json:"durationMs"`
	Outcome    string `json:"outcome"`
	Timestamp  string `json:"timestamp"`
}

// UsageReporter posts per-operation usage records to an optional HTTP
// endpoint. A nil reporter is valid and drops all records.
type UsageReporter struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewUsageReporter creates a reporter. An empty endpoint returns nil,
// which callers treat as reporting disabled.
func NewUsageReporter(endpoint string, timeout time.Duration, logger *slog.Logger) *UsageReporter {
	if endpoint == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UsageReporter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Report sends one record. Failures are logged, never returned to the
// analysis path; the reporter must not slow down or break requests.
func (r *UsageReporter) Report(ctx context.Context, rec UsageRecord) {
	if r == nil {
		return
	}
	if rec.Timestamp == "" {
		rec.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	if err := r.post(ctx, rec); err != nil {
		r.logger.Warn("usage report failed", "operation", rec.Operation, "error", err)
	}
}

func (r *UsageReporter) post(ctx context.Context, rec UsageRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return utils.NewAppError("repo.UsageReporter.post", "marshal usage record", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return utils.NewAppError("repo.UsageReporter.post", "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return utils.NewAppError("repo.UsageReporter.post", "send usage record", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return utils.NewAppError("repo.UsageReporter.post",
			fmt.Sprintf("usage endpoint returned %d", resp.StatusCode), nil)
	}
	return nil
}
