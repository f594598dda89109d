// Package fetch downloads daily newsletter issues as markdown through a
// reader proxy.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"llmdigest/internal/config"
	"llmdigest/internal/logger"
	"llmdigest/pkg/docmeta"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Status classifies the outcome of one day's fetch.
type Status int

const (
	// StatusFetched means the issue was downloaded and written.
	StatusFetched Status = iota
	// StatusSkipped means a verified copy already existed on disk.
	StatusSkipped
	// StatusUnavailable means the day has no real issue behind it.
	StatusUnavailable
	// StatusFailed means the download or write failed.
	StatusFailed
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusFetched:
		return "fetched"
	case StatusSkipped:
		return "skipped"
	case StatusUnavailable:
		return "unavailable"
	case StatusFailed:
		return "failed"
	}

	return "unknown"
}

// Result records the outcome for one day.
type Result struct {
	Date   time.Time
	URL    string
	Path   string
	Status Status
	Err    error
}

// Fetcher downloads newsletter issues with config-driven retry logic.
type Fetcher struct {
	client       *http.Client
	fetch        config.FetchConfig
	retry        config.RetryPolicy
	sign         bool
	skipVerified bool
	log          *logger.Logger
}

// NewFetcher creates a fetcher from the worker configuration.
func NewFetcher(cfg *config.Config, log *logger.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Digest.Retry.GetTimeout(),
		},
		fetch:        cfg.Digest.Fetch,
		retry:        cfg.Digest.Retry,
		sign:         cfg.Features.SignDocuments,
		skipVerified: cfg.Features.SkipVerified,
		log:          log.With("component", "fetch"),
	}
}

// FetchBatch downloads a run of consecutive days starting at start into
// dir, creating it if needed. Per-day failures are recorded in the results,
// never fatal to the batch; only directory creation and context
// cancellation abort.
func (f *Fetcher) FetchBatch(ctx context.Context, dir string, start time.Time, days int) ([]Result, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create batch directory: %w", err)
	}

	results := make([]Result, 0, days)

	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		res := f.FetchDay(ctx, dir, day)
		results = append(results, res)

		switch res.Status {
		case StatusFetched:
			f.log.Info("issue downloaded", "file", res.Path)
		case StatusSkipped:
			f.log.Debug("issue already on disk", "file", res.Path)
		case StatusUnavailable:
			f.log.Warn("issue unavailable", "date", day.Format("2006-01-02"), "error", res.Err)
		case StatusFailed:
			f.log.Warn("download failed", "date", day.Format("2006-01-02"), "error", res.Err)
		}

		if ctx.Err() != nil {
			return results, ctx.Err()
		}
	}

	return results, nil
}

// FetchDay downloads one issue into dir. A day whose existing file still
// carries a valid metadata signature is skipped. Politeness delay applies
// before every network request.
func (f *Fetcher) FetchDay(ctx context.Context, dir string, day time.Time) Result {
	res := Result{
		Date: day,
		URL:  ReaderURL(f.fetch.ReaderPrefix, ArchiveURL(f.fetch.ArchiveBase, day)),
		Path: filepath.Join(dir, FileName(day)),
	}

	if f.skipVerified {
		if data, err := os.ReadFile(res.Path); err == nil {
			if ok, _ := docmeta.Verify(string(data)); ok {
				res.Status = StatusSkipped

				return res
			}
		}
	}

	if delay := f.fetch.GetDelay(); delay > 0 {
		select {
		case <-ctx.Done():
			res.Status = StatusFailed
			res.Err = ctx.Err()

			return res
		case <-time.After(delay):
		}
	}

	body, err := f.download(ctx, res.URL)
	if err != nil {
		res.Status = StatusFailed
		res.Err = err

		return res
	}

	if err := ValidateIssue(body, f.fetch.MinContentLen); err != nil {
		res.Status = StatusUnavailable
		res.Err = err

		return res
	}

	if f.sign {
		body = docmeta.Sign(body, res.URL, time.Now().UTC())
	}

	if err := os.WriteFile(res.Path, []byte(body), 0644); err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("failed to write file: %w", err)

		return res
	}

	res.Status = StatusFetched

	return res
}

// download fetches a URL with retries. Backoff delays come from the retry
// policy; only transient HTTP statuses are retried.
func (f *Fetcher) download(ctx context.Context, url string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= f.retry.MaxAttempts; attempt++ {
		if delay := f.retry.GetRetryDelay(attempt); delay > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}

		if f.fetch.UserAgent != "" {
			req.Header.Set("User-Agent", f.fetch.UserAgent)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w", attempt, f.retry.MaxAttempts, err)
			f.log.Debug("request failed", "url", url, "attempt", attempt, "error", err)

			if ctx.Err() != nil {
				return "", lastErr
			}

			continue
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)

			if !isRetryableStatus(resp.StatusCode) {
				return "", lastErr
			}

			f.log.Debug("retryable status", "url", url, "attempt", attempt, "status", resp.StatusCode)

			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		if readErr != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", readErr)

			continue
		}

		return string(body), nil
	}

	return "", lastErr
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	// Retry on temporary failures
	switch statusCode {
	case http.StatusServiceUnavailable: // 503
		return true
	case http.StatusGatewayTimeout: // 504
		return true
	case http.StatusTooManyRequests: // 429
		return true
	case http.StatusRequestTimeout: // 408
		return true
	}

	return false
}
