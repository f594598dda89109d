// Package transform runs Gemini-backed cleanup, translation, and
// rank-selection over digest items.
package transform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"llmdigest/internal/config"
	"llmdigest/internal/logger"
	"llmdigest/internal/models"
)

// ErrMissingAPIKey indicates that no Gemini API key was provided.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY not set")

// Usage accumulates token counts across model calls.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Add folds another usage into this one.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

func (u *Usage) record(resp *genai.GenerateContentResponse) {
	if resp == nil || resp.UsageMetadata == nil {
		return
	}

	u.InputTokens += int(resp.UsageMetadata.PromptTokenCount)
	u.OutputTokens += int(resp.UsageMetadata.CandidatesTokenCount)
}

// Service drives the three item transforms against the Gemini API. Cleanup
// and translation run on the flash model, rank-selection on the pro model.
type Service struct {
	client    *genai.Client
	clean     *genai.GenerativeModel
	rank      *genai.GenerativeModel
	translate *genai.GenerativeModel
	limits    config.SelectionConfig
	retry     config.RetryPolicy
	batch     int
	log       *logger.Logger
}

// NewService creates a transform service. An empty apiKey falls back to the
// GEMINI_API_KEY environment variable.
func NewService(ctx context.Context, apiKey string, cfg *config.Config, log *logger.Logger) (*Service, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	s := &Service{
		client: client,
		limits: cfg.Digest.Selection,
		retry:  cfg.Digest.Retry,
		batch:  cfg.Digest.Transform.BatchSize,
		log:    log.With("component", "transform"),
	}

	s.clean = client.GenerativeModel(cfg.Digest.Transform.CleanModel)
	s.clean.SetTemperature(0.1)

	s.rank = client.GenerativeModel(cfg.Digest.Transform.SelectModel)
	s.rank.SetTemperature(0.2)

	s.translate = client.GenerativeModel(cfg.Digest.Transform.TranslateModel)
	s.translate.SetTemperature(0.1)

	return s, nil
}

// Close releases the underlying API client.
func (s *Service) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// generate runs one prompt with retries and records token usage. An empty
// response text is returned as-is; callers keep their input in that case.
func (s *Service) generate(ctx context.Context, model *genai.GenerativeModel, prompt string, usage *Usage) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= s.retry.MaxAttempts; attempt++ {
		if delay := s.retry.GetRetryDelay(attempt); delay > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = fmt.Errorf("generation failed (attempt %d/%d): %w", attempt, s.retry.MaxAttempts, err)
			s.log.Debug("generation failed", "attempt", attempt, "error", err)

			if ctx.Err() != nil {
				return "", lastErr
			}

			continue
		}

		usage.record(resp)

		return responseText(resp), nil
	}

	return "", lastErr
}

// responseText flattens the first candidate's text parts.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder

	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return strings.TrimSpace(sb.String())
}

// mapItems applies fn to every item with bounded concurrency, writing
// results back in place so order is preserved. Per-item usage is summed
// after all workers finish.
func (s *Service) mapItems(ctx context.Context, items []models.Item, fn func(context.Context, models.Item, *Usage) models.Item) Usage {
	sem := make(chan struct{}, s.batch)
	usages := make([]Usage, len(items))

	var wg sync.WaitGroup

	for i := range items {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}

		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			items[i] = fn(ctx, items[i], &usages[i])
		}(i)
	}

	wg.Wait()

	var total Usage
	for _, u := range usages {
		total.Add(u)
	}

	return total
}
