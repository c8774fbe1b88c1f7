// internal/recommend/orchestrator.go
package recommend

import (
	"context"
	"fmt"
	"time"

	commonerrors "lease-advisor/internal/common/errors"
	"lease-advisor/internal/common/logger"
	"lease-advisor/internal/common/metrics"
	"lease-advisor/internal/models"
)

// Config holds the retry orchestration settings. MaxRetries counts retries
// after the first call, so the total attempt budget is MaxRetries+1.
type Config struct {
	MaxRetries         int
	MinRecommendations int
	RetryDelay         time.Duration
	ExponentialBackoff bool
	SearchRadiusMiles  int
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:         3,
		MinRecommendations: 2,
		RetryDelay:         2 * time.Second,
		ExponentialBackoff: false,
		SearchRadiusMiles:  10,
	}
}

// Attempt is the record of one call-and-evaluate cycle. The full attempt log
// rides along on the Outcome for diagnostics.
type Attempt struct {
	Attempt int                            `json:"attempt"`
	Count   int                            `json:"count"`
	Data    *models.RecommendationDocument `json:"data"`
	Content string                         `json:"content"`
	Error   string                         `json:"error,omitempty"`
}

// Outcome aggregates a full orchestrator run.
type Outcome struct {
	Success     bool                           `json:"success"`
	Data        *models.RecommendationDocument `json:"data"`
	RawResponse string                         `json:"raw_response,omitempty"`
	Attempts    int                            `json:"attempts"`
	Warning     string                         `json:"warning,omitempty"`
	Error       string                         `json:"error,omitempty"`
	AllAttempts []Attempt                      `json:"all_attempts"`
}

// runState is the explicit retry state machine. Every attempt evaluation
// lands in exactly one of the four terminal-or-continue states, including the
// "last attempt had no parseable JSON" boundary, which is a deliberate
// exhaustedFailure rather than a silent fallthrough.
type runState int

const (
	stateRetrying runState = iota
	stateSuccess
	stateExhaustedSuccess
	stateExhaustedFailure
)

// Orchestrator drives repeated calls against the recommendation source until
// the minimum-count threshold is met or the attempt budget is exhausted. Runs
// are strictly sequential and share no mutable state, so any number of
// concurrent runs may proceed independently.
type Orchestrator struct {
	config Config
	client Client
	logger logger.Logger
}

func NewOrchestrator(config Config, client Client, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		config: config,
		client: client,
		logger: log.With(map[string]interface{}{
			"component": "recommendation-orchestrator",
		}),
	}
}

// Run executes the retry loop for one quiz submission. On success the Outcome
// carries the triggering document; on hard failure (transport error or no
// parseable JSON on the terminal attempt) it returns the partial Outcome for
// diagnostics together with a non-nil error.
func (o *Orchestrator) Run(ctx context.Context, quiz models.QuizData) (*Outcome, error) {
	maxAttempts := o.config.MaxRetries + 1
	attempts := make([]Attempt, 0, maxAttempts)

	o.logger.Info("starting recommendation run", map[string]interface{}{
		"zipcode":            quiz.Zipcode,
		"maxAttempts":        maxAttempts,
		"minRecommendations": o.config.MinRecommendations,
	})

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		final := attempt == maxAttempts
		prompt := BuildPrompt(quiz, o.config.SearchRadiusMiles, attempt)

		content, callErr := o.client.Generate(ctx, prompt, CallOptions{
			Temperature: TemperatureFor(attempt),
			WebSearch:   true,
		})

		state, record := o.evaluate(attempt, final, content, callErr)
		attempts = append(attempts, record)

		switch state {
		case stateSuccess:
			o.logger.Info("recommendation threshold met", map[string]interface{}{
				"attempt": attempt,
				"count":   record.Count,
			})
			return &Outcome{
				Success:     true,
				Data:        record.Data,
				RawResponse: content,
				Attempts:    attempt,
				AllAttempts: attempts,
			}, nil

		case stateExhaustedSuccess:
			warning := fmt.Sprintf("Only found %d recommendations after %d attempts", record.Count, attempt)
			o.logger.Warn("returning below-threshold recommendations", map[string]interface{}{
				"attempt": attempt,
				"count":   record.Count,
			})
			return &Outcome{
				Success:     true,
				Data:        record.Data,
				RawResponse: content,
				Attempts:    attempt,
				Warning:     warning,
				AllAttempts: attempts,
			}, nil

		case stateExhaustedFailure:
			o.logger.Error("recommendation run exhausted", map[string]interface{}{
				"attempts": attempt,
				"error":    record.Error,
			})
			outcome := &Outcome{
				Success:     false,
				Attempts:    attempt,
				Error:       record.Error,
				AllAttempts: attempts,
			}
			if callErr != nil {
				return outcome, commonerrors.NewRecommendationFailedError(attempt, callErr)
			}
			return outcome, commonerrors.NewNoValidJSONError(attempt)

		case stateRetrying:
			o.logger.Info("retrying recommendation call", map[string]interface{}{
				"attempt": attempt,
				"count":   record.Count,
				"delay":   o.delayFor(attempt).String(),
			})
			if err := o.wait(ctx, attempt); err != nil {
				outcome := &Outcome{
					Success:     false,
					Attempts:    attempt,
					Error:       err.Error(),
					AllAttempts: attempts,
				}
				return outcome, err
			}
		}
	}

	// Unreachable: every terminal attempt maps to a terminal state above.
	return nil, commonerrors.NewRecommendationFailedError(maxAttempts, fmt.Errorf("retry loop exited without outcome"))
}

// evaluate classifies one attempt into the state machine.
func (o *Orchestrator) evaluate(attempt int, final bool, content string, callErr error) (runState, Attempt) {
	if callErr != nil {
		metrics.RecommendationAttempts.WithLabelValues("transport_error").Inc()
		record := Attempt{Attempt: attempt, Count: 0, Data: nil, Content: "", Error: callErr.Error()}
		if final {
			return stateExhaustedFailure, record
		}
		return stateRetrying, record
	}

	doc, parseErr := ExtractDocument(content)
	if parseErr != nil {
		metrics.RecommendationAttempts.WithLabelValues("no_json").Inc()
		record := Attempt{Attempt: attempt, Count: 0, Data: nil, Content: content, Error: "No valid JSON in response"}
		if final {
			return stateExhaustedFailure, record
		}
		return stateRetrying, record
	}

	count := len(doc.Recommendations)
	metrics.RecommendationAttempts.WithLabelValues("parsed").Inc()
	record := Attempt{Attempt: attempt, Count: count, Data: doc, Content: content}

	if count >= o.config.MinRecommendations {
		return stateSuccess, record
	}
	if final {
		return stateExhaustedSuccess, record
	}
	return stateRetrying, record
}

// wait suspends between attempts, honoring cancellation.
func (o *Orchestrator) wait(ctx context.Context, attempt int) error {
	select {
	case <-time.After(o.delayFor(attempt)):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// delayFor computes the delay after the given attempt: constant by default,
// RetryDelay×2^(attempt-1) when exponential backoff is enabled.
func (o *Orchestrator) delayFor(attempt int) time.Duration {
	if o.config.ExponentialBackoff && attempt > 1 {
		return o.config.RetryDelay * time.Duration(1<<(attempt-1))
	}
	return o.config.RetryDelay
}
