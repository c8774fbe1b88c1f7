package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "lease-advisor/internal/common/errors"
	"lease-advisor/internal/common/logger"
	"lease-advisor/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

// scriptedCall is one canned response from the stub source.
type scriptedCall struct {
	content string
	err     error
}

// stubClient replays a script of responses and records every call it saw.
type stubClient struct {
	script  []scriptedCall
	prompts []string
	options []CallOptions
}

func (s *stubClient) Generate(ctx context.Context, prompt string, opts CallOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.prompts = append(s.prompts, prompt)
	s.options = append(s.options, opts)

	call := s.script[len(s.prompts)-1]
	return call.content, call.err
}

func (s *stubClient) calls() int { return len(s.prompts) }

// contentWith renders a response wrapping a document with n recommendations.
func contentWith(n int) string {
	entries := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, fmt.Sprintf(
			`{"rank": %d, "make": "Make%d", "model": "Model%d", "msrp": "30000", "residual": "58%%", "lease_months": 36}`, i, i, i))
	}
	return fmt.Sprintf(`Here is what I found: {"recommendations": [%s]}`, strings.Join(entries, ","))
}

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.RetryDelay = time.Millisecond
	return cfg
}

func testQuiz() models.QuizData {
	return models.QuizData{Zipcode: "98101"}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestOrchestrator_Run_FirstAttemptSuccess(t *testing.T) {
	client := &stubClient{script: []scriptedCall{
		{content: contentWith(3)},
	}}
	o := NewOrchestrator(fastConfig(), client, logger.NewTestLogger(t))

	outcome, err := o.Run(context.Background(), testQuiz())
	require.NoError(t, err)

	assert.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.Attempts)
	assert.Empty(t, outcome.Warning)
	require.NotNil(t, outcome.Data)
	assert.Len(t, outcome.Data.Recommendations, 3)
	assert.Equal(t, 1, client.calls())
	require.Len(t, outcome.AllAttempts, 1)
	assert.Equal(t, 3, outcome.AllAttempts[0].Count)
}

func TestOrchestrator_Run_EarlyExitOnceThresholdMet(t *testing.T) {
	// Attempts 1 and 2 undershoot, attempt 3 meets the threshold; the fourth
	// scripted call must never happen.
	client := &stubClient{script: []scriptedCall{
		{content: contentWith(1)},
		{content: contentWith(1)},
		{content: contentWith(3)},
		{content: contentWith(5)},
	}}
	o := NewOrchestrator(fastConfig(), client, logger.NewTestLogger(t))

	outcome, err := o.Run(context.Background(), testQuiz())
	require.NoError(t, err)

	assert.True(t, outcome.Success)
	assert.Equal(t, 3, outcome.Attempts)
	assert.Len(t, outcome.Data.Recommendations, 3)
	assert.Equal(t, 3, client.calls())

	require.Len(t, outcome.AllAttempts, 3)
	assert.Equal(t, []int{1, 1, 3}, []int{
		outcome.AllAttempts[0].Count,
		outcome.AllAttempts[1].Count,
		outcome.AllAttempts[2].Count,
	})
}

func TestOrchestrator_Run_ExhaustedSuccessWithWarning(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxRetries = 2

	client := &stubClient{script: []scriptedCall{
		{content: contentWith(1)},
		{content: contentWith(1)},
		{content: contentWith(1)},
	}}
	o := NewOrchestrator(cfg, client, logger.NewTestLogger(t))

	outcome, err := o.Run(context.Background(), testQuiz())
	require.NoError(t, err)

	// Below threshold on the terminal attempt still succeeds, with a warning.
	assert.True(t, outcome.Success)
	assert.Equal(t, 3, outcome.Attempts)
	assert.Equal(t, "Only found 1 recommendations after 3 attempts", outcome.Warning)
	assert.Len(t, outcome.Data.Recommendations, 1)
	assert.Equal(t, 3, client.calls())
}

func TestOrchestrator_Run_NeverExceedsAttemptBudget(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxRetries = 3

	script := make([]scriptedCall, 10)
	for i := range script {
		script[i] = scriptedCall{content: contentWith(0)}
	}
	client := &stubClient{script: script}
	o := NewOrchestrator(cfg, client, logger.NewTestLogger(t))

	outcome, err := o.Run(context.Background(), testQuiz())
	require.NoError(t, err)

	assert.Equal(t, 4, client.calls())
	assert.Equal(t, 4, outcome.Attempts)
}

func TestOrchestrator_Run_PromptEscalation(t *testing.T) {
	client := &stubClient{script: []scriptedCall{
		{content: contentWith(1)},
		{content: contentWith(3)},
	}}
	o := NewOrchestrator(fastConfig(), client, logger.NewTestLogger(t))

	_, err := o.Run(context.Background(), testQuiz())
	require.NoError(t, err)
	require.Equal(t, 2, client.calls())

	assert.NotContains(t, client.prompts[0], "IMPORTANT: This is attempt")
	assert.Contains(t, client.prompts[1], "IMPORTANT: This is attempt #2")

	assert.Equal(t, float64(0), client.options[0].Temperature)
	assert.Equal(t, 0.3, client.options[1].Temperature)
	assert.True(t, client.options[0].WebSearch)
}

// ==========================
// Failure Path Tests
// ==========================

func TestOrchestrator_Run_TransportErrorOnFinalAttempt(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxRetries = 1

	client := &stubClient{script: []scriptedCall{
		{err: errors.New("connection reset")},
		{err: errors.New("connection reset")},
	}}
	o := NewOrchestrator(cfg, client, logger.NewTestLogger(t))

	outcome, err := o.Run(context.Background(), testQuiz())
	require.Error(t, err)

	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeRecommendationFailed, stdErr.Code)

	require.NotNil(t, outcome)
	assert.False(t, outcome.Success)
	assert.Equal(t, 2, outcome.Attempts)
	assert.Equal(t, "connection reset", outcome.Error)
}

func TestOrchestrator_Run_TransportErrorRecovers(t *testing.T) {
	client := &stubClient{script: []scriptedCall{
		{err: errors.New("connection reset")},
		{content: contentWith(3)},
	}}
	o := NewOrchestrator(fastConfig(), client, logger.NewTestLogger(t))

	outcome, err := o.Run(context.Background(), testQuiz())
	require.NoError(t, err)

	assert.True(t, outcome.Success)
	assert.Equal(t, 2, outcome.Attempts)
	require.Len(t, outcome.AllAttempts, 2)
	assert.Equal(t, "connection reset", outcome.AllAttempts[0].Error)
}

func TestOrchestrator_Run_NoJSONOnFinalAttemptIsFailure(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxRetries = 1

	client := &stubClient{script: []scriptedCall{
		{content: "no offers found today"},
		{content: "still nothing structured"},
	}}
	o := NewOrchestrator(cfg, client, logger.NewTestLogger(t))

	outcome, err := o.Run(context.Background(), testQuiz())
	require.Error(t, err)

	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeNoValidJSON, stdErr.Code)

	require.NotNil(t, outcome)
	assert.False(t, outcome.Success)
	assert.Equal(t, 2, outcome.Attempts)
	assert.Equal(t, "No valid JSON in response", outcome.Error)

	// The attempt log still records the raw content for diagnostics.
	require.Len(t, outcome.AllAttempts, 2)
	assert.Equal(t, "still nothing structured", outcome.AllAttempts[1].Content)
}

func TestOrchestrator_Run_NoJSONThenRecovery(t *testing.T) {
	client := &stubClient{script: []scriptedCall{
		{content: "I could not find anything"},
		{content: contentWith(2)},
	}}
	o := NewOrchestrator(fastConfig(), client, logger.NewTestLogger(t))

	outcome, err := o.Run(context.Background(), testQuiz())
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, 2, outcome.Attempts)
}

func TestOrchestrator_Run_CancellationDuringWait(t *testing.T) {
	cfg := fastConfig()
	cfg.RetryDelay = time.Minute

	client := &stubClient{script: []scriptedCall{
		{content: contentWith(1)},
	}}
	o := NewOrchestrator(cfg, client, logger.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	outcome, err := o.Run(ctx, testQuiz())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 5*time.Second)
	require.NotNil(t, outcome)
	assert.False(t, outcome.Success)
}

// ==========================
// Delay Computation
// ==========================

func TestOrchestrator_DelayFor(t *testing.T) {
	base := 2 * time.Second

	constant := NewOrchestrator(Config{RetryDelay: base}, nil, logger.NewNoOpLogger())
	assert.Equal(t, base, constant.delayFor(1))
	assert.Equal(t, base, constant.delayFor(3))

	exponential := NewOrchestrator(Config{RetryDelay: base, ExponentialBackoff: true}, nil, logger.NewNoOpLogger())
	assert.Equal(t, base, exponential.delayFor(1))
	assert.Equal(t, 4*time.Second, exponential.delayFor(2))
	assert.Equal(t, 8*time.Second, exponential.delayFor(3))
}
