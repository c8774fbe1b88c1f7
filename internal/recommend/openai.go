// internal/recommend/openai.go
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lease-advisor/internal/common/config"
	commonhttp "lease-advisor/internal/common/http"
	"lease-advisor/internal/common/logger"
)

var (
	ErrSourceTimeout    = errors.New("RECOMMENDATION_TIMEOUT")
	ErrSourceCallFailed = errors.New("RECOMMENDATION_CALL_FAILED")
)

// OpenAIClient implements Client against an OpenAI-style /v1/responses
// endpoint with the web_search tool enabled. It is constructed once at
// bootstrap and injected into the orchestrator; there is no lazy global.
type OpenAIClient struct {
	cfg    config.OpenAIConfig
	client *commonhttp.Client
	logger logger.Logger
}

func NewOpenAIClient(cfg config.OpenAIConfig, log logger.Logger) *OpenAIClient {
	return &OpenAIClient{
		cfg:    cfg,
		client: commonhttp.NewClient(time.Duration(cfg.Timeout) * time.Millisecond),
		logger: log.With(map[string]interface{}{
			"component": "openai-client",
		}),
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string, opts CallOptions) (string, error) {
	requestBody := map[string]interface{}{
		"model":       c.cfg.Model,
		"input":       prompt,
		"temperature": opts.Temperature,
	}
	if opts.WebSearch {
		requestBody["tools"] = []map[string]string{{"type": "web_search"}}
	}

	body, _ := json.Marshal(requestBody)
	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/v1/responses", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceCallFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil ||
			errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(err, context.Canceled) ||
			strings.Contains(err.Error(), "Client.Timeout") {
			return "", ErrSourceTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrSourceCallFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrSourceCallFailed, resp.StatusCode)
	}

	var apiResponse struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Type    string `json:"type"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrSourceCallFailed, err)
	}

	if apiResponse.OutputText != "" {
		return apiResponse.OutputText, nil
	}

	// Assemble message text from the structured output items.
	var parts []string
	for _, item := range apiResponse.Output {
		if item.Type != "message" {
			continue
		}
		for _, content := range item.Content {
			if content.Type == "output_text" && content.Text != "" {
				parts = append(parts, content.Text)
			}
		}
	}

	text := strings.Join(parts, "\n")
	c.logger.Debug("generation completed", map[string]interface{}{
		"responseLength": len(text),
	})
	return text, nil
}
