package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lease-advisor/internal/common/config"
	"lease-advisor/internal/common/logger"
)

func newTestOpenAIClient(t *testing.T, baseURL string) *OpenAIClient {
	return NewOpenAIClient(config.OpenAIConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "gpt-4o",
		Timeout: 2000,
	}, logger.NewTestLogger(t))
}

func TestOpenAIClient_Generate_RequestShape(t *testing.T) {
	var captured map[string]interface{}
	var authHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/responses", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"output_text": "hello"})
	}))
	defer srv.Close()

	c := newTestOpenAIClient(t, srv.URL)
	text, err := c.Generate(context.Background(), "find lease offers", CallOptions{Temperature: 0.3, WebSearch: true})
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "gpt-4o", captured["model"])
	assert.Equal(t, "find lease offers", captured["input"])
	assert.Equal(t, 0.3, captured["temperature"])

	tools, ok := captured["tools"].([]interface{})
	require.True(t, ok)
	require.Len(t, tools, 1)
	assert.Equal(t, map[string]interface{}{"type": "web_search"}, tools[0])
}

func TestOpenAIClient_Generate_StructuredOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"output": []map[string]interface{}{
				{"type": "web_search_call", "content": []map[string]string{}},
				{"type": "message", "content": []map[string]string{
					{"type": "output_text", "text": "first part"},
					{"type": "output_text", "text": "second part"},
				}},
			},
		})
	}))
	defer srv.Close()

	c := newTestOpenAIClient(t, srv.URL)
	text, err := c.Generate(context.Background(), "prompt", CallOptions{})
	require.NoError(t, err)
	assert.Equal(t, "first part\nsecond part", text)
}

func TestOpenAIClient_Generate_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestOpenAIClient(t, srv.URL)
	_, err := c.Generate(context.Background(), "prompt", CallOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceCallFailed)
}

func TestOpenAIClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c := newTestOpenAIClient(t, srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Generate(ctx, "prompt", CallOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceTimeout)
}
