package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteJSON(t *testing.T) {
	var captured completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"is_safe\":true,\"severity\":\"none\"}"}}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key", Model: "test-model"})

	var out struct {
		IsSafe   bool   `json:"is_safe"`
		Severity string `json:"severity"`
	}
	err := client.CompleteJSON(context.Background(), []Message{
		{Role: "system", Content: "You are a classifier."},
		{Role: "user", Content: "Classify this."},
	}, "result", map[string]any{"type": "object"}, &out)
	require.NoError(t, err)

	assert.True(t, out.IsSafe)
	assert.Equal(t, "none", out.Severity)

	assert.Equal(t, "test-model", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "json_schema", captured.ResponseFormat.Type)
	assert.Equal(t, "result", captured.ResponseFormat.JSONSchema.Name)
	assert.True(t, captured.ResponseFormat.JSONSchema.Strict)
}

func TestCompleteJSONErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	var out map[string]any
	err := client.CompleteJSON(context.Background(), nil, "result", map[string]any{}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestCompleteJSONMalformedReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"not json at all"}}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	var out map[string]any
	err := client.CompleteJSON(context.Background(), nil, "result", map[string]any{}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode structured reply")
}

func TestCompleteJSONNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	var out map[string]any
	err := client.CompleteJSON(context.Background(), nil, "result", map[string]any{}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{})
	assert.Equal(t, "https://api.openai.com/v1", client.cfg.BaseURL)
	assert.Equal(t, "gpt-4o-mini", client.cfg.Model)
	assert.NotNil(t, client.cfg.HTTPClient)

	trimmed := NewClient(Config{BaseURL: "http://example.com/v1/"})
	assert.Equal(t, "http://example.com/v1", trimmed.cfg.BaseURL)
}
