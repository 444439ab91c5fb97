package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
)

func TestNewOpenAI_RequiresKey(t *testing.T) {
	_, err := NewOpenAI(config.OpenAIConfig{Model: "gpt-3.5-turbo"})
	assert.Error(t, err)
}

func TestOpenAIGenerator(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-3.5-turbo",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"# VIDEO SUMMARY"}}]}`))
	}))
	defer srv.Close()

	gen, err := NewOpenAI(config.OpenAIConfig{APIKey: "sk-test", Model: "gpt-3.5-turbo", BaseURL: srv.URL},
		option.WithMaxRetries(0))
	require.NoError(t, err)

	got, err := gen.Generate(context.Background(), Request{System: "sys", Prompt: "user", MaxTokens: 500, Temperature: 0.3})
	require.NoError(t, err)
	assert.Equal(t, "# VIDEO SUMMARY", got)

	assert.Equal(t, "gpt-3.5-turbo", body["model"])
	assert.EqualValues(t, 500, body["max_tokens"])
	assert.EqualValues(t, 0.3, body["temperature"])
	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestOpenAIGenerator_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	gen, err := NewOpenAI(config.OpenAIConfig{APIKey: "sk-test", Model: "m", BaseURL: srv.URL},
		option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), Request{Prompt: "user"})
	require.Error(t, err)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, config.ProviderOpenAI, upErr.Provider)
	assert.True(t, upErr.Retryable)
}
