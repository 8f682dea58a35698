package qwen_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gig-copilot/pkg/qwen"
)

func TestGenerateContent(t *testing.T) {
	var got map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer k" || r.URL.Path != "/chat/completions" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"{\"slots\":{}}"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":3,"completion_tokens":2,"total_tokens":5}}`))
	}))
	defer ts.Close()

	client, err := qwen.New(qwen.Config{APIKey: "k", BaseURL: ts.URL + "/"})
	require.NoError(t, err)

	resp, err := client.GenerateContent(context.Background(), &qwen.Request{
		SystemInstruction: &qwen.Content{Parts: []qwen.Part{{Text: "be terse"}}},
		Messages:          []qwen.Content{{Role: "user", Parts: []qwen.Part{{Text: "hi"}}}},
		JSONOutput:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"slots":{}}`, resp.Content.Parts[0].Text)
	assert.Equal(t, 5, resp.Usage.TotalTokens)

	msgs := got["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "json_object", got["response_format"].(map[string]any)["type"])
	assert.Equal(t, float64(0), got["temperature"])
}

func TestGenerateContent_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client, err := qwen.New(qwen.Config{APIKey: "k", BaseURL: ts.URL})
	require.NoError(t, err)
	_, err = client.GenerateContent(context.Background(), &qwen.Request{})
	assert.ErrorContains(t, err, "429")
}
