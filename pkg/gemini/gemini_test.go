package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gig-copilot/pkg/gemini"
)

func TestGenerateContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		cfg, _ := body["generationConfig"].(map[string]any)
		if cfg == nil || cfg["temperature"] != float64(0) || cfg["responseMimeType"] != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		contents := body["contents"].([]any)
		text := contents[0].(map[string]any)["parts"].([]any)[0].(map[string]any)["text"]
		if text == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"intent\":\"general\"}"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 5, "totalTokenCount": 17}
		}`))
	}))
	defer ts.Close()

	client, err := gemini.New(gemini.Config{APIKey: "test-api-key", APIURL: ts.URL})
	require.NoError(t, err)
	assert.Equal(t, gemini.DefaultModel, client.Model())

	t.Run("success", func(t *testing.T) {
		resp, err := client.GenerateContent(context.Background(), &gemini.Request{
			Messages:   []gemini.Content{{Role: "user", Parts: []gemini.Part{{Text: "hello"}}}},
			JSONOutput: true,
		})
		require.NoError(t, err)
		require.Len(t, resp.Content.Parts, 1)
		assert.Equal(t, `{"intent":"general"}`, resp.Content.Parts[0].Text)
		assert.Equal(t, 17, resp.Usage.TotalTokens)
		assert.Equal(t, "STOP", resp.FinishReason)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := client.GenerateContent(context.Background(), &gemini.Request{
			Messages:   []gemini.Content{{Role: "user", Parts: []gemini.Part{{Text: "cause_500"}}}},
			JSONOutput: true,
		})
		assert.Error(t, err)
	})
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := gemini.New(gemini.Config{})
	assert.Error(t, err)
}
