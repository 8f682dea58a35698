package telegram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gig-copilot/pkg/telegram"
)

func TestBot(t *testing.T) {
	var lastAction string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)

		switch {
		case strings.HasSuffix(r.URL.Path, "/setWebhook"):
			if req["url"] == "cause_error" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "invalid url"}`))
				return
			}
			w.Write([]byte(`{"ok": true, "description": "webhook set"}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			if req["text"] == "cause_500" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"ok": true}`))
		case strings.HasSuffix(r.URL.Path, "/sendChatAction"):
			lastAction, _ = req["action"].(string)
			w.Write([]byte(`{"ok": true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	ctx := context.Background()
	bot := telegram.NewBot("test-token")
	bot.SetAPIURL(ts.URL)

	t.Run("SetWebhook success", func(t *testing.T) {
		require.NoError(t, bot.SetWebhook(ctx, "https://example.com/webhook/telegram"))
	})

	t.Run("SetWebhook API failure", func(t *testing.T) {
		err := bot.SetWebhook(ctx, "cause_error")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid url")
	})

	t.Run("SendMessage success", func(t *testing.T) {
		require.NoError(t, bot.SendMessage(ctx, 12345, "✅ Trip logged"))
	})

	t.Run("SendMessage HTTP failure", func(t *testing.T) {
		assert.Error(t, bot.SendMessage(ctx, 12345, "cause_500"))
	})

	t.Run("SendChatAction", func(t *testing.T) {
		require.NoError(t, bot.SendChatAction(ctx, 12345, telegram.ChatActionTyping))
		assert.Equal(t, "typing", lastAction)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.Error(t, bot.SendMessage(cctx, 12345, "late"))
	})
}
