package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gig-copilot/internal/model"
	"gig-copilot/internal/orchestrator"
	"gig-copilot/pkg/log"
)

type sent struct {
	chatID int64
	text   string
}

type mockSender struct {
	messages chan sent
	actions  chan string
}

func newMockSender() *mockSender {
	return &mockSender{messages: make(chan sent, 4), actions: make(chan string, 4)}
}

func (m *mockSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	m.messages <- sent{chatID: chatID, text: text}
	return nil
}

func (m *mockSender) SendChatAction(ctx context.Context, chatID int64, action string) error {
	m.actions <- action
	return nil
}

type mockTurns struct {
	got   chan model.Utterance
	reply orchestrator.Reply
	err   error
}

func (m *mockTurns) HandleTurn(ctx context.Context, u model.Utterance) (orchestrator.Reply, error) {
	m.got <- u
	return m.reply, m.err
}

func webhook(t *testing.T, h Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhook/telegram", h.HandleWebhook)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func next[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for background processing")
		var zero T
		return zero
	}
}

const tripUpdate = `{"update_id":1,"message":{"message_id":10,"from":{"id":42,"first_name":"Ravi"},"chat":{"id":99,"type":"private"},"date":1772445600,"text":"trip from Indiranagar to Whitefield for 450"}}`

func TestHandleWebhook_RepliesWithTurnText(t *testing.T) {
	bot := newMockSender()
	turns := &mockTurns{got: make(chan model.Utterance, 1), reply: orchestrator.Reply{Text: "✅ Trip logged"}}
	h := New(log.NewNop(), turns, bot, time.Second)

	w := webhook(t, h, tripUpdate)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "accepted")

	u := next(t, turns.got)
	assert.Equal(t, "telegram_42", u.UserID)
	assert.Equal(t, int64(1772445600), u.ReceivedAt.Unix())
	assert.Equal(t, "typing", next(t, bot.actions))

	msg := next(t, bot.messages)
	assert.Equal(t, int64(99), msg.chatID)
	assert.Equal(t, "✅ Trip logged", msg.text)
}

func TestHandleWebhook_StartCommand(t *testing.T) {
	bot := newMockSender()
	turns := &mockTurns{got: make(chan model.Utterance, 1)}
	h := New(log.NewNop(), turns, bot, time.Second)

	webhook(t, h, `{"update_id":2,"message":{"message_id":11,"from":{"id":42},"chat":{"id":99},"text":"/start"}}`)

	msg := next(t, bot.messages)
	assert.Contains(t, msg.text, "driving copilot")
	assert.Empty(t, turns.got)
}

func TestHandleWebhook_TurnErrorSendsApology(t *testing.T) {
	bot := newMockSender()
	turns := &mockTurns{got: make(chan model.Utterance, 1), err: errors.New("boom")}
	h := New(log.NewNop(), turns, bot, time.Second)

	webhook(t, h, tripUpdate)

	next(t, turns.got)
	msg := next(t, bot.messages)
	assert.Equal(t, failureText, msg.text)
}

func TestHandleWebhook_IgnoresNonMessages(t *testing.T) {
	h := New(log.NewNop(), &mockTurns{}, newMockSender(), time.Second)

	w := webhook(t, h, `{"update_id":3}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ignored")
}

func TestHandleWebhook_BadJSON(t *testing.T) {
	h := New(log.NewNop(), &mockTurns{}, newMockSender(), time.Second)

	w := webhook(t, h, `{`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
