package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gig-copilot/internal/model"
	pkgResponse "gig-copilot/pkg/response"
	pkgTelegram "gig-copilot/pkg/telegram"
)

// HandleWebhook acknowledges the update at once and handles the message in
// the background, since a turn can outlast Telegram's webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.From == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.timeout)
		defer cancel()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: processMessage failed: %v", err)
			_ = h.bot.SendMessage(bgCtx, msg.Chat.ID, failureText)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage runs one chat turn for a Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	switch text {
	case "/start", "/help":
		return h.bot.SendMessage(ctx, msg.Chat.ID, startText)
	}

	if err := h.bot.SendChatAction(ctx, msg.Chat.ID, pkgTelegram.ChatActionTyping); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to send typing action: %v", err)
	}

	receivedAt := time.Now()
	if msg.Date > 0 {
		receivedAt = time.Unix(msg.Date, 0)
	}
	reply, err := h.turns.HandleTurn(ctx, model.Utterance{
		UserID:     fmt.Sprintf("%s%d", userIDPrefix, msg.From.ID),
		Text:       text,
		ReceivedAt: receivedAt,
	})
	if err != nil {
		return fmt.Errorf("HandleTurn: %w", err)
	}

	return h.bot.SendMessage(ctx, msg.Chat.ID, reply.Text)
}
