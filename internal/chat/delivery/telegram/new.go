package telegram

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"gig-copilot/internal/orchestrator"
	pkgLog "gig-copilot/pkg/log"
)

// Handler is the public interface for the Telegram webhook.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Sender delivers replies to a chat. Implemented by *telegram.Bot.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendChatAction(ctx context.Context, chatID int64, action string) error
}

type handler struct {
	l       pkgLog.Logger
	turns   orchestrator.TurnHandler
	bot     Sender
	timeout time.Duration
}

// New creates a Telegram webhook handler. timeout bounds the background
// processing of one update; zero uses DefaultProcessTimeout.
func New(l pkgLog.Logger, turns orchestrator.TurnHandler, bot Sender, timeout time.Duration) Handler {
	if timeout <= 0 {
		timeout = DefaultProcessTimeout
	}
	return &handler{l: l, turns: turns, bot: bot, timeout: timeout}
}
