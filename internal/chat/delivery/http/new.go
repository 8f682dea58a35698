package http

import (
	"github.com/gin-gonic/gin"

	"gig-copilot/internal/orchestrator"
	"gig-copilot/pkg/log"
)

// Handler is the public interface for the chat HTTP delivery layer.
type Handler interface {
	Chat(c *gin.Context)
}

type handler struct {
	l     log.Logger
	turns orchestrator.TurnHandler
}

var _ Handler = (*handler)(nil)

// New creates a new HTTP handler for chat turns.
func New(l log.Logger, turns orchestrator.TurnHandler) *handler {
	return &handler{
		l:     l,
		turns: turns,
	}
}
