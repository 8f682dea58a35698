package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"gig-copilot/internal/middleware"
)

// RegisterRoutes maps the chat endpoint. Requests are rate limited per user,
// or per client IP when the body names no user.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.POST("/chat", mw.RateLimit(userKey), h.Chat)
}

func userKey(c *gin.Context) string {
	var req chatReq
	_ = c.ShouldBindBodyWith(&req, binding.JSON)
	if req.UserID != "" {
		return "user:" + req.UserID
	}
	return "ip:" + middleware.ClientIP(c)
}
