package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"gig-copilot/pkg/response"
)

// Chat godoc
// @Summary     Send a message to the copilot
// @Description Classifies the driver's message, runs the matching action or analysis and returns the reply.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body body chatReq true "Driver message"
// @Success     200  {object} chatResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     429  {object} response.Resp "Too Many Requests"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat [POST]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req chatReq
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		h.l.Warnf(ctx, "chat.http.Chat: bind: %v", err)
		response.Error(c, errInvalidRequest, nil)
		return
	}
	if err := req.validate(); err != nil {
		response.Error(c, err, nil)
		return
	}

	reply, err := h.turns.HandleTurn(ctx, req.toUtterance(time.Now()))
	if err != nil {
		if mapped := h.mapError(err); mapped != nil {
			response.Error(c, mapped, nil)
			return
		}
		h.l.Errorf(ctx, "chat.http.Chat: HandleTurn: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, h.newChatResp(reply))
}
