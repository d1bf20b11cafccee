package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rishtahub/rishta_backend/internal/middleware"
	"github.com/rishtahub/rishta_backend/internal/services"
	"github.com/rishtahub/rishta_backend/pkg/errors"
)

// ChatHandler serves the REST side of chat: history retrieval. Live
// traffic runs over the websocket endpoint.
type ChatHandler struct {
	chat *services.ChatService
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) Register(r gin.IRoutes) {
	r.GET("/chat/history", h.History)
}

// History returns the full conversation between the authenticated user and
// the peer given by ?with=. Soft-deleted messages are included with their
// flag set.
func (h *ChatHandler) History(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, errors.New(errors.ErrCodeNotAuthenticated, "not authenticated"))
		return
	}

	peer, err := strconv.ParseUint(c.Query("with"), 10, 32)
	if err != nil || peer == 0 {
		respondError(c, errors.New(errors.ErrCodeValidationFailed, "invalid peer id"))
		return
	}

	messages, err := h.chat.GetHistory(userID, uint(peer))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
