package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rishtahub/rishta_backend/internal/middleware"
	"github.com/rishtahub/rishta_backend/internal/services"
	"github.com/rishtahub/rishta_backend/pkg/errors"
)

// ExploreHandler serves the one-card-at-a-time discovery feed.
type ExploreHandler struct {
	explore *services.ExploreService
}

func NewExploreHandler(explore *services.ExploreService) *ExploreHandler {
	return &ExploreHandler{explore: explore}
}

func (h *ExploreHandler) Register(r gin.IRoutes) {
	r.GET("/explore/next", h.Next)
	r.GET("/explore/previous", h.Previous)
}

func (h *ExploreHandler) Next(c *gin.Context) {
	viewerID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, errors.New(errors.ErrCodeNotAuthenticated, "not authenticated"))
		return
	}

	card, err := h.explore.Next(viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	if card == nil {
		// Empty pool is a valid terminal state, not an error
		c.JSON(http.StatusOK, gin.H{"candidate": nil, "message": "no candidates available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidate": card})
}

func (h *ExploreHandler) Previous(c *gin.Context) {
	viewerID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, errors.New(errors.ErrCodeNotAuthenticated, "not authenticated"))
		return
	}

	card, err := h.explore.Previous(viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	if card == nil {
		c.JSON(http.StatusOK, gin.H{"candidate": nil, "message": "no previous candidate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidate": card})
}
