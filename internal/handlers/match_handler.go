package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rishtahub/rishta_backend/internal/middleware"
	"github.com/rishtahub/rishta_backend/internal/services"
	"github.com/rishtahub/rishta_backend/pkg/errors"
)

// MatchHandler serves the scored matchmaking feed and the manual search.
type MatchHandler struct {
	matches *services.MatchService
}

func NewMatchHandler(matches *services.MatchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

func (h *MatchHandler) Register(r gin.IRoutes) {
	r.GET("/matches", h.GetMatches)
	r.GET("/matches/search", h.SearchMatches)
}

func (h *MatchHandler) GetMatches(c *gin.Context) {
	viewerID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, errors.New(errors.ErrCodeNotAuthenticated, "not authenticated"))
		return
	}

	results, err := h.matches.GetMatches(viewerID, filtersFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": results})
}

func (h *MatchHandler) SearchMatches(c *gin.Context) {
	viewerID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, errors.New(errors.ErrCodeNotAuthenticated, "not authenticated"))
		return
	}

	results, err := h.matches.SearchMatches(viewerID, filtersFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": results})
}

func filtersFromQuery(c *gin.Context) services.MatchFilters {
	filters := services.MatchFilters{
		Religion:      c.Query("religion"),
		City:          c.Query("city"),
		MaritalStatus: c.Query("maritalStatus"),
	}

	if raw := c.Query("minAge"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filters.MinAge = &v
		}
	}
	if raw := c.Query("maxAge"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filters.MaxAge = &v
		}
	}

	return filters
}
