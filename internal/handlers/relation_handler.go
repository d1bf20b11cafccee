package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rishtahub/rishta_backend/internal/middleware"
	"github.com/rishtahub/rishta_backend/internal/services"
	"github.com/rishtahub/rishta_backend/pkg/errors"
)

// RelationHandler exposes the relationship state machine over REST. Every
// route resolves the acting user from the authenticated context and the
// counterpart from the path.
type RelationHandler struct {
	relations *services.RelationService
}

func NewRelationHandler(relations *services.RelationService) *RelationHandler {
	return &RelationHandler{relations: relations}
}

func (h *RelationHandler) Register(r gin.IRoutes) {
	r.POST("/relations/like/:userId", h.Like)
	r.POST("/relations/shortlist/:userId", h.Shortlist)
	r.DELETE("/relations/shortlist/:userId", h.RemoveShortlist)
	r.POST("/relations/block/:userId", h.Block)
	r.DELETE("/relations/block/:userId", h.Unblock)
	r.POST("/relations/request/:userId", h.SendRequest)
	r.POST("/relations/request/:userId/accept", h.AcceptRequest)
	r.POST("/relations/report/:userId", h.Report)
	r.GET("/relations/shortlist", h.ListShortlisted)
	r.GET("/relations/matches", h.ListMatches)
	r.GET("/relations/requests", h.ListRequests)
}

func (h *RelationHandler) Like(c *gin.Context) {
	from, to, ok := h.pair(c)
	if !ok {
		return
	}

	outcome, err := h.relations.Like(from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(outcome)})
}

func (h *RelationHandler) Shortlist(c *gin.Context) {
	from, to, ok := h.pair(c)
	if !ok {
		return
	}

	if err := h.relations.Shortlist(from, to); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "SHORTLISTED"})
}

func (h *RelationHandler) RemoveShortlist(c *gin.Context) {
	from, to, ok := h.pair(c)
	if !ok {
		return
	}

	if err := h.relations.RemoveShortlist(from, to); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "REMOVED"})
}

func (h *RelationHandler) Block(c *gin.Context) {
	from, to, ok := h.pair(c)
	if !ok {
		return
	}

	if err := h.relations.Block(from, to); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "BLOCKED"})
}

func (h *RelationHandler) Unblock(c *gin.Context) {
	from, to, ok := h.pair(c)
	if !ok {
		return
	}

	if err := h.relations.Unblock(from, to); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "UNBLOCKED"})
}

func (h *RelationHandler) SendRequest(c *gin.Context) {
	from, to, ok := h.pair(c)
	if !ok {
		return
	}

	if err := h.relations.SendRequest(from, to); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "REQUESTED"})
}

func (h *RelationHandler) AcceptRequest(c *gin.Context) {
	accepter, requester, ok := h.pair(c)
	if !ok {
		return
	}

	if err := h.relations.AcceptRequest(accepter, requester); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "MATCHED"})
}

type reportRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *RelationHandler) Report(c *gin.Context) {
	from, to, ok := h.pair(c)
	if !ok {
		return
	}

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidationFailed, "reason is required"))
		return
	}

	if err := h.relations.Report(from, to, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "REPORTED"})
}

func (h *RelationHandler) ListShortlisted(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	relations, err := h.relations.Shortlisted(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"relations": relations})
}

func (h *RelationHandler) ListMatches(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	relations, err := h.relations.Matches(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"relations": relations})
}

func (h *RelationHandler) ListRequests(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	relations, err := h.relations.PendingRequests(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"relations": relations})
}

// pair extracts the acting user and the target user from the request.
func (h *RelationHandler) pair(c *gin.Context) (uint, uint, bool) {
	from, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, errors.New(errors.ErrCodeNotAuthenticated, "not authenticated"))
		return 0, 0, false
	}

	raw := c.Param("userId")
	to, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || to == 0 {
		respondError(c, errors.New(errors.ErrCodeValidationFailed, "invalid user id"))
		return 0, 0, false
	}

	return from, uint(to), true
}
