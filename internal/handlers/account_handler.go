package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rishtahub/rishta_backend/internal/middleware"
	"github.com/rishtahub/rishta_backend/internal/services"
	"github.com/rishtahub/rishta_backend/pkg/errors"
)

// AccountHandler covers whole-account operations.
type AccountHandler struct {
	accounts *services.AccountService
}

func NewAccountHandler(accounts *services.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) Register(r gin.IRoutes) {
	r.DELETE("/account", h.Delete)
}

// Delete removes the user and all data referencing them. Irreversible.
func (h *AccountHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, errors.New(errors.ErrCodeNotAuthenticated, "not authenticated"))
		return
	}

	if err := h.accounts.DeleteAccount(userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "DELETED"})
}
