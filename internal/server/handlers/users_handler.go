package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

// UserStore is the account storage used by the admin endpoints.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id uint) error
	RoleCounts(ctx context.Context) ([]models.RoleCount, error)
}

// UsersHandler serves account administration.
type UsersHandler struct {
	store  UserStore
	logger *zap.Logger
}

// NewUsersHandler constructs the account handlers.
func NewUsersHandler(store UserStore, logger *zap.Logger) *UsersHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UsersHandler{store: store, logger: logger}
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// Delete handles DELETE /api/users/:id.
func (h *UsersHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid user id"})
		return
	}

	err = h.store.Delete(c.Request.Context(), uint(id))
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	case err != nil:
		h.logger.Error("failed deleting user", zap.Uint64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete user"})
		return
	}

	h.logger.Info("user deleted", zap.Uint64("id", id))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Roles handles GET /api/user-roles.
func (h *UsersHandler) Roles(c *gin.Context) {
	counts, err := h.store.RoleCounts(c.Request.Context())
	if err != nil {
		h.logger.Error("failed counting roles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load roles"})
		return
	}
	c.JSON(http.StatusOK, counts)
}
