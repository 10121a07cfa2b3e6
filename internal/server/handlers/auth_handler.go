package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/server/middleware"
	"github.com/mamadbah2/prodtracker/internal/service/auth"
)

// AuthHandler issues and clears the session cookie.
type AuthHandler struct {
	svc    *auth.Service
	secure bool
	logger *zap.Logger
}

// NewAuthHandler constructs the login handler. secure marks the cookie HTTPS-only.
func NewAuthHandler(svc *auth.Service, secure bool, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, secure: secure, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid username or password"})
		return
	case err != nil:
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.svc.TTL().Seconds()), "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "role": user.Role})
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
