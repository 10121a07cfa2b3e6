// Package middleware holds the gin middlewares shared by every route.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
	"github.com/mamadbah2/prodtracker/internal/service/auth"
)

// Context keys set by the middlewares.
const (
	KeyRequestID = "request_id"
	KeyUsername  = "username"
	KeyRole      = "role"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session"

// RequestID tags each request with an id, reusing the X-Request-ID header when sent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Request.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(KeyRequestID, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger logs every completed request, at warn for 4xx and error for 5xx.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(KeyRequestID)),
		}
		if user := c.GetString(KeyUsername); user != "" {
			fields = append(fields, zap.String("user", user))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request failed", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request rejected", fields...)
		default:
			logger.Info("request completed", fields...)
		}
	}
}

// Session reads the session token from the cookie or a Bearer header and, when
// valid, stores the username and role on the context. Requests without a valid
// session, or served without an auth service, pass through anonymously.
func Session(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authSvc == nil {
			c.Next()
			return
		}

		token := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := authSvc.Parse(token)
		if err == nil {
			c.Set(KeyUsername, claims.Username)
			c.Set(KeyRole, string(claims.Role))
		}
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RequireLogin rejects anonymous requests with 401.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(KeyUsername) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			return
		}
		c.Next()
	}
}

// RequireRole rejects sessions lacking role with 403 and anonymous requests with 401.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(KeyUsername) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			return
		}
		if models.Role(c.GetString(KeyRole)) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

// Username returns the authenticated username, or "" for anonymous requests.
func Username(c *gin.Context) string {
	return c.GetString(KeyUsername)
}
