package httpapi

import (
	"errors"
	"net/http"
	"time"

	"banhchi-platform/internal/audit"
	"banhchi-platform/internal/auth"
	"banhchi-platform/internal/content"
	"banhchi-platform/internal/event"
	"banhchi-platform/internal/expense"
	"banhchi-platform/internal/guest"
	"banhchi-platform/internal/live"
	"banhchi-platform/internal/media"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth     *auth.Manager
	Events   *event.Service
	Guests   *guest.Service
	Expenses *expense.Service
	Content  *content.Service
	Audit    *audit.Service
	Hub      *live.Hub

	// Media is nil when Cloudinary is not configured; media endpoints
	// then respond 503.
	Media media.Uploader
}

// writeServiceError maps service sentinel errors onto HTTP statuses.
// Unknown errors become 500 without leaking internals.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, guest.ErrNotFound),
		errors.Is(err, expense.ErrNotFound),
		errors.Is(err, event.ErrNotFound),
		errors.Is(err, content.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, guest.ErrInvalidArgument),
		errors.Is(err, expense.ErrInvalidArgument),
		errors.Is(err, event.ErrInvalidArgument),
		errors.Is(err, content.ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, event.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, event.ErrPINMismatch):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "pin mismatch"})
	case errors.Is(err, event.ErrTooManyAttempts):
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many pin attempts"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// --- Auth ---

type loginRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Login issues a JWT token pair.
//
// NOTE: This is a skeleton-only endpoint. Real systems must validate credentials.
func (h Handlers) Login(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_id, role required"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), req.UserID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// Me echoes the caller identity extracted from the verified token.
func (h Handlers) Me(c *gin.Context) {
	uid, _ := auth.UserID(c.Request.Context())
	role, _ := auth.Role(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"user_id": uid, "role": role})
}
