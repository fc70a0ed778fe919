package httpapi

import (
	"errors"
	"net/http"

	"banhchi-platform/internal/auth"
	"banhchi-platform/internal/event"

	"github.com/gin-gonic/gin"
)

func (h Handlers) CreateEvent(c *gin.Context) {
	uid, err := auth.UserID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "identity required"})
		return
	}
	var in event.NewEvent
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	e, err := h.Events.Create(c.Request.Context(), uid, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h Handlers) ListEvents(c *gin.Context) {
	uid, err := auth.UserID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "identity required"})
		return
	}
	es, err := h.Events.ListByOwner(c.Request.Context(), uid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": es})
}

func (h Handlers) GetEvent(c *gin.Context) {
	e, err := h.Events.Get(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h Handlers) UpdateEvent(c *gin.Context) {
	uid, _ := auth.UserID(c.Request.Context())
	var p event.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	e, err := h.Events.Update(c.Request.Context(), uid, c.Param("event_id"), p)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h Handlers) DeleteEvent(c *gin.Context) {
	uid, _ := auth.UserID(c.Request.Context())
	if err := h.Events.Delete(c.Request.Context(), uid, c.Param("event_id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type setPINRequest struct {
	PIN string `json:"pin"`
}

// SetEventPIN sets or clears the public-page PIN. Empty pin unlocks.
func (h Handlers) SetEventPIN(c *gin.Context) {
	uid, _ := auth.UserID(c.Request.Context())
	var req setPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.Events.SetPIN(c.Request.Context(), uid, c.Param("event_id"), req.PIN); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PublicEventPage serves the attendee-facing page: countdown, gallery,
// gifting QR. PIN-locked events return a teaser until ?pin= verifies;
// attempts are throttled per client IP.
func (h Handlers) PublicEventPage(c *gin.Context) {
	page, err := h.Events.PublicPage(c.Request.Context(), c.Param("event_id"), c.Query("pin"), c.ClientIP())
	if err != nil {
		if errors.Is(err, event.ErrPINRequired) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "pin required", "page": page})
			return
		}
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
