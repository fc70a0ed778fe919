package httpapi

import (
	"net/http"

	"banhchi-platform/internal/content"

	"github.com/gin-gonic/gin"
)

func (h Handlers) CreateContent(c *gin.Context) {
	var in content.NewItem
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	it, err := h.Content.Create(c.Request.Context(), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

func (h Handlers) UpdateContent(c *gin.Context) {
	var p content.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	it, err := h.Content.Update(c.Request.Context(), c.Param("content_id"), p)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h Handlers) DeleteContent(c *gin.Context) {
	if err := h.Content.Delete(c.Request.Context(), c.Param("content_id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListEventContent serves an event's content. Public callers only see
// published items; the admin surface passes drafts=true to include drafts.
func (h Handlers) ListEventContent(publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		only := publishedOnly
		if !only && c.Query("drafts") != "true" {
			only = true
		}
		items, err := h.Content.ListForEvent(c.Request.Context(), c.Param("event_id"), only)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// ListStandaloneContent serves site-wide items not tied to an event.
func (h Handlers) ListStandaloneContent(publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		only := publishedOnly
		if !only && c.Query("drafts") != "true" {
			only = true
		}
		items, err := h.Content.ListStandalone(c.Request.Context(), only)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}
