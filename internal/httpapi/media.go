package httpapi

import (
	"mime/multipart"
	"net/http"

	"banhchi-platform/internal/auth"
	"banhchi-platform/internal/event"
	"banhchi-platform/internal/media"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps event imagery uploads.
const maxUploadBytes = 10 << 20

func (h Handlers) openUpload(c *gin.Context) (multipart.File, bool) {
	if h.Media == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "media storage not configured"})
		return nil, false
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "file field required"})
		return nil, false
	}
	if fh.Size > maxUploadBytes {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return nil, false
	}
	return f, true
}

// UploadBanner replaces the event banner. The old banner, if any, is
// deleted from storage on a best-effort basis.
func (h Handlers) UploadBanner(c *gin.Context) {
	f, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer f.Close()

	uid, _ := auth.UserID(c.Request.Context())
	eventID := c.Param("event_id")

	prior, err := h.Events.Get(c.Request.Context(), eventID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	url, err := h.Media.Upload(c.Request.Context(), media.FolderBanners, f)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
		return
	}

	e, err := h.Events.Update(c.Request.Context(), uid, eventID, event.Patch{BannerURL: &url})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if prior.BannerURL != "" {
		_ = h.Media.Delete(c.Request.Context(), prior.BannerURL)
	}
	c.JSON(http.StatusOK, e)
}

// AddGalleryImage appends one image to the event gallery.
func (h Handlers) AddGalleryImage(c *gin.Context) {
	f, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer f.Close()

	uid, _ := auth.UserID(c.Request.Context())
	eventID := c.Param("event_id")

	prior, err := h.Events.Get(c.Request.Context(), eventID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	url, err := h.Media.Upload(c.Request.Context(), media.FolderGallery, f)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
		return
	}

	urls := append(append([]string{}, prior.GalleryURLs...), url)
	e, err := h.Events.Update(c.Request.Context(), uid, eventID, event.Patch{GalleryURLs: &urls})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

type removeGalleryRequest struct {
	URL string `json:"url"`
}

// RemoveGalleryImage detaches one image from the gallery and deletes it
// from storage on a best-effort basis.
func (h Handlers) RemoveGalleryImage(c *gin.Context) {
	if h.Media == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "media storage not configured"})
		return
	}
	var req removeGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "url required"})
		return
	}

	uid, _ := auth.UserID(c.Request.Context())
	eventID := c.Param("event_id")

	prior, err := h.Events.Get(c.Request.Context(), eventID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	urls := make([]string, 0, len(prior.GalleryURLs))
	found := false
	for _, u := range prior.GalleryURLs {
		if u == req.URL {
			found = true
			continue
		}
		urls = append(urls, u)
	}
	if !found {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	e, err := h.Events.Update(c.Request.Context(), uid, eventID, event.Patch{GalleryURLs: &urls})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	_ = h.Media.Delete(c.Request.Context(), req.URL)
	c.JSON(http.StatusOK, e)
}
