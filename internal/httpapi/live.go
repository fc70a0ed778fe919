package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"banhchi-platform/internal/live"

	"github.com/gin-gonic/gin"
)

// heartbeatInterval keeps idle SSE connections alive through proxies.
const heartbeatInterval = 25 * time.Second

// LiveLedger streams ledger snapshots for one event as server-sent events.
// The first frame is the current snapshot; each subsequent mutation pushes
// the whole list again, so clients render wholesale and never patch.
func (h Handlers) LiveLedger(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// Buffered so a slow client drops intermediate frames instead of
	// blocking the hub fanout.
	frames := make(chan live.Snapshot, 8)
	unsubscribe, err := h.Hub.Subscribe(c.Request.Context(), c.Param("event_id"), func(s live.Snapshot) {
		select {
		case frames <- s:
		default:
		}
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "subscription failed"})
		return
	}
	defer unsubscribe()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-heartbeat.C:
			_, err := io.WriteString(w, ": ping\n\n")
			return err == nil
		case snap := <-frames:
			payload, err := json.Marshal(snap)
			if err != nil {
				return false
			}
			if _, err := io.WriteString(w, "data: "); err != nil {
				return false
			}
			if _, err := w.Write(payload); err != nil {
				return false
			}
			_, err = io.WriteString(w, "\n\n")
			return err == nil
		}
	})
}
