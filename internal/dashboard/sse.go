package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/portfolio/internal/portfolio"
)

// gapsEvent is pushed whenever the set of open gaps changes.
type gapsEvent struct {
	Count int                  `json:"count"`
	Gaps  []portfolio.GapAlert `json:"gaps"`
}

// gapSignature identifies a gap set independently of ordering.
func gapSignature(alerts []portfolio.GapAlert) string {
	ids := make([]string, len(alerts))
	for i, a := range alerts {
		ids[i] = strconv.FormatUint(uint64(a.Note.ID), 10)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// events streams gap changes. Every tick recomputes the gap set from a fresh
// snapshot; nothing is cached across connections.
func (h *handlers) events(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	writeSSE(c.Writer, "connected", map[string]string{"type": "connected"})

	ctx := c.Request.Context()
	alerts := h.svc.Gaps(ctx)
	last := gapSignature(alerts)
	writeSSE(c.Writer, "gaps", gapsEvent{Count: len(alerts), Gaps: alerts})
	c.Writer.Flush()

	ticker := time.NewTicker(h.refresh)
	heartbeat := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			writeSSE(c.Writer, "heartbeat", map[string]string{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			c.Writer.Flush()
		case <-ticker.C:
			alerts := h.svc.Gaps(ctx)
			sig := gapSignature(alerts)
			if sig == last {
				continue
			}
			last = sig
			writeSSE(c.Writer, "gaps", gapsEvent{Count: len(alerts), Gaps: alerts})
			c.Writer.Flush()
		}
	}
}

// writeSSE writes a single SSE event to the writer.
func writeSSE(w io.Writer, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(jsonData))
}
