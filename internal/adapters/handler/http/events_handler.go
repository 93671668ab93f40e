package http

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
)

type SnapshotSubscriber interface {
	Subscribe() (string, <-chan domain.Snapshot, func())
}

type EventsHandler struct {
	hub SnapshotSubscriber
}

func NewEventsHandler(hub SnapshotSubscriber) *EventsHandler {
	return &EventsHandler{hub: hub}
}

func (h *EventsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/events", h.Stream)
}

// Stream godoc
// @Summary  Server-sent stream of snapshots
// @Tags     tracker
// @Produce  text/event-stream
// @Success  200 {object} domain.Snapshot
// @Router   /events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	_, snapshots, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snap)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
