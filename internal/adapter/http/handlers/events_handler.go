package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"furniture_estimates/internal/adapter/http/middleware"
	"furniture_estimates/internal/infrastructure/realtime"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const DefaultHeartbeat = 25 * time.Second

// EventsHandler streams the caller's estimate topics as Server-Sent Events.
type EventsHandler struct {
	hub       *realtime.Hub
	log       *zap.Logger
	heartbeat time.Duration
}

func NewEventsHandler(hub *realtime.Hub, log *zap.Logger) *EventsHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventsHandler{hub: hub, log: log, heartbeat: DefaultHeartbeat}
}

// Stream holds the connection open until the client goes away. Each event
// is written with the topic as the SSE event name.
//
// @Summary      Stream estimate:<userId>:status and estimate:<userId>:result events
// @Tags         estimates
// @Security     Bearer
// @Produce      text/event-stream
// @Param        access_token  query  string  false  "JWT for clients that cannot set the Authorization header"
// @Success      200
// @Router       /estimates/events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}

	sub := h.hub.Subscribe(id.UserID)
	defer h.hub.Unsubscribe(sub)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	c.SSEvent("ready", gin.H{
		"subscription_id": sub.ID,
		"status_topic":    realtime.StatusTopic(id.UserID),
		"result_topic":    realtime.ResultTopic(id.UserID),
	})
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	done := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-done:
			return false
		case ev := <-sub.Events():
			c.SSEvent(ev.Topic, json.RawMessage(ev.Payload))
			return true
		case <-ticker.C:
			if _, err := io.WriteString(w, ": heartbeat\n\n"); err != nil {
				h.log.Debug("[realtime][handler] heartbeat write failed", zap.String("user_id", id.UserID), zap.Error(err))
				return false
			}
			return true
		}
	})
}
