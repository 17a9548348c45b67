package realtime

import (
	"sync"

	"furniture_estimates/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultBuffer = 16

type Event struct {
	Topic   string
	Payload []byte
}

// Subscription is one live connection of a user.
type Subscription struct {
	ID     string
	UserID string
	events chan Event
}

func (s *Subscription) Events() <-chan Event { return s.events }

// Hub is the registry of live connections, keyed by user id.
//
// Publish never blocks: each subscription has a bounded buffer and events
// that do not fit are dropped. Events for users without connections are
// discarded.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[*Subscription]struct{}
	buffer int
	log    *zap.Logger
}

func NewHub(log *zap.Logger, buffer int) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{subs: make(map[string]map[*Subscription]struct{}), buffer: buffer, log: log}
}

func (h *Hub) Subscribe(userID string) *Subscription {
	sub := &Subscription{ID: uuid.NewString(), UserID: userID, events: make(chan Event, h.buffer)}

	h.mu.Lock()
	set, ok := h.subs[userID]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[userID] = set
	}
	set[sub] = struct{}{}
	n := len(set)
	h.mu.Unlock()

	metrics.RealtimeConnections.Inc()
	h.log.Info("[realtime][hub] connection opened", zap.String("user_id", userID), zap.String("subscription_id", sub.ID), zap.Int("user_connections", n))
	return sub
}

// Unsubscribe removes sub. The events channel is left open; the owner stops
// reading from it.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	set, ok := h.subs[sub.UserID]
	_, present := set[sub]
	if ok && present {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.UserID)
		}
	}
	h.mu.Unlock()

	if !present {
		return
	}
	metrics.RealtimeConnections.Dec()
	h.log.Info("[realtime][hub] connection closed", zap.String("user_id", sub.UserID), zap.String("subscription_id", sub.ID))
}

// Publish delivers payload to every connection of the topic's user and
// returns how many received it.
func (h *Hub) Publish(topic string, payload []byte) int {
	userID, kind, ok := ParseTopic(topic)
	if !ok {
		h.log.Warn("[realtime][hub] ignoring malformed topic", zap.String("topic", topic))
		return 0
	}

	h.mu.Lock()
	set := h.subs[userID]
	snapshot := make([]*Subscription, 0, len(set))
	for s := range set {
		snapshot = append(snapshot, s)
	}
	h.mu.Unlock()

	delivered := 0
	ev := Event{Topic: topic, Payload: payload}
	for _, s := range snapshot {
		select {
		case s.events <- ev:
			delivered++
		default:
			metrics.NotificationsDropped.WithLabelValues(kind).Inc()
			h.log.Warn("[realtime][hub] subscriber buffer full; event dropped", zap.String("topic", topic), zap.String("subscription_id", s.ID))
		}
	}
	return delivered
}

// Connections returns the number of live connections of userID.
func (h *Hub) Connections(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}
