package realtime

import (
	"context"

	"furniture_estimates/internal/domain/entities"
	"furniture_estimates/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// HubNotifier publishes pipeline events straight into the in-process Hub.
type HubNotifier struct {
	hub *Hub
	log *zap.Logger
}

var _ interfaces.IEstimateNotifier = (*HubNotifier)(nil)

func NewHubNotifier(hub *Hub, log *zap.Logger) *HubNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &HubNotifier{hub: hub, log: log}
}

func (n *HubNotifier) PublishStatus(_ context.Context, userID, status, message string) {
	payload, err := encodeStatus(status, message)
	if err != nil {
		n.log.Error("[realtime][notifier] encode status failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	n.hub.Publish(StatusTopic(userID), payload)
}

func (n *HubNotifier) PublishResult(_ context.Context, userID string, estimate entities.Estimate) {
	payload, err := encodeResult(estimate)
	if err != nil {
		n.log.Error("[realtime][notifier] encode result failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	n.hub.Publish(ResultTopic(userID), payload)
}
