package realtime

import (
	"context"
	"time"

	"furniture_estimates/internal/domain/entities"
	"furniture_estimates/internal/infrastructure/metrics"
	"furniture_estimates/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

// RedisNotifier publishes pipeline events on Redis channels named after the
// topic. A RedisRelay on each API instance fans them out to local clients.
type RedisNotifier struct {
	client redis.UniversalClient
	log    *zap.Logger
}

var _ interfaces.IEstimateNotifier = (*RedisNotifier)(nil)

func NewRedisNotifier(client redis.UniversalClient, log *zap.Logger) *RedisNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisNotifier{client: client, log: log}
}

func (n *RedisNotifier) PublishStatus(ctx context.Context, userID, status, message string) {
	payload, err := encodeStatus(status, message)
	if err != nil {
		n.log.Error("[realtime][redis] encode status failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	n.publish(ctx, StatusTopic(userID), KindStatus, payload)
}

func (n *RedisNotifier) PublishResult(ctx context.Context, userID string, estimate entities.Estimate) {
	payload, err := encodeResult(estimate)
	if err != nil {
		n.log.Error("[realtime][redis] encode result failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	n.publish(ctx, ResultTopic(userID), KindResult, payload)
}

func (n *RedisNotifier) publish(ctx context.Context, topic, kind string, payload []byte) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := n.client.Publish(ctx, topic, payload).Err(); err != nil {
		metrics.NotificationsDropped.WithLabelValues(kind).Inc()
		n.log.Warn("[realtime][redis] publish failed", zap.String("topic", topic), zap.Error(err))
	}
}
