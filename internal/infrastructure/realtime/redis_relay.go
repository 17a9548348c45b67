package realtime

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisRelay forwards every estimate topic published on Redis into the
// local Hub.
type RedisRelay struct {
	client redis.UniversalClient
	hub    *Hub
	log    *zap.Logger
}

func NewRedisRelay(client redis.UniversalClient, hub *Hub, log *zap.Logger) *RedisRelay {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisRelay{client: client, hub: hub, log: log}
}

// Run blocks until ctx is done or the subscription channel closes.
func (r *RedisRelay) Run(ctx context.Context) error {
	pubsub := r.client.PSubscribe(ctx, TopicPattern)
	defer pubsub.Close()

	// Wait for the subscription to be confirmed before reading messages.
	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	r.log.Info("[realtime][relay] subscribed", zap.String("pattern", TopicPattern))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.hub.Publish(msg.Channel, []byte(msg.Payload))
		}
	}
}
