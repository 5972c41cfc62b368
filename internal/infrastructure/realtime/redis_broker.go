// Package realtime delivers notifications to connected listeners.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/internal/domain/repository"
	"github.com/oksasatya/medico-api/pkg/helpers"
)

const subscriberBuffer = 16

// RedisBroker publishes on one pub/sub channel per user so every API
// instance can serve the stream of any user.
type RedisBroker struct {
	rdb    *redis.Client
	logger *logrus.Logger
}

func NewRedisBroker(rdb *redis.Client, logger *logrus.Logger) *RedisBroker {
	return &RedisBroker{rdb: rdb, logger: logger}
}

func (b *RedisBroker) Publish(ctx context.Context, n *entity.Notification) error {
	return helpers.RedisPublishJSON(ctx, b.rdb, helpers.UserChannel(n.UserID), n)
}

func (b *RedisBroker) Subscribe(ctx context.Context, userID string) (<-chan entity.Notification, error) {
	ps := b.rdb.Subscribe(ctx, helpers.UserChannel(userID))
	// Wait for the subscription to be confirmed so no publish is lost in between.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", userID, err)
	}

	out := make(chan entity.Notification, subscriberBuffer)
	go func() {
		defer close(out)
		defer func() { _ = ps.Close() }()
		b.relay(ctx, ps.Channel(), out, userID)
	}()
	return out, nil
}

// relay decodes pub/sub payloads into out until ctx ends or msgs closes.
// Undecodable payloads are skipped and a full out drops the notification.
func (b *RedisBroker) relay(ctx context.Context, msgs <-chan *redis.Message, out chan<- entity.Notification, userID string) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var n entity.Notification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				helpers.LogError(b.logger, "decode live notification", err, logrus.Fields{"user_id": userID})
				continue
			}
			select {
			case out <- n:
			default:
				b.logger.WithField("user_id", userID).Warn("live notification dropped, listener too slow")
			}
		}
	}
}

var _ repository.NotificationBroker = (*RedisBroker)(nil)
