package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"rewear/internal/domain"
	"rewear/internal/observability"
)

// Publisher pushes persisted notifications to live subscribers.
type Publisher interface {
	Publish(ctx context.Context, notif *domain.Notification) error
}

type redisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher returns a publisher that is a no-op when rdb is nil.
func NewRedisPublisher(rdb *redis.Client) Publisher {
	return &redisPublisher{rdb: rdb}
}

func UserChannel(userID int64) string {
	return fmt.Sprintf("notifications:user:%d", userID)
}

func (p *redisPublisher) Publish(ctx context.Context, notif *domain.Notification) error {
	if p.rdb == nil {
		return nil
	}

	payload, err := json.Marshal(notif)
	if err != nil {
		return err
	}

	if err := p.rdb.Publish(ctx, UserChannel(notif.UserID), payload).Err(); err != nil {
		return err
	}
	observability.NotificationsPublished.WithLabelValues(string(notif.Type)).Inc()
	return nil
}
