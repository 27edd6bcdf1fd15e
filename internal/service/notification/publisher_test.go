package notification_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewear/internal/domain"
	"rewear/internal/service/notification"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	rdb := newRedis(t)

	sub := rdb.Subscribe(ctx, notification.UserChannel(7))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	notif, err := domain.NewNotification(7, domain.NotifSwapAccepted, "accepted",
		domain.SwapPayload{SwapRequestID: 3, ItemID: 9})
	require.NoError(t, err)
	notif.ID = 42

	pub := notification.NewRedisPublisher(rdb)
	require.NoError(t, pub.Publish(ctx, notif))

	select {
	case msg := <-sub.Channel():
		assert.Equal(t, "notifications:user:7", msg.Channel)

		var got domain.Notification
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, int64(42), got.ID)
		assert.Equal(t, domain.NotifSwapAccepted, got.Type)
		require.NotNil(t, got.ActionURL)
		assert.Equal(t, "/swaps/3", *got.ActionURL)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestRedisPublisher_NilClient(t *testing.T) {
	pub := notification.NewRedisPublisher(nil)
	err := pub.Publish(context.Background(), &domain.Notification{UserID: 1, Type: domain.NotifNewMatch})
	assert.NoError(t, err)
}
