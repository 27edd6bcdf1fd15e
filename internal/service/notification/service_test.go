package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rewear/internal/domain"
	"rewear/internal/mocks"
	"rewear/internal/service/notification"
)

type recordingPublisher struct {
	published []domain.Notification
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, notif *domain.Notification) error {
	p.published = append(p.published, *notif)
	return p.err
}

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestService_Emit(t *testing.T) {
	ctx := context.Background()

	t.Run("renders message and payload", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(notifRepo, new(mocks.UserRepository), nil, nil, "en")

		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == 2 && n.Type == domain.NotifSwapRejected
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Notification).ID = 11
		}).Return(nil).Once()

		reason := domain.ReasonSuperseded
		notif, err := svc.Emit(ctx, notification.Event{
			UserID:  2,
			Type:    domain.NotifSwapRejected,
			Key:     "swap_rejected_superseded",
			Vars:    map[string]string{"item": "Denim Jacket"},
			Payload: domain.SwapPayload{SwapRequestID: 5, ItemID: 1, Reason: &reason},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(11), notif.ID)
		assert.Contains(t, notif.Message, "Denim Jacket")
		assert.Contains(t, notif.Message, "another member")

		var payload domain.SwapPayload
		require.NoError(t, json.Unmarshal(notif.Payload, &payload))
		assert.Equal(t, int64(5), payload.SwapRequestID)
		require.NotNil(t, payload.Reason)
		assert.Equal(t, domain.ReasonSuperseded, *payload.Reason)
		notifRepo.AssertExpectations(t)
	})

	t.Run("rejects mismatched payload", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(notifRepo, new(mocks.UserRepository), nil, nil, "en")

		_, err := svc.Emit(ctx, notification.Event{
			UserID:  2,
			Type:    domain.NotifBadgeEarned,
			Payload: domain.SwapPayload{SwapRequestID: 5},
		})

		assert.Error(t, err)
		notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and publishes", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		userRepo := new(mocks.UserRepository)
		pub := &recordingPublisher{}
		svc := notification.NewService(notifRepo, userRepo, pub, nil, "en")

		userRepo.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3}, nil).Once()
		notifRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil).Once()

		notif, err := svc.Create(ctx, domain.CreateNotificationInput{
			UserID:  3,
			Type:    domain.NotifNewMatch,
			Message: "  New match  ",
			Payload: json.RawMessage(`{"itemId":4,"recommendationId":8}`),
		})

		require.NoError(t, err)
		assert.Equal(t, "New match", notif.Message)
		assert.Len(t, pub.published, 1)
		userRepo.AssertExpectations(t)
		notifRepo.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := notification.NewService(new(mocks.NotificationRepository), new(mocks.UserRepository), nil, nil, "en")

		_, err := svc.Create(ctx, domain.CreateNotificationInput{Type: "unknown"})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Errors, 3)
	})

	t.Run("unknown user", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := notification.NewService(new(mocks.NotificationRepository), userRepo, nil, nil, "en")

		userRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.NewNotFoundError("user", 99)).Once()

		_, err := svc.Create(ctx, domain.CreateNotificationInput{
			UserID: 99, Type: domain.NotifNewMatch, Message: "hi",
		})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("id mismatch is checked first", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(notifRepo, new(mocks.UserRepository), nil, nil, "en")

		_, err := svc.Update(ctx, 1, domain.UpdateNotificationInput{ID: int64Ptr(2), Read: boolPtr(true)})
		assert.ErrorIs(t, err, domain.ErrIDMismatch)

		_, err = svc.Update(ctx, 1, domain.UpdateNotificationInput{Read: boolPtr(true)})
		assert.ErrorIs(t, err, domain.ErrIDMismatch)

		notifRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(notifRepo, new(mocks.UserRepository), nil, nil, "en")

		notifRepo.On("GetByID", ctx, int64(5)).Return(nil, domain.NewNotFoundError("notification", 5)).Once()

		_, err := svc.Update(ctx, 5, domain.UpdateNotificationInput{ID: int64Ptr(5), Read: boolPtr(true)})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("toggles read flag", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(notifRepo, new(mocks.UserRepository), nil, nil, "en")

		notifRepo.On("GetByID", ctx, int64(5)).Return(&domain.Notification{ID: 5}, nil).Once()
		notifRepo.On("SetRead", ctx, int64(5), true).Return(&domain.Notification{ID: 5, Read: true}, nil).Once()

		notif, err := svc.Update(ctx, 5, domain.UpdateNotificationInput{ID: int64Ptr(5), Read: boolPtr(true)})

		require.NoError(t, err)
		assert.True(t, notif.Read)
		notifRepo.AssertExpectations(t)
	})
}

func TestService_Dispatch_PublishErrorIsNotFatal(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("redis down")}
	svc := notification.NewService(new(mocks.NotificationRepository), new(mocks.UserRepository), pub, nil, "en")

	svc.Dispatch(context.Background(),
		domain.Notification{ID: 1, UserID: 1, Type: domain.NotifNewMatch},
		domain.Notification{ID: 2, UserID: 2, Type: domain.NotifBadgeEarned},
	)

	assert.Len(t, pub.published, 2)
}

func TestService_MarkAllAsRead(t *testing.T) {
	ctx := context.Background()
	notifRepo := new(mocks.NotificationRepository)
	userRepo := new(mocks.UserRepository)
	svc := notification.NewService(notifRepo, userRepo, nil, nil, "en")

	userRepo.On("GetByID", ctx, int64(4)).Return(&domain.User{ID: 4}, nil).Once()
	notifRepo.On("MarkAllAsRead", ctx, int64(4)).Return(int64(3), nil).Once()

	n, err := svc.MarkAllAsRead(ctx, 4)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
