package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rewear/internal/domain"
	"rewear/internal/service/notification"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) notif(args mock.Arguments) (*domain.Notification, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error) {
	return m.notif(m.Called(ctx, input))
}

func (m *NotificationService) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	return m.notif(m.Called(ctx, id))
}

func (m *NotificationService) List(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationService) Update(ctx context.Context, id int64, input domain.UpdateNotificationInput) (*domain.Notification, error) {
	return m.notif(m.Called(ctx, id, input))
}

func (m *NotificationService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id int64) (*domain.Notification, error) {
	return m.notif(m.Called(ctx, id))
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// Emit returns a notification built from the event unless an explicit return is configured.
func (m *NotificationService) Emit(ctx context.Context, ev notification.Event) (*domain.Notification, error) {
	args := m.Called(ctx, ev)
	if args.Get(0) == nil && args.Error(1) == nil {
		return &domain.Notification{UserID: ev.UserID, Type: ev.Type}, nil
	}
	return m.notif(args)
}

func (m *NotificationService) Dispatch(ctx context.Context, notifs ...domain.Notification) {
	m.Called(ctx, notifs)
}
