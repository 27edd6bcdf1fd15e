package badge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rewear/internal/domain"
	"rewear/internal/mocks"
	"rewear/internal/service/badge"
	"rewear/internal/service/notification"
)

func TestCreate_EmitsBadgeEarned(t *testing.T) {
	ctx := context.Background()
	badges := new(mocks.BadgeRepository)
	users := new(mocks.UserRepository)
	notifier := new(mocks.NotificationService)
	svc := badge.NewService(&mocks.TxManager{}, badges, users, notifier)

	users.On("GetByID", ctx, int64(2)).Return(&domain.User{ID: 2}, nil).Once()
	badges.On("Create", ctx, mock.AnythingOfType("*domain.Badge")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Badge).ID = 8
	}).Return(nil).Once()
	notifier.On("Emit", ctx, mock.MatchedBy(func(ev notification.Event) bool {
		return ev.UserID == 2 && ev.Type == domain.NotifBadgeEarned &&
			ev.Vars["badge"] == "First Swap" && ev.Payload == domain.BadgePayload{BadgeID: 8}
	})).Return(nil, nil).Once()
	notifier.On("Dispatch", ctx, mock.Anything).Once()

	got, err := svc.Create(ctx, domain.CreateBadgeInput{UserID: 2, Name: " First Swap "})

	require.NoError(t, err)
	assert.Equal(t, int64(8), got.ID)
	assert.Equal(t, "First Swap", got.Name)
	assert.False(t, got.EarnedAt.IsZero())
	notifier.AssertExpectations(t)
}

func TestCreate_Validation(t *testing.T) {
	svc := badge.NewService(&mocks.TxManager{}, new(mocks.BadgeRepository), new(mocks.UserRepository), new(mocks.NotificationService))

	_, err := svc.Create(context.Background(), domain.CreateBadgeInput{})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 2)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	badges := new(mocks.BadgeRepository)
	svc := badge.NewService(&mocks.TxManager{}, badges, new(mocks.UserRepository), new(mocks.NotificationService))

	other := int64(2)
	_, err := svc.Update(ctx, 1, domain.UpdateBadgeInput{ID: &other})
	assert.ErrorIs(t, err, domain.ErrIDMismatch)

	missing := int64(9)
	badges.On("GetByID", ctx, missing).Return(nil, domain.NewNotFoundError("badge", missing)).Once()
	_, err = svc.Update(ctx, missing, domain.UpdateBadgeInput{ID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	id := int64(1)
	badges.On("GetByID", ctx, id).Return(&domain.Badge{ID: id}, nil).Once()
	_, err = svc.Update(ctx, id, domain.UpdateBadgeInput{ID: &id})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
