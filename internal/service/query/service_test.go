package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rewear/internal/domain"
	"rewear/internal/mocks"
	"rewear/internal/service/query"
)

type deps struct {
	users    *mocks.UserRepository
	items    *mocks.ItemRepository
	requests *mocks.SwapRequestRepository
	recs     *mocks.RecommendationRepository
	svc      query.Service
}

func newDeps() deps {
	d := deps{
		users:    new(mocks.UserRepository),
		items:    new(mocks.ItemRepository),
		requests: new(mocks.SwapRequestRepository),
		recs:     new(mocks.RecommendationRepository),
	}
	d.svc = query.NewService(d.users, d.items, d.requests, d.recs)
	return d
}

func TestItemsByUser(t *testing.T) {
	ctx := context.Background()
	d := newDeps()
	d.users.On("GetByID", ctx, int64(2)).Return(&domain.User{ID: 2}, nil).Once()
	d.items.On("List", ctx, mock.MatchedBy(func(f domain.ItemFilter) bool {
		return f.UserID != nil && *f.UserID == 2 && f.Status == nil
	})).Return([]domain.Item{{ID: 1, UserID: 2}}, nil).Once()

	items, err := d.svc.ItemsByUser(ctx, 2)

	require.NoError(t, err)
	assert.Len(t, items, 1)

	d.users.On("GetByID", ctx, int64(9)).Return(nil, domain.NewNotFoundError("user", 9)).Once()
	_, err = d.svc.ItemsByUser(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemsByStatus(t *testing.T) {
	ctx := context.Background()
	d := newDeps()

	_, err := d.svc.ItemsByStatus(ctx, "sold")
	assert.ErrorIs(t, err, domain.ErrValidation)

	d.items.On("List", ctx, mock.MatchedBy(func(f domain.ItemFilter) bool {
		return f.Status != nil && *f.Status == domain.ItemDraft
	})).Return([]domain.Item{}, nil).Once()
	items, err := d.svc.ItemsByStatus(ctx, domain.ItemDraft)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemsByCategory(t *testing.T) {
	ctx := context.Background()
	d := newDeps()
	d.items.On("List", ctx, domain.ItemFilter{Category: "tops", Search: "linen"}).Return([]domain.Item{{ID: 3}}, nil).Once()

	items, err := d.svc.ItemsByCategory(ctx, "tops", "linen")

	require.NoError(t, err)
	assert.Equal(t, int64(3), items[0].ID)
}

func TestRequestsByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("received with status", func(t *testing.T) {
		d := newDeps()
		pending := domain.SwapPending
		d.users.On("GetByID", ctx, int64(2)).Return(&domain.User{ID: 2}, nil).Once()
		d.requests.On("List", ctx, mock.MatchedBy(func(f domain.SwapRequestFilter) bool {
			return f.ToUserID != nil && *f.ToUserID == 2 && f.FromUserID == nil &&
				f.Status != nil && *f.Status == domain.SwapPending
		})).Return([]domain.SwapRequest{{ID: 5}}, nil).Once()

		reqs, err := d.svc.RequestsByUser(ctx, 2, domain.DirectionReceived, &pending)

		require.NoError(t, err)
		assert.Len(t, reqs, 1)
	})

	t.Run("sent", func(t *testing.T) {
		d := newDeps()
		d.users.On("GetByID", ctx, int64(2)).Return(&domain.User{ID: 2}, nil).Once()
		d.requests.On("List", ctx, mock.MatchedBy(func(f domain.SwapRequestFilter) bool {
			return f.FromUserID != nil && *f.FromUserID == 2 && f.ToUserID == nil && f.Status == nil
		})).Return([]domain.SwapRequest{}, nil).Once()

		_, err := d.svc.RequestsByUser(ctx, 2, domain.DirectionSent, nil)
		require.NoError(t, err)
	})

	t.Run("unknown direction and status", func(t *testing.T) {
		d := newDeps()
		bogus := domain.SwapStatus("lost")

		_, err := d.svc.RequestsByUser(ctx, 2, "sideways", &bogus)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Errors, 2)
	})
}

func TestRecommendationsForItem(t *testing.T) {
	ctx := context.Background()
	d := newDeps()
	d.items.On("GetByID", ctx, int64(4)).Return(&domain.Item{ID: 4}, nil).Once()
	d.recs.On("ListByItem", ctx, int64(4)).Return([]domain.Recommendation{{ID: 2}, {ID: 1}}, nil).Once()

	recs, err := d.svc.RecommendationsForItem(ctx, 4)

	require.NoError(t, err)
	assert.Equal(t, int64(2), recs[0].ID)
}
