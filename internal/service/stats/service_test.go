package stats_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rewear/internal/domain"
	"rewear/internal/mocks"
	"rewear/internal/service/stats"
)

type fixture struct {
	users    *mocks.UserRepository
	items    *mocks.ItemRepository
	requests *mocks.SwapRequestRepository
}

func (f fixture) expectCounts(ctx context.Context) {
	f.users.On("Count", ctx).Return(int64(4), nil).Once()
	f.items.On("CountByStatus", ctx, domain.ItemAvailable).Return(int64(7), nil).Once()
	f.requests.On("CountByStatus", ctx, domain.SwapPending).Return(int64(2), nil).Once()
	f.requests.On("CountByStatus", ctx, domain.SwapCompleted).Return(int64(1), nil).Once()
}

func newFixture() fixture {
	return fixture{
		users:    new(mocks.UserRepository),
		items:    new(mocks.ItemRepository),
		requests: new(mocks.SwapRequestRepository),
	}
}

func TestService_GetStats_Cached(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	f := newFixture()
	svc := stats.NewService(f.users, f.items, f.requests, rdb)

	f.expectCounts(ctx)

	first, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &stats.Stats{TotalUsers: 4, AvailableItems: 7, PendingRequests: 2, CompletedSwaps: 1}, first)

	second, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	f.users.AssertNumberOfCalls(t, "Count", 1)

	assert.True(t, mr.Exists("rewear:stats:0"))
	assert.InDelta(t, (5 * time.Minute).Seconds(), mr.TTL("rewear:stats:0").Seconds(), 1)
}

func TestService_Invalidate(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	f := newFixture()
	svc := stats.NewService(f.users, f.items, f.requests, rdb)

	f.expectCounts(ctx)
	_, err := svc.GetStats(ctx)
	require.NoError(t, err)

	svc.Invalidate(ctx)
	version, err := mr.Get("rewear:stats:version")
	require.NoError(t, err)
	assert.Equal(t, "1", version)

	f.expectCounts(ctx)
	_, err = svc.GetStats(ctx)
	require.NoError(t, err)
	f.users.AssertNumberOfCalls(t, "Count", 2)
}

func TestService_WithoutRedis(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := stats.NewService(f.users, f.items, f.requests, nil)

	f.expectCounts(ctx)
	got, err := svc.GetStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.AvailableItems)
	svc.Invalidate(ctx)
}

func TestService_InvalidateDuringRecompute(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	f := newFixture()
	svc := stats.NewService(f.users, f.items, f.requests, rdb)

	// A swap transition commits while the first read is still counting.
	f.users.On("Count", ctx).Return(int64(4), nil).Once().Run(func(mock.Arguments) {
		svc.Invalidate(ctx)
	})
	f.items.On("CountByStatus", ctx, domain.ItemAvailable).Return(int64(7), nil).Once()
	f.requests.On("CountByStatus", ctx, domain.SwapPending).Return(int64(2), nil).Once()
	f.requests.On("CountByStatus", ctx, domain.SwapCompleted).Return(int64(1), nil).Once()

	stale, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stale.PendingRequests)

	f.users.On("Count", ctx).Return(int64(4), nil).Once()
	f.items.On("CountByStatus", ctx, domain.ItemAvailable).Return(int64(6), nil).Once()
	f.requests.On("CountByStatus", ctx, domain.SwapPending).Return(int64(0), nil).Once()
	f.requests.On("CountByStatus", ctx, domain.SwapCompleted).Return(int64(1), nil).Once()

	fresh, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), fresh.PendingRequests)
	assert.Equal(t, int64(6), fresh.AvailableItems)
	f.users.AssertNumberOfCalls(t, "Count", 2)
}
