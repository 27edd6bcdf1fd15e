package stats

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"rewear/internal/domain"
	"rewear/internal/observability"
	"rewear/internal/repository"
)

const (
	cacheKeyPrefix = "rewear:stats:"
	versionKey     = "rewear:stats:version"
	cacheTTL       = 5 * time.Minute
)

type Stats struct {
	TotalUsers      int64 `json:"totalUsers"`
	AvailableItems  int64 `json:"availableItems"`
	PendingRequests int64 `json:"pendingRequests"`
	CompletedSwaps  int64 `json:"completedSwaps"`
}

// Invalidator is implemented by anything holding derived marketplace counters.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type Service interface {
	Invalidator
	GetStats(ctx context.Context) (*Stats, error)
}

type service struct {
	userRepo    repository.UserRepository
	itemRepo    repository.ItemRepository
	requestRepo repository.SwapRequestRepository
	redis       *redis.Client
}

func NewService(
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	requestRepo repository.SwapRequestRepository,
	redis *redis.Client,
) Service {
	return &service{
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		requestRepo: requestRepo,
		redis:       redis,
	}
}

// GetStats serves the counters from the cache entry of the current
// generation. Invalidate bumps the generation, so counts computed before an
// invalidation land under a key no reader asks for.
func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	key, cacheable := s.cacheKey(ctx)
	if cacheable {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			var stats Stats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				observability.CacheLookups.WithLabelValues("stats", "hit").Inc()
				return &stats, nil
			}
		}
		observability.CacheLookups.WithLabelValues("stats", "miss").Inc()
	}

	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	available, err := s.itemRepo.CountByStatus(ctx, domain.ItemAvailable)
	if err != nil {
		return nil, err
	}
	pending, err := s.requestRepo.CountByStatus(ctx, domain.SwapPending)
	if err != nil {
		return nil, err
	}
	completed, err := s.requestRepo.CountByStatus(ctx, domain.SwapCompleted)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalUsers:      users,
		AvailableItems:  available,
		PendingRequests: pending,
		CompletedSwaps:  completed,
	}

	if cacheable {
		if statsJSON, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, key, statsJSON, cacheTTL).Err()
		}
	}

	return stats, nil
}

func (s *service) cacheKey(ctx context.Context) (string, bool) {
	if s.redis == nil {
		return "", false
	}
	version, err := s.redis.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", false
	}
	return cacheKeyPrefix + strconv.FormatInt(version, 10), true
}

// Invalidate starts a new cache generation so the next read recomputes.
func (s *service) Invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Incr(ctx, versionKey).Err(); err != nil {
		slog.Warn("failed to invalidate stats cache", "error", err)
	}
}
