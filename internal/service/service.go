package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"rewear/internal/config"
	"rewear/internal/repository"
	"rewear/internal/service/auth"
	"rewear/internal/service/badge"
	"rewear/internal/service/email"
	"rewear/internal/service/item"
	"rewear/internal/service/media"
	"rewear/internal/service/notification"
	"rewear/internal/service/query"
	"rewear/internal/service/recommendation"
	"rewear/internal/service/stats"
	"rewear/internal/service/swap"
	"rewear/internal/service/user"
)

type Services struct {
	Auth           auth.Service
	User           user.Service
	Item           item.Service
	Swap           swap.Service
	Notification   notification.Service
	Badge          badge.Service
	Recommendation recommendation.Service
	Query          query.Service
	Media          media.Service
	Email          email.Service
	Stats          stats.Service
}

// NewServices wires every service. redis and minioClient may be nil; the
// features that depend on them degrade instead of failing.
func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	statsService := stats.NewService(repos.User, repos.Item, repos.SwapRequest, redis)
	notificationService := notification.NewService(
		repos.Notification,
		repos.User,
		notification.NewRedisPublisher(redis),
		emailService,
		cfg.DefaultLocale,
	)

	var store media.ObjectStore
	if minioClient != nil {
		store = minioClient
	}

	return &Services{
		Auth: auth.NewService(repos.User, cfg),
		User: user.NewService(repos.Tx, repos.User, repos.Item, repos.SwapRequest, statsService),
		Item: item.NewService(repos.Tx, repos.Item, repos.User, repos.SwapRequest, statsService),
		Swap: swap.NewService(
			repos.Tx,
			repos.SwapRequest,
			repos.Item,
			repos.User,
			repos.SwapEvent,
			notificationService,
			statsService,
			cfg.Swap,
		),
		Notification: notificationService,
		Badge:        badge.NewService(repos.Tx, repos.Badge, repos.User, notificationService),
		Recommendation: recommendation.NewService(
			repos.Tx,
			repos.Recommendation,
			repos.Item,
			notificationService,
			recommendation.HeuristicGenerator{},
			cfg.Swap.MatchScoreThreshold,
		),
		Query: query.NewService(repos.User, repos.Item, repos.SwapRequest, repos.Recommendation),
		Media: media.NewService(repos.Item, store, cfg),
		Email: emailService,
		Stats: statsService,
	}
}
