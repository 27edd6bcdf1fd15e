package badge

import (
	"context"
	"strings"
	"time"

	"rewear/internal/domain"
	"rewear/internal/repository"
	"rewear/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, input domain.CreateBadgeInput) (*domain.Badge, error)
	GetByID(ctx context.Context, id int64) (*domain.Badge, error)
	List(ctx context.Context, userID *int64) ([]domain.Badge, error)
	Update(ctx context.Context, id int64, input domain.UpdateBadgeInput) (*domain.Badge, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	txm       repository.TxManager
	badgeRepo repository.BadgeRepository
	userRepo  repository.UserRepository
	notifier  notification.Service
}

func NewService(
	txm repository.TxManager,
	badgeRepo repository.BadgeRepository,
	userRepo repository.UserRepository,
	notifier notification.Service,
) Service {
	return &service{
		txm:       txm,
		badgeRepo: badgeRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// Create awards a badge and tells the owner about it.
func (s *service) Create(ctx context.Context, input domain.CreateBadgeInput) (*domain.Badge, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	badge := &domain.Badge{
		UserID:      input.UserID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Icon:        input.Icon,
		EarnedAt:    time.Now().UTC(),
	}
	if input.EarnedAt != nil {
		badge.EarnedAt = input.EarnedAt.UTC()
	}

	var notif *domain.Notification
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
			return err
		}
		if err := s.badgeRepo.Create(ctx, badge); err != nil {
			return err
		}
		n, err := s.notifier.Emit(ctx, notification.Event{
			UserID:  badge.UserID,
			Type:    domain.NotifBadgeEarned,
			Vars:    map[string]string{"badge": badge.Name},
			Payload: domain.BadgePayload{BadgeID: badge.ID},
		})
		notif = n
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, *notif)
	return badge, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Badge, error) {
	return s.badgeRepo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, userID *int64) ([]domain.Badge, error) {
	return s.badgeRepo.List(ctx, userID)
}

// Update always fails for existing badges: earned badges are immutable.
func (s *service) Update(ctx context.Context, id int64, input domain.UpdateBadgeInput) (*domain.Badge, error) {
	if input.ID == nil || *input.ID != id {
		return nil, domain.ErrIDMismatch
	}
	if _, err := s.badgeRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, domain.NewStateError("badge", "earned", "modify")
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.badgeRepo.Delete(ctx, id)
}
