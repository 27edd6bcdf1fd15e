package recommendation

import (
	"context"

	"github.com/shopspring/decimal"

	"rewear/internal/domain"
	"rewear/internal/repository"
	"rewear/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, input domain.CreateRecommendationInput) (*domain.Recommendation, error)
	GetByID(ctx context.Context, id int64) (*domain.Recommendation, error)
	List(ctx context.Context) ([]domain.Recommendation, error)
	Update(ctx context.Context, id int64, input domain.UpdateRecommendationInput) (*domain.Recommendation, error)
	Delete(ctx context.Context, id int64) error
	GenerateForItem(ctx context.Context, itemID int64) ([]domain.Recommendation, error)
}

type service struct {
	txm       repository.TxManager
	recRepo   repository.RecommendationRepository
	itemRepo  repository.ItemRepository
	notifier  notification.Service
	generator Generator
	threshold decimal.Decimal
}

func NewService(
	txm repository.TxManager,
	recRepo repository.RecommendationRepository,
	itemRepo repository.ItemRepository,
	notifier notification.Service,
	generator Generator,
	threshold decimal.Decimal,
) Service {
	if generator == nil {
		generator = HeuristicGenerator{}
	}
	return &service{
		txm:       txm,
		recRepo:   recRepo,
		itemRepo:  itemRepo,
		notifier:  notifier,
		generator: generator,
		threshold: threshold,
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateRecommendationInput) (*domain.Recommendation, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.itemRepo.GetByID(ctx, input.ItemID); err != nil {
		return nil, err
	}

	rec := &domain.Recommendation{
		ItemID:        input.ItemID,
		UserID:        input.UserID,
		Score:         input.Score.Round(2),
		StyleMatch:    input.StyleMatch.Round(2),
		ColorMatch:    input.ColorMatch.Round(2),
		OccasionMatch: input.OccasionMatch.Round(2),
		Reason:        input.Reason,
	}
	if err := s.recRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Recommendation, error) {
	return s.recRepo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]domain.Recommendation, error) {
	return s.recRepo.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, input domain.UpdateRecommendationInput) (*domain.Recommendation, error) {
	if input.ID == nil || *input.ID != id {
		return nil, domain.ErrIDMismatch
	}

	rec, err := s.recRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.Apply(rec); err != nil {
		return nil, err
	}
	if err := s.recRepo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.recRepo.Delete(ctx, id)
}

// GenerateForItem stores fresh recommendations for the item. When the best
// score reaches the threshold the item is flagged and its owner notified.
func (s *service) GenerateForItem(ctx context.Context, itemID int64) ([]domain.Recommendation, error) {
	var (
		stored []domain.Recommendation
		notif  *domain.Notification
	)
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		item, err := s.itemRepo.GetByIDForUpdate(ctx, itemID)
		if err != nil {
			return err
		}

		generated, err := s.generator.Generate(ctx, item)
		if err != nil {
			return err
		}

		best := -1
		for i := range generated {
			rec := generated[i]
			rec.ItemID = item.ID
			rec.Score = rec.Score.Round(2)
			rec.StyleMatch = rec.StyleMatch.Round(2)
			rec.ColorMatch = rec.ColorMatch.Round(2)
			rec.OccasionMatch = rec.OccasionMatch.Round(2)
			input := domain.CreateRecommendationInput{
				ItemID: rec.ItemID, Score: rec.Score, StyleMatch: rec.StyleMatch,
				ColorMatch: rec.ColorMatch, OccasionMatch: rec.OccasionMatch,
			}
			if err := input.Validate(); err != nil {
				return err
			}
			if err := s.recRepo.Create(ctx, &rec); err != nil {
				return err
			}
			stored = append(stored, rec)
			if best < 0 || rec.Score.GreaterThan(stored[best].Score) {
				best = len(stored) - 1
			}
		}

		if best < 0 || stored[best].Score.LessThan(s.threshold) {
			return nil
		}
		top := stored[best]
		if !item.IsAIRecommended {
			if err := s.itemRepo.SetAIRecommended(ctx, item.ID, true); err != nil {
				return err
			}
		}
		notif, err = s.notifier.Emit(ctx, notification.Event{
			UserID:  item.UserID,
			Type:    domain.NotifNewMatch,
			Vars:    map[string]string{"item": item.Title, "score": top.Score.StringFixed(2)},
			Payload: domain.MatchPayload{ItemID: item.ID, RecommendationID: top.ID},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if notif != nil {
		s.notifier.Dispatch(ctx, *notif)
	}
	if stored == nil {
		stored = []domain.Recommendation{}
	}
	return stored, nil
}
