package item

import (
	"context"

	"rewear/internal/domain"
	"rewear/internal/repository"
	"rewear/internal/service/stats"
)

type Service interface {
	Create(ctx context.Context, input domain.CreateItemInput) (*domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	Update(ctx context.Context, id int64, input domain.UpdateItemInput) (*domain.Item, error)
	Delete(ctx context.Context, id int64) error
	RecordView(ctx context.Context, id int64) (*domain.Item, error)
	Like(ctx context.Context, id int64) (*domain.Item, error)
}

type service struct {
	txm         repository.TxManager
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	requestRepo repository.SwapRequestRepository
	cache       stats.Invalidator
}

func NewService(
	txm repository.TxManager,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	requestRepo repository.SwapRequestRepository,
	cache stats.Invalidator,
) Service {
	return &service{
		txm:         txm,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		requestRepo: requestRepo,
		cache:       cache,
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateItemInput) (*domain.Item, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if !input.Status.Editable() {
		return nil, domain.NewStateError("item", string(input.Status), "create")
	}
	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	points, _ := domain.PointsForCondition(input.Condition)
	item := &domain.Item{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Size:        input.Size,
		Condition:   input.Condition,
		Color:       input.Color,
		Brand:       input.Brand,
		Tags:        input.Tags,
		Images:      input.Images,
		Points:      points,
		Status:      input.Status,
		Location:    input.Location,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return item, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, domain.NewValidationError("status", "is not a valid item status")
	}
	return s.itemRepo.List(ctx, filter)
}

// Update locks the item row so owner edits cannot race a lifecycle transition.
func (s *service) Update(ctx context.Context, id int64, input domain.UpdateItemInput) (*domain.Item, error) {
	if input.ID == nil || *input.ID != id {
		return nil, domain.ErrIDMismatch
	}

	var result *domain.Item
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		item, err := s.itemRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := input.Apply(item); err != nil {
			return err
		}
		if err := s.itemRepo.Update(ctx, item); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return result, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.itemRepo.GetByIDForUpdate(ctx, id); err != nil {
			return err
		}
		referenced, err := s.requestRepo.ExistsForItem(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return domain.NewConflictError("item is referenced by swap requests")
		}
		return s.itemRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) RecordView(ctx context.Context, id int64) (*domain.Item, error) {
	return s.itemRepo.IncrementViews(ctx, id)
}

func (s *service) Like(ctx context.Context, id int64) (*domain.Item, error) {
	return s.itemRepo.IncrementLikes(ctx, id)
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
