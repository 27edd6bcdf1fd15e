// Package query holds the read-only projections over items, swap requests
// and recommendations.
package query

import (
	"context"

	"rewear/internal/domain"
	"rewear/internal/repository"
)

type Service interface {
	ItemsByUser(ctx context.Context, userID int64) ([]domain.Item, error)
	ItemsByStatus(ctx context.Context, status domain.ItemStatus) ([]domain.Item, error)
	ItemsByCategory(ctx context.Context, category, searchText string) ([]domain.Item, error)
	RequestsByUser(ctx context.Context, userID int64, direction domain.SwapDirection, status *domain.SwapStatus) ([]domain.SwapRequest, error)
	RecommendationsForItem(ctx context.Context, itemID int64) ([]domain.Recommendation, error)
}

type service struct {
	userRepo    repository.UserRepository
	itemRepo    repository.ItemRepository
	requestRepo repository.SwapRequestRepository
	recRepo     repository.RecommendationRepository
}

func NewService(
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	requestRepo repository.SwapRequestRepository,
	recRepo repository.RecommendationRepository,
) Service {
	return &service{
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		requestRepo: requestRepo,
		recRepo:     recRepo,
	}
}

func (s *service) ItemsByUser(ctx context.Context, userID int64) ([]domain.Item, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.itemRepo.List(ctx, domain.ItemFilter{UserID: &userID})
}

func (s *service) ItemsByStatus(ctx context.Context, status domain.ItemStatus) ([]domain.Item, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "is not a valid item status")
	}
	return s.itemRepo.List(ctx, domain.ItemFilter{Status: &status})
}

// ItemsByCategory matches category case-insensitively; an empty category
// matches every item. searchText narrows the result by title, description and tags.
func (s *service) ItemsByCategory(ctx context.Context, category, searchText string) ([]domain.Item, error) {
	return s.itemRepo.List(ctx, domain.ItemFilter{Category: category, Search: searchText})
}

func (s *service) RequestsByUser(ctx context.Context, userID int64, direction domain.SwapDirection, status *domain.SwapStatus) ([]domain.SwapRequest, error) {
	v := &domain.ValidationError{}
	if !direction.IsValid() {
		v.Add("direction", "must be sent or received")
	}
	if status != nil && !status.IsValid() {
		v.Add("status", "is not a valid swap status")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	filter := domain.SwapRequestFilter{Status: status}
	if direction == domain.DirectionSent {
		filter.FromUserID = &userID
	} else {
		filter.ToUserID = &userID
	}
	return s.requestRepo.List(ctx, filter)
}

func (s *service) RecommendationsForItem(ctx context.Context, itemID int64) ([]domain.Recommendation, error) {
	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.recRepo.ListByItem(ctx, itemID)
}
