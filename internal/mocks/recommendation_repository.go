package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rewear/internal/domain"
)

type RecommendationRepository struct {
	mock.Mock
}

func (m *RecommendationRepository) Create(ctx context.Context, rec *domain.Recommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *RecommendationRepository) GetByID(ctx context.Context, id int64) (*domain.Recommendation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recommendation), args.Error(1)
}

func (m *RecommendationRepository) List(ctx context.Context) ([]domain.Recommendation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Recommendation), args.Error(1)
}

func (m *RecommendationRepository) ListByItem(ctx context.Context, itemID int64) ([]domain.Recommendation, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]domain.Recommendation), args.Error(1)
}

func (m *RecommendationRepository) Update(ctx context.Context, rec *domain.Recommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *RecommendationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
