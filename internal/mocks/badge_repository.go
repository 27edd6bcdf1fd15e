package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rewear/internal/domain"
)

type BadgeRepository struct {
	mock.Mock
}

func (m *BadgeRepository) Create(ctx context.Context, badge *domain.Badge) error {
	args := m.Called(ctx, badge)
	return args.Error(0)
}

func (m *BadgeRepository) GetByID(ctx context.Context, id int64) (*domain.Badge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Badge), args.Error(1)
}

func (m *BadgeRepository) List(ctx context.Context, userID *int64) ([]domain.Badge, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Badge), args.Error(1)
}

func (m *BadgeRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
