package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rewear/internal/domain"
)

type ItemService struct {
	mock.Mock
}

func (m *ItemService) item(args mock.Arguments) (*domain.Item, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *ItemService) Create(ctx context.Context, input domain.CreateItemInput) (*domain.Item, error) {
	return m.item(m.Called(ctx, input))
}

func (m *ItemService) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	return m.item(m.Called(ctx, id))
}

func (m *ItemService) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *ItemService) Update(ctx context.Context, id int64, input domain.UpdateItemInput) (*domain.Item, error) {
	return m.item(m.Called(ctx, id, input))
}

func (m *ItemService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ItemService) RecordView(ctx context.Context, id int64) (*domain.Item, error) {
	return m.item(m.Called(ctx, id))
}

func (m *ItemService) Like(ctx context.Context, id int64) (*domain.Item, error) {
	return m.item(m.Called(ctx, id))
}
