package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rewear/internal/domain"
)

type ItemRepository struct {
	mock.Mock
}

func (m *ItemRepository) item(args mock.Arguments) (*domain.Item, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *ItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	return m.item(m.Called(ctx, id))
}

func (m *ItemRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Item, error) {
	return m.item(m.Called(ctx, id))
}

func (m *ItemRepository) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *ItemRepository) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *ItemRepository) UpdateStatus(ctx context.Context, id int64, status domain.ItemStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *ItemRepository) SetAIRecommended(ctx context.Context, id int64, recommended bool) error {
	args := m.Called(ctx, id, recommended)
	return args.Error(0)
}

func (m *ItemRepository) IncrementViews(ctx context.Context, id int64) (*domain.Item, error) {
	return m.item(m.Called(ctx, id))
}

func (m *ItemRepository) IncrementLikes(ctx context.Context, id int64) (*domain.Item, error) {
	return m.item(m.Called(ctx, id))
}

func (m *ItemRepository) AppendImage(ctx context.Context, id int64, url string) (*domain.Item, error) {
	return m.item(m.Called(ctx, id, url))
}

func (m *ItemRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ItemRepository) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ItemRepository) CountByStatus(ctx context.Context, status domain.ItemStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}
