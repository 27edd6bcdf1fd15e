package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rewear/internal/domain"
)

type SwapRequestRepository struct {
	mock.Mock
}

func (m *SwapRequestRepository) request(args mock.Arguments) (*domain.SwapRequest, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SwapRequest), args.Error(1)
}

func (m *SwapRequestRepository) Create(ctx context.Context, req *domain.SwapRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *SwapRequestRepository) GetByID(ctx context.Context, id int64) (*domain.SwapRequest, error) {
	return m.request(m.Called(ctx, id))
}

func (m *SwapRequestRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.SwapRequest, error) {
	return m.request(m.Called(ctx, id))
}

func (m *SwapRequestRepository) List(ctx context.Context, filter domain.SwapRequestFilter) ([]domain.SwapRequest, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.SwapRequest), args.Error(1)
}

func (m *SwapRequestRepository) ListPendingByItemForUpdate(ctx context.Context, itemID, excludeID int64) ([]domain.SwapRequest, error) {
	args := m.Called(ctx, itemID, excludeID)
	return args.Get(0).([]domain.SwapRequest), args.Error(1)
}

func (m *SwapRequestRepository) UpdateStatus(ctx context.Context, req *domain.SwapRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *SwapRequestRepository) UpdateMessage(ctx context.Context, req *domain.SwapRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *SwapRequestRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SwapRequestRepository) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *SwapRequestRepository) ExistsForItem(ctx context.Context, itemID int64) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *SwapRequestRepository) CountByStatus(ctx context.Context, status domain.SwapStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type SwapEventRepository struct {
	mock.Mock
}

func (m *SwapEventRepository) Create(ctx context.Context, event *domain.SwapEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *SwapEventRepository) ListByRequest(ctx context.Context, swapRequestID int64) ([]domain.SwapEvent, error) {
	args := m.Called(ctx, swapRequestID)
	return args.Get(0).([]domain.SwapEvent), args.Error(1)
}
