package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rewear/internal/domain"
)

type SwapService struct {
	mock.Mock
}

func (m *SwapService) request(args mock.Arguments) (*domain.SwapRequest, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SwapRequest), args.Error(1)
}

func (m *SwapService) CreateRequest(ctx context.Context, input domain.CreateSwapRequestInput) (*domain.SwapRequest, error) {
	return m.request(m.Called(ctx, input))
}

func (m *SwapService) Accept(ctx context.Context, requestID, actorID int64) (*domain.SwapRequest, error) {
	return m.request(m.Called(ctx, requestID, actorID))
}

func (m *SwapService) Reject(ctx context.Context, requestID, actorID int64) (*domain.SwapRequest, error) {
	return m.request(m.Called(ctx, requestID, actorID))
}

func (m *SwapService) Complete(ctx context.Context, requestID, actorID int64) (*domain.SwapRequest, error) {
	return m.request(m.Called(ctx, requestID, actorID))
}

func (m *SwapService) Cancel(ctx context.Context, requestID, actorID int64) (*domain.SwapRequest, error) {
	return m.request(m.Called(ctx, requestID, actorID))
}

func (m *SwapService) History(ctx context.Context, requestID int64) ([]domain.SwapEvent, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SwapEvent), args.Error(1)
}

func (m *SwapService) GetByID(ctx context.Context, id int64) (*domain.SwapRequest, error) {
	return m.request(m.Called(ctx, id))
}

func (m *SwapService) List(ctx context.Context, filter domain.SwapRequestFilter) ([]domain.SwapRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SwapRequest), args.Error(1)
}

func (m *SwapService) Update(ctx context.Context, id int64, input domain.UpdateSwapRequestInput) (*domain.SwapRequest, error) {
	return m.request(m.Called(ctx, id, input))
}

func (m *SwapService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
