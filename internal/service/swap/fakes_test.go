package swap_test

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"rewear/internal/domain"
	"rewear/internal/mocks"
	"rewear/internal/service/notification"
)

// store is an in-memory stand-in for the tables touched by the lifecycle.
type store struct {
	users    map[int64]domain.User
	items    map[int64]domain.Item
	requests map[int64]domain.SwapRequest
	events   []domain.SwapEvent
	locks    []string
	nextID   int64
}

func newStore() *store {
	return &store{
		users:    map[int64]domain.User{},
		items:    map[int64]domain.Item{},
		requests: map[int64]domain.SwapRequest{},
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *store) addUser(name string) domain.User {
	u := domain.User{ID: s.id(), Username: name, Email: name + "@example.com", Level: 1, EcoScore: decimal.Zero}
	s.users[u.ID] = u
	return u
}

func (s *store) addItem(ownerID int64, title string, cond domain.ItemCondition) domain.Item {
	points, _ := domain.PointsForCondition(cond)
	it := domain.Item{ID: s.id(), UserID: ownerID, Title: title, Condition: cond, Points: points, Status: domain.ItemAvailable}
	s.items[it.ID] = it
	return it
}

type fakeUsers struct {
	mocks.UserRepository
	s *store
}

func (r *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id)
	}
	return &u, nil
}

func (r *fakeUsers) GetByIDForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	r.s.locks = append(r.s.locks, fmt.Sprintf("user:%d", id))
	return r.GetByID(ctx, id)
}

func (r *fakeUsers) UpdateProgress(_ context.Context, u *domain.User) error {
	r.s.users[u.ID] = *u
	return nil
}

type fakeItems struct {
	mocks.ItemRepository
	s *store
}

func (r *fakeItems) GetByIDForUpdate(_ context.Context, id int64) (*domain.Item, error) {
	r.s.locks = append(r.s.locks, fmt.Sprintf("item:%d", id))
	it, ok := r.s.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("item", id)
	}
	return &it, nil
}

func (r *fakeItems) UpdateStatus(_ context.Context, id int64, status domain.ItemStatus) error {
	it := r.s.items[id]
	it.Status = status
	r.s.items[id] = it
	return nil
}

type fakeRequests struct {
	mocks.SwapRequestRepository
	s *store
}

func (r *fakeRequests) Create(_ context.Context, req *domain.SwapRequest) error {
	req.ID = r.s.id()
	req.UpdatedAt = req.CreatedAt
	r.s.requests[req.ID] = *req
	return nil
}

func (r *fakeRequests) GetByID(_ context.Context, id int64) (*domain.SwapRequest, error) {
	req, ok := r.s.requests[id]
	if !ok {
		return nil, domain.NewNotFoundError("swap request", id)
	}
	return &req, nil
}

func (r *fakeRequests) GetByIDForUpdate(ctx context.Context, id int64) (*domain.SwapRequest, error) {
	r.s.locks = append(r.s.locks, fmt.Sprintf("request:%d", id))
	return r.GetByID(ctx, id)
}

func (r *fakeRequests) ListPendingByItemForUpdate(_ context.Context, itemID, excludeID int64) ([]domain.SwapRequest, error) {
	out := []domain.SwapRequest{}
	for _, req := range r.s.requests {
		if req.ItemID == itemID && req.ID != excludeID && req.Status == domain.SwapPending {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRequests) UpdateStatus(_ context.Context, req *domain.SwapRequest) error {
	r.s.requests[req.ID] = *req
	return nil
}

func (r *fakeRequests) UpdateMessage(_ context.Context, req *domain.SwapRequest) error {
	stored := r.s.requests[req.ID]
	stored.Message = req.Message
	r.s.requests[req.ID] = stored
	return nil
}

func (r *fakeRequests) Delete(_ context.Context, id int64) error {
	delete(r.s.requests, id)
	return nil
}

type fakeEvents struct {
	mocks.SwapEventRepository
	s *store
}

func (r *fakeEvents) Create(_ context.Context, ev *domain.SwapEvent) error {
	ev.ID = r.s.id()
	r.s.events = append(r.s.events, *ev)
	return nil
}

func (r *fakeEvents) ListByRequest(_ context.Context, requestID int64) ([]domain.SwapEvent, error) {
	out := []domain.SwapEvent{}
	for _, ev := range r.s.events {
		if ev.SwapRequestID == requestID {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	mocks.NotificationService
	emitted    []notification.Event
	dispatched []domain.Notification
	nextID     int64
}

func (n *fakeNotifier) Emit(_ context.Context, ev notification.Event) (*domain.Notification, error) {
	n.emitted = append(n.emitted, ev)
	n.nextID++
	return &domain.Notification{ID: n.nextID, UserID: ev.UserID, Type: ev.Type}, nil
}

func (n *fakeNotifier) Dispatch(_ context.Context, notifs ...domain.Notification) {
	n.dispatched = append(n.dispatched, notifs...)
}

func (n *fakeNotifier) emittedTo(userID int64) []notification.Event {
	var out []notification.Event
	for _, ev := range n.emitted {
		if ev.UserID == userID {
			out = append(out, ev)
		}
	}
	return out
}

type countingCache struct {
	invalidations int
}

func (c *countingCache) Invalidate(context.Context) {
	c.invalidations++
}
