package swap

import (
	"context"
	"errors"
	"strconv"
	"time"

	"rewear/internal/config"
	"rewear/internal/domain"
	"rewear/internal/observability"
	"rewear/internal/repository"
	"rewear/internal/service/notification"
	"rewear/internal/service/stats"
)

type Service interface {
	CreateRequest(ctx context.Context, input domain.CreateSwapRequestInput) (*domain.SwapRequest, error)
	Accept(ctx context.Context, requestID, actorID int64) (*domain.SwapRequest, error)
	Reject(ctx context.Context, requestID, actorID int64) (*domain.SwapRequest, error)
	Complete(ctx context.Context, requestID, actorID int64) (*domain.SwapRequest, error)
	Cancel(ctx context.Context, requestID, actorID int64) (*domain.SwapRequest, error)
	History(ctx context.Context, requestID int64) ([]domain.SwapEvent, error)

	GetByID(ctx context.Context, id int64) (*domain.SwapRequest, error)
	List(ctx context.Context, filter domain.SwapRequestFilter) ([]domain.SwapRequest, error)
	Update(ctx context.Context, id int64, input domain.UpdateSwapRequestInput) (*domain.SwapRequest, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	txm         repository.TxManager
	requestRepo repository.SwapRequestRepository
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	eventRepo   repository.SwapEventRepository
	notifier    notification.Service
	cache       stats.Invalidator
	rules       config.SwapRules
	now         func() time.Time
}

type Option func(*service)

// WithClock overrides the time source used for createdAt and respondedAt.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func NewService(
	txm repository.TxManager,
	requestRepo repository.SwapRequestRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	eventRepo repository.SwapEventRepository,
	notifier notification.Service,
	cache stats.Invalidator,
	rules config.SwapRules,
	opts ...Option,
) Service {
	s := &service{
		txm:         txm,
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		eventRepo:   eventRepo,
		notifier:    notifier,
		cache:       cache,
		rules:       rules,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// outbox collects notifications persisted inside a transaction so they can be
// delivered once it commits.
type outbox []domain.Notification

func (s *service) emit(ctx context.Context, box *outbox, ev notification.Event) error {
	notif, err := s.notifier.Emit(ctx, ev)
	if err != nil {
		return err
	}
	*box = append(*box, *notif)
	return nil
}

func (s *service) finish(ctx context.Context, action domain.SwapAction, err error, box outbox) {
	if err != nil {
		observability.SwapTransitions.WithLabelValues(string(action), resultLabel(err)).Inc()
		return
	}
	observability.SwapTransitions.WithLabelValues(string(action), "ok").Inc()
	if len(box) > 0 {
		s.notifier.Dispatch(ctx, box...)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

func (s *service) record(ctx context.Context, req *domain.SwapRequest, actorID int64, action domain.SwapAction, from *domain.SwapStatus) error {
	return s.eventRepo.Create(ctx, &domain.SwapEvent{
		SwapRequestID: req.ID,
		ActorID:       &actorID,
		Action:        action,
		FromStatus:    from,
		ToStatus:      req.Status,
		Reason:        req.Reason,
	})
}

// lock takes the item row lock before the request row lock. Every transition
// acquires them in this order.
func (s *service) lock(ctx context.Context, requestID int64) (*domain.SwapRequest, *domain.Item, error) {
	peek, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	item, err := s.itemRepo.GetByIDForUpdate(ctx, peek.ItemID)
	if err != nil {
		return nil, nil, err
	}
	req, err := s.requestRepo.GetByIDForUpdate(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	return req, item, nil
}

func swapPayload(req *domain.SwapRequest) domain.SwapPayload {
	return domain.SwapPayload{SwapRequestID: req.ID, ItemID: req.ItemID, Reason: req.Reason}
}

func (s *service) CreateRequest(ctx context.Context, input domain.CreateSwapRequestInput) (*domain.SwapRequest, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		observability.SwapTransitions.WithLabelValues(string(domain.ActionCreate), "invalid").Inc()
		return nil, err
	}

	var (
		created *domain.SwapRequest
		box     outbox
	)
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		requester, err := s.userRepo.GetByID(ctx, input.FromUserID)
		if err != nil {
			return err
		}
		item, err := s.itemRepo.GetByIDForUpdate(ctx, input.ItemID)
		if err != nil {
			return err
		}
		if item.UserID == input.FromUserID {
			return domain.NewValidationError("fromUserId", "cannot request a swap for your own item")
		}
		if item.Status != domain.ItemAvailable {
			return domain.NewValidationError("itemId", "item is not available for swapping")
		}

		req := &domain.SwapRequest{
			FromUserID: input.FromUserID,
			ToUserID:   item.UserID,
			ItemID:     item.ID,
			Message:    input.Message,
			Status:     domain.SwapPending,
			CreatedAt:  s.now(),
		}
		if err := s.requestRepo.Create(ctx, req); err != nil {
			return err
		}
		if err := s.record(ctx, req, input.FromUserID, domain.ActionCreate, nil); err != nil {
			return err
		}
		if err := s.emit(ctx, &box, notification.Event{
			UserID:  item.UserID,
			Type:    domain.NotifSwapRequest,
			Vars:    map[string]string{"from": requester.Username, "item": item.Title},
			Payload: swapPayload(req),
		}); err != nil {
			return err
		}

		created = req
		return nil
	})

	s.finish(ctx, domain.ActionCreate, err, box)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Accept(ctx context.Context, requestID, actorID int64) (*domain.SwapRequest, error) {
	var (
		result *domain.SwapRequest
		box    outbox
	)
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		req, item, err := s.lock(ctx, requestID)
		if err != nil {
			return err
		}
		if req.ToUserID != actorID {
			return domain.NewAuthorizationError("only the item owner can accept a swap request")
		}
		if req.Status != domain.SwapPending {
			return domain.NewStateError("swap request", string(req.Status), "accept")
		}
		if item.Status != domain.ItemAvailable {
			return domain.NewStateError("item", string(item.Status), "accept a swap for")
		}

		owner, err := s.userRepo.GetByID(ctx, actorID)
		if err != nil {
			return err
		}

		now := s.now()
		from := req.Status
		req.Respond(domain.SwapAccepted, nil, now)
		if err := s.requestRepo.UpdateStatus(ctx, req); err != nil {
			return err
		}
		if err := s.itemRepo.UpdateStatus(ctx, item.ID, domain.ItemPending); err != nil {
			return err
		}
		if err := s.record(ctx, req, actorID, domain.ActionAccept, &from); err != nil {
			return err
		}

		others, err := s.requestRepo.ListPendingByItemForUpdate(ctx, item.ID, req.ID)
		if err != nil {
			return err
		}
		for i := range others {
			other := &others[i]
			prev := other.Status
			reason := domain.ReasonSuperseded
			other.Respond(domain.SwapRejected, &reason, now)
			if err := s.requestRepo.UpdateStatus(ctx, other); err != nil {
				return err
			}
			if err := s.record(ctx, other, actorID, domain.ActionReject, &prev); err != nil {
				return err
			}
			if err := s.emit(ctx, &box, notification.Event{
				UserID:  other.FromUserID,
				Type:    domain.NotifSwapRejected,
				Key:     "swap_rejected_superseded",
				Vars:    map[string]string{"item": item.Title},
				Payload: swapPayload(other),
			}); err != nil {
				return err
			}
		}

		if err := s.emit(ctx, &box, notification.Event{
			UserID:  req.FromUserID,
			Type:    domain.NotifSwapAccepted,
			Vars:    map[string]string{"to": owner.Username, "item": item.Title},
			Payload: swapPayload(req),
		}); err != nil {
			return err
		}

		result = req
		return nil
	})

	s.finish(ctx, domain.ActionAccept, err, box)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Reject(ctx context.Context, requestID, actorID int64) (*domain.SwapRequest, error) {
	var (
		result *domain.SwapRequest
		box    outbox
	)
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		req, item, err := s.lock(ctx, requestID)
		if err != nil {
			return err
		}
		if req.ToUserID != actorID {
			return domain.NewAuthorizationError("only the item owner can reject a swap request")
		}
		if req.Status != domain.SwapPending {
			return domain.NewStateError("swap request", string(req.Status), "reject")
		}

		from := req.Status
		reason := domain.ReasonDeclined
		req.Respond(domain.SwapRejected, &reason, s.now())
		if err := s.requestRepo.UpdateStatus(ctx, req); err != nil {
			return err
		}
		if err := s.record(ctx, req, actorID, domain.ActionReject, &from); err != nil {
			return err
		}
		if err := s.emit(ctx, &box, notification.Event{
			UserID:  req.FromUserID,
			Type:    domain.NotifSwapRejected,
			Vars:    map[string]string{"item": item.Title},
			Payload: swapPayload(req),
		}); err != nil {
			return err
		}

		result = req
		return nil
	})

	s.finish(ctx, domain.ActionReject, err, box)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Complete(ctx context.Context, requestID, actorID int64) (*domain.SwapRequest, error) {
	var (
		result *domain.SwapRequest
		box    outbox
	)
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		req, item, err := s.lock(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != domain.SwapAccepted {
			return domain.NewStateError("swap request", string(req.Status), "complete")
		}
		if !req.IsParty(actorID) {
			return domain.NewAuthorizationError("only a party to the swap can complete it")
		}

		owner, requester, err := s.lockParties(ctx, req.ToUserID, req.FromUserID)
		if err != nil {
			return err
		}

		from := req.Status
		req.Status = domain.SwapCompleted
		if err := s.requestRepo.UpdateStatus(ctx, req); err != nil {
			return err
		}
		if err := s.itemRepo.UpdateStatus(ctx, item.ID, domain.ItemSwapped); err != nil {
			return err
		}

		ownerGain := item.Points + s.rules.BonusPoints
		requesterGain := s.rules.BonusPoints
		owner.ApplySwapReward(s.reward(ownerGain))
		requester.ApplySwapReward(s.reward(requesterGain))
		if err := s.userRepo.UpdateProgress(ctx, owner); err != nil {
			return err
		}
		if err := s.userRepo.UpdateProgress(ctx, requester); err != nil {
			return err
		}

		if err := s.record(ctx, req, actorID, domain.ActionComplete, &from); err != nil {
			return err
		}

		for _, party := range []struct {
			userID int64
			points int
		}{{owner.ID, ownerGain}, {requester.ID, requesterGain}} {
			if err := s.emit(ctx, &box, notification.Event{
				UserID:  party.userID,
				Type:    domain.NotifSwapCompleted,
				Vars:    map[string]string{"item": item.Title, "points": strconv.Itoa(party.points)},
				Payload: swapPayload(req),
			}); err != nil {
				return err
			}
		}

		result = req
		return nil
	})

	s.finish(ctx, domain.ActionComplete, err, box)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// lockParties locks both user rows in ascending id order.
func (s *service) lockParties(ctx context.Context, ownerID, requesterID int64) (*domain.User, *domain.User, error) {
	first, second := ownerID, requesterID
	if second < first {
		first, second = second, first
	}
	a, err := s.userRepo.GetByIDForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.userRepo.GetByIDForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}
	if a.ID == ownerID {
		return a, b, nil
	}
	return b, a, nil
}

func (s *service) reward(points int) domain.SwapReward {
	return domain.SwapReward{
		Points:         points,
		EcoScoreDelta:  s.rules.EcoScoreDelta,
		PointsPerLevel: s.rules.PointsPerLevel,
	}
}

func (s *service) Cancel(ctx context.Context, requestID, actorID int64) (*domain.SwapRequest, error) {
	var (
		result *domain.SwapRequest
		box    outbox
	)
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		req, item, err := s.lock(ctx, requestID)
		if err != nil {
			return err
		}
		if req.FromUserID != actorID {
			return domain.NewAuthorizationError("only the requester can cancel a swap request")
		}
		if req.Status != domain.SwapPending {
			return domain.NewStateError("swap request", string(req.Status), "cancel")
		}

		requester, err := s.userRepo.GetByID(ctx, actorID)
		if err != nil {
			return err
		}

		from := req.Status
		reason := domain.ReasonCancelled
		req.Respond(domain.SwapRejected, &reason, s.now())
		if err := s.requestRepo.UpdateStatus(ctx, req); err != nil {
			return err
		}
		if err := s.record(ctx, req, actorID, domain.ActionCancel, &from); err != nil {
			return err
		}
		if err := s.emit(ctx, &box, notification.Event{
			UserID:  req.ToUserID,
			Type:    domain.NotifSwapCancelled,
			Vars:    map[string]string{"from": requester.Username, "item": item.Title},
			Payload: swapPayload(req),
		}); err != nil {
			return err
		}

		result = req
		return nil
	})

	s.finish(ctx, domain.ActionCancel, err, box)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) History(ctx context.Context, requestID int64) ([]domain.SwapEvent, error) {
	if _, err := s.requestRepo.GetByID(ctx, requestID); err != nil {
		return nil, err
	}
	return s.eventRepo.ListByRequest(ctx, requestID)
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.SwapRequest, error) {
	return s.requestRepo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter domain.SwapRequestFilter) ([]domain.SwapRequest, error) {
	return s.requestRepo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int64, input domain.UpdateSwapRequestInput) (*domain.SwapRequest, error) {
	if input.ID == nil || *input.ID != id {
		return nil, domain.ErrIDMismatch
	}

	var result *domain.SwapRequest
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		req, err := s.requestRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		previous := req.Message
		if err := input.Apply(req); err != nil {
			return err
		}
		if req.Message != previous {
			if err := s.requestRepo.UpdateMessage(ctx, req); err != nil {
				return err
			}
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		req, err := s.requestRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.Status == domain.SwapAccepted {
			return domain.NewConflictError("an accepted swap request cannot be deleted")
		}
		return s.requestRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return nil
}
