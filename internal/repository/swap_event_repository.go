package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"rewear/internal/domain"
)

// SwapEventRepository stores the transition history of swap requests.
type SwapEventRepository interface {
	Create(ctx context.Context, event *domain.SwapEvent) error
	ListByRequest(ctx context.Context, swapRequestID int64) ([]domain.SwapEvent, error)
}

type swapEventRepository struct {
	db *sqlx.DB
}

func NewSwapEventRepository(db *sqlx.DB) SwapEventRepository {
	return &swapEventRepository{db: db}
}

func (r *swapEventRepository) Create(ctx context.Context, event *domain.SwapEvent) error {
	query := `
		INSERT INTO swap_request_events (swap_request_id, actor_id, action, from_status, to_status, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING event_id, created_at`

	err := querierFor(ctx, r.db).QueryRowxContext(ctx, query,
		event.SwapRequestID, event.ActorID, event.Action, event.FromStatus, event.ToStatus, event.Reason,
	).Scan(&event.ID, &event.CreatedAt)
	return mapError(err)
}

func (r *swapEventRepository) ListByRequest(ctx context.Context, swapRequestID int64) ([]domain.SwapEvent, error) {
	events := []domain.SwapEvent{}
	query := `
		SELECT event_id, swap_request_id, actor_id, action, from_status, to_status, reason, created_at
		FROM swap_request_events
		WHERE swap_request_id = $1
		ORDER BY event_id ASC`

	err := querierFor(ctx, r.db).SelectContext(ctx, &events, query, swapRequestID)
	return events, err
}
