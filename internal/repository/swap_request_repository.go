package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"rewear/internal/domain"
)

type SwapRequestRepository interface {
	Create(ctx context.Context, req *domain.SwapRequest) error
	GetByID(ctx context.Context, id int64) (*domain.SwapRequest, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.SwapRequest, error)
	List(ctx context.Context, filter domain.SwapRequestFilter) ([]domain.SwapRequest, error)
	ListPendingByItemForUpdate(ctx context.Context, itemID, excludeID int64) ([]domain.SwapRequest, error)
	UpdateStatus(ctx context.Context, req *domain.SwapRequest) error
	UpdateMessage(ctx context.Context, req *domain.SwapRequest) error
	Delete(ctx context.Context, id int64) error
	ExistsForUser(ctx context.Context, userID int64) (bool, error)
	ExistsForItem(ctx context.Context, itemID int64) (bool, error)
	CountByStatus(ctx context.Context, status domain.SwapStatus) (int64, error)
}

type swapRequestRepository struct {
	db *sqlx.DB
}

func NewSwapRequestRepository(db *sqlx.DB) SwapRequestRepository {
	return &swapRequestRepository{db: db}
}

const swapRequestColumns = `swap_request_id, from_user_id, to_user_id, item_id, message, status, reason,
	created_at, responded_at, updated_at`

func (r *swapRequestRepository) Create(ctx context.Context, req *domain.SwapRequest) error {
	query := `
		INSERT INTO swap_requests (from_user_id, to_user_id, item_id, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING swap_request_id, updated_at`

	err := querierFor(ctx, r.db).QueryRowxContext(ctx, query,
		req.FromUserID, req.ToUserID, req.ItemID, req.Message, req.Status, req.CreatedAt,
	).Scan(&req.ID, &req.UpdatedAt)
	return mapError(err)
}

func (r *swapRequestRepository) GetByID(ctx context.Context, id int64) (*domain.SwapRequest, error) {
	var req domain.SwapRequest
	query := `SELECT ` + swapRequestColumns + ` FROM swap_requests WHERE swap_request_id = $1`

	if err := querierFor(ctx, r.db).GetContext(ctx, &req, query, id); err != nil {
		return nil, notFound(err, "swap request", id)
	}
	return &req, nil
}

func (r *swapRequestRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.SwapRequest, error) {
	var req domain.SwapRequest
	query := `SELECT ` + swapRequestColumns + ` FROM swap_requests WHERE swap_request_id = $1 FOR UPDATE`

	if err := querierFor(ctx, r.db).GetContext(ctx, &req, query, id); err != nil {
		return nil, notFound(err, "swap request", id)
	}
	return &req, nil
}

func (r *swapRequestRepository) List(ctx context.Context, filter domain.SwapRequestFilter) ([]domain.SwapRequest, error) {
	qb := psql.Select(swapRequestColumns).From("swap_requests").OrderBy("swap_request_id ASC")

	if filter.FromUserID != nil {
		qb = qb.Where(sq.Eq{"from_user_id": *filter.FromUserID})
	}
	if filter.ToUserID != nil {
		qb = qb.Where(sq.Eq{"to_user_id": *filter.ToUserID})
	}
	if filter.ItemID != nil {
		qb = qb.Where(sq.Eq{"item_id": *filter.ItemID})
	}
	if filter.Status != nil {
		qb = qb.Where(sq.Eq{"status": *filter.Status})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}

	reqs := []domain.SwapRequest{}
	err = querierFor(ctx, r.db).SelectContext(ctx, &reqs, query, args...)
	return reqs, err
}

// ListPendingByItemForUpdate locks every other pending request on the item.
func (r *swapRequestRepository) ListPendingByItemForUpdate(ctx context.Context, itemID, excludeID int64) ([]domain.SwapRequest, error) {
	reqs := []domain.SwapRequest{}
	query := `
		SELECT ` + swapRequestColumns + ` FROM swap_requests
		WHERE item_id = $1 AND status = 'pending' AND swap_request_id <> $2
		ORDER BY swap_request_id ASC
		FOR UPDATE`

	err := querierFor(ctx, r.db).SelectContext(ctx, &reqs, query, itemID, excludeID)
	return reqs, err
}

func (r *swapRequestRepository) UpdateStatus(ctx context.Context, req *domain.SwapRequest) error {
	query := `
		UPDATE swap_requests
		SET status = $2, reason = $3, responded_at = $4, updated_at = NOW()
		WHERE swap_request_id = $1
		RETURNING updated_at`

	err := querierFor(ctx, r.db).QueryRowxContext(ctx, query,
		req.ID, req.Status, req.Reason, req.RespondedAt,
	).Scan(&req.UpdatedAt)
	return notFound(err, "swap request", req.ID)
}

func (r *swapRequestRepository) UpdateMessage(ctx context.Context, req *domain.SwapRequest) error {
	query := `
		UPDATE swap_requests SET message = $2, updated_at = NOW()
		WHERE swap_request_id = $1
		RETURNING updated_at`

	err := querierFor(ctx, r.db).QueryRowxContext(ctx, query, req.ID, req.Message).Scan(&req.UpdatedAt)
	return notFound(err, "swap request", req.ID)
}

func (r *swapRequestRepository) Delete(ctx context.Context, id int64) error {
	res, err := querierFor(ctx, r.db).ExecContext(ctx, `DELETE FROM swap_requests WHERE swap_request_id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res, "swap request", id)
}

func (r *swapRequestRepository) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := querierFor(ctx, r.db).GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM swap_requests WHERE from_user_id = $1 OR to_user_id = $1)`, userID)
	return exists, err
}

func (r *swapRequestRepository) ExistsForItem(ctx context.Context, itemID int64) (bool, error) {
	var exists bool
	err := querierFor(ctx, r.db).GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM swap_requests WHERE item_id = $1)`, itemID)
	return exists, err
}

func (r *swapRequestRepository) CountByStatus(ctx context.Context, status domain.SwapStatus) (int64, error) {
	var count int64
	err := querierFor(ctx, r.db).GetContext(ctx, &count,
		`SELECT COUNT(*) FROM swap_requests WHERE status = $1`, status)
	return count, err
}
