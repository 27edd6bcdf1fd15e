package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewear/internal/domain"
)

func TestSwapRequestRepository_ListPendingByItemForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSwapRequestRepository(db)
	now := time.Now()

	mock.ExpectQuery(`WHERE item_id = \$1 AND status = 'pending' AND swap_request_id <> \$2\s+ORDER BY swap_request_id ASC\s+FOR UPDATE`).
		WithArgs(int64(7), int64(1)).
		WillReturnRows(sqlmock.NewRows(swapRequestRowColumns).
			AddRow(2, 3, 1, 7, "me too", "pending", nil, now, nil, now))

	reqs, err := repo.ListPendingByItemForUpdate(context.Background(), 7, 1)

	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, int64(2), reqs[0].ID)
	assert.Nil(t, reqs[0].RespondedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSwapRequestRepository_UpdateStatus_AcceptedCollision(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSwapRequestRepository(db)
	now := time.Now()

	req := &domain.SwapRequest{ID: 4, Status: domain.SwapAccepted, RespondedAt: &now}

	mock.ExpectQuery(`UPDATE swap_requests`).
		WithArgs(int64(4), domain.SwapAccepted, req.Reason, req.RespondedAt).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "ux_swap_requests_one_accepted"})

	err := repo.UpdateStatus(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSwapRequestRepository_UpdateStatus_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSwapRequestRepository(db)

	mock.ExpectQuery(`UPDATE swap_requests`).WillReturnError(sql.ErrNoRows)

	err := repo.UpdateStatus(context.Background(), &domain.SwapRequest{ID: 9, Status: domain.SwapRejected})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSwapRequestRepository_List_ByRecipientAndStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSwapRequestRepository(db)
	to := int64(1)
	status := domain.SwapPending

	mock.ExpectQuery(regexp.QuoteMeta(`FROM swap_requests WHERE to_user_id = $1 AND status = $2 ORDER BY swap_request_id ASC`)).
		WithArgs(to, status).
		WillReturnRows(sqlmock.NewRows(swapRequestRowColumns))

	reqs, err := repo.List(context.Background(), domain.SwapRequestFilter{ToUserID: &to, Status: &status})

	require.NoError(t, err)
	assert.Empty(t, reqs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
