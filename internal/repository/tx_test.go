package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxManager_CommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	txm := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE items SET status`).WithArgs(int64(3), "pending").
		WillReturnResult(sqlmockResult(1))
	mock.ExpectCommit()

	items := NewItemRepository(db)
	err := txm.RunInTx(context.Background(), func(ctx context.Context) error {
		_, inTx := txFromCtx(ctx)
		assert.True(t, inTx)
		return items.UpdateStatus(ctx, 3, "pending")
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	txm := NewTxManager(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := txm.RunInTx(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_NestedCallJoinsOuterTx(t *testing.T) {
	db, mock := newMockDB(t)
	txm := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := txm.RunInTx(context.Background(), func(outer context.Context) error {
		outerTx, _ := txFromCtx(outer)
		return txm.RunInTx(outer, func(inner context.Context) error {
			innerTx, _ := txFromCtx(inner)
			assert.Same(t, outerTx, innerTx)
			return nil
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollsBackOnPanic(t *testing.T) {
	db, mock := newMockDB(t)
	txm := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = txm.RunInTx(context.Background(), func(ctx context.Context) error {
			panic("unexpected")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
