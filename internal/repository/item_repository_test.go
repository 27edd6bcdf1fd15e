package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewear/internal/domain"
)

func TestItemRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItemRepository(db)

	mock.ExpectQuery(`SELECT .* FROM items WHERE item_id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	item, err := repo.GetByID(context.Background(), 99)

	assert.Nil(t, item)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_GetByIDForUpdate_LocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItemRepository(db)
	now := time.Now()

	mock.ExpectQuery(`FROM items WHERE item_id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(itemRowColumns).AddRow(
			1, 10, "Denim Jacket", "", "outerwear", "M", "good", nil, nil,
			"{vintage,blue}", "{}", 100, "available", 3, 1, false, nil, nil, now, now,
		))

	item, err := repo.GetByIDForUpdate(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Denim Jacket", item.Title)
	assert.Equal(t, domain.ItemAvailable, item.Status)
	assert.Equal(t, []string{"vintage", "blue"}, []string(item.Tags))
	assert.False(t, item.Rating.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_List_CategoryAndSearch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItemRepository(db)
	status := domain.ItemAvailable

	mock.ExpectQuery(regexp.QuoteMeta(
		`WHERE status = $1 AND LOWER(category) = LOWER($2) AND (title ILIKE $3 OR description ILIKE $4 OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $5)) ORDER BY item_id ASC`,
	)).
		WithArgs(status, "Tops", `%100\% cotton%`, `%100\% cotton%`, `%100\% cotton%`).
		WillReturnRows(sqlmock.NewRows(itemRowColumns))

	items, err := repo.List(context.Background(), domain.ItemFilter{
		Status:   &status,
		Category: "Tops",
		Search:   "100% cotton",
	})

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_List_NoFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItemRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM items ORDER BY item_id ASC`)).
		WithArgs().
		WillReturnRows(sqlmock.NewRows(itemRowColumns))

	_, err := repo.List(context.Background(), domain.ItemFilter{})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_UpdateStatus_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItemRepository(db)

	mock.ExpectExec(`UPDATE items SET status`).
		WithArgs(int64(5), domain.ItemSwapped).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 5, domain.ItemSwapped)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
