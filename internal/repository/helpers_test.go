package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

var itemRowColumns = []string{
	"item_id", "user_id", "title", "description", "category", "size", "condition", "color", "brand",
	"tags", "images", "points", "status", "views", "likes", "is_ai_recommended", "location", "rating",
	"created_at", "updated_at",
}

var swapRequestRowColumns = []string{
	"swap_request_id", "from_user_id", "to_user_id", "item_id", "message", "status", "reason",
	"created_at", "responded_at", "updated_at",
}
