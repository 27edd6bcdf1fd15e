package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"rewear/internal/domain"
)

type BadgeRepository interface {
	Create(ctx context.Context, badge *domain.Badge) error
	GetByID(ctx context.Context, id int64) (*domain.Badge, error)
	List(ctx context.Context, userID *int64) ([]domain.Badge, error)
	Delete(ctx context.Context, id int64) error
}

type badgeRepository struct {
	db *sqlx.DB
}

func NewBadgeRepository(db *sqlx.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

const badgeColumns = `badge_id, user_id, name, description, icon, earned_at, created_date, modified_date`

func (r *badgeRepository) Create(ctx context.Context, badge *domain.Badge) error {
	query := `
		INSERT INTO badges (user_id, name, description, icon, earned_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING badge_id, created_date, modified_date`

	err := querierFor(ctx, r.db).QueryRowxContext(ctx, query,
		badge.UserID, badge.Name, badge.Description, badge.Icon, badge.EarnedAt,
	).Scan(&badge.ID, &badge.CreatedDate, &badge.ModifiedDate)
	return mapError(err)
}

func (r *badgeRepository) GetByID(ctx context.Context, id int64) (*domain.Badge, error) {
	var badge domain.Badge
	query := `SELECT ` + badgeColumns + ` FROM badges WHERE badge_id = $1`

	if err := querierFor(ctx, r.db).GetContext(ctx, &badge, query, id); err != nil {
		return nil, notFound(err, "badge", id)
	}
	return &badge, nil
}

func (r *badgeRepository) List(ctx context.Context, userID *int64) ([]domain.Badge, error) {
	badges := []domain.Badge{}
	if userID != nil {
		query := `SELECT ` + badgeColumns + ` FROM badges WHERE user_id = $1 ORDER BY badge_id ASC`
		err := querierFor(ctx, r.db).SelectContext(ctx, &badges, query, *userID)
		return badges, err
	}

	query := `SELECT ` + badgeColumns + ` FROM badges ORDER BY badge_id ASC`
	err := querierFor(ctx, r.db).SelectContext(ctx, &badges, query)
	return badges, err
}

func (r *badgeRepository) Delete(ctx context.Context, id int64) error {
	res, err := querierFor(ctx, r.db).ExecContext(ctx, `DELETE FROM badges WHERE badge_id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res, "badge", id)
}
