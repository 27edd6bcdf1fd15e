package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"rewear/internal/domain"
)

type RecommendationRepository interface {
	Create(ctx context.Context, rec *domain.Recommendation) error
	GetByID(ctx context.Context, id int64) (*domain.Recommendation, error)
	List(ctx context.Context) ([]domain.Recommendation, error)
	ListByItem(ctx context.Context, itemID int64) ([]domain.Recommendation, error)
	Update(ctx context.Context, rec *domain.Recommendation) error
	Delete(ctx context.Context, id int64) error
}

type recommendationRepository struct {
	db *sqlx.DB
}

func NewRecommendationRepository(db *sqlx.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

const recommendationColumns = `recommendation_id, item_id, user_id, score, style_match, color_match,
	occasion_match, reason, created_at`

func (r *recommendationRepository) Create(ctx context.Context, rec *domain.Recommendation) error {
	query := `
		INSERT INTO ai_recommendations (item_id, user_id, score, style_match, color_match, occasion_match, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING recommendation_id, created_at`

	err := querierFor(ctx, r.db).QueryRowxContext(ctx, query,
		rec.ItemID, rec.UserID, rec.Score, rec.StyleMatch, rec.ColorMatch, rec.OccasionMatch, rec.Reason,
	).Scan(&rec.ID, &rec.CreatedAt)
	return mapError(err)
}

func (r *recommendationRepository) GetByID(ctx context.Context, id int64) (*domain.Recommendation, error) {
	var rec domain.Recommendation
	query := `SELECT ` + recommendationColumns + ` FROM ai_recommendations WHERE recommendation_id = $1`

	if err := querierFor(ctx, r.db).GetContext(ctx, &rec, query, id); err != nil {
		return nil, notFound(err, "recommendation", id)
	}
	return &rec, nil
}

func (r *recommendationRepository) List(ctx context.Context) ([]domain.Recommendation, error) {
	recs := []domain.Recommendation{}
	query := `SELECT ` + recommendationColumns + ` FROM ai_recommendations ORDER BY recommendation_id ASC`
	err := querierFor(ctx, r.db).SelectContext(ctx, &recs, query)
	return recs, err
}

// ListByItem orders by score, then most recent first, then highest id.
func (r *recommendationRepository) ListByItem(ctx context.Context, itemID int64) ([]domain.Recommendation, error) {
	recs := []domain.Recommendation{}
	query := `
		SELECT ` + recommendationColumns + ` FROM ai_recommendations
		WHERE item_id = $1
		ORDER BY score DESC, created_at DESC, recommendation_id DESC`

	err := querierFor(ctx, r.db).SelectContext(ctx, &recs, query, itemID)
	return recs, err
}

func (r *recommendationRepository) Update(ctx context.Context, rec *domain.Recommendation) error {
	query := `
		UPDATE ai_recommendations
		SET score = :score, style_match = :style_match, color_match = :color_match,
			occasion_match = :occasion_match, reason = :reason
		WHERE recommendation_id = :recommendation_id`

	res, err := sqlx.NamedExecContext(ctx, querierFor(ctx, r.db), query, rec)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res, "recommendation", rec.ID)
}

func (r *recommendationRepository) Delete(ctx context.Context, id int64) error {
	res, err := querierFor(ctx, r.db).ExecContext(ctx, `DELETE FROM ai_recommendations WHERE recommendation_id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res, "recommendation", id)
}
