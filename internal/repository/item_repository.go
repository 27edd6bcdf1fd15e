package repository

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"rewear/internal/domain"
)

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	UpdateStatus(ctx context.Context, id int64, status domain.ItemStatus) error
	SetAIRecommended(ctx context.Context, id int64, recommended bool) error
	IncrementViews(ctx context.Context, id int64) (*domain.Item, error)
	IncrementLikes(ctx context.Context, id int64) (*domain.Item, error)
	AppendImage(ctx context.Context, id int64, url string) (*domain.Item, error)
	Delete(ctx context.Context, id int64) error
	ExistsForUser(ctx context.Context, userID int64) (bool, error)
	CountByStatus(ctx context.Context, status domain.ItemStatus) (int64, error)
}

type itemRepository struct {
	db *sqlx.DB
}

func NewItemRepository(db *sqlx.DB) ItemRepository {
	return &itemRepository{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const itemColumns = `item_id, user_id, title, description, category, size, condition, color, brand,
	tags, images, points, status, views, likes, is_ai_recommended, location, rating, created_at, updated_at`

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (user_id, title, description, category, size, condition, color, brand,
			tags, images, points, status, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING item_id, views, likes, is_ai_recommended, created_at, updated_at`

	err := querierFor(ctx, r.db).QueryRowxContext(ctx, query,
		item.UserID, item.Title, item.Description, item.Category, item.Size, item.Condition,
		item.Color, item.Brand, stringArray(item.Tags), stringArray(item.Images), item.Points, item.Status, item.Location,
	).Scan(&item.ID, &item.Views, &item.Likes, &item.IsAIRecommended, &item.CreatedAt, &item.UpdatedAt)
	return mapError(err)
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	var item domain.Item
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1`

	if err := querierFor(ctx, r.db).GetContext(ctx, &item, query, id); err != nil {
		return nil, notFound(err, "item", id)
	}
	return &item, nil
}

func (r *itemRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Item, error) {
	var item domain.Item
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1 FOR UPDATE`

	if err := querierFor(ctx, r.db).GetContext(ctx, &item, query, id); err != nil {
		return nil, notFound(err, "item", id)
	}
	return &item, nil
}

// List returns items matching every set filter field in insertion order.
// Search is a case-insensitive substring match over title, description and tags.
func (r *itemRepository) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	qb := psql.Select(itemColumns).From("items").OrderBy("item_id ASC")

	if filter.UserID != nil {
		qb = qb.Where(sq.Eq{"user_id": *filter.UserID})
	}
	if filter.Status != nil {
		qb = qb.Where(sq.Eq{"status": *filter.Status})
	}
	if c := strings.TrimSpace(filter.Category); c != "" {
		qb = qb.Where("LOWER(category) = LOWER(?)", c)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + escapeLike(s) + "%"
		qb = qb.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
			sq.Expr("EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE ?)", pattern),
		})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}

	items := []domain.Item{}
	err = querierFor(ctx, r.db).SelectContext(ctx, &items, query, args...)
	return items, err
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	query := `
		UPDATE items
		SET title = :title, description = :description, category = :category, size = :size,
			condition = :condition, color = :color, brand = :brand, tags = :tags, images = :images,
			status = :status, location = :location, updated_at = NOW()
		WHERE item_id = :item_id`

	item.Tags = stringArray(item.Tags)
	item.Images = stringArray(item.Images)
	res, err := sqlx.NamedExecContext(ctx, querierFor(ctx, r.db), query, item)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res, "item", item.ID)
}

func (r *itemRepository) UpdateStatus(ctx context.Context, id int64, status domain.ItemStatus) error {
	query := `UPDATE items SET status = $2, updated_at = NOW() WHERE item_id = $1`
	res, err := querierFor(ctx, r.db).ExecContext(ctx, query, id, status)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res, "item", id)
}

func (r *itemRepository) SetAIRecommended(ctx context.Context, id int64, recommended bool) error {
	query := `UPDATE items SET is_ai_recommended = $2, updated_at = NOW() WHERE item_id = $1`
	res, err := querierFor(ctx, r.db).ExecContext(ctx, query, id, recommended)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res, "item", id)
}

func (r *itemRepository) IncrementViews(ctx context.Context, id int64) (*domain.Item, error) {
	return r.updateReturning(ctx, id, `UPDATE items SET views = views + 1 WHERE item_id = $1`)
}

func (r *itemRepository) IncrementLikes(ctx context.Context, id int64) (*domain.Item, error) {
	return r.updateReturning(ctx, id, `UPDATE items SET likes = likes + 1 WHERE item_id = $1`)
}

func (r *itemRepository) AppendImage(ctx context.Context, id int64, url string) (*domain.Item, error) {
	return r.updateReturning(ctx, id,
		`UPDATE items SET images = array_append(images, $2), updated_at = NOW() WHERE item_id = $1`, url)
}

func (r *itemRepository) updateReturning(ctx context.Context, id int64, stmt string, args ...interface{}) (*domain.Item, error) {
	var item domain.Item
	query := stmt + ` RETURNING ` + itemColumns
	if err := querierFor(ctx, r.db).GetContext(ctx, &item, query, append([]interface{}{id}, args...)...); err != nil {
		return nil, notFound(err, "item", id)
	}
	return &item, nil
}

func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	res, err := querierFor(ctx, r.db).ExecContext(ctx, `DELETE FROM items WHERE item_id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res, "item", id)
}

func (r *itemRepository) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := querierFor(ctx, r.db).GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM items WHERE user_id = $1)`, userID)
	return exists, err
}

func (r *itemRepository) CountByStatus(ctx context.Context, status domain.ItemStatus) (int64, error) {
	var count int64
	err := querierFor(ctx, r.db).GetContext(ctx, &count,
		`SELECT COUNT(*) FROM items WHERE status = $1`, status)
	return count, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// stringArray keeps nil slices out of NOT NULL array columns.
func stringArray(s []string) pq.StringArray {
	if s == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(s)
}
