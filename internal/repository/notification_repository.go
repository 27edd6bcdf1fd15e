package repository

import (
	"context"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"rewear/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	List(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error)
	SetRead(ctx context.Context, id int64, read bool) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, userID int64) (int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

const notificationColumns = `notification_id, user_id, type, message, is_read, action_url, payload, created_at`

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	if len(notif.Payload) == 0 {
		notif.Payload = json.RawMessage(`{}`)
	}

	query := `
		INSERT INTO notifications (user_id, type, message, is_read, action_url, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING notification_id, created_at`

	err := querierFor(ctx, r.db).QueryRowxContext(ctx, query,
		notif.UserID, notif.Type, notif.Message, notif.Read, notif.ActionURL, []byte(notif.Payload),
	).Scan(&notif.ID, &notif.Timestamp)
	return mapError(err)
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE notification_id = $1`

	if err := querierFor(ctx, r.db).GetContext(ctx, &notif, query, id); err != nil {
		return nil, notFound(err, "notification", id)
	}
	return &notif, nil
}

func (r *notificationRepository) List(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error) {
	qb := psql.Select(notificationColumns).From("notifications").OrderBy("notification_id ASC")

	if filter.UserID != nil {
		qb = qb.Where(sq.Eq{"user_id": *filter.UserID})
	}
	if filter.UnreadOnly {
		qb = qb.Where(sq.Eq{"is_read": false})
	}
	if filter.Type != nil {
		qb = qb.Where(sq.Eq{"type": *filter.Type})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}

	notifs := []domain.Notification{}
	err = querierFor(ctx, r.db).SelectContext(ctx, &notifs, query, args...)
	return notifs, err
}

func (r *notificationRepository) SetRead(ctx context.Context, id int64, read bool) (*domain.Notification, error) {
	var notif domain.Notification
	query := `UPDATE notifications SET is_read = $2 WHERE notification_id = $1 RETURNING ` + notificationColumns

	if err := querierFor(ctx, r.db).GetContext(ctx, &notif, query, id, read); err != nil {
		return nil, notFound(err, "notification", id)
	}
	return &notif, nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`
	res, err := querierFor(ctx, r.db).ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`
	err := querierFor(ctx, r.db).GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *notificationRepository) Delete(ctx context.Context, id int64) error {
	res, err := querierFor(ctx, r.db).ExecContext(ctx, `DELETE FROM notifications WHERE notification_id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res, "notification", id)
}
