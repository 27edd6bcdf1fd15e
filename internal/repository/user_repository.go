package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"rewear/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateProgress(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `user_id, username, email, password_hash, points, level, swap_count, eco_score,
	bio, avatar, location, preferences, joined_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, bio, avatar, location, preferences)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING user_id, points, level, swap_count, eco_score, joined_at, updated_at`

	err := querierFor(ctx, r.db).QueryRowxContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Bio, user.Avatar, user.Location, user.Preferences,
	).Scan(&user.ID, &user.Points, &user.Level, &user.SwapCount, &user.EcoScore, &user.JoinedAt, &user.UpdatedAt)
	return mapError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	if err := querierFor(ctx, r.db).GetContext(ctx, &user, query, id); err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

func (r *userRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 FOR UPDATE`

	if err := querierFor(ctx, r.db).GetContext(ctx, &user, query, id); err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

// GetByEmail returns nil, nil when no user has the address.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var users []domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	if err := querierFor(ctx, r.db).SelectContext(ctx, &users, query, email); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	query := `SELECT ` + userColumns + ` FROM users ORDER BY user_id ASC`

	err := querierFor(ctx, r.db).SelectContext(ctx, &users, query)
	return users, err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET username = :username, email = :email, password_hash = :password_hash,
			bio = :bio, avatar = :avatar, location = :location, preferences = :preferences,
			updated_at = NOW()
		WHERE user_id = :user_id`

	res, err := sqlx.NamedExecContext(ctx, querierFor(ctx, r.db), query, user)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res, "user", user.ID)
}

func (r *userRepository) UpdateProgress(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET points = $2, level = $3, swap_count = $4, eco_score = $5, updated_at = NOW()
		WHERE user_id = $1`

	res, err := querierFor(ctx, r.db).ExecContext(ctx, query,
		user.ID, user.Points, user.Level, user.SwapCount, user.EcoScore)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res, "user", user.ID)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res, err := querierFor(ctx, r.db).ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res, "user", id)
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) AND user_id <> $2)`
	err := querierFor(ctx, r.db).GetContext(ctx, &exists, query, email, excludeID)
	return exists, err
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(username) = LOWER($1) AND user_id <> $2)`
	err := querierFor(ctx, r.db).GetContext(ctx, &exists, query, username, excludeID)
	return exists, err
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := querierFor(ctx, r.db).GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	return count, err
}
