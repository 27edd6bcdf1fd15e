package user

import (
	"context"
	"errors"

	"rewear/internal/domain"
	"rewear/internal/repository"
	"rewear/internal/service/auth"
	"rewear/internal/service/stats"
)

type Service interface {
	Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int64, input domain.UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	txm         repository.TxManager
	userRepo    repository.UserRepository
	itemRepo    repository.ItemRepository
	requestRepo repository.SwapRequestRepository
	cache       stats.Invalidator
}

func NewService(
	txm repository.TxManager,
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	requestRepo repository.SwapRequestRepository,
	cache stats.Invalidator,
) Service {
	return &service{
		txm:         txm,
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		requestRepo: requestRepo,
		cache:       cache,
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	v := &domain.ValidationError{}
	taken, err := s.userRepo.ExistsByUsername(ctx, input.Username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		v.Add("username", "is already taken")
	}
	taken, err = s.userRepo.ExistsByEmail(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		v.Add("email", "is already registered")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	user := &domain.User{
		Username: input.Username,
		Email:    input.Email,
		Bio:      input.Bio,
		Avatar:   input.Avatar,
		Location: input.Location,
	}
	if input.Preferences != nil {
		user.Preferences = *input.Preferences
	}
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			return nil, domain.NewValidationError("user", conflict.Reason)
		}
		return nil, err
	}

	s.invalidate(ctx)
	return user, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, input domain.UpdateUserInput) (*domain.User, error) {
	if input.ID == nil || *input.ID != id {
		return nil, domain.ErrIDMismatch
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prevUsername, prevEmail := user.Username, user.Email
	if err := input.Apply(user); err != nil {
		return nil, err
	}

	if user.Username != prevUsername {
		taken, err := s.userRepo.ExistsByUsername(ctx, user.Username, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.NewConflictError("username is already taken")
		}
	}
	if user.Email != prevEmail {
		taken, err := s.userRepo.ExistsByEmail(ctx, user.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.NewConflictError("email is already registered")
		}
	}

	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete refuses to remove users that still own items or take part in swaps.
func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.GetByIDForUpdate(ctx, id); err != nil {
			return err
		}

		hasItems, err := s.itemRepo.ExistsForUser(ctx, id)
		if err != nil {
			return err
		}
		if hasItems {
			return domain.NewConflictError("user still owns items")
		}

		hasRequests, err := s.requestRepo.ExistsForUser(ctx, id)
		if err != nil {
			return err
		}
		if hasRequests {
			return domain.NewConflictError("user still takes part in swap requests")
		}

		return s.userRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
