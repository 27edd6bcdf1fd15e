package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewear/internal/config"
	"rewear/internal/domain"
	"rewear/internal/mocks"
	"rewear/internal/service/auth"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTAccessExpiry: time.Hour}
}

func userWithPassword(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &domain.User{ID: 12, Username: "ana", Email: "ana@example.com", PasswordHash: &hash}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, testConfig())
		userRepo.On("GetByEmail", ctx, "ana@example.com").Return(userWithPassword(t, "s3cret-pass"), nil).Once()

		user, tokens, err := svc.Login(ctx, domain.LoginInput{Email: "ana@example.com", Password: "s3cret-pass"})

		require.NoError(t, err)
		assert.Equal(t, int64(12), user.ID)
		assert.Equal(t, int64(3600), tokens.ExpiresIn)

		claims, err := svc.ValidateAccessToken(tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(12), claims.UserID)
		assert.Equal(t, "12", claims.Subject)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, testConfig())
		userRepo.On("GetByEmail", ctx, "ana@example.com").Return(userWithPassword(t, "s3cret-pass"), nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "ana@example.com", Password: "nope-nope"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, testConfig())
		userRepo.On("GetByEmail", ctx, "who@example.com").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "who@example.com", Password: "whatever1"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("user without password", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, testConfig())
		userRepo.On("GetByEmail", ctx, "ana@example.com").Return(&domain.User{ID: 1}, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "ana@example.com", Password: "whatever1"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestValidateAccessToken(t *testing.T) {
	svc := auth.NewService(new(mocks.UserRepository), testConfig())

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{UserID: 1})
		signed, err := token.SignedString([]byte("other-secret"))
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(signed)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
			UserID: 1,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(signed)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
