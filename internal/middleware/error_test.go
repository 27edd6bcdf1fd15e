package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewear/internal/domain"
	"rewear/internal/middleware"
	"rewear/internal/service/auth"
	"rewear/internal/service/media"
)

func respond(t *testing.T, err error) (int, middleware.ErrorResponse) {
	t.Helper()

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error { return err })

	resp, testErr := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, testErr)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var out middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"fiber error", middleware.BadRequest("Invalid ID"), 400, "BAD_REQUEST"},
		{"id mismatch", domain.ErrIDMismatch, 400, "BAD_REQUEST"},
		{"validation", domain.NewValidationError("message", "is required"), 400, "VALIDATION_ERROR"},
		{"not found", domain.NewNotFoundError("item", 9), 404, "NOT_FOUND"},
		{"forbidden", domain.NewAuthorizationError("not yours"), 403, "FORBIDDEN"},
		{"invalid state", domain.NewStateError("swap request", "rejected", "accept"), 409, "INVALID_STATE"},
		{"conflict", domain.NewConflictError("username taken"), 409, "CONFLICT"},
		{"credentials", auth.ErrInvalidCredentials, 401, "UNAUTHORIZED"},
		{"storage", media.ErrStorageUnavailable, 503, "UNAVAILABLE"},
		{"unknown", errors.New("boom"), 500, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := respond(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.TraceID)
		})
	}
}

func TestErrorHandler_IDMismatchMessage(t *testing.T) {
	_, body := respond(t, domain.ErrIDMismatch)
	assert.Equal(t, "ID mismatch.", body.Message)
}

func TestErrorHandler_ValidationFields(t *testing.T) {
	v := domain.NewValidationError("message", "is required")
	v.Add("itemId", "is required")

	_, body := respond(t, v)
	require.Len(t, body.Fields, 2)
	assert.Equal(t, "message", body.Fields[0].Field)
}

func TestErrorHandler_InternalHidesDetail(t *testing.T) {
	_, body := respond(t, errors.New("pq: connection refused"))
	assert.Equal(t, "Internal server error", body.Message)
}
