package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rewear/internal/domain"
	"rewear/internal/service/auth"
	"rewear/internal/service/media"
)

type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
	TraceID string              `json:"trace_id,omitempty"`
}

// ErrorHandler renders every error returned by a handler. Domain errors map
// to fixed statuses; anything unclassified becomes a logged 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, resp := classify(err)
	resp.TraceID = traceID(c)

	if code >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			"trace_id", resp.TraceID,
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}

	return c.Status(code).JSON(resp)
}

func classify(err error) (int, ErrorResponse) {
	var (
		fiberErr *fiber.Error
		valErr   *domain.ValidationError
		conflict *domain.ConflictError
	)

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code, ErrorResponse{Code: codeForStatus(fiberErr.Code), Message: fiberErr.Message}
	case errors.As(err, &conflict) && conflict.IDMismatch:
		return fiber.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Message: conflict.Reason}
	case errors.As(err, &valErr):
		return fiber.StatusBadRequest, ErrorResponse{Code: "VALIDATION_ERROR", Message: valErr.Error(), Fields: valErr.Errors}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusConflict, ErrorResponse{Code: "INVALID_STATE", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return fiber.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()}
	case errors.Is(err, media.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable, ErrorResponse{Code: "UNAVAILABLE", Message: err.Error()}
	}

	return fiber.StatusInternalServerError, ErrorResponse{Code: "INTERNAL_ERROR", Message: "Internal server error"}
}

func codeForStatus(code int) string {
	switch code {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	}
	if code >= fiber.StatusInternalServerError {
		return "INTERNAL_ERROR"
	}
	return "ERROR"
}

func traceID(c *fiber.Ctx) string {
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		return rid
	}
	return uuid.New().String()[:8]
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}
