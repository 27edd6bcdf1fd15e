package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"rewear/internal/domain"
	"rewear/internal/middleware"
	"rewear/internal/service/swap"
)

type SwapRequestHandler struct {
	swapService swap.Service
}

func NewSwapRequestHandler(swapService swap.Service) *SwapRequestHandler {
	return &SwapRequestHandler{swapService: swapService}
}

func (h *SwapRequestHandler) List(c *fiber.Ctx) error {
	var filter domain.SwapRequestFilter
	var err error
	if filter.FromUserID, err = queryInt64(c, "fromUserId"); err != nil {
		return err
	}
	if filter.ToUserID, err = queryInt64(c, "toUserId"); err != nil {
		return err
	}
	if filter.ItemID, err = queryInt64(c, "itemId"); err != nil {
		return err
	}
	if s := c.Query("status"); s != "" {
		status := domain.SwapStatus(s)
		if !status.IsValid() {
			return domain.NewValidationError("status", "is not a valid swap status")
		}
		filter.Status = &status
	}

	reqs, err := h.swapService.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(reqs)
}

func (h *SwapRequestHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	req, err := h.swapService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(req)
}

// Create opens a swap request. An authenticated caller always acts as the
// requester; anonymous callers name the requester in the body.
func (h *SwapRequestHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateSwapRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if actor := middleware.GetCurrentUserID(c); actor != 0 {
		if input.FromUserID != 0 && input.FromUserID != actor {
			return domain.NewAuthorizationError("cannot create a swap request on behalf of another user")
		}
		input.FromUserID = actor
	}

	req, err := h.swapService.CreateRequest(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *SwapRequestHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateSwapRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.swapService.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *SwapRequestHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.swapService.Delete(c.Context(), id); err != nil {
		return err
	}
	return noContent(c)
}

func (h *SwapRequestHandler) History(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	events, err := h.swapService.History(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(events)
}

type transitionFunc func(ctx context.Context, requestID, actorID int64) (*domain.SwapRequest, error)

func (h *SwapRequestHandler) transition(c *fiber.Ctx, fn transitionFunc) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	actor := middleware.GetCurrentUserID(c)
	if actor == 0 {
		return middleware.Unauthorized("User not authenticated")
	}

	req, err := fn(c.Context(), id, actor)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *SwapRequestHandler) Accept(c *fiber.Ctx) error {
	return h.transition(c, h.swapService.Accept)
}

func (h *SwapRequestHandler) Reject(c *fiber.Ctx) error {
	return h.transition(c, h.swapService.Reject)
}

func (h *SwapRequestHandler) Complete(c *fiber.Ctx) error {
	return h.transition(c, h.swapService.Complete)
}

func (h *SwapRequestHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.swapService.Cancel)
}
