package handler

import (
	"github.com/gofiber/fiber/v2"

	"rewear/internal/domain"
	"rewear/internal/middleware"
	"rewear/internal/service/badge"
)

type BadgeHandler struct {
	badgeService badge.Service
}

func NewBadgeHandler(badgeService badge.Service) *BadgeHandler {
	return &BadgeHandler{badgeService: badgeService}
}

func (h *BadgeHandler) List(c *fiber.Ctx) error {
	userID, err := queryInt64(c, "userId")
	if err != nil {
		return err
	}

	badges, err := h.badgeService.List(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(badges)
}

func (h *BadgeHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	b, err := h.badgeService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(b)
}

func (h *BadgeHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateBadgeInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	b, err := h.badgeService.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

// Update exists for route symmetry; earned badges are immutable.
func (h *BadgeHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateBadgeInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	b, err := h.badgeService.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(b)
}

func (h *BadgeHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.badgeService.Delete(c.Context(), id); err != nil {
		return err
	}
	return noContent(c)
}
