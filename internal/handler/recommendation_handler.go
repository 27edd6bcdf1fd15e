package handler

import (
	"github.com/gofiber/fiber/v2"

	"rewear/internal/domain"
	"rewear/internal/middleware"
	"rewear/internal/service/recommendation"
)

type RecommendationHandler struct {
	recService recommendation.Service
}

func NewRecommendationHandler(recService recommendation.Service) *RecommendationHandler {
	return &RecommendationHandler{recService: recService}
}

func (h *RecommendationHandler) List(c *fiber.Ctx) error {
	recs, err := h.recService.List(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(recs)
}

func (h *RecommendationHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	rec, err := h.recService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(rec)
}

func (h *RecommendationHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateRecommendationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	rec, err := h.recService.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (h *RecommendationHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateRecommendationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	rec, err := h.recService.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(rec)
}

func (h *RecommendationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.recService.Delete(c.Context(), id); err != nil {
		return err
	}
	return noContent(c)
}
