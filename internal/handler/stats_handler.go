package handler

import (
	"github.com/gofiber/fiber/v2"

	"rewear/internal/service/stats"
)

type StatsHandler struct {
	statsService stats.Service
}

func NewStatsHandler(statsService stats.Service) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) Get(c *fiber.Ctx) error {
	s, err := h.statsService.GetStats(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(s)
}
