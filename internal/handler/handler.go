package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"rewear/internal/middleware"
	"rewear/internal/service"
)

type Handlers struct {
	Auth           *AuthHandler
	User           *UserHandler
	Item           *ItemHandler
	SwapRequest    *SwapRequestHandler
	Notification   *NotificationHandler
	Badge          *BadgeHandler
	Recommendation *RecommendationHandler
	Stats          *StatsHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:           NewAuthHandler(services.Auth),
		User:           NewUserHandler(services.User, services.Query, services.Notification),
		Item:           NewItemHandler(services.Item, services.Query, services.Recommendation, services.Media),
		SwapRequest:    NewSwapRequestHandler(services.Swap),
		Notification:   NewNotificationHandler(services.Notification),
		Badge:          NewBadgeHandler(services.Badge),
		Recommendation: NewRecommendationHandler(services.Recommendation),
		Stats:          NewStatsHandler(services.Stats),
	}
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.BadRequest("Invalid ID")
	}
	return id, nil
}

// queryInt64 returns nil when the parameter is absent.
func queryInt64(c *fiber.Ctx, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, middleware.BadRequest("Invalid " + name)
	}
	return &v, nil
}

func noContent(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNoContent).SendString("")
}
