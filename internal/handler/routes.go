package handler

import (
	"github.com/gofiber/fiber/v2"

	"rewear/internal/middleware"
	"rewear/internal/service/auth"
)

// RegisterRoutes mounts the REST API under /api.
func RegisterRoutes(app *fiber.App, h *Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	optional := middleware.OptionalAuth(authService)
	required := middleware.AuthRequired(authService)

	api.Post("/auth/login", h.Auth.Login)
	api.Get("/auth/me", required, h.Auth.Me)

	api.Get("/stats", h.Stats.Get)

	users := api.Group("/User")
	users.Get("/", h.User.List)
	users.Post("/", h.User.Create)
	users.Get("/:id", h.User.Get)
	users.Put("/:id", h.User.Update)
	users.Delete("/:id", h.User.Delete)
	users.Get("/:id/items", h.User.Items)
	users.Get("/:id/requests", h.User.Requests)
	users.Get("/:id/notifications/unread-count", h.User.UnreadCount)
	users.Post("/:id/notifications/read-all", h.User.MarkAllRead)

	items := api.Group("/Item")
	items.Get("/", h.Item.List)
	items.Post("/", h.Item.Create)
	items.Get("/:id", h.Item.Get)
	items.Put("/:id", h.Item.Update)
	items.Delete("/:id", h.Item.Delete)
	items.Post("/:id/view", h.Item.View)
	items.Post("/:id/like", h.Item.Like)
	items.Get("/:id/recommendations", h.Item.Recommendations)
	items.Post("/:id/recommendations/generate", h.Item.GenerateRecommendations)
	items.Post("/:id/images", required, h.Item.UploadImage)

	swaps := api.Group("/SwapRequest")
	swaps.Get("/", h.SwapRequest.List)
	swaps.Post("/", optional, h.SwapRequest.Create)
	swaps.Get("/:id", h.SwapRequest.Get)
	swaps.Put("/:id", h.SwapRequest.Update)
	swaps.Delete("/:id", h.SwapRequest.Delete)
	swaps.Get("/:id/history", h.SwapRequest.History)
	swaps.Post("/:id/accept", required, h.SwapRequest.Accept)
	swaps.Post("/:id/reject", required, h.SwapRequest.Reject)
	swaps.Post("/:id/complete", required, h.SwapRequest.Complete)
	swaps.Post("/:id/cancel", required, h.SwapRequest.Cancel)

	notifications := api.Group("/Notification")
	notifications.Get("/", h.Notification.List)
	notifications.Post("/", h.Notification.Create)
	notifications.Get("/:id", h.Notification.Get)
	notifications.Put("/:id", h.Notification.Update)
	notifications.Delete("/:id", h.Notification.Delete)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)

	badges := api.Group("/Badge")
	badges.Get("/", h.Badge.List)
	badges.Post("/", h.Badge.Create)
	badges.Get("/:id", h.Badge.Get)
	badges.Put("/:id", h.Badge.Update)
	badges.Delete("/:id", h.Badge.Delete)

	recs := api.Group("/Airecommendation")
	recs.Get("/", h.Recommendation.List)
	recs.Post("/", h.Recommendation.Create)
	recs.Get("/:id", h.Recommendation.Get)
	recs.Put("/:id", h.Recommendation.Update)
	recs.Delete("/:id", h.Recommendation.Delete)
}
