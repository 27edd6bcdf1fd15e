package handler

import (
	"github.com/gofiber/fiber/v2"

	"rewear/internal/domain"
	"rewear/internal/middleware"
	"rewear/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := queryInt64(c, "userId")
	if err != nil {
		return err
	}

	filter := domain.NotificationFilter{
		UserID:     userID,
		UnreadOnly: c.QueryBool("unreadOnly"),
	}
	if t := c.Query("type"); t != "" {
		typ := domain.NotificationType(t)
		if !typ.IsValid() {
			return domain.NewValidationError("type", "is not a valid notification type")
		}
		filter.Type = &typ
	}

	notifs, err := h.notifService.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(notifs)
}

func (h *NotificationHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	n, err := h.notifService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(n)
}

func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	n, err := h.notifService.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

func (h *NotificationHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	n, err := h.notifService.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(n)
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.notifService.Delete(c.Context(), id); err != nil {
		return err
	}
	return noContent(c)
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	n, err := h.notifService.MarkAsRead(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(n)
}
