package handler

import (
	"github.com/gofiber/fiber/v2"

	"rewear/internal/domain"
	"rewear/internal/middleware"
	"rewear/internal/service/notification"
	"rewear/internal/service/query"
	"rewear/internal/service/user"
)

type UserHandler struct {
	userService  user.Service
	queryService query.Service
	notifService notification.Service
}

func NewUserHandler(userService user.Service, queryService query.Service, notifService notification.Service) *UserHandler {
	return &UserHandler{
		userService:  userService,
		queryService: queryService,
		notifService: notifService,
	}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	u, err := h.userService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(u)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	u, err := h.userService.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	u, err := h.userService.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(u)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Context(), id); err != nil {
		return err
	}
	return noContent(c)
}

func (h *UserHandler) Items(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	items, err := h.queryService.ItemsByUser(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

// Requests lists swap requests sent or received by the user.
func (h *UserHandler) Requests(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	direction := domain.SwapDirection(c.Query("direction", string(domain.DirectionReceived)))
	var status *domain.SwapStatus
	if s := c.Query("status"); s != "" {
		st := domain.SwapStatus(s)
		status = &st
	}

	reqs, err := h.queryService.RequestsByUser(c.Context(), id, direction, status)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(reqs)
}

func (h *UserHandler) UnreadCount(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	count, err := h.notifService.GetUnreadCount(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"count": count})
}

func (h *UserHandler) MarkAllRead(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	updated, err := h.notifService.MarkAllAsRead(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"updated": updated})
}
