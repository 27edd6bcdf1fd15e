package handler

import (
	"github.com/gofiber/fiber/v2"

	"rewear/internal/domain"
	"rewear/internal/middleware"
	"rewear/internal/service/item"
	"rewear/internal/service/media"
	"rewear/internal/service/query"
	"rewear/internal/service/recommendation"
)

type ItemHandler struct {
	itemService  item.Service
	queryService query.Service
	recService   recommendation.Service
	mediaService media.Service
}

func NewItemHandler(itemService item.Service, queryService query.Service, recService recommendation.Service, mediaService media.Service) *ItemHandler {
	return &ItemHandler{
		itemService:  itemService,
		queryService: queryService,
		recService:   recService,
		mediaService: mediaService,
	}
}

// List filters by userId, status, category and q; every parameter is optional.
func (h *ItemHandler) List(c *fiber.Ctx) error {
	userID, err := queryInt64(c, "userId")
	if err != nil {
		return err
	}

	filter := domain.ItemFilter{
		UserID:   userID,
		Category: c.Query("category"),
		Search:   c.Query("q"),
	}
	if s := c.Query("status"); s != "" {
		status := domain.ItemStatus(s)
		filter.Status = &status
	}

	items, err := h.itemService.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

func (h *ItemHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	it, err := h.itemService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(it)
}

func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateItemInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	it, err := h.itemService.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(it)
}

func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateItemInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	it, err := h.itemService.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(it)
}

func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.itemService.Delete(c.Context(), id); err != nil {
		return err
	}
	return noContent(c)
}

func (h *ItemHandler) View(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	it, err := h.itemService.RecordView(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(it)
}

func (h *ItemHandler) Like(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	it, err := h.itemService.Like(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(it)
}

func (h *ItemHandler) Recommendations(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	recs, err := h.queryService.RecommendationsForItem(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(recs)
}

func (h *ItemHandler) GenerateRecommendations(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	recs, err := h.recService.GenerateForItem(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(recs)
}

func (h *ItemHandler) UploadImage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	f, err := file.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	it, err := h.mediaService.UploadItemImage(c.Context(), id, middleware.GetCurrentUserID(c), media.Upload{
		FileName:    file.Filename,
		Size:        file.Size,
		ContentType: file.Header.Get("Content-Type"),
		Body:        f,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(it)
}
