package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"ratings/internal/middleware"
	"ratings/internal/repositories"
	"ratings/internal/services"
)

// TitleHandler handles HTTP requests for titles.
type TitleHandler struct {
	service *services.TitleService
}

// NewTitleHandler creates a new TitleHandler.
func NewTitleHandler(service *services.TitleService) *TitleHandler {
	return &TitleHandler{service: service}
}

// RegisterRoutes registers the title routes. Reads are public; writes go
// through the auth middleware.
func (h *TitleHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	titleRoutes := router.Group("/titles")
	titleRoutes.Get("/", h.HandleList)
	titleRoutes.Get("/:id<int>", h.HandleGet)
	titleRoutes.Post("/", auth, h.HandleCreate)
	titleRoutes.Patch("/:id<int>", auth, h.HandleUpdate)
	titleRoutes.Delete("/:id<int>", auth, h.HandleDelete)
}

// HandleList retrieves titles filtered by category, genre, name and year.
func (h *TitleHandler) HandleList(c *fiber.Ctx) error {
	filter := repositories.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "year filter must be an integer",
			})
		}
		filter.Year = &year
	}

	page := pageFromQuery(c)
	titles, total, err := h.service.List(filter, page)
	if err != nil {
		return writeError(c, err)
	}
	return paginated(c, titles, total, page)
}

// HandleGet retrieves a single title with its rating.
func (h *TitleHandler) HandleGet(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	title, err := h.service.Get(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(title)
}

// HandleCreate adds a title (admin only).
func (h *TitleHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.TitleInput
	if err := c.BodyParser(&in); err != nil {
		return writeBodyError(c, err)
	}

	title, err := h.service.Create(middleware.CurrentUser(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(title)
}

// HandleUpdate applies a partial update to a title (admin only).
func (h *TitleHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var in services.TitleUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return writeBodyError(c, err)
	}

	title, err := h.service.Update(middleware.CurrentUser(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(title)
}

// HandleDelete removes a title and its reviews (admin only).
func (h *TitleHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.Delete(middleware.CurrentUser(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
