package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ratings/internal/middleware"
	"ratings/internal/models"
	"ratings/internal/services"
)

// CategoryHandler handles HTTP requests for categories. Categories are
// create/list/delete only; there is no update.
type CategoryHandler struct {
	service *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// RegisterRoutes registers the category routes. Listing is public; writes go
// through the auth middleware.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleList)
	categoryRoutes.Post("/", auth, h.HandleCreate)
	categoryRoutes.Delete("/:slug", auth, h.HandleDelete)
}

// HandleList retrieves categories with optional name search.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	categories, total, err := h.service.List(c.Query("search"), page)
	if err != nil {
		return writeError(c, err)
	}
	return paginated(c, categories, total, page)
}

// HandleCreate adds a category (admin only).
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return writeBodyError(c, err)
	}

	if err := h.service.Create(middleware.CurrentUser(c), &category); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleDelete removes a category by slug (admin only).
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(middleware.CurrentUser(c), c.Params("slug")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
