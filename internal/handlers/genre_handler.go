package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ratings/internal/middleware"
	"ratings/internal/models"
	"ratings/internal/services"
)

// GenreHandler handles HTTP requests for genres; same shape as categories.
type GenreHandler struct {
	service *services.GenreService
}

// NewGenreHandler creates a new GenreHandler.
func NewGenreHandler(service *services.GenreService) *GenreHandler {
	return &GenreHandler{service: service}
}

// RegisterRoutes registers the genre routes.
func (h *GenreHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	genreRoutes := router.Group("/genres")
	genreRoutes.Get("/", h.HandleList)
	genreRoutes.Post("/", auth, h.HandleCreate)
	genreRoutes.Delete("/:slug", auth, h.HandleDelete)
}

// HandleList retrieves genres with optional name search.
func (h *GenreHandler) HandleList(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	genres, total, err := h.service.List(c.Query("search"), page)
	if err != nil {
		return writeError(c, err)
	}
	return paginated(c, genres, total, page)
}

// HandleCreate adds a genre (admin only).
func (h *GenreHandler) HandleCreate(c *fiber.Ctx) error {
	var genre models.Genre
	if err := c.BodyParser(&genre); err != nil {
		return writeBodyError(c, err)
	}

	if err := h.service.Create(middleware.CurrentUser(c), &genre); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(genre)
}

// HandleDelete removes a genre by slug (admin only).
func (h *GenreHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(middleware.CurrentUser(c), c.Params("slug")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
