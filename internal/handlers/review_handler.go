package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ratings/internal/middleware"
	"ratings/internal/services"
)

// ReviewHandler handles HTTP requests for reviews, nested under a title.
type ReviewHandler struct {
	service *services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// RegisterRoutes registers the review routes. All of them require an
// authenticated caller; write permissions are decided per object.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	reviewRoutes := router.Group("/titles/:title_id<int>/reviews", auth)
	reviewRoutes.Get("/", h.HandleList)
	reviewRoutes.Get("/:id<int>", h.HandleGet)
	reviewRoutes.Post("/", h.HandleCreate)
	reviewRoutes.Patch("/:id<int>", h.HandleUpdate)
	reviewRoutes.Delete("/:id<int>", h.HandleDelete)
}

// HandleList retrieves a title's reviews.
func (h *ReviewHandler) HandleList(c *fiber.Ctx) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return writeError(c, err)
	}

	page := pageFromQuery(c)
	reviews, total, err := h.service.List(titleID, page)
	if err != nil {
		return writeError(c, err)
	}
	return paginated(c, reviews, total, page)
}

// HandleGet retrieves one review.
func (h *ReviewHandler) HandleGet(c *fiber.Ctx) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return writeError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	review, err := h.service.Get(titleID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(review)
}

// HandleCreate posts the caller's review of a title; one per title per author.
func (h *ReviewHandler) HandleCreate(c *fiber.Ctx) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return writeError(c, err)
	}

	var in services.ReviewInput
	if err := c.BodyParser(&in); err != nil {
		return writeBodyError(c, err)
	}

	review, err := h.service.Create(middleware.CurrentUser(c), titleID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleUpdate edits a review (author, moderator or admin).
func (h *ReviewHandler) HandleUpdate(c *fiber.Ctx) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return writeError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var in services.ReviewUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return writeBodyError(c, err)
	}

	review, err := h.service.Update(middleware.CurrentUser(c), titleID, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(review)
}

// HandleDelete removes a review (author, moderator or admin).
func (h *ReviewHandler) HandleDelete(c *fiber.Ctx) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return writeError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.service.Delete(middleware.CurrentUser(c), titleID, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
