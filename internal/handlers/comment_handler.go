package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ratings/internal/middleware"
	"ratings/internal/services"
)

// CommentHandler handles HTTP requests for comments, nested under a review.
type CommentHandler struct {
	service *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service *services.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// RegisterRoutes registers the comment routes; authenticated callers only.
func (h *CommentHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	commentRoutes := router.Group("/titles/:title_id<int>/reviews/:review_id<int>/comments", auth)
	commentRoutes.Get("/", h.HandleList)
	commentRoutes.Get("/:id<int>", h.HandleGet)
	commentRoutes.Post("/", h.HandleCreate)
	commentRoutes.Patch("/:id<int>", h.HandleUpdate)
	commentRoutes.Delete("/:id<int>", h.HandleDelete)
}

// scope parses the title/review path pair shared by every comment route.
func (h *CommentHandler) scope(c *fiber.Ctx) (titleID, reviewID uint, err error) {
	titleID, err = pathID(c, "title_id")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = pathID(c, "review_id")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

// HandleList retrieves a review's comments.
func (h *CommentHandler) HandleList(c *fiber.Ctx) error {
	titleID, reviewID, err := h.scope(c)
	if err != nil {
		return writeError(c, err)
	}

	page := pageFromQuery(c)
	comments, total, err := h.service.List(titleID, reviewID, page)
	if err != nil {
		return writeError(c, err)
	}
	return paginated(c, comments, total, page)
}

// HandleGet retrieves one comment.
func (h *CommentHandler) HandleGet(c *fiber.Ctx) error {
	titleID, reviewID, err := h.scope(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	comment, err := h.service.Get(titleID, reviewID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(comment)
}

// HandleCreate posts the caller's comment on a review.
func (h *CommentHandler) HandleCreate(c *fiber.Ctx) error {
	titleID, reviewID, err := h.scope(c)
	if err != nil {
		return writeError(c, err)
	}

	var in services.CommentInput
	if err := c.BodyParser(&in); err != nil {
		return writeBodyError(c, err)
	}

	comment, err := h.service.Create(middleware.CurrentUser(c), titleID, reviewID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// HandleUpdate edits a comment (author, moderator or admin).
func (h *CommentHandler) HandleUpdate(c *fiber.Ctx) error {
	titleID, reviewID, err := h.scope(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var in services.CommentUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return writeBodyError(c, err)
	}

	comment, err := h.service.Update(middleware.CurrentUser(c), titleID, reviewID, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(comment)
}

// HandleDelete removes a comment (author, moderator or admin).
func (h *CommentHandler) HandleDelete(c *fiber.Ctx) error {
	titleID, reviewID, err := h.scope(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.service.Delete(middleware.CurrentUser(c), titleID, reviewID, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
