package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ratings/internal/middleware"
	"ratings/internal/repositories"
	"ratings/internal/services"
)

// UserHandler handles the admin user collection and the self-profile endpoint.
// The collection supports get/post/patch/delete only; there is no full replace.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes registers the user routes. The /me routes must come before
// the :username routes so "me" never resolves as a username.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	userRoutes := router.Group("/users", auth)
	userRoutes.Get("/me", h.HandleGetSelf)
	userRoutes.Patch("/me", h.HandleUpdateSelf)
	userRoutes.Get("/", h.HandleList)
	userRoutes.Post("/", h.HandleCreate)
	userRoutes.Get("/:username", h.HandleGet)
	userRoutes.Patch("/:username", h.HandleUpdate)
	userRoutes.Delete("/:username", h.HandleDelete)
}

// HandleList retrieves users with username search and role filter (admin only).
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	filter := repositories.UserFilter{
		Username: c.Query("search"),
		Role:     c.Query("role"),
	}
	page := pageFromQuery(c)
	users, total, err := h.service.List(middleware.CurrentUser(c), filter, page)
	if err != nil {
		return writeError(c, err)
	}
	return paginated(c, users, total, page)
}

// HandleCreate adds a user directly (admin only).
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.UserInput
	if err := c.BodyParser(&in); err != nil {
		return writeBodyError(c, err)
	}

	user, err := h.service.Create(middleware.CurrentUser(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleGet retrieves a user by username (admin only).
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	user, err := h.service.Get(middleware.CurrentUser(c), c.Params("username"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdate applies a partial update, role included (admin only).
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	var in services.UserUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return writeBodyError(c, err)
	}

	user, err := h.service.Update(middleware.CurrentUser(c), c.Params("username"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}

// HandleDelete removes a user (admin only).
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(middleware.CurrentUser(c), c.Params("username")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetSelf returns the caller's own profile.
func (h *UserHandler) HandleGetSelf(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// HandleUpdateSelf updates the caller's own profile. A role field in the body
// is ignored; only the admin path may change roles.
func (h *UserHandler) HandleUpdateSelf(c *fiber.Ctx) error {
	var in services.UserUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return writeBodyError(c, err)
	}

	user, err := h.service.UpdateSelf(middleware.CurrentUser(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}
