package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ratings/internal/services"
)

// AuthHandler handles signup and token-exchange requests.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignUp)
	authRoutes.Post("/token", h.HandleToken)
}

// HandleSignUp registers a user (or re-issues a code for an existing one) and
// sends the confirmation code out of band.
func (h *AuthHandler) HandleSignUp(c *fiber.Ctx) error {
	var in services.SignupInput
	if err := c.BodyParser(&in); err != nil {
		return writeBodyError(c, err)
	}

	if err := h.authService.SignUp(in); err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"username": in.Username,
		"email":    in.Email,
	})
}

// TokenRequest is the token-exchange request body.
type TokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

// HandleToken exchanges a confirmation code for a JWT access token.
func (h *AuthHandler) HandleToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return writeBodyError(c, err)
	}
	if req.Username == "" || req.ConfirmationCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "username and confirmation_code are required",
		})
	}

	token, err := h.authService.IssueToken(req.Username, req.ConfirmationCode)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
	})
}
