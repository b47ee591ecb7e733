package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"ratings/internal/models"
	"ratings/internal/services"
)

// localsUserKey is where AuthRequired stores the loaded requester.
const localsUserKey = "currentUser"

// AuthRequired is a Fiber middleware that checks for a valid bearer token and
// loads the requester's current user record into the context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		user, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(localsUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the requester loaded by AuthRequired, or nil on public
// routes.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUserKey).(*models.User)
	return user
}
