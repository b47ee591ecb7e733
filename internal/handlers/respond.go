package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"ratings/internal/apperrors"
	"ratings/internal/repositories"
)

// writeError maps a service error to an HTTP response. Field-level validation
// failures carry their message map; everything unexpected is a 500.
func writeError(c *fiber.Ctx, err error) error {
	var fields apperrors.FieldErrors
	switch {
	case errors.As(err, &fields):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  fields,
		})
	case errors.Is(err, apperrors.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, apperrors.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, apperrors.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, apperrors.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	log.Printf("Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}

// writeBodyError reports an unparseable request body.
func writeBodyError(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// pageFromQuery reads page/page_size query parameters.
func pageFromQuery(c *fiber.Ctx) repositories.Page {
	return repositories.Page{
		Number: c.QueryInt("page", 1),
		Size:   c.QueryInt("page_size", 10),
	}.Normalize()
}

// paginated renders a counted list response.
func paginated(c *fiber.Ctx, results interface{}, total int64, page repositories.Page) error {
	return c.JSON(fiber.Map{
		"count":     total,
		"page":      page.Number,
		"page_size": page.Size,
		"results":   results,
	})
}

// pathID parses a positive numeric path parameter; anything else reads as an
// unknown resource.
func pathID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, apperrors.NotFoundf("invalid %s", name)
	}
	return uint(id), nil
}
