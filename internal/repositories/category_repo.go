package repositories

import "ratings/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	Create(category *models.Category) error
	GetBySlug(slug string) (*models.Category, error)
	List(search string, page Page) ([]models.Category, int64, error)
	Delete(slug string) error
}
