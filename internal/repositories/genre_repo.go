package repositories

import "ratings/internal/models"

// GenreRepository defines the interface for genre data access.
type GenreRepository interface {
	Create(genre *models.Genre) error
	GetBySlug(slug string) (*models.Genre, error)
	GetBySlugs(slugs []string) ([]models.Genre, error)
	List(search string, page Page) ([]models.Genre, int64, error)
	Delete(slug string) error
}
