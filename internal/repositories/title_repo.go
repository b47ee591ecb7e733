package repositories

import "ratings/internal/models"

// TitleFilter narrows a title listing. Zero values mean "no filter".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

// TitleRepository defines the interface for title data access.
type TitleRepository interface {
	Create(title *models.Title) error
	GetByID(id uint) (*models.Title, error)
	List(filter TitleFilter, page Page) ([]models.Title, int64, error)
	Update(title *models.Title) error
	Delete(id uint) error
}
