package repositories

import "ratings/internal/models"

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(titleID, id uint) (*models.Review, error)
	ListByTitle(titleID uint, page Page) ([]models.Review, int64, error)
	Update(review *models.Review) error
	Delete(titleID, id uint) error
	ExistsForAuthor(titleID uint, authorID string) (bool, error)
}
