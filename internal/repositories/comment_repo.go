package repositories

import "ratings/internal/models"

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(reviewID, id uint) (*models.Comment, error)
	ListByReview(reviewID uint, page Page) ([]models.Comment, int64, error)
	Update(comment *models.Comment) error
	Delete(reviewID, id uint) error
}
