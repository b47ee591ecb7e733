package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ratings/internal/apperrors"
	"ratings/internal/models"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{db: db}
}

// Create inserts a new comment.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment scoped to a review.
func (r *GORMCommentRepository) GetByID(reviewID, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").First(&comment, "id = ? AND review_id = ?", id, reviewID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("comment %d for review %d not found", id, reviewID)
		}
		return nil, fmt.Errorf("failed to get comment %d: %w", id, err)
	}
	return &comment, nil
}

// ListByReview retrieves a review's comments ordered by publication date.
func (r *GORMCommentRepository) ListByReview(reviewID uint, page Page) ([]models.Comment, int64, error) {
	q := r.db.Model(&models.Comment{}).Where("review_id = ?", reviewID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	var comments []models.Comment
	err := q.Preload("Author").Order("pub_date").Offset(page.Offset()).Limit(page.Limit()).Find(&comments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, total, nil
}

// Update saves the comment's fields.
func (r *GORMCommentRepository) Update(comment *models.Comment) error {
	res := r.db.Save(comment)
	if res.Error != nil {
		return fmt.Errorf("failed to update comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("comment with ID %d not found", comment.ID)
	}
	return nil
}

// Delete removes a comment scoped to a review.
func (r *GORMCommentRepository) Delete(reviewID, id uint) error {
	res := r.db.Delete(&models.Comment{}, "id = ? AND review_id = ?", id, reviewID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("comment %d for review %d not found", id, reviewID)
	}
	return nil
}
