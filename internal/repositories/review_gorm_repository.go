package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ratings/internal/apperrors"
	"ratings/internal/models"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

// Create inserts a new review. The unique (title_id, author_id) index arbitrates
// concurrent duplicates; a violation is reported as a conflict.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflictf("review for title %d by this author already exists", review.TitleID)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetByID retrieves a review scoped to a title.
func (r *GORMReviewRepository) GetByID(titleID, id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Author").First(&review, "id = ? AND title_id = ?", id, titleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("review %d for title %d not found", id, titleID)
		}
		return nil, fmt.Errorf("failed to get review %d: %w", id, err)
	}
	return &review, nil
}

// ListByTitle retrieves a title's reviews ordered by publication date.
func (r *GORMReviewRepository) ListByTitle(titleID uint, page Page) ([]models.Review, int64, error) {
	q := r.db.Model(&models.Review{}).Where("title_id = ?", titleID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	var reviews []models.Review
	err := q.Preload("Author").Order("pub_date").Offset(page.Offset()).Limit(page.Limit()).Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, total, nil
}

// Update saves the review's fields.
func (r *GORMReviewRepository) Update(review *models.Review) error {
	res := r.db.Save(review)
	if res.Error != nil {
		return fmt.Errorf("failed to update review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("review with ID %d not found", review.ID)
	}
	return nil
}

// Delete removes a review scoped to a title. Its comments go with it through
// the cascade foreign key.
func (r *GORMReviewRepository) Delete(titleID, id uint) error {
	res := r.db.Delete(&models.Review{}, "id = ? AND title_id = ?", id, titleID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete review %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("review %d for title %d not found", id, titleID)
	}
	return nil
}

// ExistsForAuthor reports whether the author already reviewed the title. This
// is a fast-fail pre-check only; the unique index is the source of truth.
func (r *GORMReviewRepository) ExistsForAuthor(titleID uint, authorID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check for existing review: %w", err)
	}
	return count > 0, nil
}
