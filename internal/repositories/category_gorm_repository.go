package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ratings/internal/apperrors"
	"ratings/internal/models"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// Create inserts a new category. A duplicate slug surfaces as a conflict.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflictf("category slug %q already exists", category.Slug)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetBySlug retrieves a category by its slug.
func (r *GORMCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("category with slug %q not found", slug)
		}
		return nil, fmt.Errorf("failed to get category by slug %s: %w", slug, err)
	}
	return &category, nil
}

// List retrieves categories ordered by name, optionally filtered by a name search.
func (r *GORMCategoryRepository) List(search string, page Page) ([]models.Category, int64, error) {
	q := r.db.Model(&models.Category{})
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	var categories []models.Category
	if err := q.Order("name").Offset(page.Offset()).Limit(page.Limit()).Find(&categories).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}

// Delete removes a category by slug. Titles referencing it keep existing with a
// null category, enforced by the SET NULL foreign key.
func (r *GORMCategoryRepository) Delete(slug string) error {
	res := r.db.Delete(&models.Category{}, "slug = ?", slug)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category %s: %w", slug, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("category with slug %q not found", slug)
	}
	return nil
}
