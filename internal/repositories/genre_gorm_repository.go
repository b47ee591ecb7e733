package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ratings/internal/apperrors"
	"ratings/internal/models"
)

// GORMGenreRepository is a GORM implementation of GenreRepository.
type GORMGenreRepository struct {
	db *gorm.DB
}

// NewGORMGenreRepository creates a new instance of GORMGenreRepository.
func NewGORMGenreRepository(db *gorm.DB) *GORMGenreRepository {
	return &GORMGenreRepository{db: db}
}

// Create inserts a new genre. A duplicate slug surfaces as a conflict.
func (r *GORMGenreRepository) Create(genre *models.Genre) error {
	if err := r.db.Create(genre).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflictf("genre slug %q already exists", genre.Slug)
		}
		return fmt.Errorf("failed to create genre: %w", err)
	}
	return nil
}

// GetBySlug retrieves a genre by its slug.
func (r *GORMGenreRepository) GetBySlug(slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.First(&genre, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("genre with slug %q not found", slug)
		}
		return nil, fmt.Errorf("failed to get genre by slug %s: %w", slug, err)
	}
	return &genre, nil
}

// GetBySlugs retrieves every genre matching the given slugs. Callers detect
// unknown slugs by comparing lengths.
func (r *GORMGenreRepository) GetBySlugs(slugs []string) ([]models.Genre, error) {
	var genres []models.Genre
	if len(slugs) == 0 {
		return genres, nil
	}
	if err := r.db.Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to get genres by slugs: %w", err)
	}
	return genres, nil
}

// List retrieves genres ordered by name, optionally filtered by a name search.
func (r *GORMGenreRepository) List(search string, page Page) ([]models.Genre, int64, error) {
	q := r.db.Model(&models.Genre{})
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count genres: %w", err)
	}

	var genres []models.Genre
	if err := q.Order("name").Offset(page.Offset()).Limit(page.Limit()).Find(&genres).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, total, nil
}

// Delete removes a genre by slug together with its join rows.
func (r *GORMGenreRepository) Delete(slug string) error {
	genre, err := r.GetBySlug(slug)
	if err != nil {
		return err
	}
	if err := r.db.Where("genre_id = ?", genre.ID).Delete(&models.GenreTitle{}).Error; err != nil {
		return fmt.Errorf("failed to delete join rows for genre %s: %w", slug, err)
	}
	if err := r.db.Delete(&models.Genre{}, genre.ID).Error; err != nil {
		return fmt.Errorf("failed to delete genre %s: %w", slug, err)
	}
	return nil
}
