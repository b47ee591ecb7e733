package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ratings/internal/apperrors"
	"ratings/internal/models"
)

// GORMTitleRepository is a GORM implementation of TitleRepository.
type GORMTitleRepository struct {
	db *gorm.DB
}

// NewGORMTitleRepository creates a new instance of GORMTitleRepository.
func NewGORMTitleRepository(db *gorm.DB) *GORMTitleRepository {
	return &GORMTitleRepository{db: db}
}

// Create inserts a new title together with its genre join rows.
func (r *GORMTitleRepository) Create(title *models.Title) error {
	if err := r.db.Create(title).Error; err != nil {
		return fmt.Errorf("failed to create title: %w", err)
	}
	return nil
}

// GetByID retrieves a title with its category, genres and computed rating.
func (r *GORMTitleRepository) GetByID(id uint) (*models.Title, error) {
	var title models.Title
	err := r.db.Preload("Category").Preload("Genres").First(&title, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("title with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get title by ID %d: %w", id, err)
	}
	if err := r.attachRatings([]*models.Title{&title}); err != nil {
		return nil, err
	}
	return &title, nil
}

// List retrieves titles matching the filter, with ratings attached.
func (r *GORMTitleRepository) List(filter TitleFilter, page Page) ([]models.Title, int64, error) {
	var total int64
	if err := r.applyFilter(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count titles: %w", err)
	}

	var titles []models.Title
	err := r.applyFilter(filter).
		Preload("Category").Preload("Genres").
		Order("titles.id").
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&titles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list titles: %w", err)
	}

	refs := make([]*models.Title, len(titles))
	for i := range titles {
		refs[i] = &titles[i]
	}
	if err := r.attachRatings(refs); err != nil {
		return nil, 0, err
	}
	return titles, total, nil
}

// Update saves the title's fields and replaces its genre set.
func (r *GORMTitleRepository) Update(title *models.Title) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Omit("Genres").Save(title)
		if res.Error != nil {
			return fmt.Errorf("failed to update title: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFoundf("title with ID %d not found", title.ID)
		}
		if err := tx.Model(title).Association("Genres").Replace(title.Genres); err != nil {
			return fmt.Errorf("failed to update title genres: %w", err)
		}
		return nil
	})
}

// Delete removes a title. Its reviews (and their comments) go with it through
// the cascade foreign keys; join rows are cleared explicitly.
func (r *GORMTitleRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("title_id = ?", id).Delete(&models.GenreTitle{}).Error; err != nil {
			return fmt.Errorf("failed to delete join rows for title %d: %w", id, err)
		}
		res := tx.Delete(&models.Title{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete title %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFoundf("title with ID %d not found", id)
		}
		return nil
	})
}

// applyFilter builds a fresh filtered query; callers must not reuse the result
// across Count and Find, so each statement starts clean.
func (r *GORMTitleRepository) applyFilter(filter TitleFilter) *gorm.DB {
	q := r.db.Model(&models.Title{})
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		q = q.Joins("JOIN genre_titles ON genre_titles.title_id = titles.id").
			Joins("JOIN genres ON genres.id = genre_titles.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.Name != "" {
		q = q.Where("titles.name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		q = q.Where("titles.year = ?", *filter.Year)
	}
	return q
}

type titleRating struct {
	TitleID uint
	Avg     float64
}

// attachRatings fills Rating from the average review score, one grouped query
// for the whole batch.
func (r *GORMTitleRepository) attachRatings(titles []*models.Title) error {
	if len(titles) == 0 {
		return nil
	}
	ids := make([]uint, len(titles))
	for i, t := range titles {
		ids[i] = t.ID
	}

	var rows []titleRating
	err := r.db.Model(&models.Review{}).
		Select("title_id, AVG(score) AS avg").
		Where("title_id IN ?", ids).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to compute title ratings: %w", err)
	}

	byID := make(map[uint]float64, len(rows))
	for _, row := range rows {
		byID[row.TitleID] = row.Avg
	}
	for _, t := range titles {
		if avg, ok := byID[t.ID]; ok {
			v := avg
			t.Rating = &v
		}
	}
	return nil
}
