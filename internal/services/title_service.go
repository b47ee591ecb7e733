package services

import (
	"errors"
	"fmt"
	"time"

	"ratings/internal/apperrors"
	"ratings/internal/models"
	"ratings/internal/permissions"
	"ratings/internal/repositories"
)

// TitleService handles business logic for titles. The clock is injected so the
// release-year bound stays deterministic under test.
type TitleService struct {
	titleRepo    repositories.TitleRepository
	categoryRepo repositories.CategoryRepository
	genreRepo    repositories.GenreRepository
	now          func() time.Time
}

// NewTitleService creates a new TitleService.
func NewTitleService(titleRepo repositories.TitleRepository, categoryRepo repositories.CategoryRepository, genreRepo repositories.GenreRepository, now func() time.Time) *TitleService {
	if now == nil {
		now = time.Now
	}
	return &TitleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		now:          now,
	}
}

// TitleInput is the creation payload. Category and Genre carry slugs.
type TitleInput struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

// TitleUpdateInput is the partial-update payload; nil fields stay untouched.
type TitleUpdateInput struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// Get retrieves a title with its rating; open to everyone.
func (s *TitleService) Get(id uint) (*models.Title, error) {
	return s.titleRepo.GetByID(id)
}

// List retrieves titles matching the filter; open to everyone.
func (s *TitleService) List(filter repositories.TitleFilter, page repositories.Page) ([]models.Title, int64, error) {
	return s.titleRepo.List(filter, page)
}

// Create adds a title. Admin only. The year must not lie in the future; no
// lower bound is enforced.
func (s *TitleService) Create(requester *models.User, in TitleInput) (*models.Title, error) {
	if !permissions.CanManageCatalog(requester) {
		return nil, apperrors.Forbiddenf("only admins may manage titles")
	}
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	if err := s.checkYear(in.Year); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        in.Name,
		Year:        in.Year,
		Description: in.Description,
	}
	if err := s.resolveCategory(in.Category, title); err != nil {
		return nil, err
	}
	if err := s.resolveGenres(in.Genre, title); err != nil {
		return nil, err
	}

	if err := s.titleRepo.Create(title); err != nil {
		return nil, err
	}
	return s.titleRepo.GetByID(title.ID)
}

// Update applies a partial update to a title. Admin only.
func (s *TitleService) Update(requester *models.User, id uint, in TitleUpdateInput) (*models.Title, error) {
	if !permissions.CanManageCatalog(requester) {
		return nil, apperrors.Forbiddenf("only admins may manage titles")
	}

	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		title.Name = *in.Name
	}
	if in.Year != nil {
		if err := s.checkYear(*in.Year); err != nil {
			return nil, err
		}
		title.Year = *in.Year
	}
	if in.Description != nil {
		title.Description = *in.Description
	}
	if in.Category != nil {
		title.Category = nil
		title.CategoryID = nil
		if err := s.resolveCategory(*in.Category, title); err != nil {
			return nil, err
		}
	}
	if in.Genre != nil {
		title.Genres = nil
		if err := s.resolveGenres(*in.Genre, title); err != nil {
			return nil, err
		}
	}

	if err := checkStruct(title); err != nil {
		return nil, err
	}
	if err := s.titleRepo.Update(title); err != nil {
		return nil, err
	}
	return s.titleRepo.GetByID(id)
}

// Delete removes a title and, through the store's cascades, its reviews and
// their comments. Admin only.
func (s *TitleService) Delete(requester *models.User, id uint) error {
	if !permissions.CanManageCatalog(requester) {
		return apperrors.Forbiddenf("only admins may manage titles")
	}
	return s.titleRepo.Delete(id)
}

func (s *TitleService) checkYear(year int) error {
	current := s.now().Year()
	if year > current {
		return apperrors.FieldErrors{"year": fmt.Sprintf("year %d is in the future (current year is %d)", year, current)}
	}
	return nil
}

func (s *TitleService) resolveCategory(slug string, title *models.Title) error {
	if slug == "" {
		return nil
	}
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.FieldErrors{"category": fmt.Sprintf("unknown category slug %q", slug)}
		}
		return err
	}
	title.Category = category
	title.CategoryID = &category.ID
	return nil
}

func (s *TitleService) resolveGenres(slugs []string, title *models.Title) error {
	if len(slugs) == 0 {
		return nil
	}
	genres, err := s.genreRepo.GetBySlugs(slugs)
	if err != nil {
		return err
	}
	if len(genres) != len(slugs) {
		return apperrors.FieldErrors{"genre": "one or more genre slugs are unknown"}
	}
	title.Genres = genres
	return nil
}
