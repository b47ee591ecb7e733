package services

import (
	"errors"

	"ratings/internal/apperrors"
	"ratings/internal/models"
	"ratings/internal/permissions"
	"ratings/internal/repositories"
)

// CategoryService handles business logic for categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List retrieves categories; open to everyone.
func (s *CategoryService) List(search string, page repositories.Page) ([]models.Category, int64, error) {
	return s.repo.List(search, page)
}

// Create adds a category. Admin only. The slug uniqueness pre-check gives a
// friendly conflict; the unique index backs it up under races.
func (s *CategoryService) Create(requester *models.User, category *models.Category) error {
	if !permissions.CanManageCatalog(requester) {
		return apperrors.Forbiddenf("only admins may manage categories")
	}
	if err := checkStruct(category); err != nil {
		return err
	}
	if _, err := s.repo.GetBySlug(category.Slug); err == nil {
		return apperrors.Conflictf("category slug %q already exists", category.Slug)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return s.repo.Create(category)
}

// Delete removes a category by slug. Admin only.
func (s *CategoryService) Delete(requester *models.User, slug string) error {
	if !permissions.CanManageCatalog(requester) {
		return apperrors.Forbiddenf("only admins may manage categories")
	}
	return s.repo.Delete(slug)
}
