package services

import (
	"errors"

	"ratings/internal/apperrors"
	"ratings/internal/models"
	"ratings/internal/permissions"
	"ratings/internal/repositories"
)

// GenreService handles business logic for genres.
type GenreService struct {
	repo repositories.GenreRepository
}

// NewGenreService creates a new GenreService.
func NewGenreService(repo repositories.GenreRepository) *GenreService {
	return &GenreService{repo: repo}
}

// List retrieves genres; open to everyone.
func (s *GenreService) List(search string, page repositories.Page) ([]models.Genre, int64, error) {
	return s.repo.List(search, page)
}

// Create adds a genre. Admin only.
func (s *GenreService) Create(requester *models.User, genre *models.Genre) error {
	if !permissions.CanManageCatalog(requester) {
		return apperrors.Forbiddenf("only admins may manage genres")
	}
	if err := checkStruct(genre); err != nil {
		return err
	}
	if _, err := s.repo.GetBySlug(genre.Slug); err == nil {
		return apperrors.Conflictf("genre slug %q already exists", genre.Slug)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return s.repo.Create(genre)
}

// Delete removes a genre by slug. Admin only.
func (s *GenreService) Delete(requester *models.User, slug string) error {
	if !permissions.CanManageCatalog(requester) {
		return apperrors.Forbiddenf("only admins may manage genres")
	}
	return s.repo.Delete(slug)
}
