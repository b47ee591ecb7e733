package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ratings/internal/apperrors"
	"ratings/internal/models"
	"ratings/internal/services"
)

func TestCategoryService_Create_SlugRules(t *testing.T) {
	accepted := []string{"films", "Films-2020", "sci_fi", "a"}
	rejected := []string{"", "films!", "русский", "has space", "sci/fi"}

	for _, slug := range accepted {
		mockRepo := new(MockCategoryRepository)
		service := services.NewCategoryService(mockRepo)
		mockRepo.On("GetBySlug", slug).Return(nil, apperrors.NotFoundf("no such category")).Once()
		mockRepo.On("Create", mock.AnythingOfType("*models.Category")).Return(nil).Once()

		err := service.Create(admin(), &models.Category{Name: "Films", Slug: slug})
		assert.NoError(t, err, "slug %q should be accepted", slug)
		mockRepo.AssertExpectations(t)
	}

	for _, slug := range rejected {
		mockRepo := new(MockCategoryRepository)
		service := services.NewCategoryService(mockRepo)

		err := service.Create(admin(), &models.Category{Name: "Films", Slug: slug})
		assert.ErrorIs(t, err, apperrors.ErrValidation, "slug %q should be rejected", slug)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	}
}

func TestCategoryService_Create_DuplicateSlug(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	service := services.NewCategoryService(mockRepo)

	existing := &models.Category{ID: 1, Name: "Films", Slug: "films"}
	mockRepo.On("GetBySlug", "films").Return(existing, nil).Once()

	err := service.Create(admin(), &models.Category{Name: "Movies", Slug: "films"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCategoryService_Create_RequiresAdmin(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	service := services.NewCategoryService(mockRepo)

	requester := &models.User{ID: "u-1", Username: "alice", Role: models.RoleModerator}
	err := service.Create(requester, &models.Category{Name: "Films", Slug: "films"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockRepo.AssertNotCalled(t, "GetBySlug", mock.Anything)
}
