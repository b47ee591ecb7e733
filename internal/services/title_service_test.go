package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ratings/internal/apperrors"
	"ratings/internal/models"
	"ratings/internal/services"
)

func newTitleService(titleRepo *MockTitleRepository, categoryRepo *MockCategoryRepository, genreRepo *MockGenreRepository, nowYear int) *services.TitleService {
	now := fixedClock(time.Date(nowYear, 6, 15, 0, 0, 0, 0, time.UTC))
	return services.NewTitleService(titleRepo, categoryRepo, genreRepo, now)
}

func admin() *models.User {
	return &models.User{ID: "admin-1", Username: "root", Role: models.RoleAdmin}
}

func TestTitleService_Create_YearBound(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	service := newTitleService(titleRepo, new(MockCategoryRepository), new(MockGenreRepository), 2024)

	// A future year is rejected against the injected clock.
	_, err := service.Create(admin(), services.TitleInput{Name: "Test Film", Year: 2025})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	var fields apperrors.FieldErrors
	assert.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "year")
	titleRepo.AssertNotCalled(t, "Create", mock.Anything)

	// The current year and anything older are fine; no lower bound, and the
	// zero year is just another past year.
	for _, year := range []int{2024, 1895, 0, -500} {
		titleRepo.On("Create", mock.AnythingOfType("*models.Title")).
			Run(func(args mock.Arguments) { args.Get(0).(*models.Title).ID = 7 }).
			Return(nil).Once()
		titleRepo.On("GetByID", uint(7)).Return(&models.Title{ID: 7, Name: "Test Film", Year: year}, nil).Once()

		_, err := service.Create(admin(), services.TitleInput{Name: "Test Film", Year: year})
		assert.NoError(t, err, "year %d should be accepted", year)
	}
	titleRepo.AssertExpectations(t)
}

func TestTitleService_Create_RequiresAdmin(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	service := newTitleService(titleRepo, new(MockCategoryRepository), new(MockGenreRepository), 2024)

	for _, role := range []models.Role{models.RoleUser, models.RoleModerator} {
		requester := &models.User{ID: "u-1", Username: "someone", Role: role}
		_, err := service.Create(requester, services.TitleInput{Name: "Test Film", Year: 2020})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	}
	_, err := service.Create(nil, services.TitleInput{Name: "Test Film", Year: 2020})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	titleRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestTitleService_Create_ResolvesReferences(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	service := newTitleService(titleRepo, categoryRepo, genreRepo, 2024)

	movies := &models.Category{ID: 1, Name: "Movies", Slug: "movies"}
	drama := models.Genre{ID: 2, Name: "Drama", Slug: "drama"}

	categoryRepo.On("GetBySlug", "movies").Return(movies, nil).Once()
	genreRepo.On("GetBySlugs", []string{"drama"}).Return([]models.Genre{drama}, nil).Once()
	titleRepo.On("Create", mock.AnythingOfType("*models.Title")).
		Run(func(args mock.Arguments) {
			title := args.Get(0).(*models.Title)
			title.ID = 1
			assert.Equal(t, movies.ID, *title.CategoryID)
			assert.Len(t, title.Genres, 1)
		}).
		Return(nil).Once()
	titleRepo.On("GetByID", uint(1)).Return(&models.Title{ID: 1, Name: "Test Film", Year: 2020}, nil).Once()

	_, err := service.Create(admin(), services.TitleInput{
		Name:     "Test Film",
		Year:     2020,
		Category: "movies",
		Genre:    []string{"drama"},
	})
	assert.NoError(t, err)
	titleRepo.AssertExpectations(t)
	categoryRepo.AssertExpectations(t)
	genreRepo.AssertExpectations(t)
}

func TestTitleService_Create_UnknownReferences(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	service := newTitleService(titleRepo, categoryRepo, genreRepo, 2024)

	categoryRepo.On("GetBySlug", "nope").Return(nil, apperrors.NotFoundf("no such category")).Once()

	_, err := service.Create(admin(), services.TitleInput{Name: "Test Film", Year: 2020, Category: "nope"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// A partial genre match means at least one slug is unknown.
	genreRepo.On("GetBySlugs", []string{"drama", "nope"}).
		Return([]models.Genre{{ID: 2, Slug: "drama"}}, nil).Once()

	_, err = service.Create(admin(), services.TitleInput{Name: "Test Film", Year: 2020, Genre: []string{"drama", "nope"}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	titleRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestTitleService_Update_PartialAndYearBound(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	service := newTitleService(titleRepo, new(MockCategoryRepository), new(MockGenreRepository), 2024)

	existing := &models.Title{ID: 3, Name: "Old Name", Year: 2000}
	titleRepo.On("GetByID", uint(3)).Return(existing, nil).Once()

	futureYear := 2030
	_, err := service.Update(admin(), 3, services.TitleUpdateInput{Year: &futureYear})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	titleRepo.AssertNotCalled(t, "Update", mock.Anything)

	newName := "New Name"
	titleRepo.On("GetByID", uint(3)).Return(existing, nil).Twice()
	titleRepo.On("Update", mock.AnythingOfType("*models.Title")).
		Run(func(args mock.Arguments) {
			title := args.Get(0).(*models.Title)
			assert.Equal(t, "New Name", title.Name)
			assert.Equal(t, 2000, title.Year) // untouched
		}).
		Return(nil).Once()

	_, err = service.Update(admin(), 3, services.TitleUpdateInput{Name: &newName})
	assert.NoError(t, err)
	titleRepo.AssertExpectations(t)
}

func TestTitleService_Delete(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	service := newTitleService(titleRepo, new(MockCategoryRepository), new(MockGenreRepository), 2024)

	titleRepo.On("Delete", uint(9)).Return(nil).Once()
	assert.NoError(t, service.Delete(admin(), 9))

	err := service.Delete(&models.User{ID: "u-1", Role: models.RoleUser}, 9)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	titleRepo.On("Delete", uint(404)).Return(apperrors.NotFoundf("title with ID 404 not found")).Once()
	err = service.Delete(admin(), 404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	titleRepo.AssertExpectations(t)
}
