package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ratings/internal/apperrors"
	"ratings/internal/models"
	"ratings/internal/services"
)

func alice() *models.User {
	return &models.User{ID: "alice-1", Username: "alice", Role: models.RoleUser}
}

func aTitle(id uint) *models.Title {
	return &models.Title{ID: id, Name: "Test Film", Year: 2020}
}

func TestReviewService_Create_ScoreBounds(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	service := services.NewReviewService(reviewRepo, titleRepo)

	titleRepo.On("GetByID", uint(1)).Return(aTitle(1), nil)

	for _, score := range []int{0, -1, 11, 100} {
		_, err := service.Create(alice(), 1, services.ReviewInput{Text: "great", Score: score})
		assert.ErrorIs(t, err, apperrors.ErrValidation, "score %d should be rejected", score)

		var fields apperrors.FieldErrors
		assert.ErrorAs(t, err, &fields)
		assert.Contains(t, fields, "score")
	}
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything)

	for _, score := range []int{1, 5, 10} {
		reviewRepo.On("ExistsForAuthor", uint(1), "alice-1").Return(false, nil).Once()
		reviewRepo.On("Create", mock.AnythingOfType("*models.Review")).
			Run(func(args mock.Arguments) { args.Get(0).(*models.Review).ID = 42 }).
			Return(nil).Once()
		reviewRepo.On("GetByID", uint(1), uint(42)).
			Return(&models.Review{ID: 42, TitleID: 1, AuthorID: "alice-1", Text: "great", Score: score}, nil).Once()

		_, err := service.Create(alice(), 1, services.ReviewInput{Text: "great", Score: score})
		assert.NoError(t, err, "score %d should be accepted", score)
	}
	reviewRepo.AssertExpectations(t)
}

func TestReviewService_Create_DuplicateConflict(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	service := services.NewReviewService(reviewRepo, titleRepo)

	titleRepo.On("GetByID", uint(1)).Return(aTitle(1), nil)

	// Pre-check catches the common case.
	reviewRepo.On("ExistsForAuthor", uint(1), "alice-1").Return(true, nil).Once()
	_, err := service.Create(alice(), 1, services.ReviewInput{Text: "again", Score: 8})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything)

	// Under a race the pre-check passes but the unique index still rejects.
	reviewRepo.On("ExistsForAuthor", uint(1), "alice-1").Return(false, nil).Once()
	reviewRepo.On("Create", mock.AnythingOfType("*models.Review")).
		Return(apperrors.Conflictf("review for title 1 by this author already exists")).Once()

	_, err = service.Create(alice(), 1, services.ReviewInput{Text: "again", Score: 8})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	reviewRepo.AssertExpectations(t)
}

func TestReviewService_Create_UnknownTitle(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	service := services.NewReviewService(reviewRepo, titleRepo)

	titleRepo.On("GetByID", uint(999)).Return(nil, apperrors.NotFoundf("title with ID 999 not found")).Once()

	_, err := service.Create(alice(), 999, services.ReviewInput{Text: "great", Score: 8})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReviewService_Update_Permissions(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	service := services.NewReviewService(reviewRepo, titleRepo)

	titleRepo.On("GetByID", uint(1)).Return(aTitle(1), nil)
	existing := &models.Review{ID: 5, TitleID: 1, AuthorID: "alice-1", Text: "ok", Score: 6}

	// Another plain user may not edit alice's review.
	reviewRepo.On("GetByID", uint(1), uint(5)).Return(existing, nil)
	bob := &models.User{ID: "bob-1", Username: "bob", Role: models.RoleUser}
	newText := "hijacked"
	_, err := service.Update(bob, 1, 5, services.ReviewUpdateInput{Text: &newText})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	reviewRepo.AssertNotCalled(t, "Update", mock.Anything)

	// A moderator may.
	moderator := &models.User{ID: "mod-1", Username: "mod", Role: models.RoleModerator}
	better := "much better"
	newScore := 9
	reviewRepo.On("Update", mock.AnythingOfType("*models.Review")).Return(nil).Once()

	_, err = service.Update(moderator, 1, 5, services.ReviewUpdateInput{Text: &better, Score: &newScore})
	assert.NoError(t, err)
	assert.Equal(t, 9, existing.Score)
	reviewRepo.AssertExpectations(t)
}

func TestReviewService_Delete_Permissions(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	service := services.NewReviewService(reviewRepo, titleRepo)

	titleRepo.On("GetByID", uint(1)).Return(aTitle(1), nil)
	existing := &models.Review{ID: 5, TitleID: 1, AuthorID: "alice-1", Text: "ok", Score: 6}
	reviewRepo.On("GetByID", uint(1), uint(5)).Return(existing, nil)

	bob := &models.User{ID: "bob-1", Username: "bob", Role: models.RoleUser}
	err := service.Delete(bob, 1, 5)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	reviewRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	// The author may delete their own review.
	reviewRepo.On("Delete", uint(1), uint(5)).Return(nil).Once()
	assert.NoError(t, service.Delete(alice(), 1, 5))
	reviewRepo.AssertExpectations(t)
}
