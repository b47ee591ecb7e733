package services

import (
	"ratings/internal/apperrors"
	"ratings/internal/models"
	"ratings/internal/permissions"
	"ratings/internal/repositories"
)

// ReviewService handles business logic for reviews.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	titleRepo  repositories.TitleRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, titleRepo repositories.TitleRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

// ReviewInput is the creation payload.
type ReviewInput struct {
	Text  string `json:"text" validate:"required,max=200"`
	Score int    `json:"score"`
}

// ReviewUpdateInput is the partial-update payload; nil fields stay untouched.
type ReviewUpdateInput struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// List retrieves a title's reviews. Unknown title is not-found, not an empty list.
func (s *ReviewService) List(titleID uint, page repositories.Page) ([]models.Review, int64, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(titleID, page)
}

// Get retrieves one review scoped to a title.
func (s *ReviewService) Get(titleID, id uint) (*models.Review, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(titleID, id)
}

// Create posts the requester's review of a title. One review per author per
// title: the pre-check catches the common case, the store's unique index
// arbitrates races.
func (s *ReviewService) Create(requester *models.User, titleID uint, in ReviewInput) (*models.Review, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		return nil, err
	}
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	if err := checkScore(in.Score); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsForAuthor(titleID, requester.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflictf("you have already reviewed this title")
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: requester.ID,
		Text:     in.Text,
		Score:    in.Score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(titleID, review.ID)
}

// Update edits a review. Allowed for the author, moderators and admins.
func (s *ReviewService) Update(requester *models.User, titleID, id uint, in ReviewUpdateInput) (*models.Review, error) {
	review, err := s.Get(titleID, id)
	if err != nil {
		return nil, err
	}
	if !permissions.CanModifyContent(requester, review.AuthorID) {
		return nil, apperrors.Forbiddenf("you may only edit your own reviews")
	}

	if in.Text != nil {
		review.Text = *in.Text
	}
	if in.Score != nil {
		if err := checkScore(*in.Score); err != nil {
			return nil, err
		}
		review.Score = *in.Score
	}
	if err := checkStruct(review); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(titleID, id)
}

// Delete removes a review. Allowed for the author, moderators and admins.
func (s *ReviewService) Delete(requester *models.User, titleID, id uint) error {
	review, err := s.Get(titleID, id)
	if err != nil {
		return err
	}
	if !permissions.CanModifyContent(requester, review.AuthorID) {
		return apperrors.Forbiddenf("you may only delete your own reviews")
	}
	return s.reviewRepo.Delete(titleID, id)
}

func checkScore(score int) error {
	if score < 1 || score > 10 {
		return apperrors.FieldErrors{"score": "score must be an integer between 1 and 10"}
	}
	return nil
}
