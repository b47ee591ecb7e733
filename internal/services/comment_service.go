package services

import (
	"ratings/internal/apperrors"
	"ratings/internal/models"
	"ratings/internal/permissions"
	"ratings/internal/repositories"
)

// CommentService handles business logic for comments on reviews.
type CommentService struct {
	commentRepo repositories.CommentRepository
	reviewRepo  repositories.ReviewRepository
	titleRepo   repositories.TitleRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repositories.CommentRepository, reviewRepo repositories.ReviewRepository, titleRepo repositories.TitleRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		titleRepo:   titleRepo,
	}
}

// CommentInput is the creation payload.
type CommentInput struct {
	Text string `json:"text" validate:"required,max=200"`
}

// CommentUpdateInput is the partial-update payload.
type CommentUpdateInput struct {
	Text *string `json:"text"`
}

// List retrieves a review's comments. Unknown title or review is not-found.
func (s *CommentService) List(titleID, reviewID uint, page repositories.Page) ([]models.Comment, int64, error) {
	if err := s.checkReview(titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByReview(reviewID, page)
}

// Get retrieves one comment scoped to a review.
func (s *CommentService) Get(titleID, reviewID, id uint) (*models.Comment, error) {
	if err := s.checkReview(titleID, reviewID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(reviewID, id)
}

// Create posts the requester's comment on a review.
func (s *CommentService) Create(requester *models.User, titleID, reviewID uint, in CommentInput) (*models.Comment, error) {
	if err := s.checkReview(titleID, reviewID); err != nil {
		return nil, err
	}
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: requester.ID,
		Text:     in.Text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(reviewID, comment.ID)
}

// Update edits a comment. Allowed for the author, moderators and admins.
func (s *CommentService) Update(requester *models.User, titleID, reviewID, id uint, in CommentUpdateInput) (*models.Comment, error) {
	comment, err := s.Get(titleID, reviewID, id)
	if err != nil {
		return nil, err
	}
	if !permissions.CanModifyContent(requester, comment.AuthorID) {
		return nil, apperrors.Forbiddenf("you may only edit your own comments")
	}

	if in.Text != nil {
		comment.Text = *in.Text
	}
	if err := checkStruct(comment); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(reviewID, id)
}

// Delete removes a comment. Allowed for the author, moderators and admins.
func (s *CommentService) Delete(requester *models.User, titleID, reviewID, id uint) error {
	comment, err := s.Get(titleID, reviewID, id)
	if err != nil {
		return err
	}
	if !permissions.CanModifyContent(requester, comment.AuthorID) {
		return apperrors.Forbiddenf("you may only delete your own comments")
	}
	return s.commentRepo.Delete(reviewID, id)
}

// checkReview verifies the title/review path actually exists and matches.
func (s *CommentService) checkReview(titleID, reviewID uint) error {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		return err
	}
	if _, err := s.reviewRepo.GetByID(titleID, reviewID); err != nil {
		return err
	}
	return nil
}
