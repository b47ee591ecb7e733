package services

import (
	"errors"
	"strings"

	"ratings/internal/apperrors"
	"ratings/internal/models"
	"ratings/internal/permissions"
	"ratings/internal/repositories"
)

// UserService handles the admin user collection and the self-profile endpoint.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UserInput is the admin creation payload.
type UserInput struct {
	Username  string `json:"username" validate:"required,max=150,username"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"omitempty,max=150"`
	LastName  string `json:"last_name" validate:"omitempty,max=150"`
	Bio       string `json:"bio" validate:"omitempty,max=200"`
	Role      string `json:"role"`
}

// UserUpdateInput is the admin partial-update payload.
type UserUpdateInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// List retrieves users. Admin only.
func (s *UserService) List(requester *models.User, filter repositories.UserFilter, page repositories.Page) ([]models.User, int64, error) {
	if !permissions.CanManageUsers(requester) {
		return nil, 0, apperrors.Forbiddenf("only admins may list users")
	}
	return s.userRepo.List(filter, page)
}

// Get retrieves a user by username. Admin only.
func (s *UserService) Get(requester *models.User, username string) (*models.User, error) {
	if !permissions.CanManageUsers(requester) {
		return nil, apperrors.Forbiddenf("only admins may view other users")
	}
	return s.userRepo.GetByUsername(username)
}

// Create adds a user directly, bypassing the signup flow. Admin only.
func (s *UserService) Create(requester *models.User, in UserInput) (*models.User, error) {
	if !permissions.CanManageUsers(requester) {
		return nil, apperrors.Forbiddenf("only admins may create users")
	}
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	if strings.EqualFold(in.Username, "me") {
		return nil, apperrors.FieldErrors{"username": `username "me" is reserved`}
	}

	role := models.RoleUser
	if in.Role != "" {
		parsed, err := models.ParseRole(in.Role)
		if err != nil {
			return nil, apperrors.FieldErrors{"role": err.Error()}
		}
		role = parsed
	}

	if err := s.checkUnique(in.Username, in.Email, ""); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Role:      role,
		Confirmed: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial update to a user, role included. Admin only.
func (s *UserService) Update(requester *models.User, username string, in UserUpdateInput) (*models.User, error) {
	if !permissions.CanManageUsers(requester) {
		return nil, apperrors.Forbiddenf("only admins may update other users")
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if err := s.applyProfile(user, in.Email, in.FirstName, in.LastName, in.Bio); err != nil {
		return nil, err
	}
	if in.Role != nil {
		if !permissions.CanChangeRole(requester) {
			return nil, apperrors.Forbiddenf("only admins may change roles")
		}
		parsed, err := models.ParseRole(*in.Role)
		if err != nil {
			return nil, apperrors.FieldErrors{"role": err.Error()}
		}
		user.Role = parsed
	}

	if err := checkStruct(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user by username. Admin only.
func (s *UserService) Delete(requester *models.User, username string) error {
	if !permissions.CanManageUsers(requester) {
		return apperrors.Forbiddenf("only admins may delete users")
	}
	return s.userRepo.Delete(username)
}

// UpdateSelf applies a partial update to the requester's own profile. A role
// field in the payload is silently ignored: the rest of the update succeeds
// and the role stays as it was.
func (s *UserService) UpdateSelf(requester *models.User, in UserUpdateInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(requester.ID)
	if err != nil {
		return nil, err
	}
	if err := s.applyProfile(user, in.Email, in.FirstName, in.LastName, in.Bio); err != nil {
		return nil, err
	}

	if err := checkStruct(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) applyProfile(user *models.User, email, firstName, lastName, bio *string) error {
	if email != nil && *email != user.Email {
		if err := s.checkUnique("", *email, user.ID); err != nil {
			return err
		}
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
	return nil
}

// checkUnique pre-checks username/email collisions, excluding the user being
// updated. The store's unique indexes remain the authoritative backstop.
func (s *UserService) checkUnique(username, email, excludeID string) error {
	if username != "" {
		existing, err := s.userRepo.GetByUsername(username)
		if err == nil && existing.ID != excludeID {
			return apperrors.Conflictf("username %q is already taken", username)
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}
	if email != "" {
		existing, err := s.userRepo.GetByEmail(email)
		if err == nil && existing.ID != excludeID {
			return apperrors.Conflictf("email %q is already registered", email)
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}
	return nil
}
