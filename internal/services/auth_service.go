package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ratings/internal/apperrors"
	"ratings/internal/models"
	"ratings/internal/repositories"
)

// Notifier delivers confirmation codes through an out-of-band channel. The
// AMQP client in pkg/notifier implements it; tests substitute a mock.
type Notifier interface {
	PublishConfirmationCode(username, email, code string) error
}

// AuthService handles the passwordless signup and token-exchange flow.
type AuthService struct {
	userRepo   repositories.UserRepository
	notifier   Notifier
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	codeTTL    time.Duration // Confirmation code lifetime; 0 disables expiry
	now        func() time.Time
}

// NewAuthService creates a new AuthService. The clock is injected so code
// expiry is testable.
func NewAuthService(userRepo repositories.UserRepository, notifier Notifier, jwtSecret string, codeTTL time.Duration, now func() time.Time) *AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		userRepo:   userRepo,
		notifier:   notifier,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		codeTTL:    codeTTL,
		now:        now,
	}
}

// SignupInput is the signup request payload.
type SignupInput struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// SignUp registers a new user and issues a confirmation code, or re-issues the
// code when the exact (username, email) pair already exists. A collision with a
// different account on either field is a conflict.
func (s *AuthService) SignUp(in SignupInput) error {
	if err := checkStruct(in); err != nil {
		return err
	}
	if strings.EqualFold(in.Username, "me") {
		return apperrors.FieldErrors{"username": `username "me" is reserved`}
	}

	byName, err := s.lookup(func() (*models.User, error) { return s.userRepo.GetByUsername(in.Username) })
	if err != nil {
		return err
	}
	byEmail, err := s.lookup(func() (*models.User, error) { return s.userRepo.GetByEmail(in.Email) })
	if err != nil {
		return err
	}

	switch {
	case byName != nil && byEmail != nil && byName.ID == byEmail.ID:
		// Idempotent resend for the existing account.
		return s.issueCode(byName)
	case byName != nil:
		return apperrors.Conflictf("username %q is already taken", in.Username)
	case byEmail != nil:
		return apperrors.Conflictf("email %q is already registered", in.Email)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return err
	}
	return s.issueCode(user)
}

// IssueToken exchanges a confirmation code for a JWT access token. The code is
// single use: a successful exchange clears it.
func (s *AuthService) IssueToken(username, code string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", err
	}

	if user.ConfirmationCodeHash == "" {
		return "", apperrors.Validationf("no active confirmation code for user %q", username)
	}
	if s.codeTTL > 0 && user.CodeIssuedAt != nil && s.now().Sub(*user.CodeIssuedAt) > s.codeTTL {
		return "", apperrors.Validationf("confirmation code has expired, request a new one")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.ConfirmationCodeHash), []byte(code)) != nil {
		return "", apperrors.Validationf("invalid confirmation code")
	}

	user.Confirmed = true
	user.ConfirmationCodeHash = ""
	user.CodeIssuedAt = nil
	if err := s.userRepo.Update(user); err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      s.now().Add(s.tokenDurat).Unix(),
		"iat":      s.now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses a JWT and loads the current user record, so a role
// change since issuance takes effect immediately.
func (s *AuthService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return s.userRepo.GetByID(userID)
}

// issueCode generates a fresh single-use code, stores its hash, and hands the
// plain code to the notifier. Delivery failure is logged, not fatal: signup is
// idempotent, so the caller can simply retry.
func (s *AuthService) issueCode(user *models.User) error {
	code := uuid.New().String()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash confirmation code: %w", err)
	}

	issuedAt := s.now()
	user.ConfirmationCodeHash = string(hash)
	user.CodeIssuedAt = &issuedAt
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	if s.notifier == nil {
		log.Printf("Notifier is not configured. Skipping confirmation code delivery for %s.", user.Username)
		return nil
	}
	if err := s.notifier.PublishConfirmationCode(user.Username, user.Email, code); err != nil {
		log.Printf("Warning: failed to publish confirmation code for user %s: %v", user.Username, err)
	}
	return nil
}

// lookup swallows not-found so callers can branch on presence.
func (s *AuthService) lookup(get func() (*models.User, error)) (*models.User, error) {
	user, err := get()
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
