package repositories

import "ratings/internal/models"

// UserFilter narrows a user listing. Zero values mean "no filter".
type UserFilter struct {
	Username string
	Role     string
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List(filter UserFilter, page Page) ([]models.User, int64, error)
	Update(user *models.User) error
	Delete(username string) error
}
