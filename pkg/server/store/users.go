package store

import (
	"errors"

	"github.com/dealhub/dealhub/pkg/model"
)

// ErrUserNotFound is returned when a user does not exist
var ErrUserNotFound = errors.New("user not found")

// UsersStore abstracts user account storage operations
type UsersStore interface {
	// FetchUser retrieves a user by ID
	FetchUser(id string) (*model.User, error)

	// FetchUserByEmail retrieves a user by email address
	FetchUserByEmail(email string) (*model.User, error)

	// EmailExists checks whether an account with the email exists
	EmailExists(email string) (bool, error)

	// CreateUser persists a new user
	CreateUser(user *model.User) error

	// ListUsers returns users matching an optional search term,
	// newest first
	ListUsers(search string, limit, offset int) ([]model.User, error)

	// CountUsers counts users matching an optional search term
	CountUsers(search string) (int64, error)

	// UpdateRole sets a user's role
	UpdateRole(id, role string) error

	// UpdatePermissions replaces a user's permission grants
	UpdatePermissions(id string, permissions []string) error

	// AddToWishlist adds a product to a user's wishlist; adding an
	// already-present product is a no-op
	AddToWishlist(userID, productID string) error

	// RemoveFromWishlist removes a product from a user's wishlist;
	// removing an absent product is a no-op
	RemoveFromWishlist(userID, productID string) error
}
