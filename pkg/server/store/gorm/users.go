package gorm

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/dealhub/dealhub/pkg/model"
	"github.com/dealhub/dealhub/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// FetchUser retrieves a user by ID
func (s *UsersStore) FetchUser(id string) (*model.User, error) {
	var user model.User
	result := s.db.First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// FetchUserByEmail retrieves a user by email address
func (s *UsersStore) FetchUserByEmail(email string) (*model.User, error) {
	var user model.User
	result := s.db.First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// EmailExists checks whether an account with the email exists
func (s *UsersStore) EmailExists(email string) (bool, error) {
	var count int64
	result := s.db.Model(&model.User{}).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// CreateUser persists a new user
func (s *UsersStore) CreateUser(user *model.User) error {
	return s.db.Create(user).Error
}

// ListUsers returns users matching an optional search term, newest first
func (s *UsersStore) ListUsers(search string, limit, offset int) ([]model.User, error) {
	query := s.db.Model(&model.User{}).Order("created_at DESC")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("email ILIKE ? OR display_name ILIKE ?", pattern, pattern)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var users []model.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountUsers counts users matching an optional search term
func (s *UsersStore) CountUsers(search string) (int64, error) {
	query := s.db.Model(&model.User{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("email ILIKE ? OR display_name ILIKE ?", pattern, pattern)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateRole sets a user's role
func (s *UsersStore) UpdateRole(id, role string) error {
	result := s.db.Model(&model.User{}).Where("id = ?", id).Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// UpdatePermissions replaces a user's permission grants
func (s *UsersStore) UpdatePermissions(id string, permissions []string) error {
	result := s.db.Model(&model.User{}).Where("id = ?", id).
		Update("permissions", pq.StringArray(permissions))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// AddToWishlist adds a product to a user's wishlist; adding an
// already-present product is a no-op
func (s *UsersStore) AddToWishlist(userID, productID string) error {
	result := s.db.Exec(`
		UPDATE users
		SET wishlist = array_append(wishlist, ?), updated_at = NOW()
		WHERE id = ? AND NOT (? = ANY(wishlist))
	`, productID, userID, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the product is already present or the user is missing.
		var count int64
		if err := s.db.Model(&model.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return store.ErrUserNotFound
		}
	}
	return nil
}

// RemoveFromWishlist removes a product from a user's wishlist;
// removing an absent product is a no-op
func (s *UsersStore) RemoveFromWishlist(userID, productID string) error {
	result := s.db.Exec(`
		UPDATE users
		SET wishlist = array_remove(wishlist, ?), updated_at = NOW()
		WHERE id = ?
	`, productID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}
