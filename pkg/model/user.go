package model

import (
	"time"

	"github.com/lib/pq"

	"github.com/dealhub/dealhub/pkg/rbac"
)

// User is an account in the marketplace. Accounts are created on first
// sign-in with role "user" and no permissions, and are never
// hard-deleted.
type User struct {
	ID           string         `gorm:"column:id;primaryKey"`
	Email        string         `gorm:"column:email;uniqueIndex;not null"`
	DisplayName  string         `gorm:"column:display_name"`
	PhotoURL     string         `gorm:"column:photo_url"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Role         string         `gorm:"column:role;not null;default:user"`
	Permissions  pq.StringArray `gorm:"column:permissions;type:text[]"`
	Wishlist     pq.StringArray `gorm:"column:wishlist;type:text[]"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// Principal projects the account into the form the access control
// resolver consumes.
func (u *User) Principal() *rbac.Principal {
	return &rbac.Principal{
		ID:          u.ID,
		Role:        rbac.Role(u.Role),
		Permissions: rbac.FromStrings(u.Permissions),
	}
}

// InWishlist reports whether productID is on the user's wishlist.
func (u *User) InWishlist(productID string) bool {
	for _, id := range u.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}
