package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dealhub/dealhub/pkg/model"
	"github.com/dealhub/dealhub/pkg/server/store"
)

// Ensure ActionButtonsStore implements store.ActionButtonsStore
var _ store.ActionButtonsStore = (*ActionButtonsStore)(nil)

// ActionButtonsStore implements store.ActionButtonsStore using GORM
type ActionButtonsStore struct {
	db *gorm.DB
}

// NewActionButtonsStore creates a new ActionButtonsStore
func NewActionButtonsStore(db *gorm.DB) *ActionButtonsStore {
	return &ActionButtonsStore{db: db}
}

// ListButtons returns a product's buttons ordered by position; when
// activeOnly is set only active buttons are returned
func (s *ActionButtonsStore) ListButtons(productID string, activeOnly bool) ([]model.ActionButton, error) {
	query := s.db.Model(&model.ActionButton{}).
		Where("product_id = ?", productID).
		Order("position ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var buttons []model.ActionButton
	if err := query.Find(&buttons).Error; err != nil {
		return nil, err
	}
	return buttons, nil
}

// FetchButton retrieves a single button by ID
func (s *ActionButtonsStore) FetchButton(id string) (*model.ActionButton, error) {
	var button model.ActionButton
	result := s.db.First(&button, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrActionButtonNotFound
		}
		return nil, result.Error
	}
	return &button, nil
}

// CreateButton persists a new button
func (s *ActionButtonsStore) CreateButton(button *model.ActionButton) error {
	return s.db.Create(button).Error
}

// UpdateButton saves changes to an existing button
func (s *ActionButtonsStore) UpdateButton(button *model.ActionButton) error {
	result := s.db.Model(button).Select("*").Omit("id", "created_at").Updates(button)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrActionButtonNotFound
	}
	return nil
}

// DeleteButton removes a button
func (s *ActionButtonsStore) DeleteButton(id string) error {
	result := s.db.Delete(&model.ActionButton{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrActionButtonNotFound
	}
	return nil
}
