package store

import (
	"errors"

	"github.com/dealhub/dealhub/pkg/model"
)

// ErrActionButtonNotFound is returned when an action button does not exist
var ErrActionButtonNotFound = errors.New("action button not found")

// ActionButtonsStore abstracts call-to-action button storage operations
type ActionButtonsStore interface {
	// ListButtons returns a product's buttons ordered by position;
	// when activeOnly is set only active buttons are returned
	ListButtons(productID string, activeOnly bool) ([]model.ActionButton, error)

	// FetchButton retrieves a single button by ID
	FetchButton(id string) (*model.ActionButton, error)

	// CreateButton persists a new button
	CreateButton(button *model.ActionButton) error

	// UpdateButton saves changes to an existing button
	UpdateButton(button *model.ActionButton) error

	// DeleteButton removes a button
	DeleteButton(id string) error
}
