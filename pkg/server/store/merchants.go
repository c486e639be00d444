package store

import (
	"errors"

	"github.com/dealhub/dealhub/pkg/model"
)

// ErrMerchantNotFound is returned when merchant details do not exist
var ErrMerchantNotFound = errors.New("merchant not found")

// MerchantsStore abstracts merchant business detail storage operations
type MerchantsStore interface {
	// FetchMerchant retrieves merchant details by the owning user's ID
	FetchMerchant(id string) (*model.Merchant, error)

	// UpsertMerchant creates or replaces merchant details
	UpsertMerchant(merchant *model.Merchant) error
}
