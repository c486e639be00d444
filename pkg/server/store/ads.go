package store

import (
	"errors"

	"github.com/dealhub/dealhub/pkg/model"
)

// ErrAdNotFound is returned when an ad does not exist
var ErrAdNotFound = errors.New("ad not found")

// AdsStore abstracts promotional banner storage operations
type AdsStore interface {
	// ListAds returns ads ordered by position; when activeOnly is set
	// only active ads are returned
	ListAds(activeOnly bool) ([]model.Ad, error)

	// FetchAd retrieves a single ad by ID
	FetchAd(id string) (*model.Ad, error)

	// CreateAd persists a new ad
	CreateAd(ad *model.Ad) error

	// UpdateAd saves changes to an existing ad
	UpdateAd(ad *model.Ad) error

	// DeleteAd removes an ad
	DeleteAd(id string) error
}
