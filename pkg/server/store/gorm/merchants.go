package gorm

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dealhub/dealhub/pkg/model"
	"github.com/dealhub/dealhub/pkg/server/store"
)

// Ensure MerchantsStore implements store.MerchantsStore
var _ store.MerchantsStore = (*MerchantsStore)(nil)

// MerchantsStore implements store.MerchantsStore using GORM
type MerchantsStore struct {
	db *gorm.DB
}

// NewMerchantsStore creates a new MerchantsStore
func NewMerchantsStore(db *gorm.DB) *MerchantsStore {
	return &MerchantsStore{db: db}
}

// FetchMerchant retrieves merchant details by the owning user's ID
func (s *MerchantsStore) FetchMerchant(id string) (*model.Merchant, error) {
	var merchant model.Merchant
	result := s.db.First(&merchant, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrMerchantNotFound
		}
		return nil, result.Error
	}
	return &merchant, nil
}

// UpsertMerchant creates or replaces merchant details
func (s *MerchantsStore) UpsertMerchant(merchant *model.Merchant) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(merchant).Error
}
