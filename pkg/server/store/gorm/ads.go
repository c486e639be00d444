package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dealhub/dealhub/pkg/model"
	"github.com/dealhub/dealhub/pkg/server/store"
)

// Ensure AdsStore implements store.AdsStore
var _ store.AdsStore = (*AdsStore)(nil)

// AdsStore implements store.AdsStore using GORM
type AdsStore struct {
	db *gorm.DB
}

// NewAdsStore creates a new AdsStore
func NewAdsStore(db *gorm.DB) *AdsStore {
	return &AdsStore{db: db}
}

// ListAds returns ads ordered by position; when activeOnly is set only
// active ads are returned
func (s *AdsStore) ListAds(activeOnly bool) ([]model.Ad, error) {
	query := s.db.Model(&model.Ad{}).Order("position ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var ads []model.Ad
	if err := query.Find(&ads).Error; err != nil {
		return nil, err
	}
	return ads, nil
}

// FetchAd retrieves a single ad by ID
func (s *AdsStore) FetchAd(id string) (*model.Ad, error) {
	var ad model.Ad
	result := s.db.First(&ad, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrAdNotFound
		}
		return nil, result.Error
	}
	return &ad, nil
}

// CreateAd persists a new ad
func (s *AdsStore) CreateAd(ad *model.Ad) error {
	return s.db.Create(ad).Error
}

// UpdateAd saves changes to an existing ad
func (s *AdsStore) UpdateAd(ad *model.Ad) error {
	result := s.db.Model(ad).Select("*").Omit("id", "created_at").Updates(ad)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrAdNotFound
	}
	return nil
}

// DeleteAd removes an ad
func (s *AdsStore) DeleteAd(id string) error {
	result := s.db.Delete(&model.Ad{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrAdNotFound
	}
	return nil
}
