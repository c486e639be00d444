package model

import "time"

// Ad is a promotional banner. Ads are shown position-ordered and only
// while active.
type Ad struct {
	ID          string    `gorm:"column:id;primaryKey"`
	MerchantID  string    `gorm:"column:merchant_id;index;not null"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description"`
	Image       string    `gorm:"column:image"`
	LinkURL     string    `gorm:"column:link_url"`
	Position    int       `gorm:"column:position"`
	IsActive    bool      `gorm:"column:is_active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Ad) TableName() string {
	return "ads"
}
