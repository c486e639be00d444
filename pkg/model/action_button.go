package model

import "time"

// ActionButton is a call-to-action a merchant attaches to a product
// page (e.g. "Book now", "Call us").
type ActionButton struct {
	ID         string    `gorm:"column:id;primaryKey"`
	ProductID  string    `gorm:"column:product_id;index;not null"`
	MerchantID string    `gorm:"column:merchant_id;index;not null"`
	Label      string    `gorm:"column:label;not null"`
	URL        string    `gorm:"column:url"`
	Position   int       `gorm:"column:position"`
	IsActive   bool      `gorm:"column:is_active"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ActionButton) TableName() string {
	return "action_buttons"
}
