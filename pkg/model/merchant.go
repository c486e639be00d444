package model

import "time"

// Merchant holds a merchant's public business details. The primary key
// is the owning user's id.
type Merchant struct {
	ID           string    `gorm:"column:id;primaryKey"`
	BusinessName string    `gorm:"column:business_name;not null"`
	About        string    `gorm:"column:about"`
	Phone        string    `gorm:"column:phone"`
	Address      string    `gorm:"column:address"`
	Website      string    `gorm:"column:website"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Merchant) TableName() string {
	return "merchants"
}
