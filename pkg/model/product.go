package model

import "time"

// Product is a merchant's deal listing.
type Product struct {
	ID                 string    `gorm:"column:id;primaryKey"`
	MerchantID         string    `gorm:"column:merchant_id;index;not null"`
	Title              string    `gorm:"column:title;not null"`
	Business           string    `gorm:"column:business"`
	Category           string    `gorm:"column:category;index"`
	Description        string    `gorm:"column:description"`
	Image              string    `gorm:"column:image"`
	OriginalPrice      float64   `gorm:"column:original_price"`
	DiscountedPrice    float64   `gorm:"column:discounted_price"`
	DiscountPercentage int       `gorm:"column:discount_percentage"`
	Rating             float64   `gorm:"column:rating"`
	ReviewCount        int       `gorm:"column:review_count"`
	Location           string    `gorm:"column:location"`
	RedirectLink       string    `gorm:"column:redirect_link"`
	Badge              string    `gorm:"column:badge"`
	Views              int64     `gorm:"column:views"`
	IsPopular          bool      `gorm:"column:is_popular"`
	IsArchived         bool      `gorm:"column:is_archived"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
