package models

import (
	"time"

	"gorm.io/gorm"
)

type Collection struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Title             string         `gorm:"not null;index" json:"title"`
	FeaturedProductID *uint          `json:"featured_product_id,omitempty"`
	FeaturedProduct   *Product       `gorm:"foreignKey:FeaturedProductID" json:"featured_product,omitempty"`
	Products          []Product      `gorm:"foreignKey:CollectionID" json:"products,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// ProductCount is populated by the annotated list/detail queries,
	// it is not a real column.
	ProductCount int64 `gorm:"->;-:migration" json:"product_count"`
}
