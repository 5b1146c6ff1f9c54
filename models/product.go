package models

import (
	"time"

	"gorm.io/gorm"
)

// TaxRate is the flat tax applied on top of the unit price when
// reporting price_w_tax.
const TaxRate = 0.1

type Product struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"not null;index" json:"title"`
	Slug         string         `gorm:"index" json:"slug"`
	Description  string         `gorm:"type:text" json:"description"`
	UnitPrice    float64        `gorm:"not null" json:"unit_price"`
	Inventory    int            `gorm:"default:0" json:"inventory"`
	CollectionID uint           `gorm:"not null;index" json:"collection_id"`
	Collection   *Collection    `gorm:"foreignKey:CollectionID" json:"collection,omitempty"`
	Reviews      []Review       `gorm:"foreignKey:ProductID" json:"reviews,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// PriceWithTax is derived from UnitPrice on every load, never stored.
	PriceWithTax float64 `gorm:"-" json:"price_w_tax"`
}

func (p *Product) AfterFind(tx *gorm.DB) error {
	p.PriceWithTax = p.UnitPrice * (1 + TaxRate)
	return nil
}
