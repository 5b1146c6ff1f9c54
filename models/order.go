package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "P"
	PaymentStatusComplete PaymentStatus = "C"
	PaymentStatusFailed   PaymentStatus = "F"
)

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusComplete, PaymentStatusFailed:
		return true
	}
	return false
}

type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	CustomerID    uint          `gorm:"not null;index" json:"customer_id"`
	Customer      Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	PaymentStatus PaymentStatus `gorm:"size:1;default:P" json:"payment_status"`
	PlacedAt      time.Time     `gorm:"autoCreateTime" json:"placed_at"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Total sums quantity times the captured unit price over all items.
// It relies only on the snapshot prices, never the live product prices.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

// OrderItem captures the product price at order-creation time. The
// snapshot keeps historical orders accurate when catalog prices change.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	Order     *Order    `gorm:"foreignKey:OrderID" json:"-"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
}
