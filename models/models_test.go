package models

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestPaymentStatusValid(t *testing.T) {
	for _, status := range []PaymentStatus{PaymentStatusPending, PaymentStatusComplete, PaymentStatusFailed} {
		if !status.Valid() {
			t.Errorf("expected %s to be valid", status)
		}
	}
	for _, status := range []PaymentStatus{"", "X", "pending"} {
		if status.Valid() {
			t.Errorf("expected %q to be invalid", status)
		}
	}
}

func TestValidMembership(t *testing.T) {
	for _, tier := range []string{MembershipBronze, MembershipSilver, MembershipGold} {
		if !ValidMembership(tier) {
			t.Errorf("expected %s to be valid", tier)
		}
	}
	if ValidMembership("platinum") {
		t.Error("expected platinum to be invalid")
	}
}

func TestOrderTotal(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{Quantity: 2, UnitPrice: 10.00},
			{Quantity: 3, UnitPrice: 1.50},
		},
	}
	if got := order.Total(); got != 24.50 {
		t.Errorf("expected total 24.50, got %f", got)
	}

	empty := Order{}
	if got := empty.Total(); got != 0 {
		t.Errorf("expected empty order total 0, got %f", got)
	}
}

func TestProductPriceWithTaxOnLoad(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&Collection{}, &Product{}); err != nil {
		t.Fatal(err)
	}

	collection := Collection{Title: "Taxable"}
	db.Create(&collection)
	db.Create(&Product{Title: "Priced", UnitPrice: 50.00, CollectionID: collection.ID})

	var loaded Product
	if err := db.Where("title = ?", "Priced").First(&loaded).Error; err != nil {
		t.Fatal(err)
	}
	if loaded.PriceWithTax != 55.00 {
		t.Errorf("expected price_w_tax 55.00, got %f", loaded.PriceWithTax)
	}
}

func TestCartGetsUUIDOnCreate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&Collection{}, &Product{}, &Cart{}, &CartItem{}); err != nil {
		t.Fatal(err)
	}

	cart := Cart{}
	if err := db.Create(&cart).Error; err != nil {
		t.Fatal(err)
	}
	if cart.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected a generated cart UUID")
	}
}
