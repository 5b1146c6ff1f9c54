package database

import (
	"os"
	"testing"

	"storefront-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestMigrateCreatesTables(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{
		"users", "customers", "collections", "products", "reviews",
		"carts", "cart_items", "orders", "order_items", "tags", "tagged_items",
	} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("expected table %s to exist", table)
		}
	}
}

func TestCreateDefaultAdmin(t *testing.T) {
	db := setupTestDB(t)
	os.Setenv("ADMIN_EMAIL", "admin@test.local")
	os.Setenv("ADMIN_PASSWORD", "secret-password")
	defer os.Unsetenv("ADMIN_EMAIL")
	defer os.Unsetenv("ADMIN_PASSWORD")

	if err := CreateDefaultAdmin(db); err != nil {
		t.Fatalf("CreateDefaultAdmin failed: %v", err)
	}

	var admin models.User
	if err := db.Where("email = ?", "admin@test.local").First(&admin).Error; err != nil {
		t.Fatalf("admin user not created: %v", err)
	}
	if admin.Role != "admin" {
		t.Errorf("expected role admin, got %s", admin.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("secret-password")); err != nil {
		t.Error("stored password hash does not match")
	}

	// The customer profile is created alongside the user
	var customer models.Customer
	if err := db.Where("user_id = ?", admin.ID).First(&customer).Error; err != nil {
		t.Errorf("customer profile not created for admin: %v", err)
	}
}

func TestCreateDefaultAdminIdempotent(t *testing.T) {
	db := setupTestDB(t)
	os.Setenv("ADMIN_EMAIL", "admin@test.local")
	defer os.Unsetenv("ADMIN_EMAIL")

	if err := CreateDefaultAdmin(db); err != nil {
		t.Fatal(err)
	}
	if err := CreateDefaultAdmin(db); err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", "admin@test.local").Count(&count)
	if count != 1 {
		t.Errorf("expected 1 admin user, got %d", count)
	}
}
