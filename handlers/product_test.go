package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-backend/models"
)

func TestGetProducts(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	collection := seedCollection(db, "Shelf")
	seedProduct(db, "Apple", collection.ID, 2.50)
	seedProduct(db, "Banana", collection.ID, 1.25)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	result := parseResponseArray(w)
	if len(result) != 2 {
		t.Fatalf("expected 2 products, got %d", len(result))
	}
}

func TestGetProductsFilterByCollection(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	fruits := seedCollection(db, "Fruits")
	drinks := seedCollection(db, "Drinks")
	seedProduct(db, "Apple", fruits.ID, 2.50)
	seedProduct(db, "Cola", drinks.ID, 1.99)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", fmt.Sprintf("/api/products?collection_id=%d", fruits.ID), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	result := parseResponseArray(w)
	if len(result) != 1 {
		t.Fatalf("expected 1 product, got %d", len(result))
	}
}

func TestGetProductIncludesTaxedPrice(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	collection := seedCollection(db, "Taxed")
	product := seedProduct(db, "Widget", collection.ID, 10.00)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", fmt.Sprintf("/api/products/%d", product.ID), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	taxed, ok := resp["price_w_tax"].(float64)
	if !ok || taxed != 11.00 {
		t.Errorf("expected price_w_tax 11.00, got %v", resp["price_w_tax"])
	}
}

func TestGetProductNotFound(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products/99999", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateProductAsAdmin(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	_, token := seedTestUser(db, "admin-prod@test.com", "admin")
	collection := seedCollection(db, "NewArrivals")

	body := map[string]interface{}{
		"title":         "Gadget",
		"slug":          "gadget",
		"unit_price":    19.99,
		"inventory":     30,
		"collection_id": collection.ID,
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/products", body, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if resp["title"] != "Gadget" {
		t.Errorf("expected title Gadget, got %v", resp["title"])
	}
}

func TestCreateProductAsCustomerForbidden(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	_, token := seedTestUser(db, "cust-prod@test.com", "customer")
	collection := seedCollection(db, "Locked")

	body := map[string]interface{}{
		"title":         "Nope",
		"unit_price":    5.00,
		"collection_id": collection.ID,
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/products", body, token))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateProductUnknownCollection(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	_, token := seedTestUser(db, "badcoll@test.com", "admin")

	body := map[string]interface{}{
		"title":         "Orphan",
		"unit_price":    5.00,
		"collection_id": 99999,
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/products", body, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateProductPriceBelowMinimum(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	_, token := seedTestUser(db, "cheap@test.com", "admin")
	collection := seedCollection(db, "Bargains")

	body := map[string]interface{}{
		"title":         "Freebie",
		"unit_price":    0.5,
		"collection_id": collection.ID,
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/products", body, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateProduct(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	_, token := seedTestUser(db, "upd-prod@test.com", "admin")
	collection := seedCollection(db, "Updatable")
	product := seedProduct(db, "Old Title", collection.ID, 3.00)

	body := map[string]interface{}{
		"title":         "New Title",
		"unit_price":    4.00,
		"inventory":     10,
		"collection_id": collection.ID,
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", fmt.Sprintf("/api/admin/products/%d", product.ID), body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Product
	db.First(&updated, product.ID)
	if updated.Title != "New Title" {
		t.Errorf("expected title New Title, got %s", updated.Title)
	}
	if updated.UnitPrice != 4.00 {
		t.Errorf("expected unit price 4.00, got %f", updated.UnitPrice)
	}
}

func TestDeleteProduct(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	_, token := seedTestUser(db, "del-prod@test.com", "admin")
	collection := seedCollection(db, "Deletable")
	product := seedProduct(db, "Doomed", collection.ID, 1.00)

	// Cart items referencing the product go with it
	cart := seedCart(db)
	seedCartItem(db, cart.ID, product.ID, 2)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", fmt.Sprintf("/api/admin/products/%d", product.ID), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count)
	if count != 0 {
		t.Error("expected product to be deleted")
	}
	db.Model(&models.CartItem{}).Where("product_id = ?", product.ID).Count(&count)
	if count != 0 {
		t.Error("expected cart items for the product to be deleted")
	}
}

func TestDeleteProductBlockedByOrderItems(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	user, token := seedTestUser(db, "del-blocked@test.com", "admin")
	collection := seedCollection(db, "Ordered")
	product := seedProduct(db, "Sold Once", collection.ID, 10.00)
	seedOrder(db, customerFor(db, user).ID, product.ID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", fmt.Sprintf("/api/admin/products/%d", product.ID), nil, token))

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count)
	if count != 1 {
		t.Error("expected product to survive a blocked delete")
	}
}

func TestDeleteProductClearsFeaturedReference(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	_, token := seedTestUser(db, "del-featured@test.com", "admin")
	collection := seedCollection(db, "Featured")
	product := seedProduct(db, "Star", collection.ID, 7.00)
	db.Model(&collection).Update("featured_product_id", product.ID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", fmt.Sprintf("/api/admin/products/%d", product.ID), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var reloaded models.Collection
	db.First(&reloaded, collection.ID)
	if reloaded.FeaturedProductID != nil {
		t.Error("expected featured product reference to be cleared")
	}
}
