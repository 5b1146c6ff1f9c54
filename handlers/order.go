package handlers

import (
	"net/http"

	"storefront-backend/events"
	"storefront-backend/models"
	"storefront-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderHandler struct {
	DB  *gorm.DB
	Bus *events.Bus
}

// CreateOrder converts a cart into an order. Preconditions are checked
// before any mutation; the conversion itself runs in one transaction so
// a failure at any step leaves the cart intact. The order_created
// notification goes out after commit, before the response.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		CartID string `json:"cart_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	cartID, err := uuid.Parse(req.CartID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart ID"})
		return
	}

	var cart models.Cart
	if err := h.DB.Where("id = ?", cartID).First(&cart).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No cart with the given ID exists"})
		return
	}

	var itemCount int64
	if err := h.DB.Model(&models.CartItem{}).Where("cart_id = ?", cartID).Count(&itemCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	if itemCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The cart is empty"})
		return
	}

	var customer models.Customer
	if err := h.DB.Where("user_id = ?", userID).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer profile not found"})
		return
	}

	order := models.Order{
		CustomerID:    customer.ID,
		PaymentStatus: models.PaymentStatusPending,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Prices read here are the snapshot the order keeps forever.
		var cartItems []models.CartItem
		if err := tx.Preload("Product").Where("cart_id = ?", cartID).Find(&cartItems).Error; err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.Product.UnitPrice,
			})
		}

		if err := tx.Omit("Product", "Order").CreateInBatches(&orderItems, 100).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Cart{}, "id = ?", cartID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	// Reload with relations before notifying subscribers.
	h.DB.Preload("Items").Preload("Items.Product").Preload("Customer").Preload("Customer.User").First(&order, order.ID)

	if h.Bus != nil {
		h.Bus.PublishOrderCreated(&order)
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrders returns the caller's own orders, or every order for admins.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userRole, _ := c.Get("user_role")

	query := h.DB.Preload("Items").Preload("Items.Product").Preload("Customer").Preload("Customer.User")

	if roleStr, _ := userRole.(string); roleStr != "admin" {
		var customer models.Customer
		if err := h.DB.Where("user_id = ?", userID).First(&customer).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer profile not found"})
			return
		}
		query = query.Where("customer_id = ?", customer.ID)
	}

	var orders []models.Order
	if err := query.Order("placed_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("user_id")
	userRole, _ := c.Get("user_role")

	query := h.DB.Preload("Items").Preload("Items.Product").Preload("Customer").Preload("Customer.User").Where("id = ?", id)

	if roleStr, _ := userRole.(string); roleStr != "admin" {
		var customer models.Customer
		if err := h.DB.Where("user_id = ?", userID).First(&customer).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		query = query.Where("customer_id = ?", customer.ID)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdatePaymentStatus is admin-only.
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		PaymentStatus models.PaymentStatus `json:"payment_status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if !req.PaymentStatus.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment status"})
		return
	}

	var order models.Order
	if err := h.DB.Where("id = ?", id).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	order.PaymentStatus = req.PaymentStatus
	if err := h.DB.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	h.DB.Preload("Items").Preload("Items.Product").First(&order, order.ID)
	c.JSON(http.StatusOK, order)
}

// DeleteOrder is admin-only and removes the order with its items.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id := c.Param("id")

	var order models.Order
	if err := h.DB.Where("id = ?", id).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
