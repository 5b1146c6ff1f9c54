package handlers

import (
	"net/http"

	"storefront-backend/models"
	"storefront-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartHandler serves anonymous carts and their nested items. Carts are
// identified by opaque uuids and need no authentication.
type CartHandler struct {
	DB *gorm.DB
}

// fillTotals computes the derived total_price fields from the loaded
// product prices.
func fillTotals(cart *models.Cart) {
	var total float64
	for i := range cart.Items {
		item := &cart.Items[i]
		item.TotalPrice = float64(item.Quantity) * item.Product.UnitPrice
		total += item.TotalPrice
	}
	cart.TotalPrice = total
}

func (h *CartHandler) CreateCart(c *gin.Context) {
	cart := models.Cart{}
	if err := h.DB.Create(&cart).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cart"})
		return
	}

	cart.Items = []models.CartItem{}
	c.JSON(http.StatusCreated, cart)
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart ID"})
		return
	}

	var cart models.Cart
	if err := h.DB.Preload("Items.Product").Where("id = ?", cartID).First(&cart).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}

	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	fillTotals(&cart)
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) DeleteCart(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart ID"})
		return
	}

	var cart models.Cart
	if err := h.DB.Where("id = ?", cartID).First(&cart).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart deleted"})
}

func (h *CartHandler) GetCartItems(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart ID"})
		return
	}

	var cart models.Cart
	if err := h.DB.Where("id = ?", cartID).First(&cart).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}

	var items []models.CartItem
	if err := h.DB.Preload("Product").Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart items"})
		return
	}

	for i := range items {
		items[i].TotalPrice = float64(items[i].Quantity) * items[i].Product.UnitPrice
	}
	c.JSON(http.StatusOK, items)
}

// AddCartItem creates a cart item, or increments the quantity when the
// product is already in the cart, keeping (cart, product) unique.
func (h *CartHandler) AddCartItem(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart ID"})
		return
	}

	var cart models.Cart
	if err := h.DB.Where("id = ?", cartID).First(&cart).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var product models.Product
	if err := h.DB.Where("id = ?", req.ProductID).First(&product).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No product with the given ID exists"})
		return
	}

	var cartItem models.CartItem
	err = h.DB.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID).First(&cartItem).Error

	if err == nil {
		cartItem.Quantity += req.Quantity
		if err := h.DB.Save(&cartItem).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
	} else {
		cartItem = models.CartItem{
			CartID:    cart.ID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		}
		if err := h.DB.Create(&cartItem).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
	}

	h.DB.Preload("Product").First(&cartItem, cartItem.ID)
	cartItem.TotalPrice = float64(cartItem.Quantity) * cartItem.Product.UnitPrice
	c.JSON(http.StatusOK, cartItem)
}

func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart ID"})
		return
	}
	itemID := c.Param("itemID")

	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var cartItem models.CartItem
	if err := h.DB.Where("id = ? AND cart_id = ?", itemID, cartID).First(&cartItem).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	cartItem.Quantity = req.Quantity
	if err := h.DB.Save(&cartItem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		return
	}

	h.DB.Preload("Product").First(&cartItem, cartItem.ID)
	cartItem.TotalPrice = float64(cartItem.Quantity) * cartItem.Product.UnitPrice
	c.JSON(http.StatusOK, cartItem)
}

func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart ID"})
		return
	}
	itemID := c.Param("itemID")

	var cartItem models.CartItem
	if err := h.DB.Where("id = ? AND cart_id = ?", itemID, cartID).First(&cartItem).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	if err := h.DB.Delete(&cartItem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item from cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}
