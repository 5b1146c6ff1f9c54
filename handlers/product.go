package handlers

import (
	"net/http"

	"storefront-backend/models"
	"storefront-backend/tagging"
	"storefront-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	var products []models.Product
	query := h.DB.Preload("Collection")

	if collectionID := c.Query("collection_id"); collectionID != "" {
		query = query.Where("collection_id = ?", collectionID)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+search+"%")
	}

	if err := query.Order("title").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	var product models.Product

	if err := h.DB.Preload("Collection").Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

type productRequest struct {
	Title        string  `json:"title" binding:"required"`
	Slug         string  `json:"slug"`
	Description  string  `json:"description"`
	UnitPrice    float64 `json:"unit_price" binding:"required,gte=1"`
	Inventory    int     `json:"inventory" binding:"gte=0"`
	CollectionID uint    `json:"collection_id" binding:"required"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var collection models.Collection
	if err := h.DB.Where("id = ?", req.CollectionID).First(&collection).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No collection with the given ID exists"})
		return
	}

	product := models.Product{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		UnitPrice:    req.UnitPrice,
		Inventory:    req.Inventory,
		CollectionID: req.CollectionID,
	}

	if err := h.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	product.PriceWithTax = product.UnitPrice * (1 + models.TaxRate)
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var product models.Product

	if err := h.DB.Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var collection models.Collection
	if err := h.DB.Where("id = ?", req.CollectionID).First(&collection).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No collection with the given ID exists"})
		return
	}

	product.Title = req.Title
	product.Slug = req.Slug
	product.Description = req.Description
	product.UnitPrice = req.UnitPrice
	product.Inventory = req.Inventory
	product.CollectionID = req.CollectionID

	if err := h.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	product.PriceWithTax = product.UnitPrice * (1 + models.TaxRate)
	c.JSON(http.StatusOK, product)
}

// DeleteProduct refuses to delete a product referenced by any order
// item, so historical orders stay resolvable. Cart items and tag rows
// pointing at the product are removed with it.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.DB.Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var orderItemCount int64
	if err := h.DB.Model(&models.OrderItem{}).Where("product_id = ?", product.ID).Count(&orderItemCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check product dependencies"})
		return
	}

	if orderItemCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":            "Cannot delete product referenced by order items",
			"order_item_count": orderItemCount,
		})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		// Collections featuring this product fall back to no feature.
		if err := tx.Model(&models.Collection{}).
			Where("featured_product_id = ?", product.ID).
			Update("featured_product_id", nil).Error; err != nil {
			return err
		}
		if err := tagging.RemoveFor(tx, tagging.EntityProduct, product.ID); err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
