package handlers

import (
	"net/http"

	"storefront-backend/models"
	"storefront-backend/tagging"
	"storefront-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CollectionHandler struct {
	DB *gorm.DB
}

// annotated returns a collection query with product_count computed in
// the database, excluding soft-deleted products.
func (h *CollectionHandler) annotated() *gorm.DB {
	return h.DB.Model(&models.Collection{}).
		Select("collections.*, count(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.collection_id = collections.id AND products.deleted_at IS NULL").
		Group("collections.id")
}

func (h *CollectionHandler) GetCollections(c *gin.Context) {
	var collections []models.Collection
	if err := h.annotated().Order("collections.title").Find(&collections).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch collections"})
		return
	}

	c.JSON(http.StatusOK, collections)
}

func (h *CollectionHandler) GetCollection(c *gin.Context) {
	id := c.Param("id")
	var collection models.Collection

	if err := h.annotated().Where("collections.id = ?", id).First(&collection).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}

	c.JSON(http.StatusOK, collection)
}

func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	var req struct {
		Title             string `json:"title" binding:"required"`
		FeaturedProductID *uint  `json:"featured_product_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	collection := models.Collection{
		Title:             req.Title,
		FeaturedProductID: req.FeaturedProductID,
	}
	if err := h.DB.Create(&collection).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create collection"})
		return
	}

	c.JSON(http.StatusCreated, collection)
}

func (h *CollectionHandler) UpdateCollection(c *gin.Context) {
	id := c.Param("id")
	var collection models.Collection

	if err := h.DB.Where("id = ?", id).First(&collection).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}

	var req struct {
		Title             string `json:"title" binding:"required"`
		FeaturedProductID *uint  `json:"featured_product_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	collection.Title = req.Title
	collection.FeaturedProductID = req.FeaturedProductID

	if err := h.DB.Save(&collection).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update collection"})
		return
	}

	c.JSON(http.StatusOK, collection)
}

// DeleteCollection refuses to delete while any product still belongs to
// the collection.
func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	id := c.Param("id")

	var collection models.Collection
	if err := h.DB.Where("id = ?", id).First(&collection).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}

	var productCount int64
	if err := h.DB.Model(&models.Product{}).Where("collection_id = ?", collection.ID).Count(&productCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check collection dependencies"})
		return
	}

	if productCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":         "Cannot delete collection with associated products",
			"product_count": productCount,
		})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tagging.RemoveFor(tx, tagging.EntityCollection, collection.ID); err != nil {
			return err
		}
		return tx.Delete(&collection).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete collection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collection deleted successfully"})
}
