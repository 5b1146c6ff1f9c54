package handlers

import (
	"net/http"
	"strconv"

	"storefront-backend/models"
	"storefront-backend/tagging"
	"storefront-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TagHandler serves tags and their polymorphic associations. Entity
// types are resolved through the tagging registry, so the handler never
// needs to know the taggable kinds.
type TagHandler struct {
	DB *gorm.DB
}

func (h *TagHandler) GetTags(c *gin.Context) {
	var tags []models.Tag
	if err := h.DB.Order("label").Find(&tags).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}

	c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req struct {
		Label string `json:"label" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	tag := models.Tag{Label: req.Label}
	if err := h.DB.Create(&tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, tag)
}

// DeleteTag removes the tag and cascades its associations.
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id := c.Param("id")

	var tag models.Tag
	if err := h.DB.Where("id = ?", id).First(&tag).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tag.ID).Delete(&models.TaggedItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}

// CreateTaggedItem attaches a label to an entity identified by an
// (entity_type, entity_id) pair. The tag row is created on first use of
// a label.
func (h *TagHandler) CreateTaggedItem(c *gin.Context) {
	var req struct {
		Label      string `json:"label" binding:"required"`
		EntityType string `json:"entity_type" binding:"required"`
		EntityID   uint   `json:"entity_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	entityType := tagging.EntityType(req.EntityType)
	if !tagging.Known(entityType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown entity type"})
		return
	}

	exists, err := tagging.Exists(h.DB, entityType, req.EntityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve entity"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
		return
	}

	var tag models.Tag
	if err := h.DB.Where("label = ?", req.Label).FirstOrCreate(&tag, models.Tag{Label: req.Label}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		return
	}

	taggedItem := models.TaggedItem{
		TagID:      tag.ID,
		EntityType: string(entityType),
		EntityID:   req.EntityID,
	}
	if err := h.DB.Create(&taggedItem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to tag entity"})
		return
	}

	taggedItem.Tag = tag
	c.JSON(http.StatusCreated, taggedItem)
}

// GetTaggedItems returns the tags for one entity, joined with the tag
// rows in a single query.
func (h *TagHandler) GetTaggedItems(c *gin.Context) {
	entityTypeParam := c.Query("entity_type")
	entityIDParam := c.Query("entity_id")
	if entityTypeParam == "" || entityIDParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity_type and entity_id are required"})
		return
	}

	entityID, err := strconv.ParseUint(entityIDParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity_id must be an integer"})
		return
	}

	entityType := tagging.EntityType(entityTypeParam)
	if !tagging.Known(entityType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown entity type"})
		return
	}

	tags, err := tagging.TagsFor(h.DB, entityType, uint(entityID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}

	c.JSON(http.StatusOK, tags)
}
