package tagging

import (
	"storefront-backend/models"

	"gorm.io/gorm"
)

// RegisterDefaults installs loaders for the built-in taggable kinds.
// Call once at startup, before any tagging endpoint is served.
func RegisterDefaults() {
	Register(EntityProduct, existsLoader(&models.Product{}))
	Register(EntityCollection, existsLoader(&models.Collection{}))
	Register(EntityCustomer, existsLoader(&models.Customer{}))
}

func existsLoader(model interface{}) Loader {
	return func(db *gorm.DB, id uint) (bool, error) {
		var count int64
		if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}
}

// RemoveFor deletes every TaggedItem row pointing at the given entity.
// Entity delete handlers call this inside their own transaction so the
// cascade is atomic with the entity delete.
func RemoveFor(db *gorm.DB, entityType EntityType, id uint) error {
	return db.Where("entity_type = ? AND entity_id = ?", string(entityType), id).
		Delete(&models.TaggedItem{}).Error
}

// TagsFor returns the tags currently associated with the given entity,
// joined with the tag rows in a single query.
func TagsFor(db *gorm.DB, entityType EntityType, id uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := db.Model(&models.Tag{}).
		Joins("JOIN tagged_items ON tagged_items.tag_id = tags.id").
		Where("tagged_items.entity_type = ? AND tagged_items.entity_id = ?", string(entityType), id).
		Find(&tags).Error
	return tags, err
}
