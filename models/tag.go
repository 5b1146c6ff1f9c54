package models

import "time"

type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Label     string    `gorm:"not null;index" json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// TaggedItem links a Tag to an arbitrary entity via an (entity_type,
// entity_id) pair. Entity types are registry keys resolved through the
// tagging package; entity ids are assumed to be integers, which breaks
// for entities keyed by anything else (carts, notably).
type TaggedItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TagID      uint      `gorm:"not null;index" json:"tag_id"`
	Tag        Tag       `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"tag"`
	EntityType string    `gorm:"not null;index:idx_tagged_entity" json:"entity_type"`
	EntityID   uint      `gorm:"not null;index:idx_tagged_entity" json:"entity_id"`
	CreatedAt  time.Time `json:"created_at"`
}
