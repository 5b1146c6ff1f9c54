// Package tagging resolves (entity_type, entity_id) pairs to live
// entities through a registry of typed loaders, so the tag tables never
// need to know the taggable kinds in advance.
package tagging

import (
	"errors"
	"sync"

	"gorm.io/gorm"
)

// EntityType is a registry key distinguishing which logical entity kind
// an entity id refers to.
type EntityType string

const (
	EntityProduct    EntityType = "product"
	EntityCollection EntityType = "collection"
	EntityCustomer   EntityType = "customer"
)

// ErrUnknownEntityType is returned when an entity type was never
// registered. Hitting it at runtime means a registration was missed at
// startup, not bad user input.
var ErrUnknownEntityType = errors.New("unknown entity type")

// Loader reports whether an entity of one registered kind exists.
type Loader func(db *gorm.DB, id uint) (bool, error)

var (
	mu       sync.RWMutex
	registry = map[EntityType]Loader{}
)

// Register installs the loader for an entity type. Later registrations
// for the same type replace earlier ones.
func Register(entityType EntityType, loader Loader) {
	mu.Lock()
	defer mu.Unlock()
	registry[entityType] = loader
}

// Known reports whether an entity type has a registered loader.
func Known(entityType EntityType) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[entityType]
	return ok
}

// Exists resolves (entityType, id) through the registered loader.
func Exists(db *gorm.DB, entityType EntityType, id uint) (bool, error) {
	mu.RLock()
	loader, ok := registry[entityType]
	mu.RUnlock()
	if !ok {
		return false, ErrUnknownEntityType
	}
	return loader(db, id)
}
