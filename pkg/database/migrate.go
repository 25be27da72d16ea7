package database

import (
	"gorm.io/gorm"

	"smart-inventory/internal/model"
)

// Migrate creates or updates every table of the inventory schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(model.All()...)
}
