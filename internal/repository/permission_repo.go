package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"smart-inventory/internal/model"
)

type PermissionRepository interface {
	FindAll(ctx context.Context) ([]model.Permission, error)
	SeedDefaults() error
}

type permissionRepo struct {
	db *gorm.DB
}

func NewPermissionRepo(db *gorm.DB) PermissionRepository {
	return &permissionRepo{db: db}
}

func (r *permissionRepo) FindAll(ctx context.Context) ([]model.Permission, error) {
	var perms []model.Permission
	err := r.db.WithContext(ctx).Order("id ASC").Find(&perms).Error
	return perms, err
}

// SeedDefaults creates default permissions if they don't exist
func (r *permissionRepo) SeedDefaults() error {
	for _, p := range model.DefaultPermissions {
		var existing model.Permission
		err := r.db.Where("name = ?", p.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.Create(&p).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
