package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"smart-inventory/internal/model"
)

type RoleRepository interface {
	FindAll(ctx context.Context) ([]model.Role, error)
	FindByID(ctx context.Context, id uint) (*model.Role, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
	SeedDefaults() error
}

type roleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) FindAll(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := r.db.WithContext(ctx).Preload("Permissions").Order("id ASC").Find(&roles).Error
	return roles, err
}

func (r *roleRepo) FindByID(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Preload("Permissions").First(&role, id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Preload("Permissions").Where("name = ?", name).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// SeedDefaults creates the default roles and grants them their default
// permissions. Permissions must be seeded first. Roles that already exist keep
// whatever permissions they have.
func (r *roleRepo) SeedDefaults() error {
	for _, defaultRole := range model.DefaultRoles {
		var existingRole model.Role
		err := r.db.Where("name = ?", defaultRole.Name).First(&existingRole).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Role doesn't exist, create it
		role := model.Role{Name: defaultRole.Name}
		if err := r.db.Create(&role).Error; err != nil {
			return err
		}

		var perms []model.Permission
		q := r.db
		if names := model.DefaultRolePermissions[role.Name]; names != nil {
			q = q.Where("name IN ?", names)
		}
		if err := q.Find(&perms).Error; err != nil {
			return err
		}
		if len(perms) == 0 {
			continue
		}
		if err := r.db.Model(&role).Association("Permissions").Replace(perms); err != nil {
			return err
		}
	}
	return nil
}
