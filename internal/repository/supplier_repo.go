package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smart-inventory/internal/model"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *model.Supplier) error
	FindByID(ctx context.Context, id uint) (*model.Supplier, error)
	FindByActive(ctx context.Context, active bool) ([]model.Supplier, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	ToggleActive(ctx context.Context, id uint) error
	ContactTaken(ctx context.Context, supplier *model.Supplier) (bool, error)
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *model.Supplier) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(supplier).Error
}

func (r *supplierRepo) FindByID(ctx context.Context, id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepo) FindByActive(ctx context.Context, active bool) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.WithContext(ctx).Where("is_active = ?", active).Order("id ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Supplier{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *supplierRepo) ToggleActive(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&model.Supplier{}).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ContactTaken reports whether another supplier already uses one of the
// unique contact channels of supplier.
func (r *supplierRepo) ContactTaken(ctx context.Context, supplier *model.Supplier) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Supplier{}).
		Where("id <> ?", supplier.ID).
		Where(r.db.Where("contact_person_email = ?", supplier.ContactPersonEmail).
			Or("contact_person_phone = ?", supplier.ContactPersonPhone).
			Or("phone = ?", supplier.Phone).
			Or("email = ?", supplier.Email)).
		Count(&n).Error
	return n > 0, err
}
