package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smart-inventory/internal/model"
)

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	FindBySKUForUpdate(tx *gorm.DB, sku string) (*model.Product, error)
	FindByActive(ctx context.Context, active bool) ([]model.Product, error)
	UpdateFields(ctx context.Context, sku string, fields map[string]interface{}) error
	ToggleActive(ctx context.Context, sku string) error
	UpdateStock(tx *gorm.DB, sku string, newStock int, updatedBy string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// Create runs on tx so the caller can pair it with the opening ledger entry.
func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return tx.Omit(clause.Associations).Create(product).Error
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySKUForUpdate reads the product row and holds a row lock on it until
// tx ends. SQLite has no row locks; there the whole database is locked by the
// write transaction instead.
func (r *productRepo) FindBySKUForUpdate(tx *gorm.DB, sku string) (*model.Product, error) {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var product model.Product
	if err := q.First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByActive(ctx context.Context, active bool) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Where("is_active = ?", active).Order("sku ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) UpdateFields(ctx context.Context, sku string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("sku = ?", sku).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) ToggleActive(ctx context.Context, sku string) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("sku = ?", sku).
		Update("is_active", gorm.Expr("NOT is_active"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStock must only be called by the ledger, inside the transaction that
// also inserts the matching StockTransaction.
func (r *productRepo) UpdateStock(tx *gorm.DB, sku string, newStock int, updatedBy string) error {
	res := tx.Model(&model.Product{}).
		Where("sku = ?", sku).
		Updates(map[string]interface{}{
			"current_stock": newStock,
			"updated_by":    updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
