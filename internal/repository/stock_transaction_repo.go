package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smart-inventory/internal/model"
)

// StockTransactionRepository is append-only: there is no update or delete.
type StockTransactionRepository interface {
	Create(tx *gorm.DB, entry *model.StockTransaction) error
	FindAll(ctx context.Context) ([]model.StockTransaction, error)
	FindBySKU(ctx context.Context, sku string) ([]model.StockTransaction, error)
	CountByReason(ctx context.Context, reasonTypeID uint) (int64, error)
}

type stockTransactionRepo struct {
	db *gorm.DB
}

func NewStockTransactionRepo(db *gorm.DB) StockTransactionRepository {
	return &stockTransactionRepo{db}
}

func (r *stockTransactionRepo) Create(tx *gorm.DB, entry *model.StockTransaction) error {
	return tx.Omit(clause.Associations).Create(entry).Error
}

func (r *stockTransactionRepo) FindAll(ctx context.Context) ([]model.StockTransaction, error) {
	var entries []model.StockTransaction
	err := r.db.WithContext(ctx).Order("id ASC").Find(&entries).Error
	return entries, err
}

func (r *stockTransactionRepo) FindBySKU(ctx context.Context, sku string) ([]model.StockTransaction, error) {
	var entries []model.StockTransaction
	err := r.db.WithContext(ctx).Where("product_sku = ?", sku).Order("id ASC").Find(&entries).Error
	return entries, err
}

func (r *stockTransactionRepo) CountByReason(ctx context.Context, reasonTypeID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.StockTransaction{}).Where("reason_type_id = ?", reasonTypeID).Count(&n).Error
	return n, err
}
