package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"smart-inventory/internal/model"
)

type ReasonRepository interface {
	Create(ctx context.Context, reason *model.ReasonType) error
	FindAll(ctx context.Context) ([]model.ReasonType, error)
	FindByID(ctx context.Context, id uint) (*model.ReasonType, error)
	FindByReason(ctx context.Context, reason string) (*model.ReasonType, error)
	FindByReasonTx(tx *gorm.DB, reason string) (*model.ReasonType, error)
	Delete(ctx context.Context, id uint) error
	SeedDefaults() error
}

type reasonRepo struct {
	db *gorm.DB
}

func NewReasonRepo(db *gorm.DB) ReasonRepository {
	return &reasonRepo{db}
}

func (r *reasonRepo) Create(ctx context.Context, reason *model.ReasonType) error {
	return r.db.WithContext(ctx).Create(reason).Error
}

func (r *reasonRepo) FindAll(ctx context.Context) ([]model.ReasonType, error) {
	var reasons []model.ReasonType
	err := r.db.WithContext(ctx).Order("id ASC").Find(&reasons).Error
	return reasons, err
}

func (r *reasonRepo) FindByID(ctx context.Context, id uint) (*model.ReasonType, error) {
	var reason model.ReasonType
	if err := r.db.WithContext(ctx).First(&reason, id).Error; err != nil {
		return nil, err
	}
	return &reason, nil
}

func (r *reasonRepo) FindByReason(ctx context.Context, reason string) (*model.ReasonType, error) {
	return r.FindByReasonTx(r.db.WithContext(ctx), reason)
}

// FindByReasonTx matches the reason text exactly. The comparison is repeated
// in Go because some collations (MySQL's default) compare case-insensitively.
func (r *reasonRepo) FindByReasonTx(tx *gorm.DB, reason string) (*model.ReasonType, error) {
	var found model.ReasonType
	if err := tx.Where("reason = ?", reason).First(&found).Error; err != nil {
		return nil, err
	}
	if found.Reason != reason {
		return nil, gorm.ErrRecordNotFound
	}
	return &found, nil
}

func (r *reasonRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.ReasonType{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SeedDefaults creates default reasons if they don't exist
func (r *reasonRepo) SeedDefaults() error {
	for _, rt := range model.DefaultReasonTypes {
		var existing model.ReasonType
		err := r.db.Where("reason = ?", rt.Reason).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.Create(&rt).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
