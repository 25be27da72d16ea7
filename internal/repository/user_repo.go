package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"smart-inventory/internal/model"
)

// UserRepository stores administrators and staff members. Both tables share
// the Account columns, so every method takes the ActorKind that picks the
// table.
type UserRepository interface {
	Create(ctx context.Context, kind model.ActorKind, account *model.Account) error
	FindByUsername(ctx context.Context, kind model.ActorKind, username string) (*model.Account, error)
	FindActor(tx *gorm.DB, username string) (model.ActorKind, *model.Account, error)
	FindByActive(ctx context.Context, kind model.ActorKind, active bool) ([]model.Account, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateFields(ctx context.Context, kind model.ActorKind, id uint, fields map[string]interface{}) error
	ToggleActive(ctx context.Context, kind model.ActorKind, id uint) error
	UpdatePassword(ctx context.Context, kind model.ActorKind, id uint, hashedPassword string) error
	UpdateLastLogin(ctx context.Context, kind model.ActorKind, id uint, at time.Time) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

// ErrUnknownKind is returned for an ActorKind that has no table.
var ErrUnknownKind = errors.New("unknown account kind")

// actorKinds is the lookup order when a username could live in either table.
var actorKinds = []model.ActorKind{model.ActorAdmin, model.ActorStaff}

func tableFor(kind model.ActorKind) (string, error) {
	switch kind {
	case model.ActorAdmin:
		return model.Admin{}.TableName(), nil
	case model.ActorStaff:
		return model.Staff{}.TableName(), nil
	}
	return "", ErrUnknownKind
}

func (r *userRepo) table(ctx context.Context, kind model.ActorKind) (*gorm.DB, error) {
	name, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	return r.db.WithContext(ctx).Table(name), nil
}

func (r *userRepo) Create(ctx context.Context, kind model.ActorKind, account *model.Account) error {
	q, err := r.table(ctx, kind)
	if err != nil {
		return err
	}
	return q.Create(account).Error
}

func (r *userRepo) FindByUsername(ctx context.Context, kind model.ActorKind, username string) (*model.Account, error) {
	q, err := r.table(ctx, kind)
	if err != nil {
		return nil, err
	}
	var account model.Account
	if err := q.Where("username = ?", username).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindActor resolves a username to an account, administrators first. It runs
// on tx so the ledger can call it inside its own transaction.
func (r *userRepo) FindActor(tx *gorm.DB, username string) (model.ActorKind, *model.Account, error) {
	for _, kind := range actorKinds {
		name, _ := tableFor(kind)
		var account model.Account
		err := tx.Table(name).Where("username = ?", username).First(&account).Error
		if err == nil {
			return kind, &account, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, err
		}
	}
	return "", nil, gorm.ErrRecordNotFound
}

func (r *userRepo) FindByActive(ctx context.Context, kind model.ActorKind, active bool) ([]model.Account, error) {
	q, err := r.table(ctx, kind)
	if err != nil {
		return nil, err
	}
	var accounts []model.Account
	err = q.Where("is_active = ?", active).Order("id ASC").Find(&accounts).Error
	return accounts, err
}

func (r *userRepo) exists(ctx context.Context, column, value string) (bool, error) {
	for _, kind := range actorKinds {
		q, _ := r.table(ctx, kind)
		var n int64
		if err := q.Where(column+" = ?", value).Count(&n).Error; err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

// UsernameExists checks both account tables.
func (r *userRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

func (r *userRepo) update(ctx context.Context, kind model.ActorKind, id uint, fields map[string]interface{}) error {
	q, err := r.table(ctx, kind)
	if err != nil {
		return err
	}
	res := q.Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepo) UpdateFields(ctx context.Context, kind model.ActorKind, id uint, fields map[string]interface{}) error {
	return r.update(ctx, kind, id, fields)
}

func (r *userRepo) ToggleActive(ctx context.Context, kind model.ActorKind, id uint) error {
	return r.update(ctx, kind, id, map[string]interface{}{"is_active": gorm.Expr("NOT is_active")})
}

func (r *userRepo) UpdatePassword(ctx context.Context, kind model.ActorKind, id uint, hashedPassword string) error {
	return r.update(ctx, kind, id, map[string]interface{}{"password_hash": hashedPassword})
}

func (r *userRepo) UpdateLastLogin(ctx context.Context, kind model.ActorKind, id uint, at time.Time) error {
	return r.update(ctx, kind, id, map[string]interface{}{"last_login_date": at})
}
