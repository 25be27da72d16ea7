package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"smart-inventory/internal/model"
	"smart-inventory/internal/testutil"
)

func seedSupplier(t *testing.T, db *gorm.DB) *model.Supplier {
	t.Helper()
	s := &model.Supplier{
		Name:               "Acme",
		ContactPersonName:  "Ann",
		ContactPersonEmail: "ann@acme.test",
		ContactPersonPhone: "100",
		ContactPersonRole:  "Sales",
		Address:            "1 Road",
		Phone:              "200",
		Email:              "info@acme.test",
		IsActive:           true,
	}
	if err := NewSupplierRepo(db).Create(context.Background(), s); err != nil {
		t.Fatalf("create supplier: %v", err)
	}
	return s
}

func TestProductRepoToggleAndStock(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewProductRepo(db)
	s := seedSupplier(t, db)

	p := &model.Product{
		SKU: "SKU-1", Name: "Widget", Description: "d", Category: "c",
		UnitPrice: decimal.RequireFromString("9.99"), CostPrice: decimal.RequireFromString("4.50"),
		SupplierID: s.ID, IsActive: true,
		Audit: model.Audit{CreatedBy: "admin", UpdatedBy: "admin"},
	}
	if err := repo.Create(db, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.ToggleActive(ctx, "SKU-1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	got, err := repo.FindBySKU(ctx, "SKU-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.IsActive {
		t.Error("expected product to be inactive after toggle")
	}
	if got.UpdatedBy != "admin" {
		t.Errorf("updated_by = %q, toggle must leave it alone", got.UpdatedBy)
	}
	if !got.UnitPrice.Equal(decimal.RequireFromString("9.99")) {
		t.Errorf("unit price = %s", got.UnitPrice)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		locked, err := repo.FindBySKUForUpdate(tx, "SKU-1")
		if err != nil {
			return err
		}
		return repo.UpdateStock(tx, locked.SKU, locked.CurrentStock+5, "admin")
	})
	if err != nil {
		t.Fatalf("update stock: %v", err)
	}
	got, _ = repo.FindBySKU(ctx, "SKU-1")
	if got.CurrentStock != 5 {
		t.Errorf("current stock = %d, want 5", got.CurrentStock)
	}

	if err := repo.ToggleActive(ctx, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected not found, got %v", err)
	}

	inactive, err := repo.FindByActive(ctx, false)
	if err != nil || len(inactive) != 1 {
		t.Errorf("inactive list = %v, %v", inactive, err)
	}
}

func TestReasonRepoExactMatch(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewReasonRepo(db)

	if err := repo.SeedDefaults(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Seeding twice must not duplicate rows.
	if err := repo.SeedDefaults(); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	all, _ := repo.FindAll(ctx)
	if len(all) != len(model.DefaultReasonTypes) {
		t.Fatalf("got %d reasons, want %d", len(all), len(model.DefaultReasonTypes))
	}

	if _, err := repo.FindByReason(ctx, model.ReasonDamaged); err != nil {
		t.Errorf("find seeded reason: %v", err)
	}
	if _, err := repo.FindByReason(ctx, "damaged"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("lookup must be case-sensitive, got %v", err)
	}
}

func TestUserRepoFindActorPrefersAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewUserRepo(db)

	staff := &model.Account{FirstName: "S", LastName: "T", Email: "s@x.test", Username: "sam", PasswordHash: "h", RoleID: 1, IsActive: true, DateCreated: time.Now()}
	if err := repo.Create(ctx, model.ActorStaff, staff); err != nil {
		t.Fatalf("create staff: %v", err)
	}
	admin := &model.Account{FirstName: "A", LastName: "D", Email: "a@x.test", Username: "ada", PasswordHash: "h", RoleID: 1, IsActive: true, DateCreated: time.Now()}
	if err := repo.Create(ctx, model.ActorAdmin, admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	kind, acc, err := repo.FindActor(db, "sam")
	if err != nil || kind != model.ActorStaff || acc.ID != staff.ID {
		t.Fatalf("FindActor(sam) = %s %v %v", kind, acc, err)
	}
	kind, _, err = repo.FindActor(db, "ada")
	if err != nil || kind != model.ActorAdmin {
		t.Fatalf("FindActor(ada) = %s %v", kind, err)
	}
	if _, _, err := repo.FindActor(db, "nobody"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected not found, got %v", err)
	}

	taken, err := repo.UsernameExists(ctx, "sam")
	if err != nil || !taken {
		t.Errorf("UsernameExists(sam) = %v, %v", taken, err)
	}
	taken, _ = repo.EmailExists(ctx, "nobody@x.test")
	if taken {
		t.Error("unexpected email match")
	}

	if err := repo.ToggleActive(ctx, model.ActorStaff, staff.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	inactive, _ := repo.FindByActive(ctx, model.ActorStaff, false)
	if len(inactive) != 1 || inactive[0].Username != "sam" {
		t.Errorf("inactive staff = %v", inactive)
	}

	if err := repo.Create(ctx, model.ActorKind("robot"), &model.Account{}); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestRoleRepoSeedDefaults(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	if err := NewPermissionRepo(db).SeedDefaults(); err != nil {
		t.Fatalf("seed permissions: %v", err)
	}
	roles := NewRoleRepo(db)
	if err := roles.SeedDefaults(); err != nil {
		t.Fatalf("seed roles: %v", err)
	}

	admin, err := roles.FindByName(ctx, model.RoleAdmin)
	if err != nil {
		t.Fatalf("find admin role: %v", err)
	}
	if len(admin.Permissions) != len(model.DefaultPermissions) {
		t.Errorf("admin has %d permissions, want all %d", len(admin.Permissions), len(model.DefaultPermissions))
	}

	viewer, err := roles.FindByName(ctx, model.RoleViewer)
	if err != nil {
		t.Fatalf("find viewer role: %v", err)
	}
	if len(viewer.Permissions) != len(model.DefaultRolePermissions[model.RoleViewer]) {
		t.Errorf("viewer has %d permissions", len(viewer.Permissions))
	}
}
