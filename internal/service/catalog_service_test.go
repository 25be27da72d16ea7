package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"smart-inventory/internal/model"
)

func TestAddProductRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	in := env.productInput("RT-1", 12)

	created, err := env.catalog.AddProduct(ctx, in, testAdmin)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if !created.IsActive || created.CreatedBy != testAdmin {
		t.Errorf("unexpected created product %+v", created)
	}

	got, err := env.catalog.GetBySku(ctx, "RT-1")
	if err != nil {
		t.Fatalf("GetBySku: %v", err)
	}
	if got.Name != in.Name || got.Description != in.Description || got.Category != in.Category ||
		got.MinimumStockLevel != in.MinimumStockLevel || got.ReorderQuantity != in.ReorderQuantity ||
		got.UnitMeasurement != in.UnitMeasurement || got.Barcode != in.Barcode ||
		got.SupplierID != in.SupplierID || got.CurrentStock != 12 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.UnitPrice.Equal(in.UnitPrice) || !got.CostPrice.Equal(in.CostPrice) {
		t.Errorf("prices = %s / %s", got.UnitPrice, got.CostPrice)
	}

	entries := env.entriesFor(t, "RT-1")
	if len(entries) != 1 {
		t.Fatalf("got %d opening entries, want 1", len(entries))
	}
	open := entries[0]
	if open.PreviousStock != 0 || open.NewStock != 12 || open.QuantityChange != 12 || open.Kind != model.TxIn {
		t.Errorf("unexpected opening entry %+v", open)
	}
	reason, _ := env.ledger.ResolveReasonText(ctx, open.ReasonTypeID)
	if reason != model.ReasonReceived {
		t.Errorf("opening reason = %q", reason)
	}

	actions := env.events.actions()
	if len(actions) < 2 || actions[len(actions)-2] != ActionProductCreated || actions[len(actions)-1] != ActionStockIn {
		t.Errorf("events = %v", actions)
	}
}

func TestAddProductWithoutStockHasNoEntry(t *testing.T) {
	env := newTestEnv(t)
	env.mustAddProduct(t, "EMPTY", 0)
	if got := env.entriesFor(t, "EMPTY"); len(got) != 0 {
		t.Errorf("expected no ledger entry, got %+v", got)
	}
}

func TestAddProductRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustAddProduct(t, "DUP", 1)

	inactive, err := env.catalog.CreateSupplier(ctx, testSupplierInput("sleepy"))
	if err != nil {
		t.Fatalf("create supplier: %v", err)
	}
	if _, err := env.catalog.ToggleSupplierActive(ctx, inactive.ID); err != nil {
		t.Fatalf("toggle supplier: %v", err)
	}

	negative := env.productInput("NEG", 1)
	negative.UnitPrice = decimal.NewFromInt(-1)
	noSupplier := env.productInput("NOSUP", 1)
	noSupplier.SupplierID = 9999
	sleepy := env.productInput("SLEEPY", 1)
	sleepy.SupplierID = inactive.ID
	blank := env.productInput("BLANK", 1)
	blank.Name = ""

	tests := []struct {
		name  string
		in    ProductInput
		actor string
		want  error
	}{
		{"duplicate sku", env.productInput("DUP", 1), testAdmin, ErrSKUExists},
		{"negative price", negative, testAdmin, ErrValidation},
		{"blank name", blank, testAdmin, ErrValidation},
		{"negative stock", env.productInput("NS", -1), testAdmin, ErrValidation},
		{"unknown supplier", noSupplier, testAdmin, ErrSupplierNotFound},
		{"inactive supplier", sleepy, testAdmin, ErrSupplierInactive},
		{"missing actor", env.productInput("NOACT", 1), "", ErrValidation},
		{"unknown actor", env.productInput("GHOST", 1), "ghost", ErrActorNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.catalog.AddProduct(ctx, tt.in, tt.actor); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	if got := env.entriesFor(t, "DUP"); len(got) != 1 {
		t.Errorf("duplicate attempt touched the ledger: %d entries", len(got))
	}
}

func TestEditProductNoChanges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.mustAddProduct(t, "SAME", 3)
	before, _ := env.catalog.GetBySku(ctx, "SAME")

	name, price := p.Name, p.UnitPrice
	_, err := env.catalog.EditProduct(ctx, ProductEdit{SKU: "SAME", Name: &name, UnitPrice: &price})
	if !errors.Is(err, ErrNoChanges) {
		t.Fatalf("expected ErrNoChanges, got %v", err)
	}

	after, _ := env.catalog.GetBySku(ctx, "SAME")
	if !after.LastUpdated.Equal(before.LastUpdated) {
		t.Errorf("last updated moved from %v to %v", before.LastUpdated, after.LastUpdated)
	}
	if got := env.entriesFor(t, "SAME"); len(got) != 1 {
		t.Errorf("no-op edit touched the ledger: %d entries", len(got))
	}
}

func TestEditProductAppliesChanges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustAddProduct(t, "EDIT", 3)

	other, err := env.catalog.CreateSupplier(ctx, testSupplierInput("globex"))
	if err != nil {
		t.Fatalf("create supplier: %v", err)
	}
	name := "Renamed"
	price := decimal.RequireFromString("15.00")
	updated, err := env.catalog.EditProduct(ctx, ProductEdit{
		SKU: "EDIT", Name: &name, UnitPrice: &price, SupplierID: &other.ID, Actor: testStaff,
	})
	if err != nil {
		t.Fatalf("EditProduct: %v", err)
	}
	if updated.Name != "Renamed" || !updated.UnitPrice.Equal(price) || updated.SupplierID != other.ID {
		t.Errorf("edit not applied: %+v", updated)
	}
	if updated.CurrentStock != 3 || updated.UpdatedBy != testStaff {
		t.Errorf("unexpected stock/audit after edit: %+v", updated)
	}

	if _, err := env.catalog.EditProduct(ctx, ProductEdit{SKU: "MISSING", Name: &name}); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("edit unknown sku: got %v", err)
	}
	negative := -1
	if _, err := env.catalog.EditProduct(ctx, ProductEdit{SKU: "EDIT", ReorderQuantity: &negative}); !errors.Is(err, ErrValidation) {
		t.Errorf("negative reorder quantity: got %v", err)
	}

	again := "Ghost edit"
	if _, err := env.catalog.EditProduct(ctx, ProductEdit{SKU: "EDIT", Name: &again, Actor: "ghost"}); !errors.Is(err, ErrActorNotFound) {
		t.Errorf("unknown actor: got %v", err)
	}
	p, err := env.catalog.GetBySku(ctx, "EDIT")
	if err != nil {
		t.Fatalf("GetBySku: %v", err)
	}
	if p.Name != "Renamed" || p.UpdatedBy != testStaff {
		t.Errorf("edit by unknown actor was applied: %+v", p)
	}
}

func TestToggleProductActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustAddProduct(t, "TOG", 0)

	p, err := env.catalog.ToggleActive(ctx, "TOG")
	if err != nil || p.IsActive {
		t.Fatalf("toggle off: %+v, %v", p, err)
	}
	deactivated, _ := env.catalog.GetDeactivated(ctx)
	active, _ := env.catalog.GetActive(ctx)
	if len(deactivated) != 1 || len(active) != 0 {
		t.Errorf("active=%d deactivated=%d", len(active), len(deactivated))
	}

	if p, _ = env.catalog.ToggleActive(ctx, "TOG"); !p.IsActive {
		t.Error("expected product to be active again")
	}
	if _, err := env.catalog.ToggleActive(ctx, "NOPE"); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("toggle unknown: got %v", err)
	}
}

func TestSupplierLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.catalog.CreateSupplier(ctx, testSupplierInput("acme")); !errors.Is(err, ErrSupplierConflict) {
		t.Errorf("duplicate contact details: got %v", err)
	}
	bad := testSupplierInput("bad")
	bad.Email = "not-an-email"
	if _, err := env.catalog.CreateSupplier(ctx, bad); !errors.Is(err, ErrValidation) {
		t.Errorf("invalid email: got %v", err)
	}

	if _, err := env.catalog.EditSupplier(ctx, env.supplier.ID, SupplierInput{Name: env.supplier.Name}); !errors.Is(err, ErrNoChanges) {
		t.Errorf("no-op edit: got %v", err)
	}
	edited, err := env.catalog.EditSupplier(ctx, env.supplier.ID, SupplierInput{Address: "2 Side St"})
	if err != nil {
		t.Fatalf("EditSupplier: %v", err)
	}
	if edited.Address != "2 Side St" || edited.Name != env.supplier.Name {
		t.Errorf("unexpected supplier %+v", edited)
	}

	other, err := env.catalog.CreateSupplier(ctx, testSupplierInput("initech"))
	if err != nil {
		t.Fatalf("create second supplier: %v", err)
	}
	if _, err := env.catalog.EditSupplier(ctx, other.ID, SupplierInput{Email: env.supplier.Email}); !errors.Is(err, ErrSupplierConflict) {
		t.Errorf("edit onto taken email: got %v", err)
	}
	if _, err := env.catalog.EditSupplier(ctx, 9999, SupplierInput{Name: "x"}); !errors.Is(err, ErrSupplierNotFound) {
		t.Errorf("edit unknown supplier: got %v", err)
	}

	if _, err := env.catalog.ToggleSupplierActive(ctx, other.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	active, _ := env.catalog.GetActiveSuppliers(ctx)
	inactive, _ := env.catalog.GetDeactivatedSuppliers(ctx)
	if len(active) != 1 || len(inactive) != 1 || inactive[0].ID != other.ID {
		t.Errorf("active=%v inactive=%v", active, inactive)
	}
}
