package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smart-inventory/internal/lock"
	"smart-inventory/internal/model"
	"smart-inventory/internal/repository"
	"smart-inventory/internal/testutil"
	"smart-inventory/pkg/password"
)

type publishedEvent struct {
	Type, Action string
	Data         interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(eventType, action, _ string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Action: action, Data: data})
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Action
	}
	return out
}

type testEnv struct {
	db       *gorm.DB
	products repository.ProductRepository
	entries  repository.StockTransactionRepository
	events   *recordingPublisher
	ledger   LedgerService
	catalog  CatalogService
	identity IdentityService
	supplier *model.Supplier
}

const (
	testAdmin = "admin"
	testStaff = "clerk"
)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewDB(t)
	log := zap.NewNop()

	products := repository.NewProductRepo(db)
	suppliers := repository.NewSupplierRepo(db)
	reasons := repository.NewReasonRepo(db)
	entries := repository.NewStockTransactionRepo(db)
	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	perms := repository.NewPermissionRepo(db)

	for _, seed := range []func() error{perms.SeedDefaults, roles.SeedDefaults, reasons.SeedDefaults} {
		if err := seed(); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	events := &recordingPublisher{}
	ledger := NewLedgerService(db, products, entries, reasons, users, lock.NewLocal(), events, log)
	catalog := NewCatalogService(db, products, suppliers, users, ledger, events, log)
	identity := NewIdentityService(users, roles, perms, catalog, password.NewBcrypt(bcrypt.MinCost), log)

	env := &testEnv{
		db:       db,
		products: products,
		entries:  entries,
		events:   events,
		ledger:   ledger,
		catalog:  catalog,
		identity: identity,
	}

	adminRole, err := roles.FindByName(ctx, model.RoleAdmin)
	if err != nil {
		t.Fatalf("admin role: %v", err)
	}
	env.mustCreateAccount(t, UserKindAdmin, testAdmin, adminRole.ID)
	env.mustCreateAccount(t, UserKindStaff, testStaff, adminRole.ID)

	env.supplier, err = catalog.CreateSupplier(ctx, testSupplierInput("acme"))
	if err != nil {
		t.Fatalf("create supplier: %v", err)
	}
	return env
}

func (e *testEnv) mustCreateAccount(t *testing.T, kind UserKind, username string, roleID uint) *model.UserResponse {
	t.Helper()
	rec, err := e.identity.CreateUser(context.Background(), NewUser{
		Kind: kind,
		Account: &AccountInput{
			Username:  username,
			FirstName: "First",
			LastName:  "Last",
			Email:     username + "@example.com",
			Password:  "secret1",
			RoleID:    roleID,
			IsActive:  true,
		},
	})
	if err != nil {
		t.Fatalf("create %s %s: %v", kind, username, err)
	}
	return rec.User
}

func testSupplierInput(name string) SupplierInput {
	return SupplierInput{
		Name:               name,
		ContactPersonName:  "Contact " + name,
		ContactPersonEmail: "contact@" + name + ".test",
		ContactPersonPhone: "+1-" + name + "-1",
		ContactPersonRole:  "Sales",
		Address:            "1 Main St",
		Phone:              "+1-" + name + "-0",
		Email:              "info@" + name + ".test",
		Website:            "https://" + name + ".test",
	}
}

func (e *testEnv) productInput(sku string, stock int) ProductInput {
	return ProductInput{
		SKU:               sku,
		Name:              "Product " + sku,
		Description:       "A test product",
		Category:          "General",
		UnitPrice:         decimal.RequireFromString("12.50"),
		CostPrice:         decimal.RequireFromString("7.25"),
		MinimumStockLevel: 2,
		CurrentStock:      stock,
		ReorderQuantity:   10,
		UnitMeasurement:   1,
		Barcode:           "BC-" + sku,
		SupplierID:        e.supplier.ID,
	}
}

func (e *testEnv) mustAddProduct(t *testing.T, sku string, stock int) *model.Product {
	t.Helper()
	p, err := e.catalog.AddProduct(context.Background(), e.productInput(sku, stock), testAdmin)
	if err != nil {
		t.Fatalf("add product %s: %v", sku, err)
	}
	return p
}

func (e *testEnv) stockOf(t *testing.T, sku string) int {
	t.Helper()
	p, err := e.products.FindBySKU(context.Background(), sku)
	if err != nil {
		t.Fatalf("find %s: %v", sku, err)
	}
	return p.CurrentStock
}

func (e *testEnv) entriesFor(t *testing.T, sku string) []model.StockTransaction {
	t.Helper()
	list, err := e.ledger.GetTransactionsForProduct(context.Background(), sku)
	if err != nil {
		t.Fatalf("transactions for %s: %v", sku, err)
	}
	return list
}
