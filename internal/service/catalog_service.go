package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"smart-inventory/internal/model"
	"smart-inventory/internal/repository"
)

// ProductInput describes a new product. CurrentStock is the opening quantity
// and is recorded in the ledger as a "Received" movement.
type ProductInput struct {
	SKU               string          `json:"sku" validate:"required,notblank,max=50"`
	Name              string          `json:"name" validate:"required,notblank,max=255"`
	Description       string          `json:"description" validate:"required,notblank,max=255"`
	Category          string          `json:"category" validate:"required,notblank,max=100"`
	UnitPrice         decimal.Decimal `json:"unit_price" validate:"gte=0"`
	CostPrice         decimal.Decimal `json:"cost_price" validate:"gte=0"`
	MinimumStockLevel int             `json:"minimum_stock_level" validate:"gte=0"`
	CurrentStock      int             `json:"current_stock" validate:"gte=0"`
	ReorderQuantity   int             `json:"reorder_quantity" validate:"gte=0"`
	UnitMeasurement   float64         `json:"unit_measurement" validate:"gte=0"`
	Barcode           string          `json:"barcode" validate:"max=100"`
	SupplierID        uint            `json:"supplier_id" validate:"required,gt=0"`
}

// ProductEdit is a partial update. Nil fields are left alone; the SKU and the
// current stock cannot be edited. Actor, when set, must name an existing
// account and is recorded as updated_by.
type ProductEdit struct {
	SKU               string           `json:"-" validate:"required,notblank"`
	Name              *string          `json:"name" validate:"omitempty,notblank,max=255"`
	Description       *string          `json:"description" validate:"omitempty,notblank,max=255"`
	Category          *string          `json:"category" validate:"omitempty,notblank,max=100"`
	UnitPrice         *decimal.Decimal `json:"unit_price" validate:"omitempty,gte=0"`
	CostPrice         *decimal.Decimal `json:"cost_price" validate:"omitempty,gte=0"`
	MinimumStockLevel *int             `json:"minimum_stock_level" validate:"omitempty,gte=0"`
	ReorderQuantity   *int             `json:"reorder_quantity" validate:"omitempty,gte=0"`
	UnitMeasurement   *float64         `json:"unit_measurement" validate:"omitempty,gte=0"`
	Barcode           *string          `json:"barcode" validate:"omitempty,max=100"`
	SupplierID        *uint            `json:"supplier_id" validate:"omitempty,gt=0"`
	Actor             string           `json:"actor"`
}

type CatalogService interface {
	AddProduct(ctx context.Context, in ProductInput, actor string) (*model.Product, error)
	EditProduct(ctx context.Context, edit ProductEdit) (*model.Product, error)
	ToggleActive(ctx context.Context, sku string) (*model.Product, error)
	GetBySku(ctx context.Context, sku string) (*model.Product, error)
	GetActive(ctx context.Context) ([]model.Product, error)
	GetDeactivated(ctx context.Context) ([]model.Product, error)

	CreateSupplier(ctx context.Context, in SupplierInput) (*model.Supplier, error)
	EditSupplier(ctx context.Context, id uint, in SupplierInput) (*model.Supplier, error)
	ToggleSupplierActive(ctx context.Context, id uint) (*model.Supplier, error)
	GetSupplier(ctx context.Context, id uint) (*model.Supplier, error)
	GetActiveSuppliers(ctx context.Context) ([]model.Supplier, error)
	GetDeactivatedSuppliers(ctx context.Context) ([]model.Supplier, error)
}

type catalogService struct {
	db        *gorm.DB
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	users     repository.UserRepository
	ledger    LedgerService
	events    EventPublisher
	log       *zap.Logger
}

func NewCatalogService(
	db *gorm.DB,
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	users repository.UserRepository,
	ledger LedgerService,
	events EventPublisher,
	log *zap.Logger,
) CatalogService {
	return &catalogService{
		db:        db,
		products:  products,
		suppliers: suppliers,
		users:     users,
		ledger:    ledger,
		events:    publisherOrNop(events),
		log:       log,
	}
}

// AddProduct creates the product and its opening ledger entry in one
// transaction. A product created with no stock gets no ledger entry.
func (s *catalogService) AddProduct(ctx context.Context, in ProductInput, actor string) (*model.Product, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, invalid("Actor", "required")
	}

	if _, _, err := s.users.FindActor(s.db.WithContext(ctx), actor); err != nil {
		return nil, storeErr(s.log, "find actor", err, ErrActorNotFound, nil)
	}
	if err := s.requireActiveSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}

	_, err := s.products.FindBySKU(ctx, in.SKU)
	if err == nil {
		return nil, ErrSKUExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr(s.log, "find product", err, nil, nil)
	}

	product := &model.Product{
		SKU:               in.SKU,
		Name:              in.Name,
		Description:       in.Description,
		Category:          in.Category,
		UnitPrice:         in.UnitPrice,
		CostPrice:         in.CostPrice,
		MinimumStockLevel: in.MinimumStockLevel,
		CurrentStock:      in.CurrentStock,
		ReorderQuantity:   in.ReorderQuantity,
		UnitMeasurement:   in.UnitMeasurement,
		Barcode:           in.Barcode,
		IsActive:          true,
		SupplierID:        in.SupplierID,
		Audit:             model.Audit{CreatedBy: actor, UpdatedBy: actor},
	}

	var opening *model.StockTransaction
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.products.Create(tx, product); err != nil {
			return storeErr(s.log, "create product", err, nil, ErrSKUExists)
		}
		if product.CurrentStock == 0 {
			return nil
		}
		var err error
		opening, err = s.ledger.RecordIncomingTx(ctx, tx, StockMovement{
			SKU:      product.SKU,
			Quantity: product.CurrentStock,
			Actor:    actor,
			Reason:   model.ReasonReceived,
		}, true)
		return err
	})
	if err != nil {
		if passThrough(err) {
			return nil, err
		}
		return nil, storeErr(s.log, "commit product", err, nil, ErrSKUExists)
	}

	s.log.Info("product created", zap.String("sku", product.SKU), zap.Int("opening_stock", product.CurrentStock))
	s.events.Publish(EventCatalogUpdate, ActionProductCreated,
		fmt.Sprintf("%s created product '%s'", actor, product.Name), product)
	if opening != nil {
		s.events.Publish(EventStockUpdate, ActionStockIn,
			fmt.Sprintf("%s received %d units of %s", actor, opening.QuantityChange, opening.ProductSKU), opening)
	}
	return product, nil
}

func (s *catalogService) requireActiveSupplier(ctx context.Context, id uint) error {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return storeErr(s.log, "find supplier", err, ErrSupplierNotFound, nil)
	}
	if !supplier.IsActive {
		return ErrSupplierInactive
	}
	return nil
}

// EditProduct applies the fields of edit that differ from the stored product.
// If none differ it returns ErrNoChanges and nothing is written, so
// LastUpdated stays as it was.
func (s *catalogService) EditProduct(ctx context.Context, edit ProductEdit) (*model.Product, error) {
	if err := validate(&edit); err != nil {
		return nil, err
	}

	current, err := s.products.FindBySKU(ctx, edit.SKU)
	if err != nil {
		return nil, storeErr(s.log, "find product", err, ErrProductNotFound, nil)
	}
	if edit.Actor != "" {
		if _, _, err := s.users.FindActor(s.db.WithContext(ctx), edit.Actor); err != nil {
			return nil, storeErr(s.log, "find actor", err, ErrActorNotFound, nil)
		}
	}

	fields := productChanges(current, &edit)
	if len(fields) == 0 {
		return nil, ErrNoChanges
	}
	if id, ok := fields["supplier_id"]; ok {
		if err := s.requireActiveSupplier(ctx, id.(uint)); err != nil {
			return nil, err
		}
	}
	if edit.Actor != "" {
		fields["updated_by"] = edit.Actor
	}

	if err := s.products.UpdateFields(ctx, edit.SKU, fields); err != nil {
		return nil, storeErr(s.log, "update product", err, ErrProductNotFound, nil)
	}

	updated, err := s.products.FindBySKU(ctx, edit.SKU)
	if err != nil {
		return nil, storeErr(s.log, "reload product", err, ErrProductNotFound, nil)
	}
	s.events.Publish(EventCatalogUpdate, ActionProductUpdated,
		fmt.Sprintf("product '%s' updated", updated.Name), updated)
	return updated, nil
}

// productChanges returns the columns whose requested value differs from p.
func productChanges(p *model.Product, e *ProductEdit) map[string]interface{} {
	fields := map[string]interface{}{}
	if e.Name != nil && *e.Name != p.Name {
		fields["name"] = *e.Name
	}
	if e.Description != nil && *e.Description != p.Description {
		fields["description"] = *e.Description
	}
	if e.Category != nil && *e.Category != p.Category {
		fields["category"] = *e.Category
	}
	if e.UnitPrice != nil && !e.UnitPrice.Equal(p.UnitPrice) {
		fields["unit_price"] = *e.UnitPrice
	}
	if e.CostPrice != nil && !e.CostPrice.Equal(p.CostPrice) {
		fields["cost_price"] = *e.CostPrice
	}
	if e.MinimumStockLevel != nil && *e.MinimumStockLevel != p.MinimumStockLevel {
		fields["minimum_stock_level"] = *e.MinimumStockLevel
	}
	if e.ReorderQuantity != nil && *e.ReorderQuantity != p.ReorderQuantity {
		fields["reorder_quantity"] = *e.ReorderQuantity
	}
	if e.UnitMeasurement != nil && *e.UnitMeasurement != p.UnitMeasurement {
		fields["unit_measurement"] = *e.UnitMeasurement
	}
	if e.Barcode != nil && *e.Barcode != p.Barcode {
		fields["barcode"] = *e.Barcode
	}
	if e.SupplierID != nil && *e.SupplierID != p.SupplierID {
		fields["supplier_id"] = *e.SupplierID
	}
	return fields
}

func (s *catalogService) ToggleActive(ctx context.Context, sku string) (*model.Product, error) {
	if err := s.products.ToggleActive(ctx, sku); err != nil {
		return nil, storeErr(s.log, "toggle product", err, ErrProductNotFound, nil)
	}
	product, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		return nil, storeErr(s.log, "reload product", err, ErrProductNotFound, nil)
	}
	s.events.Publish(EventCatalogUpdate, ActionProductToggled,
		fmt.Sprintf("product '%s' active=%t", product.Name, product.IsActive), product)
	return product, nil
}

func (s *catalogService) GetBySku(ctx context.Context, sku string) (*model.Product, error) {
	product, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		return nil, storeErr(s.log, "find product", err, ErrProductNotFound, nil)
	}
	return product, nil
}

func (s *catalogService) GetActive(ctx context.Context) ([]model.Product, error) {
	return s.listProducts(ctx, true)
}

func (s *catalogService) GetDeactivated(ctx context.Context) ([]model.Product, error) {
	return s.listProducts(ctx, false)
}

func (s *catalogService) listProducts(ctx context.Context, active bool) ([]model.Product, error) {
	products, err := s.products.FindByActive(ctx, active)
	if err != nil {
		return nil, storeErr(s.log, "list products", err, nil, nil)
	}
	return products, nil
}
