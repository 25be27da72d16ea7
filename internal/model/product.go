package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stock-keeping unit. CurrentStock is owned by the stock ledger
// and must not be written anywhere else.
type Product struct {
	SKU               string          `gorm:"type:varchar(50);primaryKey" json:"sku"`
	Name              string          `gorm:"type:varchar(255);not null" json:"name"`
	Description       string          `gorm:"type:varchar(255);not null" json:"description"`
	Category          string          `gorm:"type:varchar(100);not null;index" json:"category"`
	UnitPrice         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	CostPrice         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"cost_price"`
	MinimumStockLevel int             `gorm:"not null" json:"minimum_stock_level"`
	CurrentStock      int             `gorm:"not null;check:chk_products_current_stock,current_stock >= 0" json:"current_stock"`
	ReorderQuantity   int             `gorm:"not null" json:"reorder_quantity"`
	UnitMeasurement   float64         `gorm:"not null" json:"unit_measurement"`
	Barcode           string          `gorm:"type:varchar(100)" json:"barcode"`
	IsActive          bool            `gorm:"not null;index" json:"is_active"`
	DateCreated       time.Time       `gorm:"autoCreateTime" json:"date_created"`
	LastUpdated       time.Time       `gorm:"autoUpdateTime" json:"last_updated"`

	SupplierID uint      `gorm:"not null;index" json:"supplier_id"`
	Supplier   *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`

	Audit
}

func (Product) TableName() string {
	return "products"
}

// BelowMinimum reports whether the product needs reordering.
func (p *Product) BelowMinimum() bool {
	return p.CurrentStock < p.MinimumStockLevel
}
