package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Procurement and forecasting tables are migrated so the schema is complete,
// but no service writes to them yet.

type PurchaseOrderStatus string

const (
	PurchaseOrderDraft     PurchaseOrderStatus = "DRAFT"
	PurchaseOrderSubmitted PurchaseOrderStatus = "SUBMITTED"
	PurchaseOrderReceived  PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderCancelled PurchaseOrderStatus = "CANCELLED"
)

type PurchaseOrder struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	SupplierID uint                `gorm:"not null;index" json:"supplier_id"`
	OrderDate  time.Time           `gorm:"not null" json:"order_date"`
	Status     PurchaseOrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	TotalCost  decimal.Decimal     `gorm:"type:numeric(14,2);not null" json:"total_cost"`

	Supplier *Supplier           `gorm:"foreignKey:SupplierID" json:"-"`
	Items    []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

type PurchaseOrderItem struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	PurchaseOrderID  uint            `gorm:"not null;index" json:"purchase_order_id"`
	ProductSKU       string          `gorm:"type:varchar(50);not null;index" json:"product_sku"`
	QuantityOrdered  int             `gorm:"not null" json:"quantity_ordered"`
	UnitCost         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_cost"`
	TotalCost        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_cost"`
	QuantityReceived int             `gorm:"not null" json:"quantity_received"`
	ReceivedDate     *time.Time      `json:"received_date,omitempty"`

	Product *Product `gorm:"foreignKey:ProductSKU;references:SKU" json:"-"`
}

func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

type Forecast struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ProductSKU         string    `gorm:"type:varchar(50);not null;index" json:"product_sku"`
	ForecastDate       time.Time `gorm:"not null" json:"forecast_date"`
	ForecastedQuantity int       `gorm:"not null" json:"forecasted_quantity"`
	GeneratedOn        time.Time `gorm:"not null" json:"generated_on"`
	MethodUsed         string    `gorm:"type:varchar(50)" json:"method_used"`
}

func (Forecast) TableName() string {
	return "forecasts"
}
