package model

import "time"

type TransactionKind string

const (
	TxIn     TransactionKind = "IN"
	TxOut    TransactionKind = "OUT"
	TxAdjust TransactionKind = "ADJUST"
)

// StockTransaction is an append-only ledger entry. Rows are inserted in the
// same database transaction that moves Product.CurrentStock and are never
// updated or deleted afterwards.
//
// IN and ADJUST: NewStock = PreviousStock + QuantityChange.
// OUT:           NewStock = PreviousStock - QuantityChange.
type StockTransaction struct {
	ID             uint            `gorm:"primaryKey;autoIncrement" json:"transaction_id"`
	ProductSKU     string          `gorm:"type:varchar(50);not null;index" json:"product_sku"`
	ActorKind      ActorKind       `gorm:"type:varchar(10);not null" json:"actor_kind"`
	ActorID        uint            `gorm:"not null;index" json:"user_id"`
	Date           time.Time       `gorm:"not null;index" json:"date"`
	ReasonTypeID   uint            `gorm:"not null;index" json:"reason_type_id"`
	Kind           TransactionKind `gorm:"type:varchar(10);not null" json:"kind"`
	QuantityChange int             `gorm:"not null" json:"quantity_change"`
	PreviousStock  int             `gorm:"not null" json:"previous_stock"`
	NewStock       int             `gorm:"not null" json:"new_stock"`

	Product    *Product    `gorm:"foreignKey:ProductSKU;references:SKU" json:"-"`
	ReasonType *ReasonType `gorm:"foreignKey:ReasonTypeID" json:"-"`
}

func (StockTransaction) TableName() string {
	return "stock_transactions"
}

// Consistent checks the snapshot arithmetic of the entry.
func (t *StockTransaction) Consistent() bool {
	if t.NewStock < 0 {
		return false
	}
	switch t.Kind {
	case TxIn:
		return t.QuantityChange > 0 && t.NewStock == t.PreviousStock+t.QuantityChange
	case TxOut:
		return t.QuantityChange > 0 && t.NewStock == t.PreviousStock-t.QuantityChange
	case TxAdjust:
		return t.QuantityChange != 0 && t.NewStock == t.PreviousStock+t.QuantityChange
	}
	return false
}
