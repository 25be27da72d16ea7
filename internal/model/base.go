package model

// Audit tracks which account created and last changed a catalog row.
type Audit struct {
	CreatedBy string `gorm:"type:varchar(100)" json:"created_by"`
	UpdatedBy string `gorm:"type:varchar(100)" json:"updated_by"`
}

// All lists every persisted entity, in migration order.
func All() []interface{} {
	return []interface{}{
		&Permission{},
		&Role{},
		&Admin{},
		&Staff{},
		&Supplier{},
		&Product{},
		&ReasonType{},
		&StockTransaction{},
		&PurchaseOrder{},
		&PurchaseOrderItem{},
		&Forecast{},
	}
}
