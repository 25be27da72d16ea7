package model

import "time"

// Supplier owns zero or more products. Contact channels are unique so the
// same vendor cannot be registered twice.
type Supplier struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"type:varchar(255);not null" json:"name"`
	ContactPersonName  string    `gorm:"type:varchar(255);not null" json:"contact_person_name"`
	ContactPersonEmail string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"contact_person_email"`
	ContactPersonPhone string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"contact_person_phone"`
	ContactPersonRole  string    `gorm:"type:varchar(100);not null" json:"contact_person_role"`
	Address            string    `gorm:"type:varchar(255);not null" json:"address"`
	Phone              string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"phone"`
	Email              string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Website            string    `gorm:"type:varchar(255)" json:"website"`
	IsActive           bool      `gorm:"not null;index" json:"is_active"`
	DateCreated        time.Time `gorm:"autoCreateTime" json:"date_created"`

	Products []Product `gorm:"foreignKey:SupplierID" json:"products,omitempty"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
