package model

// ReasonType explains why a stock movement happened.
type ReasonType struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Reason string `gorm:"type:varchar(50);uniqueIndex;not null" json:"reason"`
}

func (ReasonType) TableName() string {
	return "reason_types"
}

// Seeded reasons. ReasonReceived is used for the opening entry of new products.
const (
	ReasonReceived = "Received"
	ReasonIssued   = "Issued"
	ReasonAdjusted = "Adjusted"
	ReasonDamaged  = "Damaged"
	ReasonReturned = "Returned"
)

var DefaultReasonTypes = []ReasonType{
	{Reason: ReasonReceived},
	{Reason: ReasonIssued},
	{Reason: ReasonAdjusted},
	{Reason: ReasonDamaged},
	{Reason: ReasonReturned},
}
