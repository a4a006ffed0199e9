package model

import (
	"time"

	"github.com/google/uuid"
)

type EntryType string

const (
	EntryBilling   EntryType = "billing"
	EntryRepayment EntryType = "repayment"
)

type PaymentMode string

const (
	ModeCash   PaymentMode = "cash"
	ModeOnline PaymentMode = "online"
)

// LedgerEntry is an append-only record of money movement. One entry exists
// per nonzero payment channel per loan event; entries are never mutated.
type LedgerEntry struct {
	BaseModel
	LoanRef uuid.UUID `gorm:"type:uuid;index;not null;column:loan_id" json:"loan_ref"`
	Loan    *Loan     `gorm:"foreignKey:LoanRef;references:ID" json:"loan,omitempty"`

	Type   EntryType   `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=billing repayment"`
	Mode   PaymentMode `gorm:"type:varchar(10);not null" json:"mode" validate:"required,oneof=cash online"`
	Amount int64       `gorm:"not null" json:"amount" validate:"required,gt=0"`
	Date   time.Time   `gorm:"index;not null" json:"date"`
}
