package model

import (
	"time"

	"github.com/google/uuid"
)

type LoanStatus string

const (
	LoanActive LoanStatus = "active"
	// LoanRepaid is the terminal state; the source system calls it "inactive".
	LoanRepaid LoanStatus = "inactive"
)

type InterestType string

const (
	InterestDaily   InterestType = "daily"
	InterestMonthly InterestType = "monthly"
	InterestYearly  InterestType = "yearly"
)

// PaymentSplit is a cash/online breakdown of a single disbursal or repayment.
type PaymentSplit struct {
	Cash   int64 `gorm:"default:0" json:"cash" validate:"min=0"`
	Online int64 `gorm:"default:0" json:"online" validate:"min=0"`
}

func (p PaymentSplit) Total() int64 {
	return p.Cash + p.Online
}

// Loan is the central entity. Status transitions exactly once,
// active -> inactive, and only through the repayment service.
type Loan struct {
	BaseModel
	LoanID     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"loan_id"` // human-readable LNyymmddNNN
	CustomerID uuid.UUID `gorm:"type:uuid;index:idx_loans_customer_status;not null" json:"customer_id" validate:"uuid_required"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty" validate:"-"`
	Items      []Item    `gorm:"foreignKey:LoanID;references:ID" json:"items,omitempty" validate:"-"`

	Amount          int64        `gorm:"not null" json:"amount" validate:"required,gt=0"` // principal, whole rupees
	InterestType    InterestType `gorm:"type:varchar(10);default:'monthly'" json:"interest_type"`
	InterestPercent float64      `gorm:"not null" json:"interest_percent" validate:"required,gt=0"` // per month
	Validity        int          `gorm:"not null" json:"validity" validate:"required,gt=0"`         // term length in months
	LoanDate        time.Time    `gorm:"index;not null" json:"loan_date"`
	DueDate         time.Time    `gorm:"not null" json:"due_date"`
	Payment         PaymentSplit `gorm:"embedded;embeddedPrefix:payment_" json:"payment"` // disbursed at issuance
	Status          LoanStatus   `gorm:"type:varchar(10);default:'active';index:idx_loans_customer_status" json:"status"`
}

// Disbursed returns the total paid out at issuance (cash + online).
func (l *Loan) Disbursed() int64 {
	return l.Payment.Total()
}

// BillingRecord ties the entities created by one billing request together.
// The composed view (customer, loan, items) is assembled via preloads.
type BillingRecord struct {
	BaseModel
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	LoanRef    uuid.UUID `gorm:"type:uuid;index;not null;column:loan_id" json:"loan_ref"`
	Loan       *Loan     `gorm:"foreignKey:LoanRef;references:ID" json:"loan,omitempty"`
}
