package model

import (
	"time"

	"github.com/google/uuid"
)

// Repayment is the immutable record of a loan settlement. The unique index
// on LoanRef is the structural guarantee that a loan settles at most once.
type Repayment struct {
	BaseModel
	LoanRef uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:loan_id" json:"loan_ref"`
	Loan    *Loan     `gorm:"foreignKey:LoanRef;references:ID" json:"loan,omitempty"`

	PrincipalAmount int64        `gorm:"not null" json:"principal_amount"`
	InterestAmount  int64        `gorm:"not null" json:"interest_amount"`
	TotalAmount     int64        `gorm:"not null" json:"total_amount"`
	Payment         PaymentSplit `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	RepaymentDate   time.Time    `gorm:"index;not null" json:"repayment_date"`
	DaysDifference  int          `gorm:"not null" json:"days_difference"` // elapsed days used for the interest calc
}
