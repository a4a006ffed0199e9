package service

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var (
	daysPerMonth = decimal.NewFromInt(30)
	hundred      = decimal.NewFromInt(100)
)

// InterestResult holds the accrual figures for a loan as of one instant.
type InterestResult struct {
	DaysDifference   int             `json:"days_difference"`
	MonthsDifference decimal.Decimal `json:"months_difference"`
	InterestAmount   int64           `json:"interest_amount"`
}

// CalculateInterest is the single authority for the amount owed on an
// active loan. Elapsed days are the ceiling of (asOf - loanDate), clamped
// at zero; months are days/30 (simple proration, not calendar-aware);
// interest = principal * percent * months / 100, rounded half-up to the
// whole rupee. Every quote and every settlement goes through here so the
// two can never disagree.
func CalculateInterest(principal int64, interestPercent float64, loanDate, asOf time.Time) InterestResult {
	days := int(math.Ceil(asOf.Sub(loanDate).Hours() / 24))
	if days < 0 {
		days = 0
	}

	months := decimal.NewFromInt(int64(days)).Div(daysPerMonth)
	interest := decimal.NewFromInt(principal).
		Mul(decimal.NewFromFloat(interestPercent)).
		Mul(months).
		Div(hundred).
		Round(0)

	return InterestResult{
		DaysDifference:   days,
		MonthsDifference: months,
		InterestAmount:   interest.IntPart(),
	}
}
