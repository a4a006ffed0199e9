package model

import "gorm.io/gorm"

// Expense is the monthly expense register. One row per (month, year).
type Expense struct {
	BaseModel
	Month int `gorm:"not null;uniqueIndex:idx_expenses_month_year" json:"month" validate:"required,min=1,max=12"`
	Year  int `gorm:"not null;uniqueIndex:idx_expenses_month_year" json:"year" validate:"required,min=2020"`

	Salaries             int64 `gorm:"default:0" json:"salaries" validate:"min=0"`
	Rent                 int64 `gorm:"default:0" json:"rent" validate:"min=0"`
	Utilities            int64 `gorm:"default:0" json:"utilities" validate:"min=0"`
	Miscellaneous        int64 `gorm:"default:0" json:"miscellaneous" validate:"min=0"`
	GoldAppraiserCharges int64 `gorm:"default:0" json:"gold_appraiser_charges" validate:"min=0"`
	AccountingAuditFees  int64 `gorm:"default:0" json:"accounting_audit_fees" validate:"min=0"`
	TotalExpenses        int64 `gorm:"default:0" json:"total_expenses"`
}

// BeforeSave recomputes the derived total so it can never drift from the parts.
func (e *Expense) BeforeSave(tx *gorm.DB) error {
	e.TotalExpenses = e.Salaries + e.Rent + e.Utilities + e.Miscellaneous +
		e.GoldAppraiserCharges + e.AccountingAuditFees
	return nil
}

// BalanceSheet is the monthly balance sheet. One row per (month, year).
type BalanceSheet struct {
	BaseModel
	Month int `gorm:"not null;uniqueIndex:idx_balance_sheets_month_year" json:"month" validate:"required,min=1,max=12"`
	Year  int `gorm:"not null;uniqueIndex:idx_balance_sheets_month_year" json:"year" validate:"required,min=2020"`

	// Assets
	CashInHandBank     int64 `gorm:"default:0" json:"cash_in_hand_bank" validate:"min=0"`
	LoanReceivables    int64 `gorm:"default:0" json:"loan_receivables" validate:"min=0"`
	ForfeitedInventory int64 `gorm:"default:0" json:"forfeited_inventory" validate:"min=0"`
	FurnitureFixtures  int64 `gorm:"default:0" json:"furniture_fixtures" validate:"min=0"`
	TotalAssets        int64 `gorm:"default:0" json:"total_assets"`

	// Liabilities & equity
	CustomerPayables       int64 `gorm:"default:0" json:"customer_payables" validate:"min=0"`
	BankOverdraft          int64 `gorm:"default:0" json:"bank_overdraft" validate:"min=0"`
	OwnersEquity           int64 `gorm:"default:0" json:"owners_equity"`
	TotalLiabilitiesEquity int64 `gorm:"default:0" json:"total_liabilities_equity"`

	// Revenue
	InterestIncome       int64 `gorm:"default:0" json:"interest_income" validate:"min=0"`
	SaleOfForfeitedItems int64 `gorm:"default:0" json:"sale_of_forfeited_items" validate:"min=0"`
	TotalRevenue         int64 `gorm:"default:0" json:"total_revenue"`

	// Net profit = revenue - that month's expenses (set by the finance service)
	NetProfit int64 `gorm:"default:0" json:"net_profit"`
}

// BeforeSave recomputes the derived totals.
func (b *BalanceSheet) BeforeSave(tx *gorm.DB) error {
	b.TotalAssets = b.CashInHandBank + b.LoanReceivables + b.ForfeitedInventory + b.FurnitureFixtures
	b.TotalLiabilitiesEquity = b.CustomerPayables + b.BankOverdraft + b.OwnersEquity
	b.TotalRevenue = b.InterestIncome + b.SaleOfForfeitedItems
	return nil
}
