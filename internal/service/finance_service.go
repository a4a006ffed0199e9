package service

import (
	"errors"
	"time"

	"go-goldloan/internal/apperr"
	"go-goldloan/internal/model"
	"go-goldloan/internal/repository"
	"go-goldloan/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseInput struct {
	Month                int   `json:"month" validate:"required,min=1,max=12"`
	Year                 int   `json:"year" validate:"required,min=2020"`
	Salaries             int64 `json:"salaries" validate:"min=0"`
	Rent                 int64 `json:"rent" validate:"min=0"`
	Utilities            int64 `json:"utilities" validate:"min=0"`
	Miscellaneous        int64 `json:"miscellaneous" validate:"min=0"`
	GoldAppraiserCharges int64 `json:"gold_appraiser_charges" validate:"min=0"`
	AccountingAuditFees  int64 `json:"accounting_audit_fees" validate:"min=0"`
}

type BalanceSheetInput struct {
	Month                int   `json:"month" validate:"required,min=1,max=12"`
	Year                 int   `json:"year" validate:"required,min=2020"`
	CashInHandBank       int64 `json:"cash_in_hand_bank" validate:"min=0"`
	LoanReceivables      int64 `json:"loan_receivables" validate:"min=0"`
	ForfeitedInventory   int64 `json:"forfeited_inventory" validate:"min=0"`
	FurnitureFixtures    int64 `json:"furniture_fixtures" validate:"min=0"`
	CustomerPayables     int64 `json:"customer_payables" validate:"min=0"`
	BankOverdraft        int64 `json:"bank_overdraft" validate:"min=0"`
	OwnersEquity         int64 `json:"owners_equity"`
	InterestIncome       int64 `json:"interest_income" validate:"min=0"`
	SaleOfForfeitedItems int64 `json:"sale_of_forfeited_items" validate:"min=0"`
}

// FinanceService owns the periodic financial records and the ledger
// day-book views consumed by audit reporting.
type FinanceService interface {
	UpsertExpense(in *ExpenseInput, actor string) (*model.Expense, error)
	GetExpense(month, year int) (*model.Expense, error)
	ListExpenses(year int) ([]model.Expense, error)

	UpsertBalanceSheet(in *BalanceSheetInput, actor string) (*model.BalanceSheet, error)
	GetBalanceSheet(month, year int) (*model.BalanceSheet, error)
	ListBalanceSheets(year int) ([]model.BalanceSheet, error)

	ListTransactions(from, to time.Time, loanID *uuid.UUID) ([]model.LedgerEntry, error)
	TransactionSummary(from, to time.Time) (*repository.LedgerSummary, error)
}

type financeService struct {
	finance repository.FinanceRepository
	ledger  repository.LedgerRepository
}

func NewFinanceService(finance repository.FinanceRepository, ledger repository.LedgerRepository) FinanceService {
	return &financeService{finance: finance, ledger: ledger}
}

func (s *financeService) UpsertExpense(in *ExpenseInput, actor string) (*model.Expense, error) {
	if msg := validator.FirstError(in); msg != "" {
		return nil, &apperr.ValidationError{Message: msg}
	}

	expense, err := s.finance.FindExpense(in.Month, in.Year)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		expense = &model.Expense{Month: in.Month, Year: in.Year}
		expense.CreatedBy = actor
	} else if err != nil {
		return nil, err
	}

	expense.Salaries = in.Salaries
	expense.Rent = in.Rent
	expense.Utilities = in.Utilities
	expense.Miscellaneous = in.Miscellaneous
	expense.GoldAppraiserCharges = in.GoldAppraiserCharges
	expense.AccountingAuditFees = in.AccountingAuditFees
	expense.UpdatedBy = actor

	// TotalExpenses is derived by the model's BeforeSave hook
	if err := s.finance.SaveExpense(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *financeService) GetExpense(month, year int) (*model.Expense, error) {
	expense, err := s.finance.FindExpense(month, year)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperr.NotFoundError{Entity: "expense record", Key: periodKey(month, year)}
	}
	return expense, err
}

func (s *financeService) ListExpenses(year int) ([]model.Expense, error) {
	return s.finance.ListExpenses(year)
}

func (s *financeService) UpsertBalanceSheet(in *BalanceSheetInput, actor string) (*model.BalanceSheet, error) {
	if msg := validator.FirstError(in); msg != "" {
		return nil, &apperr.ValidationError{Message: msg}
	}

	sheet, err := s.finance.FindBalanceSheet(in.Month, in.Year)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sheet = &model.BalanceSheet{Month: in.Month, Year: in.Year}
		sheet.CreatedBy = actor
	} else if err != nil {
		return nil, err
	}

	sheet.CashInHandBank = in.CashInHandBank
	sheet.LoanReceivables = in.LoanReceivables
	sheet.ForfeitedInventory = in.ForfeitedInventory
	sheet.FurnitureFixtures = in.FurnitureFixtures
	sheet.CustomerPayables = in.CustomerPayables
	sheet.BankOverdraft = in.BankOverdraft
	sheet.OwnersEquity = in.OwnersEquity
	sheet.InterestIncome = in.InterestIncome
	sheet.SaleOfForfeitedItems = in.SaleOfForfeitedItems
	sheet.UpdatedBy = actor

	// Net profit = revenue - the same period's expenses, when recorded
	revenue := in.InterestIncome + in.SaleOfForfeitedItems
	expense, err := s.finance.FindExpense(in.Month, in.Year)
	switch {
	case err == nil:
		sheet.NetProfit = revenue - expense.TotalExpenses
	case errors.Is(err, gorm.ErrRecordNotFound):
		sheet.NetProfit = revenue
	default:
		return nil, err
	}

	if err := s.finance.SaveBalanceSheet(sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *financeService) GetBalanceSheet(month, year int) (*model.BalanceSheet, error) {
	sheet, err := s.finance.FindBalanceSheet(month, year)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperr.NotFoundError{Entity: "balance sheet", Key: periodKey(month, year)}
	}
	return sheet, err
}

func (s *financeService) ListBalanceSheets(year int) ([]model.BalanceSheet, error) {
	return s.finance.ListBalanceSheets(year)
}

func (s *financeService) ListTransactions(from, to time.Time, loanID *uuid.UUID) ([]model.LedgerEntry, error) {
	return s.ledger.Find(from, to, loanID)
}

func (s *financeService) TransactionSummary(from, to time.Time) (*repository.LedgerSummary, error) {
	return s.ledger.Summary(from, to)
}

func periodKey(month, year int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
