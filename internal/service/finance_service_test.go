package service

import (
	"testing"
	"time"

	"go-goldloan/internal/apperr"
	"go-goldloan/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeFinanceRepo runs the models' BeforeSave hooks on save, like gorm does.
type fakeFinanceRepo struct {
	expenses map[string]*model.Expense
	sheets   map[string]*model.BalanceSheet
}

func newFakeFinanceRepo() *fakeFinanceRepo {
	return &fakeFinanceRepo{
		expenses: make(map[string]*model.Expense),
		sheets:   make(map[string]*model.BalanceSheet),
	}
}

func (f *fakeFinanceRepo) FindExpense(month, year int) (*model.Expense, error) {
	expense, ok := f.expenses[periodKey(month, year)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *expense
	return &copied, nil
}

func (f *fakeFinanceRepo) ListExpenses(year int) ([]model.Expense, error) {
	var out []model.Expense
	for _, expense := range f.expenses {
		if year == 0 || expense.Year == year {
			out = append(out, *expense)
		}
	}
	return out, nil
}

func (f *fakeFinanceRepo) SaveExpense(expense *model.Expense) error {
	if err := expense.BeforeSave(nil); err != nil {
		return err
	}
	stored := *expense
	f.expenses[periodKey(expense.Month, expense.Year)] = &stored
	return nil
}

func (f *fakeFinanceRepo) FindBalanceSheet(month, year int) (*model.BalanceSheet, error) {
	sheet, ok := f.sheets[periodKey(month, year)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *sheet
	return &copied, nil
}

func (f *fakeFinanceRepo) ListBalanceSheets(year int) ([]model.BalanceSheet, error) {
	var out []model.BalanceSheet
	for _, sheet := range f.sheets {
		if year == 0 || sheet.Year == year {
			out = append(out, *sheet)
		}
	}
	return out, nil
}

func (f *fakeFinanceRepo) SaveBalanceSheet(sheet *model.BalanceSheet) error {
	if err := sheet.BeforeSave(nil); err != nil {
		return err
	}
	stored := *sheet
	f.sheets[periodKey(sheet.Month, sheet.Year)] = &stored
	return nil
}

func TestUpsertExpense(t *testing.T) {
	finance := newFakeFinanceRepo()
	svc := NewFinanceService(finance, newFakeLedgerRepo())

	expense, err := svc.UpsertExpense(&ExpenseInput{
		Month:                8,
		Year:                 2026,
		Salaries:             30000,
		Rent:                 10000,
		Utilities:            2000,
		GoldAppraiserCharges: 1500,
	}, "admin@office")
	require.NoError(t, err)
	assert.Equal(t, int64(43500), expense.TotalExpenses)

	// Saving the same period again replaces, never duplicates.
	expense, err = svc.UpsertExpense(&ExpenseInput{
		Month:    8,
		Year:     2026,
		Salaries: 32000,
	}, "admin@office")
	require.NoError(t, err)
	assert.Equal(t, int64(32000), expense.TotalExpenses)
	assert.Len(t, finance.expenses, 1)

	_, err = svc.UpsertExpense(&ExpenseInput{Month: 13, Year: 2026}, "admin@office")
	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUpsertBalanceSheet(t *testing.T) {
	finance := newFakeFinanceRepo()
	svc := NewFinanceService(finance, newFakeLedgerRepo())

	t.Run("computes totals and net profit against recorded expenses", func(t *testing.T) {
		_, err := svc.UpsertExpense(&ExpenseInput{Month: 8, Year: 2026, Salaries: 40000}, "admin@office")
		require.NoError(t, err)

		sheet, err := svc.UpsertBalanceSheet(&BalanceSheetInput{
			Month:            8,
			Year:             2026,
			CashInHandBank:   200000,
			LoanReceivables:  500000,
			CustomerPayables: 100000,
			OwnersEquity:     600000,
			InterestIncome:   55000,
		}, "admin@office")
		require.NoError(t, err)

		assert.Equal(t, int64(700000), sheet.TotalAssets)
		assert.Equal(t, int64(700000), sheet.TotalLiabilitiesEquity)
		assert.Equal(t, int64(55000), sheet.TotalRevenue)
		assert.Equal(t, int64(15000), sheet.NetProfit) // 55000 - 40000
	})

	t.Run("net profit equals revenue when no expenses exist", func(t *testing.T) {
		sheet, err := svc.UpsertBalanceSheet(&BalanceSheetInput{
			Month:          9,
			Year:           2026,
			InterestIncome: 48000,
		}, "admin@office")
		require.NoError(t, err)
		assert.Equal(t, int64(48000), sheet.NetProfit)
	})
}

func TestTransactionSummary(t *testing.T) {
	ledger := newFakeLedgerRepo()
	svc := NewFinanceService(newFakeFinanceRepo(), ledger)

	day := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	loanID := uuid.New()
	entries := []model.LedgerEntry{
		{LoanRef: loanID, Type: model.EntryBilling, Mode: model.ModeCash, Amount: 30000, Date: day},
		{LoanRef: loanID, Type: model.EntryBilling, Mode: model.ModeOnline, Amount: 20000, Date: day},
		{LoanRef: loanID, Type: model.EntryRepayment, Mode: model.ModeCash, Amount: 52000, Date: day.AddDate(0, 0, 10)},
	}
	for i := range entries {
		require.NoError(t, ledger.Record(nil, &entries[i]))
	}

	summary, err := svc.TransactionSummary(day.AddDate(0, 0, -1), day.AddDate(0, 0, 30))
	require.NoError(t, err)
	assert.Equal(t, int64(50000), summary.TotalDisbursed())
	assert.Equal(t, int64(52000), summary.TotalCollected())

	// Range excludes the repayment.
	summary, err = svc.TransactionSummary(day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalCollected())

	filtered, err := svc.ListTransactions(day.AddDate(0, 0, -1), day.AddDate(0, 0, 30), &loanID)
	require.NoError(t, err)
	assert.Len(t, filtered, 3)
}
