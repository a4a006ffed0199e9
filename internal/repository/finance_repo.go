package repository

import (
	"go-goldloan/internal/model"

	"gorm.io/gorm"
)

type FinanceRepository interface {
	FindExpense(month, year int) (*model.Expense, error)
	ListExpenses(year int) ([]model.Expense, error)
	SaveExpense(expense *model.Expense) error

	FindBalanceSheet(month, year int) (*model.BalanceSheet, error)
	ListBalanceSheets(year int) ([]model.BalanceSheet, error)
	SaveBalanceSheet(sheet *model.BalanceSheet) error
}

type financeRepo struct {
	db *gorm.DB
}

func NewFinanceRepo(db *gorm.DB) FinanceRepository {
	return &financeRepo{db}
}

func (r *financeRepo) FindExpense(month, year int) (*model.Expense, error) {
	var expense model.Expense
	err := r.db.First(&expense, "month = ? AND year = ?", month, year).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *financeRepo) ListExpenses(year int) ([]model.Expense, error) {
	var expenses []model.Expense
	q := r.db.Order("year DESC, month DESC")
	if year > 0 {
		q = q.Where("year = ?", year)
	}
	err := q.Find(&expenses).Error
	return expenses, err
}

func (r *financeRepo) SaveExpense(expense *model.Expense) error {
	return r.db.Save(expense).Error
}

func (r *financeRepo) FindBalanceSheet(month, year int) (*model.BalanceSheet, error) {
	var sheet model.BalanceSheet
	err := r.db.First(&sheet, "month = ? AND year = ?", month, year).Error
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (r *financeRepo) ListBalanceSheets(year int) ([]model.BalanceSheet, error) {
	var sheets []model.BalanceSheet
	q := r.db.Order("year DESC, month DESC")
	if year > 0 {
		q = q.Where("year = ?", year)
	}
	err := q.Find(&sheets).Error
	return sheets, err
}

func (r *financeRepo) SaveBalanceSheet(sheet *model.BalanceSheet) error {
	return r.db.Save(sheet).Error
}
