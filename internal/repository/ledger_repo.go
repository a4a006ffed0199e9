package repository

import (
	"time"

	"go-goldloan/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerSummary aggregates money movement per event type and channel
// over a date range.
type LedgerSummary struct {
	BillingCash     int64 `json:"billing_cash"`
	BillingOnline   int64 `json:"billing_online"`
	RepaymentCash   int64 `json:"repayment_cash"`
	RepaymentOnline int64 `json:"repayment_online"`
}

// TotalDisbursed is the sum paid out at issuance over the range.
func (s LedgerSummary) TotalDisbursed() int64 {
	return s.BillingCash + s.BillingOnline
}

// TotalCollected is the sum received from settlements over the range.
func (s LedgerSummary) TotalCollected() int64 {
	return s.RepaymentCash + s.RepaymentOnline
}

type LedgerRepository interface {
	// Record appends one immutable entry. Entries are never updated or
	// removed outside of an admin purge of the owning loan.
	Record(tx *gorm.DB, entry *model.LedgerEntry) error
	FindByLoan(loanID uuid.UUID) ([]model.LedgerEntry, error)
	Find(from, to time.Time, loanID *uuid.UUID) ([]model.LedgerEntry, error)
	Summary(from, to time.Time) (*LedgerSummary, error)
	DeleteByLoan(tx *gorm.DB, loanID uuid.UUID) error
}

type ledgerRepo struct {
	db *gorm.DB
}

func NewLedgerRepo(db *gorm.DB) LedgerRepository {
	return &ledgerRepo{db}
}

func (r *ledgerRepo) Record(tx *gorm.DB, entry *model.LedgerEntry) error {
	return tx.Create(entry).Error
}

func (r *ledgerRepo) FindByLoan(loanID uuid.UUID) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	err := r.db.Where("loan_id = ?", loanID).Order("date ASC").Find(&entries).Error
	return entries, err
}

func (r *ledgerRepo) Find(from, to time.Time, loanID *uuid.UUID) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	q := r.db.Preload("Loan").Where("date BETWEEN ? AND ?", from, to)
	if loanID != nil {
		q = q.Where("loan_id = ?", *loanID)
	}
	err := q.Order("date DESC").Find(&entries).Error
	return entries, err
}

func (r *ledgerRepo) Summary(from, to time.Time) (*LedgerSummary, error) {
	var summary LedgerSummary

	type bucket struct {
		Type  model.EntryType
		Mode  model.PaymentMode
		Total int64
	}
	var buckets []bucket
	err := r.db.Model(&model.LedgerEntry{}).
		Select("type, mode, COALESCE(SUM(amount), 0) as total").
		Where("date BETWEEN ? AND ?", from, to).
		Group("type, mode").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}

	for _, b := range buckets {
		switch {
		case b.Type == model.EntryBilling && b.Mode == model.ModeCash:
			summary.BillingCash = b.Total
		case b.Type == model.EntryBilling && b.Mode == model.ModeOnline:
			summary.BillingOnline = b.Total
		case b.Type == model.EntryRepayment && b.Mode == model.ModeCash:
			summary.RepaymentCash = b.Total
		case b.Type == model.EntryRepayment && b.Mode == model.ModeOnline:
			summary.RepaymentOnline = b.Total
		}
	}
	return &summary, nil
}

func (r *ledgerRepo) DeleteByLoan(tx *gorm.DB, loanID uuid.UUID) error {
	return tx.Delete(&model.LedgerEntry{}, "loan_id = ?", loanID).Error
}
