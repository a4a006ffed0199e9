package repository

import (
	"go-goldloan/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository interface {
	Create(tx *gorm.DB, loan *model.Loan) error
	// FindByIdentifier resolves either the human-readable loan code or the
	// internal UUID primary key.
	FindByIdentifier(identifier string) (*model.Loan, error)
	// LockByID reloads the loan row under FOR UPDATE inside tx. Concurrent
	// settlements of the same loan serialize here.
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Loan, error)
	FindByStatus(status model.LoanStatus) ([]model.Loan, error)
	FindByCustomer(customerID uuid.UUID) ([]model.Loan, error)
	CountActiveByCustomer(customerID uuid.UUID) (int64, error)
	FindActiveByCustomer(customerID uuid.UUID) (*model.Loan, error)
	// MaxLoanCode returns the highest issued loan code with the given
	// prefix, or "" if none exist.
	MaxLoanCode(tx *gorm.DB, prefix string) (string, error)
	UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.LoanStatus, updatedBy string) error
	Delete(tx *gorm.DB, id uuid.UUID, deletedBy string) error
}

type loanRepo struct {
	db *gorm.DB
}

func NewLoanRepo(db *gorm.DB) LoanRepository {
	return &loanRepo{db}
}

func (r *loanRepo) Create(tx *gorm.DB, loan *model.Loan) error {
	return tx.Create(loan).Error
}

func (r *loanRepo) FindByIdentifier(identifier string) (*model.Loan, error) {
	var loan model.Loan
	q := r.db.Preload("Customer").Preload("Items")
	if id, err := uuid.Parse(identifier); err == nil {
		q = q.Where("id = ? OR loan_id = ?", id, identifier)
	} else {
		q = q.Where("loan_id = ?", identifier)
	}
	if err := q.First(&loan).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Loan, error) {
	var loan model.Loan
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&loan, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepo) FindByStatus(status model.LoanStatus) ([]model.Loan, error) {
	var loans []model.Loan
	err := r.db.Preload("Customer").Preload("Items").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

func (r *loanRepo) FindByCustomer(customerID uuid.UUID) ([]model.Loan, error) {
	var loans []model.Loan
	err := r.db.Preload("Customer").Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

func (r *loanRepo) CountActiveByCustomer(customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Loan{}).
		Where("customer_id = ? AND status = ?", customerID, model.LoanActive).
		Count(&count).Error
	return count, err
}

func (r *loanRepo) FindActiveByCustomer(customerID uuid.UUID) (*model.Loan, error) {
	var loan model.Loan
	err := r.db.Preload("Customer").Preload("Items").
		Where("customer_id = ? AND status = ?", customerID, model.LoanActive).
		Order("created_at DESC").
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepo) MaxLoanCode(tx *gorm.DB, prefix string) (string, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var code *string
	err := db.Model(&model.Loan{}).
		Unscoped(). // soft-deleted loans still reserve their code
		Where("loan_id LIKE ?", prefix+"%").
		Select("MAX(loan_id)").
		Scan(&code).Error
	if err != nil || code == nil {
		return "", err
	}
	return *code, nil
}

func (r *loanRepo) UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.LoanStatus, updatedBy string) error {
	return tx.Model(&model.Loan{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

func (r *loanRepo) Delete(tx *gorm.DB, id uuid.UUID, deletedBy string) error {
	if err := tx.Model(&model.Loan{}).
		Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Loan{}, "id = ?", id).Error
}
