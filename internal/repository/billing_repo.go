package repository

import (
	"go-goldloan/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillingRepository interface {
	Create(tx *gorm.DB, record *model.BillingRecord) error
	FindByLoan(loanID uuid.UUID) (*model.BillingRecord, error)
	DeleteByLoan(tx *gorm.DB, loanID uuid.UUID) error
}

type billingRepo struct {
	db *gorm.DB
}

func NewBillingRepo(db *gorm.DB) BillingRepository {
	return &billingRepo{db}
}

func (r *billingRepo) Create(tx *gorm.DB, record *model.BillingRecord) error {
	return tx.Create(record).Error
}

func (r *billingRepo) FindByLoan(loanID uuid.UUID) (*model.BillingRecord, error) {
	var record model.BillingRecord
	err := r.db.Preload("Customer").Preload("Loan").Preload("Loan.Items").
		First(&record, "loan_id = ?", loanID).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *billingRepo) DeleteByLoan(tx *gorm.DB, loanID uuid.UUID) error {
	return tx.Delete(&model.BillingRecord{}, "loan_id = ?", loanID).Error
}
