package repository

import (
	"go-goldloan/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RepaymentRepository interface {
	Create(tx *gorm.DB, repayment *model.Repayment) error
	FindByLoan(loanID uuid.UUID) (*model.Repayment, error)
	FindByLoans(loanIDs []uuid.UUID) ([]model.Repayment, error)
	DeleteByLoan(tx *gorm.DB, loanID uuid.UUID) error
}

type repaymentRepo struct {
	db *gorm.DB
}

func NewRepaymentRepo(db *gorm.DB) RepaymentRepository {
	return &repaymentRepo{db}
}

func (r *repaymentRepo) Create(tx *gorm.DB, repayment *model.Repayment) error {
	return tx.Create(repayment).Error
}

func (r *repaymentRepo) FindByLoan(loanID uuid.UUID) (*model.Repayment, error) {
	var repayment model.Repayment
	err := r.db.First(&repayment, "loan_id = ?", loanID).Error
	if err != nil {
		return nil, err
	}
	return &repayment, nil
}

func (r *repaymentRepo) FindByLoans(loanIDs []uuid.UUID) ([]model.Repayment, error) {
	var repayments []model.Repayment
	if len(loanIDs) == 0 {
		return repayments, nil
	}
	err := r.db.Where("loan_id IN ?", loanIDs).Find(&repayments).Error
	return repayments, err
}

func (r *repaymentRepo) DeleteByLoan(tx *gorm.DB, loanID uuid.UUID) error {
	return tx.Delete(&model.Repayment{}, "loan_id = ?", loanID).Error
}
