package repository

import (
	"go-goldloan/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(tx *gorm.DB, customer *model.Customer) error
	FindByID(id uuid.UUID) (*model.Customer, error)
	FindByPhone(phone string) (*model.Customer, error)
	// Search filters by name or phone substring; returns the page plus the
	// total match count for pagination.
	Search(query string, offset, limit int) ([]model.Customer, int64, error)
	Update(customer *model.Customer) error
	Delete(id uuid.UUID, deletedBy string) error
	RecordEdit(history *model.CustomerEditHistory) error
	HistoryByCustomer(customerID uuid.UUID) ([]model.CustomerEditHistory, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(tx *gorm.DB, customer *model.Customer) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.Create(customer).Error
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) FindByPhone(phone string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "phone = ?", phone).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) Search(query string, offset, limit int) ([]model.Customer, int64, error) {
	var customers []model.Customer
	var total int64

	q := r.db.Model(&model.Customer{})
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("name ILIKE ? OR phone ILIKE ?", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&customers).Error
	return customers, total, err
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Customer{}).
			Where("id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Customer{}, "id = ?", id).Error
	})
}

func (r *customerRepo) RecordEdit(history *model.CustomerEditHistory) error {
	return r.db.Create(history).Error
}

func (r *customerRepo) HistoryByCustomer(customerID uuid.UUID) ([]model.CustomerEditHistory, error) {
	var histories []model.CustomerEditHistory
	err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&histories).Error
	return histories, err
}
