package repository

import (
	"go-goldloan/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemRepository interface {
	CreateBatch(tx *gorm.DB, items []model.Item) error
	Create(item *model.Item) error
	FindByID(id uuid.UUID) (*model.Item, error)
	FindByCode(code string) (*model.Item, error)
	FindMaster() ([]model.Item, error)
	FindByLoan(loanID uuid.UUID) ([]model.Item, error)
	Update(item *model.Item) error
	Delete(id uuid.UUID) error
	// AssignLoan backfills the loan reference and pledges the items.
	AssignLoan(tx *gorm.DB, ids []uuid.UUID, loanID uuid.UUID) error
	// UpdateStatusByLoan flips every item pledged to the loan, in-transaction.
	UpdateStatusByLoan(tx *gorm.DB, loanID uuid.UUID, status model.ItemStatus) error
	DeleteByLoan(tx *gorm.DB, loanID uuid.UUID) error
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) CreateBatch(tx *gorm.DB, items []model.Item) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.Create(&items).Error
}

func (r *itemRepo) Create(item *model.Item) error {
	return r.db.Create(item).Error
}

func (r *itemRepo) FindByID(id uuid.UUID) (*model.Item, error) {
	var item model.Item
	err := r.db.First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindByCode(code string) (*model.Item, error) {
	var item model.Item
	err := r.db.First(&item, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindMaster() ([]model.Item, error) {
	var items []model.Item
	err := r.db.Where("item_type = ?", model.ItemMaster).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *itemRepo) FindByLoan(loanID uuid.UUID) ([]model.Item, error) {
	var items []model.Item
	err := r.db.Where("loan_id = ?", loanID).Find(&items).Error
	return items, err
}

func (r *itemRepo) Update(item *model.Item) error {
	return r.db.Save(item).Error
}

func (r *itemRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Item{}, "id = ?", id).Error
}

func (r *itemRepo) AssignLoan(tx *gorm.DB, ids []uuid.UUID, loanID uuid.UUID) error {
	return tx.Model(&model.Item{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"loan_id": loanID,
			"status":  model.ItemPledged,
		}).Error
}

func (r *itemRepo) UpdateStatusByLoan(tx *gorm.DB, loanID uuid.UUID, status model.ItemStatus) error {
	return tx.Model(&model.Item{}).
		Where("loan_id = ?", loanID).
		Update("status", status).Error
}

func (r *itemRepo) DeleteByLoan(tx *gorm.DB, loanID uuid.UUID) error {
	return tx.Delete(&model.Item{}, "loan_id = ?", loanID).Error
}
