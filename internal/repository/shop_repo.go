package repository

import (
	"go-goldloan/internal/model"

	"gorm.io/gorm"
)

type ShopRepository interface {
	// GetActive returns the single active shop profile.
	GetActive() (*model.ShopDetails, error)
	Save(details *model.ShopDetails) error
}

type shopRepo struct {
	db *gorm.DB
}

func NewShopRepo(db *gorm.DB) ShopRepository {
	return &shopRepo{db}
}

func (r *shopRepo) GetActive() (*model.ShopDetails, error) {
	var details model.ShopDetails
	err := r.db.First(&details, "is_active = ?", true).Error
	if err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *shopRepo) Save(details *model.ShopDetails) error {
	return r.db.Save(details).Error
}
