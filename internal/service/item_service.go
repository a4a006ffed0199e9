package service

import (
	"errors"

	"go-goldloan/internal/apperr"
	"go-goldloan/internal/model"
	"go-goldloan/internal/repository"
	"go-goldloan/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MasterItemInput struct {
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
	Carat    string `json:"carat"`
}

// ItemService manages the reusable master catalog. Billing items are
// created by the billing service and released by the repayment service;
// they are never edited here.
type ItemService interface {
	ListMaster() ([]model.Item, error)
	Create(in *MasterItemInput, actor string) (*model.Item, error)
	Update(id uuid.UUID, in *MasterItemInput, actor string) (*model.Item, error)
	Delete(id uuid.UUID) error
}

type itemService struct {
	items repository.ItemRepository
}

func NewItemService(items repository.ItemRepository) ItemService {
	return &itemService{items: items}
}

func (s *itemService) ListMaster() ([]model.Item, error) {
	return s.items.FindMaster()
}

func (s *itemService) Create(in *MasterItemInput, actor string) (*model.Item, error) {
	if msg := validator.FirstError(in); msg != "" {
		return nil, &apperr.ValidationError{Message: msg}
	}

	item := &model.Item{
		Code:     in.Code,
		Name:     in.Name,
		Category: in.Category,
		Carat:    in.Carat,
		Status:   model.ItemAvailable,
		ItemType: model.ItemMaster,
	}
	item.CreatedBy = actor
	item.UpdatedBy = actor

	if err := s.items.Create(item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apperr.DuplicateKeyError{Field: "item code", Value: in.Code}
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) Update(id uuid.UUID, in *MasterItemInput, actor string) (*model.Item, error) {
	if msg := validator.FirstError(in); msg != "" {
		return nil, &apperr.ValidationError{Message: msg}
	}

	item, err := s.items.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "item", Key: id.String()}
		}
		return nil, err
	}
	if item.ItemType != model.ItemMaster {
		return nil, &apperr.InvalidStateError{Entity: "item", Key: item.Code, State: string(item.ItemType)}
	}

	item.Code = in.Code
	item.Name = in.Name
	item.Category = in.Category
	item.Carat = in.Carat
	item.UpdatedBy = actor

	if err := s.items.Update(item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apperr.DuplicateKeyError{Field: "item code", Value: in.Code}
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) Delete(id uuid.UUID) error {
	item, err := s.items.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperr.NotFoundError{Entity: "item", Key: id.String()}
		}
		return err
	}
	if item.Status == model.ItemPledged {
		return &apperr.InvalidStateError{Entity: "item", Key: item.Code, State: string(item.Status)}
	}
	return s.items.Delete(id)
}
