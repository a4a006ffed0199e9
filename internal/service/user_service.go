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

type UserInput struct {
	Name       string     `json:"name" validate:"required"`
	Email      string     `json:"email" validate:"required,email"`
	Password   string     `json:"password"`
	Role       model.Role `json:"role" validate:"omitempty,oneof=admin manager"`
	Phone      string     `json:"phone"`
	Department string     `json:"department"`
	IsActive   *bool      `json:"is_active"`
}

type UserService interface {
	List() ([]model.UserResponse, error)
	Get(id uuid.UUID) (*model.UserResponse, error)
	Create(in *UserInput, actor string) (*model.UserResponse, error)
	Update(id uuid.UUID, in *UserInput, actor string) (*model.UserResponse, error)
	Delete(id uuid.UUID) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List() ([]model.UserResponse, error) {
	users, err := s.users.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	return responses, nil
}

func (s *userService) Get(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "user", Key: id.String()}
		}
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) Create(in *UserInput, actor string) (*model.UserResponse, error) {
	if msg := validator.FirstError(in); msg != "" {
		return nil, &apperr.ValidationError{Message: msg}
	}
	if in.Password == "" {
		return nil, &apperr.ValidationError{Field: "password", Message: "password is required"}
	}

	role := in.Role
	if role == "" {
		role = model.RoleManager
	}

	user := &model.User{
		Name:       in.Name,
		Email:      in.Email,
		Role:       role,
		Phone:      in.Phone,
		Department: in.Department,
		IsActive:   true,
	}
	user.CreatedBy = actor
	user.UpdatedBy = actor
	if err := user.SetPassword(in.Password); err != nil {
		return nil, err
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apperr.DuplicateKeyError{Field: "email", Value: in.Email}
		}
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) Update(id uuid.UUID, in *UserInput, actor string) (*model.UserResponse, error) {
	if msg := validator.FirstError(in); msg != "" {
		return nil, &apperr.ValidationError{Message: msg}
	}

	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "user", Key: id.String()}
		}
		return nil, err
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Phone = in.Phone
	user.Department = in.Department
	user.UpdatedBy = actor
	if in.Role != "" {
		user.Role = in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != "" {
		if err := user.SetPassword(in.Password); err != nil {
			return nil, err
		}
	}

	if err := s.users.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apperr.DuplicateKeyError{Field: "email", Value: in.Email}
		}
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) Delete(id uuid.UUID) error {
	if _, err := s.users.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperr.NotFoundError{Entity: "user", Key: id.String()}
		}
		return err
	}
	return s.users.Delete(id)
}
