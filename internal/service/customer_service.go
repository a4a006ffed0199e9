package service

import (
	"encoding/json"
	"errors"

	"go-goldloan/internal/apperr"
	"go-goldloan/internal/model"
	"go-goldloan/internal/repository"
	"go-goldloan/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerSummary is a list row: the customer plus a derived loan status
// (active = has an active loan, repaid = only settled loans, inactive =
// never borrowed).
type CustomerSummary struct {
	model.Customer
	LoanStatus string `json:"loan_status"`
}

// CustomerDetail is the full drill-down view.
type CustomerDetail struct {
	Customer   model.Customer    `json:"customer"`
	Loans      []model.Loan      `json:"loans"`
	Repayments []model.Repayment `json:"repayments"`
}

type CustomerUpdateInput struct {
	Name    string        `json:"name" validate:"required"`
	Phone   string        `json:"phone" validate:"required"`
	Address model.Address `json:"address"`
	Nominee string        `json:"nominee" validate:"required"`
	Reason  string        `json:"reason"`
}

type CustomerService interface {
	List(search, status string, page, limit int) ([]CustomerSummary, int64, error)
	Get(id uuid.UUID) (*CustomerDetail, error)
	// Update applies an admin edit and appends a history row holding the
	// previous and new snapshots.
	Update(id uuid.UUID, in *CustomerUpdateInput, actor string) (*model.Customer, error)
	// Delete soft-deletes the customer. Refused while active loans exist.
	Delete(id uuid.UUID, actor, reason string) error
	History(id uuid.UUID) ([]model.CustomerEditHistory, error)
}

type customerService struct {
	customers  repository.CustomerRepository
	loans      repository.LoanRepository
	repayments repository.RepaymentRepository
}

func NewCustomerService(
	customers repository.CustomerRepository,
	loans repository.LoanRepository,
	repayments repository.RepaymentRepository,
) CustomerService {
	return &customerService{
		customers:  customers,
		loans:      loans,
		repayments: repayments,
	}
}

func (s *customerService) List(search, status string, page, limit int) ([]CustomerSummary, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	customers, total, err := s.customers.Search(search, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]CustomerSummary, 0, len(customers))
	for i := range customers {
		loanStatus, err := s.deriveLoanStatus(customers[i].ID)
		if err != nil {
			return nil, 0, err
		}
		if status != "" && status != "all" && status != loanStatus {
			continue
		}
		summaries = append(summaries, CustomerSummary{Customer: customers[i], LoanStatus: loanStatus})
	}
	return summaries, total, nil
}

func (s *customerService) deriveLoanStatus(customerID uuid.UUID) (string, error) {
	active, err := s.loans.CountActiveByCustomer(customerID)
	if err != nil {
		return "", err
	}
	if active > 0 {
		return "active", nil
	}

	loans, err := s.loans.FindByCustomer(customerID)
	if err != nil {
		return "", err
	}
	ids := make([]uuid.UUID, len(loans))
	for i := range loans {
		ids[i] = loans[i].ID
	}
	repayments, err := s.repayments.FindByLoans(ids)
	if err != nil {
		return "", err
	}
	if len(repayments) > 0 {
		return "repaid", nil
	}
	return "inactive", nil
}

func (s *customerService) Get(id uuid.UUID) (*CustomerDetail, error) {
	customer, err := s.customers.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "customer", Key: id.String()}
		}
		return nil, err
	}

	loans, err := s.loans.FindByCustomer(id)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(loans))
	for i := range loans {
		ids[i] = loans[i].ID
	}
	repayments, err := s.repayments.FindByLoans(ids)
	if err != nil {
		return nil, err
	}

	return &CustomerDetail{Customer: *customer, Loans: loans, Repayments: repayments}, nil
}

func (s *customerService) Update(id uuid.UUID, in *CustomerUpdateInput, actor string) (*model.Customer, error) {
	if msg := validator.FirstError(in); msg != "" {
		return nil, &apperr.ValidationError{Message: msg}
	}

	customer, err := s.customers.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "customer", Key: id.String()}
		}
		return nil, err
	}

	previous, _ := json.Marshal(customer)

	customer.Name = in.Name
	customer.Phone = in.Phone
	customer.Address = in.Address
	customer.Nominee = in.Nominee
	customer.UpdatedBy = actor

	if err := s.customers.Update(customer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apperr.DuplicateKeyError{Field: "phone", Value: in.Phone}
		}
		return nil, err
	}

	updated, _ := json.Marshal(customer)
	history := &model.CustomerEditHistory{
		CustomerID:   customer.ID,
		EditedBy:     actor,
		EditType:     model.EditUpdate,
		PreviousData: string(previous),
		NewData:      string(updated),
		Reason:       in.Reason,
	}
	if err := s.customers.RecordEdit(history); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Delete(id uuid.UUID, actor, reason string) error {
	customer, err := s.customers.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperr.NotFoundError{Entity: "customer", Key: id.String()}
		}
		return err
	}

	active, err := s.loans.CountActiveByCustomer(id)
	if err != nil {
		return err
	}
	if active > 0 {
		return &apperr.InvalidStateError{Entity: "customer", Key: customer.Phone, State: "has active loans"}
	}

	previous, _ := json.Marshal(customer)
	history := &model.CustomerEditHistory{
		CustomerID:   customer.ID,
		EditedBy:     actor,
		EditType:     model.EditDelete,
		PreviousData: string(previous),
		Reason:       reason,
	}
	if err := s.customers.RecordEdit(history); err != nil {
		return err
	}
	return s.customers.Delete(id, actor)
}

func (s *customerService) History(id uuid.UUID) ([]model.CustomerEditHistory, error) {
	return s.customers.HistoryByCustomer(id)
}
