package service

import (
	"errors"
	"fmt"
	"time"

	"go-goldloan/internal/apperr"
	"go-goldloan/internal/model"
	"go-goldloan/internal/repository"
	"go-goldloan/internal/ws"
	"go-goldloan/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxLoanCodeRetries bounds the regenerate-and-reinsert loop when two
// concurrent billings race for the same daily sequence number.
const maxLoanCodeRetries = 3

var errDuplicateLoanCode = errors.New("loan code already taken")

type CustomerInput struct {
	Name    string        `json:"name" validate:"required"`
	Phone   string        `json:"phone" validate:"required"`
	Address model.Address `json:"address"`
	Nominee string        `json:"nominee" validate:"required"`
}

type ItemInput struct {
	Code           string  `json:"code"`
	Name           string  `json:"name" validate:"required"`
	Category       string  `json:"category" validate:"required"`
	Carat          string  `json:"carat"`
	Weight         float64 `json:"weight" validate:"required,gt=0"`
	EstimatedValue int64   `json:"estimated_value" validate:"required,gt=0"`
}

type LoanInput struct {
	Amount          int64              `json:"amount" validate:"required,gt=0"`
	InterestType    model.InterestType `json:"interest_type" validate:"omitempty,oneof=daily monthly yearly"`
	InterestPercent float64            `json:"interest_percent" validate:"required,gt=0"`
	Validity        int                `json:"validity" validate:"required,gt=0"` // months
}

type BillingRequest struct {
	Customer CustomerInput      `json:"customer" validate:"required"`
	Items    []ItemInput        `json:"items" validate:"required,min=1,dive"`
	Loan     LoanInput          `json:"loan" validate:"required"`
	Payment  model.PaymentSplit `json:"payment"`
}

type BillingResult struct {
	LoanCode      string               `json:"loanId"`
	CustomerID    uuid.UUID            `json:"customerId"`
	BillingRecord *model.BillingRecord `json:"billingRecord"`
}

type BillingService interface {
	// CreateBilling atomically creates the customer (if new), the pledged
	// items, the loan and its ledger entries.
	CreateBilling(req *BillingRequest, actor string) (*BillingResult, error)
}

type billingService struct {
	customers repository.CustomerRepository
	items     repository.ItemRepository
	loans     repository.LoanRepository
	billings  repository.BillingRepository
	ledger    repository.LedgerRepository
	db        repository.TxRunner
	hub       *ws.Hub
	now       func() time.Time
}

func NewBillingService(
	customers repository.CustomerRepository,
	items repository.ItemRepository,
	loans repository.LoanRepository,
	billings repository.BillingRepository,
	ledger repository.LedgerRepository,
	db repository.TxRunner,
	hub *ws.Hub,
) BillingService {
	return &billingService{
		customers: customers,
		items:     items,
		loans:     loans,
		billings:  billings,
		ledger:    ledger,
		db:        db,
		hub:       hub,
		now:       time.Now,
	}
}

func (s *billingService) CreateBilling(req *BillingRequest, actor string) (*BillingResult, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, &apperr.ValidationError{Message: msg}
	}
	if req.Payment.Cash < 0 || req.Payment.Online < 0 {
		return nil, &apperr.ValidationError{Field: "payment", Message: "payment amounts must not be negative"}
	}
	if req.Payment.Total() > req.Loan.Amount {
		return nil, &apperr.ValidationError{Field: "payment", Message: "total payment cannot exceed loan amount"}
	}

	var result *BillingResult
	var err error
	for attempt := 0; attempt < maxLoanCodeRetries; attempt++ {
		result, err = s.createOnce(req, actor)
		if !errors.Is(err, errDuplicateLoanCode) {
			break
		}
	}
	if errors.Is(err, errDuplicateLoanCode) {
		return nil, fmt.Errorf("%w: could not allocate a loan code", apperr.ErrTransactionFailure)
	}
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Publish("billing_created", result)
	}
	return result, nil
}

// createOnce runs one attempt of the billing transaction. A loan-code
// collision aborts the whole unit and is retried by the caller with a
// regenerated code; every other error is final.
func (s *billingService) createOnce(req *BillingRequest, actor string) (*BillingResult, error) {
	var result BillingResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		customer, err := s.findOrCreateCustomer(tx, &req.Customer, actor)
		if err != nil {
			return err
		}

		now := s.now()
		items := make([]model.Item, len(req.Items))
		for i, in := range req.Items {
			items[i] = model.Item{
				Code:           billingItemCode(in.Code, now, i),
				Name:           in.Name,
				Category:       in.Category,
				Carat:          in.Carat,
				Weight:         in.Weight,
				EstimatedValue: in.EstimatedValue,
				Status:         model.ItemPledged,
				ItemType:       model.ItemBilling,
			}
			items[i].CreatedBy = actor
			items[i].UpdatedBy = actor
		}
		if err := s.items.CreateBatch(tx, items); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &apperr.DuplicateKeyError{Field: "item code", Value: req.Items[0].Code}
			}
			return err
		}

		code, err := GenerateLoanCode(tx, s.loans, now)
		if err != nil {
			return err
		}

		interestType := req.Loan.InterestType
		if interestType == "" {
			interestType = model.InterestMonthly
		}

		loan := &model.Loan{
			LoanID:          code,
			CustomerID:      customer.ID,
			Amount:          req.Loan.Amount,
			InterestType:    interestType,
			InterestPercent: req.Loan.InterestPercent,
			Validity:        req.Loan.Validity,
			LoanDate:        now,
			DueDate:         now.AddDate(0, req.Loan.Validity, 0),
			Payment:         req.Payment,
			Status:          model.LoanActive,
		}
		loan.CreatedBy = actor
		loan.UpdatedBy = actor
		if err := s.loans.Create(tx, loan); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicateLoanCode
			}
			return err
		}

		itemIDs := make([]uuid.UUID, len(items))
		for i := range items {
			itemIDs[i] = items[i].ID
		}
		if err := s.items.AssignLoan(tx, itemIDs, loan.ID); err != nil {
			return err
		}

		record := &model.BillingRecord{CustomerID: customer.ID, LoanRef: loan.ID}
		record.CreatedBy = actor
		if err := s.billings.Create(tx, record); err != nil {
			return err
		}

		if err := recordLedgerEntries(tx, s.ledger, loan.ID, model.EntryBilling, req.Payment, now, actor); err != nil {
			return err
		}

		result = BillingResult{
			LoanCode:      loan.LoanID,
			CustomerID:    customer.ID,
			BillingRecord: record,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *billingService) findOrCreateCustomer(tx *gorm.DB, in *CustomerInput, actor string) (*model.Customer, error) {
	customer, err := s.customers.FindByPhone(in.Phone)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer = &model.Customer{
		Name:     in.Name,
		Phone:    in.Phone,
		Address:  in.Address,
		Nominee:  in.Nominee,
		IsActive: true,
	}
	customer.CreatedBy = actor
	customer.UpdatedBy = actor
	if err := s.customers.Create(tx, customer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apperr.DuplicateKeyError{Field: "phone", Value: in.Phone}
		}
		return nil, err
	}
	return customer, nil
}

// billingItemCode makes pledged-article codes unique without colliding
// with the master catalog namespace.
func billingItemCode(base string, now time.Time, index int) string {
	if base == "" {
		base = "ITEM"
	}
	return fmt.Sprintf("%s_%d_%d", base, now.UnixMilli(), index)
}

// recordLedgerEntries appends one immutable entry per nonzero channel.
func recordLedgerEntries(tx *gorm.DB, ledger repository.LedgerRepository, loanID uuid.UUID, entryType model.EntryType, payment model.PaymentSplit, date time.Time, actor string) error {
	channels := []struct {
		mode   model.PaymentMode
		amount int64
	}{
		{model.ModeCash, payment.Cash},
		{model.ModeOnline, payment.Online},
	}
	for _, ch := range channels {
		if ch.amount <= 0 {
			continue
		}
		entry := &model.LedgerEntry{
			LoanRef: loanID,
			Type:    entryType,
			Mode:    ch.mode,
			Amount:  ch.amount,
			Date:    date,
		}
		entry.CreatedBy = actor
		if err := ledger.Record(tx, entry); err != nil {
			return err
		}
	}
	return nil
}
