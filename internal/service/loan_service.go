package service

import (
	"errors"
	"fmt"
	"time"

	"go-goldloan/internal/apperr"
	"go-goldloan/internal/model"
	"go-goldloan/internal/repository"

	"gorm.io/gorm"
)

// QuoteResult is what an active loan currently owes.
type QuoteResult struct {
	InterestAmount int64 `json:"interestAmount"`
	DaysPassed     int   `json:"daysPassed"`
	TotalDue       int64 `json:"totalDue"`
}

// LoanView is a loan annotated for display: a live due-amount quote when
// active, the repayment record once settled.
type LoanView struct {
	model.Loan
	CurrentInterest  int64            `json:"current_interest,omitempty"`
	DaysPassed       int              `json:"days_passed,omitempty"`
	TotalDue         int64            `json:"total_due,omitempty"`
	RepaymentDetails *model.Repayment `json:"repayment_details,omitempty"`
}

type LoanService interface {
	GetByIdentifier(identifier string) (*LoanView, error)
	ListByStatus(status model.LoanStatus) ([]LoanView, error)
	SearchByPhone(phone string) ([]LoanView, error)
	// QuoteDue computes the amount owed on an active loan as of asOf.
	// Quoting a settled loan is an InvalidState error.
	QuoteDue(loan *model.Loan, asOf time.Time) (*QuoteResult, error)
	// Purge removes a settled loan and its dependent repayment, ledger and
	// item rows in one unit. Active loans cannot be purged.
	Purge(identifier, actor string) error
}

type loanService struct {
	loans      repository.LoanRepository
	customers  repository.CustomerRepository
	repayments repository.RepaymentRepository
	items      repository.ItemRepository
	ledger     repository.LedgerRepository
	billings   repository.BillingRepository
	db         repository.TxRunner
	now        func() time.Time
}

func NewLoanService(
	loans repository.LoanRepository,
	customers repository.CustomerRepository,
	repayments repository.RepaymentRepository,
	items repository.ItemRepository,
	ledger repository.LedgerRepository,
	billings repository.BillingRepository,
	db repository.TxRunner,
) LoanService {
	return &loanService{
		loans:      loans,
		customers:  customers,
		repayments: repayments,
		items:      items,
		ledger:     ledger,
		billings:   billings,
		db:         db,
		now:        time.Now,
	}
}

func (s *loanService) QuoteDue(loan *model.Loan, asOf time.Time) (*QuoteResult, error) {
	if loan.Status != model.LoanActive {
		return nil, &apperr.InvalidStateError{Entity: "loan", Key: loan.LoanID, State: string(loan.Status)}
	}
	res := CalculateInterest(loan.Amount, loan.InterestPercent, loan.LoanDate, asOf)
	return &QuoteResult{
		InterestAmount: res.InterestAmount,
		DaysPassed:     res.DaysDifference,
		TotalDue:       loan.Amount + res.InterestAmount,
	}, nil
}

func (s *loanService) GetByIdentifier(identifier string) (*LoanView, error) {
	loan, err := s.loans.FindByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "loan", Key: identifier}
		}
		return nil, err
	}
	view, err := s.annotate(loan)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *loanService) ListByStatus(status model.LoanStatus) ([]LoanView, error) {
	loans, err := s.loans.FindByStatus(status)
	if err != nil {
		return nil, err
	}
	return s.annotateAll(loans)
}

func (s *loanService) SearchByPhone(phone string) ([]LoanView, error) {
	customer, err := s.customers.FindByPhone(phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "customer", Key: phone}
		}
		return nil, err
	}
	loans, err := s.loans.FindByCustomer(customer.ID)
	if err != nil {
		return nil, err
	}
	return s.annotateAll(loans)
}

func (s *loanService) annotateAll(loans []model.Loan) ([]LoanView, error) {
	views := make([]LoanView, 0, len(loans))
	for i := range loans {
		view, err := s.annotate(&loans[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *loanService) annotate(loan *model.Loan) (*LoanView, error) {
	view := &LoanView{Loan: *loan}

	if loan.Status == model.LoanActive {
		quote, err := s.QuoteDue(loan, s.now())
		if err != nil {
			return nil, err
		}
		view.CurrentInterest = quote.InterestAmount
		view.DaysPassed = quote.DaysPassed
		view.TotalDue = quote.TotalDue
		return view, nil
	}

	repayment, err := s.repayments.FindByLoan(loan.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	view.RepaymentDetails = repayment
	return view, nil
}

func (s *loanService) Purge(identifier, actor string) error {
	loan, err := s.loans.FindByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperr.NotFoundError{Entity: "loan", Key: identifier}
		}
		return err
	}
	if loan.Status == model.LoanActive {
		return &apperr.InvalidStateError{Entity: "loan", Key: loan.LoanID, State: string(loan.Status)}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repayments.DeleteByLoan(tx, loan.ID); err != nil {
			return err
		}
		if err := s.ledger.DeleteByLoan(tx, loan.ID); err != nil {
			return err
		}
		if err := s.billings.DeleteByLoan(tx, loan.ID); err != nil {
			return err
		}
		if err := s.items.DeleteByLoan(tx, loan.ID); err != nil {
			return err
		}
		return s.loans.Delete(tx, loan.ID, actor)
	})
	if err != nil {
		return fmt.Errorf("%w: purge of loan %s: %v", apperr.ErrTransactionFailure, loan.LoanID, err)
	}
	return nil
}
