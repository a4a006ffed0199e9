package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-goldloan/internal/apperr"
	"go-goldloan/internal/model"
	"go-goldloan/internal/repository"
	"go-goldloan/internal/ws"

	"gorm.io/gorm"
)

type RepaymentRequest struct {
	LoanID  string             `json:"loanId" validate:"required"`
	Payment model.PaymentSplit `json:"payment"`
}

// RepaymentReceipt is returned to the caller after a successful settlement
// and feeds the printable repayment invoice.
type RepaymentReceipt struct {
	LoanCode        string             `json:"loanId"`
	PrincipalAmount int64              `json:"principalAmount"`
	InterestAmount  int64              `json:"interestAmount"`
	TotalAmount     int64              `json:"totalAmount"`
	DaysPassed      int                `json:"daysPassed"`
	Payment         model.PaymentSplit `json:"payment"`
	RepaymentDate   time.Time          `json:"repaymentDate"`
}

type RepaymentService interface {
	// Repay settles an active loan. The paid total must equal the due
	// amount exactly; the repayment record, ledger entries, loan status
	// flip and item release land in one transaction or not at all.
	Repay(req *RepaymentRequest, actor string) (*RepaymentReceipt, error)
	// SearchActive finds the active loan for a repayment screen, by loan
	// code or by the customer's phone number, annotated with a live quote.
	SearchActive(identifier string) (*LoanView, error)
}

type repaymentService struct {
	loans      repository.LoanRepository
	items      repository.ItemRepository
	repayments repository.RepaymentRepository
	ledger     repository.LedgerRepository
	customers  repository.CustomerRepository
	db         repository.TxRunner
	hub        *ws.Hub
	now        func() time.Time
}

func NewRepaymentService(
	loans repository.LoanRepository,
	items repository.ItemRepository,
	repayments repository.RepaymentRepository,
	ledger repository.LedgerRepository,
	customers repository.CustomerRepository,
	db repository.TxRunner,
	hub *ws.Hub,
) RepaymentService {
	return &repaymentService{
		loans:      loans,
		items:      items,
		repayments: repayments,
		ledger:     ledger,
		customers:  customers,
		db:         db,
		hub:        hub,
		now:        time.Now,
	}
}

func (s *repaymentService) Repay(req *RepaymentRequest, actor string) (*RepaymentReceipt, error) {
	if req.LoanID == "" {
		return nil, &apperr.ValidationError{Field: "loanId", Message: "loan identifier is required"}
	}
	totalPaid := req.Payment.Total()
	if totalPaid <= 0 {
		return nil, &apperr.ValidationError{Field: "payment", Message: "payment amount must be greater than 0"}
	}
	if req.Payment.Cash < 0 || req.Payment.Online < 0 {
		return nil, &apperr.ValidationError{Field: "payment", Message: "payment amounts must not be negative"}
	}

	loan, err := s.loans.FindByIdentifier(req.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "loan", Key: req.LoanID}
		}
		return nil, err
	}

	var receipt *RepaymentReceipt
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Reload under FOR UPDATE so two settlements of the same loan
		// serialize; the status recheck below makes the loser fail.
		locked, err := s.loans.LockByID(tx, loan.ID)
		if err != nil {
			return err
		}
		if locked.Status != model.LoanActive {
			return &apperr.InvalidStateError{Entity: "loan", Key: locked.LoanID, State: string(locked.Status)}
		}

		asOf := s.now()
		accrual := CalculateInterest(locked.Amount, locked.InterestPercent, locked.LoanDate, asOf)
		totalDue := locked.Amount + accrual.InterestAmount
		if totalPaid != totalDue {
			return &apperr.PaymentMismatchError{Required: totalDue, Provided: totalPaid}
		}

		repayment := &model.Repayment{
			LoanRef:         locked.ID,
			PrincipalAmount: locked.Amount,
			InterestAmount:  accrual.InterestAmount,
			TotalAmount:     totalDue,
			Payment:         req.Payment,
			RepaymentDate:   asOf,
			DaysDifference:  accrual.DaysDifference,
		}
		repayment.CreatedBy = actor
		if err := s.repayments.Create(tx, repayment); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// The unique index on loan_id is the structural backstop
				// for the one-repayment-per-loan invariant.
				return &apperr.InvalidStateError{Entity: "loan", Key: locked.LoanID, State: string(model.LoanRepaid)}
			}
			return err
		}

		if err := recordLedgerEntries(tx, s.ledger, locked.ID, model.EntryRepayment, req.Payment, asOf, actor); err != nil {
			return err
		}

		if err := s.loans.UpdateStatus(tx, locked.ID, model.LoanRepaid, actor); err != nil {
			return err
		}

		if err := s.items.UpdateStatusByLoan(tx, locked.ID, model.ItemReleased); err != nil {
			return err
		}

		receipt = &RepaymentReceipt{
			LoanCode:        locked.LoanID,
			PrincipalAmount: locked.Amount,
			InterestAmount:  accrual.InterestAmount,
			TotalAmount:     totalDue,
			DaysPassed:      accrual.DaysDifference,
			Payment:         req.Payment,
			RepaymentDate:   asOf,
		}
		return nil
	})
	if err != nil {
		var (
			invalid  *apperr.InvalidStateError
			mismatch *apperr.PaymentMismatchError
		)
		if errors.As(err, &invalid) || errors.As(err, &mismatch) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: settlement of loan %s: %v", apperr.ErrTransactionFailure, loan.LoanID, err)
	}

	if s.hub != nil {
		s.hub.Publish("loan_settled", receipt)
	}
	return receipt, nil
}

func (s *repaymentService) SearchActive(identifier string) (*LoanView, error) {
	var loan *model.Loan
	var err error

	if strings.HasPrefix(identifier, "LN") {
		loan, err = s.loans.FindByIdentifier(identifier)
	} else {
		var customer *model.Customer
		customer, err = s.customers.FindByPhone(identifier)
		if err == nil {
			loan, err = s.loans.FindActiveByCustomer(customer.ID)
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "active loan", Key: identifier}
		}
		return nil, err
	}
	if loan.Status != model.LoanActive {
		return nil, &apperr.InvalidStateError{Entity: "loan", Key: loan.LoanID, State: string(loan.Status)}
	}

	accrual := CalculateInterest(loan.Amount, loan.InterestPercent, loan.LoanDate, s.now())
	return &LoanView{
		Loan:            *loan,
		CurrentInterest: accrual.InterestAmount,
		DaysPassed:      accrual.DaysDifference,
		TotalDue:        loan.Amount + accrual.InterestAmount,
	}, nil
}
