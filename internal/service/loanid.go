package service

import (
	"fmt"
	"strconv"
	"time"

	"go-goldloan/internal/repository"

	"gorm.io/gorm"
)

// Loan codes look like LN250827001: "LN", yymmdd, 3-digit daily sequence.
const loanCodeSeqDigits = 3

func loanCodePrefix(day time.Time) string {
	return "LN" + day.Format("060102")
}

// nextLoanCode derives the next identifier for the day from the highest
// code already issued. lastCode == "" means no loans were issued today.
func nextLoanCode(day time.Time, lastCode string) string {
	prefix := loanCodePrefix(day)
	seq := 1
	if len(lastCode) == len(prefix)+loanCodeSeqDigits {
		if n, err := strconv.Atoi(lastCode[len(lastCode)-loanCodeSeqDigits:]); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, loanCodeSeqDigits, seq)
}

// GenerateLoanCode produces the next human-readable loan identifier.
// The read-max-then-insert sequence is a check-then-act race under
// concurrent billing; the unique index on loan_id is the backstop and the
// caller retries with a fresh code on a duplicate-key insert error.
func GenerateLoanCode(tx *gorm.DB, loans repository.LoanRepository, day time.Time) (string, error) {
	last, err := loans.MaxLoanCode(tx, loanCodePrefix(day))
	if err != nil {
		return "", err
	}
	return nextLoanCode(day, last), nil
}
