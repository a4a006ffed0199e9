package repository

import (
	"database/sql"

	"gorm.io/gorm"
)

// TxRunner runs a function inside a database transaction. *gorm.DB
// satisfies it; tests substitute an in-memory runner.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}
