package model

import "github.com/google/uuid"

type ItemStatus string

const (
	ItemAvailable ItemStatus = "available"
	ItemPledged   ItemStatus = "pledged"
	ItemReleased  ItemStatus = "released"
)

type ItemType string

const (
	ItemMaster  ItemType = "master"  // reusable catalog entry
	ItemBilling ItemType = "billing" // article pledged against a loan
)

// Item is either a master catalog entry or a pledged article.
// Invariant: Status == pledged iff LoanID points at an active loan.
type Item struct {
	BaseModel
	Code           string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"code"`
	Name           string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category       string     `gorm:"type:varchar(100);index" json:"category"`
	Carat          string     `gorm:"type:varchar(20)" json:"carat"`
	Weight         float64    `gorm:"default:0" json:"weight"`          // grams
	EstimatedValue int64      `gorm:"default:0" json:"estimated_value"` // whole rupees
	LoanID         *uuid.UUID `gorm:"type:uuid;index" json:"loan_id,omitempty"`
	Status         ItemStatus `gorm:"type:varchar(20);default:'available'" json:"status"`
	ItemType       ItemType   `gorm:"type:varchar(20);default:'master'" json:"item_type"`
}
