package model

import "github.com/google/uuid"

// Address is embedded into Customer (flattened columns with address_ prefix)
type Address struct {
	DoorNo   string `gorm:"type:varchar(50)" json:"door_no"`
	Street   string `gorm:"type:varchar(255)" json:"street"`
	Town     string `gorm:"type:varchar(100)" json:"town"`
	District string `gorm:"type:varchar(100)" json:"district"`
	Pincode  string `gorm:"type:varchar(10)" json:"pincode"`
}

type Customer struct {
	BaseModel
	Name     string  `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	Phone    string  `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone" validate:"required"`
	Address  Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Nominee  string  `gorm:"type:varchar(255)" json:"nominee" validate:"required"`
	IsActive bool    `gorm:"default:true" json:"is_active"`

	Loans []Loan `gorm:"foreignKey:CustomerID" json:"loans,omitempty"`
}

type EditType string

const (
	EditUpdate EditType = "UPDATE"
	EditDelete EditType = "DELETE"
)

// CustomerEditHistory is the append-only audit log for admin edits to a
// customer record. PreviousData/NewData hold JSON snapshots.
type CustomerEditHistory struct {
	BaseModel
	CustomerID   uuid.UUID `gorm:"type:uuid;index;not null" json:"customer_id"`
	EditedBy     string    `gorm:"type:varchar(255);not null" json:"edited_by"`
	EditType     EditType  `gorm:"type:varchar(10);not null" json:"edit_type"`
	PreviousData string    `gorm:"type:jsonb" json:"previous_data"`
	NewData      string    `gorm:"type:jsonb" json:"new_data"`
	Reason       string    `gorm:"type:text" json:"reason"`
}
