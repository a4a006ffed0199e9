package model

// ShopDetails holds the shop profile printed on invoices and reports.
// A single active row is kept; updates overwrite it in place.
type ShopDetails struct {
	BaseModel
	ShopName      string `gorm:"type:varchar(255);not null" json:"shop_name" validate:"required"`
	Address       string `gorm:"type:text;not null" json:"address" validate:"required"`
	Phone         string `gorm:"type:varchar(20);not null" json:"phone" validate:"required"`
	Email         string `gorm:"type:varchar(255);not null" json:"email" validate:"required,email"`
	GSTNumber     string `gorm:"type:varchar(30);not null" json:"gst_number" validate:"required"`
	LicenseNumber string `gorm:"type:varchar(50);not null" json:"license_number" validate:"required"`
	Location      string `gorm:"type:varchar(255);not null" json:"location" validate:"required"`
	AuditorName   string `gorm:"type:varchar(255)" json:"auditor_name"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
}
