package models

// ContactType distinguishes customers from vendors.
type ContactType string

const (
	ContactTypeCustomer ContactType = "customer"
	ContactTypeVendor   ContactType = "vendor"
)

// Contact represents a business partner (customer or vendor), referenced by
// auto-analytical rules as the partner criterion.
type Contact struct {
	Base
	UserID uint        `gorm:"not null;index" json:"user_id"`
	Name   string      `gorm:"not null" json:"name"`
	Type   ContactType `gorm:"default:customer" json:"type"`
	Email  string      `json:"email"`
	Phone  string      `json:"phone"`
	City   string      `json:"city"`
}
