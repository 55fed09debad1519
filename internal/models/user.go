package models

import "time"

// User represents a tenant account. Every domain row carries the owning
// user's id; no query may cross tenants.
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	CompanyName string     `json:"company_name"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	Budgets            []Budget            `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
	AnalyticalAccounts []AnalyticalAccount `gorm:"foreignKey:UserID" json:"analytical_accounts,omitempty"`
	Contacts           []Contact           `gorm:"foreignKey:UserID" json:"contacts,omitempty"`
}
