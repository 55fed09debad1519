package models

// AnalyticalAccount is a cost/revenue center tag used for management
// accounting rollups. Codes are unique per tenant.
type AnalyticalAccount struct {
	Base
	UserID uint   `gorm:"not null;uniqueIndex:idx_analytical_accounts_user_code" json:"user_id"`
	Code   string `gorm:"not null;uniqueIndex:idx_analytical_accounts_user_code" json:"code"`
	Name   string `gorm:"not null" json:"name"`

	BudgetLines []BudgetLine `gorm:"foreignKey:AnalyticalAccountID" json:"budget_lines,omitempty"`
}
