package models

// ModelStatus represents the lifecycle status of an auto-analytical rule.
// Only confirmed rules participate in matching.
type ModelStatus string

const (
	ModelStatusDraft     ModelStatus = "draft"
	ModelStatusConfirm   ModelStatus = "confirm"
	ModelStatusCancelled ModelStatus = "cancelled"
)

// AutoAnalyticalModel maps an optional partner and/or product category to a
// target analytical account. A rule with neither criterion is a wildcard
// fallback.
type AutoAnalyticalModel struct {
	Base
	UserID              uint        `gorm:"not null;index" json:"user_id"`
	PartnerID           *uint       `json:"partner_id,omitempty"`
	ProductCategory     *string     `json:"product_category,omitempty"`
	AnalyticalAccountID uint        `gorm:"not null" json:"analytical_account_id"`
	Status              ModelStatus `gorm:"not null;default:draft" json:"status"`

	Partner           *Contact          `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
	AnalyticalAccount AnalyticalAccount `gorm:"foreignKey:AnalyticalAccountID" json:"analytical_account,omitempty"`
}
