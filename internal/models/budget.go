package models

import "time"

// BudgetStatus represents the lifecycle state of a budget.
type BudgetStatus string

const (
	BudgetStatusDraft    BudgetStatus = "draft"
	BudgetStatusConfirm  BudgetStatus = "confirm"
	BudgetStatusRevised  BudgetStatus = "revised"
	BudgetStatusArchived BudgetStatus = "archived"
)

// budgetTransitions is the set of legal status transitions. A budget only
// re-enters draft through revision, which creates a new row; no row ever
// moves backward.
var budgetTransitions = map[BudgetStatus][]BudgetStatus{
	BudgetStatusDraft:   {BudgetStatusConfirm, BudgetStatusArchived},
	BudgetStatusConfirm: {BudgetStatusRevised, BudgetStatusArchived},
}

// CanTransitionTo reports whether moving from s to target is legal.
// The identity transition is always allowed.
func (s BudgetStatus) CanTransitionTo(target BudgetStatus) bool {
	if s == target {
		return true
	}
	for _, t := range budgetTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// BudgetLineType marks a line as income or expense planning.
type BudgetLineType string

const (
	BudgetLineTypeIncome  BudgetLineType = "income"
	BudgetLineTypeExpense BudgetLineType = "expense"
)

// Budget represents a planning period for one tenant. TotalAchieved is a
// cached sum maintained by the achievement recalculation; TotalPlanned is
// computed at read time.
type Budget struct {
	Base
	UserID        uint         `gorm:"not null;index" json:"user_id"`
	Name          string       `gorm:"not null" json:"name"`
	StartDate     time.Time    `gorm:"not null" json:"start_date"`
	EndDate       time.Time    `gorm:"not null" json:"end_date"`
	Status        BudgetStatus `gorm:"not null;default:draft;index" json:"status"`
	RevisionOf    *uint        `gorm:"index" json:"revision_of,omitempty"`
	TotalAchieved float64      `gorm:"default:0" json:"total_achieved"`

	TotalPlanned float64 `gorm:"-" json:"total_planned"`

	Lines []BudgetLine `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"lines"`
}

// BudgetLine tracks planned vs achieved amounts for one analytical account
// within a budget. AchievedPercentage and AmountToAchieve are derived at
// read time and never stored.
type BudgetLine struct {
	Base
	BudgetID            uint           `gorm:"not null;index" json:"budget_id"`
	AnalyticalAccountID uint           `gorm:"not null" json:"analytical_account_id"`
	Type                BudgetLineType `gorm:"not null;default:expense" json:"type"`
	PlannedAmount       float64        `gorm:"not null" json:"planned_amount"`
	AchievedAmount      float64        `gorm:"default:0" json:"achieved_amount"`

	AchievedPercentage float64 `gorm:"-" json:"achieved_percentage"`
	AmountToAchieve    float64 `gorm:"-" json:"amount_to_achieve"`

	AnalyticalAccount AnalyticalAccount `gorm:"foreignKey:AnalyticalAccountID" json:"analytical_account,omitempty"`
}
