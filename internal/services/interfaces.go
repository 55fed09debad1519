package services

import (
	"time"

	"bilanz/internal/models"
	"bilanz/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, companyName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// ContactServicer defines the contract for contact (partner) business logic.
type ContactServicer interface {
	CreateContact(userID uint, name string, contactType models.ContactType, email, phone, city string) (*models.Contact, error)
	GetUserContacts(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Contact], error)
	GetContactByID(userID, contactID uint) (*models.Contact, error)
	UpdateContact(userID, contactID uint, name string, contactType models.ContactType, email, phone, city string) (*models.Contact, error)
	DeleteContact(userID, contactID uint) error
}

// AnalyticalAccountServicer defines the contract for analytical account business logic.
type AnalyticalAccountServicer interface {
	CreateAccount(userID uint, code, name string) (*models.AnalyticalAccount, error)
	GetUserAccounts(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.AnalyticalAccount], error)
	GetAccountByID(userID, accountID uint) (*models.AnalyticalAccount, error)
	UpdateAccount(userID, accountID uint, code, name string) (*models.AnalyticalAccount, error)
	DeleteAccount(userID, accountID uint) error
}

// BudgetLineInput is one submitted budget line. Lines without an analytical
// account or with a non-positive planned amount are dropped during
// validation, never stored.
type BudgetLineInput struct {
	AnalyticalAccountID uint
	Type                models.BudgetLineType
	PlannedAmount       float64
	AchievedAmount      float64
}

// AchievementResult reports the outcome of a budget achievement
// recalculation. LinesUpdated is always a concrete count, zero included.
type AchievementResult struct {
	TotalAchieved float64 `json:"total_achieved"`
	LinesUpdated  int     `json:"lines_updated"`
}

// BudgetServicer defines the contract for the budget lifecycle engine.
type BudgetServicer interface {
	CreateBudget(userID uint, name string, startDate, endDate time.Time, status models.BudgetStatus, lines []BudgetLineInput) (*models.Budget, error)
	GetUserBudgets(userID uint, status models.BudgetStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID uint) (*models.Budget, error)
	UpdateBudget(userID, budgetID uint, name string, startDate, endDate time.Time, status models.BudgetStatus, lines []BudgetLineInput) (*models.Budget, error)
	ArchiveBudget(userID, budgetID uint) error
	ConfirmBudget(userID, budgetID uint) error
	ReviseBudget(userID, budgetID uint) (*models.Budget, error)
	CalculateAchievements(userID, budgetID uint) (*AchievementResult, error)
	GetBudgetCount(userID uint) (int64, error)
}

// ModelMatch is the winning rule of a match evaluation.
type ModelMatch struct {
	ModelID               uint   `json:"model_id"`
	AnalyticalAccountID   uint   `json:"analytical_account_id"`
	AnalyticalAccountName string `json:"analytical_account_name"`
	AnalyticalAccountCode string `json:"analytical_account_code"`
	Score                 int    `json:"score"`
}

// ModelServicer defines the contract for auto-analytical model rules and
// the matching engine.
type ModelServicer interface {
	CreateModel(userID uint, partnerID *uint, productCategory *string, analyticalAccountID uint, status models.ModelStatus) (*models.AutoAnalyticalModel, error)
	GetUserModels(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.AutoAnalyticalModel], error)
	UpdateModel(userID, modelID uint, partnerID *uint, productCategory *string, analyticalAccountID uint, status models.ModelStatus) (*models.AutoAnalyticalModel, error)
	DeleteModel(userID, modelID uint) error
	Match(userID uint, partnerID *uint, productCategory *string) (*ModelMatch, error)
}

// LedgerAggregator sums posted ledger amounts for one analytical account
// within a date range. The budget engine depends on this, not on the
// journal tables directly.
type LedgerAggregator interface {
	SumPosted(userID, analyticalAccountID uint, from, to time.Time) (float64, error)
}

// LedgerServicer defines the contract for journal entry business logic.
type LedgerServicer interface {
	LedgerAggregator
	RecordEntry(userID, analyticalAccountID uint, description string, amount float64, entryDate time.Time, status models.EntryStatus) (*models.JournalEntry, error)
	GetUserEntries(userID uint, accountID *uint, page pagination.PageRequest) (*pagination.PageResponse[models.JournalEntry], error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
