package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"bilanz/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestContact creates a contact of the given type.
func CreateTestContact(t *testing.T, db *gorm.DB, userID uint, contactType models.ContactType) *models.Contact {
	t.Helper()

	contact := &models.Contact{
		UserID: userID,
		Name:   fmt.Sprintf("Test Contact %d", nextID()),
		Type:   contactType,
	}
	if err := db.Create(contact).Error; err != nil {
		t.Fatalf("failed to create test contact: %v", err)
	}
	return contact
}

// CreateTestAnalyticalAccount creates an analytical account with a unique code.
func CreateTestAnalyticalAccount(t *testing.T, db *gorm.DB, userID uint) *models.AnalyticalAccount {
	t.Helper()

	n := nextID()
	account := &models.AnalyticalAccount{
		UserID: userID,
		Code:   fmt.Sprintf("AA%03d", n),
		Name:   fmt.Sprintf("Test Account %d", n),
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test analytical account: %v", err)
	}
	return account
}

// CreateTestBudget creates a draft budget spanning the current month with a
// single expense line against the given analytical account.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, accountID uint, planned float64) *models.Budget {
	t.Helper()

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	budget := &models.Budget{
		UserID:    userID,
		Name:      fmt.Sprintf("Test Budget %d", nextID()),
		StartDate: start,
		EndDate:   start.AddDate(0, 1, -1),
		Status:    models.BudgetStatusDraft,
		Lines: []models.BudgetLine{
			{
				AnalyticalAccountID: accountID,
				Type:                models.BudgetLineTypeExpense,
				PlannedAmount:       planned,
			},
		},
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestModel creates a matching rule in the given status.
func CreateTestModel(t *testing.T, db *gorm.DB, userID, accountID uint, partnerID *uint, productCategory *string, status models.ModelStatus) *models.AutoAnalyticalModel {
	t.Helper()

	model := &models.AutoAnalyticalModel{
		UserID:              userID,
		PartnerID:           partnerID,
		ProductCategory:     productCategory,
		AnalyticalAccountID: accountID,
		Status:              status,
	}
	if err := db.Create(model).Error; err != nil {
		t.Fatalf("failed to create test model: %v", err)
	}
	return model
}

// CreateTestJournalEntry creates a posted journal entry on the given date.
func CreateTestJournalEntry(t *testing.T, db *gorm.DB, userID, accountID uint, amount float64, entryDate time.Time) *models.JournalEntry {
	t.Helper()

	entry := &models.JournalEntry{
		UserID:              userID,
		AnalyticalAccountID: accountID,
		Description:         fmt.Sprintf("Test Entry %d", nextID()),
		Amount:              amount,
		EntryDate:           entryDate,
		Status:              models.EntryStatusPosted,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test journal entry: %v", err)
	}
	return entry
}
