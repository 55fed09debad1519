package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "bilanz/internal/errors"
	"bilanz/internal/models"
	"bilanz/internal/pagination"
)

// ledgerService records journal entries and aggregates posted amounts per
// analytical account. It is the authoritative source behind budget
// achievement recalculation.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// RecordEntry persists one ledger movement. Amounts must be non-negative,
// which keeps downstream achieved amounts non-negative by construction.
func (s *ledgerService) RecordEntry(
	userID, analyticalAccountID uint,
	description string,
	amount float64,
	entryDate time.Time,
	status models.EntryStatus,
) (*models.JournalEntry, error) {
	if amount < 0 {
		return nil, apperrors.ErrNegativeEntryAmount
	}

	var account models.AnalyticalAccount
	if err := s.db.Where("id = ? AND user_id = ?", analyticalAccountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAnalyticalAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if status == "" {
		status = models.EntryStatusPosted
	}

	entry := &models.JournalEntry{
		UserID:              userID,
		AnalyticalAccountID: analyticalAccountID,
		Description:         description,
		Amount:              amount,
		EntryDate:           entryDate,
		Status:              status,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}

// GetUserEntries returns a page of the tenant's journal entries, newest
// first, optionally filtered by analytical account.
func (s *ledgerService) GetUserEntries(userID uint, accountID *uint, page pagination.PageRequest) (*pagination.PageResponse[models.JournalEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.JournalEntry{}).Where("user_id = ?", userID)
	if accountID != nil {
		base = base.Where("analytical_account_id = ?", *accountID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.JournalEntry
	err := base.
		Preload("AnalyticalAccount").
		Order("entry_date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// SumPosted returns the sum of posted entry amounts for one analytical
// account within [from, to], inclusive. Zero when there are no entries.
func (s *ledgerService) SumPosted(userID, analyticalAccountID uint, from, to time.Time) (float64, error) {
	var total float64
	err := s.db.Model(&models.JournalEntry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND analytical_account_id = ? AND status = ? AND entry_date BETWEEN ? AND ?",
			userID, analyticalAccountID, models.EntryStatusPosted, from, to).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}
