package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "bilanz/internal/errors"
	"bilanz/internal/models"
	"bilanz/internal/pagination"
)

// budgetService implements the budget lifecycle engine: state transitions,
// wholesale line replacement, revision copies, and achievement rollups.
// Every multi-statement mutation runs inside a single transaction so a
// failure never leaves a dangling header or half a line set.
type budgetService struct {
	db     *gorm.DB
	ledger LedgerAggregator
}

// NewBudgetService creates a new BudgetServicer backed by the given ledger
// aggregator for achievement recalculation.
func NewBudgetService(db *gorm.DB, ledger LedgerAggregator) BudgetServicer {
	return &budgetService{db: db, ledger: ledger}
}

// lockForUpdate acquires a row lock on the matched budget header so that
// concurrent confirm/revise calls cannot both pass the precondition check.
// SQLite (used in tests) has no FOR UPDATE; its transactions serialize
// writes anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// round2 rounds a monetary amount to two decimals for derived fields.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// filterLines keeps only lines that reference an analytical account and
// plan a positive amount. Invalid lines are dropped silently; the caller
// decides whether an empty result is an error.
func filterLines(lines []BudgetLineInput) []BudgetLineInput {
	valid := make([]BudgetLineInput, 0, len(lines))
	for _, line := range lines {
		if line.AnalyticalAccountID == 0 || line.PlannedAmount <= 0 {
			continue
		}
		valid = append(valid, line)
	}
	return valid
}

// enrich fills the derived fields on a budget and its lines.
func enrich(budget *models.Budget) {
	var totalPlanned, totalAchieved float64
	for i := range budget.Lines {
		line := &budget.Lines[i]
		if line.PlannedAmount > 0 {
			line.AchievedPercentage = round2(line.AchievedAmount / line.PlannedAmount * 100)
		} else {
			line.AchievedPercentage = 0
		}
		line.AmountToAchieve = round2(line.PlannedAmount - line.AchievedAmount)
		totalPlanned += line.PlannedAmount
		totalAchieved += line.AchievedAmount
	}
	budget.TotalPlanned = round2(totalPlanned)
	budget.TotalAchieved = round2(totalAchieved)
}

// CreateBudget validates and persists a budget header with its valid lines
// as one unit.
func (s *budgetService) CreateBudget(
	userID uint,
	name string,
	startDate, endDate time.Time,
	status models.BudgetStatus,
	lines []BudgetLineInput,
) (*models.Budget, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Budget name is required")
	}
	if startDate.After(endDate) {
		return nil, apperrors.ErrInvalidBudgetPeriod
	}
	if status == "" {
		status = models.BudgetStatusDraft
	}
	if status != models.BudgetStatusDraft && status != models.BudgetStatusConfirm {
		return nil, apperrors.ErrBudgetStatusConflict
	}

	valid := filterLines(lines)
	if len(valid) == 0 {
		return nil, apperrors.ErrNoValidBudgetLines
	}

	budget := &models.Budget{
		UserID:    userID,
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    status,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(budget).Error; err != nil {
			return err
		}
		for _, line := range valid {
			bl := &models.BudgetLine{
				BudgetID:            budget.ID,
				AnalyticalAccountID: line.AnalyticalAccountID,
				Type:                line.Type,
				PlannedAmount:       line.PlannedAmount,
				AchievedAmount:      0,
			}
			if err := tx.Create(bl).Error; err != nil {
				return err
			}
			budget.Lines = append(budget.Lines, *bl)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	enrich(budget)
	return budget, nil
}

// GetUserBudgets returns a page of the tenant's budgets in the given status
// (draft by default), each with its lines and computed rollups.
func (s *budgetService) GetUserBudgets(
	userID uint,
	status models.BudgetStatus,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()
	if status == "" {
		status = models.BudgetStatusDraft
	}

	base := s.db.Model(&models.Budget{}).Where("user_id = ? AND status = ?", userID, status)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	err := base.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("budget_lines.id") }).
		Preload("Lines.AnalyticalAccount").
		Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i := range budgets {
		enrich(&budgets[i])
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget with lines and derived fields if it
// belongs to the tenant.
func (s *budgetService) GetBudgetByID(userID, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("budget_lines.id") }).
		Preload("Lines.AnalyticalAccount").
		Where("id = ? AND user_id = ?", budgetID, userID).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	enrich(&budget)
	return &budget, nil
}

// UpdateBudget overwrites the header and replaces the full line set. The
// submitted status must be a legal transition from the current one; lines
// are replaced destructively, so line identity is not preserved across
// edits.
func (s *budgetService) UpdateBudget(
	userID, budgetID uint,
	name string,
	startDate, endDate time.Time,
	status models.BudgetStatus,
	lines []BudgetLineInput,
) (*models.Budget, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Budget name is required")
	}
	if startDate.After(endDate) {
		return nil, apperrors.ErrInvalidBudgetPeriod
	}

	valid := filterLines(lines)
	if len(valid) == 0 {
		return nil, apperrors.ErrNoValidBudgetLines
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var budget models.Budget
		if err := lockForUpdate(tx).Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBudgetNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if status == "" {
			status = budget.Status
		}
		if !budget.Status.CanTransitionTo(status) {
			return apperrors.ErrBudgetStatusConflict
		}

		updates := map[string]interface{}{
			"name":       name,
			"start_date": startDate,
			"end_date":   endDate,
			"status":     status,
		}
		if err := tx.Model(&budget).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Where("budget_id = ?", budgetID).Delete(&models.BudgetLine{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, line := range valid {
			bl := &models.BudgetLine{
				BudgetID:            budgetID,
				AnalyticalAccountID: line.AnalyticalAccountID,
				Type:                line.Type,
				PlannedAmount:       line.PlannedAmount,
				AchievedAmount:      line.AchievedAmount,
			}
			if err := tx.Create(bl).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetBudgetByID(userID, budgetID)
}

// transition moves a budget to the target status after validating the
// transition table under a row lock.
func (s *budgetService) transition(userID, budgetID uint, target models.BudgetStatus) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var budget models.Budget
		if err := lockForUpdate(tx).Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBudgetNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if budget.Status == target || !budget.Status.CanTransitionTo(target) {
			return apperrors.ErrBudgetStatusConflict
		}

		if err := tx.Model(&budget).Update("status", target).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// ConfirmBudget moves a draft budget to confirm. Confirming a non-draft
// budget is a conflict, not a silent no-op, so callers can distinguish
// "already confirmed" from "missing".
func (s *budgetService) ConfirmBudget(userID, budgetID uint) error {
	return s.transition(userID, budgetID, models.BudgetStatusConfirm)
}

// ArchiveBudget soft-deletes a budget by status. Revised budgets keep their
// status as the historical marker of the revision chain and cannot be
// archived.
func (s *budgetService) ArchiveBudget(userID, budgetID uint) error {
	return s.transition(userID, budgetID, models.BudgetStatusArchived)
}

// ReviseBudget snapshots a confirmed budget into a new draft: the copy
// carries the planned lines with achieved amounts reset, points back via
// revision_of, and the source atomically becomes revised. The revision
// suffix is 1 + the number of existing revisions of the source.
func (s *budgetService) ReviseBudget(userID, budgetID uint) (*models.Budget, error) {
	revision := &models.Budget{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var original models.Budget
		if err := lockForUpdate(tx).Where("id = ? AND user_id = ?", budgetID, userID).First(&original).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBudgetNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if original.Status != models.BudgetStatusConfirm {
			return apperrors.ErrBudgetNotConfirmed
		}

		var revisionCount int64
		if err := tx.Model(&models.Budget{}).Where("revision_of = ?", budgetID).Count(&revisionCount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		sourceID := original.ID
		revision.UserID = userID
		revision.Name = fmt.Sprintf("%s.r%d", original.Name, revisionCount+1)
		revision.StartDate = original.StartDate
		revision.EndDate = original.EndDate
		revision.Status = models.BudgetStatusDraft
		revision.RevisionOf = &sourceID

		if err := tx.Create(revision).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var lines []models.BudgetLine
		if err := tx.Where("budget_id = ?", budgetID).Order("id").Find(&lines).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, line := range lines {
			copied := &models.BudgetLine{
				BudgetID:            revision.ID,
				AnalyticalAccountID: line.AnalyticalAccountID,
				Type:                line.Type,
				PlannedAmount:       line.PlannedAmount,
				AchievedAmount:      0,
			}
			if err := tx.Create(copied).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		if err := tx.Model(&original).Update("status", models.BudgetStatusRevised).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetBudgetByID(userID, revision.ID)
}

// CalculateAchievements recomputes each line's achieved amount from posted
// ledger entries within the budget period and caches the total on the
// header.
func (s *budgetService) CalculateAchievements(userID, budgetID uint) (*AchievementResult, error) {
	result := &AchievementResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var budget models.Budget
		if err := lockForUpdate(tx).Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBudgetNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var lines []models.BudgetLine
		if err := tx.Where("budget_id = ?", budgetID).Order("id").Find(&lines).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var totalAchieved float64
		for _, line := range lines {
			achieved, err := s.ledger.SumPosted(userID, line.AnalyticalAccountID, budget.StartDate, budget.EndDate)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			achieved = round2(achieved)
			if err := tx.Model(&models.BudgetLine{}).Where("id = ?", line.ID).Update("achieved_amount", achieved).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			totalAchieved += achieved
			result.LinesUpdated++
		}

		result.TotalAchieved = round2(totalAchieved)
		if err := tx.Model(&budget).Update("total_achieved", result.TotalAchieved).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetBudgetCount returns the number of active (draft or confirmed) budgets
// for dashboard display.
func (s *budgetService) GetBudgetCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Budget{}).
		Where("user_id = ? AND status IN ?", userID, []models.BudgetStatus{models.BudgetStatusDraft, models.BudgetStatusConfirm}).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}
