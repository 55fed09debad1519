package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "bilanz/internal/errors"
	"bilanz/internal/models"
	"bilanz/internal/pagination"
)

// analyticalAccountService handles analytical account business logic.
type analyticalAccountService struct {
	db *gorm.DB
}

// NewAnalyticalAccountService creates a new AnalyticalAccountServicer.
func NewAnalyticalAccountService(db *gorm.DB) AnalyticalAccountServicer {
	return &analyticalAccountService{db: db}
}

// CreateAccount creates an analytical account. Codes are unique per tenant.
func (s *analyticalAccountService) CreateAccount(userID uint, code, name string) (*models.AnalyticalAccount, error) {
	if code == "" || name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "code and name are required")
	}

	var count int64
	s.db.Model(&models.AnalyticalAccount{}).Where("user_id = ? AND code = ?", userID, code).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateAccountCode
	}

	account := &models.AnalyticalAccount{
		UserID: userID,
		Code:   code,
		Name:   name,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// GetUserAccounts returns a page of the tenant's analytical accounts
// ordered by code.
func (s *analyticalAccountService) GetUserAccounts(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.AnalyticalAccount], error) {
	page.Defaults()

	base := s.db.Model(&models.AnalyticalAccount{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.AnalyticalAccount
	if err := base.Order("code").Scopes(pagination.Paginate(page)).Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAccountByID returns an analytical account if it belongs to the tenant.
func (s *analyticalAccountService) GetAccountByID(userID, accountID uint) (*models.AnalyticalAccount, error) {
	var account models.AnalyticalAccount
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAnalyticalAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateAccount renames an analytical account or changes its code, keeping
// codes unique per tenant.
func (s *analyticalAccountService) UpdateAccount(userID, accountID uint, code, name string) (*models.AnalyticalAccount, error) {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if code != "" && code != account.Code {
		var count int64
		s.db.Model(&models.AnalyticalAccount{}).Where("user_id = ? AND code = ? AND id != ?", userID, code, accountID).Count(&count)
		if count > 0 {
			return nil, apperrors.ErrDuplicateAccountCode
		}
		updates["code"] = code
	}
	if name != "" {
		updates["name"] = name
	}

	if len(updates) > 0 {
		if err := s.db.Model(account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return account, nil
}

// DeleteAccount soft-deletes an analytical account unless budget lines or
// matching rules still reference it.
func (s *analyticalAccountService) DeleteAccount(userID, accountID uint) error {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return err
	}

	var lineCount int64
	if err := s.db.Model(&models.BudgetLine{}).Where("analytical_account_id = ?", accountID).Count(&lineCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var ruleCount int64
	if err := s.db.Model(&models.AutoAnalyticalModel{}).Where("analytical_account_id = ?", accountID).Count(&ruleCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if lineCount > 0 || ruleCount > 0 {
		return apperrors.ErrAnalyticalAccountInUse
	}

	if err := s.db.Delete(account).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
