package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "bilanz/internal/errors"
	"bilanz/internal/models"
	"bilanz/internal/pagination"
)

// modelService handles auto-analytical model rules and the matching engine.
type modelService struct {
	db *gorm.DB
}

// NewModelService creates a new ModelServicer.
func NewModelService(db *gorm.DB) ModelServicer {
	return &modelService{db: db}
}

// validateReferences checks that the target analytical account and the
// optional partner belong to the tenant.
func (s *modelService) validateReferences(userID uint, partnerID *uint, analyticalAccountID uint) error {
	var account models.AnalyticalAccount
	if err := s.db.Where("id = ? AND user_id = ?", analyticalAccountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAnalyticalAccountNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if partnerID != nil {
		var partner models.Contact
		if err := s.db.Where("id = ? AND user_id = ?", *partnerID, userID).First(&partner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrPartnerNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

// CreateModel creates a matching rule. Unknown statuses fall back to draft.
func (s *modelService) CreateModel(
	userID uint,
	partnerID *uint,
	productCategory *string,
	analyticalAccountID uint,
	status models.ModelStatus,
) (*models.AutoAnalyticalModel, error) {
	if analyticalAccountID == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Analytical account is required")
	}
	if err := s.validateReferences(userID, partnerID, analyticalAccountID); err != nil {
		return nil, err
	}

	switch status {
	case models.ModelStatusDraft, models.ModelStatusConfirm, models.ModelStatusCancelled:
	default:
		status = models.ModelStatusDraft
	}

	model := &models.AutoAnalyticalModel{
		UserID:              userID,
		PartnerID:           partnerID,
		ProductCategory:     productCategory,
		AnalyticalAccountID: analyticalAccountID,
		Status:              status,
	}
	if err := s.db.Create(model).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return model, nil
}

// GetUserModels returns a page of the tenant's rules, newest first, with
// partner and analytical account preloaded for display.
func (s *modelService) GetUserModels(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.AutoAnalyticalModel], error) {
	page.Defaults()

	base := s.db.Model(&models.AutoAnalyticalModel{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rules []models.AutoAnalyticalModel
	err := base.
		Preload("Partner").
		Preload("AnalyticalAccount").
		Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&rules).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(rules, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateModel overwrites a rule's criteria, target account, and status.
func (s *modelService) UpdateModel(
	userID, modelID uint,
	partnerID *uint,
	productCategory *string,
	analyticalAccountID uint,
	status models.ModelStatus,
) (*models.AutoAnalyticalModel, error) {
	var model models.AutoAnalyticalModel
	if err := s.db.Where("id = ? AND user_id = ?", modelID, userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrModelNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if analyticalAccountID == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Analytical account is required")
	}
	if err := s.validateReferences(userID, partnerID, analyticalAccountID); err != nil {
		return nil, err
	}

	switch status {
	case models.ModelStatusDraft, models.ModelStatusConfirm, models.ModelStatusCancelled:
	default:
		status = models.ModelStatusDraft
	}

	updates := map[string]interface{}{
		"partner_id":            partnerID,
		"product_category":      productCategory,
		"analytical_account_id": analyticalAccountID,
		"status":                status,
	}
	if err := s.db.Model(&model).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &model, nil
}

// DeleteModel removes a rule.
func (s *modelService) DeleteModel(userID, modelID uint) error {
	var model models.AutoAnalyticalModel
	if err := s.db.Where("id = ? AND user_id = ?", modelID, userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrModelNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&model).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Match selects the single best confirmed rule for the given criteria, or
// nil when nothing qualifies.
//
// Scoring: a rule that constrains partner or category is excluded outright
// if the query value is absent or different, and earns one point per
// satisfied constraint. An unconstrained rule scores zero but stays in the
// running, acting as a fallback. Rules are evaluated in id order, and only
// a strictly higher score displaces the current winner, so the oldest rule
// wins ties deterministically.
func (s *modelService) Match(userID uint, partnerID *uint, productCategory *string) (*ModelMatch, error) {
	var rules []models.AutoAnalyticalModel
	err := s.db.
		Preload("AnalyticalAccount").
		Where("user_id = ? AND status = ?", userID, models.ModelStatusConfirm).
		Order("id").
		Find(&rules).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var best *models.AutoAnalyticalModel
	bestScore := 0

	for i := range rules {
		rule := &rules[i]
		score := 0

		if rule.PartnerID != nil {
			if partnerID == nil || *rule.PartnerID != *partnerID {
				continue
			}
			score++
		}

		if rule.ProductCategory != nil {
			if productCategory == nil || *rule.ProductCategory != *productCategory {
				continue
			}
			score++
		}

		if best == nil || score > bestScore {
			best = rule
			bestScore = score
		}
	}

	if best == nil {
		return nil, nil
	}

	return &ModelMatch{
		ModelID:               best.ID,
		AnalyticalAccountID:   best.AnalyticalAccountID,
		AnalyticalAccountName: best.AnalyticalAccount.Name,
		AnalyticalAccountCode: best.AnalyticalAccount.Code,
		Score:                 bestScore,
	}, nil
}
