package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "bilanz/internal/errors"
	"bilanz/internal/models"
	"bilanz/internal/pagination"
	"bilanz/internal/services"
)

// BudgetHandler handles budget lifecycle requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// BudgetLineRequest represents one submitted budget line.
type BudgetLineRequest struct {
	AnalyticalAccountID uint                  `json:"analytical_account_id"`
	Type                models.BudgetLineType `json:"type" binding:"omitempty,line_type"`
	PlannedAmount       float64               `json:"planned_amount"`
	AchievedAmount      float64               `json:"achieved_amount"`
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	Name      string              `json:"name" binding:"required,min=1,max=100"`
	StartDate time.Time           `json:"start_date" binding:"required"`
	EndDate   time.Time           `json:"end_date" binding:"required"`
	Status    models.BudgetStatus `json:"status" binding:"omitempty,budget_status"`
	Lines     []BudgetLineRequest `json:"lines" binding:"required,min=1"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
type UpdateBudgetRequest struct {
	Name      string              `json:"name" binding:"required,min=1,max=100"`
	StartDate time.Time           `json:"start_date" binding:"required"`
	EndDate   time.Time           `json:"end_date" binding:"required"`
	Status    models.BudgetStatus `json:"status" binding:"omitempty,budget_status"`
	Lines     []BudgetLineRequest `json:"lines" binding:"required,min=1"`
}

func toLineInputs(lines []BudgetLineRequest) []services.BudgetLineInput {
	inputs := make([]services.BudgetLineInput, 0, len(lines))
	for _, l := range lines {
		inputs = append(inputs, services.BudgetLineInput{
			AnalyticalAccountID: l.AnalyticalAccountID,
			Type:                l.Type,
			PlannedAmount:       l.PlannedAmount,
			AchievedAmount:      l.AchievedAmount,
		})
	}
	return inputs
}

// CreateBudget handles the creation of a new budget with lines.
// @Summary     Create a budget
// @Description Create a new budget with at least one valid line
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input or no valid lines"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.CreateBudget(userID, req.Name, req.StartDate, req.EndDate, req.Status, toLineInputs(req.Lines))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "lines": len(budget.Lines)})

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets handles listing budgets filtered by status.
// @Summary     List budgets
// @Description Get a paginated list of budgets in the given status (default draft), with lines and rollups
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       status    query string false "Status filter (draft/confirm/revised/archived, default draft)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Paginated budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	status := models.BudgetStatusDraft
	if v := c.Query("status"); v != "" {
		s := models.BudgetStatus(v)
		switch s {
		case models.BudgetStatusDraft, models.BudgetStatusConfirm, models.BudgetStatusRevised, models.BudgetStatusArchived:
			status = s
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be draft, confirm, revised, or archived"))
			return
		}
	}

	result, err := h.budgetService.GetUserBudgets(userID, status, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBudgetCount handles the dashboard count of active budgets.
// @Summary     Count active budgets
// @Description Get the number of draft and confirmed budgets
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]int64 "Budget count"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/count [get]
func (h *BudgetHandler) GetBudgetCount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	count, err := h.budgetService.GetBudgetCount(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetBudget handles retrieving a specific budget with lines.
// @Summary     Get budget by ID
// @Description Get a specific budget with lines and derived fields
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} models.Budget "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByID(userID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget handles updating a budget header and replacing its lines.
// @Summary     Update budget
// @Description Overwrite a budget's header and replace its full line set
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                 true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Updated budget details"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input or budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Illegal status transition"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateBudget(userID, budgetID, req.Name, req.StartDate, req.EndDate, req.Status, toLineInputs(req.Lines))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BUDGET", "budget", budgetID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// ArchiveBudget handles archiving (soft-deleting) a budget.
// @Summary     Archive budget
// @Description Archive a budget; archived is terminal and revised budgets cannot be archived
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} MessageResponse "Budget archived"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Illegal status transition"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) ArchiveBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.ArchiveBudget(userID, budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ARCHIVE_BUDGET", "budget", budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget archived successfully"})
}

// ConfirmBudget handles the draft → confirm transition.
// @Summary     Confirm budget
// @Description Move a draft budget to confirm
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} MessageResponse "Budget confirmed"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Budget is not draft"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/confirm [post]
func (h *BudgetHandler) ConfirmBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.ConfirmBudget(userID, budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CONFIRM_BUDGET", "budget", budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget confirmed successfully"})
}

// ReviseBudget handles the creation of a revision draft.
// @Summary     Revise budget
// @Description Create a draft revision of a confirmed budget and mark the original revised
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     201 {object} models.Budget "Revision created"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Budget is not confirmed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/revise [post]
func (h *BudgetHandler) ReviseBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	revision, err := h.budgetService.ReviseBudget(userID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "REVISE_BUDGET", "budget", budgetID, c.ClientIP(),
		map[string]interface{}{"revision_id": revision.ID, "revision_name": revision.Name})

	c.JSON(http.StatusCreated, gin.H{"id": revision.ID, "name": revision.Name, "budget": revision})
}

// CalculateAchievements handles the achievement recalculation for a budget.
// @Summary     Calculate achievements
// @Description Recompute achieved amounts for every line from posted journal entries
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} services.AchievementResult "Recalculation result"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/calculate-achievements [post]
func (h *BudgetHandler) CalculateAchievements(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.budgetService.CalculateAchievements(userID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CALCULATE_ACHIEVEMENTS", "budget", budgetID, c.ClientIP(),
		map[string]interface{}{"total_achieved": result.TotalAchieved, "lines_updated": result.LinesUpdated})

	c.JSON(http.StatusOK, result)
}
