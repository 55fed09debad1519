package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bilanz/internal/errors"
	"bilanz/internal/pagination"
	"bilanz/internal/services"
)

// AnalyticalAccountHandler handles analytical account requests.
type AnalyticalAccountHandler struct {
	accountService services.AnalyticalAccountServicer
	auditService   services.AuditServicer
}

// NewAnalyticalAccountHandler creates a new AnalyticalAccountHandler.
func NewAnalyticalAccountHandler(accountService services.AnalyticalAccountServicer, auditService services.AuditServicer) *AnalyticalAccountHandler {
	return &AnalyticalAccountHandler{accountService: accountService, auditService: auditService}
}

// CreateAccountRequest represents the payload for creating an analytical account.
type CreateAccountRequest struct {
	Code string `json:"code" binding:"required,min=1,max=20"`
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateAccountRequest represents the payload for updating an analytical account.
type UpdateAccountRequest struct {
	Code string `json:"code" binding:"omitempty,min=1,max=20"`
	Name string `json:"name" binding:"omitempty,min=1,max=100"`
}

// CreateAccount handles the creation of an analytical account.
// @Summary     Create analytical account
// @Description Create an analytical account with a tenant-unique code
// @Tags        analytical-accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAccountRequest true "Account details"
// @Success     201 {object} models.AnalyticalAccount "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Code already in use"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytical-accounts [post]
func (h *AnalyticalAccountHandler) CreateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(userID, req.Code, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ANALYTICAL_ACCOUNT", "analytical_account", account.ID, c.ClientIP(),
		map[string]interface{}{"code": req.Code})

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// GetAccounts handles listing the tenant's analytical accounts.
// @Summary     List analytical accounts
// @Description Get a paginated list of analytical accounts ordered by code
// @Tags        analytical-accounts
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.AnalyticalAccount] "Paginated accounts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytical-accounts [get]
func (h *AnalyticalAccountHandler) GetAccounts(c *gin.Context) {
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

	result, err := h.accountService.GetUserAccounts(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAccount handles retrieving a single analytical account.
// @Summary     Get analytical account
// @Description Get one analytical account by ID
// @Tags        analytical-accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Success     200 {object} models.AnalyticalAccount "Account details"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytical-accounts/{id} [get]
func (h *AnalyticalAccountHandler) GetAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(userID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// UpdateAccount handles renaming or re-coding an analytical account.
// @Summary     Update analytical account
// @Description Change an analytical account's code or name
// @Tags        analytical-accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Account ID"
// @Param       request body UpdateAccountRequest true "Updated details"
// @Success     200 {object} models.AnalyticalAccount "Updated account"
// @Failure     400 {object} ErrorResponse "Invalid input or account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     409 {object} ErrorResponse "Code already in use"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytical-accounts/{id} [put]
func (h *AnalyticalAccountHandler) UpdateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.UpdateAccount(userID, accountID, req.Code, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_ANALYTICAL_ACCOUNT", "analytical_account", accountID, c.ClientIP(),
		map[string]interface{}{"code": req.Code, "name": req.Name})

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// DeleteAccount handles deleting an analytical account.
// @Summary     Delete analytical account
// @Description Delete an analytical account that is not referenced by budget lines or matching rules
// @Tags        analytical-accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Success     200 {object} MessageResponse "Account deleted"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     409 {object} ErrorResponse "Account still referenced"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytical-accounts/{id} [delete]
func (h *AnalyticalAccountHandler) DeleteAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeleteAccount(userID, accountID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ANALYTICAL_ACCOUNT", "analytical_account", accountID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Analytical account deleted successfully"})
}
