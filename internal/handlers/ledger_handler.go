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

// LedgerHandler handles journal entry requests.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
	auditService  services.AuditServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer, auditService services.AuditServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService, auditService: auditService}
}

// RecordEntryRequest represents the payload for recording a journal entry.
type RecordEntryRequest struct {
	AnalyticalAccountID uint               `json:"analytical_account_id" binding:"required"`
	Description         string             `json:"description" binding:"max=255"`
	Amount              float64            `json:"amount" binding:"required"`
	EntryDate           time.Time          `json:"entry_date" binding:"required"`
	Status              models.EntryStatus `json:"status" binding:"omitempty,entry_status"`
}

// RecordEntry handles recording a journal entry against an analytical account.
// @Summary     Record journal entry
// @Description Record a journal entry; posted entries feed budget achievement calculations
// @Tags        journal-entries
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecordEntryRequest true "Entry details"
// @Success     201 {object} models.JournalEntry "Entry recorded"
// @Failure     400 {object} ErrorResponse "Invalid input or negative amount"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Analytical account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /journal-entries [post]
func (h *LedgerHandler) RecordEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.ledgerService.RecordEntry(userID, req.AnalyticalAccountID, req.Description, req.Amount, req.EntryDate, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RECORD_JOURNAL_ENTRY", "journal_entry", entry.ID, c.ClientIP(),
		map[string]interface{}{"analytical_account_id": req.AnalyticalAccountID, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// GetEntries handles listing the tenant's journal entries.
// @Summary     List journal entries
// @Description Get a paginated list of journal entries, optionally filtered by analytical account
// @Tags        journal-entries
// @Produce     json
// @Security    BearerAuth
// @Param       analytical_account_id query int false "Analytical account filter"
// @Param       page                  query int false "Page number (default 1)"
// @Param       page_size             query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.JournalEntry] "Paginated entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /journal-entries [get]
func (h *LedgerHandler) GetEntries(c *gin.Context) {
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

	accountID, err := parseOptionalUintQuery(c, "analytical_account_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.ledgerService.GetUserEntries(userID, accountID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
