package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bilanz/internal/errors"
	"bilanz/internal/models"
	"bilanz/internal/pagination"
	"bilanz/internal/services"
)

// ModelHandler handles auto-analytical model rules and matching requests.
type ModelHandler struct {
	modelService services.ModelServicer
	auditService services.AuditServicer
}

// NewModelHandler creates a new ModelHandler.
func NewModelHandler(modelService services.ModelServicer, auditService services.AuditServicer) *ModelHandler {
	return &ModelHandler{modelService: modelService, auditService: auditService}
}

// ModelRequest represents the payload for creating or updating a rule.
type ModelRequest struct {
	PartnerID           *uint              `json:"partner_id"`
	ProductCategory     *string            `json:"product_category"`
	AnalyticalAccountID uint               `json:"analytical_account_id" binding:"required"`
	Status              models.ModelStatus `json:"status" binding:"omitempty,model_status"`
}

// CreateModel handles the creation of a matching rule.
// @Summary     Create matching rule
// @Description Create an auto-analytical model rule mapping partner/category criteria to an analytical account
// @Tags        models
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ModelRequest true "Rule details"
// @Success     201 {object} models.AutoAnalyticalModel "Rule created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Referenced account or partner not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auto-analytical-models [post]
func (h *ModelHandler) CreateModel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	model, err := h.modelService.CreateModel(userID, req.PartnerID, req.ProductCategory, req.AnalyticalAccountID, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_MODEL", "auto_analytical_model", model.ID, c.ClientIP(),
		map[string]interface{}{"analytical_account_id": req.AnalyticalAccountID})

	c.JSON(http.StatusCreated, gin.H{"model": model})
}

// GetModels handles listing the tenant's matching rules.
// @Summary     List matching rules
// @Description Get a paginated list of auto-analytical model rules
// @Tags        models
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.AutoAnalyticalModel] "Paginated rules"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auto-analytical-models [get]
func (h *ModelHandler) GetModels(c *gin.Context) {
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

	result, err := h.modelService.GetUserModels(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateModel handles updating a matching rule.
// @Summary     Update matching rule
// @Description Update an auto-analytical model rule's criteria, target account, or status
// @Tags        models
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int          true "Model ID"
// @Param       request body ModelRequest true "Updated rule details"
// @Success     200 {object} models.AutoAnalyticalModel "Updated rule"
// @Failure     400 {object} ErrorResponse "Invalid input or model ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Rule, account, or partner not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auto-analytical-models/{id} [put]
func (h *ModelHandler) UpdateModel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	modelID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	model, err := h.modelService.UpdateModel(userID, modelID, req.PartnerID, req.ProductCategory, req.AnalyticalAccountID, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_MODEL", "auto_analytical_model", modelID, c.ClientIP(),
		map[string]interface{}{"status": req.Status})

	c.JSON(http.StatusOK, gin.H{"model": model})
}

// DeleteModel handles deleting a matching rule.
// @Summary     Delete matching rule
// @Description Delete an auto-analytical model rule
// @Tags        models
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Model ID"
// @Success     200 {object} MessageResponse "Rule deleted"
// @Failure     400 {object} ErrorResponse "Invalid model ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Rule not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auto-analytical-models/{id} [delete]
func (h *ModelHandler) DeleteModel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	modelID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.modelService.DeleteModel(userID, modelID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_MODEL", "auto_analytical_model", modelID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Model deleted successfully"})
}

// Match evaluates the confirmed rules against a transaction context.
// @Summary     Match analytical account
// @Description Evaluate confirmed rules against the given partner and product category and return the best match, if any
// @Tags        models
// @Produce     json
// @Security    BearerAuth
// @Param       partner_id       query int    false "Partner (contact) ID"
// @Param       product_category query string false "Product category"
// @Success     200 {object} services.ModelMatch "Best match, or null match when no rule applies"
// @Failure     400 {object} ErrorResponse "Invalid partner_id"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auto-analytical-models/match [get]
func (h *ModelHandler) Match(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	partnerID, err := parseOptionalUintQuery(c, "partner_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var productCategory *string
	if v := c.Query("product_category"); v != "" {
		productCategory = &v
	}

	match, err := h.modelService.Match(userID, partnerID, productCategory)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"match": match})
}
