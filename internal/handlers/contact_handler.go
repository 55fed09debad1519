package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bilanz/internal/errors"
	"bilanz/internal/models"
	"bilanz/internal/pagination"
	"bilanz/internal/services"
)

// ContactHandler handles contact (partner) requests.
type ContactHandler struct {
	contactService services.ContactServicer
	auditService   services.AuditServicer
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService services.ContactServicer, auditService services.AuditServicer) *ContactHandler {
	return &ContactHandler{contactService: contactService, auditService: auditService}
}

// CreateContactRequest represents the payload for creating a contact.
type CreateContactRequest struct {
	Name  string             `json:"name" binding:"required,min=1,max=255"`
	Type  models.ContactType `json:"type" binding:"omitempty,contact_type"`
	Email string             `json:"email" binding:"omitempty,email,max=255"`
	Phone string             `json:"phone" binding:"max=50"`
	City  string             `json:"city" binding:"max=100"`
}

// UpdateContactRequest represents the payload for updating a contact.
type UpdateContactRequest struct {
	Name  string             `json:"name" binding:"omitempty,min=1,max=255"`
	Type  models.ContactType `json:"type" binding:"omitempty,contact_type"`
	Email string             `json:"email" binding:"omitempty,email,max=255"`
	Phone string             `json:"phone" binding:"max=50"`
	City  string             `json:"city" binding:"max=100"`
}

// CreateContact handles the creation of a contact.
// @Summary     Create contact
// @Description Create a customer or vendor contact
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateContactRequest true "Contact details"
// @Success     201 {object} models.Contact "Contact created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts [post]
func (h *ContactHandler) CreateContact(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	contact, err := h.contactService.CreateContact(userID, req.Name, req.Type, req.Email, req.Phone, req.City)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_CONTACT", "contact", contact.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "type": contact.Type})

	c.JSON(http.StatusCreated, gin.H{"contact": contact})
}

// GetContacts handles listing the tenant's contacts.
// @Summary     List contacts
// @Description Get a paginated list of contacts ordered by name
// @Tags        contacts
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Contact] "Paginated contacts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts [get]
func (h *ContactHandler) GetContacts(c *gin.Context) {
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

	result, err := h.contactService.GetUserContacts(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetContact handles retrieving a single contact.
// @Summary     Get contact
// @Description Get one contact by ID
// @Tags        contacts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Contact ID"
// @Success     200 {object} models.Contact "Contact details"
// @Failure     400 {object} ErrorResponse "Invalid contact ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Contact not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts/{id} [get]
func (h *ContactHandler) GetContact(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contactID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	contact, err := h.contactService.GetContactByID(userID, contactID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

// UpdateContact handles updating a contact.
// @Summary     Update contact
// @Description Update a contact's details; omitted fields are left unchanged
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Contact ID"
// @Param       request body UpdateContactRequest true "Updated contact details"
// @Success     200 {object} models.Contact "Updated contact"
// @Failure     400 {object} ErrorResponse "Invalid input or contact ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Contact not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts/{id} [put]
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contactID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	contact, err := h.contactService.UpdateContact(userID, contactID, req.Name, req.Type, req.Email, req.Phone, req.City)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_CONTACT", "contact", contactID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

// DeleteContact handles deleting a contact.
// @Summary     Delete contact
// @Description Soft-delete a contact
// @Tags        contacts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Contact ID"
// @Success     200 {object} MessageResponse "Contact deleted"
// @Failure     400 {object} ErrorResponse "Invalid contact ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Contact not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contactID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.contactService.DeleteContact(userID, contactID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_CONTACT", "contact", contactID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}
