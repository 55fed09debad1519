package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "bilanz/internal/errors"
	"bilanz/internal/models"
	"bilanz/internal/pagination"
)

// contactService handles contact (partner) business logic.
type contactService struct {
	db *gorm.DB
}

// NewContactService creates a new ContactServicer.
func NewContactService(db *gorm.DB) ContactServicer {
	return &contactService{db: db}
}

// CreateContact creates a new partner for the tenant.
func (s *contactService) CreateContact(userID uint, name string, contactType models.ContactType, email, phone, city string) (*models.Contact, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Contact name is required")
	}
	if contactType == "" {
		contactType = models.ContactTypeCustomer
	}

	contact := &models.Contact{
		UserID: userID,
		Name:   name,
		Type:   contactType,
		Email:  email,
		Phone:  phone,
		City:   city,
	}
	if err := s.db.Create(contact).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return contact, nil
}

// GetUserContacts returns a page of the tenant's contacts ordered by name.
func (s *contactService) GetUserContacts(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Contact], error) {
	page.Defaults()

	base := s.db.Model(&models.Contact{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var contacts []models.Contact
	if err := base.Order("name").Scopes(pagination.Paginate(page)).Find(&contacts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(contacts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetContactByID returns a contact if it belongs to the tenant.
func (s *contactService) GetContactByID(userID, contactID uint) (*models.Contact, error) {
	var contact models.Contact
	if err := s.db.Where("id = ? AND user_id = ?", contactID, userID).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &contact, nil
}

// UpdateContact updates a contact's fields; empty values leave the
// existing ones untouched.
func (s *contactService) UpdateContact(userID, contactID uint, name string, contactType models.ContactType, email, phone, city string) (*models.Contact, error) {
	contact, err := s.GetContactByID(userID, contactID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if contactType != "" {
		updates["type"] = contactType
	}
	if email != "" {
		updates["email"] = email
	}
	if phone != "" {
		updates["phone"] = phone
	}
	if city != "" {
		updates["city"] = city
	}

	if len(updates) > 0 {
		if err := s.db.Model(contact).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return contact, nil
}

// DeleteContact soft-deletes a contact.
func (s *contactService) DeleteContact(userID, contactID uint) error {
	contact, err := s.GetContactByID(userID, contactID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(contact).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
