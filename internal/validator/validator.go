// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("budget_status", validateBudgetStatus)
		_ = v.RegisterValidation("line_type", validateLineType)
		_ = v.RegisterValidation("model_status", validateModelStatus)
		_ = v.RegisterValidation("contact_type", validateContactType)
		_ = v.RegisterValidation("entry_status", validateEntryStatus)
	}
}

func validateBudgetStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "draft", "confirm", "revised", "archived":
		return true
	}
	return false
}

func validateLineType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateModelStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "draft", "confirm", "cancelled":
		return true
	}
	return false
}

func validateContactType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "customer", "vendor":
		return true
	}
	return false
}

func validateEntryStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "draft", "posted":
		return true
	}
	return false
}
