// Package validator provides a shared validation engine for service inputs.
package validator

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"fintrack/internal/models"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Get returns the shared validator with all custom validations registered.
func Get() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("transaction_type", validateTransactionType)
	})
	return validate
}

// Struct validates the exposed fields of s against its validate tags.
func Struct(s interface{}) error {
	return Get().Struct(s)
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).Valid()
}
