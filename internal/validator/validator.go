// Package validator provides input validation for the service layer.
package validator

import (
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "pennyplan/internal/errors"
	"pennyplan/internal/models"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// engine returns the process-wide validator with custom rules registered.
func engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("plan_cycle", validatePlanCycle)
		_ = validate.RegisterValidation("plan_currency", validatePlanCurrency)
	})
	return validate
}

// Struct validates v against its struct tags and converts any violation
// into an InvalidInput application error carrying the violation detail.
func Struct(v any) error {
	if err := engine().Struct(v); err != nil {
		appErr := apperrors.Wrap(apperrors.ErrInvalidInput, err)
		appErr.Message = err.Error()
		return appErr
	}
	return nil
}

func validatePlanCycle(fl validator.FieldLevel) bool {
	return models.Cycle(fl.Field().String()).Valid()
}

func validatePlanCurrency(fl validator.FieldLevel) bool {
	return models.Currency(fl.Field().String()).Valid()
}
