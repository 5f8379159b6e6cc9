// Package services contains the business logic behind the facade:
// credential handling and savings plan management.
package services

import (
	"time"

	"github.com/shopspring/decimal"

	"pennyplan/internal/auth"
	"pennyplan/internal/models"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username string `validate:"required,min=3,max=64"`
	Password string `validate:"required,min=8,max=72"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"omitempty,max=32"`
}

// PlanInput carries the mutable fields of a savings plan. The derived
// fields (total amount, end date) are always recomputed from these and
// never accepted from the caller.
type PlanInput struct {
	Name           string          `validate:"required,max=128"`
	StartDate      time.Time       `validate:"required"`
	Cycle          models.Cycle    `validate:"required,plan_cycle"`
	CycleTimes     int             `validate:"required,gte=1"`
	AmountPerCycle decimal.Decimal `validate:"-"`
	Currency       models.Currency `validate:"required,plan_currency"`
}

// CredentialServicer defines the contract for registration, login, and
// account maintenance.
type CredentialServicer interface {
	Register(input RegisterInput) (models.User, error)
	Authenticate(username, password string) (auth.Session, error)
	GetUserByID(id string) (models.User, error)
	UpdateSettings(userID string, settings models.Settings) (models.User, error)
	DeleteAccount(userID string) error
}

// PlanServicer defines the contract for savings plan management. Every
// method is scoped to an owner; a plan the owner does not hold is
// reported as not found.
type PlanServicer interface {
	CreatePlan(ownerID string, input PlanInput) (models.SavingsPlan, error)
	GetUserPlans(ownerID string) ([]models.SavingsPlan, error)
	GetPlanByID(planID, ownerID string) (models.SavingsPlan, error)
	UpdatePlan(planID, ownerID string, input PlanInput) (models.SavingsPlan, error)
	UpdateSavedAmount(planID, ownerID string, saved decimal.Decimal) (models.SavingsPlan, error)
	DeletePlan(planID, ownerID string) error
}
