// Package app exposes the plain-data contract consumed by external
// collaborators (routing layer, export writers, desktop client). It is
// the trust boundary: every entity operation takes the bearer token and
// derives the acting user from its verified claims, never from a
// client-supplied field.
package app

import (
	"github.com/shopspring/decimal"

	"pennyplan/internal/auth"
	"pennyplan/internal/models"
	"pennyplan/internal/services"
)

// App wires the token codec and the services into one facade.
type App struct {
	codec       *auth.Codec
	credentials services.CredentialServicer
	plans       services.PlanServicer
}

// New creates the facade.
func New(codec *auth.Codec, credentials services.CredentialServicer, plans services.PlanServicer) *App {
	return &App{codec: codec, credentials: credentials, plans: plans}
}

// Register creates a new account. No token is issued; call Authenticate
// afterwards.
func (a *App) Register(input services.RegisterInput) (models.User, error) {
	return a.credentials.Register(input)
}

// Authenticate verifies credentials and returns a fresh session, ready
// to hand to a session manager.
func (a *App) Authenticate(username, password string) (auth.Session, error) {
	return a.credentials.Authenticate(username, password)
}

// verify checks the token and returns the acting user's id.
func (a *App) verify(token string) (string, error) {
	claims, err := a.codec.Verify(token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// CurrentUser returns the account behind the token.
func (a *App) CurrentUser(token string) (models.User, error) {
	userID, err := a.verify(token)
	if err != nil {
		return models.User{}, err
	}
	return a.credentials.GetUserByID(userID)
}

// UpdateSettings replaces the caller's preferences.
func (a *App) UpdateSettings(token string, settings models.Settings) (models.User, error) {
	userID, err := a.verify(token)
	if err != nil {
		return models.User{}, err
	}
	return a.credentials.UpdateSettings(userID, settings)
}

// DeleteAccount removes the caller's account and all their plans.
func (a *App) DeleteAccount(token string) error {
	userID, err := a.verify(token)
	if err != nil {
		return err
	}
	return a.credentials.DeleteAccount(userID)
}

// CreatePlan creates a plan owned by the caller.
func (a *App) CreatePlan(token string, input services.PlanInput) (models.SavingsPlan, error) {
	userID, err := a.verify(token)
	if err != nil {
		return models.SavingsPlan{}, err
	}
	return a.plans.CreatePlan(userID, input)
}

// GetPlans returns all plans owned by the caller.
func (a *App) GetPlans(token string) ([]models.SavingsPlan, error) {
	userID, err := a.verify(token)
	if err != nil {
		return nil, err
	}
	return a.plans.GetUserPlans(userID)
}

// GetPlan returns one plan owned by the caller.
func (a *App) GetPlan(token, planID string) (models.SavingsPlan, error) {
	userID, err := a.verify(token)
	if err != nil {
		return models.SavingsPlan{}, err
	}
	return a.plans.GetPlanByID(planID, userID)
}

// UpdatePlan replaces the mutable fields of one of the caller's plans.
func (a *App) UpdatePlan(token, planID string, input services.PlanInput) (models.SavingsPlan, error) {
	userID, err := a.verify(token)
	if err != nil {
		return models.SavingsPlan{}, err
	}
	return a.plans.UpdatePlan(planID, userID, input)
}

// UpdateSavedAmount sets the saved progress of one of the caller's plans.
func (a *App) UpdateSavedAmount(token, planID string, saved decimal.Decimal) (models.SavingsPlan, error) {
	userID, err := a.verify(token)
	if err != nil {
		return models.SavingsPlan{}, err
	}
	return a.plans.UpdateSavedAmount(planID, userID, saved)
}

// DeletePlan removes one of the caller's plans.
func (a *App) DeletePlan(token, planID string) error {
	userID, err := a.verify(token)
	if err != nil {
		return err
	}
	return a.plans.DeletePlan(planID, userID)
}
