package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "pennyplan/internal/errors"
	"pennyplan/internal/models"
	"pennyplan/internal/store"
	"pennyplan/internal/validator"
)

// planService handles savings plan business logic.
type planService struct {
	plans *store.PlanStore
}

// NewPlanService creates a new PlanServicer.
func NewPlanService(plans *store.PlanStore) PlanServicer {
	return &planService{plans: plans}
}

// CreatePlan creates a plan owned by ownerID with derived fields
// computed. SavedAmount starts at zero.
func (s *planService) CreatePlan(ownerID string, input PlanInput) (models.SavingsPlan, error) {
	plan, err := buildPlan(input)
	if err != nil {
		return models.SavingsPlan{}, err
	}

	now := time.Now()
	plan.OwnerID = ownerID
	plan.SavedAmount = decimal.Zero
	plan.CreatedAt = now
	plan.UpdatedAt = now

	return s.plans.Put(plan)
}

// GetUserPlans returns all plans owned by ownerID.
func (s *planService) GetUserPlans(ownerID string) ([]models.SavingsPlan, error) {
	return s.plans.FindByOwner(ownerID), nil
}

// GetPlanByID returns the plan if ownerID owns it. A plan owned by
// someone else is reported as not found, never as forbidden.
func (s *planService) GetPlanByID(planID, ownerID string) (models.SavingsPlan, error) {
	plan, ok := s.plans.FindByIDAndOwner(planID, ownerID)
	if !ok {
		return models.SavingsPlan{}, apperrors.ErrPlanNotFound
	}
	return plan, nil
}

// UpdatePlan replaces the mutable fields of the plan and recomputes the
// derived ones. Identity, ownership, creation time, and saved progress
// carry over; progress has its own mutation path.
func (s *planService) UpdatePlan(planID, ownerID string, input PlanInput) (models.SavingsPlan, error) {
	existing, ok := s.plans.FindByIDAndOwner(planID, ownerID)
	if !ok {
		return models.SavingsPlan{}, apperrors.ErrPlanNotFound
	}

	plan, err := buildPlan(input)
	if err != nil {
		return models.SavingsPlan{}, err
	}

	plan.ID = existing.ID
	plan.OwnerID = existing.OwnerID
	plan.SavedAmount = existing.SavedAmount
	plan.CreatedAt = existing.CreatedAt
	plan.UpdatedAt = time.Now()

	return s.plans.Put(plan)
}

// UpdateSavedAmount sets the saved progress of the plan.
func (s *planService) UpdateSavedAmount(planID, ownerID string, saved decimal.Decimal) (models.SavingsPlan, error) {
	if saved.IsNegative() {
		return models.SavingsPlan{}, apperrors.ErrInvalidAmount
	}

	plan, ok := s.plans.FindByIDAndOwner(planID, ownerID)
	if !ok {
		return models.SavingsPlan{}, apperrors.ErrPlanNotFound
	}

	plan.SavedAmount = saved
	plan.UpdatedAt = time.Now()
	return s.plans.Put(plan)
}

// DeletePlan removes the plan if ownerID owns it.
func (s *planService) DeletePlan(planID, ownerID string) error {
	if _, ok := s.plans.FindByIDAndOwner(planID, ownerID); !ok {
		return apperrors.ErrPlanNotFound
	}
	return s.plans.Delete(planID)
}

// buildPlan validates input and computes the derived fields. Total
// amount is exact decimal math: amount per cycle times cycle count.
func buildPlan(input PlanInput) (models.SavingsPlan, error) {
	if !input.Cycle.Valid() {
		return models.SavingsPlan{}, apperrors.WithMessage(apperrors.ErrInvalidCycle,
			fmt.Sprintf("unsupported savings cycle %q", input.Cycle))
	}
	if input.AmountPerCycle.IsNegative() {
		return models.SavingsPlan{}, apperrors.ErrInvalidAmount
	}
	if err := validator.Struct(input); err != nil {
		return models.SavingsPlan{}, err
	}

	endDate, err := input.Cycle.EndDate(input.StartDate, input.CycleTimes)
	if err != nil {
		return models.SavingsPlan{}, apperrors.Wrap(apperrors.ErrInvalidCycle, err)
	}

	return models.SavingsPlan{
		Name:           input.Name,
		StartDate:      input.StartDate,
		EndDate:        endDate,
		Cycle:          input.Cycle,
		CycleTimes:     input.CycleTimes,
		AmountPerCycle: input.AmountPerCycle,
		TotalAmount:    input.AmountPerCycle.Mul(decimal.NewFromInt(int64(input.CycleTimes))),
		Currency:       input.Currency,
	}, nil
}
