package store

import (
	"path/filepath"

	"pennyplan/internal/models"
)

const plansFile = "savings_plans.json"

// PlanStore specializes Store for savings plans, adding owner filtering.
// A plan owned by someone else is indistinguishable from a plan that
// does not exist.
type PlanStore struct {
	*Store[models.SavingsPlan]
}

// OpenPlanStore opens the savings plan collection under dir.
func OpenPlanStore(dir string) (*PlanStore, error) {
	s, err := Open[models.SavingsPlan](filepath.Join(dir, plansFile))
	if err != nil {
		return nil, err
	}
	return &PlanStore{Store: s}, nil
}

// FindByOwner returns all plans owned by userID.
func (s *PlanStore) FindByOwner(userID string) []models.SavingsPlan {
	all := s.FindAll()
	out := make([]models.SavingsPlan, 0, len(all))
	for _, p := range all {
		if p.OwnerID == userID {
			out = append(out, p)
		}
	}
	return out
}

// FindByIDAndOwner returns the plan with the given id if userID owns it.
func (s *PlanStore) FindByIDAndOwner(id, userID string) (models.SavingsPlan, bool) {
	p, ok := s.Get(id)
	if !ok || p.OwnerID != userID {
		return models.SavingsPlan{}, false
	}
	return p, true
}
