// Package models defines the persisted domain entities and their enums.
package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents the currencies a savings plan may be denominated in.
type Currency string

const (
	CurrencyCNY Currency = "CNY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyCNY, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// Cycle represents the saving rhythm of a plan.
type Cycle string

const (
	CycleDaily     Cycle = "daily"
	CycleWeekly    Cycle = "weekly"
	CycleMonthly   Cycle = "monthly"
	CycleQuarterly Cycle = "quarterly"
	CycleYearly    Cycle = "yearly"
)

// Valid reports whether c is a supported cycle.
func (c Cycle) Valid() bool {
	switch c {
	case CycleDaily, CycleWeekly, CycleMonthly, CycleQuarterly, CycleYearly:
		return true
	}
	return false
}

// EndDate returns the date a plan finishes when it starts at start and
// runs for times cycles. An unrecognized cycle is an error, never a
// silent default.
func (c Cycle) EndDate(start time.Time, times int) (time.Time, error) {
	switch c {
	case CycleDaily:
		return start.AddDate(0, 0, times), nil
	case CycleWeekly:
		return start.AddDate(0, 0, 7*times), nil
	case CycleMonthly:
		return start.AddDate(0, times, 0), nil
	case CycleQuarterly:
		return start.AddDate(0, 3*times, 0), nil
	case CycleYearly:
		return start.AddDate(times, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("unknown cycle %q", c)
}

// SavingsPlan represents one savings goal. OwnerID is set at creation and
// immutable. TotalAmount and EndDate are derived and recomputed on every
// create/update; SavedAmount tracks progress and is mutated independently.
type SavingsPlan struct {
	ID             string          `json:"id"`
	OwnerID        string          `json:"owner_id"`
	Name           string          `json:"name"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	Cycle          Cycle           `json:"cycle"`
	CycleTimes     int             `json:"cycle_times"`
	AmountPerCycle decimal.Decimal `json:"amount_per_cycle"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Currency       Currency        `json:"currency"`
	SavedAmount    decimal.Decimal `json:"saved_amount"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Key returns the store key.
func (p SavingsPlan) Key() string { return p.ID }

// WithKey returns a copy of the plan with the given key set.
func (p SavingsPlan) WithKey(key string) SavingsPlan {
	p.ID = key
	return p
}
