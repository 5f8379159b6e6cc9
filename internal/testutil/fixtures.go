package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"pennyplan/internal/models"
	"pennyplan/internal/store"
)

// TestPassword is the clear-text password behind every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique
// username/email.
func CreateTestUser(t *testing.T, users *store.UserStore) models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithUsername(t, users, fmt.Sprintf("user%d", n))
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, users *store.UserStore, username string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now()
	user, err := users.Put(models.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        username + "@test.com",
		Settings:     models.Settings{PreferredCurrency: models.CurrencyCNY},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestPlan creates a monthly plan owned by ownerID.
func CreateTestPlan(t *testing.T, plans *store.PlanStore, ownerID string) models.SavingsPlan {
	t.Helper()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	plan, err := plans.Put(models.SavingsPlan{
		OwnerID:        ownerID,
		Name:           fmt.Sprintf("plan%d", nextID()),
		StartDate:      start,
		EndDate:        start.AddDate(0, 3, 0),
		Cycle:          models.CycleMonthly,
		CycleTimes:     3,
		AmountPerCycle: decimal.NewFromInt(100),
		TotalAmount:    decimal.NewFromInt(300),
		Currency:       models.CurrencyCNY,
		SavedAmount:    decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		t.Fatalf("failed to create test plan: %v", err)
	}
	return plan
}
