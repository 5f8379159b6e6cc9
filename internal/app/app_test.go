package app

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pennyplan/internal/auth"
	"pennyplan/internal/models"
	"pennyplan/internal/services"
	"pennyplan/internal/testutil"
)

func setupApp(t *testing.T) *App {
	t.Helper()

	users, plans := testutil.SetupTestStores(t)
	codec := auth.NewCodec([]byte("0123456789abcdef0123456789abcdef"), time.Hour)

	return New(
		codec,
		services.NewCredentialService(users, plans, codec),
		services.NewPlanService(plans),
	)
}

func register(t *testing.T, a *App, username string) auth.Session {
	t.Helper()

	_, err := a.Register(services.RegisterInput{
		Username: username,
		Password: "password123",
		Email:    username + "@example.com",
	})
	testutil.AssertNoError(t, err)

	sess, err := a.Authenticate(username, "password123")
	testutil.AssertNoError(t, err)
	return sess
}

func tripInput() services.PlanInput {
	return services.PlanInput{
		Name:           "Trip",
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Cycle:          models.CycleMonthly,
		CycleTimes:     3,
		AmountPerCycle: decimal.NewFromInt(100),
		Currency:       models.CurrencyCNY,
	}
}

func TestFullFlow(t *testing.T) {
	a := setupApp(t)
	sess := register(t, a, "alice")

	plan, err := a.CreatePlan(sess.Token, tripInput())
	testutil.AssertNoError(t, err)
	testutil.AssertDecimalEqual(t, "300", plan.TotalAmount)

	all, err := a.GetPlans(sess.Token)
	testutil.AssertNoError(t, err)
	if len(all) != 1 || all[0].ID != plan.ID {
		t.Fatalf("expected the created plan back, got %+v", all)
	}

	updated, err := a.UpdateSavedAmount(sess.Token, plan.ID, decimal.NewFromInt(120))
	testutil.AssertNoError(t, err)
	testutil.AssertDecimalEqual(t, "120", updated.SavedAmount)

	me, err := a.CurrentUser(sess.Token)
	testutil.AssertNoError(t, err)
	if me.Username != "alice" {
		t.Errorf("expected alice, got %s", me.Username)
	}

	err = a.DeletePlan(sess.Token, plan.ID)
	testutil.AssertNoError(t, err)

	all, err = a.GetPlans(sess.Token)
	testutil.AssertNoError(t, err)
	if len(all) != 0 {
		t.Errorf("expected no plans after delete, got %d", len(all))
	}
}

func TestRejectsBadTokens(t *testing.T) {
	a := setupApp(t)

	_, err := a.GetPlans("garbage")
	testutil.AssertAppError(t, err, "INVALID_TOKEN")

	_, err = a.CreatePlan("", tripInput())
	testutil.AssertAppError(t, err, "INVALID_TOKEN")
}

// Ownership comes from the verified claims, so one user's token can
// never reach another user's plans.
func TestTokenScopesOwnership(t *testing.T) {
	a := setupApp(t)
	alice := register(t, a, "alice")
	bob := register(t, a, "bob")

	plan, err := a.CreatePlan(alice.Token, tripInput())
	testutil.AssertNoError(t, err)

	_, err = a.GetPlan(bob.Token, plan.ID)
	testutil.AssertAppError(t, err, "PLAN_NOT_FOUND")

	err = a.DeletePlan(bob.Token, plan.ID)
	testutil.AssertAppError(t, err, "PLAN_NOT_FOUND")

	bobPlans, err := a.GetPlans(bob.Token)
	testutil.AssertNoError(t, err)
	if len(bobPlans) != 0 {
		t.Errorf("expected bob to see no plans, got %d", len(bobPlans))
	}
}

// The manager holds the session handed out by Authenticate and renews it
// through the same call path a client would use.
func TestSessionManagerWiring(t *testing.T) {
	a := setupApp(t)
	sess := register(t, a, "alice")

	m := auth.NewManager(
		5*time.Minute,
		func() (auth.Session, error) { return a.Authenticate("alice", "password123") },
		nil,
		zap.NewNop().Sugar(),
	)
	defer m.Close()

	m.SetSession(sess)
	if !m.IsValid() {
		t.Fatal("expected a fresh session to be valid")
	}

	tok, ok := m.Token()
	if !ok {
		t.Fatal("expected the manager to hold the token")
	}
	if _, err := a.CurrentUser(tok); err != nil {
		t.Errorf("expected the held token to authorize calls: %v", err)
	}
}

func TestUpdateSettingsAndDeleteAccount(t *testing.T) {
	a := setupApp(t)
	sess := register(t, a, "alice")

	updated, err := a.UpdateSettings(sess.Token, models.Settings{
		PreferredCurrency: models.CurrencyUSD,
		PushNotifications: true,
	})
	testutil.AssertNoError(t, err)
	if updated.Settings.PreferredCurrency != models.CurrencyUSD {
		t.Errorf("expected USD preference, got %s", updated.Settings.PreferredCurrency)
	}

	_, err = a.CreatePlan(sess.Token, tripInput())
	testutil.AssertNoError(t, err)

	err = a.DeleteAccount(sess.Token)
	testutil.AssertNoError(t, err)

	// The token still verifies but its user is gone.
	_, err = a.CurrentUser(sess.Token)
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
}
