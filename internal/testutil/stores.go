// Package testutil provides test helpers for setting up temp-dir backed
// stores, creating fixtures, and making assertions.
package testutil

import (
	"testing"

	"pennyplan/internal/store"
)

// SetupTestStores creates user and plan stores backed by a per-test
// temporary directory. The directory is removed when the test finishes.
func SetupTestStores(t *testing.T) (*store.UserStore, *store.PlanStore) {
	t.Helper()

	dir := t.TempDir()

	users, err := store.OpenUserStore(dir)
	if err != nil {
		t.Fatalf("failed to open test user store: %v", err)
	}
	plans, err := store.OpenPlanStore(dir)
	if err != nil {
		t.Fatalf("failed to open test plan store: %v", err)
	}

	return users, plans
}
