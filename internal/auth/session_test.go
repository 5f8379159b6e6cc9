package auth

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testSession(ttl time.Duration) Session {
	now := time.Now()
	return Session{
		Token:     "tok-" + now.Format(time.RFC3339Nano),
		Subject:   "alice",
		UserID:    "user-1",
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestManagerHoldsSession(t *testing.T) {
	m := NewManager(time.Minute, nil, nil, zap.NewNop().Sugar())
	defer m.Close()

	if m.IsValid() {
		t.Error("expected new manager to be invalid")
	}
	if m.State() != StateNoSession {
		t.Errorf("expected no_session, got %s", m.State())
	}

	sess := testSession(time.Hour)
	m.SetSession(sess)

	if !m.IsValid() {
		t.Error("expected manager to be valid")
	}
	if m.State() != StateActive {
		t.Errorf("expected active, got %s", m.State())
	}
	tok, ok := m.Token()
	if !ok || tok != sess.Token {
		t.Errorf("expected held token, got %q (ok=%v)", tok, ok)
	}
	subj, ok := m.Subject()
	if !ok || subj != "alice" {
		t.Errorf("expected subject alice, got %q (ok=%v)", subj, ok)
	}
}

func TestManagerRefreshSuccess(t *testing.T) {
	refreshed := make(chan struct{})
	var calls atomic.Int32

	refresh := func() (Session, error) {
		if calls.Add(1) == 1 {
			defer close(refreshed)
		}
		return testSession(time.Hour), nil
	}

	m := NewManager(60*time.Millisecond, refresh, nil, zap.NewNop().Sugar())
	defer m.Close()

	first := testSession(100 * time.Millisecond)
	m.SetSession(first)

	waitFor(t, refreshed, "refresh call")
	// Give the manager a beat to install the new session.
	time.Sleep(50 * time.Millisecond)

	if !m.IsValid() {
		t.Error("expected manager to stay valid after refresh")
	}
	tok, ok := m.Token()
	if !ok {
		t.Fatal("expected a held token after refresh")
	}
	if tok == first.Token {
		t.Error("expected the refreshed token to replace the original")
	}
	if m.State() != StateActive {
		t.Errorf("expected active after refresh, got %s", m.State())
	}
}

func TestManagerRefreshFailureForcesLogout(t *testing.T) {
	loggedOut := make(chan struct{})

	refresh := func() (Session, error) {
		return Session{}, errors.New("server unreachable")
	}

	m := NewManager(30*time.Millisecond, refresh, func() { close(loggedOut) }, zap.NewNop().Sugar())
	defer m.Close()

	m.SetSession(testSession(60 * time.Millisecond))

	waitFor(t, loggedOut, "forced logout")

	if m.IsValid() {
		t.Error("expected manager to be invalid after failed refresh")
	}
	if _, ok := m.Token(); ok {
		t.Error("expected held token to be cleared")
	}
	if m.State() != StateLoggedOut {
		t.Errorf("expected logged_out, got %s", m.State())
	}
}

func TestManagerReplaceSession(t *testing.T) {
	m := NewManager(time.Minute, nil, nil, zap.NewNop().Sugar())
	defer m.Close()

	first := testSession(time.Hour)
	m.SetSession(first)

	second := testSession(2 * time.Hour)
	m.SetSession(second)

	tok, ok := m.Token()
	if !ok || tok != second.Token {
		t.Errorf("expected second session to win, got %q (ok=%v)", tok, ok)
	}
}

func TestManagerLogout(t *testing.T) {
	m := NewManager(time.Minute, nil, nil, zap.NewNop().Sugar())
	defer m.Close()

	m.SetSession(testSession(time.Hour))
	m.Logout()

	if m.IsValid() {
		t.Error("expected manager to be invalid after logout")
	}
	if _, ok := m.Token(); ok {
		t.Error("expected no token after logout")
	}
}

func TestManagerCloseCancelsRefresh(t *testing.T) {
	var calls atomic.Int32
	refresh := func() (Session, error) {
		calls.Add(1)
		return testSession(time.Hour), nil
	}

	m := NewManager(40*time.Millisecond, refresh, nil, zap.NewNop().Sugar())
	m.SetSession(testSession(80 * time.Millisecond))
	m.Close()

	time.Sleep(150 * time.Millisecond)

	if n := calls.Load(); n != 0 {
		t.Errorf("expected no refresh after close, got %d", n)
	}
	if m.IsValid() {
		t.Error("expected closed manager to be invalid")
	}
}

func TestManagerExpiredSessionInvalid(t *testing.T) {
	m := NewManager(time.Minute, nil, nil, zap.NewNop().Sugar())
	defer m.Close()

	// Already expired; the timer fires immediately, the nil refresh
	// fails, and the manager logs out. Either way it is never valid.
	m.SetSession(testSession(-time.Second))

	if m.IsValid() {
		t.Error("expected expired session to be invalid")
	}
}
