package auth

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State is the lifecycle state of a session manager.
type State int

const (
	StateNoSession State = iota
	StateActive
	StateRefreshPending
	StateLoggedOut
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateNoSession:
		return "no_session"
	case StateActive:
		return "active"
	case StateRefreshPending:
		return "refresh_pending"
	case StateLoggedOut:
		return "logged_out"
	}
	return "unknown"
}

// RefreshFunc obtains a replacement session shortly before the current
// one expires, typically by re-authenticating.
type RefreshFunc func() (Session, error)

// Manager holds the single active session of a client process and renews
// it in the background at expiry minus the refresh buffer. A failed
// renewal clears the session and invokes the logout callback; it never
// crashes the process. Managers are constructed explicitly and passed to
// whoever needs the current token; there is no global instance.
type Manager struct {
	refreshBuffer time.Duration
	refresh       RefreshFunc
	onLogout      func()
	log           *zap.SugaredLogger

	mu      sync.Mutex
	state   State
	session Session
	timer   *time.Timer
	closed  bool
}

// NewManager creates a manager that renews via refresh at expiry minus
// refreshBuffer. onLogout may be nil; when set it is invoked (on its own
// goroutine) every time the session is cleared.
func NewManager(refreshBuffer time.Duration, refresh RefreshFunc, onLogout func(), log *zap.SugaredLogger) *Manager {
	return &Manager{
		refreshBuffer: refreshBuffer,
		refresh:       refresh,
		onLogout:      onLogout,
		log:           log,
		state:         StateNoSession,
	}
}

// SetSession replaces any held session and schedules the next refresh.
// There is no queuing: the previous session and its timer are dropped.
func (m *Manager) SetSession(sess Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	m.stopTimerLocked()
	m.session = sess
	m.state = StateActive
	m.scheduleLocked()
}

// Token returns the held bearer token, if any.
func (m *Manager) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.heldLocked() {
		return "", false
	}
	return m.session.Token, true
}

// Subject returns the subject of the held session, if any.
func (m *Manager) Subject() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.heldLocked() {
		return "", false
	}
	return m.session.Subject, true
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// IsValid reports whether a token is held and not yet expired.
func (m *Manager) IsValid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.heldLocked() && time.Now().Before(m.session.ExpiresAt)
}

// Logout clears the held session and cancels any pending refresh.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logoutLocked()
}

// Close cancels the refresh timer and clears the session. The manager
// must not be used afterwards; a timer that fires concurrently with
// Close finds the closed flag and returns without touching anything.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.stopTimerLocked()
	m.session = Session{}
	m.state = StateLoggedOut
}

func (m *Manager) heldLocked() bool {
	return m.state == StateActive || m.state == StateRefreshPending
}

// scheduleLocked arms the one-shot refresh timer. Caller holds mu.
func (m *Manager) scheduleLocked() {
	fireIn := time.Until(m.session.ExpiresAt.Add(-m.refreshBuffer))
	if fireIn < 0 {
		fireIn = 0
	}
	m.timer = time.AfterFunc(fireIn, m.refreshNow)
}

// refreshNow runs on the timer goroutine. The refresh call itself runs
// outside the lock; a session replaced or cleared meanwhile wins and the
// stale refresh result is discarded.
func (m *Manager) refreshNow() {
	m.mu.Lock()
	if m.closed || m.state != StateActive {
		m.mu.Unlock()
		return
	}
	m.state = StateRefreshPending
	subject := m.session.Subject
	refresh := m.refresh
	m.mu.Unlock()

	var (
		sess Session
		err  error
	)
	if refresh == nil {
		err = errors.New("no refresh function configured")
	} else {
		sess, err = refresh()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.state != StateRefreshPending {
		return
	}
	if err != nil {
		m.log.Warnw("token refresh failed, forcing logout",
			"subject", subject,
			"error", err,
		)
		m.logoutLocked()
		return
	}

	m.session = sess
	m.state = StateActive
	m.scheduleLocked()
	m.log.Debugw("token refreshed",
		"subject", sess.Subject,
		"expires_at", sess.ExpiresAt,
	)
}

// logoutLocked clears session state and notifies the owner. Caller
// holds mu; the callback runs on its own goroutine so it may safely call
// back into the manager.
func (m *Manager) logoutLocked() {
	m.stopTimerLocked()
	m.session = Session{}
	m.state = StateLoggedOut
	if m.onLogout != nil {
		go m.onLogout()
	}
}

func (m *Manager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
