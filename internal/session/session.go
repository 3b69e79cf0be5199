// Package session holds the authenticated identity of the client. The token
// is JWT-shaped with a numeric exp claim; it is parsed without signature
// verification because the client holds no signing key — expiry is the only
// claim the client acts on.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/peakform/storefront/internal/models"
)

// State is the session lifecycle state.
type State string

const (
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

// Store is the durable storage the session survives restarts in.
type Store interface {
	LoadSession() (token string, user models.User, ok bool, err error)
	SaveSession(token string, user models.User) error
	ClearSession() error
}

// Manager guards the in-memory session and keeps it consistent with durable
// storage. Every token read re-checks expiry; an expired token and its
// paired profile are purged atomically, never independently.
type Manager struct {
	mu    sync.Mutex
	store Store
	token string
	user  models.User
	now   func() time.Time
}

// NewManager constructs a Manager over the given durable store.
func NewManager(store Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// Restore performs the startup reconciliation: durable storage is consulted
// once, and an expired token found there is purged without ever entering the
// authenticated state.
func (m *Manager) Restore() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" {
		return
	}
	token, user, ok, err := m.store.LoadSession()
	if err != nil {
		log.Warn().Err(err).Msg("session restore failed")
		return
	}
	if !ok {
		return
	}
	if expired(token, m.now()) {
		log.Info().Msg("persisted session expired, purging")
		m.purgeLocked()
		return
	}
	m.token = token
	m.user = user
	log.Info().Str("email", user.Email).Msg("session restored")
}

// Establish stores a freshly issued session in memory and durable storage.
func (m *Manager) Establish(token string, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if expired(token, m.now()) {
		m.purgeLocked()
		return jwt.ErrTokenExpired
	}
	m.token = token
	m.user = user
	return m.store.SaveSession(token, user)
}

// Token returns the current session token, or "" when anonymous. Expiry is
// validated on every read; a token past its exp claim is purged together
// with the profile before returning.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == "" {
		return ""
	}
	if expired(m.token, m.now()) {
		log.Info().Msg("session expired, purging")
		m.purgeLocked()
		return ""
	}
	return m.token
}

// User returns the profile of the authenticated user.
func (m *Manager) User() (models.User, bool) {
	if m.Token() == "" {
		return models.User{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, true
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	if m.Token() == "" {
		return StateAnonymous
	}
	return StateAuthenticated
}

// Logout purges the session explicitly. The caller clears the cart ledger.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeLocked()
}

func (m *Manager) purgeLocked() {
	m.token = ""
	m.user = models.User{}
	if err := m.store.ClearSession(); err != nil {
		log.Warn().Err(err).Msg("failed to clear persisted session")
	}
}

// expired reports whether the token's exp claim is at or before now. A token
// that cannot be parsed or carries no exp claim is treated as expired rather
// than trusted indefinitely.
func expired(token string, now time.Time) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return true
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return !exp.Time.After(now)
}
