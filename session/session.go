// Package session drives the login lifecycle of one provider session.
//
// A Manager is created per resolution and never shared between requests.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/cinelink/cinelink/log"
	"github.com/cinelink/cinelink/source"
)

// State of a Manager.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
	// Failed is terminal. A new Manager is needed to try again.
	Failed
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Manager owns a single source.Session.
type Manager struct {
	provider source.Provider

	mu              sync.Mutex
	state           State
	session         *source.Session
	creds           source.Credentials
	reauthenticated bool
}

// New returns an unauthenticated manager for p.
func New(p source.Provider) *Manager {
	return &Manager{provider: p, state: Unauthenticated}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Session returns a copy of the held session, or nil before login.
func (m *Manager) Session() *source.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil
	}
	s := *m.session
	return &s
}

// IsValid probes the provider with the held token. It never mutates the
// session and reports false on any failure. Without a token no request is made.
func (m *Manager) IsValid(ctx context.Context) bool {
	s := m.Session()
	if !s.HasToken() {
		return false
	}

	if err := m.provider.Probe(ctx, s); err != nil {
		log.Debugf("session probe on %s failed: %s", m.provider.Name(), err)
		return false
	}
	return true
}

// Login authenticates with creds. Incomplete credentials return false
// without touching the network, and a still valid session is kept as is.
func (m *Manager) Login(ctx context.Context, creds source.Credentials) bool {
	if !creds.Complete() {
		return false
	}

	m.mu.Lock()
	if m.state == Failed {
		m.mu.Unlock()
		return false
	}
	m.creds = creds
	m.mu.Unlock()

	if m.IsValid(ctx) {
		return true
	}

	m.setState(Authenticating)
	if m.login(ctx) {
		return true
	}

	m.setState(Unauthenticated)
	return false
}

// Reauthenticate performs the one re-login a manager allows after the
// provider rejected its token. A failed or second attempt moves the
// manager to Failed.
func (m *Manager) Reauthenticate(ctx context.Context) bool {
	m.mu.Lock()
	if m.state == Failed || m.reauthenticated || !m.creds.Complete() {
		m.state = Failed
		m.mu.Unlock()
		return false
	}
	m.reauthenticated = true
	m.state = Authenticating
	m.mu.Unlock()

	if m.login(ctx) {
		return true
	}

	m.setState(Failed)
	return false
}

func (m *Manager) login(ctx context.Context) bool {
	m.mu.Lock()
	creds := m.creds
	m.mu.Unlock()

	s, err := m.provider.Login(ctx, creds)
	if err != nil || !s.HasToken() {
		if err == nil {
			err = fmt.Errorf("empty token")
		}
		log.Warnf("login to %s failed: %s", m.provider.Name(), err)
		return false
	}

	s.Valid = true

	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	m.state = Authenticated
	return true
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}
