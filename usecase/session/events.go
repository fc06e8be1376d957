package session

import (
	"time"

	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/pkg/token"
)

type EventKind string

const (
	EventRestored             EventKind = "restored"
	EventLogin                EventKind = "login"
	EventLogout               EventKind = "logout"
	EventImpersonationStarted EventKind = "impersonation_started"
	EventImpersonationStopped EventKind = "impersonation_stopped"
	EventProfileRefreshed     EventKind = "profile_refreshed"
)

// Event is delivered to listeners after the session changed.
type Event struct {
	Kind    EventKind
	Session *domain.Session
}

// Resets reports whether caches built for the previous session must be dropped.
func (e Event) Resets() bool {
	return e.Kind != EventProfileRefreshed
}

type Listener func(Event)

// Subscribe registers fn for session events and returns a function removing it.
// Listeners run synchronously, in registration order, outside the session lock.
func (m *Manager) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	m.subMu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.listeners, id)
		m.subMu.Unlock()
	}
}

func (m *Manager) emit(kind EventKind) {
	ev := Event{Kind: kind, Session: m.Snapshot()}

	m.subMu.Lock()
	fns := make([]Listener, 0, len(m.listeners))
	for _, id := range sortedIDs(m.listeners) {
		fns = append(fns, m.listeners[id])
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// expiry returns the exp claim of a JWT access token, or nil for opaque tokens.
func expiry(accessToken string) *time.Time {
	if accessToken == "" {
		return nil
	}
	claims, err := token.Inspect(accessToken)
	if err != nil {
		return nil
	}
	return claims.ExpiresAt
}

// Resetter is a cache that belongs to one session.
type Resetter interface {
	Reset()
}

// ResetOnChange drops every store's cache whenever the session changes hands
// and returns the function that stops doing so.
func (m *Manager) ResetOnChange(stores ...Resetter) func() {
	return m.Subscribe(func(ev Event) {
		if !ev.Resets() {
			return
		}
		for _, s := range stores {
			s.Reset()
		}
	})
}
