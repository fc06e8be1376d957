// Package session owns who is logged in: the access token, the cached user,
// the administrator slot while impersonating, and their persistence.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/pkg/token"
	"github.com/fastygo/trucar/repository"
	"github.com/fastygo/trucar/usecase"
)

// Navigation targets returned by impersonation transitions.
const (
	RouteDashboard = "/dashboard"
	RouteAdmin     = "/admin"
	RouteLogin     = "/login"
)

// BearerHolder is the shared API client's default header set.
type BearerHolder interface {
	SetBearer(token string)
	ClearBearer()
}

// SectorSink receives the sector of every new session.
type SectorSink interface {
	SetSector(sector domain.Sector)
}

type Manager struct {
	auth     repository.AuthRepository
	store    repository.StateStore
	client   BearerHolder
	terms    SectorSink
	notifier usecase.Notifier
	logger   *zap.Logger

	mu      sync.RWMutex
	session domain.Session

	subMu     sync.Mutex
	listeners map[int]Listener
	nextID    int
}

func New(
	auth repository.AuthRepository,
	store repository.StateStore,
	client BearerHolder,
	terms SectorSink,
	notifier usecase.Notifier,
	logger *zap.Logger,
) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = usecase.Nop
	}
	return &Manager{
		auth:      auth,
		store:     store,
		client:    client,
		terms:     terms,
		notifier:  notifier,
		logger:    logger,
		listeners: map[int]Listener{},
	}
}

// Init hydrates the session from storage without a network round trip and
// re-attaches the bearer token. Malformed records are logged and deleted. A
// token without a readable user record is discarded with it. Storage read
// errors are returned; the session then starts empty.
func (m *Manager) Init(ctx context.Context) error {
	var restored domain.Session

	accessToken, user, err := m.readPair(ctx, domain.KeyAccessToken, domain.KeyUser)
	if err != nil {
		m.apply(domain.Session{})
		return err
	}
	if accessToken != "" && user != nil {
		restored.AccessToken = accessToken
		restored.User = user

		origToken, origUser, err := m.readPair(ctx, domain.KeyOriginalAccessToken, domain.KeyOriginalUser)
		if err != nil {
			m.apply(domain.Session{})
			return err
		}
		if origToken != "" && origUser != nil {
			restored.OriginalToken = origToken
			restored.OriginalUser = origUser
		}
	} else {
		// Without an active session an impersonation slot is meaningless.
		m.discard(ctx, domain.KeyOriginalAccessToken, domain.KeyOriginalUser)
	}

	restored.ExpiresAt = expiry(restored.AccessToken)
	m.apply(restored)

	if restored.IsAuthenticated() {
		m.logger.Debug("session restored",
			zap.Int("user_id", restored.User.ID),
			zap.Bool("impersonating", restored.IsImpersonating()))
	}
	m.emit(EventRestored)
	return nil
}

// Authenticate exchanges credentials for a token. On any failure the session,
// its persisted keys and the bearer header are cleared.
func (m *Manager) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	req := transport.LoginRequest{Username: creds.Email, Password: creds.Password}
	if err := transport.Validate(req); err != nil {
		m.reset(ctx)
		return nil, err
	}

	resp, err := m.auth.Login(ctx, req)
	if err != nil {
		m.reset(ctx)
		return nil, err
	}
	accessToken := resp.Bearer()
	if accessToken == "" || resp.User == nil {
		m.reset(ctx)
		return nil, domain.NewError(domain.ErrCodeInvalid, "login response without token or user")
	}

	next := domain.Session{
		AccessToken: accessToken,
		User:        resp.User,
		ExpiresAt:   expiry(accessToken),
	}
	if err := m.persist(ctx, next); err != nil {
		m.reset(ctx)
		return nil, err
	}

	m.apply(next)
	m.logger.Info("logged in", zap.Int("user_id", next.User.ID), zap.String("role", string(next.User.Role)))
	m.emit(EventLogin)
	return next.Clone(), nil
}

// Login reports success as a boolean. Failures are logged and notified.
func (m *Manager) Login(ctx context.Context, creds domain.Credentials) bool {
	if _, err := m.Authenticate(ctx, creds); err != nil {
		m.logger.Warn("login failed", zap.Error(err))
		m.notifier.Notify(usecase.LevelNegative, loginFailureMessage(err))
		return false
	}
	return true
}

// Logout clears the session in memory and storage and removes the bearer
// header. Calling it again is harmless. The returned error only reports a
// storage failure; the in-memory session is cleared regardless.
func (m *Manager) Logout(ctx context.Context) error {
	wasAuthenticated := m.IsAuthenticated()
	err := m.clear(ctx)
	if wasAuthenticated {
		m.logger.Info("logged out")
		m.emit(EventLogout)
	}
	return err
}

// StartImpersonation replaces an administrator session with target's session,
// keeping the administrator's under the original slot. Nested impersonation is
// refused so the original slot is never overwritten. Listeners receive a
// reset event; the returned route is where the caller should navigate.
func (m *Manager) StartImpersonation(ctx context.Context, accessToken string, target *domain.User) (string, error) {
	m.mu.RLock()
	current := m.session.Clone()
	m.mu.RUnlock()

	if !current.IsAuthenticated() || current.User == nil {
		m.logger.Error("impersonation requires an authenticated session")
		return "", domain.ErrNotAuthenticated
	}
	if current.IsImpersonating() {
		m.logger.Error("impersonation already in progress",
			zap.Int("admin_id", current.OriginalUser.ID),
			zap.Int("user_id", current.User.ID))
		return "", domain.ErrAlreadyImpersonating
	}
	if !current.User.IsSuperuser {
		m.logger.Error("impersonation requires an administrator", zap.Int("user_id", current.User.ID))
		return "", domain.ErrNotAdministrator
	}
	if accessToken == "" || target == nil {
		return "", domain.ErrInvalidPayload
	}

	next := domain.Session{
		AccessToken:   accessToken,
		User:          target.Clone(),
		OriginalToken: current.AccessToken,
		OriginalUser:  current.User,
		ExpiresAt:     expiry(accessToken),
	}
	if err := m.persist(ctx, next); err != nil {
		if rbErr := m.persist(ctx, *current); rbErr != nil {
			m.logger.Error("failed to restore session after storage error", zap.Error(rbErr))
		}
		return "", err
	}

	m.apply(next)
	m.logger.Info("impersonation started",
		zap.Int("admin_id", current.User.ID),
		zap.Int("user_id", target.ID))
	m.emit(EventImpersonationStarted)
	return RouteDashboard, nil
}

// StopImpersonation restores the administrator session. Without an original
// slot it behaves as Logout and routes to the login screen.
func (m *Manager) StopImpersonation(ctx context.Context) (string, error) {
	m.mu.RLock()
	current := m.session.Clone()
	m.mu.RUnlock()

	if !current.IsImpersonating() || current.OriginalToken == "" {
		m.logger.Warn("no original session to restore, logging out")
		return RouteLogin, m.Logout(ctx)
	}

	next := domain.Session{
		AccessToken: current.OriginalToken,
		User:        current.OriginalUser,
		ExpiresAt:   expiry(current.OriginalToken),
	}
	if err := m.persist(ctx, next); err != nil {
		return "", err
	}

	m.apply(next)
	m.logger.Info("impersonation stopped", zap.Int("admin_id", next.User.ID))
	m.emit(EventImpersonationStopped)
	return RouteAdmin, nil
}

// RefreshProfile re-reads the current user from the API and re-derives the sector.
func (m *Manager) RefreshProfile(ctx context.Context) (*domain.User, error) {
	if !m.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	user, err := m.auth.Me(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.writeUser(ctx, domain.KeyUser, user); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.session.User = user.Clone()
	next := m.session.Clone()
	m.mu.Unlock()
	m.applySector(next.User.Sector())

	m.emit(EventProfileRefreshed)
	return user.Clone(), nil
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.IsAuthenticated()
}

func (m *Manager) IsImpersonating() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.IsImpersonating()
}

// User returns a copy of the active user, or nil.
func (m *Manager) User() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.User.Clone()
}

// OriginalUser returns the administrator while impersonating, or nil.
func (m *Manager) OriginalUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.OriginalUser.Clone()
}

func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.AccessToken
}

// Sector is the sector of the active user's organization.
func (m *Manager) Sector() domain.Sector {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.User.Sector()
}

// Snapshot returns a deep copy of the whole session.
func (m *Manager) Snapshot() *domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.Clone()
}

// Claims decodes the access token, when it is a JWT.
func (m *Manager) Claims() (token.Claims, error) {
	return token.Inspect(m.AccessToken())
}

func (m *Manager) apply(next domain.Session) {
	m.mu.Lock()
	m.session = next
	m.mu.Unlock()

	if m.client != nil {
		if next.AccessToken != "" {
			m.client.SetBearer(next.AccessToken)
		} else {
			m.client.ClearBearer()
		}
	}
	m.applySector(next.User.Sector())
}

func (m *Manager) applySector(sector domain.Sector) {
	if m.terms != nil {
		m.terms.SetSector(sector)
	}
}

// clear empties memory, header, sector and every persisted key.
func (m *Manager) clear(ctx context.Context) error {
	m.apply(domain.Session{})
	return m.store.Delete(ctx, domain.SessionKeys...)
}

// reset is clear for failure paths: a storage error is logged, not returned.
func (m *Manager) reset(ctx context.Context) {
	wasAuthenticated := m.IsAuthenticated()
	if err := m.clear(ctx); err != nil {
		m.logger.Warn("failed to clear persisted session", zap.Error(err))
	}
	if wasAuthenticated {
		m.emit(EventLogout)
	}
}

// persist writes s, deleting the original slot when s is not impersonating.
func (m *Manager) persist(ctx context.Context, s domain.Session) error {
	if s.IsImpersonating() {
		if err := m.store.Set(ctx, domain.KeyOriginalAccessToken, s.OriginalToken); err != nil {
			return err
		}
		if err := m.writeUser(ctx, domain.KeyOriginalUser, s.OriginalUser); err != nil {
			return err
		}
	}
	if err := m.store.Set(ctx, domain.KeyAccessToken, s.AccessToken); err != nil {
		return err
	}
	if err := m.writeUser(ctx, domain.KeyUser, s.User); err != nil {
		return err
	}
	if !s.IsImpersonating() {
		return m.store.Delete(ctx, domain.KeyOriginalAccessToken, domain.KeyOriginalUser)
	}
	return nil
}

func (m *Manager) writeUser(ctx context.Context, key string, user *domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, key, string(payload))
}

// readPair loads a token and its user record. When either is missing or the
// record is malformed, both keys are discarded and empty values returned.
func (m *Manager) readPair(ctx context.Context, tokenKey, userKey string) (string, *domain.User, error) {
	accessToken, hasToken, err := m.store.Get(ctx, tokenKey)
	if err != nil {
		return "", nil, err
	}
	rawUser, hasUser, err := m.store.Get(ctx, userKey)
	if err != nil {
		return "", nil, err
	}
	if !hasToken && !hasUser {
		return "", nil, nil
	}

	user, parseErr := parseUser(rawUser)
	if !hasToken || accessToken == "" || !hasUser || parseErr != nil {
		fields := []zap.Field{zap.String("token_key", tokenKey), zap.String("user_key", userKey)}
		if parseErr != nil {
			fields = append(fields, zap.Error(parseErr))
		}
		m.logger.Warn("discarding incomplete persisted session", fields...)
		m.discard(ctx, tokenKey, userKey)
		return "", nil, nil
	}
	return accessToken, user, nil
}

func (m *Manager) discard(ctx context.Context, keys ...string) {
	if err := m.store.Delete(ctx, keys...); err != nil {
		m.logger.Warn("failed to delete persisted keys", zap.Strings("keys", keys), zap.Error(err))
	}
}

var errEmptyUser = errors.New("empty user record")

func parseUser(raw string) (*domain.User, error) {
	if raw == "" || raw == "undefined" {
		return nil, errEmptyUser
	}
	var user *domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, domain.WrapError(domain.ErrCodeCorrupt, "malformed user record", err)
	}
	if user == nil {
		return nil, errEmptyUser
	}
	return user, nil
}

func loginFailureMessage(err error) string {
	switch domain.CodeOf(err) {
	case domain.ErrCodeUnauthorized, domain.ErrCodeInvalid:
		return "Email ou senha incorretos."
	case domain.ErrCodeTransport:
		return "Não foi possível conectar ao servidor."
	default:
		return "Falha ao fazer login."
	}
}

func sortedIDs(listeners map[int]Listener) []int {
	ids := make([]int, 0, len(listeners))
	for id := range listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
