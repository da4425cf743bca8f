// Package session holds the signed-in user's credentials and hands the bearer
// token to the API client.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/fitnessdump/fitdump/internal/kvstore"
	"github.com/fitnessdump/fitdump/internal/model"
)

// StorageKey is where the credentials are persisted.
const StorageKey = "auth"

// ErrNotSignedIn is returned by operations that need credentials
var ErrNotSignedIn = errors.New("not signed in")

// Credentials is the persisted sign-in record.
type Credentials struct {
	Token        string     `json:"token"`
	RefreshToken string     `json:"refreshToken"`
	User         model.User `json:"user"`
}

// Claims are the fields read from the bearer token. The signature is not
// checked here; that is the server's job.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"userId,omitempty"`
	Role   string `json:"role,omitempty"`
}

// Authenticator is the subset of the auth API the manager drives.
type Authenticator interface {
	Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) error
	Refresh(ctx context.Context, refreshToken string) (model.AuthResponse, error)
	Logout(ctx context.Context) error
}

type Option func(*Manager)

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

type watcher struct {
	id int
	fn func(model.User, bool)
}

type Manager struct {
	auth   Authenticator
	store  kvstore.Store
	logger *zap.Logger
	now    func() time.Time

	mu        sync.RWMutex
	creds     *Credentials
	watchers  []watcher
	nextWatch int
}

func New(store kvstore.Store, auth Authenticator, opts ...Option) *Manager {
	m := &Manager{
		auth:   auth,
		store:  store,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore loads persisted credentials. Expired tokens are dropped.
func (m *Manager) Restore(ctx context.Context) error {
	var creds Credentials
	err := kvstore.GetJSON(ctx, m.store, StorageKey, &creds)
	if kvstore.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	if creds.Token == "" || m.expired(creds.Token) {
		m.logger.Debug("discarding stored session", zap.Int64("user_id", creds.User.ID))
		if err := m.store.Delete(ctx, StorageKey); err != nil {
			return fmt.Errorf("restore session: %w", err)
		}
		return nil
	}

	m.set(&creds)
	return nil
}

func (m *Manager) Login(ctx context.Context, req model.LoginRequest) (model.User, error) {
	if err := req.Validate(); err != nil {
		return model.User{}, err
	}
	resp, err := m.auth.Login(ctx, req)
	if err != nil {
		return model.User{}, err
	}
	creds := Credentials{Token: resp.Token, RefreshToken: resp.RefreshToken, User: resp.User}
	if err := m.persist(ctx, &creds); err != nil {
		return model.User{}, err
	}
	m.logger.Info("signed in", zap.String("username", resp.User.Username))
	return resp.User, nil
}

// Register creates an account. It does not sign in.
func (m *Manager) Register(ctx context.Context, req model.RegisterRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return m.auth.Register(ctx, req)
}

// Logout tells the server and always forgets the local credentials, even if
// the server call fails.
func (m *Manager) Logout(ctx context.Context) error {
	if _, ok := m.Credentials(); ok {
		if err := m.auth.Logout(ctx); err != nil {
			m.logger.Warn("logout request failed", zap.Error(err))
		}
	}
	return m.clear(ctx)
}

// Refresh exchanges the refresh token for a new token pair.
func (m *Manager) Refresh(ctx context.Context) error {
	current, ok := m.Credentials()
	if !ok || current.RefreshToken == "" {
		return ErrNotSignedIn
	}
	resp, err := m.auth.Refresh(ctx, current.RefreshToken)
	if err != nil {
		return err
	}

	next := Credentials{Token: resp.Token, RefreshToken: resp.RefreshToken, User: resp.User}
	if next.RefreshToken == "" {
		next.RefreshToken = current.RefreshToken
	}
	if next.User.ID == 0 {
		next.User = current.User
	}
	return m.persist(ctx, &next)
}

// Invalidate drops the credentials after the server rejected them.
func (m *Manager) Invalidate(ctx context.Context) {
	if _, ok := m.Credentials(); !ok {
		return
	}
	m.logger.Info("session rejected by server; signing out")
	if err := m.clear(ctx); err != nil {
		m.logger.Warn("failed to clear stored session", zap.Error(err))
	}
}

// Token implements api.CredentialSource.
func (m *Manager) Token(ctx context.Context) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.creds == nil || m.creds.Token == "" {
		return "", false
	}
	return m.creds.Token, true
}

func (m *Manager) Credentials() (Credentials, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.creds == nil {
		return Credentials{}, false
	}
	return *m.creds, true
}

func (m *Manager) CurrentUser() (model.User, bool) {
	creds, ok := m.Credentials()
	return creds.User, ok
}

// Watch calls fn whenever the signed-in user changes. It returns a function
// that stops watching.
func (m *Manager) Watch(fn func(model.User, bool)) func() {
	m.mu.Lock()
	id := m.nextWatch
	m.nextWatch++
	m.watchers = append(m.watchers, watcher{id: id, fn: fn})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, w := range m.watchers {
				if w.id == id {
					m.watchers = append(m.watchers[:i:i], m.watchers[i+1:]...)
					return
				}
			}
		})
	}
}

// Claims decodes the current token without verifying it.
func (m *Manager) Claims() (*Claims, error) {
	token, ok := m.Token(context.Background())
	if !ok {
		return nil, ErrNotSignedIn
	}
	return ParseClaims(token)
}

func ParseClaims(token string) (*Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return &claims, nil
}

func (m *Manager) expired(token string) bool {
	claims, err := ParseClaims(token)
	if err != nil || claims.ExpiresAt == nil {
		// opaque tokens are left for the server to judge
		return false
	}
	return !claims.ExpiresAt.Time.After(m.now())
}

func (m *Manager) persist(ctx context.Context, creds *Credentials) error {
	if err := kvstore.SetJSON(ctx, m.store, StorageKey, creds); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	m.set(creds)
	return nil
}

func (m *Manager) clear(ctx context.Context) error {
	m.set(nil)
	if err := m.store.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (m *Manager) set(creds *Credentials) {
	m.mu.Lock()
	prev := m.creds
	m.creds = creds
	watchers := make([]watcher, len(m.watchers))
	copy(watchers, m.watchers)
	m.mu.Unlock()

	var prevID, nextID int64
	if prev != nil {
		prevID = prev.User.ID
	}
	var user model.User
	if creds != nil {
		user = creds.User
		nextID = user.ID
	}
	if prevID == nextID && (prev == nil) == (creds == nil) {
		return
	}
	for _, w := range watchers {
		w.fn(user, creds != nil)
	}
}
