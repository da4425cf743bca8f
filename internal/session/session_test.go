package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitnessdump/fitdump/internal/kvstore"
	"github.com/fitnessdump/fitdump/internal/model"
)

type fakeAuth struct {
	resp      model.AuthResponse
	err       error
	logoutErr error

	logins    int
	logouts   int
	refreshed string
	registers []model.RegisterRequest
}

func (f *fakeAuth) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	f.logins++
	return f.resp, f.err
}

func (f *fakeAuth) Register(ctx context.Context, req model.RegisterRequest) error {
	f.registers = append(f.registers, req)
	return f.err
}

func (f *fakeAuth) Refresh(ctx context.Context, refreshToken string) (model.AuthResponse, error) {
	f.refreshed = refreshToken
	return f.resp, f.err
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logouts++
	return f.logoutErr
}

var now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ivan",
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Hour)),
		},
		UserID: 3,
		Role:   "USER",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func newManager(t *testing.T, auth *fakeAuth) (*Manager, kvstore.Store) {
	store := kvstore.NewMemoryStore()
	return New(store, auth, WithClock(func() time.Time { return now })), store
}

var ivan = model.User{ID: 3, Username: "ivan", Email: "ivan@example.com", Role: model.RoleUser}

func TestManager_LoginPersists(t *testing.T) {
	ctx := context.Background()
	token := signToken(t, now.Add(time.Hour))
	auth := &fakeAuth{resp: model.AuthResponse{Token: token, RefreshToken: "r1", User: ivan}}
	m, store := newManager(t, auth)

	_, ok := m.Token(ctx)
	assert.False(t, ok)

	user, err := m.Login(ctx, model.LoginRequest{Username: "ivan", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, ivan, user)

	got, ok := m.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, token, got)

	var stored Credentials
	require.NoError(t, kvstore.GetJSON(ctx, store, StorageKey, &stored))
	assert.Equal(t, Credentials{Token: token, RefreshToken: "r1", User: ivan}, stored)

	claims, err := m.Claims()
	require.NoError(t, err)
	assert.Equal(t, "ivan", claims.Subject)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, "USER", claims.Role)
}

func TestManager_LoginValidatesFirst(t *testing.T) {
	auth := &fakeAuth{}
	m, _ := newManager(t, auth)

	_, err := m.Login(context.Background(), model.LoginRequest{})
	assert.True(t, model.IsValidationFailed(err))
	assert.Zero(t, auth.logins)
}

func TestManager_LoginFailureKeepsSignedOut(t *testing.T) {
	boom := errors.New("bad credentials")
	m, store := newManager(t, &fakeAuth{err: boom})

	_, err := m.Login(context.Background(), model.LoginRequest{Username: "ivan", Password: "x"})
	assert.ErrorIs(t, err, boom)
	_, ok := m.CurrentUser()
	assert.False(t, ok)

	exists, err := store.Exists(context.Background(), StorageKey)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestManager_RegisterDoesNotSignIn(t *testing.T) {
	auth := &fakeAuth{}
	m, _ := newManager(t, auth)

	req := model.RegisterRequest{Username: "maria", Email: "maria@example.com", Password: "secret1", ConfirmPassword: "secret1", FirstName: "Мария", LastName: "Петрова"}
	require.NoError(t, m.Register(context.Background(), req))
	assert.Len(t, auth.registers, 1)
	_, ok := m.CurrentUser()
	assert.False(t, ok)
}

func TestManager_LogoutAlwaysClears(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{
		resp:      model.AuthResponse{Token: "opaque", User: ivan},
		logoutErr: errors.New("server down"),
	}
	m, store := newManager(t, auth)
	_, err := m.Login(ctx, model.LoginRequest{Username: "ivan", Password: "x"})
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx))
	assert.Equal(t, 1, auth.logouts)
	_, ok := m.CurrentUser()
	assert.False(t, ok)
	exists, err := store.Exists(ctx, StorageKey)
	require.NoError(t, err)
	assert.False(t, exists)

	// signed out already: no server call
	require.NoError(t, m.Logout(ctx))
	assert.Equal(t, 1, auth.logouts)
}

func TestManager_Refresh(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{resp: model.AuthResponse{Token: "t1", RefreshToken: "r1", User: ivan}}
	m, _ := newManager(t, auth)

	assert.ErrorIs(t, m.Refresh(ctx), ErrNotSignedIn)

	_, err := m.Login(ctx, model.LoginRequest{Username: "ivan", Password: "x"})
	require.NoError(t, err)

	auth.resp = model.AuthResponse{Token: "t2"}
	require.NoError(t, m.Refresh(ctx))
	assert.Equal(t, "r1", auth.refreshed)

	creds, ok := m.Credentials()
	require.True(t, ok)
	assert.Equal(t, Credentials{Token: "t2", RefreshToken: "r1", User: ivan}, creds)
}

func TestManager_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing stored", func(t *testing.T) {
		m, _ := newManager(t, &fakeAuth{})
		require.NoError(t, m.Restore(ctx))
		_, ok := m.CurrentUser()
		assert.False(t, ok)
	})

	t.Run("valid token", func(t *testing.T) {
		m, store := newManager(t, &fakeAuth{})
		token := signToken(t, now.Add(time.Hour))
		require.NoError(t, kvstore.SetJSON(ctx, store, StorageKey, Credentials{Token: token, User: ivan}))

		require.NoError(t, m.Restore(ctx))
		user, ok := m.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, ivan, user)
	})

	t.Run("expired token", func(t *testing.T) {
		m, store := newManager(t, &fakeAuth{})
		token := signToken(t, now.Add(-time.Minute))
		require.NoError(t, kvstore.SetJSON(ctx, store, StorageKey, Credentials{Token: token, User: ivan}))

		require.NoError(t, m.Restore(ctx))
		_, ok := m.CurrentUser()
		assert.False(t, ok)
		exists, err := store.Exists(ctx, StorageKey)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("opaque token", func(t *testing.T) {
		m, store := newManager(t, &fakeAuth{})
		require.NoError(t, kvstore.SetJSON(ctx, store, StorageKey, Credentials{Token: "opaque", User: ivan}))

		require.NoError(t, m.Restore(ctx))
		_, ok := m.CurrentUser()
		assert.True(t, ok)

		_, err := m.Claims()
		assert.Error(t, err)
	})

	t.Run("corrupt record", func(t *testing.T) {
		m, store := newManager(t, &fakeAuth{})
		require.NoError(t, store.Set(ctx, StorageKey, []byte("{")))
		assert.Error(t, m.Restore(ctx))
	})
}

func TestManager_InvalidateAndWatch(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{resp: model.AuthResponse{Token: "t", User: ivan}}
	m, _ := newManager(t, auth)

	type event struct {
		user model.User
		ok   bool
	}
	var events []event
	stop := m.Watch(func(u model.User, ok bool) { events = append(events, event{u, ok}) })

	_, err := m.Login(ctx, model.LoginRequest{Username: "ivan", Password: "x"})
	require.NoError(t, err)
	// same user again: no event
	_, err = m.Login(ctx, model.LoginRequest{Username: "ivan", Password: "x"})
	require.NoError(t, err)

	m.Invalidate(ctx)
	m.Invalidate(ctx)

	assert.Equal(t, []event{{ivan, true}, {model.User{}, false}}, events)

	stop()
	stop()
	_, err = m.Login(ctx, model.LoginRequest{Username: "ivan", Password: "x"})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
