package resource

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/fitnessdump/fitdump/internal/api"
	"github.com/fitnessdump/fitdump/internal/devserver"
	"github.com/fitnessdump/fitdump/internal/kvstore"
	"github.com/fitnessdump/fitdump/internal/model"
	"github.com/fitnessdump/fitdump/internal/session"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// env is a dev server plus a session wired the way the CLI wires it.
type env struct {
	services *api.Services
	session  *session.Manager
}

func newEnv(t *testing.T) *env {
	t.Helper()
	srv, err := devserver.New(devserver.Config{Secret: "test-secret", Now: clock})
	require.NoError(t, err)
	srv.Seed()
	_, err = srv.AddUser(model.RegisterRequest{Username: "admin", Password: "admin-pass", Email: "admin@example.com"}, model.RoleAdmin)
	require.NoError(t, err)
	_, err = srv.AddUser(model.RegisterRequest{Username: "ivan", Password: "ivan-pass", Email: "ivan@example.com"}, model.RoleUser)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	var mgr *session.Manager
	client := api.New(ts.URL+devserver.BasePath,
		api.WithCredentials(api.CredentialFunc(func(ctx context.Context) (string, bool) { return mgr.Token(ctx) })),
		api.WithUnauthorizedHandler(func(ctx context.Context) { mgr.Invalidate(ctx) }),
	)
	services := api.NewServices(client)
	mgr = session.New(kvstore.NewMemoryStore(), services.Auth, session.WithClock(clock))
	return &env{services: services, session: mgr}
}

func (e *env) signIn(t *testing.T, username, password string) model.User {
	t.Helper()
	u, err := e.session.Login(context.Background(), model.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)
	return u
}

// fakeIdentity is a hand-driven Identity.
type fakeIdentity struct {
	mu       sync.Mutex
	user     model.User
	ok       bool
	watchers map[int]func(model.User, bool)
	next     int
}

func signedInAs(id int64) *fakeIdentity {
	return &fakeIdentity{user: model.User{ID: id, Username: "user"}, ok: true}
}

func (f *fakeIdentity) CurrentUser() (model.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user, f.ok
}

func (f *fakeIdentity) Watch(fn func(model.User, bool)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.watchers == nil {
		f.watchers = map[int]func(model.User, bool){}
	}
	id := f.next
	f.next++
	f.watchers[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.watchers, id)
	}
}

func (f *fakeIdentity) set(u model.User, ok bool) {
	f.mu.Lock()
	f.user, f.ok = u, ok
	fns := make([]func(model.User, bool), 0, len(f.watchers))
	for _, fn := range f.watchers {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(u, ok)
	}
}

func (f *fakeIdentity) watching() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.watchers)
}

// fakeAPI serves routes registered on a chi router under /api.
func fakeAPI(t *testing.T, routes func(r chi.Router)) *api.Services {
	t.Helper()
	r := chi.NewRouter()
	r.Route(devserver.BasePath, routes)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return api.NewServices(api.New(ts.URL + devserver.BasePath))
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}
