// Package resource holds one store per REST resource. Each store keeps its
// items in collections and maps failures to the texts the user sees.
package resource

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fitnessdump/fitdump/internal/collection"
	"github.com/fitnessdump/fitdump/internal/model"
)

// MsgSignInRequired is recorded by user-scoped stores when nobody is signed in.
const MsgSignInRequired = "Трябва да сте влезли в профила си"

// ErrSignInRequired is returned by user-scoped operations without a user
var ErrSignInRequired = errors.New("sign in required")

// IsSignInRequired reports whether err came from a user-scoped operation run
// without a signed-in user.
func IsSignInRequired(err error) bool {
	return errors.Is(err, ErrSignInRequired)
}

// Identity is the signed-in user as seen by user-scoped stores.
type Identity interface {
	CurrentUser() (model.User, bool)
	Watch(fn func(model.User, bool)) (stop func())
}

type Option func(*options)

type options struct {
	logger *zap.Logger
	now    func() time.Time
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock sets the clock used to pick "today" in the food diary.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) collection() []collection.Option {
	return []collection.Option{collection.WithLogger(o.logger)}
}

type failer interface {
	Fail(message string)
}

// userScope follows the identity for stores whose data belongs to a user.
type userScope struct {
	identity Identity

	mu     sync.Mutex
	userID int64
	closed bool
	cancel context.CancelFunc
	stop   func()
	wg     sync.WaitGroup
}

// start loads data for the current user and again in the background each time
// the user changes. load gets 0 when nobody is signed in.
func (s *userScope) start(ctx context.Context, load func(ctx context.Context, userID int64)) {
	bg, cancel := context.WithCancel(context.WithoutCancel(ctx))

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	if s.identity != nil {
		stop := s.identity.Watch(func(u model.User, ok bool) {
			id := userIDOf(u, ok)
			s.mu.Lock()
			if s.closed || id == s.userID {
				s.mu.Unlock()
				return
			}
			s.userID = id
			s.wg.Add(1)
			s.mu.Unlock()

			go func() {
				defer s.wg.Done()
				load(bg, id)
			}()
		})
		s.mu.Lock()
		s.stop = stop
		s.mu.Unlock()
	}

	id := s.current()
	s.mu.Lock()
	s.userID = id
	s.mu.Unlock()
	load(ctx, id)
}

func (s *userScope) current() int64 {
	if s.identity == nil {
		return 0
	}
	return userIDOf(s.identity.CurrentUser())
}

// require returns the signed-in user's id, or records the sign-in message on
// c and returns ErrSignInRequired.
func (s *userScope) require(c failer) (int64, error) {
	if id := s.current(); id > 0 {
		return id, nil
	}
	c.Fail(MsgSignInRequired)
	return 0, ErrSignInRequired
}

// detach stops following the identity and cancels background loads.
func (s *userScope) detach() {
	s.mu.Lock()
	s.closed = true
	stop, cancel := s.stop, s.cancel
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
	if cancel != nil {
		cancel()
	}
}

// wait blocks until background loads have returned.
func (s *userScope) wait() { s.wg.Wait() }

func userIDOf(u model.User, ok bool) int64 {
	if !ok {
		return 0
	}
	return u.ID
}

// signedOut clears each collection and records the sign-in message.
func signedOut[T collection.Entity](cols ...*collection.Collection[T]) {
	for _, c := range cols {
		c.Seed(nil)
		c.Fail(MsgSignInRequired)
	}
}

// parallel runs fns concurrently and waits for all of them. Each fn records
// its own failure in its collection.
func parallel(fns ...func()) {
	var g errgroup.Group
	for _, fn := range fns {
		g.Go(func() error {
			fn()
			return nil
		})
	}
	_ = g.Wait()
}
