// Package collection keeps a local list of remote entities in sync with the
// server. Each Collection owns {Items, Loading, Error}, runs operations one at
// a time in call order, and merges each successful result into Items.
package collection

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// ErrClosed is returned by operations on, or completing after, a closed collection.
var ErrClosed = errors.New("collection closed")

// Entity is anything with a server-assigned id.
type Entity interface {
	GetID() int64
}

// State is a point-in-time view of a collection.
type State[T Entity] struct {
	Items   []T
	Loading bool
	Error   string
}

type Option func(*options)

type options struct {
	logger *zap.Logger
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

type subscriber[T Entity] struct {
	id int
	fn func(State[T])
}

type Collection[T Entity] struct {
	name     string
	messages Messages
	logger   *zap.Logger

	// turn admits one operation at a time, in the order they queued.
	turn *semaphore.Weighted

	// emit serializes state changes with their delivery so subscribers
	// observe transitions in order.
	emit sync.Mutex

	mu       sync.Mutex
	state    State[T]
	pending  int
	closed   bool
	nextOp   uint64
	inflight map[uint64]context.CancelFunc
	nextSub  int
	subs     []subscriber[T]
}

// New creates an empty collection. name identifies it in logs.
func New[T Entity](name string, messages Messages, opts ...Option) *Collection[T] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Collection[T]{
		name:     name,
		messages: messages,
		logger:   o.logger.With(zap.String("collection", name)),
		turn:     semaphore.NewWeighted(1),
		state:    State[T]{Items: []T{}},
		inflight: make(map[uint64]context.CancelFunc),
	}
}

func (c *Collection[T]) Name() string { return c.name }

// Snapshot returns a copy of the current state.
func (c *Collection[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Collection[T]) Items() []T {
	return c.Snapshot().Items
}

func (c *Collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Loading
}

func (c *Collection[T]) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Error
}

// Subscribe calls fn with the new state after every transition. fn must not
// start operations on this collection synchronously.
func (c *Collection[T]) Subscribe(fn func(State[T])) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs = append(c.subs, subscriber[T]{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, s := range c.subs {
				if s.id == id {
					c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Seed replaces the items without a server call.
func (c *Collection[T]) Seed(items []T) {
	c.update(func() bool {
		if c.closed {
			return false
		}
		c.state.Items = dedupe(items)
		return true
	})
}

// Modify passes the items through fn without a server call. fn runs under
// the collection lock, so it sees every merge that settled before it.
func (c *Collection[T]) Modify(fn func([]T) []T) {
	c.update(func() bool {
		if c.closed {
			return false
		}
		c.state.Items = dedupe(fn(c.state.Items))
		return true
	})
}

// Fail records message as the error without running an operation. It is
// used for preconditions such as a missing sign-in.
func (c *Collection[T]) Fail(message string) {
	c.update(func() bool {
		if c.closed || c.state.Error == message {
			return false
		}
		c.state.Error = message
		return true
	})
}

// Close cancels in-flight operations. Their results are dropped and later
// operations fail with ErrClosed.
func (c *Collection[T]) Close() {
	c.update(func() bool {
		if c.closed {
			return false
		}
		c.closed = true
		for _, cancel := range c.inflight {
			cancel()
		}
		c.state.Loading = false
		return true
	})
}

// Fetch replaces the items with fn's result. A failure is recorded in Error
// and the items are left alone.
func (c *Collection[T]) Fetch(ctx context.Context, op string, fn func(context.Context) ([]T, error)) {
	var items []T
	_ = c.execute(ctx, op,
		func(ctx context.Context) (err error) {
			items, err = fn(ctx)
			return err
		},
		func([]T) []T { return dedupe(items) },
	)
}

// Query is Fetch for filtered lists such as searches.
func (c *Collection[T]) Query(ctx context.Context, op string, fn func(context.Context) ([]T, error)) {
	c.Fetch(ctx, op, fn)
}

// Create appends the entity fn returns, or replaces the element that already
// has its id.
func (c *Collection[T]) Create(ctx context.Context, op string, fn func(context.Context) (T, error)) (T, error) {
	var created T
	err := c.execute(ctx, op,
		func(ctx context.Context) (err error) {
			created, err = fn(ctx)
			return err
		},
		func(items []T) []T { return upsert(items, created) },
	)
	if err != nil {
		var zero T
		return zero, err
	}
	return created, nil
}

// Update replaces the element with the given id by fn's result.
func (c *Collection[T]) Update(ctx context.Context, op string, id int64, fn func(context.Context) (T, error)) (T, error) {
	var updated T
	err := c.execute(ctx, op,
		func(ctx context.Context) (err error) {
			updated, err = fn(ctx)
			return err
		},
		func(items []T) []T { return replace(items, id, updated) },
	)
	if err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

// Delete removes the element with the given id once fn succeeds.
func (c *Collection[T]) Delete(ctx context.Context, op string, id int64, fn func(context.Context) error) error {
	return c.execute(ctx, op, fn, func(items []T) []T { return remove(items, id) })
}

// Get runs fn without touching the items.
func (c *Collection[T]) Get(ctx context.Context, op string, fn func(context.Context) (T, error)) (T, error) {
	return Run(c, ctx, op, fn)
}

// Apply runs fn and, on success, passes the items through merge. merge owns
// the slice it is given for the duration of the call only.
func (c *Collection[T]) Apply(ctx context.Context, op string, fn func(context.Context) error, merge func([]T) []T) error {
	return c.execute(ctx, op, fn, merge)
}

// Run executes fn as an operation of c that yields an arbitrary result and
// leaves the items alone.
func Run[T Entity, R any](c *Collection[T], ctx context.Context, op string, fn func(context.Context) (R, error)) (R, error) {
	var out R
	err := c.execute(ctx, op,
		func(ctx context.Context) (err error) {
			out, err = fn(ctx)
			return err
		},
		nil,
	)
	if err != nil {
		var zero R
		return zero, err
	}
	return out, nil
}

func (c *Collection[T]) execute(ctx context.Context, op string, call func(context.Context) error, merge func([]T) []T) error {
	var (
		opCtx  context.Context
		id     uint64
		closed bool
	)
	c.update(func() bool {
		if c.closed {
			closed = true
			return false
		}
		var cancel context.CancelFunc
		opCtx, cancel = context.WithCancel(ctx)
		id = c.nextOp
		c.nextOp++
		c.inflight[id] = cancel
		c.pending++
		c.state.Loading = true
		return true
	})
	if closed {
		return ErrClosed
	}

	if err := c.turn.Acquire(opCtx, 1); err != nil {
		return c.settle(ctx, id, op, err, nil, false)
	}
	defer c.turn.Release(1)

	var closedWhileQueued bool
	c.update(func() bool {
		if c.closed {
			closedWhileQueued = true
			return false
		}
		c.state.Error = ""
		return true
	})
	if closedWhileQueued {
		return c.settle(ctx, id, op, ErrClosed, nil, true)
	}
	c.logger.Debug("operation started", zap.String("op", op))

	err := call(opCtx)
	return c.settle(ctx, id, op, err, merge, true)
}

// settle ends operation id. started is false when it never got its turn.
func (c *Collection[T]) settle(ctx context.Context, id uint64, op string, err error, merge func([]T) []T, started bool) error {
	result := err
	c.update(func() bool {
		if cancel, ok := c.inflight[id]; ok {
			cancel()
			delete(c.inflight, id)
		}
		c.pending--
		if c.closed {
			result = ErrClosed
			return false
		}
		c.state.Loading = c.pending > 0

		switch {
		case err == nil:
			if merge != nil {
				c.state.Items = merge(c.state.Items)
			}
			c.state.Error = ""
		case ctx.Err() != nil && errors.Is(err, context.Canceled):
			// abandoned by the caller; nothing to report
		case !started:
			// gave up in line; the previous result stays visible
		default:
			c.state.Error = c.messages.Resolve(op, err)
		}
		return true
	})

	switch {
	case errors.Is(result, ErrClosed):
		c.logger.Debug("operation discarded", zap.String("op", op))
	case result != nil:
		c.logger.Warn("operation failed",
			zap.String("op", op),
			zap.Int("status", statusOf(result)),
			zap.Error(result),
		)
	default:
		c.logger.Debug("operation completed", zap.String("op", op))
	}
	return result
}

// update applies mutate and, when it reports a change, delivers the new
// state to subscribers before any later change is made.
func (c *Collection[T]) update(mutate func() bool) {
	c.emit.Lock()
	defer c.emit.Unlock()

	c.mu.Lock()
	if !mutate() {
		c.mu.Unlock()
		return
	}
	snap := c.snapshotLocked()
	subs := make([]subscriber[T], len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, s := range subs {
		s.fn(snap)
	}
}

func (c *Collection[T]) snapshotLocked() State[T] {
	items := make([]T, len(c.state.Items))
	copy(items, c.state.Items)
	return State[T]{Items: items, Loading: c.state.Loading, Error: c.state.Error}
}

// dedupe copies items keeping the first element for each id.
func dedupe[T Entity](items []T) []T {
	out := make([]T, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.GetID()]; ok {
			continue
		}
		seen[item.GetID()] = struct{}{}
		out = append(out, item)
	}
	return out
}

func upsert[T Entity](items []T, item T) []T {
	for i := range items {
		if items[i].GetID() == item.GetID() {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func replace[T Entity](items []T, id int64, item T) []T {
	for i := range items {
		if items[i].GetID() == id {
			items[i] = item
			break
		}
	}
	return items
}

func remove[T Entity](items []T, id int64) []T {
	out := items[:0]
	for _, item := range items {
		if item.GetID() != id {
			out = append(out, item)
		}
	}
	return out
}
