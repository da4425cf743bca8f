package devserver

import (
	"sort"
	"sync"
)

type row interface {
	GetID() int64
}

// table is an in-memory relation with its own id sequence.
type table[T row] struct {
	mu    sync.RWMutex
	seq   int64
	rows  map[int64]T
	setID func(*T, int64)
}

func newTable[T row](setID func(*T, int64)) *table[T] {
	return &table[T]{rows: make(map[int64]T), setID: setID}
}

func (t *table[T]) insert(v T) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.setID(&v, t.seq)
	t.rows[t.seq] = v
	return v
}

// replace overwrites the row with id. It reports false when there is none.
func (t *table[T]) replace(id int64, v T) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		var zero T
		return zero, false
	}
	t.setID(&v, id)
	t.rows[id] = v
	return v, true
}

// modify applies fn to every row it matches, in id order.
func (t *table[T]) modify(match func(T) bool, fn func(*T)) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, id := range t.idsLocked() {
		v := t.rows[id]
		if match(v) {
			fn(&v)
			t.rows[id] = v
			n++
		}
	}
	return n
}

func (t *table[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) remove(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// list returns the matching rows in id order. A nil match returns all.
func (t *table[T]) list(match func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.rows))
	for _, id := range t.idsLocked() {
		v := t.rows[id]
		if match == nil || match(v) {
			out = append(out, v)
		}
	}
	return out
}

func (t *table[T]) first(match func(T) bool) (T, bool) {
	rows := t.list(match)
	if len(rows) == 0 {
		var zero T
		return zero, false
	}
	return rows[0], true
}

func (t *table[T]) idsLocked() []int64 {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
