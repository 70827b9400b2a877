// Package history implements a linear undo/redo history over snapshots.
package history

// History is an ordered list of snapshots with a cursor at the active one.
// It is never empty: it starts with a seed snapshot.
//
// Snapshots are stored as given. Callers must not mutate a value after
// passing it to Checkpoint; undo and redo only move the cursor.
//
// History is not safe for concurrent use.
type History[T any] struct {
	snapshots []T
	cursor    int
	limit     int
}

type Option func(*config)

type config struct {
	limit int
}

// WithLimit bounds the number of kept snapshots. The oldest ones are
// dropped first. Zero or a negative value means unbounded.
func WithLimit(n int) Option {
	return func(c *config) {
		c.limit = n
	}
}

func New[T any](seed T, opts ...Option) *History[T] {
	var c config
	for _, opt := range opts {
		opt(&c)
	}

	return &History[T]{
		snapshots: []T{seed},
		limit:     c.limit,
	}
}

// Checkpoint drops every snapshot after the cursor, appends v and moves the
// cursor to it.
func (h *History[T]) Checkpoint(v T) {
	snapshots := make([]T, h.cursor+1, h.cursor+2)
	copy(snapshots, h.snapshots[:h.cursor+1])
	snapshots = append(snapshots, v)

	if h.limit > 0 && len(snapshots) > h.limit {
		snapshots = snapshots[len(snapshots)-h.limit:]
	}

	h.snapshots = snapshots
	h.cursor = len(snapshots) - 1
}

// Undo moves the cursor one step back and returns the snapshot there.
// At the earliest snapshot it returns the current one and false.
func (h *History[T]) Undo() (T, bool) {
	if !h.CanUndo() {
		return h.Current(), false
	}
	h.cursor--
	return h.snapshots[h.cursor], true
}

// Redo moves the cursor one step forward and returns the snapshot there.
// At the latest snapshot it returns the current one and false.
func (h *History[T]) Redo() (T, bool) {
	if !h.CanRedo() {
		return h.Current(), false
	}
	h.cursor++
	return h.snapshots[h.cursor], true
}

func (h *History[T]) CanUndo() bool { return h.cursor > 0 }

func (h *History[T]) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

func (h *History[T]) Current() T { return h.snapshots[h.cursor] }

func (h *History[T]) Cursor() int { return h.cursor }

func (h *History[T]) Len() int { return len(h.snapshots) }

// Snapshots returns the kept snapshots, oldest first.
func (h *History[T]) Snapshots() []T {
	return append([]T(nil), h.snapshots...)
}
