// Package store owns the editing session: the current document, its
// undo/redo history and the display preferences.
//
// Every action replaces the current document with a new value; documents
// handed out by the store are never mutated afterwards.
package store

import (
	"sync"

	"github.com/elliotchance/orderedmap"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/newsletter/internal/export"
	"github.com/stateful/newsletter/internal/field"
	"github.com/stateful/newsletter/internal/history"
	"github.com/stateful/newsletter/internal/newsletter"
	"github.com/stateful/newsletter/internal/ulid"
)

var ErrIndexOutOfRange = errors.New("index out of range")

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithHistoryLimit bounds the number of kept snapshots.
func WithHistoryLimit(n int) Option {
	return func(s *Store) {
		s.historyOpts = append(s.historyOpts, history.WithLimit(n))
	}
}

// WithStructuralCheckpoints makes adding, removing and moving blocks or
// resources record a history checkpoint. By default only field commits do.
func WithStructuralCheckpoints(enabled bool) Option {
	return func(s *Store) {
		s.structuralCheckpoints = enabled
	}
}

func WithExportMode(mode export.Mode) Option {
	return func(s *Store) {
		s.exportMode = mode
	}
}

func WithDarkMode(enabled bool) Option {
	return func(s *Store) {
		s.darkMode = enabled
	}
}

type Store struct {
	logger                *zap.Logger
	historyOpts           []history.Option
	structuralCheckpoints bool
	exportMode            export.Mode

	mu          sync.RWMutex
	doc         newsletter.Document
	history     *history.History[newsletter.Document]
	darkMode    bool
	subscribers *orderedmap.OrderedMap // int -> func(newsletter.Document)
	nextSubID   int
}

// New creates a store whose document and single history snapshot are seed.
func New(seed newsletter.Document, opts ...Option) *Store {
	s := &Store{
		subscribers: orderedmap.NewOrderedMap(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	s.doc = seed.Clone()
	s.history = history.New(s.doc, s.historyOpts...)

	s.logger.Debug("store created",
		zap.Int("blocks", len(s.doc.ContentBlocks)),
		zap.Int("resources", len(s.doc.Resources)),
		zap.Bool("structuralCheckpoints", s.structuralCheckpoints),
	)

	return s
}

// outcome is what an action did to the document.
type outcome int

const (
	unchanged outcome = iota
	replaced
	checkpointed
)

func replacedOrCheckpointed(checkpoint bool) outcome {
	if checkpoint {
		return checkpointed
	}
	return replaced
}

// Document returns a copy of the current document.
func (s *Store) Document() newsletter.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// UpdateField writes value into the field at addr without recording a
// checkpoint. Unresolvable addresses leave the document unchanged.
func (s *Store) UpdateField(addr field.Address, value string) {
	s.mutate(func(doc newsletter.Document) (newsletter.Document, outcome) {
		if _, ok := field.Value(doc, addr); !ok {
			return doc, unchanged
		}
		return field.Apply(doc, addr, value), replaced
	})
}

// UpdateFieldID is UpdateField for a textual field identifier such as
// "block-1-title".
func (s *Store) UpdateFieldID(id string, value string) {
	addr, ok := field.Parse(id)
	if !ok {
		s.logger.Debug("ignoring unknown field", zap.String("field", id))
		return
	}
	s.UpdateField(addr, value)
}

// Checkpoint records the current document as a new history snapshot.
func (s *Store) Checkpoint() {
	s.mu.Lock()
	s.history.Checkpoint(s.doc)
	cursor, n := s.history.Cursor(), s.history.Len()
	s.mu.Unlock()

	s.logger.Debug("checkpoint", zap.Int("cursor", cursor), zap.Int("snapshots", n))
}

// CommitField updates the field at addr and records a checkpoint.
func (s *Store) CommitField(addr field.Address, value string) {
	s.mutate(func(doc newsletter.Document) (newsletter.Document, outcome) {
		if _, ok := field.Value(doc, addr); !ok {
			return doc, unchanged
		}
		return field.Apply(doc, addr, value), checkpointed
	})
}

// AddContentBlock appends a block built from draft and returns its id.
func (s *Store) AddContentBlock(draft newsletter.BlockDraft) string {
	id := ulid.GenerateID()
	block := newsletter.ContentBlock{
		ID:       id,
		Title:    draft.Title,
		Content:  draft.Content,
		ImageURL: draft.ImageURL,
	}

	s.mutate(func(doc newsletter.Document) (newsletter.Document, outcome) {
		blocks := make([]newsletter.ContentBlock, 0, len(doc.ContentBlocks)+1)
		blocks = append(blocks, doc.ContentBlocks...)
		doc.ContentBlocks = append(blocks, block)
		return doc, replacedOrCheckpointed(s.structuralCheckpoints)
	})

	s.logger.Debug("content block added", zap.String("id", id))
	return id
}

// RemoveContentBlock removes the block with id. A missing id is a no-op.
func (s *Store) RemoveContentBlock(id string) {
	s.mutate(func(doc newsletter.Document) (newsletter.Document, outcome) {
		if doc.BlockIndex(id) < 0 {
			return doc, unchanged
		}
		blocks := make([]newsletter.ContentBlock, 0, len(doc.ContentBlocks))
		for _, b := range doc.ContentBlocks {
			if b.ID != id {
				blocks = append(blocks, b)
			}
		}
		doc.ContentBlocks = blocks
		return doc, replacedOrCheckpointed(s.structuralCheckpoints)
	})
}

// MoveContentBlock takes the block at from out of the sequence and
// reinserts it so that it ends up at index to. Both indices must be
// within [0, len); otherwise the document is left unchanged.
func (s *Store) MoveContentBlock(from, to int) error {
	var err error
	s.mutate(func(doc newsletter.Document) (newsletter.Document, outcome) {
		n := len(doc.ContentBlocks)
		if from < 0 || from >= n || to < 0 || to >= n {
			err = errors.Wrapf(ErrIndexOutOfRange, "move %d to %d with %d blocks", from, to, n)
			return doc, unchanged
		}
		doc.ContentBlocks = move(doc.ContentBlocks, from, to)
		return doc, replacedOrCheckpointed(s.structuralCheckpoints)
	})
	return err
}

func move[T any](items []T, from, to int) []T {
	moved := items[from]
	rest := make([]T, 0, len(items))
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)

	result := make([]T, 0, len(items))
	result = append(result, rest[:to]...)
	result = append(result, moved)
	return append(result, rest[to:]...)
}

// AddResource appends a resource with default content and returns its id.
func (s *Store) AddResource() string {
	id := ulid.GenerateID()
	res := newsletter.Resource{
		ID:          id,
		Title:       newsletter.DefaultResourceTitle,
		Description: newsletter.DefaultResourceDescription,
		URL:         newsletter.DefaultResourceURL,
	}

	s.mutate(func(doc newsletter.Document) (newsletter.Document, outcome) {
		resources := make([]newsletter.Resource, 0, len(doc.Resources)+1)
		resources = append(resources, doc.Resources...)
		doc.Resources = append(resources, res)
		return doc, replacedOrCheckpointed(s.structuralCheckpoints)
	})

	s.logger.Debug("resource added", zap.String("id", id))
	return id
}

// RemoveResource removes the resource with id. A missing id is a no-op.
func (s *Store) RemoveResource(id string) {
	s.mutate(func(doc newsletter.Document) (newsletter.Document, outcome) {
		if doc.ResourceIndex(id) < 0 {
			return doc, unchanged
		}
		resources := make([]newsletter.Resource, 0, len(doc.Resources))
		for _, r := range doc.Resources {
			if r.ID != id {
				resources = append(resources, r)
			}
		}
		doc.Resources = resources
		return doc, replacedOrCheckpointed(s.structuralCheckpoints)
	})
}

// Undo steps back one snapshot. It reports whether the cursor moved.
func (s *Store) Undo() bool {
	return s.step((*history.History[newsletter.Document]).Undo, "undo")
}

// Redo steps forward one snapshot. It reports whether the cursor moved.
func (s *Store) Redo() bool {
	return s.step((*history.History[newsletter.Document]).Redo, "redo")
}

func (s *Store) step(fn func(*history.History[newsletter.Document]) (newsletter.Document, bool), name string) bool {
	s.mu.Lock()
	doc, ok := fn(s.history)
	if ok {
		s.doc = doc
	}
	cursor := s.history.Cursor()
	s.mu.Unlock()

	s.logger.Debug(name, zap.Bool("moved", ok), zap.Int("cursor", cursor))
	if ok {
		s.notify(doc)
	}
	return ok
}

func (s *Store) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanUndo()
}

func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanRedo()
}

// ToggleDarkMode flips the dark mode flag and returns the new value.
// It does not touch the document or its history.
func (s *Store) ToggleDarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkMode = !s.darkMode
	return s.darkMode
}

func (s *Store) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}

// ExportMarkup renders the current document as HTML.
func (s *Store) ExportMarkup() (string, error) {
	return export.Markup(s.Document(), export.WithMode(s.exportMode))
}

// ExportStructured renders the current document as XML.
func (s *Store) ExportStructured() (string, error) {
	return export.Structured(s.Document(), export.WithMode(s.exportMode))
}

// Subscribe registers fn to be called with the new document after every
// action that replaced it. The returned function unregisters fn.
func (s *Store) Subscribe(fn func(newsletter.Document)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers.Set(id, fn)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.subscribers.Delete(id)
		s.mu.Unlock()
	}
}

// mutate applies fn to the current document under the write lock.
// Subscribers are notified only when fn replaced the document.
func (s *Store) mutate(fn func(newsletter.Document) (newsletter.Document, outcome)) {
	s.mu.Lock()
	doc, result := fn(s.doc)
	if result == unchanged {
		s.mu.Unlock()
		return
	}
	s.doc = doc
	if result == checkpointed {
		s.history.Checkpoint(doc)
	}
	s.mu.Unlock()

	s.notify(doc)
}

func (s *Store) notify(doc newsletter.Document) {
	s.mu.RLock()
	subscribers := make([]func(newsletter.Document), 0, s.subscribers.Len())
	for el := s.subscribers.Front(); el != nil; el = el.Next() {
		subscribers = append(subscribers, el.Value.(func(newsletter.Document)))
	}
	s.mu.RUnlock()

	for _, fn := range subscribers {
		fn(doc.Clone())
	}
}
