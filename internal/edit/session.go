// Package edit implements the text editing session of a single document
// field: a working buffer with toolbar formatting that is sanitized and
// committed to the store on save.
package edit

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/stateful/newsletter/internal/field"
	"github.com/stateful/newsletter/internal/markup"
	"github.com/stateful/newsletter/internal/newsletter"
)

const (
	DefaultMaxLength      = 1000
	DefaultBlockMaxLength = 2000
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrEmptyValue   = errors.New("value is empty")
)

// Committer receives the saved value. *store.Store implements it.
type Committer interface {
	CommitField(addr field.Address, value string)
}

type Format int

const (
	Bold Format = iota
	Italic
	Link
	List
)

var formatNames = map[string]Format{
	"bold":   Bold,
	"italic": Italic,
	"link":   Link,
	"list":   List,
}

func ParseFormat(s string) (Format, error) {
	f, ok := formatNames[strings.ToLower(s)]
	if !ok {
		return 0, errors.Errorf("unknown format %q", s)
	}
	return f, nil
}

func (f Format) apply(selected string) string {
	switch f {
	case Bold:
		return "**" + selected + "**"
	case Italic:
		return "*" + selected + "*"
	case Link:
		return "[" + selected + "](url)"
	case List:
		return markup.Bullet + selected
	default:
		return selected
	}
}

type Option func(*Session)

// WithMaxLength overrides the field's default maximum length in runes.
func WithMaxLength(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxLength = n
		}
	}
}

// WithMaxLengths sets the maximum length of block content fields to block
// and of every other field to text. Zero keeps the default.
func WithMaxLengths(text, block int) Option {
	return func(s *Session) {
		n := text
		if s.addr.Kind == field.KindBlock && s.addr.Attr == field.AttrContent {
			n = block
		}
		if n > 0 {
			s.maxLength = n
		}
	}
}

// WithStripFormatting removes toolbar markup on save instead of keeping it.
func WithStripFormatting(enabled bool) Option {
	return func(s *Session) {
		s.stripFormatting = enabled
	}
}

type Session struct {
	committer       Committer
	addr            field.Address
	original        string
	buf             []rune
	maxLength       int
	stripFormatting bool
}

// MaxLengthFor returns the default maximum length of the field at addr.
func MaxLengthFor(addr field.Address) int {
	if addr.Kind == field.KindBlock && addr.Attr == field.AttrContent {
		return DefaultBlockMaxLength
	}
	return DefaultMaxLength
}

// Begin starts editing the field at addr of doc.
func Begin(c Committer, doc newsletter.Document, addr field.Address, opts ...Option) (*Session, error) {
	value, ok := field.Value(doc, addr)
	if !ok {
		return nil, errors.Wrap(ErrUnknownField, addr.String())
	}

	s := &Session{
		committer: c,
		addr:      addr,
		original:  value,
		buf:       []rune(value),
		maxLength: MaxLengthFor(addr),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Session) Address() field.Address { return s.addr }

func (s *Session) Value() string { return string(s.buf) }

func (s *Session) SetValue(v string) { s.buf = []rune(v) }

// Len returns the buffer length in runes.
func (s *Session) Len() int { return len(s.buf) }

func (s *Session) MaxLength() int { return s.maxLength }

// NearLimit reports whether the buffer is above 90% of the maximum length.
func (s *Session) NearLimit() bool {
	return len(s.buf)*10 > s.maxLength*9
}

// Wrap applies the toolbar format f to the runes in [start, end). The
// selection is clamped to the buffer; an empty selection inserts the bare
// markers at start.
func (s *Session) Wrap(f Format, start, end int) {
	start, end = clamp(start, 0, len(s.buf)), clamp(end, 0, len(s.buf))
	if start > end {
		start, end = end, start
	}

	formatted := []rune(f.apply(string(s.buf[start:end])))
	buf := make([]rune, 0, len(s.buf)+len(formatted))
	buf = append(buf, s.buf[:start]...)
	buf = append(buf, formatted...)
	s.buf = append(buf, s.buf[end:]...)
}

// Save sanitizes the buffer, commits it and returns the committed value.
// Tags are always removed; toolbar markup only with WithStripFormatting.
// The result is trimmed and truncated to the maximum length.
func (s *Session) Save() (string, error) {
	var value string
	if s.stripFormatting {
		value = markup.StripToPlainText(string(s.buf))
	} else {
		value = strings.TrimSpace(markup.StripTags(string(s.buf)))
	}

	if runes := []rune(value); len(runes) > s.maxLength {
		value = string(runes[:s.maxLength])
	}
	if value == "" {
		return "", errors.Wrap(ErrEmptyValue, s.addr.String())
	}

	s.committer.CommitField(s.addr, value)
	s.buf = []rune(value)
	s.original = value
	return value, nil
}

// Cancel discards the buffer and returns the value the session started from.
func (s *Session) Cancel() string {
	s.buf = []rune(s.original)
	return s.original
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
