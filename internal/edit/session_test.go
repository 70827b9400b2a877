package edit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/newsletter/internal/field"
	"github.com/stateful/newsletter/internal/newsletter"
	"github.com/stateful/newsletter/internal/store"
)

func begin(t *testing.T, s *store.Store, addr field.Address, opts ...Option) *Session {
	t.Helper()
	sess, err := Begin(s, s.Document(), addr, opts...)
	require.NoError(t, err)
	return sess
}

func TestBeginUnknownField(t *testing.T) {
	s := store.New(newsletter.Seed())

	_, err := Begin(s, s.Document(), field.Block("missing", field.AttrTitle))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestMaxLengthFor(t *testing.T) {
	assert.Equal(t, 2000, MaxLengthFor(field.Block("1", field.AttrContent)))
	assert.Equal(t, 1000, MaxLengthFor(field.Block("1", field.AttrTitle)))
	assert.Equal(t, 1000, MaxLengthFor(field.Hero(field.AttrContent)))
}

func TestWithMaxLengths(t *testing.T) {
	s := store.New(newsletter.Seed())

	assert.Equal(t, 50, begin(t, s, field.Title(), WithMaxLengths(50, 70)).MaxLength())
	assert.Equal(t, 70, begin(t, s, field.Block("1", field.AttrContent), WithMaxLengths(50, 70)).MaxLength())
	assert.Equal(t, DefaultMaxLength, begin(t, s, field.Title(), WithMaxLengths(0, 0)).MaxLength())
}

func TestWrap(t *testing.T) {
	testCases := []struct {
		format     Format
		start, end int
		want       string
	}{
		{Bold, 6, 11, "hello **world**"},
		{Italic, 0, 5, "*hello* world"},
		{Link, 6, 11, "hello [world](url)"},
		{List, 0, 11, "• hello world"},
		{Bold, 11, 6, "hello **world**"},
		{Italic, 20, 30, "hello world**"},
	}

	for _, tc := range testCases {
		sess := &Session{buf: []rune("hello world"), maxLength: DefaultMaxLength}
		sess.Wrap(tc.format, tc.start, tc.end)
		assert.Equal(t, tc.want, sess.Value())
	}
}

func TestWrapRunes(t *testing.T) {
	sess := &Session{buf: []rune("größe"), maxLength: DefaultMaxLength}
	sess.Wrap(Bold, 0, 5)
	assert.Equal(t, "**größe**", sess.Value())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("Bold")
	require.NoError(t, err)
	assert.Equal(t, Bold, f)

	_, err = ParseFormat("underline")
	assert.Error(t, err)
}

func TestNearLimit(t *testing.T) {
	sess := &Session{maxLength: 10}

	sess.SetValue("123456789")
	assert.False(t, sess.NearLimit())

	sess.SetValue("1234567890")
	assert.True(t, sess.NearLimit())
}

func TestSaveCommitsAndCheckpoints(t *testing.T) {
	s := store.New(newsletter.Seed())
	sess := begin(t, s, field.Block("1", field.AttrContent))

	sess.SetValue("Uptime was great")
	sess.Wrap(Bold, 11, 16)
	sess.SetValue("  <p>" + sess.Value() + "</p>  ")

	value, err := sess.Save()
	require.NoError(t, err)
	assert.Equal(t, "Uptime was **great**", value)
	assert.Equal(t, value, s.Document().ContentBlocks[0].Content)
	assert.True(t, s.CanUndo())
}

func TestSaveStripFormatting(t *testing.T) {
	s := store.New(newsletter.Seed())
	sess := begin(t, s, field.Hero(field.AttrContent), WithStripFormatting(true))

	sess.SetValue("• **bold** and [link](https://example.com)")
	value, err := sess.Save()
	require.NoError(t, err)
	assert.Equal(t, "bold and link", value)
}

func TestSaveTruncates(t *testing.T) {
	s := store.New(newsletter.Seed())
	sess := begin(t, s, field.Title(), WithMaxLength(5))

	sess.SetValue("äbcdefgh")
	value, err := sess.Save()
	require.NoError(t, err)
	assert.Equal(t, "äbcde", value)
}

func TestSaveEmpty(t *testing.T) {
	s := store.New(newsletter.Seed())
	sess := begin(t, s, field.FooterText())

	sess.SetValue(" <br> ")
	_, err := sess.Save()
	assert.ErrorIs(t, err, ErrEmptyValue)
	assert.Equal(t, newsletter.Seed().Footer.Text, s.Document().Footer.Text)
	assert.False(t, s.CanUndo())
}

func TestCancel(t *testing.T) {
	s := store.New(newsletter.Seed())
	sess := begin(t, s, field.Header(field.AttrTitle))

	sess.SetValue(strings.Repeat("x", 20))
	assert.Equal(t, newsletter.Seed().Header.Title, sess.Cancel())
	assert.Equal(t, newsletter.Seed().Header.Title, sess.Value())
	assert.False(t, s.CanUndo())
}
