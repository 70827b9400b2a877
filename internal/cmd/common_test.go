package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/newsletter/internal/newsletter"
	"github.com/stateful/newsletter/internal/store"
)

func testCommand() (*cobra.Command, *bytes.Buffer) {
	var stderr bytes.Buffer
	cmd := &cobra.Command{Use: "test"}
	cmd.SetErr(&stderr)
	return cmd, &stderr
}

func TestApplySets(t *testing.T) {
	cmd, stderr := testCommand()
	s := store.New(newsletter.Seed())

	err := applySets(cmd, s, []string{
		"newsletter-title=July 2024",
		"block-1-title=Changes",
		"block-1-image=https://example.com/chart.png",
		"block-9-title=Nope",
	})
	require.NoError(t, err)

	doc := s.Document()
	assert.Equal(t, "July 2024", doc.Title)
	assert.Equal(t, "Changes", doc.ContentBlocks[0].Title)
	assert.Equal(t, "https://example.com/chart.png", doc.ContentBlocks[0].ImageURL)
	assert.Contains(t, stderr.String(), `unknown field "block-9-title"`)

	// All sets form a single undo step.
	require.True(t, s.Undo())
	assert.Equal(t, newsletter.Seed(), s.Document())
	assert.False(t, s.CanUndo())
}

func TestApplySetsErrors(t *testing.T) {
	cmd, _ := testCommand()
	s := store.New(newsletter.Seed())

	err := applySets(cmd, s, []string{"newsletter-title"})
	assert.ErrorContains(t, err, "expected id=value")

	err = applySets(cmd, s, []string{"header-logo=not a url"})
	assert.ErrorContains(t, err, "invalid value for header-logo")
	assert.Equal(t, newsletter.Seed(), s.Document())
}

func TestApplySetsClearsImage(t *testing.T) {
	cmd, _ := testCommand()
	s := store.New(newsletter.Seed())
	require.True(t, s.Document().ContentBlocks[0].HasImage())

	require.NoError(t, applySets(cmd, s, []string{"block-1-image=", "header-logo=  "}))

	doc := s.Document()
	assert.False(t, doc.ContentBlocks[0].HasImage())
	assert.Empty(t, strings.TrimSpace(doc.Header.LogoURL))
	assert.True(t, s.CanUndo())
}

func TestCompilePatterns(t *testing.T) {
	match, err := compilePatterns(nil)
	require.NoError(t, err)
	assert.True(t, match("anything"))

	match, err = compilePatterns([]string{"block-*", "*-url"})
	require.NoError(t, err)
	assert.True(t, match("block-1-title"))
	assert.True(t, match("resource-2-url"))
	assert.False(t, match("hero-title"))

	_, err = compilePatterns([]string{"[unclosed"})
	assert.Error(t, err)
}

func TestSingleLine(t *testing.T) {
	assert.Equal(t, "a b c", singleLine("a\n  b\tc\n"))
}

func TestAddSections(t *testing.T) {
	s := store.New(newsletter.Seed())

	addSections(s, []string{"Changes", "  ", "Outages "})

	blocks := s.Document().ContentBlocks
	require.Len(t, blocks, 3)
	assert.Equal(t, "Changes", blocks[1].Title)
	assert.Equal(t, "Outages", blocks[2].Title)
	assert.Equal(t, newsletter.Titled("x").Content, blocks[2].Content)
}
