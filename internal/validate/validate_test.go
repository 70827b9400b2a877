package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/stateful/newsletter/internal/newsletter"
)

func TestSeedHasNoIssues(t *testing.T) {
	r := Document(newsletter.Seed())

	assert.True(t, r.OK())
	assert.NoError(t, r.Err())
	assert.Empty(t, r.Warnings)
	assert.Empty(t, r.Info)
}

func TestIssues(t *testing.T) {
	doc := newsletter.Seed()
	doc.Header.Title = " "
	doc.Title = ""
	doc.Hero.Title = ""
	doc.Hero.Content = ""
	doc.ContentBlocks[0].Title = ""
	doc.Resources[1].URL = "ftp://files.example.com"
	doc.Resources[0].Title = ""

	r := Document(doc)

	assert.Equal(t, []string{
		"Header title is required",
		"Newsletter title is required",
		"Hero title is required",
		"Hero content is required",
		"Content block 1 is missing a title",
		"Resource 1 is missing a title",
		"Resource 2 has an invalid URL",
	}, r.Issues)
	assert.False(t, r.OK())

	err := r.Err()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), len(r.Issues))
}

func TestWarningsAndInfo(t *testing.T) {
	doc := newsletter.Seed()
	doc.Hero.Content = strings.Repeat("a", MaxHeroContent+1)
	doc.ContentBlocks = append(doc.ContentBlocks,
		newsletter.ContentBlock{ID: "2", Title: "Long", Content: strings.Repeat("b", MaxBlockContent+1)},
		newsletter.ContentBlock{ID: "3", Title: "Short", Content: "ok"},
	)
	doc.Resources = nil

	r := Document(doc)

	assert.True(t, r.OK())
	assert.Equal(t, []string{
		"Hero content is long (801 characters)",
		"Content block 2 is long (1501 characters)",
		"No resources added",
	}, r.Warnings)
	assert.Equal(t, []string{"2 content block(s) without images"}, r.Info)
	assert.Error(t, r.Strict())
}

func TestLinks(t *testing.T) {
	assert.Equal(t,
		[]string{"https://example.com", "mailto:ops@example.com"},
		Links("See [docs](https://example.com) or **mail** [us](mailto:ops@example.com)."),
	)
	assert.Empty(t, Links("• no links here"))
}

func TestLinkWarnings(t *testing.T) {
	doc := newsletter.Seed()
	doc.ContentBlocks[0].Content = "Read the [runbook](runbook.md) and [status](https://status.example.com)."

	r := Document(doc)

	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], `Content block 1 links to "runbook.md"`)
}
