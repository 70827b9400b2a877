package newsletter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/newsletter/internal/ulid"
)

func TestClone(t *testing.T) {
	doc := Seed()
	c := doc.Clone()

	require.True(t, cmp.Equal(doc, c), cmp.Diff(doc, c))

	c.ContentBlocks[0].Title = "changed"
	c.Resources[1].URL = "https://changed.example"

	assert.Equal(t, "Incident Management", doc.ContentBlocks[0].Title)
	assert.Equal(t, "https://example.com", doc.Resources[1].URL)
}

func TestIndexes(t *testing.T) {
	doc := Seed()

	assert.Equal(t, 0, doc.BlockIndex("1"))
	assert.Equal(t, -1, doc.BlockIndex("2"))
	assert.Equal(t, 1, doc.ResourceIndex("2"))
	assert.Equal(t, -1, doc.ResourceIndex("3"))
}

func TestStats(t *testing.T) {
	doc := Document{
		Hero: Hero{Content: "**Hello** world"},
		ContentBlocks: []ContentBlock{
			{ID: "1", Content: "one [two](http://x)\n• three"},
			{ID: "2", Content: ""},
		},
		Resources: []Resource{{ID: "1"}},
	}

	assert.Equal(t, Stats{Sections: 2, Resources: 1, Words: 5}, doc.Stats())
}

func TestParse(t *testing.T) {
	defer ulid.ResetGenerator()
	ulid.SequenceGenerator(10)

	t.Run("yaml", func(t *testing.T) {
		doc, err := Parse([]byte(`
header:
  title: Weekly
title: Issue 1
contentBlocks:
  - title: First
    content: Body
  - id: "7"
    title: Second
resources:
  - id: "1"
    title: Docs
    url: https://docs.example
footer:
  text: bye
`), "yaml")
		require.NoError(t, err)
		assert.Equal(t, "Weekly", doc.Header.Title)
		assert.Equal(t, "10", doc.ContentBlocks[0].ID)
		assert.Equal(t, "7", doc.ContentBlocks[1].ID)
		assert.Equal(t, "https://docs.example", doc.Resources[0].URL)
		assert.Equal(t, "bye", doc.Footer.Text)
	})

	t.Run("toml", func(t *testing.T) {
		doc, err := Parse([]byte(`
title = "Issue 2"

[[contentBlocks]]
id = "a"
title = "Block"
`), "toml")
		require.NoError(t, err)
		assert.Equal(t, "Issue 2", doc.Title)
		assert.Equal(t, "a", doc.ContentBlocks[0].ID)
	})

	t.Run("json", func(t *testing.T) {
		doc, err := Parse([]byte(`{"title":"Issue 3","resources":[{"id":"r","title":"R"}]}`), "json")
		require.NoError(t, err)
		assert.Equal(t, "Issue 3", doc.Title)
		assert.Equal(t, "r", doc.Resources[0].ID)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Parse([]byte("colour: red\n"), "yaml")
		require.Error(t, err)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := Parse([]byte(`{"contentBlocks":[{"id":"1"},{"id":"1"}]}`), "json")
		require.ErrorContains(t, err, "duplicate block id")
	})

	t.Run("delimiter in id", func(t *testing.T) {
		_, err := Parse([]byte(`{"resources":[{"id":"a-b"}]}`), "json")
		require.ErrorContains(t, err, "must not contain")
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := Parse(nil, "xml")
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yml")
	require.NoError(t, os.WriteFile(path, []byte("title: From file\n"), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "From file", doc.Title)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
