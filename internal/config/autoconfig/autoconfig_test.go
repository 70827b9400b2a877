package autoconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/newsletter/internal/config"
	"github.com/stateful/newsletter/internal/export"
	"github.com/stateful/newsletter/internal/field"
	"github.com/stateful/newsletter/internal/newsletter"
	"github.com/stateful/newsletter/internal/store"
)

func withConfigFile(t *testing.T, b *Builder, content string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "newsletter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	err := b.Decorate(func(v *viper.Viper) *viper.Viper {
		v.SetConfigFile(path)
		return v
	})
	require.NoError(t, err)
}

func TestInvoke_Defaults(t *testing.T) {
	err := NewBuilder().Invoke(func(cfg *config.Config, s *store.Store) error {
		assert.Equal(t, config.Default(), cfg)
		assert.Equal(t, newsletter.Seed(), s.Document())
		return nil
	})
	require.NoError(t, err)
}

func TestInvoke_ConfigFile(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(docPath, []byte(`title: Loaded
contentBlocks:
  - id: "7"
    title: Seven
    content: text
`), 0o644))

	b := NewBuilder()
	withConfigFile(t, b, `version: v1alpha1
document: `+docPath+`
history:
  limit: 2
editor:
  structural_checkpoints: true
`)

	err := b.Invoke(func(cfg *config.Config, s *store.Store) error {
		assert.Equal(t, 2, cfg.History.Limit)
		assert.True(t, cfg.Editor.StructuralCheckpoints)
		// Defaults not named in the file are kept.
		assert.Equal(t, 2000, cfg.Editor.BlockMaxLength)

		doc := s.Document()
		assert.Equal(t, "Loaded", doc.Title)
		require.Len(t, doc.ContentBlocks, 1)

		s.RemoveContentBlock("7")
		assert.True(t, s.CanUndo())
		return nil
	})
	require.NoError(t, err)
}

func TestInvoke_DocumentFromLink(t *testing.T) {
	doc := newsletter.Seed()
	doc.Title = "Shared"
	link, err := export.ShareLink("http://localhost:3000", doc)
	require.NoError(t, err)

	t.Setenv("NEWSLETTER_DOCUMENT", link)

	err = NewBuilder().Invoke(func(s *store.Store) error {
		assert.Equal(t, doc, s.Document())
		return nil
	})
	require.NoError(t, err)
}

func TestInvoke_DocumentFromLinkWithBadIDs(t *testing.T) {
	doc := newsletter.Seed()
	doc.ContentBlocks = append(doc.ContentBlocks, doc.ContentBlocks[0])
	link, err := export.ShareLink("http://localhost:3000", doc)
	require.NoError(t, err)

	t.Setenv("NEWSLETTER_DOCUMENT", link)

	err = NewBuilder().Invoke(func(*store.Store) error { return nil })
	assert.ErrorContains(t, err, "duplicate block id")
}

func TestInvoke_InvalidConfig(t *testing.T) {
	b := NewBuilder()
	withConfigFile(t, b, "version: v1alpha1\nhistory:\n  limit: -3\n")

	err := b.Invoke(func(*config.Config) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history.limit")
}

func TestInvoke_MissingConfigFile(t *testing.T) {
	b := NewBuilder()
	err := b.Decorate(func(v *viper.Viper) *viper.Viper {
		v.SetConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
		return v
	})
	require.NoError(t, err)

	err = b.Invoke(func(*config.Config) error { return nil })
	require.Error(t, err)
}

func TestInvoke_Env(t *testing.T) {
	t.Setenv("NEWSLETTER_HISTORY_LIMIT", "9")
	t.Setenv("NEWSLETTER_EXPORT_VERBATIM", "true")

	err := NewBuilder().Invoke(func(cfg *config.Config, s *store.Store) error {
		assert.Equal(t, 9, cfg.History.Limit)
		assert.True(t, cfg.Export.Verbatim)

		s.UpdateField(field.Title(), "<b>")
		out, err := s.ExportMarkup()
		require.NoError(t, err)
		assert.Contains(t, out, "<h2><b></h2>")
		return nil
	})
	require.NoError(t, err)
}

func TestInvokeForCommand_Flags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool("log-verbose", false, "")
	cmd.Flags().Int("history-limit", 0, "")
	cmd.Flags().Bool("dark", false, "")
	cmd.Flags().String("unrelated", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--history-limit=3", "--dark"}))

	err := InvokeForCommand(func(cfg *config.Config, s *store.Store) error {
		assert.Equal(t, 3, cfg.History.Limit)
		assert.True(t, cfg.Editor.DarkMode)
		assert.False(t, cfg.Log.Verbose)
		assert.True(t, s.DarkMode())
		return nil
	}, cmd)
	require.NoError(t, err)
}
