package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/newsletter/internal/config"
	"github.com/stateful/newsletter/internal/config/autoconfig"
	"github.com/stateful/newsletter/internal/edit"
	"github.com/stateful/newsletter/internal/log"
	"github.com/stateful/newsletter/internal/newsletter"
	"github.com/stateful/newsletter/internal/store"
	"github.com/stateful/newsletter/internal/tui"
)

func editCmd() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := cobra.Command{
		Use:   "edit",
		Short: "Edit the newsletter in the terminal.",
		Long: `Edit the newsletter in the terminal.

Changes live in memory only. Use --out to export the result on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return autoconfig.InvokeForCommand(
				func(cfg *config.Config, s *store.Store, logger *zap.Logger) error {
					defer logger.Sync()

					log.Use(logger)

					unsubscribe := s.Subscribe(func(doc newsletter.Document) {
						logger.Debug(
							"document changed",
							zap.Int("blocks", len(doc.ContentBlocks)),
							zap.Int("resources", len(doc.Resources)),
						)
					})
					defer unsubscribe()

					editor := tui.NewEditorModel(
						s,
						tui.WithEditOptions(
							edit.WithMaxLengths(cfg.Editor.MaxLength, cfg.Editor.BlockMaxLength),
							edit.WithStripFormatting(cfg.Editor.StripFormatting),
						),
					)
					model := tui.NewModel(editor, tui.MinimalKeyMap, tui.StylesFor(s.DarkMode()))

					if _, err := newProgram(cmd, model).Run(); err != nil {
						return errors.Wrap(err, "failed to run the editor")
					}

					if out == "" {
						return nil
					}

					content, err := exportAs(s, format)
					if err != nil {
						return err
					}
					return writeOutput(cmd, out, content)
				},
				cmd,
			)
		},
	}

	cmd.Flags().Bool("dark", false, "Start with the dark theme.")
	cmd.Flags().Bool("strip-formatting", false, "Remove formatting markup when a field is saved.")
	cmd.Flags().Bool("structural-checkpoints", false, "Record undo steps for adding, removing and moving sections.")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Export to this file when the editor exits.")
	cmd.Flags().StringVar(&format, "format", "html", "Format of the export written with --out (html, xml).")

	return &cmd
}
