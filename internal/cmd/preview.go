package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/browser"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/newsletter/internal/config/autoconfig"
	"github.com/stateful/newsletter/internal/field"
	"github.com/stateful/newsletter/internal/markup"
	"github.com/stateful/newsletter/internal/store"
)

func previewCmd() *cobra.Command {
	var (
		fieldID string
		plain   bool
		open    bool
		sets    []string
	)

	cmd := cobra.Command{
		Use:   "preview",
		Short: "Render the formatted text fields.",
		Long: `Render the text fields as preview HTML, or as plain text with --plain.

With --open the exported newsletter is opened in the default browser instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return autoconfig.InvokeForCommand(
				func(s *store.Store, logger *zap.Logger) error {
					defer logger.Sync()

					if err := applySets(cmd, s, sets); err != nil {
						return err
					}

					if open {
						return openInBrowser(cmd, s, logger)
					}

					render := markup.RenderPreview
					if plain {
						render = markup.StripToPlainText
					}

					doc := s.Document()
					w := cmd.OutOrStdout()

					if fieldID != "" {
						addr, ok := field.Parse(fieldID)
						if !ok {
							return errors.Errorf("unknown field: %s", fieldID)
						}
						value, ok := field.Value(doc, addr)
						if !ok {
							return errors.Errorf("unknown field: %s", fieldID)
						}
						_, err := fmt.Fprintln(w, render(value))
						return errors.WithStack(err)
					}

					for _, e := range field.Entries(doc) {
						if e.Image {
							continue
						}
						_, _ = fmt.Fprintf(w, "%s (%s)\n%s\n\n", e.Label, e.Address, render(e.Value))
					}
					return nil
				},
				cmd,
			)
		},
	}

	cmd.Flags().StringVar(&fieldID, "field", "", "Render a single field, for example hero-content.")
	cmd.Flags().BoolVar(&plain, "plain", false, "Strip the formatting instead of rendering it.")
	cmd.Flags().BoolVar(&open, "open", false, "Open the exported newsletter in a browser.")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a field before rendering, as id=value.")

	return &cmd
}

func openInBrowser(cmd *cobra.Command, s *store.Store, logger *zap.Logger) error {
	content, err := s.ExportMarkup()
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "newsletter-*.html")
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return errors.WithStack(err)
	}

	logger.Info("opening preview", zap.String("path", f.Name()))

	browser.Stdout = cmd.ErrOrStderr()
	browser.Stderr = cmd.ErrOrStderr()
	return errors.Wrap(browser.OpenFile(f.Name()), "failed to open browser")
}
