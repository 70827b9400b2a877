package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/newsletter/internal/config/autoconfig"
	"github.com/stateful/newsletter/internal/export"
	"github.com/stateful/newsletter/internal/store"
)

func exportCmd() *cobra.Command {
	var (
		format  string
		out     string
		copyOut bool
		sets    []string
		add     []string
	)

	cmd := cobra.Command{
		Use:   "export",
		Short: "Export the newsletter as HTML or XML.",
		Example: `  newsletter export > newsletter.html
  newsletter export --format xml --out newsletter.xml
  newsletter export --set newsletter-title="July 2024" --set block-1-image=@chart.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return autoconfig.InvokeForCommand(
				func(s *store.Store, logger *zap.Logger) error {
					defer logger.Sync()

					addSections(s, add)

					if err := applySets(cmd, s, sets); err != nil {
						return err
					}

					content, err := exportAs(s, format)
					if err != nil {
						return err
					}
					logger.Info("exported document", zap.String("format", format), zap.Int("bytes", len(content)))

					if copyOut {
						if err := export.Copy(content, logger); err != nil {
							warnf(cmd, "%v", err)
						}
					}

					return writeOutput(cmd, out, content)
				},
				cmd,
			)
		},
	}

	cmd.Flags().StringVar(&format, "format", "html", "Output format (html, xml).")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to a file instead of stdout.")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Also copy the output to the clipboard.")
	cmd.Flags().StringArrayVar(&add, "add-section", nil, "Append a section with this title. Can be repeated.")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a field before exporting, as id=value. Image fields accept @path.")

	return &cmd
}
