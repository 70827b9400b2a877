package cmd

import (
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/stateful/newsletter/internal/config/autoconfig"
	"github.com/stateful/newsletter/internal/store"
	"github.com/stateful/newsletter/internal/validate"
)

var (
	issueColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	okColor      = color.New(color.FgGreen, color.Bold)
)

func validateCmd() *cobra.Command {
	var (
		strict bool
		sets   []string
	)

	cmd := cobra.Command{
		Use:   "validate",
		Short: "Check the newsletter for missing or invalid content.",
		Long: `Check the newsletter for missing or invalid content.

Issues make the command fail. Warnings fail it only with --strict.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return autoconfig.InvokeForCommand(
				func(s *store.Store) error {
					if err := applySets(cmd, s, sets); err != nil {
						return err
					}

					report := validate.Document(s.Document())
					printReport(cmd.OutOrStdout(), report)

					err := report.Err()
					if strict {
						err = report.Strict()
					}
					if err != nil {
						return errors.Errorf("validation failed with %d problem(s)", len(multierr.Errors(err)))
					}
					return nil
				},
				cmd,
			)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors.")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a field before validating, as id=value.")

	return &cmd
}

func printReport(w io.Writer, r validate.Report) {
	for _, msg := range r.Issues {
		_, _ = issueColor.Fprint(w, "error: ")
		_, _ = io.WriteString(w, msg+"\n")
	}
	for _, msg := range r.Warnings {
		_, _ = warningColor.Fprint(w, "warning: ")
		_, _ = io.WriteString(w, msg+"\n")
	}
	for _, msg := range r.Info {
		_, _ = infoColor.Fprint(w, "info: ")
		_, _ = io.WriteString(w, msg+"\n")
	}
	if r.OK() {
		_, _ = okColor.Fprintln(w, "Ready to publish")
	}
}
