package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stateful/newsletter/internal/version"
)

func Root() *cobra.Command {
	cmd := cobra.Command{
		Use:   "newsletter",
		Short: "Edit and export service newsletters",
		Long: `Edit a service newsletter in the terminal and export it as HTML or XML.

Configuration is read from newsletter.yaml in the working directory or
$HOME/.newsletter/, NEWSLETTER_* environment variables and flags.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       version.String(),
	}

	pflags := cmd.PersistentFlags()

	pflags.String("config", "", "Path to a configuration file.")
	pflags.String("document", "", "Start from a YAML, TOML or JSON document instead of the sample newsletter.")
	pflags.Bool("log", false, "Enable logging.")
	pflags.String("log-path", "", "Path to the log file.")
	pflags.Bool("log-verbose", false, "Log debug messages.")
	pflags.Int("history-limit", 0, "Maximum number of undo steps. Zero means unlimited.")
	pflags.Bool("verbatim", false, "Do not escape field values in exports.")

	cmd.AddCommand(editCmd())
	cmd.AddCommand(exportCmd())
	cmd.AddCommand(fieldsCmd())
	cmd.AddCommand(previewCmd())
	cmd.AddCommand(shareCmd())
	cmd.AddCommand(validateCmd())

	return &cmd
}
