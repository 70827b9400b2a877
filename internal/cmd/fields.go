package cmd

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/cli/go-gh/v2/pkg/jsonpretty"
	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/newsletter/internal/config/autoconfig"
	"github.com/stateful/newsletter/internal/field"
	"github.com/stateful/newsletter/internal/store"
	"github.com/stateful/newsletter/internal/term"
)

func fieldsCmd() *cobra.Command {
	var format string

	cmd := cobra.Command{
		Use:   "fields [pattern...]",
		Short: "List editable fields and their identifiers.",
		Long: `List editable fields and their identifiers.

Patterns are globs matched against identifiers, for example "block-*" or "*-url".`,
		Example: `  newsletter fields
  newsletter fields 'resource-*' --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			match, err := compilePatterns(args)
			if err != nil {
				return err
			}

			return autoconfig.InvokeForCommand(
				func(s *store.Store) error {
					var entries []field.Entry
					for _, e := range field.Entries(s.Document()) {
						if match(e.Address.String()) {
							entries = append(entries, e)
						}
					}

					switch format {
					case "json":
						return renderFieldsAsJSON(cmd, entries)
					case "table":
						return renderFieldsAsTable(cmd, entries)
					default:
						return errors.Errorf("invalid format: %s", format)
					}
				},
				cmd,
			)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, json).")

	return &cmd
}

func compilePatterns(patterns []string) (func(string) bool, error) {
	if len(patterns) == 0 {
		return func(string) bool { return true }, nil
	}

	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid pattern %q", p)
		}
		globs = append(globs, g)
	}

	return func(id string) bool {
		for _, g := range globs {
			if g.Match(id) {
				return true
			}
		}
		return false
	}, nil
}

func renderFieldsAsTable(cmd *cobra.Command, entries []field.Entry) error {
	term := term.FromIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())

	table := tableprinter.New(term.Out(), term.IsTTY(), term.Width())

	// table header
	table.AddField(strings.ToUpper("ID"))
	table.AddField(strings.ToUpper("Label"))
	table.AddField(strings.ToUpper("Value"))
	table.EndRow()

	for _, e := range entries {
		table.AddField(e.Address.String())
		table.AddField(e.Label)
		table.AddField(singleLine(e.Value))
		table.EndRow()
	}

	return errors.WithStack(table.Render())
}

type fieldJSON struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Value     string `json:"value"`
	Multiline bool   `json:"multiline,omitempty"`
	Image     bool   `json:"image,omitempty"`
}

func renderFieldsAsJSON(cmd *cobra.Command, entries []field.Entry) error {
	out := make([]fieldJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, fieldJSON{
			ID:        e.Address.String(),
			Label:     e.Label,
			Value:     e.Value,
			Multiline: e.Multiline,
			Image:     e.Image,
		})
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return errors.WithStack(err)
	}

	term := term.FromIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	return errors.WithStack(
		jsonpretty.Format(term.Out(), bytes.NewReader(raw), "  ", term.Color()),
	)
}
