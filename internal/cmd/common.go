package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mgutz/ansi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/newsletter/internal/field"
	"github.com/stateful/newsletter/internal/newsletter"
	"github.com/stateful/newsletter/internal/store"
	"github.com/stateful/newsletter/internal/upload"
)

var warnColor = ansi.ColorFunc("yellow+b")

func warnf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), warnColor("warning:")+" "+fmt.Sprintf(format, args...))
}

func findEntry(doc newsletter.Document, addr field.Address) (field.Entry, bool) {
	for _, e := range field.Entries(doc) {
		if e.Address == addr {
			return e, true
		}
	}
	return field.Entry{}, false
}

// applySets updates fields from "id=value" pairs and records a single
// checkpoint for all of them. Unknown fields are reported and skipped.
// Image fields take a URL or "@path"; an empty value clears them.
func applySets(cmd *cobra.Command, s *store.Store, sets []string) error {
	if len(sets) == 0 {
		return nil
	}

	for _, set := range sets {
		id, value, ok := strings.Cut(set, "=")
		if !ok {
			return errors.Errorf("invalid --set %q: expected id=value", set)
		}

		addr, ok := field.Parse(id)
		if !ok {
			warnf(cmd, "unknown field %q", id)
			continue
		}
		entry, ok := findEntry(s.Document(), addr)
		if !ok {
			warnf(cmd, "unknown field %q", id)
			continue
		}

		// An empty image value removes the image.
		if entry.Image && strings.TrimSpace(value) != "" {
			v, err := upload.FromInput(value)
			if err != nil {
				return errors.Wrapf(err, "invalid value for %s", id)
			}
			value = v
		}

		s.UpdateFieldID(id, value)
	}

	s.Checkpoint()
	return nil
}

// addSections appends one titled section per title.
func addSections(s *store.Store, titles []string) {
	for _, title := range titles {
		if strings.TrimSpace(title) == "" {
			continue
		}
		s.AddContentBlock(newsletter.Titled(strings.TrimSpace(title)))
	}
}

func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), content)
		return errors.WithStack(err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}

func exportAs(s *store.Store, format string) (string, error) {
	switch format {
	case "html":
		return s.ExportMarkup()
	case "xml":
		return s.ExportStructured()
	default:
		return "", errors.Errorf("invalid format: %s", format)
	}
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
