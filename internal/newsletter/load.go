package newsletter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/stateful/newsletter/internal/ulid"
)

var ErrUnsupportedFormat = errors.New("unsupported document format")

// Load reads a seed document from a YAML, TOML or JSON file, chosen by
// the file extension.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, errors.Wrapf(err, "failed to read document %q", path)
	}
	doc, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	return doc, errors.Wrapf(err, "failed to load document %q", path)
}

// Parse decodes a document in the given format ("yaml", "yml", "toml" or
// "json"). Blocks and resources without an id get a generated one.
func Parse(data []byte, format string) (Document, error) {
	var doc Document

	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return Document{}, errors.Wrap(err, "failed to unmarshal yaml")
		}
	case "toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return Document{}, errors.Wrap(err, "failed to unmarshal toml")
		}
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return Document{}, errors.Wrap(err, "failed to unmarshal json")
		}
	default:
		return Document{}, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}

	if err := assignIDs(&doc); err != nil {
		return Document{}, err
	}

	return doc, nil
}

func assignIDs(doc *Document) error {
	seen := make(map[string]struct{}, len(doc.ContentBlocks))
	for i := range doc.ContentBlocks {
		b := &doc.ContentBlocks[i]
		if b.ID == "" {
			b.ID = ulid.GenerateID()
		}
		if strings.Contains(b.ID, "-") {
			return errors.Errorf("block id %q must not contain %q", b.ID, "-")
		}
		if _, ok := seen[b.ID]; ok {
			return errors.Errorf("duplicate block id %q", b.ID)
		}
		seen[b.ID] = struct{}{}
	}

	seen = make(map[string]struct{}, len(doc.Resources))
	for i := range doc.Resources {
		r := &doc.Resources[i]
		if r.ID == "" {
			r.ID = ulid.GenerateID()
		}
		if strings.Contains(r.ID, "-") {
			return errors.Errorf("resource id %q must not contain %q", r.ID, "-")
		}
		if _, ok := seen[r.ID]; ok {
			return errors.Errorf("duplicate resource id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	return nil
}
