package config

import (
	"bytes"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of the newsletter editor.
type Config struct {
	Version string `yaml:"version" validate:"required,oneof=v1alpha1"`

	// Document is an optional path to a YAML, TOML or JSON file the editing
	// session starts from instead of the built-in seed.
	Document string `yaml:"document"`

	History ConfigHistory `yaml:"history"`
	Export  ConfigExport  `yaml:"export"`
	Editor  ConfigEditor  `yaml:"editor"`
	Log     ConfigLog     `yaml:"log"`
}

type ConfigHistory struct {
	// Limit bounds the number of undo snapshots. Zero means unbounded.
	Limit int `yaml:"limit" validate:"gte=0"`
}

type ConfigExport struct {
	// Verbatim disables escaping of field values in exports.
	Verbatim bool `yaml:"verbatim"`
	// Origin is the base of share links.
	Origin string `yaml:"origin" validate:"omitempty,http_url"`
}

type ConfigEditor struct {
	MaxLength             int  `yaml:"max_length" validate:"gte=0"`
	BlockMaxLength        int  `yaml:"block_max_length" validate:"gte=0"`
	StructuralCheckpoints bool `yaml:"structural_checkpoints"`
	StripFormatting       bool `yaml:"strip_formatting"`
	DarkMode              bool `yaml:"dark_mode"`
}

type ConfigLog struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Verbose bool   `yaml:"verbose"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseYAML parses data on top of the default configuration. Unknown keys
// are rejected.
func ParseYAML(data []byte) (*Config, error) {
	version, err := parseVersionFromYAML(data)
	if err != nil {
		return nil, err
	}

	switch version {
	case "v1alpha1":
		cfg := Default()
		if err := decodeStrict(data, cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse v1alpha1 config")
		}

		if err := Validate(cfg); err != nil {
			return nil, errors.Wrap(err, "failed to validate v1alpha1 config")
		}

		return cfg, nil
	default:
		return nil, errors.Errorf("unknown version: %s", version)
	}
}

func decodeStrict(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return errors.WithStack(err)
	}
	return nil
}

type versionOnly struct {
	Version string `yaml:"version"`
}

func parseVersionFromYAML(data []byte) (string, error) {
	var result versionOnly

	if err := yaml.Unmarshal(data, &result); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal version")
	}

	return result.Version, nil
}

// Validate checks cfg and reports every violation.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.WithStack(err)
	}

	var result error
	for _, fe := range verrs {
		// Drop the root struct name: "Config.history.limit" -> "history.limit".
		_, ns, _ := strings.Cut(fe.Namespace(), ".")
		result = multierr.Append(result, errors.Errorf("%s: failed on %q", ns, fe.Tag()))
	}
	return result
}
