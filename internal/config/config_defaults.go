package config

// DefaultYAML is the configuration used when no file overrides it.
var DefaultYAML = []byte(`version: v1alpha1

# Optional path to a YAML, TOML or JSON document to start from, or a
# preview link printed by "newsletter share".
document: ""

history:
  # Maximum number of undo snapshots; 0 keeps all of them.
  limit: 0

export:
  # Interpolate field values without escaping.
  verbatim: false
  # Base of share links.
  origin: "http://localhost:3000"

editor:
  max_length: 1000
  block_max_length: 2000
  # Record undo checkpoints when blocks and resources are
  # added, removed or moved.
  structural_checkpoints: false
  # Remove bold, italic, link and list markup on save.
  strip_formatting: false
  dark_mode: false

log:
  enabled: false
  path: "/tmp/newsletter.log"
  verbose: false
`)

var defaults Config

func init() {
	// Parsing on top of the zero value; ParseYAML itself starts from Default.
	cfg := &Config{}
	if err := decodeStrict(DefaultYAML, cfg); err != nil {
		panic(err)
	}
	if err := Validate(cfg); err != nil {
		panic(err)
	}
	defaults = *cfg
}

// Default returns a copy of the default configuration.
func Default() *Config {
	c := defaults
	return &c
}
