// autoconfig provides a way to create various instances from the [config.Config] like
// [store.Store], [newsletter.Document], [zap.Logger].
//
// For example, to instantiate [store.Store], you can write:
//
//	autoconfig.Invoke(func(s *store.Store) error {
//	    ...
//	})
//
// Treat it as a dependency injection mechanism.
//
// The configuration is layered by [viper.Viper]: built-in defaults, then
// "newsletter.yaml" from the working directory or $HOME/.newsletter/, then
// NEWSLETTER_* environment variables, then command flags.
package autoconfig

import (
	"bytes"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/stateful/newsletter/internal/config"
	"github.com/stateful/newsletter/internal/export"
	"github.com/stateful/newsletter/internal/log"
	"github.com/stateful/newsletter/internal/newsletter"
	"github.com/stateful/newsletter/internal/store"
)

// Builder owns a dependency container. Each builder resolves its own
// configuration, logger and store.
type Builder struct {
	container *dig.Container
}

func NewBuilder() *Builder {
	b := &Builder{container: dig.New()}

	// [viper.Viper] can be overridden by a decorator:
	//   b.Decorate(func(v *viper.Viper) *viper.Viper { return v })
	mustProvide(b.container.Provide(getViper))
	mustProvide(b.container.Provide(getConfig))
	mustProvide(b.container.Provide(getLogger))
	mustProvide(b.container.Provide(getDocument))
	mustProvide(b.container.Provide(getStore))

	return b
}

func (b *Builder) Decorate(decorator interface{}, opts ...dig.DecorateOption) error {
	return b.container.Decorate(decorator, opts...)
}

// Invoke is used to invoke the function with the given dependencies.
func (b *Builder) Invoke(function interface{}, opts ...dig.InvokeOption) error {
	err := b.container.Invoke(function, opts...)
	return dig.RootCause(err)
}

var defaultBuilder = NewBuilder()

// Invoke is used to invoke the function with the given dependencies.
// The package will automatically figure out how to instantiate them
// using the available configuration.
func Invoke(function interface{}, opts ...dig.InvokeOption) error {
	return defaultBuilder.Invoke(function, opts...)
}

// InvokeForCommand is like [Invoke] but the configuration also takes the
// flags of cmd into account. Flags are matched to configuration keys by
// [FlagKeys].
func InvokeForCommand(function interface{}, cmd *cobra.Command, opts ...dig.InvokeOption) error {
	b := NewBuilder()

	err := b.Decorate(func(v *viper.Viper) (*viper.Viper, error) {
		return v, bindFlags(v, cmd.Flags())
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return b.Invoke(function, opts...)
}

// FlagKeys maps command flag names to configuration keys.
var FlagKeys = map[string]string{
	"config":                 "",
	"document":               "document",
	"history-limit":          "history.limit",
	"verbatim":               "export.verbatim",
	"origin":                 "export.origin",
	"structural-checkpoints": "editor.structural_checkpoints",
	"strip-formatting":       "editor.strip_formatting",
	"dark":                   "editor.dark_mode",
	"log":                    "log.enabled",
	"log-path":               "log.path",
	"log-verbose":            "log.verbose",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var result error
	flags.VisitAll(func(f *pflag.Flag) {
		if result != nil {
			return
		}
		if f.Name == "config" {
			if f.Changed {
				v.SetConfigFile(f.Value.String())
			}
			return
		}
		key, ok := FlagKeys[f.Name]
		if !ok || key == "" {
			return
		}
		result = v.BindPFlag(key, f)
	})
	return errors.WithStack(result)
}

func mustProvide(err error) {
	if err != nil {
		panic("failed to provide: " + err.Error())
	}
}

func getViper() (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName("newsletter")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.newsletter/")

	v.SetEnvPrefix("NEWSLETTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadConfig(bytes.NewReader(config.DefaultYAML)); err != nil {
		return nil, errors.Wrap(err, "failed to read default config")
	}

	return v, nil
}

func getConfig(v *viper.Viper) (*config.Config, error) {
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config")
		}
	}

	cfg := config.Default()
	err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
		dc.ErrorUnused = true
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	if err := config.Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to validate config")
	}

	return cfg, nil
}

func getLogger(c *config.Config) (*zap.Logger, error) {
	if c == nil {
		return zap.NewNop(), nil
	}
	l, err := log.New(c.Log.Enabled, c.Log.Path, c.Log.Verbose)
	return l, errors.WithStack(err)
}

func getDocument(c *config.Config, logger *zap.Logger) (newsletter.Document, error) {
	if c.Document == "" {
		return newsletter.Seed(), nil
	}

	// A preview link from "newsletter share" carries the whole document.
	if strings.HasPrefix(c.Document, "http://") || strings.HasPrefix(c.Document, "https://") {
		doc, err := export.DecodeShareLink(c.Document)
		if err != nil {
			return newsletter.Document{}, err
		}
		logger.Info("loaded document from link")
		return doc, nil
	}

	doc, err := newsletter.Load(c.Document)
	if err != nil {
		return newsletter.Document{}, err
	}

	logger.Info("loaded document", zap.String("path", c.Document))
	return doc, nil
}

func getStore(c *config.Config, doc newsletter.Document, logger *zap.Logger) *store.Store {
	mode := export.Escape
	if c.Export.Verbatim {
		mode = export.Verbatim
	}

	return store.New(
		doc,
		store.WithLogger(logger.Named("store")),
		store.WithHistoryLimit(c.History.Limit),
		store.WithStructuralCheckpoints(c.Editor.StructuralCheckpoints),
		store.WithExportMode(mode),
		store.WithDarkMode(c.Editor.DarkMode),
	)
}
