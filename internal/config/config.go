// Package config loads querydiff settings from defaults, an optional YAML
// file, QUERYDIFF_ environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sqlc-dev/querydiff/diff"
	"github.com/sqlc-dev/querydiff/parser"
)

const (
	// FileName is the config file looked up in the working directory when
	// no explicit path is given.
	FileName  = ".querydiff"
	envPrefix = "QUERYDIFF"
)

// Output formats accepted by the CLI.
var Outputs = []string{"text", "json", "yaml"}

// Config holds all configuration for the CLI.
type Config struct {
	Dialect          string `mapstructure:"dialect"`
	Output           string `mapstructure:"output"`
	Color            bool   `mapstructure:"color"`
	Normalize        bool   `mapstructure:"normalize"`
	IgnoreWhitespace bool   `mapstructure:"ignore_whitespace"`
	SemanticDiff     bool   `mapstructure:"semantic_diff"`
}

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"dialect":           "dialect",
	"output":            "output",
	"normalize":         "normalize",
	"ignore_whitespace": "ignore-whitespace",
	"semantic_diff":     "semantic",
}

// Load reads the configuration. An empty path searches the working
// directory for .querydiff.yaml and tolerates its absence; an explicit path
// must exist. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "failed to bind flag %s", name)
				}
			}
		}
		if f := flags.Lookup("no-color"); f != nil && f.Changed && f.Value.String() == "true" {
			v.Set("color", false)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("dialect", string(parser.DialectAuto))
	v.SetDefault("output", "text")
	v.SetDefault("color", true)

	// Comparison defaults
	v.SetDefault("normalize", true)
	v.SetDefault("ignore_whitespace", true)
	v.SetDefault("semantic_diff", true)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := parser.ParseDialect(c.Dialect); err != nil {
		return err
	}
	for _, o := range Outputs {
		if c.Output == o {
			return nil
		}
	}
	return errors.Errorf("invalid output %q: must be one of %v", c.Output, Outputs)
}

// ParsedDialect returns the configured dialect.
func (c *Config) ParsedDialect() parser.Dialect {
	d, err := parser.ParseDialect(c.Dialect)
	if err != nil {
		return parser.DialectAuto
	}
	return d
}

// DiffConfig returns the comparison settings.
func (c *Config) DiffConfig() diff.Config {
	return diff.Config{
		Normalize:        c.Normalize,
		IgnoreWhitespace: c.IgnoreWhitespace,
		Dialect:          c.ParsedDialect(),
		SemanticDiff:     c.SemanticDiff,
	}
}
