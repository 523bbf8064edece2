// Package config loads docmark settings from a YAML file, DOCMARK_*
// environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// DOCMARK_MIN_CONTENT_LENGTH or DOCMARK_LOG_DEBUG.
const EnvPrefix = "DOCMARK"

// Log holds logger settings.
type Log struct {
	Debug bool `mapstructure:"debug"`
	Quiet bool `mapstructure:"quiet"`
	JSON  bool `mapstructure:"json"`
}

// Config is the resolved configuration.
type Config struct {
	// MinContentLength is the shortest acceptable normalized Markdown.
	MinContentLength int `mapstructure:"min_content_length"`
	// MinRegionLength is the text a region candidate must exceed.
	MinRegionLength int `mapstructure:"min_region_length"`
	// ExtraBoilerplate selectors are removed along with the built-in set.
	ExtraBoilerplate []string `mapstructure:"extra_boilerplate"`
	// ExtraContentSelectors are tried, in order, before the built-in rules.
	ExtraContentSelectors []string `mapstructure:"extra_content_selectors"`
	Extension             string   `mapstructure:"extension"`
	Provider              string   `mapstructure:"provider"`
	ChunkWords            int      `mapstructure:"chunk_words"`
	Log                   Log      `mapstructure:"log"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("min_content_length", 100)
	v.SetDefault("min_region_length", 100)
	v.SetDefault("extra_boilerplate", []string{})
	v.SetDefault("extra_content_selectors", []string{})
	v.SetDefault("extension", ".mdc")
	v.SetDefault("provider", "")
	v.SetDefault("chunk_words", 0)
	v.SetDefault("log.debug", false)
	v.SetDefault("log.quiet", false)
	v.SetDefault("log.json", false)
}

// Load reads configuration into v and decodes it. An explicit file must
// exist; otherwise docmark.yaml is looked up in the working directory
// and the user's config directory and may be absent.
func Load(v *viper.Viper, file string, searchPaths ...string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("docmark")
		v.SetConfigType("yaml")
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and that every selector compiles.
func (c *Config) Validate() error {
	var errs []error
	if c.MinContentLength < 0 {
		errs = append(errs, fmt.Errorf("min_content_length must be >= 0, got %d", c.MinContentLength))
	}
	if c.MinRegionLength < 0 {
		errs = append(errs, fmt.Errorf("min_region_length must be >= 0, got %d", c.MinRegionLength))
	}
	if c.ChunkWords < 0 {
		errs = append(errs, fmt.Errorf("chunk_words must be >= 0, got %d", c.ChunkWords))
	}
	if strings.ContainsAny(c.Extension, `/\`) {
		errs = append(errs, fmt.Errorf("extension %q must not contain a path separator", c.Extension))
	}
	for _, sel := range append(append([]string{}, c.ExtraBoilerplate...), c.ExtraContentSelectors...) {
		if _, err := cascadia.Compile(sel); err != nil {
			errs = append(errs, fmt.Errorf("invalid selector %q: %w", sel, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
