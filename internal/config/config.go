// Package config loads the settings of the streamql command line.
package config

import (
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

const (
	DefaultConfigFile = "streamql.yaml"
	DefaultLogLevel   = "error"
	DefaultOutput     = OutputSQL

	envPrefix = "STREAMQL_"
)

// Output formats of the lower command
const (
	OutputSQL   = "sql"
	OutputYAML  = "yaml"
	OutputTable = "table"
)

var Outputs = []string{OutputSQL, OutputYAML, OutputTable}

type Config struct {
	LogLevel string `koanf:"log_level"`
	Output   string `koanf:"output"`
}

var (
	k              = koanf.New(".")
	configFileUsed string
)

// Reset drops everything loaded so far. Used for testing.
func Reset() {
	k = koanf.New(".")
	configFileUsed = ""
}

// FileUsed returns the path of the config file read by the last Load, if any.
func FileUsed() string {
	return configFileUsed
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// Load reads the configuration. Precedence, highest first: flags which were
// set explicitly, STREAMQL_ environment variables, the config file, defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"log_level": DefaultLogLevel,
		"output":    DefaultOutput,
	}, "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "error reading config file %s", configFileUsed)
		}
	}

	// STREAMQL_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, errors.Wrap(err, "failed to load flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}
	cfg.Output = strings.ToLower(cfg.Output)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(Outputs, c.Output) {
		return errors.Errorf("unknown output %q, must be one of: %s", c.Output, strings.Join(Outputs, ", "))
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel, which is one of debug, info, warn or error.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return level, nil
}
