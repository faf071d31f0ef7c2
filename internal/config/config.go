// Package config loads CLI settings from defaults, an optional YAML file,
// UCSCHEMA_* environment variables and bound flags, in increasing priority.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/reoring/ucschema"
	"github.com/reoring/ucschema/i18n"
)

// EnvPrefix is prepended to every environment variable (UCSCHEMA_MODE, ...).
const EnvPrefix = "UCSCHEMA"

// Keys shared by viper, flags and the config file.
const (
	KeyMode        = "mode"
	KeyLang        = "lang"
	KeyLogLevel    = "log-level"
	KeyLogFormat   = "log-format"
	KeyOutput      = "output"
	KeyIndent      = "indent"
	KeyStatusCodes = "status-codes"
	KeyWorkers     = "workers"
)

// Config holds resolved CLI settings.
type Config struct {
	Mode        string `mapstructure:"mode"`
	Lang        string `mapstructure:"lang"`
	LogLevel    string `mapstructure:"log-level"`
	LogFormat   string `mapstructure:"log-format"`   // text | json
	Output      string `mapstructure:"output"`       // table | json
	Indent      bool   `mapstructure:"indent"`       // indent JSON written by normalize
	StatusCodes bool   `mapstructure:"status-codes"` // write governance_status as integer code
	Workers     int    `mapstructure:"workers"`      // records processed concurrently
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyMode, ucschema.Lenient.String())
	v.SetDefault(KeyLang, "en")
	v.SetDefault(KeyLogLevel, logrus.InfoLevel.String())
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyOutput, "table")
	v.SetDefault(KeyIndent, true)
	v.SetDefault(KeyStatusCodes, false)
	v.SetDefault(KeyWorkers, 1)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file (when non-empty) into v and returns the validated Config.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects unknown enumerated values.
func (c *Config) Validate() error {
	if _, err := ucschema.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config.mode: %w", err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config.log-level: %w", err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config.log-format must be 'text' or 'json', got %q", c.LogFormat)
	}
	switch c.Output {
	case "table", "json":
	default:
		return fmt.Errorf("config.output must be 'table' or 'json', got %q", c.Output)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config.workers must be at least 1, got %d", c.Workers)
	}
	if _, ok := i18n.Resolve(c.Lang); !ok {
		return fmt.Errorf("config.lang must resolve to en or ja, got %q", c.Lang)
	}
	return nil
}

// ValidationMode returns the parsed Mode. Validate must have succeeded.
func (c *Config) ValidationMode() ucschema.Mode {
	m, _ := ucschema.ParseMode(c.Mode)
	return m
}

// NewLogger builds a logrus logger writing to w with the configured level and
// formatter.
func (c *Config) NewLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return logger
}
