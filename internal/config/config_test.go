package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/ucschema"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "lenient", c.Mode)
	assert.Equal(t, "en", c.Lang)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "table", c.Output)
	assert.True(t, c.Indent)
	assert.False(t, c.StatusCodes)
	assert.Equal(t, 1, c.Workers)
	assert.Equal(t, ucschema.Lenient, c.ValidationMode())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "ucschema.yaml")
	require.NoError(t, os.WriteFile(file, []byte("mode: strict\noutput: json\nlog-level: debug\n"), 0o644))

	t.Setenv("UCSCHEMA_LOG_LEVEL", "warn")
	t.Setenv("UCSCHEMA_STATUS_CODES", "true")

	c, err := Load(New(), file)
	require.NoError(t, err)
	assert.Equal(t, ucschema.Strict, c.ValidationMode())
	assert.Equal(t, "json", c.Output)
	assert.Equal(t, "warn", c.LogLevel)
	assert.True(t, c.StatusCodes)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_RejectsUnknownValues(t *testing.T) {
	base := Config{Mode: "strict", Lang: "en", LogLevel: "info", LogFormat: "text", Output: "table", Workers: 1}
	require.NoError(t, base.Validate())

	regional := base
	regional.Lang = "ja-JP"
	require.NoError(t, regional.Validate())

	cases := map[string]func(c *Config){
		"mode":       func(c *Config) { c.Mode = "paranoid" },
		"log-level":  func(c *Config) { c.LogLevel = "loud" },
		"log-format": func(c *Config) { c.LogFormat = "xml" },
		"output":     func(c *Config) { c.Output = "csv" },
		"lang":       func(c *Config) { c.Lang = "fr" },
		"workers":    func(c *Config) { c.Workers = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	c := Config{LogLevel: "warn", LogFormat: "json"}
	logger := c.NewLogger(&buf)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.WithField("k", "v").Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"k":"v"`)
}
