package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8787", cfg.Server.Addr)
	assert.Equal(t, 80, cfg.Image.Quality)
	assert.Equal(t, "jpeg", cfg.Image.Format)
	assert.Equal(t, 300*time.Millisecond, cfg.Image.Debounce)
	assert.Equal(t, 4, cfg.Image.Workers)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stylo.yaml")
	data := "image:\n  quality: 55\n  format: jpg\n  debounce: 1s\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("STYLO_SERVER_ADDR", ":9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 55, cfg.Image.Quality)
	assert.Equal(t, "jpeg", cfg.Image.Format, "alias canonicalized")
	assert.Equal(t, time.Second, cfg.Image.Debounce)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:  ServerConfig{Addr: ":0"},
			Image:   ImageConfig{Quality: 80, Format: "webp", Workers: 1},
			Logging: LoggingConfig{Level: "warn"},
		}
	}
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no addr", func(c *Config) { c.Server.Addr = "" }},
		{"quality high", func(c *Config) { c.Image.Quality = 101 }},
		{"quality low", func(c *Config) { c.Image.Quality = -1 }},
		{"format", func(c *Config) { c.Image.Format = "gif" }},
		{"debounce", func(c *Config) { c.Image.Debounce = -time.Second }},
		{"workers", func(c *Config) { c.Image.Workers = 0 }},
		{"level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	base := valid()
	require.NoError(t, base.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
