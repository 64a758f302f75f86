// Package config loads stylo settings from defaults, an optional
// stylo.yaml and STYLO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AnyUserName/stylo-cli/internal/encoder"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Image   ImageConfig   `mapstructure:"image"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
}

type ImageConfig struct {
	Quality  int           `mapstructure:"quality"`
	Format   string        `mapstructure:"format"`
	Debounce time.Duration `mapstructure:"debounce"`
	Workers  int           `mapstructure:"workers"`
	OutDir   string        `mapstructure:"out_dir"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Load reads configuration. A non-empty file must exist; otherwise
// stylo.yaml is looked up in ., ./configs and $HOME/.config/stylo and
// may be absent.
func Load(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", "127.0.0.1:8787")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("image.quality", 80)
	v.SetDefault("image.format", encoder.DefaultFormat)
	v.SetDefault("image.debounce", "300ms")
	v.SetDefault("image.workers", 4)
	v.SetDefault("image.out_dir", ".")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.json", false)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("stylo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "stylo"))
		}
	}

	v.SetEnvPrefix("STYLO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects out-of-range settings and canonicalizes the format.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Image.Quality < 0 || c.Image.Quality > 100 {
		return fmt.Errorf("image.quality must be between 0 and 100")
	}
	name, ok := encoder.Canonical(c.Image.Format)
	if !ok {
		return fmt.Errorf("image.format %q is not one of jpeg, png, webp, avif", c.Image.Format)
	}
	c.Image.Format = name
	if c.Image.Debounce < 0 {
		return fmt.Errorf("image.debounce must not be negative")
	}
	if c.Image.Workers < 1 {
		return fmt.Errorf("image.workers must be at least 1")
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}
