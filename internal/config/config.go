// Package config loads c4render configuration.
//
// Values come from three layers, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file, by default $XDG_CONFIG_HOME/c4render/config.toml
//  3. C4RENDER_* environment variables, optionally read from a .env file
//
// Example file:
//
//	[render]
//	output_dir = "diagrams_output"
//	format = "svg"
//	dpi = 200
//
//	[cache]
//	ttl = "24h"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/c4render/pkg/render"
)

// AppName names the config and cache directories.
const AppName = "c4render"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "C4RENDER_"

// Config is the complete configuration.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds renderer defaults.
type RenderConfig struct {
	OutputDir string  `toml:"output_dir"`
	Format    string  `toml:"format"`
	DPI       int     `toml:"dpi"`
	Scale     float64 `toml:"scale"`
	Font      string  `toml:"font"`
}

// CacheConfig selects and tunes the artifact cache. A non-empty RedisURL
// selects the Redis backend; otherwise files under Dir are used.
type CacheConfig struct {
	Enabled   bool     `toml:"enabled"`
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisURL  string   `toml:"redis_url"`
	Namespace string   `toml:"namespace"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	OutputDir    string `toml:"output_dir"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Duration is a time.Duration written as a Go duration string ("24h").
type Duration struct{ time.Duration }

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			OutputDir: "diagrams_output",
			Format:    string(render.FormatPNG),
			DPI:       render.DefaultDPI,
			Scale:     1,
			Font:      render.DefaultFont,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     defaultCacheDir(),
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			OutputDir:    "diagrams_output",
			MaxBodyBytes: 1 << 20,
		},
	}
}

// Load reads the configuration. An empty path selects [DefaultPath]; a
// missing default file is not an error, a missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		_, err := toml.DecodeFile(path, cfg)
		if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	// A .env file is optional.
	_ = godotenv.Load()
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the renderer cannot honor.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Render.OutputDir) == "" {
		return fmt.Errorf("render.output_dir is required")
	}
	if strings.TrimSpace(c.Server.OutputDir) == "" {
		return fmt.Errorf("server.output_dir is required")
	}
	if _, err := render.ParseFormat(c.Render.Format); err != nil {
		return fmt.Errorf("render.format: %w", err)
	}
	if c.Render.DPI < 0 {
		return fmt.Errorf("render.dpi must be positive, got %d", c.Render.DPI)
	}
	if c.Render.Scale < 0 {
		return fmt.Errorf("render.scale must be positive, got %g", c.Render.Scale)
	}
	if c.Cache.TTL.Duration < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	return nil
}

// RendererOptions converts the render section into renderer options.
func (c *Config) RendererOptions() []render.Option {
	return []render.Option{
		render.WithDPI(c.Render.DPI),
		render.WithScale(c.Render.Scale),
		render.WithFont(c.Render.Font),
	}
}

// applyEnv overrides fields from C4RENDER_* variables.
func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}
	str("OUTPUT_DIR", &c.Render.OutputDir)
	str("FORMAT", &c.Render.Format)
	str("FONT", &c.Render.Font)
	str("CACHE_DIR", &c.Cache.Dir)
	str("REDIS_URL", &c.Cache.RedisURL)
	str("CACHE_NAMESPACE", &c.Cache.Namespace)
	str("ADDR", &c.Server.Addr)
	str("SERVER_OUTPUT_DIR", &c.Server.OutputDir)

	if v := getenv(EnvPrefix + "DPI"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sDPI: %w", EnvPrefix, err)
		}
		c.Render.DPI = n
	}
	if v := getenv(EnvPrefix + "SCALE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sSCALE: %w", EnvPrefix, err)
		}
		c.Render.Scale = f
	}
	if v := getenv(EnvPrefix + "CACHE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sCACHE: %w", EnvPrefix, err)
		}
		c.Cache.Enabled = b
	}
	if v := getenv(EnvPrefix + "CACHE_TTL"); v != "" {
		if err := c.Cache.TTL.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sCACHE_TTL: %w", EnvPrefix, err)
		}
	}
	if v := getenv(EnvPrefix + "MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sMAX_BODY_BYTES: %w", EnvPrefix, err)
		}
		c.Server.MaxBodyBytes = n
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/c4render/config.toml, falling back to
// ~/.config. It returns "" when no home directory is known.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName, "config.toml")
}

// defaultCacheDir returns $XDG_CACHE_HOME/c4render, falling back to ~/.cache.
func defaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(home, ".cache", AppName)
}
