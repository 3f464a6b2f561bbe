// Package config loads figma-inspector settings. Values are layered: built-in
// defaults, then an optional YAML file, then a .env file and the process
// environment. Command line flags override the result in cmd/figma-inspector.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when Load is called without an explicit path and the file exists.
const DefaultFile = "figma-inspector.yaml"

// Config holds every setting.
type Config struct {
	Figma   FigmaConfig   `yaml:"figma"`
	Host    HostConfig    `yaml:"host"`
	Surface SurfaceConfig `yaml:"surface"`
}

// FigmaConfig configures the REST API scene provider.
type FigmaConfig struct {
	Token     string `yaml:"token"`
	FileURL   string `yaml:"file_url"`
	CacheSize int    `yaml:"cache_size"`

	// APIURL overrides the REST API root, e.g. for a caching proxy.
	APIURL string `yaml:"api_url"`
}

// HostConfig configures the extraction host.
type HostConfig struct {
	Addr      string   `yaml:"addr"`
	SceneFile string   `yaml:"scene_file"`
	MaxDepth  int      `yaml:"max_depth"`
	Selection []string `yaml:"selection"`
	// AllowedOrigins lists browser origins allowed to open the websocket.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// SurfaceConfig configures the display surface client.
type SurfaceConfig struct {
	URL           string `yaml:"url"`
	ClipboardFile string `yaml:"clipboard_file"`
	Tab           string `yaml:"tab"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Figma: FigmaConfig{
			CacheSize: 256,
		},
		Host: HostConfig{
			Addr: "localhost:8790",
		},
		Surface: SurfaceConfig{
			URL:           "ws://localhost:8790/ws",
			ClipboardFile: "figma-selection.json",
			Tab:           "pretty",
		},
	}
}

// Load builds the configuration. When path is empty, DefaultFile is used if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	if v := env("FIGMA_TOKEN"); v != "" {
		c.Figma.Token = v
	}
	if v := env("FIGMA_FILE_URL"); v != "" {
		c.Figma.FileURL = v
	}
	if v := env("FIGMA_API_URL"); v != "" {
		c.Figma.APIURL = v
	}
	if v := env("INSPECTOR_ADDR"); v != "" {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		c.Host.Addr = v
	}
	if v := env("INSPECTOR_ALLOWED_ORIGINS"); v != "" {
		c.Host.AllowedOrigins = splitList(v)
	}
	if v := env("INSPECTOR_SCENE_FILE"); v != "" {
		c.Host.SceneFile = v
	}
	if v := env("INSPECTOR_SURFACE_URL"); v != "" {
		c.Surface.URL = v
	}
	if v := env("INSPECTOR_CLIPBOARD_FILE"); v != "" {
		c.Surface.ClipboardFile = v
	}

	var err error
	if c.Host.MaxDepth, err = envInt("INSPECTOR_MAX_DEPTH", c.Host.MaxDepth); err != nil {
		return err
	}
	if c.Figma.CacheSize, err = envInt("INSPECTOR_CACHE_SIZE", c.Figma.CacheSize); err != nil {
		return err
	}
	return nil
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	if c.Host.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.Host.MaxDepth)
	}
	if c.Figma.CacheSize < 0 {
		return fmt.Errorf("cache size must not be negative, got %d", c.Figma.CacheSize)
	}
	if c.Host.SceneFile == "" && c.Figma.FileURL == "" {
		return errors.New("either a scene file or a Figma file URL is required")
	}
	if c.Host.SceneFile == "" && c.Figma.Token == "" {
		return errors.New("a Figma access token is required to read a Figma file URL")
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envInt(key string, fallback int) (int, error) {
	raw := env(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return n, nil
}
