package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abelbrown/catalog/internal/catalog"
	"github.com/abelbrown/catalog/internal/fetch"
)

// MinCardWidth is the narrowest card the renderer draws.
const MinCardWidth = 20

// Config is the application configuration.
type Config struct {
	// Source endpoint and HTTP behaviour
	Endpoint  string        `yaml:"endpoint"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`

	// UI Preferences
	UI UIConfig `yaml:"ui"`

	Logging LoggingConfig `yaml:"logging"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	Locale      string          `yaml:"locale"`       // collation locale for name sorting
	DefaultSort catalog.SortKey `yaml:"default_sort"` // name, price or rating
	CardWidth   int             `yaml:"card_width"`
	Thumbnails  bool            `yaml:"thumbnails"` // download and draw item images
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Endpoint:  fetch.DefaultEndpoint,
		Timeout:   30 * time.Second,
		UserAgent: "catalog/0.1",
		UI: UIConfig{
			Locale:      "en",
			DefaultSort: catalog.SortByName,
			CardWidth:   34,
			Thumbnails:  false,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   filepath.Join(dataDir(), "logs"),
		},
	}
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".catalog"
	}
	return filepath.Join(home, ".catalog")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(dataDir(), "config.yaml")
}

// Load reads config from path (ConfigPath when empty), then applies a .env
// file from the working directory and CATALOG_* environment overrides.
// A missing config file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("CATALOG_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("CATALOG_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CATALOG_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("CATALOG_LOCALE"); v != "" {
		c.UI.Locale = v
	}
	if v := os.Getenv("CATALOG_SORT"); v != "" {
		key, err := catalog.ParseSortKey(v)
		if err != nil {
			return fmt.Errorf("CATALOG_SORT: %w", err)
		}
		c.UI.DefaultSort = key
	}
	if v := os.Getenv("CATALOG_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// normalize widens a card narrower than MinCardWidth. Only Load calls it.
func (c *Config) normalize() {
	if c.UI.CardWidth < MinCardWidth {
		c.UI.CardWidth = MinCardWidth
	}
}

// Validate rejects configurations the app cannot run with. It does not
// modify c.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("config: endpoint is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	if _, err := catalog.NewCollator(c.UI.Locale); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.UI.CardWidth < MinCardWidth {
		return fmt.Errorf("config: card_width must be at least %d, got %d", MinCardWidth, c.UI.CardWidth)
	}
	return nil
}

// Save writes config to disk
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
