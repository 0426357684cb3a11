package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	configFileName = "config.json"
	appDirName     = "rbook"

	DriverJSON   = "json"
	DriverSQLite = "sqlite"

	BackendLine   = "line"
	BackendScreen = "screen"

	DefaultLogLevel = "warn"
	FallbackWidth   = 80
)

// Config holds the application configuration
type Config struct {
	CatalogPath   string `json:"catalog_path,omitempty"`
	CatalogDriver string `json:"catalog_driver,omitempty"`
	LogPath       string `json:"log_path,omitempty"`
	LogLevel      string `json:"log_level,omitempty"`
	TermWidth     int    `json:"term_width,omitempty"`
	Backend       string `json:"backend,omitempty"`

	// Path to config file (not persisted)
	path string
}

// Default returns the configuration used when no file exists.
func Default() (*Config, error) {
	dataDir, err := stateDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		CatalogPath:   filepath.Join(dataDir, "catalog.json"),
		CatalogDriver: DriverJSON,
		LogPath:       filepath.Join(dataDir, "rbook.log"),
		LogLevel:      DefaultLogLevel,
		Backend:       BackendLine,
	}, nil
}

// Load reads the config file, applies environment overrides and validates
// the result. A missing file yields the defaults.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath, os.Getenv)
}

// LoadFile is Load with an explicit file and environment lookup.
func LoadFile(configPath string, getenv func(string) string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	cfg.path = configPath
	defaultCatalog := cfg.CatalogPath

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
		cfg.path = configPath
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	cfg.normalize()
	if cfg.CatalogDriver == DriverSQLite && filepath.Ext(cfg.CatalogPath) == ".json" && cfg.CatalogPath == defaultCatalog {
		cfg.CatalogPath = strings.TrimSuffix(defaultCatalog, ".json") + ".db"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save persists the configuration to disk
func (c *Config) Save() error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.path, data, 0o600)
}

// Validate rejects unknown drivers and backends, bad levels and negative widths.
func (c *Config) Validate() error {
	switch c.CatalogDriver {
	case DriverJSON, DriverSQLite:
	default:
		return fmt.Errorf("unknown catalog driver %q (want %s or %s)", c.CatalogDriver, DriverJSON, DriverSQLite)
	}
	switch c.Backend {
	case BackendLine, BackendScreen:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendLine, BackendScreen)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.TermWidth < 0 {
		return fmt.Errorf("term_width must not be negative, got %d", c.TermWidth)
	}
	if c.CatalogPath == "" {
		return errors.New("catalog_path must not be empty")
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("RBOOK_CATALOG"); v != "" {
		c.CatalogPath = v
	}
	if v := getenv("RBOOK_CATALOG_DRIVER"); v != "" {
		c.CatalogDriver = v
	}
	if v := getenv("RBOOK_LOG"); v != "" {
		c.LogPath = v
	}
	if v := getenv("RBOOK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("RBOOK_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := getenv("RBOOK_WIDTH"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RBOOK_WIDTH: %w", err)
		}
		c.TermWidth = width
	}
	return nil
}

func (c *Config) normalize() {
	c.CatalogDriver = strings.ToLower(strings.TrimSpace(c.CatalogDriver))
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.CatalogPath = expandHome(c.CatalogPath)
	c.LogPath = expandHome(c.LogPath)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}

	return filepath.Join(configDir, appDirName, configFileName), nil
}

// stateDir follows XDG_STATE_HOME, falling back to ~/.local/state.
func stateDir() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", appDirName), nil
}
