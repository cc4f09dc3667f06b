package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/clipvault/clipvault/internal/types"
)

// Paths holds the platform-specific locations the engine writes to.
type Paths struct {
	ConfigDir  string // directory holding config.yaml
	ConfigFile string // path to config.yaml
	DataDir    string // application data root
	DBFile     string // bbolt item index
	BlobDir    string // content-addressed image payloads
	LogDir     string // log files
}

// Config is the full application configuration, persisted as YAML.
type Config struct {
	Enabled           bool      `yaml:"enabled"`
	ClickMode         string    `yaml:"click_mode"`
	MaxItems          int       `yaml:"max_items"`           // 0 = unlimited
	RetentionDays     int       `yaml:"retention_days"`      // 0 = forever
	MaxCapacityBytes  int64     `yaml:"max_capacity_bytes"`  // 0 = unlimited
	IgnoredApps       []string  `yaml:"ignored_apps"`
	PollingIntervalMS int64     `yaml:"polling_interval_ms"`
	FlushIntervalMS   int64     `yaml:"flush_interval_ms"`
	Log               LogConfig `yaml:"log"`

	paths *Paths
}

// LogConfig holds logging-related configuration.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// GetPaths returns platform-specific paths, creating the directories.
// CLIPVAULT_CONFIG_DIR and CLIPVAULT_DATA_DIR override the defaults.
func GetPaths() (*Paths, error) {
	configDir := os.Getenv("CLIPVAULT_CONFIG_DIR")
	if configDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		switch runtime.GOOS {
		case "darwin":
			configDir = filepath.Join(base, "dev.clipvault")
		default:
			configDir = filepath.Join(base, "clipvault")
		}
	}

	dataDir := os.Getenv("CLIPVAULT_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		switch runtime.GOOS {
		case "darwin":
			dataDir = filepath.Join(home, "Library", "Application Support", "Clipvault")
		default:
			if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
				dataDir = filepath.Join(xdg, "clipvault")
			} else {
				dataDir = filepath.Join(home, ".local", "share", "clipvault")
			}
		}
	}

	paths := &Paths{
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, "config.yaml"),
		DataDir:    dataDir,
		DBFile:     filepath.Join(dataDir, "history.db"),
		BlobDir:    filepath.Join(dataDir, "blobs"),
		LogDir:     filepath.Join(dataDir, "logs"),
	}

	for _, dir := range []string{paths.ConfigDir, paths.DataDir, paths.BlobDir, paths.LogDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	return paths, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Enabled:           true,
		ClickMode:         string(types.ClickModeDouble),
		MaxItems:          200,
		RetentionDays:     30,
		MaxCapacityBytes:  100 * 1024 * 1024, // 100MB
		IgnoredApps:       nil,
		PollingIntervalMS: 300,
		FlushIntervalMS:   2000,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration from configPath, creating a default file if
// none exists. An empty configPath uses the platform default location.
func Load(configPath string) (*Config, error) {
	var paths *Paths
	if configPath == "" {
		var err error
		paths, err = GetPaths()
		if err != nil {
			return nil, err
		}
		configPath = paths.ConfigFile
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.paths = paths
			if err := cfg.Save(configPath); err != nil {
				return nil, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.paths = paths

	overrideFromEnv(cfg)

	return cfg, nil
}

// Save writes the configuration to configPath as YAML.
func (c *Config) Save(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Paths returns the resolved platform paths, computing them on first use.
func (c *Config) Paths() (*Paths, error) {
	if c.paths != nil {
		return c.paths, nil
	}
	paths, err := GetPaths()
	if err != nil {
		return nil, err
	}
	c.paths = paths
	return paths, nil
}

// Settings returns the read-only snapshot the engine consumes.
func (c *Config) Settings() types.Settings {
	return types.Settings{
		Enabled:          c.Enabled,
		ClickMode:        types.ClickMode(c.ClickMode),
		MaxItems:         c.MaxItems,
		RetentionDays:    c.RetentionDays,
		MaxCapacityBytes: c.MaxCapacityBytes,
		IgnoredApps:      append([]string(nil), c.IgnoredApps...),
	}
}

// overrideFromEnv overrides configuration values from environment variables.
func overrideFromEnv(cfg *Config) {
	if val := os.Getenv("CLIPVAULT_ENABLED"); val != "" {
		cfg.Enabled = val == "true"
	}
	if val := os.Getenv("CLIPVAULT_MAX_ITEMS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.MaxItems = n
		}
	}
	if val := os.Getenv("CLIPVAULT_RETENTION_DAYS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.RetentionDays = n
		}
	}
	if val := os.Getenv("CLIPVAULT_MAX_CAPACITY"); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.MaxCapacityBytes = n
		}
	}
	if val := os.Getenv("CLIPVAULT_IGNORED_APPS"); val != "" {
		cfg.IgnoredApps = strings.Split(val, ",")
	}
	if val := os.Getenv("CLIPVAULT_POLLING_INTERVAL"); val != "" {
		if ms, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.PollingIntervalMS = ms
		}
	}
	if val := os.Getenv("CLIPVAULT_LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}
}
