package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nootencorp/worklog/internal/osutil"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"

	// DriverSQLite is the pure Go SQLite driver (modernc.org/sqlite)
	DriverSQLite = "sqlite"
	// DriverSQLite3 is the cgo SQLite driver (mattn/go-sqlite3)
	DriverSQLite3 = "sqlite3"

	// LogLevelOff disables logging entirely
	LogLevelOff = "off"

	// EnvDatabase overrides database_path
	EnvDatabase = "WORKLOG_DATABASE"
	// EnvLogLevel overrides log_level
	EnvLogLevel = "WORKLOG_LOG_LEVEL"
)

var validLogLevels = []string{"debug", "info", "warn", "error", LogLevelOff}

// Config represents the application configuration
type Config struct {
	// DatabasePath is the SQLite file holding the work log. Empty means the default location.
	DatabasePath string `toml:"database_path"`
	// Driver selects the database/sql driver: "sqlite" or "sqlite3"
	Driver string `toml:"driver"`
	// LogLevel is one of debug, info, warn, error or off
	LogLevel string `toml:"log_level"`
	// LogFile is where logs are written. Empty means the default location.
	LogFile string `toml:"log_file"`
	// Theme is the bubbletint theme id used by the tui
	Theme string `toml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DatabasePath: "",
		Driver:       DriverSQLite,
		LogLevel:     "warn",
		LogFile:      "",
		Theme:        "dracula",
	}
}

// GetConfigPath returns the path to the config file.
// Creates the application directory if it doesn't exist.
func GetConfigPath() (string, error) {
	return osutil.AppFile(ConfigFile)
}

// Load reads and validates the config file at path.
// Fields missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault loads the config file if it exists, or returns defaults when it doesn't.
// Any other error (unreadable or invalid file) is returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := DefaultConfig()
			cfg.applyEnvOverrides()
			cfg.Normalize()
			if err := cfg.Validate(); err != nil {
				return Config{}, err
			}
			return cfg, nil
		}
		return Config{}, err
	}
	return Load(path)
}

// applyEnvOverrides lets the environment take precedence over the file
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvDatabase); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Normalize trims whitespace and lowercases enumerated values in place.
func (c *Config) Normalize() {
	c.DatabasePath = strings.TrimSpace(c.DatabasePath)
	c.Driver = strings.ToLower(strings.TrimSpace(c.Driver))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFile = strings.TrimSpace(c.LogFile)
	c.Theme = strings.TrimSpace(c.Theme)

	if c.Driver == "" {
		c.Driver = DriverSQLite
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultConfig().LogLevel
	}
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverSQLite, DriverSQLite3:
	default:
		return fmt.Errorf("invalid driver %q: must be %q or %q", c.Driver, DriverSQLite, DriverSQLite3)
	}

	for _, l := range validLogLevels {
		if c.LogLevel == l {
			return nil
		}
	}
	return fmt.Errorf("invalid log_level %q: must be one of %s", c.LogLevel, strings.Join(validLogLevels, ", "))
}

// GenerateSampleConfig returns a commented sample config file.
func GenerateSampleConfig() string {
	return `# worklog configuration file

# SQLite file holding all entries. Leave empty for the default location
# in the user config directory (worklog/work_log.db).
# database_path = "/home/me/work_log.db"

# Database driver: "sqlite" (pure Go, default) or "sqlite3" (requires cgo)
# driver = "sqlite"

# Log level: "debug", "info", "warn", "error" or "off"
# log_level = "warn"

# Log file. Leave empty for worklog/worklog.log in the user config directory.
# log_file = ""

# Color theme for 'worklog tui' (any bubbletint id, e.g. "dracula", "nord")
# theme = "dracula"
`
}

// Render returns the effective configuration in TOML form.
func (c Config) Render() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", err
	}
	return b.String(), nil
}
