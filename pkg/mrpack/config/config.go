package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// RegistryConfig configures the Modrinth registry client.
type RegistryConfig struct {
	URL       string `mapstructure:"url"`
	Timeout   string `mapstructure:"timeout"`
	UserAgent string `mapstructure:"user_agent"`
}

// CacheConfig configures the registry response cache.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"` // Empty means use DefaultCachePath
	TTL     string `mapstructure:"ttl"`
}

// OutputConfig configures result rendering.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// CheckConfig configures the compatibility check.
type CheckConfig struct {
	// Versions are game versions checked in addition to the pack's
	// declared one, merged with any --version flags.
	Versions []string `mapstructure:"versions"`
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSize    string `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Daily      bool   `mapstructure:"daily"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Rotation   RotationConfig    `mapstructure:"rotation"`
	Components map[string]string `mapstructure:"components"`
}

// Config represents the application configuration.
type Config struct {
	Registry RegistryConfig `mapstructure:"registry"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Output   OutputConfig   `mapstructure:"output"`
	Check    CheckConfig    `mapstructure:"check"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/mrpack/config.yaml
//   - $HOME/.config/mrpack/config.yaml
//
// Environment variables are prefixed with MRPACK_ (e.g., MRPACK_REGISTRY_URL).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "mrpack"))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "mrpack"))

	v.SetEnvPrefix("MRPACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// SetDefaults registers every config default on the given viper
// instance. Load and the CLI's root command share it so flag-driven
// and file-driven runs agree.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("registry.url", DefaultRegistryURL)
	v.SetDefault("registry.timeout", DefaultRegistryTimeout.String())
	v.SetDefault("registry.user_agent", DefaultUserAgent)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.dir", "") // Empty means use DefaultCachePath
	v.SetDefault("cache.ttl", DefaultCacheTTL.String())

	v.SetDefault("output.format", DefaultOutputFormat)

	v.SetDefault("check.versions", []string{})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "") // Empty means use DefaultLogPath
	v.SetDefault("logging.rotation.max_size", "10MB")
	v.SetDefault("logging.rotation.max_age", 30)
	v.SetDefault("logging.rotation.max_backups", 5)
	v.SetDefault("logging.rotation.daily", true)
	v.SetDefault("logging.components", map[string]string{
		"cli":      "info",
		"modrinth": "info",
		"cache":    "info",
		"watch":    "info",
	})
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "mrpack"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "mrpack"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// WriteDefault writes a default config file if none exists.
// Returns nil if a config file already exists.
func WriteDefault() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	configDir, err := ConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# mrpack configuration

# Modrinth registry settings
registry:
  url: %s
  timeout: %s
  user_agent: "%s"

# Registry response cache
cache:
  enabled: true
  # Cache directory (empty means use default: $XDG_CACHE_HOME/mrpack/registry)
  dir: ""
  ttl: %s

# Output settings
output:
  # Renderer: table, csv, json, yaml, pretty, xlsx
  format: %s

# Compatibility check settings
check:
  # Game versions checked in addition to the pack's declared one
  versions: []

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: info
  # Log file path (empty means use default: $XDG_STATE_HOME/mrpack/mrpack.log)
  path: ""
  # Log rotation settings
  rotation:
    max_size: 10MB
    max_age: 30       # days
    max_backups: 5
    daily: true
  # Per-component log levels
  components:
    cli: info
    modrinth: info
    cache: info
    watch: info
`, DefaultRegistryURL, DefaultRegistryTimeout, DefaultUserAgent, DefaultCacheTTL, DefaultOutputFormat)

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}

	return nil
}

// ExpandPath expands ~ in a path to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}

// StateDir returns $XDG_STATE_HOME/mrpack/ for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "mrpack")
}

// CacheDir returns $XDG_CACHE_HOME/mrpack/ for the registry cache.
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, "mrpack")
}

// DefaultCachePath returns the default registry cache directory.
func DefaultCachePath() string {
	return filepath.Join(CacheDir(), "registry")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(StateDir(), "mrpack.log")
}

// EnsureStateDir creates the state directory if it doesn't exist.
func EnsureStateDir() error {
	if err := os.MkdirAll(StateDir(), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	return nil
}

// EnsureCacheDir creates the cache directory if it doesn't exist.
func EnsureCacheDir() error {
	if err := os.MkdirAll(CacheDir(), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	return nil
}
