package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/mrpack/pkg/mrpack/cache"
	"github.com/jamesainslie/mrpack/pkg/mrpack/config"
	"github.com/jamesainslie/mrpack/pkg/mrpack/logging"
	"github.com/jamesainslie/mrpack/pkg/mrpack/modpack"
	"github.com/jamesainslie/mrpack/pkg/mrpack/modrinth"
)

// cfg holds the configuration loaded by initializeLogging, merged from
// defaults, the config file, environment variables, and bound flags.
var cfg *config.Config

// loadConfig unmarshals the global viper state into a typed Config.
// The result is cached for the rest of the run.
func loadConfig() (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}

	var c config.Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg = &c
	return cfg, nil
}

// initializeLogging is the PersistentPreRunE hook: it ensures the
// application directories exist and brings up the logging system
// before any command runs.
func initializeLogging(_ *cobra.Command, _ []string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := config.EnsureStateDir(); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := config.EnsureCacheDir(); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	c, err := loadConfig()
	if err != nil {
		return err
	}

	level := c.Logging.Level
	if level == "" {
		level = "info"
	}

	logPath := c.Logging.Path
	if logPath == "" {
		logPath = config.DefaultLogPath()
	}

	// Verbose mode mirrors log output to stderr; otherwise the console
	// stays clean for rendered reports.
	consoleLevel := ""
	if getVerbose() {
		consoleLevel = "debug"
	}

	logCfg := logging.Config{
		Level:        level,
		Path:         logPath,
		Rotation:     parseRotationConfig(c.Logging.Rotation),
		Components:   c.Logging.Components,
		ConsoleLevel: consoleLevel,
	}

	if err := logging.Init(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	logging.Get("cli").Debug("logging initialized", "level", level, "path", logPath)

	return nil
}

// parseRotationConfig converts the string-based rotation settings into
// the logging package's form. An empty or unparseable max_size falls
// back to the default.
func parseRotationConfig(rc config.RotationConfig) logging.RotationConfig {
	maxSize := logging.DefaultRotationConfig().MaxSize
	if rc.MaxSize != "" {
		if parsed, err := humanize.ParseBytes(rc.MaxSize); err == nil {
			maxSize = int64(parsed)
		}
	}

	return logging.RotationConfig{
		MaxSize:    maxSize,
		MaxAge:     rc.MaxAge,
		MaxBackups: rc.MaxBackups,
		Daily:      rc.Daily,
	}
}

// newRegistry builds the registry client, wrapped in the response
// cache unless caching is disabled. The returned closer is non-nil
// only when a cache store is open; the caller closes it after use.
func newRegistry(c *config.Config) (modpack.Registry, io.Closer, error) {
	timeout, err := time.ParseDuration(c.Registry.Timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid registry.timeout %q: %w", c.Registry.Timeout, err)
	}

	client := modrinth.New(
		modrinth.WithBaseURL(c.Registry.URL),
		modrinth.WithUserAgent(c.Registry.UserAgent),
		modrinth.WithHTTPClient(&http.Client{Timeout: timeout}),
	)

	if viper.GetBool("no_cache") || !c.Cache.Enabled {
		printVerbose("Response cache disabled, querying registry directly")
		return client, nil, nil
	}

	dir := c.Cache.Dir
	if dir == "" {
		dir = config.DefaultCachePath()
	}

	store, err := cache.OpenStore(dir)
	if err != nil {
		// A broken cache should not block the lookup.
		printVerbose("Cache unavailable at %s, querying registry directly: %v", dir, err)
		return client, nil, nil
	}

	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || ttl < 0 {
		ttl = config.DefaultCacheTTL
	}

	return cache.NewRegistry(store, client, ttl), store, nil
}
