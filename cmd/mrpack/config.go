package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jamesainslie/mrpack/pkg/mrpack/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage mrpack configuration settings.

Configuration is loaded from:
  1. $XDG_CONFIG_HOME/mrpack/config.yaml (if set)
  2. ~/.config/mrpack/config.yaml

Environment variables can override config file settings using the MRPACK_ prefix:
  MRPACK_REGISTRY_URL=https://staging.modrinth.com/v2
  MRPACK_CACHE_ENABLED=false
  MRPACK_OUTPUT_FORMAT=json`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration settings from all sources.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long: `Open the configuration file in your default editor.

The editor is determined by:
  1. $VISUAL environment variable
  2. $EDITOR environment variable
  3. Falls back to 'vi'

If the config file doesn't exist, a default one will be created first.`,
	RunE: runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	Long:  `Create a default configuration file if one doesn't exist.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path to the configuration file.`,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	// Load configuration
	fileCfg, err := config.Load()
	if err != nil {
		printError("Failed to load configuration: %v", err)
		// Show defaults anyway
		fileCfg = &config.Config{
			Registry: config.RegistryConfig{
				URL:       config.DefaultRegistryURL,
				Timeout:   config.DefaultRegistryTimeout.String(),
				UserAgent: config.DefaultUserAgent,
			},
			Cache: config.CacheConfig{
				Enabled: true,
				TTL:     config.DefaultCacheTTL.String(),
			},
			Output: config.OutputConfig{Format: config.DefaultOutputFormat},
		}
	}

	// Show config file being used
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		fmt.Printf("Config file: %s\n\n", configFile)
	} else {
		fmt.Println("Config file: (using defaults, no file found)")
		fmt.Println()
	}

	cacheDir := fileCfg.Cache.Dir
	if cacheDir == "" {
		cacheDir = config.DefaultCachePath() + " (default)"
	}
	logPath := fileCfg.Logging.Path
	if logPath == "" {
		logPath = config.DefaultLogPath() + " (default)"
	}

	// Display configuration
	fmt.Println("Current Configuration:")
	fmt.Println("----------------------")
	fmt.Printf("registry.url:        %s\n", fileCfg.Registry.URL)
	fmt.Printf("registry.timeout:    %s\n", fileCfg.Registry.Timeout)
	fmt.Printf("registry.user_agent: %s\n", fileCfg.Registry.UserAgent)
	fmt.Printf("cache.enabled:       %t\n", fileCfg.Cache.Enabled)
	fmt.Printf("cache.dir:           %s\n", cacheDir)
	fmt.Printf("cache.ttl:           %s\n", fileCfg.Cache.TTL)
	fmt.Printf("output.format:       %s\n", fileCfg.Output.Format)
	fmt.Printf("check.versions:      %v\n", fileCfg.Check.Versions)
	fmt.Printf("logging.level:       %s\n", fileCfg.Logging.Level)
	fmt.Printf("logging.path:        %s\n", logPath)

	// Show any environment overrides
	fmt.Println("\nEnvironment Overrides:")
	fmt.Println("----------------------")
	envVars := []string{
		"MRPACK_REGISTRY_URL",
		"MRPACK_REGISTRY_TIMEOUT",
		"MRPACK_REGISTRY_USER_AGENT",
		"MRPACK_CACHE_ENABLED",
		"MRPACK_CACHE_DIR",
		"MRPACK_CACHE_TTL",
		"MRPACK_OUTPUT_FORMAT",
		"MRPACK_LOGGING_LEVEL",
		"MRPACK_LOGGING_PATH",
	}

	anyOverrides := false
	for _, name := range envVars {
		if val := os.Getenv(name); val != "" {
			fmt.Printf("%s=%s\n", name, val)
			anyOverrides = true
		}
	}
	if !anyOverrides {
		fmt.Println("(none)")
	}

	return nil
}

// runConfigEdit opens the config file in an editor.
func runConfigEdit(cmd *cobra.Command, args []string) error {
	// Ensure config file exists
	if err := config.WriteDefault(); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	// Get config file path
	configDir, err := config.ConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	configPath := filepath.Join(configDir, "config.yaml")

	// Determine editor
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	printVerbose("Opening %s with %s", configPath, editor)

	// Open editor
	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor command failed: %w", err)
	}

	return nil
}

// runConfigInit creates a default config file.
func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir, err := config.ConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	configPath := filepath.Join(configDir, "config.yaml")

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		printInfo("Config file already exists: %s", configPath)
		printInfo("Use 'mrpack config edit' to modify it.")
		return nil
	}

	// Create default config
	if err := config.WriteDefault(); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	printInfo("Created default config file: %s", configPath)
	return nil
}

// runConfigPath shows the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	configDir, err := config.ConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	configPath := filepath.Join(configDir, "config.yaml")

	fmt.Println(configPath)

	// Show if file exists
	if _, err := os.Stat(configPath); err == nil {
		printVerbose("File exists")
	} else if os.IsNotExist(err) {
		printVerbose("File does not exist (will use defaults)")
	}

	return nil
}
