package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jamesainslie/mrpack/pkg/mrpack/config"
	"github.com/jamesainslie/mrpack/pkg/mrpack/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "mrpack",
		Short: "Inspect and compare Modrinth modpacks",
		Long: `mrpack inspects Modrinth modpack archives (.mrpack files) and reports
what is inside them: every mod with its installed version, environment
requirements, license, and game version compatibility.

Mods are resolved against the Modrinth registry by file hash, and
responses are cached locally so repeat runs stay fast.

Examples:
  mrpack list all-of-fabric.mrpack           # Report the pack's mods
  mrpack list -o json pack.mrpack            # Same report as JSON
  mrpack list --version 1.20.1 pack.mrpack   # Check another game version
  mrpack diff old.mrpack new.mrpack          # What changed between releases
  mrpack cache stats                         # Inspect the response cache
  mrpack config show                         # Show configuration`,
		PersistentPreRunE: initializeLogging,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/mrpack/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (table, csv, json, yaml, pretty, xlsx)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "bypass the response cache, query the registry directly")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("no_cache", rootCmd.PersistentFlags().Lookup("no-cache"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Set config name and type
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		// Add config paths in order of precedence
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "mrpack"))
		}

		homeDir, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "mrpack"))
		}
	}

	// Set environment variable prefix and enable auto env binding
	viper.SetEnvPrefix("MRPACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Set defaults from config package
	config.SetDefaults(viper.GetViper())

	// Read config file (ignore if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if getVerbose() && !getQuiet() {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// render writes the elements to stdout in the configured output
// format. The buffer indirection keeps partial output off the terminal
// when a renderer fails, and xlsx output is binary so the bytes go out
// unmodified.
func render(elements []output.Element) error {
	format := viper.GetString("output.format")

	renderer, err := output.Get(format)
	if err != nil {
		return fmt.Errorf("unknown output format %q: available formats are %v", format, output.Available())
	}

	var buf bytes.Buffer
	if err := renderer.Format(&buf, elements); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	_, err = os.Stdout.Write(buf.Bytes())
	return err
}
