package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jamesainslie/mrpack/pkg/mrpack/cache"
	"github.com/jamesainslie/mrpack/pkg/mrpack/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the registry response cache",
	Long: `Commands for managing the registry response cache.

The cache stores Modrinth version and project records so repeat runs
against the same modpack skip the network. Records expire after the
configured TTL (cache.ttl, default 24h). Cache data is stored in the
XDG cache directory (typically ~/.cache/mrpack/registry).`,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all cached registry data",
	Long:  `Removes all cached registry records. The next run will query the registry for every file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cachePath()

		// Check if cache exists
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Println("Cache is already empty.")
			return nil
		}

		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}

		fmt.Println("Cache cleared.")
		return nil
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Long:  `Displays information about the cache including its location, record counts, and size.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cachePath()

		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			fmt.Println("Cache: empty (no cache database)")
			fmt.Printf("Cache location: %s\n", path)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to stat cache: %w", err)
		}

		// Record counts come from the store itself; expired records
		// are not counted.
		store, err := cache.OpenStore(path)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		stats, statsErr := store.Stats()
		closeErr := store.Close()
		if statsErr != nil {
			return fmt.Errorf("failed to read cache stats: %w", statsErr)
		}
		if closeErr != nil {
			return fmt.Errorf("failed to close cache: %w", closeErr)
		}

		// Get directory size
		var size int64
		err = filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
			if err == nil && !info.IsDir() {
				size += info.Size()
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to calculate cache size: %w", err)
		}

		fmt.Printf("Cache location: %s\n", path)
		fmt.Printf("Version records: %d\n", stats.Versions)
		fmt.Printf("Project records: %d\n", stats.Projects)
		fmt.Printf("Cache size: %s\n", humanize.IBytes(uint64(size)))
		fmt.Printf("Last modified: %s\n", info.ModTime().Format("2006-01-02 15:04:05"))

		return nil
	},
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show cache location",
	Long:  `Prints the path to the cache directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(cachePath())
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cachePathCmd)
	rootCmd.AddCommand(cacheCmd)
}

// cachePath returns the configured cache directory, falling back to
// the XDG default.
func cachePath() string {
	if cfg != nil && cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	return config.DefaultCachePath()
}
