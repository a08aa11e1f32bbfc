package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jamesainslie/mrpack/pkg/mrpack/config"
	"github.com/jamesainslie/mrpack/pkg/mrpack/gamever"
	"github.com/jamesainslie/mrpack/pkg/mrpack/logging"
	"github.com/jamesainslie/mrpack/pkg/mrpack/modpack"
	"github.com/jamesainslie/mrpack/pkg/mrpack/report"
)

// settleDelay is how long the watcher waits after the last filesystem
// event before re-resolving, so editors that write in bursts trigger
// one render.
const settleDelay = 250 * time.Millisecond

var (
	listVersions    []string
	listAllVersions bool
	listWatch       bool
)

var listCmd = &cobra.Command{
	Use:   "list <modpack.mrpack>",
	Short: "Report the mods of a modpack",
	Long: `Report every mod in a modpack archive with its installed version,
environment requirements, license, and game version compatibility.

The pack's declared game version is always checked. Additional versions
can be supplied with --version (repeatable) or taken from the
check.versions config setting; --all-versions checks every version any
mod in the pack supports.

Files shipped in the archive's override directories are listed too:
jar files the registry does not know about are flagged for manual
review, since they usually come from CurseForge.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringArrayVar(&listVersions, "version", nil, "game version to check, e.g. 1.20.1 (repeatable)")
	listCmd.Flags().BoolVar(&listAllVersions, "all-versions", false, "check every game version any mod in the pack supports")
	listCmd.Flags().BoolVar(&listWatch, "watch", false, "re-render whenever the archive changes")
	rootCmd.AddCommand(listCmd)
}

// runList is the list command handler.
func runList(_ *cobra.Command, args []string) error {
	path, err := resolveArchivePath(args[0])
	if err != nil {
		return err
	}

	c, err := loadConfig()
	if err != nil {
		return err
	}

	// Versions from config and flags are parsed strictly; a typo here
	// should fail loudly rather than silently check nothing.
	versions, err := parseGameVersions(append(append([]string{}, c.Check.Versions...), listVersions...))
	if err != nil {
		return err
	}

	reg, closer, err := newRegistry(c)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		printInfo("\nInterrupted, stopping...")
		cancel()
	}()

	if err := listOnce(ctx, reg, path, versions); err != nil {
		return err
	}

	if listWatch {
		return watchArchive(ctx, reg, path, versions)
	}
	return nil
}

// listOnce resolves the archive and renders one report.
func listOnce(ctx context.Context, reg modpack.Registry, path string, versions []gamever.Version) error {
	packs, err := modpack.Load(ctx, reg, path)
	if err != nil {
		return err
	}
	pack := packs[0]

	checked := append([]gamever.Version(nil), versions...)
	if listAllVersions {
		checked = append(checked, supportedVersions(pack)...)
	}

	return render(report.Build(pack, checked))
}

// watchArchive re-resolves and re-renders the archive whenever it
// changes on disk. It blocks until the context is cancelled.
//
// The archive's directory is watched rather than the file itself:
// editors and pack tools typically replace the file by rename, which
// would silently drop a watch on the file.
func watchArchive(ctx context.Context, reg modpack.Registry, path string, versions []gamever.Version) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	log := logging.Get("watch")
	printInfo("\nWatching %s for changes (interrupt to stop)", path)

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}
	armed := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("archive changed", "path", event.Name, "op", event.Op.String())
			if armed && !debounce.Stop() {
				<-debounce.C
			}
			debounce.Reset(settleDelay)
			armed = true

		case <-debounce.C:
			armed = false
			printInfo("\n%s changed, re-resolving...", filepath.Base(path))
			if err := listOnce(ctx, reg, path, versions); err != nil {
				// Keep watching; the next write may fix the archive.
				printError("%v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", "error", err)
		}
	}
}

// resolveArchivePath expands and validates a user-supplied archive path.
func resolveArchivePath(path string) (string, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand path: %w", err)
	}

	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file does not exist: %s", absPath)
		}
		return "", fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a modpack file: %s", absPath)
	}

	return absPath, nil
}

// parseGameVersions parses version strings strictly, rejecting the
// whole invocation on the first malformed one.
func parseGameVersions(raw []string) ([]gamever.Version, error) {
	versions := make([]gamever.Version, 0, len(raw))
	for _, s := range raw {
		v, err := gamever.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid game version %q: %w", s, err)
		}
		versions = append(versions, v)
	}
	return versions, nil
}

// supportedVersions returns every game version at least one mod in the
// pack supports, ascending.
func supportedVersions(pack *modpack.Modpack) []gamever.Version {
	union := gamever.NewSet()
	for _, m := range pack.Mods {
		union = union.Union(m.GameVersions)
	}
	return union.Sorted()
}
