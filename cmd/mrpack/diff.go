package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/mrpack/pkg/mrpack/diff"
	"github.com/jamesainslie/mrpack/pkg/mrpack/modpack"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old.mrpack> <new.mrpack>",
	Short: "Compare two modpack versions",
	Long: `Compare two modpack archives and report what changed between them:
pack metadata, loader dependencies, mod versions, and the files shipped
outside the index.

Both archives are resolved against the registry in one pass, so a mod
present in both costs a single lookup.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

// runDiff is the diff command handler.
func runDiff(_ *cobra.Command, args []string) error {
	oldPath, err := resolveArchivePath(args[0])
	if err != nil {
		return err
	}
	newPath, err := resolveArchivePath(args[1])
	if err != nil {
		return err
	}

	c, err := loadConfig()
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		printInfo("\nInterrupted, stopping...")
		cancel()
	}()

	// One Load resolves both archives: their hashes share a version
	// lookup and their project ids share a project lookup.
	packs, err := modpack.Load(ctx, reg, oldPath, newPath)
	if err != nil {
		return err
	}

	return render(diff.Diff(packs[0], packs[1]))
}
