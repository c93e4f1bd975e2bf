package main

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/project-cortex/internal/scanner"
	"github.com/mvp-joe/project-cortex/internal/sync"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Bring the vector store into the state implied by the repository",
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	repoState, err := scanner.WalkRepo(repoRoot, scanner.DefaultOptions())
	if err != nil {
		return fmt.Errorf("scan repo: %w", err)
	}

	var bar *progressbar.ProgressBar
	if !quietFlag {
		bar = progressbar.NewOptions(len(repoState),
			progressbar.OptionSetDescription("Syncing files"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("files/s"),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
		)
	}

	synchronizer := sync.New(sess.store, sess.embedder, repoRoot)
	chunks, err := synchronizer.Sync(ctx, repoState)
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if bar != nil {
		bar.Add(len(repoState))
	}

	fmt.Printf("synced %d files, %d chunks touched\n", len(repoState), len(chunks))
	return nil
}
