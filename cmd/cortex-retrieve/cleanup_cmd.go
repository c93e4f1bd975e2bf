package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Run one retention pass by hand, deleting chunks unused past the retention window",
	RunE:  runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	chunks, chunkFiles, err := sess.cleanupMgr.Run(ctx, sess.exclusions.Snapshot())
	if err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}

	fmt.Printf("removed %d chunk(s), %d chunk-file(s)\n", chunks, chunkFiles)
	return nil
}
