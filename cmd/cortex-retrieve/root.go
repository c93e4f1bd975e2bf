// Command cortex-retrieve wires the chunker, differential synchronizer,
// retrieval pipeline, and cleanup manager into a cobra CLI: sync indexes a
// repo into the vector store, query runs the retrieval pipeline against it,
// and cleanup runs one retention pass by hand. Grounded on the teacher's
// internal/cli root command shape (cobra.Command tree plus a package-level
// Execute()).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	repoRoot  string
	quietFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "cortex-retrieve",
	Short: "Code-aware retrieval engine over a Qdrant-backed chunk store",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&repoRoot, "repo", ".", "repository root")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "disable progress output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
