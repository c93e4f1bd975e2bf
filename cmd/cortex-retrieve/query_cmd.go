package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/project-cortex/internal/retrieval"
	"github.com/mvp-joe/project-cortex/internal/scanner"
)

var (
	maxChunks     int
	focusFiles    []string
	focusDirs     []string
	rerankerURL   string
	rerankerToken string
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Run the retrieval pipeline against the synced repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().IntVar(&maxChunks, "max-chunks", 20, "maximum chunks to return")
	queryCmd.Flags().StringSliceVar(&focusFiles, "focus-file", nil, "restrict candidates to these files")
	queryCmd.Flags().StringSliceVar(&focusDirs, "focus-dir", nil, "restrict candidates to these directories")
	queryCmd.Flags().StringVar(&rerankerURL, "reranker-url", "", "reranker base URL, enables reranking when set")
	queryCmd.Flags().StringVar(&rerankerToken, "reranker-token", "", "bearer token for the reranker")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
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

	var reranker *retrieval.RerankerClient
	if rerankerURL != "" {
		reranker = retrieval.NewRerankerClient(rerankerURL, rerankerToken)
	}

	pipeline := retrieval.New(sess.store, sess.embedder, sess.usage, reranker)
	result, err := pipeline.Retrieve(ctx, repoRoot, retrieval.Request{
		Query:             args[0],
		FocusFiles:        focusFiles,
		FocusDirectories:  focusDirs,
		MaxChunksToReturn: maxChunks,
		RepoFiles:         repoState,
	})
	if err != nil {
		return fmt.Errorf("retrieve: %w", err)
	}
	sess.exclusions.Add(result.TouchedChunkHashes)

	for i, c := range result.Chunks {
		fmt.Printf("%d. %s:%d-%d (score %.4f)\n", i+1, c.SourceDetails.FilePath, c.SourceDetails.StartLine, c.SourceDetails.EndLine, c.SearchScore)
	}
	return nil
}
