package embedclient

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/project-cortex/internal/model"
)

// Config bounds batching, concurrency, and retry backoff for one Embed call
// (spec.md §4.4).
type Config struct {
	TargetTokensPerBatch int
	MaxParallelTasks     int
	InitialBackoff       time.Duration
	MaxBackoff           time.Duration
}

// DefaultConfig matches spec.md §6's named defaults (2048-token batches for
// the indexing path).
func DefaultConfig() Config {
	return Config{
		TargetTokensPerBatch: 2048,
		MaxParallelTasks:     4,
		InitialBackoff:       200 * time.Millisecond,
		MaxBackoff:           30 * time.Second,
	}
}

// Client wraps a Provider with the batching, bounded-parallel dispatch, and
// per-batch retry spec.md §4.4 describes: "Up to MAX_PARALLEL_TASKS batches
// in flight concurrently. Failures re-enqueue the failed batch; backoff
// starts at 200 ms and doubles up to a cap. On success the backoff resets."
type Client struct {
	Provider Provider
	Config   Config
}

func New(provider Provider, cfg Config) *Client {
	return &Client{Provider: provider, Config: cfg}
}

// Embed embeds texts, preserving input order, per spec.md §4.4's contract
// that "the result has the same length and order as the input." Cancellation
// observed mid-flight yields a typed error with no partial result, per §4.4
// "Cancellation".
func (c *Client) Embed(ctx context.Context, texts []string, mode Mode, progressCh chan<- Progress) ([][]float32, int, error) {
	if len(texts) == 0 {
		return nil, 0, nil
	}

	batches := PackBatches(texts, c.Config.TargetTokensPerBatch)
	budget := c.Config.TargetTokensPerBatch
	if budget <= 0 {
		budget = 2048
	}
	for _, i := range OversizedBatches(batches, budget) {
		log.Printf("embedclient: text of ~%d tokens exceeds the %d-token batch budget; sending it as its own batch", EstimateTokens(batches[i][0]), budget)
	}
	boundaries := batchBoundaries(texts, batches)

	vectors := make([][]float32, len(texts))
	var tokensUsed int
	var tokensMu sync.Mutex
	var processed int
	var processedMu sync.Mutex

	group, gCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxInt(1, c.Config.MaxParallelTasks))

	for i, batch := range batches {
		i, batch := i, batch
		start := boundaries[i]
		group.Go(func() error {
			result, used, err := c.embedWithRetry(gCtx, batch, mode)
			if err != nil {
				return fmt.Errorf("batch %d/%d: %w", i+1, len(batches), err)
			}
			for j, v := range result {
				vectors[start+j] = v
			}

			tokensMu.Lock()
			tokensUsed += used
			tokensMu.Unlock()

			if progressCh != nil {
				processedMu.Lock()
				processed += len(batch)
				snapshot := Progress{
					BatchIndex:      i + 1,
					TotalBatches:    len(batches),
					ProcessedChunks: processed,
					TotalChunks:     len(texts),
				}
				processedMu.Unlock()
				select {
				case progressCh <- snapshot:
				case <-gCtx.Done():
				}
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, 0, fmt.Errorf("%w: %v", model.ErrCancelled, ctx.Err())
		}
		return nil, 0, err
	}

	return vectors, tokensUsed, nil
}

// embedWithRetry retries one batch with doubling backoff, resetting to
// InitialBackoff on success so a later batch's first failure starts cold
// again (spec.md §4.4).
func (c *Client) embedWithRetry(ctx context.Context, batch []string, mode Mode) ([][]float32, int, error) {
	backoff := c.Config.InitialBackoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}
	maxBackoff := c.Config.MaxBackoff
	if maxBackoff <= 0 {
		maxBackoff = 30 * time.Second
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", model.ErrCancelled, err)
		}

		vectors, tokens, err := c.Provider.Embed(ctx, batch, mode)
		if err == nil {
			return vectors, tokens, nil
		}
		lastErr = err

		if model.IsRateLimit(err) || attempt >= maxRetryAttempts {
			return nil, 0, err
		}

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, 0, fmt.Errorf("%w: %v", model.ErrCancelled, ctx.Err())
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

const maxRetryAttempts = 5

func batchBoundaries(texts []string, batches [][]string) []int {
	bounds := make([]int, len(batches))
	offset := 0
	for i, b := range batches {
		bounds[i] = offset
		offset += len(b)
	}
	_ = texts
	return bounds
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
