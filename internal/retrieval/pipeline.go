package retrieval

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/mvp-joe/project-cortex/internal/embedclient"
	"github.com/mvp-joe/project-cortex/internal/model"
)

// Result is the pipeline's output: ranked chunks (focus-pinned chunks
// prepended) plus the focus-pinned subset on its own, per spec.md §4.7
// "Responsibility".
type Result struct {
	Chunks             []model.ChunkResult
	FocusPinned        []model.ChunkResult
	SessionID          int
	TouchedChunkHashes []string // store-backed chunk hashes this read just refreshed
}

// Retrieve runs spec.md §4.7's full stage pipeline: focus materialization,
// focus biasing, candidate selection via hybrid search, import-chunk
// augmentation, stable dedup+sort, and optional reranking.
func (p *Pipeline) Retrieve(ctx context.Context, repoRoot string, req Request) (Result, error) {
	focus := materializeFocusChunks(repoRoot, req.FocusChunks)
	query := biasedQuery(req.Query, focus)

	candidates := candidateFiles(req)
	placements, err := p.Store.GetByFileHashes(ctx, candidates)
	if err != nil {
		return Result{}, fmt.Errorf("retrieval: candidate placements: %w", err)
	}

	chunkHashes := make([]string, 0, len(placements))
	byHash := make(map[string][]model.ChunkFile, len(placements))
	for _, cf := range placements {
		byHash[cf.ChunkHash] = append(byHash[cf.ChunkHash], cf)
		chunkHashes = append(chunkHashes, cf.ChunkHash)
	}

	queryVector, _, err := p.embedQuery(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("retrieval: embed query: %w", err)
	}

	scored, err := p.Store.FilteredVectorHybridSearch(ctx, chunkHashes, query, queryVector, req.MaxChunksToReturn, hybridAlpha)
	if err != nil {
		return Result{}, fmt.Errorf("retrieval: hybrid search: %w", err)
	}

	results := placeResults(scored, byHash)

	results, err = p.augmentImports(ctx, results, candidates)
	if err != nil {
		log.Printf("retrieval: import augmentation skipped: %v", err)
	}

	results = dedupAndSort(results)

	var sessionID int
	if p.Reranker != nil {
		reranked, rerr := p.rerank(ctx, query, results, req.SessionID, req.SessionType)
		if rerr != nil {
			log.Printf("retrieval: reranker unavailable, returning unreranked order: %v", rerr)
		} else {
			results = reranked.chunks
			sessionID = reranked.sessionID
		}
	}

	touched := touchedChunkHashes(results)
	p.touchLiveness(ctx, repoRoot, touched)

	focusResults := focusToResults(focus)
	return Result{
		Chunks:             prependFocus(focusResults, results),
		FocusPinned:        focusResults,
		SessionID:          sessionID,
		TouchedChunkHashes: touched,
	}, nil
}

// touchedChunkHashes collects the chunk_hash of every store-backed result
// (focus chunks are synthetic and unpersisted, so they carry none).
func touchedChunkHashes(results []model.ChunkResult) []string {
	seen := make(map[string]bool, len(results))
	out := make([]string, 0, len(results))
	for _, r := range results {
		hash, _ := r.Metadata["chunk_hash"].(string)
		if hash == "" || seen[hash] {
			continue
		}
		seen[hash] = true
		out = append(out, hash)
	}
	return out
}

// touchLiveness advances last_used on every chunk this read touches (spec.md
// §3 "timestamps are advanced on every read that touches a chunk") and
// records the query in the session/usage clock. Both are best-effort:
// a bookkeeping failure must never fail the read that triggered it, matching
// the teacher's swallow-and-log idiom used elsewhere in this pipeline.
func (p *Pipeline) touchLiveness(ctx context.Context, repoRoot string, chunkHashes []string) {
	if len(chunkHashes) == 0 {
		return
	}

	now := time.Now()
	if p.Usage != nil {
		if _, err := p.Usage.Touch(ctx, repoRoot, now, chunkHashes); err != nil {
			log.Printf("retrieval: usage clock touch failed: %v", err)
		}
	}

	for hash, err := range p.Store.UpdateTimestamps(ctx, chunkHashes, now, nil) {
		if err != nil {
			log.Printf("retrieval: refresh last_used for chunk %s: %v", hash, err)
		}
	}
}

func (p *Pipeline) embedQuery(ctx context.Context, query string) ([]float32, int, error) {
	vectors, tokens, err := p.Embedder.Embed(ctx, []string{query}, embedclient.ModeQuery, nil)
	if err != nil {
		return nil, 0, err
	}
	if len(vectors) == 0 {
		return nil, tokens, nil
	}
	return vectors[0], tokens, nil
}

// placeResults joins the hybrid search's scored-by-chunk_hash results back
// onto the candidate placements that share that hash, producing one
// ChunkResult per (chunk, location) pair.
func placeResults(scored []model.ChunkResult, byHash map[string][]model.ChunkFile) []model.ChunkResult {
	var out []model.ChunkResult
	for _, r := range scored {
		hash, _ := r.Metadata["chunk_hash"].(string)
		for _, cf := range byHash[hash] {
			out = append(out, model.ChunkResult{
				Content:     r.Content,
				SearchScore: r.SearchScore,
				Metadata:    r.Metadata,
				SourceDetails: model.ChunkSourceDetails{
					FilePath:  cf.FilePath,
					FileHash:  cf.FileHash,
					StartLine: cf.StartLine,
					EndLine:   cf.EndLine,
				},
			})
		}
	}
	return out
}

// augmentImports fetches each present file's import_only_chunk and unions
// it into results when not already present (spec.md §4.7 stage 4).
func (p *Pipeline) augmentImports(ctx context.Context, results []model.ChunkResult, candidates map[string]string) ([]model.ChunkResult, error) {
	if len(results) == 0 {
		return results, nil
	}

	present := make(map[string]bool, len(results))
	filesPresent := make(map[string]string)
	for _, r := range results {
		present[dedupKey(r)] = true
		if hash, ok := candidates[r.SourceDetails.FilePath]; ok {
			filesPresent[r.SourceDetails.FilePath] = hash
		}
	}

	imports, err := p.Store.GetOnlyImportChunkFiles(ctx, filesPresent)
	if err != nil {
		return results, err
	}

	placementsByHash := make(map[string][]model.ChunkFile)
	var need []string
	for _, cf := range imports {
		if present[cf.FilePath+":"+strconv.Itoa(cf.StartLine)] {
			continue
		}
		placementsByHash[cf.ChunkHash] = append(placementsByHash[cf.ChunkHash], cf)
		need = append(need, cf.ChunkHash)
	}
	if len(need) == 0 {
		return results, nil
	}

	chunks, err := p.Store.GetByChunkHashes(ctx, need, false)
	if err != nil {
		return results, err
	}
	textByHash := make(map[string]string, len(chunks))
	for _, c := range chunks {
		textByHash[c.ChunkHash] = c.Text
	}

	for hash, cfs := range placementsByHash {
		for _, cf := range cfs {
			results = append(results, model.ChunkResult{
				Content:  textByHash[hash],
				Metadata: map[string]any{"chunk_hash": hash},
				SourceDetails: model.ChunkSourceDetails{
					FilePath:  cf.FilePath,
					FileHash:  cf.FileHash,
					StartLine: cf.StartLine,
					EndLine:   cf.EndLine,
				},
			})
		}
	}
	return results, nil
}

func dedupKey(r model.ChunkResult) string {
	return r.SourceDetails.FilePath + ":" + strconv.Itoa(r.SourceDetails.StartLine)
}

// dedupAndSort implements spec.md §4.7 stage 5: dedup by (file_path,
// start_line), then sort ascending by the same pair.
func dedupAndSort(results []model.ChunkResult) []model.ChunkResult {
	seen := make(map[string]bool, len(results))
	out := make([]model.ChunkResult, 0, len(results))
	for _, r := range results {
		key := dedupKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SourceDetails.FilePath != out[j].SourceDetails.FilePath {
			return out[i].SourceDetails.FilePath < out[j].SourceDetails.FilePath
		}
		return out[i].SourceDetails.StartLine < out[j].SourceDetails.StartLine
	})
	return out
}

type rerankedSet struct {
	chunks    []model.ChunkResult
	sessionID int
}

// rerank posts candidates to the reranker and reorders by its denotation
// list, dropping any denotation it doesn't echo back (spec.md §4.7 stage 6).
func (p *Pipeline) rerank(ctx context.Context, query string, candidates []model.ChunkResult, sessionID, sessionType string) (rerankedSet, error) {
	res, err := p.Reranker.Rerank(ctx, query, candidates, sessionID, sessionType)
	if err != nil {
		return rerankedSet{}, err
	}
	byDenotation := make(map[string]model.ChunkResult, len(candidates))
	for _, c := range candidates {
		byDenotation[denotationOf(c)] = c
	}
	ordered := make([]model.ChunkResult, 0, len(res.order))
	for _, d := range res.order {
		if c, ok := byDenotation[d]; ok {
			ordered = append(ordered, c)
		}
	}
	return rerankedSet{chunks: ordered, sessionID: res.sessionID}, nil
}

func focusToResults(focus []FocusChunk) []model.ChunkResult {
	out := make([]model.ChunkResult, len(focus))
	for i, f := range focus {
		out[i] = model.ChunkResult{
			Content: f.Text,
			SourceDetails: model.ChunkSourceDetails{
				FilePath:  f.FilePath,
				StartLine: f.StartLine,
				EndLine:   f.EndLine,
			},
		}
	}
	return out
}

// prependFocus puts focus-pinned chunks first, since spec.md §4.7 stage 6
// requires they are "never dropped".
func prependFocus(focus, rest []model.ChunkResult) []model.ChunkResult {
	if len(focus) == 0 {
		return rest
	}
	seen := make(map[string]bool, len(focus))
	out := make([]model.ChunkResult, 0, len(focus)+len(rest))
	for _, f := range focus {
		seen[dedupKey(f)] = true
		out = append(out, f)
	}
	for _, r := range rest {
		if seen[dedupKey(r)] {
			continue
		}
		out = append(out, r)
	}
	return out
}
