package sync

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/project-cortex/internal/chunker"
	"github.com/mvp-joe/project-cortex/internal/embedclient"
	"github.com/mvp-joe/project-cortex/internal/lang"
	"github.com/mvp-joe/project-cortex/internal/model"
)

// Sync implements spec.md §4.6's sync(files) -> [Chunk]: bring the store to
// a state where every eligible (file_path, file_hash) has all its chunks
// embedded, returning every chunk for the repo (preserved and new).
func (s *Synchronizer) Sync(ctx context.Context, files map[string]string) ([]model.Chunk, error) {
	return s.run(ctx, files, true)
}

// Update is Sync narrowed to filesToReplace: a targeted re-sync of specific
// paths (spec.md §4.6's update(files, files_to_replace)). Unlike Sync, it
// returns the chunks without their embeddings.
func (s *Synchronizer) Update(ctx context.Context, files map[string]string, filesToReplace []string) ([]model.Chunk, error) {
	subset := make(map[string]string, len(filesToReplace))
	for _, path := range filesToReplace {
		if hash, ok := files[path]; ok {
			subset[path] = hash
		}
	}
	return s.run(ctx, subset, false)
}

func (s *Synchronizer) run(ctx context.Context, files map[string]string, fetchWithVector bool) ([]model.Chunk, error) {
	if len(files) == 0 {
		return nil, nil
	}

	placements, err := s.Store.GetByFileHashes(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("sync: resolve placements: %w", err)
	}

	hashSet := map[string]bool{}
	for _, cf := range placements {
		hashSet[cf.ChunkHash] = true
	}
	hashes := make([]string, 0, len(hashSet))
	for h := range hashSet {
		hashes = append(hashes, h)
	}
	vectoredChunks, err := s.Store.GetByChunkHashes(ctx, hashes, true)
	if err != nil {
		return nil, fmt.Errorf("sync: resolve chunk vectors: %w", err)
	}
	hasVector := make(map[string]bool, len(vectoredChunks))
	for _, c := range vectoredChunks {
		hasVector[c.ChunkHash] = c.HasVector()
	}

	p := partitionFiles(files, placements, hasVector)

	now := time.Now()
	if len(p.reuse) > 0 {
		reuseHashes := make([]string, 0, len(p.reuse))
		for _, cf := range p.reuse {
			reuseHashes = append(reuseHashes, cf.ChunkHash)
		}
		for hash, refreshErr := range s.Store.UpdateTimestamps(ctx, reuseHashes, now, nil) {
			if refreshErr != nil {
				log.Printf("sync: refresh last_used for chunk %s: %v", hash, refreshErr)
			}
		}
	}

	toProcess := make(map[string]string, len(p.reEmbed)+len(p.newFiles))
	for path, hash := range p.reEmbed {
		toProcess[path] = hash
	}
	for path, hash := range p.newFiles {
		toProcess[path] = hash
	}

	produced, err := s.chunkAndEmbedAll(ctx, toProcess)
	if err != nil {
		return nil, err
	}

	chunksByHash := map[string]model.Chunk{}
	for _, cf := range vectoredChunks {
		chunksByHash[cf.ChunkHash] = cf
	}
	for _, c := range produced {
		chunksByHash[c.ChunkHash] = c
	}

	out := make([]model.Chunk, 0, len(chunksByHash))
	for _, c := range chunksByHash {
		if !fetchWithVector {
			c.Embedding = nil
		}
		out = append(out, c)
	}
	return out, nil
}

// chunkAndEmbedAll implements spec.md §4.6 step 3: batch files
// (maxBatchSizeChunking), and per batch run the chunker, embed the
// resulting texts, and upsert both collections.
func (s *Synchronizer) chunkAndEmbedAll(ctx context.Context, files map[string]string) ([]model.Chunk, error) {
	if len(files) == 0 {
		return nil, nil
	}

	batches := batchFiles(files, maxBatchSizeChunking)
	results := make([][]model.Chunk, len(batches))

	group, gCtx := errgroup.WithContext(ctx)
	for i, batch := range batches {
		i, batch := i, batch
		group.Go(func() error {
			chunks, err := s.processBatch(gCtx, batch)
			if err != nil {
				return fmt.Errorf("batch %d/%d: %w", i+1, len(batches), err)
			}
			results[i] = chunks
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var all []model.Chunk
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// processBatch chunks every file in the batch, embeds every new chunk's
// canonical text, and upserts both the chunks and chunk_files collections.
// A single file's chunking error is logged and counted; the batch continues
// (spec.md §4.6 "Failure semantics").
func (s *Synchronizer) processBatch(ctx context.Context, batch map[string]string) ([]model.Chunk, error) {
	type pending struct {
		chunkFile model.ChunkFile
		text      string
	}
	var work []pending
	var failures int

	opt := chunker.DefaultOptions()
	for path, hash := range batch {
		source, err := os.ReadFile(filepath.Join(s.RepoPath, path))
		if err != nil {
			failures++
			log.Printf("sync: read %s: %v", path, err)
			continue
		}

		tag := lang.Detect(path)
		result := chunker.Extract(source, tag, opt)
		if !result.Supported {
			for _, span := range chunker.ChunkCode(source, opt.MaxChars, opt.Coalesce, tag) {
				work = append(work, pending{
					chunkFile: model.ChunkFile{
						FilePath:    path,
						FileHash:    hash,
						StartLine:   span.StartLine,
						EndLine:     span.EndLine,
						TotalChunks: 0,
					},
					text: canonicalText(path, nil, span.Text),
				})
			}
			continue
		}

		for _, c := range result.Chunks {
			text := canonicalText(path, c.Hierarchy, c.Text)
			work = append(work, pending{
				chunkFile: model.ChunkFile{
					FilePath:           path,
					FileHash:           hash,
					StartLine:          c.StartLine,
					EndLine:            c.EndLine,
					TotalChunks:        len(result.Chunks),
					Classes:            c.Classes,
					Functions:          c.Functions,
					SearchableFilePath: path,
					SearchableFileName: filepath.Base(path),
					Meta: model.MetaInfo{
						Hierarchy:       c.Hierarchy,
						ImportOnlyChunk: c.ImportOnlyChunk,
						AllClasses:      result.AllClasses,
						AllFunctions:    result.AllFunctions,
						ByteSize:        c.ByteSize,
					},
				},
				text: text,
			})
		}
	}
	if failures > 0 {
		log.Printf("sync: %d file(s) in this batch failed to chunk and were skipped", failures)
	}
	if len(work) == 0 {
		return nil, nil
	}

	texts := make([]string, len(work))
	for i, w := range work {
		texts[i] = w.text
	}
	vectors, _, err := s.Embedder.Embed(ctx, texts, embedclient.ModePassage, nil)
	if err != nil {
		log.Printf("sync: embedding failed for batch, chunks will be inserted unembedded: %v", err)
		vectors = make([][]float32, len(texts))
	}

	now := time.Now()
	chunks := make([]model.Chunk, len(work))
	chunkFiles := make([]model.ChunkFile, len(work))
	for i, w := range work {
		hash := model.ContentHash(w.text)
		w.chunkFile.ChunkHash = hash
		w.chunkFile.ID = model.ChunkFileID(w.chunkFile.FilePath, w.chunkFile.FileHash, w.chunkFile.StartLine, w.chunkFile.EndLine)
		chunkFiles[i] = w.chunkFile
		chunks[i] = model.Chunk{
			ChunkHash: hash,
			Text:      w.text,
			Embedding: vectors[i],
			CreatedAt: now,
			LastUsed:  now,
		}
	}

	if err := s.Store.BulkInsertChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("upsert chunks: %w", err)
	}
	if err := s.Store.BulkInsertChunkFiles(ctx, chunkFiles); err != nil {
		return nil, fmt.Errorf("upsert chunk files: %w", err)
	}
	return chunks, nil
}
