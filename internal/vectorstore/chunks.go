package vectorstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/qdrant/go-client/qdrant"

	"github.com/mvp-joe/project-cortex/internal/model"
)

func chunkToPayload(c model.Chunk) map[string]*qdrant.Value {
	return map[string]*qdrant.Value{
		"_id":        stringValue(c.ChunkHash),
		"chunk_hash": stringValue(c.ChunkHash),
		"text":       stringValue(c.Text),
		"created_at": intValue(c.CreatedAt.Unix()),
		"last_used":  intValue(c.LastUsed.Unix()),
	}
}

func payloadToChunk(payload map[string]*qdrant.Value, vector []float32) model.Chunk {
	return model.Chunk{
		ChunkHash: getString(payload, "chunk_hash"),
		Text:      getString(payload, "text"),
		Embedding: vector,
		CreatedAt: time.Unix(int64(getInt(payload, "created_at")), 0),
		LastUsed:  time.Unix(int64(getInt(payload, "last_used")), 0),
	}
}

// BulkInsertChunks upserts chunks keyed by id5(chunk_hash), with or without a
// vector depending on availability (spec.md §4.5 bulk_insert on Chunks).
func (s *Store) BulkInsertChunks(ctx context.Context, chunks []model.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	points := make([]*qdrant.PointStruct, len(chunks))
	for i, c := range chunks {
		var vectors *qdrant.Vectors
		if c.HasVector() {
			vectors = vectorsOf(c.Embedding)
		} else {
			vectors = vectorsOf(make([]float32, s.config.VectorSize))
		}
		points[i] = &qdrant.PointStruct{
			Id:      qdrantPointID(c.ChunkHash),
			Vectors: vectors,
			Payload: chunkToPayload(c),
		}
	}
	if _, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{CollectionName: CollectionChunks, Points: points}); err != nil {
		return fmt.Errorf("%w: bulk insert chunks: %v", model.ErrBackendUnavailable, err)
	}
	return nil
}

// GetByChunkHashes batched id-equality fetch, deduplicating hashes before
// querying (spec.md §4.5: "preserves uniqueness").
func (s *Store) GetByChunkHashes(ctx context.Context, chunkHashes []string, withVector bool) ([]model.Chunk, error) {
	seen := map[string]bool{}
	unique := make([]string, 0, len(chunkHashes))
	for _, h := range chunkHashes {
		if !seen[h] {
			seen[h] = true
			unique = append(unique, h)
		}
	}

	var out []model.Chunk
	for start := 0; start < len(unique); start += maxBatchFetch {
		end := start + maxBatchFetch
		if end > len(unique) {
			end = len(unique)
		}
		batch := unique[start:end]

		ids := make([]*qdrant.PointId, len(batch))
		for i, h := range batch {
			ids[i] = qdrantPointID(h)
		}

		points, err := s.client.Get(ctx, &qdrant.GetPoints{
			CollectionName: CollectionChunks,
			Ids:            ids,
			WithPayload:    qdrant.NewWithPayload(true),
			WithVectors:    withVectorsSelector(withVector),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: get by chunk hashes: %v", model.ErrBackendUnavailable, err)
		}
		for _, p := range points {
			out = append(out, payloadToChunk(p.GetPayload(), vectorOf(p, withVector)))
		}
	}
	return out, nil
}

func vectorOf(p *qdrant.RetrievedPoint, withVector bool) []float32 {
	if !withVector {
		return nil
	}
	if v := p.GetVectors(); v != nil {
		if vec := v.GetVector(); vec != nil {
			return vec.GetData()
		}
	}
	return nil
}

// UpdateTimestamps partially updates last_used (and optionally created_at)
// for each chunk hash, bounded to updateTimestampsConcurrency in flight at
// once with per-item error isolation (spec.md §4.5).
func (s *Store) UpdateTimestamps(ctx context.Context, chunkHashes []string, updatedAt time.Time, createdAt *time.Time) map[string]error {
	results := make(map[string]error, len(chunkHashes))
	var mu sync.Mutex

	group, gCtx := errgroup.WithContext(context.Background())
	group.SetLimit(updateTimestampsConcurrency)

	for _, hash := range chunkHashes {
		hash := hash
		group.Go(func() error {
			payload := map[string]*qdrant.Value{"last_used": intValue(updatedAt.Unix())}
			if createdAt != nil {
				payload["created_at"] = intValue(createdAt.Unix())
			}
			_, err := s.client.SetPayload(gCtx, &qdrant.SetPayloadPoints{
				CollectionName: CollectionChunks,
				Payload:        payload,
				PointsSelector: pointsSelector([]*qdrant.PointId{qdrantPointID(hash)}),
			})
			mu.Lock()
			results[hash] = err
			mu.Unlock()
			return nil // per-item isolation: never fail the whole group
		})
	}
	_ = group.Wait()

	if ctx.Err() != nil {
		for h := range results {
			if results[h] == nil {
				results[h] = ctx.Err()
			}
		}
	}
	return results
}

// UpdateEmbedding patches a single chunk's vector in place.
func (s *Store) UpdateEmbedding(ctx context.Context, chunkHash string, embedding []float32) error {
	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: CollectionChunks,
		Points: []*qdrant.PointStruct{{
			Id:      qdrantPointID(chunkHash),
			Vectors: vectorsOf(embedding),
			Payload: map[string]*qdrant.Value{"_id": stringValue(chunkHash), "chunk_hash": stringValue(chunkHash)},
		}},
	})
	if err != nil {
		return fmt.Errorf("%w: update embedding: %v", model.ErrBackendUnavailable, err)
	}
	return nil
}

// CleanupOld iteratively deletes chunks whose last_used predates
// lastUsedBefore, excluding exclusionChunkHashes, in cleanupBatchSize
// batches until no matching chunk remains (spec.md §4.5 cleanup_old).
func (s *Store) CleanupOld(ctx context.Context, lastUsedBefore time.Time, exclusionChunkHashes []string) ([]string, error) {
	excluded := map[string]bool{}
	for _, h := range exclusionChunkHashes {
		excluded[h] = true
	}

	var deletedHashes []string
	for {
		limit := uint32(cleanupBatchSize)
		points, err := s.client.Scroll(ctx, &qdrant.ScrollPoints{
			CollectionName: CollectionChunks,
			Filter: andFilter(&qdrant.Condition{
				ConditionOneOf: &qdrant.Condition_Field{
					Field: &qdrant.FieldCondition{
						Key:   "last_used",
						Range: &qdrant.Range{Lt: qdrant.PtrOf(float64(lastUsedBefore.Unix()))},
					},
				},
			}),
			Limit:       &limit,
			WithPayload: qdrant.NewWithPayload(true),
		})
		if err != nil {
			return deletedHashes, fmt.Errorf("%w: cleanup scroll: %v", model.ErrBackendUnavailable, err)
		}
		if len(points) == 0 {
			return deletedHashes, nil
		}

		var toDelete []*qdrant.PointId
		var toDeleteHashes []string
		for _, p := range points {
			hash := getString(p.GetPayload(), "chunk_hash")
			if !excluded[hash] {
				toDelete = append(toDelete, p.GetId())
				toDeleteHashes = append(toDeleteHashes, hash)
			}
		}
		if len(toDelete) == 0 {
			return deletedHashes, nil
		}

		_, err = s.client.Delete(ctx, &qdrant.DeletePoints{
			CollectionName: CollectionChunks,
			Points:         pointsSelector(toDelete),
		})
		if err != nil {
			return deletedHashes, fmt.Errorf("%w: cleanup delete: %v", model.ErrBackendUnavailable, err)
		}
		deletedHashes = append(deletedHashes, toDeleteHashes...)

		if len(points) < cleanupBatchSize {
			return deletedHashes, nil
		}
	}
}

// FilteredVectorHybridSearch blends a BM25 score over the pre-filtered
// chunks' text with Qdrant's vector similarity (spec.md §4.5): the
// pre-filter is applied via a HasId condition over chunkHashes, and the two
// scores are combined score = alpha*vector + (1-alpha)*bm25. This adapter
// has no literal corpus example of Qdrant-native fusion, so the hybrid
// blend happens in Go over two independent queries (see DESIGN.md).
func (s *Store) FilteredVectorHybridSearch(ctx context.Context, chunkHashes []string, query string, queryVector []float32, limit int, alpha float64) ([]model.ChunkResult, error) {
	if len(chunkHashes) == 0 {
		return nil, nil
	}

	ids := make([]*qdrant.PointId, len(chunkHashes))
	for i, h := range chunkHashes {
		ids[i] = qdrantPointID(h)
	}

	vecLimit := uint64(limit)
	if vecLimit == 0 {
		vecLimit = uint64(len(chunkHashes))
	}
	scored, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: CollectionChunks,
		Query:          qdrant.NewQuery(queryVector...),
		Filter:         andFilter(hasIDFilter(ids)),
		Limit:          &vecLimit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: hybrid vector query: %v", model.ErrBackendUnavailable, err)
	}

	vectorScore := make(map[string]float64, len(scored))
	text := make(map[string]string, len(scored))
	for _, p := range scored {
		hash := getString(p.GetPayload(), "chunk_hash")
		vectorScore[hash] = float64(p.GetScore())
		text[hash] = getString(p.GetPayload(), "text")
	}

	bm25Score := bm25ScoreOverText(text, query)

	results := make([]model.ChunkResult, 0, len(vectorScore))
	for hash, vScore := range vectorScore {
		combined := alpha*vScore + (1-alpha)*bm25Score[hash]
		results = append(results, model.ChunkResult{
			Content:     text[hash],
			SearchScore: combined,
			Metadata:    map[string]any{"chunk_hash": hash},
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].SearchScore > results[j].SearchScore })
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
