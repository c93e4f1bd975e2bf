package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"github.com/mvp-joe/project-cortex/internal/model"
)

// chunkFileToPayload serializes a ChunkFile placement record into a Qdrant
// payload, grounded on QdrantStore.chunkToPoint.
func chunkFileToPayload(cf model.ChunkFile) map[string]*qdrant.Value {
	metaJSON, _ := json.Marshal(cf.Meta)
	return map[string]*qdrant.Value{
		"_id":                   stringValue(cf.ID),
		"file_path":             stringValue(cf.FilePath),
		"file_hash":             stringValue(cf.FileHash),
		"start_line":            intValue(int64(cf.StartLine)),
		"end_line":              intValue(int64(cf.EndLine)),
		"total_chunks":          intValue(int64(cf.TotalChunks)),
		"chunk_hash":            stringValue(cf.ChunkHash),
		"classes":               stringListValue(cf.Classes),
		"functions":             stringListValue(cf.Functions),
		"entities":              stringValue(cf.Entities),
		"searchable_file_path":  stringValue(cf.SearchableFilePath),
		"searchable_file_name":  stringValue(cf.SearchableFileName),
		"has_imports":           boolValue(cf.Meta.ImportOnlyChunk),
		"meta_info":             stringValue(string(metaJSON)),
	}
}

func payloadToChunkFile(id string, payload map[string]*qdrant.Value) model.ChunkFile {
	var meta model.MetaInfo
	_ = json.Unmarshal([]byte(getString(payload, "meta_info")), &meta)
	return model.ChunkFile{
		ID:                 id,
		FilePath:           getString(payload, "file_path"),
		FileHash:           getString(payload, "file_hash"),
		StartLine:          getInt(payload, "start_line"),
		EndLine:            getInt(payload, "end_line"),
		TotalChunks:        getInt(payload, "total_chunks"),
		ChunkHash:          getString(payload, "chunk_hash"),
		Classes:            getStringList(payload, "classes"),
		Functions:          getStringList(payload, "functions"),
		Entities:           getString(payload, "entities"),
		SearchableFilePath: getString(payload, "searchable_file_path"),
		SearchableFileName: getString(payload, "searchable_file_name"),
		Meta:               meta,
	}
}

// BulkInsertChunkFiles upserts placement records with the deterministic
// id5(file_path, file_hash, start_line, end_line) id, making the call
// idempotent (spec.md §4.5 bulk_insert).
func (s *Store) BulkInsertChunkFiles(ctx context.Context, records []model.ChunkFile) error {
	if len(records) == 0 {
		return nil
	}
	points := make([]*qdrant.PointStruct, len(records))
	for i, cf := range records {
		points[i] = &qdrant.PointStruct{
			Id:      qdrantPointID(cf.ID),
			Vectors: vectorsOf([]float32{0}),
			Payload: chunkFileToPayload(cf),
		}
	}
	if _, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{CollectionName: CollectionChunkFiles, Points: points}); err != nil {
		return fmt.Errorf("%w: bulk insert chunk files: %v", model.ErrBackendUnavailable, err)
	}
	return s.indexForKeywordSearch(records)
}

// indexForKeywordSearch mirrors the freshly upserted placements into the
// in-process bleve index keyword_search reads from.
func (s *Store) indexForKeywordSearch(records []model.ChunkFile) error {
	batch := s.bm25.NewBatch()
	for _, cf := range records {
		doc := map[string]any{
			"id":                    cf.ID,
			"classes":               cf.Classes,
			"functions":             cf.Functions,
			"searchable_file_path":  cf.SearchableFilePath,
			"searchable_file_name":  cf.SearchableFileName,
			"entities":              cf.Entities,
		}
		if err := batch.Index(cf.ID, doc); err != nil {
			return fmt.Errorf("%w: index chunk file %s: %v", model.ErrBackendUnavailable, cf.ID, err)
		}
	}
	if err := s.bm25.Batch(batch); err != nil {
		return fmt.Errorf("%w: flush bm25 batch: %v", model.ErrBackendUnavailable, err)
	}
	return nil
}

// GetByFileHashes fetches all placement records for the given
// file_path -> file_hash map, batched 1000 ids per request and capped at
// 10000 per query (spec.md §4.5).
func (s *Store) GetByFileHashes(ctx context.Context, fileHashes map[string]string) ([]model.ChunkFile, error) {
	paths := make([]string, 0, len(fileHashes))
	for path := range fileHashes {
		paths = append(paths, path)
	}

	var out []model.ChunkFile
	for start := 0; start < len(paths); start += maxBatchFetch {
		end := start + maxBatchFetch
		if end > len(paths) {
			end = len(paths)
		}
		batch := paths[start:end]

		condition := fieldContainsAny("file_path", batch)
		limit := uint32(maxQueryResults)
		points, err := s.client.Scroll(ctx, &qdrant.ScrollPoints{
			CollectionName: CollectionChunkFiles,
			Filter:         andFilter(condition),
			Limit:          &limit,
			WithPayload:    qdrant.NewWithPayload(true),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: get by file hashes: %v", model.ErrBackendUnavailable, err)
		}
		for _, p := range points {
			cf := payloadToChunkFile(pointRecordID(p), p.GetPayload())
			if fileHashes[cf.FilePath] == cf.FileHash {
				out = append(out, cf)
			}
		}
	}
	return out, nil
}

// GetOnlyImportChunkFiles is GetByFileHashes filtered to has_imports = true
// (spec.md §4.5).
func (s *Store) GetOnlyImportChunkFiles(ctx context.Context, fileHashes map[string]string) ([]model.ChunkFile, error) {
	all, err := s.GetByFileHashes(ctx, fileHashes)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, cf := range all {
		if cf.Meta.ImportOnlyChunk {
			out = append(out, cf)
		}
	}
	return out, nil
}

// KeywordSearch implements spec.md §4.5: BM25 over helper fields when
// |keyword| >= 3, otherwise a substring match over the same candidate set.
// kind selects which field the BM25 branch targets.
func (s *Store) KeywordSearch(ctx context.Context, keyword, kind string, files []string, limit int) ([]model.ChunkFile, error) {
	field := keywordSearchField(kind)

	if len([]rune(keyword)) >= 3 {
		ids, err := s.bm25Search(keyword, field, files, limit)
		if err != nil {
			return nil, err
		}
		return s.getChunkFilesByIDs(ctx, ids)
	}

	candidates, err := s.scrollAll(ctx, CollectionChunkFiles, nil, maxQueryResults)
	if err != nil {
		return nil, err
	}
	allowed := make(map[string]bool, len(files))
	for _, f := range files {
		allowed[f] = true
	}
	out := make([]model.ChunkFile, 0, limit)
	for _, p := range candidates {
		cf := payloadToChunkFile(pointRecordID(p), p.GetPayload())
		if len(allowed) > 0 && !allowed[cf.FilePath] {
			continue
		}
		haystack := fieldValue(cf, field)
		if substringMatch(haystack, keyword) {
			out = append(out, cf)
			if len(out) >= limit && limit > 0 {
				break
			}
		}
	}
	return out, nil
}

func fieldValue(cf model.ChunkFile, field string) string {
	switch field {
	case "classes":
		return joinStrings(cf.Classes)
	case "functions":
		return joinStrings(cf.Functions)
	case "searchable_file_name":
		return cf.SearchableFileName
	default:
		return cf.SearchableFilePath
	}
}

func joinStrings(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}

// GetChunkFilesMatchingExact implements the array-contains-exact filter on
// classes[] or functions[] (spec.md §4.5), scoped to one file and file hash.
func (s *Store) GetChunkFilesMatchingExact(ctx context.Context, searchKey, kind, filePath, fileHash string) ([]model.ChunkFile, error) {
	field := "classes"
	if kind == "function" {
		field = "functions"
	}

	limit := uint32(maxQueryResults)
	points, err := s.client.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: CollectionChunkFiles,
		Filter: andFilter(
			fieldEquals("file_path", filePath),
			fieldEquals("file_hash", fileHash),
			fieldContainsAny(field, []string{searchKey}),
		),
		Limit:       &limit,
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get chunk files matching exact: %v", model.ErrBackendUnavailable, err)
	}

	out := make([]model.ChunkFile, 0, len(points))
	for _, p := range points {
		out = append(out, payloadToChunkFile(pointRecordID(p), p.GetPayload()))
	}
	return out, nil
}

func (s *Store) getChunkFilesByIDs(ctx context.Context, ids []string) ([]model.ChunkFile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	pointIDs := make([]*qdrant.PointId, len(ids))
	for i, id := range ids {
		pointIDs[i] = qdrantPointID(id)
	}
	points, err := s.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: CollectionChunkFiles,
		Ids:            pointIDs,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get chunk files by id: %v", model.ErrBackendUnavailable, err)
	}
	out := make([]model.ChunkFile, 0, len(points))
	for i, p := range points {
		out = append(out, payloadToChunkFile(ids[i], p.GetPayload()))
	}
	return out, nil
}

// CleanupOrphanedChunkFiles deletes ChunkFile placements whose chunk_hash is
// in orphanedHashes, batched at maxBatchFetch ids per filter (spec.md §4.8:
// "perform the same on ChunkFiles" as the Chunks cleanup pass, applied here
// to placements left dangling by a chunk deletion).
func (s *Store) CleanupOrphanedChunkFiles(ctx context.Context, orphanedHashes []string) (int, error) {
	deleted := 0
	for start := 0; start < len(orphanedHashes); start += maxBatchFetch {
		end := start + maxBatchFetch
		if end > len(orphanedHashes) {
			end = len(orphanedHashes)
		}
		batch := orphanedHashes[start:end]

		limit := uint32(cleanupBatchSize)
		points, err := s.client.Scroll(ctx, &qdrant.ScrollPoints{
			CollectionName: CollectionChunkFiles,
			Filter:         andFilter(fieldContainsAny("chunk_hash", batch)),
			Limit:          &limit,
			WithPayload:    qdrant.NewWithPayload(false),
		})
		if err != nil {
			return deleted, fmt.Errorf("%w: cleanup chunk files scroll: %v", model.ErrBackendUnavailable, err)
		}
		if len(points) == 0 {
			continue
		}

		ids := make([]*qdrant.PointId, len(points))
		for i, p := range points {
			ids[i] = p.GetId()
		}
		if _, err := s.client.Delete(ctx, &qdrant.DeletePoints{
			CollectionName: CollectionChunkFiles,
			Points:         pointsSelector(ids),
		}); err != nil {
			return deleted, fmt.Errorf("%w: cleanup chunk files delete: %v", model.ErrBackendUnavailable, err)
		}
		deleted += len(ids)
	}
	return deleted, nil
}

func (s *Store) scrollAll(ctx context.Context, collection string, filter *qdrant.Filter, limit int) ([]*qdrant.RetrievedPoint, error) {
	l := uint32(limit)
	points, err := s.client.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: collection,
		Filter:         filter,
		Limit:          &l,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scroll %s: %v", model.ErrBackendUnavailable, collection, err)
	}
	return points, nil
}

// pointRecordID recovers the caller-facing id5 string id. Since the point id
// itself is a derived UUID (see ids.go), the original string is carried in
// the payload under "_id" by every writer in this package.
func pointRecordID(p *qdrant.RetrievedPoint) string {
	return getString(p.GetPayload(), "_id")
}
