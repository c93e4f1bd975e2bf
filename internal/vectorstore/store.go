package vectorstore

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/qdrant/go-client/qdrant"

	"github.com/mvp-joe/project-cortex/internal/model"
)

// Open connects to the vector-store process, creating the chunks,
// chunk_files, usage, and schema_details collections when missing, and resolving
// the schema-version gate (spec.md §4.5 "Schema-details collection": "used
// to decide whether to wipe all collections on startup"). Grounded on
// QdrantStore.Initialize.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Host,
		Port:                   cfg.Port,
		APIKey:                 cfg.APIKey,
		UseTLS:                 cfg.UseTLS,
		SkipCompatibilityCheck: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: connect to vector store: %v", model.ErrBackendUnavailable, err)
	}

	index, err := bleve.NewMemOnly(buildBleveMapping())
	if err != nil {
		return nil, fmt.Errorf("%w: build bm25 index: %v", model.ErrConfiguration, err)
	}

	s := &Store{client: client, config: cfg, bm25: index}

	if err := s.reconcileSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the in-process BM25 index. The Qdrant client has no
// explicit close in this version of the driver.
func (s *Store) Close() error {
	if s.bm25 != nil {
		return s.bm25.Close()
	}
	return nil
}

// reconcileSchema implements the "wipe-on-mismatch / create-if-missing"
// decision from SPEC_FULL.md §9: read schema_details' single row; if absent,
// create every collection fresh; if present with a different version, drop
// and recreate all four collections before proceeding.
func (s *Store) reconcileSchema(ctx context.Context) error {
	collections, err := s.client.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("%w: list collections: %v", model.ErrBackendUnavailable, err)
	}
	existing := map[string]bool{}
	for _, c := range collections {
		existing[c] = true
	}

	storedVersion, hasSchema := s.readSchemaVersion(ctx, existing)
	wipe := hasSchema && storedVersion != s.config.SchemaVersion

	if wipe {
		for _, name := range []string{CollectionChunks, CollectionChunkFiles, CollectionSchemaDetail, CollectionUsage} {
			_ = s.client.DeleteCollection(ctx, name)
		}
		existing = map[string]bool{}
	}

	if !existing[CollectionChunks] {
		if err := s.createVectorCollection(ctx, CollectionChunks); err != nil {
			return err
		}
	}
	if !existing[CollectionChunkFiles] {
		if err := s.createPayloadCollection(ctx, CollectionChunkFiles); err != nil {
			return err
		}
	}
	if !existing[CollectionUsage] {
		if err := s.createPayloadCollection(ctx, CollectionUsage); err != nil {
			return err
		}
	}
	if !existing[CollectionSchemaDetail] || wipe {
		if err := s.createPayloadCollection(ctx, CollectionSchemaDetail); err != nil {
			return err
		}
		if err := s.writeSchemaVersion(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) createVectorCollection(ctx context.Context, name string) error {
	err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.config.VectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("%w: create collection %s: %v", model.ErrBackendUnavailable, name, err)
	}
	return nil
}

// createPayloadCollection creates a collection with a minimal 1-dimension
// vector config. chunk_files, usage, and schema_details are payload-only
// collections in this adapter (their rows are never similarity-searched),
// but Qdrant requires every collection to declare a vector config.
func (s *Store) createPayloadCollection(ctx context.Context, name string) error {
	err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     1,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("%w: create collection %s: %v", model.ErrBackendUnavailable, name, err)
	}
	return nil
}

func (s *Store) readSchemaVersion(ctx context.Context, existing map[string]bool) (int64, bool) {
	if !existing[CollectionSchemaDetail] {
		return 0, false
	}
	points, err := s.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: CollectionSchemaDetail,
		Ids:            []*qdrant.PointId{qdrantPointID(schemaDetailKey)},
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil || len(points) == 0 {
		return 0, false
	}
	return points[0].GetPayload()["version"].GetIntegerValue(), true
}

func (s *Store) writeSchemaVersion(ctx context.Context) error {
	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: CollectionSchemaDetail,
		Points: []*qdrant.PointStruct{{
			Id:      qdrantPointID(schemaDetailKey),
			Vectors: vectorsOf([]float32{0}),
			Payload: map[string]*qdrant.Value{"version": intValue(s.config.SchemaVersion)},
		}},
	})
	if err != nil {
		return fmt.Errorf("%w: write schema version: %v", model.ErrBackendUnavailable, err)
	}
	return nil
}
