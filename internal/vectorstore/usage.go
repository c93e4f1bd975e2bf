package vectorstore

import (
	"context"
	"fmt"
	"time"

	"github.com/qdrant/go-client/qdrant"

	"github.com/mvp-joe/project-cortex/internal/model"
)

// GetUsage fetches the usage row for usageHash, reporting ok=false when no
// row exists yet (spec.md §4.9).
func (s *Store) GetUsage(ctx context.Context, usageHash string) (model.UsageRecord, bool, error) {
	points, err := s.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: CollectionUsage,
		Ids:            []*qdrant.PointId{qdrantPointID(usageHash)},
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return model.UsageRecord{}, false, fmt.Errorf("%w: get usage: %v", model.ErrBackendUnavailable, err)
	}
	if len(points) == 0 {
		return model.UsageRecord{}, false, nil
	}
	payload := points[0].GetPayload()
	return model.UsageRecord{
		UsageHash:     usageHash,
		LastUsageTime: time.Unix(int64(getInt(payload, "last_usage_timestamp")), 0),
		References:    getStringList(payload, "references"),
	}, true, nil
}

// UpsertUsage creates or overwrites the usage row keyed by usageHash
// (spec.md §4.9: "check if this hash exists ... if so, bump
// last_usage_timestamp; otherwise create it").
func (s *Store) UpsertUsage(ctx context.Context, record model.UsageRecord) error {
	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: CollectionUsage,
		Points: []*qdrant.PointStruct{{
			Id:      qdrantPointID(record.UsageHash),
			Vectors: vectorsOf([]float32{0}),
			Payload: map[string]*qdrant.Value{
				"_id":                  stringValue(record.UsageHash),
				"last_usage_timestamp": intValue(record.LastUsageTime.Unix()),
				"references":           stringListValue(record.References),
			},
		}},
	})
	if err != nil {
		return fmt.Errorf("%w: upsert usage: %v", model.ErrBackendUnavailable, err)
	}
	return nil
}
