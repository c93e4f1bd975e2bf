package vectorstore

import (
	"github.com/google/uuid"
)

// pointID derives a Qdrant point UUID deterministically from an arbitrary
// string id (spec.md §4.5's id5 scheme, e.g. id5(chunk_hash) or
// id5(file_path, file_hash, start_line, end_line)). Qdrant point ids must be
// either an unsigned integer or a well-formed UUID; hashing into the UUIDv5
// namespace keeps bulk_insert idempotent (same input always yields the same
// point id) without the caller having to format one by hand.
func pointID(id string) *uuid.UUID {
	u := uuid.NewSHA1(uuid.Nil, []byte(id))
	return &u
}

func pointIDString(id string) string {
	return pointID(id).String()
}
