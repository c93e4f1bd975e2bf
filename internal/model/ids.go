package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// separator joins id parts unambiguously; it never appears in a file path,
// a hash, or a line number.
const separator = "\x1f"

// StableID derives a deterministic, content-addressed identifier from an
// ordered tuple of parts, e.g. id5(file_path, file_hash, start_line, end_line)
// for a ChunkFile, or id5(chunk_hash) for a Chunk (spec.md §4.5). Grounded on
// the teacher's calculateHashForFile (sha256 over file bytes); generalized
// here to a joinable tuple of strings.
func StableID(parts ...string) string {
	h := sha256.New()
	h.Write([]byte(strings.Join(parts, separator)))
	return hex.EncodeToString(h.Sum(nil))
}

// ContentHash computes the content-addressed hash of a chunk's canonical
// text. content_hash(Chunk.text) = Chunk.chunk_hash (spec.md §3, §8).
func ContentHash(text string) string {
	return StableID(text)
}

// ChunkFileID derives the stable id of a ChunkFile from its placement tuple.
func ChunkFileID(filePath, fileHash string, startLine, endLine int) string {
	return StableID(filePath, fileHash, strconv.Itoa(startLine), strconv.Itoa(endLine))
}
