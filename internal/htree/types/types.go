package types

import "time"

// Plan describes how a file of FileSize bytes is split across NumThread
// tasks. ChunkSize may be 0 when there are more threads than blocks.
type Plan struct {
	FileSize        int64 `json:"fileSize"`
	BlockSize       int64 `json:"blockSize"`
	NumBlocks       int64 `json:"numBlocks"`
	BlocksPerThread int64 `json:"blocksPerThread"`
	ChunkSize       int64 `json:"chunkSize"`
	NumThread       int   `json:"numThread"`
}

// Covered is the number of leading bytes assigned to a chunk. Bytes at or
// past this offset are not part of the fingerprint unless the remainder is
// covered explicitly.
func (p Plan) Covered() int64 {
	covered := p.ChunkSize * int64(p.NumThread)
	if covered > p.FileSize {
		return p.FileSize
	}
	return covered
}

// Result is what a single fingerprint run hands back to the caller.
type Result struct {
	Plan        Plan          `json:"plan"`
	Fingerprint uint32        `json:"fingerprint"`
	Elapsed     time.Duration `json:"elapsed"`
}

// FileFingerprint pairs a file with its fingerprint for directory walks.
type FileFingerprint struct {
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	Fingerprint uint32 `json:"fingerprint"`
}
