package lib

import "fmt"

// Region is a read-only view of a whole file shared by every task of a
// fingerprint run. Chunk boundaries are validated once, when the Region is
// built, so tasks never need to check them.
type Region struct {
	data           []byte
	chunkSize      int
	numThread      int
	coverRemainder bool
}

// NewRegion builds a Region over data for numThread chunks of chunkSize
// bytes. Every chunk must start inside data. A chunk that runs past the end
// of data (the partial last block of a file) is hashed as if the missing
// bytes were zero, the way a mapped file reads past EOF within its last
// page; those zeros are reported by Chunk, never read from data.
//
// With coverRemainder set, the last chunk (index numThread-1) extends to
// the end of data so the bytes left over by the planner are hashed as well.
func NewRegion(data []byte, chunkSize int64, numThread int, coverRemainder bool) (*Region, error) {
	if numThread <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreadCount, numThread)
	}
	if chunkSize < 0 {
		return nil, fmt.Errorf("%w: negative chunk size %d", ErrChunkOutOfRange, chunkSize)
	}
	if last := int64(numThread-1) * chunkSize; last > int64(len(data)) {
		return nil, fmt.Errorf("%w: chunk %d starts at %d, region holds %d bytes",
			ErrChunkOutOfRange, numThread-1, last, len(data))
	}
	return &Region{
		data:           data,
		chunkSize:      int(chunkSize),
		numThread:      numThread,
		coverRemainder: coverRemainder,
	}, nil
}

// NumThread is the number of chunks, and therefore tasks, in the region.
func (r *Region) NumThread() int { return r.numThread }

// Len is the size of the underlying buffer.
func (r *Region) Len() int { return len(r.data) }

// Chunk returns the bytes of task tid that lie inside the buffer, and the
// number of zero bytes that complete the chunk past the end of the buffer.
// The slice has its capacity capped so it cannot be grown into the next
// chunk.
func (r *Region) Chunk(tid int) (view []byte, pad int) {
	lo := tid * r.chunkSize
	hi := lo + r.chunkSize
	if r.coverRemainder && tid == r.numThread-1 {
		hi = len(r.data)
	}
	if hi > len(r.data) {
		pad = hi - len(r.data)
		hi = len(r.data)
	}
	return r.data[lo:hi:hi], pad
}
