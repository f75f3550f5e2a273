// Package lib contains the core, reusable services for the htree application.
package lib

import "hash"

// Sum32 computes the Jenkins one-at-a-time hash of b. The empty input
// hashes to 0. The exact sequence of shifts and wrapping additions is what
// previously recorded fingerprints depend on, so it must not change.
func Sum32(b []byte) uint32 {
	return finalize(mix(0, b))
}

// sumPadded hashes b followed by pad zero bytes without materializing the
// zeros.
func sumPadded(b []byte, pad int) uint32 {
	h := mix(0, b)
	for ; pad > 0; pad-- {
		h += h << 10
		h ^= h >> 6
	}
	return finalize(h)
}

func mix(h uint32, b []byte) uint32 {
	for _, c := range b {
		h += uint32(c)
		h += h << 10
		h ^= h >> 6
	}
	return h
}

func finalize(h uint32) uint32 {
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}

// oneAtATime is the streaming form of Sum32.
type oneAtATime uint32

// New32 returns a hash.Hash32 computing the same value as Sum32. Data may be
// written in any number of pieces.
func New32() hash.Hash32 {
	var h oneAtATime
	return &h
}

func (h *oneAtATime) Write(p []byte) (int, error) {
	*h = oneAtATime(mix(uint32(*h), p))
	return len(p), nil
}

// Sum32 finalizes a copy of the accumulator, so more data can be written
// afterwards.
func (h *oneAtATime) Sum32() uint32 { return finalize(uint32(*h)) }

func (h *oneAtATime) Sum(b []byte) []byte {
	s := h.Sum32()
	return append(b, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

func (h *oneAtATime) Reset()         { *h = 0 }
func (h *oneAtATime) Size() int      { return 4 }
func (h *oneAtATime) BlockSize() int { return 1 }
