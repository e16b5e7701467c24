// Package fingerprint computes 64-bit SimHash fingerprints of captured
// pages, so two visits to the same URL can be compared for change without
// keeping full snapshots around. Text covers the rendered content, DOM the
// markup shape.
package fingerprint

import (
	"hash/fnv"
	"math/bits"
	"strings"
)

// Text computes a SimHash of the visible page text: FNV-64a over word-level
// tokens with bit-vector accumulation.
func Text(text string) uint64 {
	return simhash(strings.Fields(text))
}

// simhash folds pre-split tokens into one 64-bit fingerprint.
func simhash(tokens []string) uint64 {
	if len(tokens) == 0 {
		return 0
	}

	var vector [64]int
	for _, tok := range tokens {
		h := fnv.New64a()
		h.Write([]byte(tok))
		sum := h.Sum64()

		for i := 0; i < 64; i++ {
			if sum&(1<<uint(i)) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}

	var fp uint64
	for i := 0; i < 64; i++ {
		if vector[i] > 0 {
			fp |= 1 << uint(i)
		}
	}
	return fp
}

// Distance returns the Hamming distance between two fingerprints.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Similar reports whether two fingerprints are within threshold bits of
// each other.
func Similar(a, b uint64, threshold int) bool {
	return Distance(a, b) <= threshold
}
