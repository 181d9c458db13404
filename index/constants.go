// Copyright © 2024 rnaiguard contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package index builds and serializes the non-target k-mer membership
// indices: an exact set-based index for small genomes and a
// Bloom-filter-backed probabilistic index for large ones, both
// reachable through the single Index interface.
package index

// K15 is the patent-exclusion k-mer length (§4.4, §6).
const K15 = 15

// K7 is the seed k-mer length (§4.4, §6).
const K7 = 7

// ChunkSize is the indexer's chunk size in bytes (§4.5).
const ChunkSize = 1_000_000

// ChunkOverlap is the number of trailing bytes carried from one chunk
// into the next so no k-mer straddling a boundary is missed (§4.5).
const ChunkOverlap = 50

// LargeFileThreshold is the non-target length above which the
// probabilistic variant is chosen instead of the exact one (§4.5).
const LargeFileThreshold = 10_000_000

// DefaultFalsePositiveRate is C2's default target false positive rate
// (§4.2).
const DefaultFalsePositiveRate = 0.001

// MaxBloomBits caps the bit-set Bloom filter at 500 MiB (§4.2).
const MaxBloomBits = 4_194_304_000

// MaxCountingBloomBytes caps the counting Bloom filter's counter
// array at 200 MiB (§4.3).
const MaxCountingBloomBytes = 200 * 1024 * 1024

// MinHashes and MaxHashes clamp the derived hash count k for both
// Bloom variants (§4.2).
const (
	MinHashes = 3
	MaxHashes = 10
)

// RetentionMode selects whether a probabilistic index keeps a full
// copy of the non-target sequence for exact verification of Bloom
// positives, or only representative samples (§9 Open Question).
type RetentionMode int

const (
	RetainFull RetentionMode = iota
	RetainSamples
)

func (r RetentionMode) String() string {
	if r == RetainSamples {
		return "samples"
	}
	return "full"
}

// Variant names the two index kinds (§3).
type Variant int

const (
	VariantExact Variant = iota
	VariantProbabilistic
)

func (v Variant) String() string {
	if v == VariantProbabilistic {
		return "probabilistic"
	}
	return "exact"
}

// ProgressFunc reports build/scan progress as a fraction in [0, 1]
// with an optional human-readable phase label (§6).
type ProgressFunc func(fraction float64, phase string)

// CancelFunc is polled at suspension points; returning true aborts
// the in-progress operation (§5).
type CancelFunc func() bool
