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

package index

import "math"

// CountingBloomFilter is C3: like a BitSetBloomFilter, but its
// backing store is an array of 8-bit saturating counters, so it can
// approximate multiplicity (§4.3).
type CountingBloomFilter struct {
	counters []uint8
	m        uint64
	k        int
	n        uint64
}

// NewCountingBloomFilter sizes a counting filter the same way as
// NewBitSetBloomFilter, but clamps total memory to
// MaxCountingBloomBytes instead of MaxBloomBits bits.
func NewCountingBloomFilter(n uint64, p float64) *CountingBloomFilter {
	if n == 0 {
		n = 1
	}
	if p <= 0 {
		p = DefaultFalsePositiveRate
	}

	m := uint64(math.Ceil(-float64(n) * math.Log(p) / (math.Ln2 * math.Ln2)))
	if m < 1 {
		m = 1
	}
	if m > MaxCountingBloomBytes {
		m = MaxCountingBloomBytes
	}

	k := int(math.Ceil((float64(m) / float64(n)) * math.Ln2))
	if k < MinHashes {
		k = MinHashes
	}
	if k > MaxHashes {
		k = MaxHashes
	}

	return &CountingBloomFilter{
		counters: make([]uint8, m),
		m:        m,
		k:        k,
	}
}

// Add increments all k counter positions for kmer, saturating each at
// 255.
func (f *CountingBloomFilter) Add(kmer []byte) {
	for _, pos := range bloomPositions(kmer, f.k, f.m) {
		if f.counters[pos] < math.MaxUint8 {
			f.counters[pos]++
		}
	}
	f.n++
}

// Count returns the minimum of the k counter positions for kmer: a
// conservative upper bound on the number of times it was inserted
// (§4.3).
func (f *CountingBloomFilter) Count(kmer []byte) int {
	min := uint8(math.MaxUint8)
	for _, pos := range bloomPositions(kmer, f.k, f.m) {
		if f.counters[pos] < min {
			min = f.counters[pos]
		}
	}
	return int(min)
}

// NumHashes returns k.
func (f *CountingBloomFilter) NumHashes() int { return f.k }

// NumCounters returns m.
func (f *CountingBloomFilter) NumCounters() uint64 { return f.m }

// MemoryBytes returns the filter's backing-store size in bytes.
func (f *CountingBloomFilter) MemoryBytes() int64 { return int64(len(f.counters)) }

// EstimateCountingBloomBytes mirrors EstimateBloomBits for the
// counting variant's byte-array sizing, for pre-allocation memory
// checks (§5).
func EstimateCountingBloomBytes(n uint64, p float64) uint64 {
	if n == 0 {
		n = 1
	}
	if p <= 0 {
		p = DefaultFalsePositiveRate
	}
	m := uint64(math.Ceil(-float64(n) * math.Log(p) / (math.Ln2 * math.Ln2)))
	if m > MaxCountingBloomBytes {
		m = MaxCountingBloomBytes
	}
	return m
}
