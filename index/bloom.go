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

// BitSetBloomFilter is a probabilistic set membership structure over
// k-mers (§4.2). Contains never false-negatives; a true result is
// subject to the filter's false positive rate.
type BitSetBloomFilter struct {
	bits []uint64 // packed, 64 slots per word
	m    uint64   // number of bits
	k    int      // number of hash functions
	n    uint64   // number of items added
}

// NewBitSetBloomFilter sizes a filter for an expected n elements at
// target false positive rate p, per §4.2's formulas:
//
//	m = ceil(-n*ln(p) / ln(2)^2), clamped to <= MaxBloomBits
//	k = ceil((m/n)*ln(2)), clamped to [MinHashes, MaxHashes]
func NewBitSetBloomFilter(n uint64, p float64) *BitSetBloomFilter {
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
	if m > MaxBloomBits {
		m = MaxBloomBits
	}

	k := int(math.Ceil((float64(m) / float64(n)) * math.Ln2))
	if k < MinHashes {
		k = MinHashes
	}
	if k > MaxHashes {
		k = MaxHashes
	}

	words := (m + 63) / 64
	return &BitSetBloomFilter{
		bits: make([]uint64, words),
		m:    m,
		k:    k,
	}
}

// Add inserts a k-mer's membership into the filter.
func (f *BitSetBloomFilter) Add(kmer []byte) {
	for _, pos := range bloomPositions(kmer, f.k, f.m) {
		f.bits[pos/64] |= 1 << (pos % 64)
	}
	f.n++
}

// Contains reports whether kmer may be a member. A false result is
// certain; a true result is subject to the false positive rate.
func (f *BitSetBloomFilter) Contains(kmer []byte) bool {
	for _, pos := range bloomPositions(kmer, f.k, f.m) {
		if f.bits[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}
	return true
}

// NumHashes returns the number of hash functions k.
func (f *BitSetBloomFilter) NumHashes() int { return f.k }

// NumBits returns the number of bits m.
func (f *BitSetBloomFilter) NumBits() uint64 { return f.m }

// Inserted returns the number of items added so far.
func (f *BitSetBloomFilter) Inserted() uint64 { return f.n }

// MemoryBytes returns the filter's backing-store size in bytes.
func (f *BitSetBloomFilter) MemoryBytes() int64 { return int64(len(f.bits)) * 8 }

// EstimatedFalsePositiveRate reports the filter's live false positive
// estimate, (1 - e^(-kn/m))^k, per §4.2.
func (f *BitSetBloomFilter) EstimatedFalsePositiveRate() float64 {
	if f.m == 0 {
		return 1
	}
	exponent := -float64(f.k) * float64(f.n) / float64(f.m)
	return math.Pow(1-math.Exp(exponent), float64(f.k))
}

// EstimateBloomBits returns the bit count m that NewBitSetBloomFilter
// would compute for n and p, without allocating, so callers can check
// the memory ceiling of §5 before construction.
func EstimateBloomBits(n uint64, p float64) uint64 {
	if n == 0 {
		n = 1
	}
	if p <= 0 {
		p = DefaultFalsePositiveRate
	}
	m := uint64(math.Ceil(-float64(n) * math.Log(p) / (math.Ln2 * math.Ln2)))
	if m > MaxBloomBits {
		m = MaxBloomBits
	}
	return m
}
