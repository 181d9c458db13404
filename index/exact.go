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

// exactKmerSet is C4: a hash-based set over packed k-mer codes (for
// 15-mers) plus a hash-based map from code to saturating occurrence
// count (for 7-mers). Deterministic under equal inputs, since Go map
// iteration order never affects membership or count lookups.
type exactKmerSet struct {
	k15 map[uint64]struct{}
	k7  map[uint64]uint8
}

func newExactKmerSet() *exactKmerSet {
	return &exactKmerSet{
		k15: make(map[uint64]struct{}),
		k7:  make(map[uint64]uint8),
	}
}

func (s *exactKmerSet) addK15(kmer []byte) {
	code, err := Encode(kmer)
	if err != nil {
		return
	}
	s.k15[code] = struct{}{}
}

func (s *exactKmerSet) addK7(kmer []byte) {
	code, err := Encode(kmer)
	if err != nil {
		return
	}
	if s.k7[code] < 100 {
		s.k7[code]++
	}
}

// addK15Code and addK7Code take an already-packed code, for callers
// that roll the code forward with EncodeFromFormerKmer instead of
// re-encoding the raw bytes at every position.
func (s *exactKmerSet) addK15Code(code uint64) {
	s.k15[code] = struct{}{}
}

func (s *exactKmerSet) addK7Code(code uint64) {
	if s.k7[code] < 100 {
		s.k7[code]++
	}
}

func (s *exactKmerSet) containsK15(kmer []byte) bool {
	code, err := Encode(kmer)
	if err != nil {
		return false
	}
	_, ok := s.k15[code]
	return ok
}

// count7 returns the exact occurrence count, clamped at 100 (§3).
func (s *exactKmerSet) count7(kmer []byte) int {
	code, err := Encode(kmer)
	if err != nil {
		return 0
	}
	return int(s.k7[code])
}

func (s *exactKmerSet) numK15() int { return len(s.k15) }
func (s *exactKmerSet) numK7() int  { return len(s.k7) }

// sortedK15Codes returns the 15-mer codes in ascending order, for
// delta-encoded serialization (see serialization.go).
func (s *exactKmerSet) sortedK15Codes() []uint64 {
	codes := make([]uint64, 0, len(s.k15))
	for c := range s.k15 {
		codes = append(codes, c)
	}
	sortUint64s(codes)
	return codes
}

// sortedK7Entries returns the 7-mer codes in ascending order together
// with their saturating counts, for delta-encoded serialization.
func (s *exactKmerSet) sortedK7Entries() (codes []uint64, counts []uint8) {
	codes = make([]uint64, 0, len(s.k7))
	for c := range s.k7 {
		codes = append(codes, c)
	}
	sortUint64s(codes)
	counts = make([]uint8, len(codes))
	for i, c := range codes {
		counts[i] = s.k7[c]
	}
	return codes, counts
}
