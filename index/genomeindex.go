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

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
)

// ErrBuildCanceled is returned by Build when the caller's CancelFunc
// reported true before the build finished.
var ErrBuildCanceled = errors.New("rnaiguard: index build canceled")

// ErrMemoryCeiling is returned by Build when the estimated memory
// footprint of the requested index variant would exceed the caller's
// ceiling (§5).
type ErrMemoryCeiling struct {
	Estimated int64
	Ceiling   int64
}

func (e *ErrMemoryCeiling) Error() string {
	return fmt.Sprintf("rnaiguard: resource: estimated index memory %d bytes exceeds ceiling %d bytes", e.Estimated, e.Ceiling)
}

// Stats summarizes a built index, independent of its variant (§4.5,
// §6).
type Stats struct {
	Variant        Variant
	SourceLength   int64
	NumK15         int
	NumK7          int
	GCContent      float64
	Fingerprint    uint64
	RetentionMode  RetentionMode
	MemoryEstimate int64
}

// Index is the interface both the exact and probabilistic genome
// indices satisfy (§4.4, §4.5).
type Index interface {
	// Contains15 reports whether the 15-mer (exactly len 15) appears to
	// be present in the non-target genome, and whether that answer is
	// confirmed. The exact variant's answer is always confirmed. The
	// probabilistic variant's positives are confirmed by an exact
	// substring search against the retained sequence or samples when
	// available; a positive that cannot be checked this way is reported
	// present but unconfirmed (§4.6 Layer 1).
	Contains15(kmer []byte) (present, confirmed bool)

	// Count7 reports an occurrence count for the 7-mer (exactly len 7).
	// The exact variant's count is clamped at 100. For the probabilistic
	// variant this is the counting Bloom filter's conservative estimate,
	// which saturates at 255.
	Count7(kmer []byte) int

	// CountSubstring reports how many times sub occurs in the retained
	// non-target sequence (§4.6 Layers 1 and 3). For the probabilistic
	// variant with no full retained copy, it falls back to searching
	// the retained samples; with neither, it reports 0.
	CountSubstring(sub []byte) int

	Variant() Variant
	Stats() Stats
}

// GenomeIndexer builds an Index from a non-target genome in bounded,
// cooperatively-yielding chunks (§4.5).
type GenomeIndexer struct {
	MemCeilingBytes int64
	Retention       RetentionMode
	Progress        ProgressFunc
	Cancel          CancelFunc
}

// NewGenomeIndexer returns a GenomeIndexer with the given ceiling and
// retention policy; Progress and Cancel are optional and may be left
// nil.
func NewGenomeIndexer(memCeilingBytes int64, retention RetentionMode) *GenomeIndexer {
	return &GenomeIndexer{
		MemCeilingBytes: memCeilingBytes,
		Retention:       retention,
	}
}

// Build scans genome in ChunkSize windows with ChunkOverlap trailing
// bases carried forward so no k-mer straddling a chunk boundary is
// missed, selecting the exact variant for inputs at or below
// LargeFileThreshold and the probabilistic variant above it (§4.5).
func (g *GenomeIndexer) Build(genome []byte) (Index, error) {
	n := len(genome)
	variant := VariantExact
	if n > LargeFileThreshold {
		variant = VariantProbabilistic
	}

	estimated := g.estimateMemory(n, variant)
	if g.MemCeilingBytes > 0 && estimated > g.MemCeilingBytes {
		return nil, &ErrMemoryCeiling{Estimated: estimated, Ceiling: g.MemCeilingBytes}
	}

	switch variant {
	case VariantExact:
		return g.buildExact(genome)
	default:
		return g.buildProbabilistic(genome)
	}
}

// estimateMemory gives a conservative pre-allocation estimate (§5): a
// rough k-mer-count upper bound from sequence length drives either the
// exact map sizing or the Bloom bit/byte sizing.
func (g *GenomeIndexer) estimateMemory(n int, variant Variant) int64 {
	approxKmers := uint64(n)
	if n < 0 {
		approxKmers = 0
	}
	switch variant {
	case VariantExact:
		// Two maps (15-mer set, 7-mer count map); budget ~24 bytes/entry
		// for the runtime's hash map bucket overhead.
		return int64(approxKmers) * 24 * 2
	default:
		bloomBits := EstimateBloomBits(approxKmers, DefaultFalsePositiveRate)
		countingBytes := EstimateCountingBloomBytes(approxKmers, DefaultFalsePositiveRate)
		est := int64(bloomBits/8) + int64(countingBytes)
		if g.Retention == RetainFull {
			est += int64(n)
		}
		return est
	}
}

func (g *GenomeIndexer) buildExact(genome []byte) (Index, error) {
	set := newExactKmerSet()
	gc := newGCCounter()
	fp := xxhash.New()

	n := len(genome)
	pos := 0
	for pos < n {
		end := pos + ChunkSize
		if end > n {
			end = n
		}
		chunk := genome[pos:end]
		overlap := 0
		if pos > 0 {
			overlap = ChunkOverlap
		}
		gc.add(chunk[gcSkip(overlap, len(chunk)):])
		fp.Write(chunk)
		scanChunkK15K7(chunk, overlap, set)

		if g.Progress != nil {
			g.Progress(float64(end)/float64(n), "indexing")
		}
		if g.Cancel != nil && g.Cancel() {
			return nil, ErrBuildCanceled
		}

		if end == n {
			break
		}
		pos = end - ChunkOverlap
		if pos < 0 {
			pos = 0
		}
	}

	idx := &ExactGenomeIndex{
		set:      set,
		retained: genome,
		stats: Stats{
			Variant:       VariantExact,
			SourceLength:  int64(n),
			NumK15:        set.numK15(),
			NumK7:         set.numK7(),
			GCContent:     gc.fraction(),
			Fingerprint:   fp.Sum64(),
			RetentionMode: RetainFull,
		},
	}
	idx.stats.MemoryEstimate = g.estimateMemory(n, VariantExact)
	return idx, nil
}

func (g *GenomeIndexer) buildProbabilistic(genome []byte) (Index, error) {
	n := len(genome)
	approxKmers := uint64(n)

	bloom15 := NewBitSetBloomFilter(approxKmers, DefaultFalsePositiveRate)
	counting7 := NewCountingBloomFilter(approxKmers, DefaultFalsePositiveRate)
	gc := newGCCounter()
	fp := xxhash.New()

	var retained []byte
	var samples [][]byte
	retention := g.Retention
	if retention == RetainFull {
		// The caller already holds the full sequence in memory (chunking
		// here exists for progress reporting and cancellation points,
		// not to bound our own footprint), so retention is a reference
		// to the same backing array rather than a rebuilt copy.
		retained = genome
	}

	pos := 0
	for pos < n {
		end := pos + ChunkSize
		if end > n {
			end = n
		}
		chunk := genome[pos:end]
		overlap := 0
		if pos > 0 {
			overlap = ChunkOverlap
		}
		gc.add(chunk[gcSkip(overlap, len(chunk)):])
		fp.Write(chunk)
		scanChunkBloom(chunk, overlap, bloom15, counting7)

		if retention == RetainSamples {
			samples = append(samples, sampleChunk(chunk))
		}

		if g.Progress != nil {
			g.Progress(float64(end)/float64(n), "indexing")
		}
		if g.Cancel != nil && g.Cancel() {
			return nil, ErrBuildCanceled
		}

		if end == n {
			break
		}
		pos = end - ChunkOverlap
		if pos < 0 {
			pos = 0
		}
	}

	idx := &ProbabilisticGenomeIndex{
		bloom15:   bloom15,
		counting7: counting7,
		retained:  retained,
		samples:   samples,
		stats: Stats{
			Variant:       VariantProbabilistic,
			SourceLength:  int64(n),
			GCContent:     gc.fraction(),
			Fingerprint:   fp.Sum64(),
			RetentionMode: retention,
		},
	}
	idx.stats.MemoryEstimate = g.estimateMemory(n, VariantProbabilistic)
	return idx, nil
}

// gcSkip returns the number of leading bytes of chunk to exclude from
// nucleotide counting: the trailing overlap bytes carried over from
// the previous chunk were already counted there, so counting them
// again here would double-count every base within ChunkOverlap of a
// chunk boundary (§4.5 step 3).
func gcSkip(overlap, chunkLen int) int {
	if overlap > chunkLen {
		return chunkLen
	}
	return overlap
}

// newWindowStart returns the local offset into a chunk of length
// chunkLen at which length-k windows are "new": windows starting
// earlier were already fully contained in the previous chunk (whose
// trailing overlap bytes prefix this one) and so were already scanned
// there. overlap is 0 for the first chunk, where every window is new.
func newWindowStart(overlap, k, chunkLen int) int {
	skip := overlap - k + 1
	if skip < 0 {
		skip = 0
	}
	if skip > chunkLen {
		skip = chunkLen
	}
	return skip
}

// scanChunkK15K7 slides across chunk adding every valid (no illegal
// base) 15-mer and 7-mer to set, rolling each window forward with
// EncodeFromFormerKmer rather than re-encoding k bytes from scratch at
// every position. Windows wholly contained in the previous chunk's
// overlap region are skipped so each k-mer occurrence is counted once.
func scanChunkK15K7(chunk []byte, overlap int, set *exactKmerSet) {
	rollKmerCodes(chunk[newWindowStart(overlap, K15, len(chunk)):], K15, set.addK15Code)
	rollKmerCodes(chunk[newWindowStart(overlap, K7, len(chunk)):], K7, set.addK7Code)
}

// rollKmerCodes computes the packed code of every valid, contiguous
// k-mer in chunk in O(len(chunk)) total, emitting each via emit. A
// byte outside {A,C,G,T,U} breaks the current window; accumulation
// restarts at the following byte, matching Encode's all-or-nothing
// rejection of illegal bases (§3, §4.4).
func rollKmerCodes(chunk []byte, k int, emit func(code uint64)) {
	if k <= 0 || len(chunk) < k {
		return
	}
	var code uint64
	run := 0
	for _, b := range chunk {
		next, ok := EncodeFromFormerKmer(k, code, b)
		if !ok {
			code, run = 0, 0
			continue
		}
		code = next
		if run < k {
			run++
		}
		if run == k {
			emit(code)
		}
	}
}

// scanChunkBloom mirrors scanChunkK15K7's boundary handling for the
// probabilistic variant: windows already scanned as part of the
// previous chunk's overlap are skipped.
func scanChunkBloom(chunk []byte, overlap int, bloom15 *BitSetBloomFilter, counting7 *CountingBloomFilter) {
	for i := newWindowStart(overlap, K15, len(chunk)); i+K15 <= len(chunk); i++ {
		kmer := chunk[i : i+K15]
		if isValidKmerBytes(kmer) {
			bloom15.Add(kmer)
		}
	}
	for i := newWindowStart(overlap, K7, len(chunk)); i+K7 <= len(chunk); i++ {
		kmer := chunk[i : i+K7]
		if isValidKmerBytes(kmer) {
			counting7.Add(kmer)
		}
	}
}

func isValidKmerBytes(kmer []byte) bool {
	for _, b := range kmer {
		switch b {
		case 'A', 'C', 'G', 'T', 'U':
		default:
			return false
		}
	}
	return true
}

// sampleChunk keeps a small representative slice of a chunk for the
// RetainSamples policy: its first 4*K15 (60) bases, sufficient for spot
// verification without retaining the full genome (§9 Open Question).
func sampleChunk(chunk []byte) []byte {
	n := K15 * 4
	if len(chunk) < n {
		n = len(chunk)
	}
	out := make([]byte, n)
	copy(out, chunk[:n])
	return out
}

type gcCounter struct {
	gc    int64
	total int64
}

func newGCCounter() *gcCounter { return &gcCounter{} }

func (c *gcCounter) add(chunk []byte) {
	for _, b := range chunk {
		switch b {
		case 'G', 'C':
			c.gc++
			c.total++
		case 'A', 'T', 'U':
			c.total++
		}
	}
}

func (c *gcCounter) fraction() float64 {
	if c.total == 0 {
		return 0
	}
	return float64(c.gc) / float64(c.total) * 100
}

// ExactGenomeIndex is the exact-k-mer-set backed Index variant used
// for non-target genomes at or below LargeFileThreshold (§4.4).
type ExactGenomeIndex struct {
	set      *exactKmerSet
	retained []byte
	stats    Stats
}

func (idx *ExactGenomeIndex) Contains15(kmer []byte) (present, confirmed bool) {
	if len(kmer) != K15 {
		return false, true
	}
	return idx.set.containsK15(kmer), true
}

func (idx *ExactGenomeIndex) Count7(kmer []byte) int {
	if len(kmer) != K7 {
		return 0
	}
	return idx.set.count7(kmer)
}

// CountSubstring counts occurrences of sub in the retained non-target
// sequence. The exact variant always retains it: the genomes it is
// built from are already bounded at LargeFileThreshold.
func (idx *ExactGenomeIndex) CountSubstring(sub []byte) int {
	if len(sub) == 0 || idx.retained == nil {
		return 0
	}
	return bytes.Count(idx.retained, sub)
}

func (idx *ExactGenomeIndex) Variant() Variant { return VariantExact }
func (idx *ExactGenomeIndex) Stats() Stats     { return idx.stats }

// ProbabilisticGenomeIndex is the Bloom-filter-backed Index variant
// used for non-target genomes above LargeFileThreshold (§4.5).
type ProbabilisticGenomeIndex struct {
	bloom15   *BitSetBloomFilter
	counting7 *CountingBloomFilter
	retained  []byte   // present when RetentionMode is RetainFull
	samples   [][]byte // present when RetentionMode is RetainSamples
	stats     Stats
}

func (idx *ProbabilisticGenomeIndex) Contains15(kmer []byte) (present, confirmed bool) {
	if len(kmer) != K15 || !isValidKmerBytes(kmer) {
		return false, true
	}
	if !idx.bloom15.Contains(kmer) {
		return false, true
	}
	if idx.retained != nil {
		return bytes.Contains(idx.retained, kmer), true
	}
	for _, s := range idx.samples {
		if bytes.Contains(s, kmer) {
			return true, true
		}
	}
	if idx.samples != nil {
		// Samples were retained but none confirmed the hit: the Bloom
		// filter's positive stands unconfirmed (§4.6 Layer 1).
		return true, false
	}
	// No retained sequence or samples to confirm against at all.
	return true, false
}

func (idx *ProbabilisticGenomeIndex) Count7(kmer []byte) int {
	if len(kmer) != K7 || !isValidKmerBytes(kmer) {
		return 0
	}
	return idx.counting7.Count(kmer)
}

// CountSubstring counts occurrences of sub in the retained non-target
// sequence when one was kept, falling back to the retained samples
// (summed across each) otherwise (§9 Open Question).
func (idx *ProbabilisticGenomeIndex) CountSubstring(sub []byte) int {
	if len(sub) == 0 {
		return 0
	}
	if idx.retained != nil {
		return bytes.Count(idx.retained, sub)
	}
	count := 0
	for _, s := range idx.samples {
		count += bytes.Count(s, sub)
	}
	return count
}

func (idx *ProbabilisticGenomeIndex) Variant() Variant { return VariantProbabilistic }
func (idx *ProbabilisticGenomeIndex) Stats() Stats     { return idx.stats }
