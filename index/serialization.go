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
	"encoding/binary"
	"errors"
	"io"
)

// FormatVersion is the on-disk index format version.
const FormatVersion uint8 = 1

// Magic identifies an rnaiguard index file.
var Magic = [8]byte{'r', 'n', 'a', 'i', 'g', 'd', 'x', '1'}

// ErrInvalidIndexFileFormat means the magic number didn't match.
var ErrInvalidIndexFileFormat = errors.New("rnaiguard: invalid index file format")

// ErrUnsupportedFormatVersion means the file's format version is newer
// or older than this build understands.
var ErrUnsupportedFormatVersion = errors.New("rnaiguard: unsupported index format version")

var be = binary.BigEndian

// Write serializes idx to w in the rnaiguard index format: an 8-byte
// magic number, a 1-byte format version, a 1-byte variant tag, the
// variant-specific body, and finally the shared Stats trailer.
//
//	exact body:          u32 numK15, u32 encLen15, [groupvarint K15 codes],
//	                      u32 numK7, u32 encLen7, [groupvarint K7 codes][u8 counts],
//	                      u64 retainedLen, [retained bytes]
//	probabilistic body:   u64 m15, u8 k15, u64 numWords, [bloom bits],
//	                      u64 m7, u8 k7, [counting bytes],
//	                      u8 retentionMode, then either
//	                      u64 retainedLen, [retained bytes]            (full)
//	                      or u32 numSamples, {u32 len, [sample bytes]}  (samples)
//	stats trailer:        i64 sourceLength, f64 gcContent, u64 fingerprint
func Write(w io.Writer, idx Index) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, be, FormatVersion); err != nil {
		return err
	}
	if err := binary.Write(w, be, uint8(idx.Variant())); err != nil {
		return err
	}

	switch v := idx.(type) {
	case *ExactGenomeIndex:
		if err := writeExactBody(w, v); err != nil {
			return err
		}
	case *ProbabilisticGenomeIndex:
		if err := writeProbabilisticBody(w, v); err != nil {
			return err
		}
	default:
		return errors.New("rnaiguard: unknown index implementation")
	}

	return writeStats(w, idx.Stats())
}

func writeExactBody(w io.Writer, idx *ExactGenomeIndex) error {
	codes15 := idx.set.sortedK15Codes()
	if err := binary.Write(w, be, uint32(len(codes15))); err != nil {
		return err
	}
	enc15 := encodeGroupVarint(codes15)
	if err := binary.Write(w, be, uint32(len(enc15))); err != nil {
		return err
	}
	if _, err := w.Write(enc15); err != nil {
		return err
	}

	codes7, counts7 := idx.set.sortedK7Entries()
	if err := binary.Write(w, be, uint32(len(codes7))); err != nil {
		return err
	}
	enc7 := encodeGroupVarint(codes7)
	if err := binary.Write(w, be, uint32(len(enc7))); err != nil {
		return err
	}
	if _, err := w.Write(enc7); err != nil {
		return err
	}
	if _, err := w.Write(counts7); err != nil {
		return err
	}

	if err := binary.Write(w, be, uint64(len(idx.retained))); err != nil {
		return err
	}
	if _, err := w.Write(idx.retained); err != nil {
		return err
	}
	return nil
}

func writeProbabilisticBody(w io.Writer, idx *ProbabilisticGenomeIndex) error {
	if err := binary.Write(w, be, idx.bloom15.m); err != nil {
		return err
	}
	if err := binary.Write(w, be, uint8(idx.bloom15.k)); err != nil {
		return err
	}
	if err := binary.Write(w, be, uint64(len(idx.bloom15.bits))); err != nil {
		return err
	}
	if err := binary.Write(w, be, idx.bloom15.bits); err != nil {
		return err
	}

	if err := binary.Write(w, be, idx.counting7.m); err != nil {
		return err
	}
	if err := binary.Write(w, be, uint8(idx.counting7.k)); err != nil {
		return err
	}
	if _, err := w.Write(idx.counting7.counters); err != nil {
		return err
	}

	retention := idx.stats.RetentionMode
	if err := binary.Write(w, be, uint8(retention)); err != nil {
		return err
	}
	if retention == RetainFull {
		if err := binary.Write(w, be, uint64(len(idx.retained))); err != nil {
			return err
		}
		if _, err := w.Write(idx.retained); err != nil {
			return err
		}
	} else {
		if err := binary.Write(w, be, uint32(len(idx.samples))); err != nil {
			return err
		}
		for _, s := range idx.samples {
			if err := binary.Write(w, be, uint32(len(s))); err != nil {
				return err
			}
			if _, err := w.Write(s); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeStats(w io.Writer, s Stats) error {
	if err := binary.Write(w, be, s.SourceLength); err != nil {
		return err
	}
	if err := binary.Write(w, be, s.GCContent); err != nil {
		return err
	}
	return binary.Write(w, be, s.Fingerprint)
}

// Read deserializes an Index previously written by Write.
func Read(r io.Reader) (Index, error) {
	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, ErrInvalidIndexFileFormat
	}

	var version, variantTag uint8
	if err := binary.Read(r, be, &version); err != nil {
		return nil, err
	}
	if version != FormatVersion {
		return nil, ErrUnsupportedFormatVersion
	}
	if err := binary.Read(r, be, &variantTag); err != nil {
		return nil, err
	}

	switch Variant(variantTag) {
	case VariantExact:
		return readExact(r)
	case VariantProbabilistic:
		return readProbabilistic(r)
	default:
		return nil, ErrInvalidIndexFileFormat
	}
}

func readExact(r io.Reader) (Index, error) {
	set := newExactKmerSet()

	var numK15, encLen15 uint32
	if err := binary.Read(r, be, &numK15); err != nil {
		return nil, err
	}
	if err := binary.Read(r, be, &encLen15); err != nil {
		return nil, err
	}
	enc15 := make([]byte, encLen15)
	if _, err := io.ReadFull(r, enc15); err != nil {
		return nil, err
	}
	for _, code := range decodeGroupVarint(enc15, int(numK15)) {
		set.k15[code] = struct{}{}
	}

	var numK7, encLen7 uint32
	if err := binary.Read(r, be, &numK7); err != nil {
		return nil, err
	}
	if err := binary.Read(r, be, &encLen7); err != nil {
		return nil, err
	}
	enc7 := make([]byte, encLen7)
	if _, err := io.ReadFull(r, enc7); err != nil {
		return nil, err
	}
	counts7 := make([]byte, numK7)
	if _, err := io.ReadFull(r, counts7); err != nil {
		return nil, err
	}
	codes7 := decodeGroupVarint(enc7, int(numK7))
	for i, code := range codes7 {
		set.k7[code] = uint8(counts7[i])
	}

	var retainedLen uint64
	if err := binary.Read(r, be, &retainedLen); err != nil {
		return nil, err
	}
	retained := make([]byte, retainedLen)
	if _, err := io.ReadFull(r, retained); err != nil {
		return nil, err
	}

	idx := &ExactGenomeIndex{
		set:      set,
		retained: retained,
		stats: Stats{
			Variant:       VariantExact,
			NumK15:        int(numK15),
			NumK7:         int(numK7),
			RetentionMode: RetainFull,
		},
	}
	if err := readStats(r, &idx.stats); err != nil {
		return nil, err
	}
	return idx, nil
}

func readProbabilistic(r io.Reader) (Index, error) {
	bloom := &BitSetBloomFilter{}
	if err := binary.Read(r, be, &bloom.m); err != nil {
		return nil, err
	}
	var k8 uint8
	if err := binary.Read(r, be, &k8); err != nil {
		return nil, err
	}
	bloom.k = int(k8)
	var numWords uint64
	if err := binary.Read(r, be, &numWords); err != nil {
		return nil, err
	}
	bloom.bits = make([]uint64, numWords)
	if err := binary.Read(r, be, bloom.bits); err != nil {
		return nil, err
	}

	counting := &CountingBloomFilter{}
	if err := binary.Read(r, be, &counting.m); err != nil {
		return nil, err
	}
	if err := binary.Read(r, be, &k8); err != nil {
		return nil, err
	}
	counting.k = int(k8)
	counting.counters = make([]uint8, counting.m)
	if _, err := io.ReadFull(r, counting.counters); err != nil {
		return nil, err
	}

	var retentionTag uint8
	if err := binary.Read(r, be, &retentionTag); err != nil {
		return nil, err
	}
	retention := RetentionMode(retentionTag)

	idx := &ProbabilisticGenomeIndex{
		bloom15:   bloom,
		counting7: counting,
	}

	if retention == RetainFull {
		var n uint64
		if err := binary.Read(r, be, &n); err != nil {
			return nil, err
		}
		idx.retained = make([]byte, n)
		if _, err := io.ReadFull(r, idx.retained); err != nil {
			return nil, err
		}
	} else {
		var numSamples uint32
		if err := binary.Read(r, be, &numSamples); err != nil {
			return nil, err
		}
		idx.samples = make([][]byte, numSamples)
		for i := range idx.samples {
			var n uint32
			if err := binary.Read(r, be, &n); err != nil {
				return nil, err
			}
			idx.samples[i] = make([]byte, n)
			if _, err := io.ReadFull(r, idx.samples[i]); err != nil {
				return nil, err
			}
		}
	}

	idx.stats = Stats{Variant: VariantProbabilistic, RetentionMode: retention}
	if err := readStats(r, &idx.stats); err != nil {
		return nil, err
	}
	return idx, nil
}

func readStats(r io.Reader, s *Stats) error {
	if err := binary.Read(r, be, &s.SourceLength); err != nil {
		return err
	}
	if err := binary.Read(r, be, &s.GCContent); err != nil {
		return err
	}
	return binary.Read(r, be, &s.Fingerprint)
}
