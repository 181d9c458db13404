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

import "errors"

// ErrIllegalBase means a byte outside {A,C,G,T,U} was seen where a
// valid k-mer byte was required.
var ErrIllegalBase = errors.New("rnaiguard: illegal base")

// ErrKOverflow means k is outside [1, 32]: a k-mer this long does not
// fit in a uint64 2-bit code. Both K15 and K7 fit comfortably.
var ErrKOverflow = errors.New("rnaiguard: k (1-32) overflow")

// Encode packs a k-mer into a uint64, two bits per base:
//
//	A  00
//	C  01
//	G  10
//	T  11
//	U  11 (treated identically to T, per §3)
//
// Unlike the degenerate-base folding used elsewhere in the k-mer
// toolkit this package descends from, Encode here rejects any byte
// outside {A,C,G,T,U} rather than silently mapping it to A: an N (or
// anything else) makes the whole k-mer invalid and it must be skipped
// by the caller (§3), never silently counted.
func Encode(kmer []byte) (code uint64, err error) {
	k := len(kmer)
	if k == 0 || k > 32 {
		return 0, ErrKOverflow
	}
	for i := range kmer {
		b, ok := baseCode(kmer[k-1-i])
		if !ok {
			return 0, ErrIllegalBase
		}
		code |= b << uint(i*2)
	}
	return code, nil
}

func baseCode(b byte) (uint64, bool) {
	switch b {
	case 'A':
		return 0, true
	case 'C':
		return 1, true
	case 'G':
		return 2, true
	case 'T', 'U':
		return 3, true
	default:
		return 0, false
	}
}

// EncodeFromFormerKmer computes the code of kmer given the code of
// the immediately preceding consecutive k-mer (same k, offset by one
// base), avoiding an O(k) re-encode on each slide. Adapted from the
// teacher's MustEncodeFromFormerKmer; used by scanChunkK15K7 to roll
// the K15/K7 windows across a chunk in O(1) per position.
func EncodeFromFormerKmer(k int, leftCode uint64, newBase byte) (uint64, bool) {
	b, ok := baseCode(newBase)
	if !ok {
		return 0, false
	}
	mask := uint64(1)<<uint(k*2) - 1
	return ((leftCode << 2) | b) & mask, true
}
