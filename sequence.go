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

package rnaiguard

import (
	"bufio"
	"bytes"
	"io"
)

// Sequence is an immutable, validated, upper-cased nucleotide
// sequence over {A, C, G, T, U, N} (§3).
type Sequence struct {
	bytes []byte
}

// Bytes returns the raw sequence bytes. Callers must not mutate the
// returned slice; Sequence is immutable after validation.
func (s Sequence) Bytes() []byte { return s.bytes }

// Len returns the sequence length.
func (s Sequence) Len() int { return len(s.bytes) }

// ParseResult is the outcome of parsing and validating one FASTA
// input: the normalized sequence plus any non-fatal warnings.
type ParseResult struct {
	Sequence Sequence
	Warnings []string
}

// ParseFASTA reads FASTA-formatted bytes, discards header lines,
// concatenates and upper-cases the remaining sequence lines, and
// validates the result against §4.1.
//
// This is a hand-rolled scanner rather than a reuse of a general
// FASTA/FASTQ library: the spec's semantics (single concatenated
// sequence, strict {A,C,G,T,U,N} alphabet, no IUPAC degenerate-base
// folding) are narrower than what such libraries are built to do, and
// satisfying them on top of one would mean disabling most of its
// behavior. See DESIGN.md.
func ParseFASTA(r io.Reader) (ParseResult, error) {
	var buf bytes.Buffer
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '>' {
			continue
		}
		buf.Write(bytes.ToUpper(line))
	}
	if err := scanner.Err(); err != nil {
		return ParseResult{}, err
	}
	return Validate(buf.Bytes())
}

// Validate enforces §4.1's rules over already-normalized (upper-case,
// whitespace-stripped) bytes: non-empty, within [MinGenomeSize,
// MaxGenomeSize], and drawn entirely from AllowedNucleotides. A
// warning is attached when N makes up more than 5% of the first
// 1,000,000 bases.
func Validate(data []byte) (ParseResult, error) {
	if len(data) == 0 {
		return ParseResult{}, errValidationf("sequence is empty")
	}
	if len(data) < MinGenomeSize {
		return ParseResult{}, errValidationf("sequence length %d is below the minimum of %d", len(data), MinGenomeSize)
	}
	if len(data) > MaxGenomeSize {
		return ParseResult{}, errValidationf("sequence length %d exceeds the maximum of %d", len(data), MaxGenomeSize)
	}

	nCount := 0
	sampleLen := len(data)
	if sampleLen > 1_000_000 {
		sampleLen = 1_000_000
	}
	for i, b := range data {
		if !isAllowedBase(b) {
			return ParseResult{}, errValidationf("invalid base %q at position %d", b, i)
		}
		if i < sampleLen && b == 'N' {
			nCount++
		}
	}

	var warnings []string
	if float64(nCount)/float64(sampleLen) > 0.05 {
		warnings = append(warnings, "N content exceeds 5% of the first 1,000,000 bases")
	}

	return ParseResult{Sequence: Sequence{bytes: data}, Warnings: warnings}, nil
}

func isAllowedBase(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T', 'U', 'N':
		return true
	default:
		return false
	}
}

// isValidKmerByte reports whether b may appear in a countable k-mer
// (§3: "a k-mer is valid if every byte is in {A, C, G, T, U}"; N
// makes the whole k-mer invalid and it is skipped by indexers).
func isValidKmerByte(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T', 'U':
		return true
	default:
		return false
	}
}

// isValidKmer reports whether every byte of kmer is a valid k-mer
// byte.
func isValidKmer(kmer []byte) bool {
	for _, b := range kmer {
		if !isValidKmerByte(b) {
			return false
		}
	}
	return true
}

// ReverseComplement returns the reverse complement of seq, mapping
// U to A the same as T (§3, §9 "Reverse complement of U"). Bytes
// outside {A,C,G,T,U} are passed through unchanged (reversed only),
// so ReverseComplement(ReverseComplement(s)) == s holds for any
// sequence without U; a U comes back as T, matching P5.
func ReverseComplement(seq []byte) []byte {
	out := make([]byte, len(seq))
	n := len(seq)
	for i, b := range seq {
		out[n-1-i] = complementBase(b)
	}
	return out
}

func complementBase(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'T', 'U':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	default:
		return b
	}
}
