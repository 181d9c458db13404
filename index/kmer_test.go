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
	"testing"
)

func TestEncodeRejectsN(t *testing.T) {
	if _, err := Encode([]byte("ACGTN")); err != ErrIllegalBase {
		t.Errorf("expected ErrIllegalBase for an N-containing k-mer, got %v", err)
	}
}

func TestEncodeFoldsUToT(t *testing.T) {
	codeT, err := Encode([]byte("ACGT"))
	if err != nil {
		t.Fatal(err)
	}
	codeU, err := Encode([]byte("ACGU"))
	if err != nil {
		t.Fatal(err)
	}
	if codeT != codeU {
		t.Errorf("expected U to fold onto T's code point, got %d != %d", codeT, codeU)
	}
}

func TestEncodeFromFormerKmer(t *testing.T) {
	seq := []byte("ACGTACGTACGT")
	k := 5
	prev, err := Encode(seq[0:k])
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i+k <= len(seq); i++ {
		want, err := Encode(seq[i : i+k])
		if err != nil {
			t.Fatal(err)
		}
		got, ok := EncodeFromFormerKmer(k, prev, seq[i+k-1])
		if !ok {
			t.Fatalf("unexpected false from EncodeFromFormerKmer at %d", i)
		}
		if got != want {
			t.Errorf("incremental encode mismatch at %d: got %d want %d", i, got, want)
		}
		prev = got
	}
}

func TestKOverflow(t *testing.T) {
	big := make([]byte, 33)
	for i := range big {
		big[i] = 'A'
	}
	if _, err := Encode(big); err != ErrKOverflow {
		t.Errorf("expected ErrKOverflow, got %v", err)
	}
}
