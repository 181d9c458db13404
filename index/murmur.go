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

import "github.com/spaolacci/murmur3"

// baseHashes returns the two independent 32-bit hashes that the
// bit-set and counting Bloom filters derive their k probe positions
// from by double hashing (§4.2): one MurmurHash3 hash seeded with 0,
// and another seeded with the first.
func baseHashes(data []byte) (h1, h2 uint32) {
	h1 = murmur3.Sum32WithSeed(data, 0)
	h2 = murmur3.Sum32WithSeed(data, h1)
	return h1, h2
}

// bloomPositions generates the k probe positions for data into a
// table of m slots via double hashing: hi = (h1 + i*h2) mod m.
func bloomPositions(data []byte, k int, m uint64) []uint64 {
	h1, h2 := baseHashes(data)
	positions := make([]uint64, k)
	a, b := uint64(h1), uint64(h2)
	for i := 0; i < k; i++ {
		positions[i] = (a + uint64(i)*b) % m
	}
	return positions
}
