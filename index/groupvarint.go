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

// Group-varint pair encoding for sorted, delta-encoded k-mer code
// lists: two successive deltas are packed together behind a single
// 6-bit control byte naming each value's byte length (1-8), avoiding
// the one-control-byte-per-value overhead of a plain varint stream.

var gvOffsets = []uint8{56, 48, 40, 32, 24, 16, 8, 0}

// putUint64Pair encodes v1 and v2 into 2-16 bytes of buf, returning
// the control byte and the number of bytes written.
func putUint64Pair(buf []byte, v1, v2 uint64) (ctrl byte, n int) {
	blen := gvByteLength(v1)
	ctrl |= byte(blen - 1)
	for _, offset := range gvOffsets[8-blen:] {
		buf[n] = byte((v1 >> offset) & 0xff)
		n++
	}

	ctrl <<= 3
	blen = gvByteLength(v2)
	ctrl |= byte(blen - 1)
	for _, offset := range gvOffsets[8-blen:] {
		buf[n] = byte((v2 >> offset) & 0xff)
		n++
	}
	return
}

// getUint64Pair decodes the pair encoded by putUint64Pair given its
// control byte.
func getUint64Pair(ctrl byte, buf []byte) (values [2]uint64, n int) {
	blens := gvCtrlByteLengths[ctrl]
	if len(buf) < int(blens[0])+int(blens[1]) {
		return values, 0
	}
	for i := 0; i < 2; i++ {
		for j := uint8(0); j < blens[i]; j++ {
			values[i] <<= 8
			values[i] |= uint64(buf[n])
			n++
		}
	}
	return
}

func gvByteLength(n uint64) uint8 {
	switch {
	case n < 1<<8:
		return 1
	case n < 1<<16:
		return 2
	case n < 1<<24:
		return 3
	case n < 1<<32:
		return 4
	case n < 1<<40:
		return 5
	case n < 1<<48:
		return 6
	case n < 1<<56:
		return 7
	default:
		return 8
	}
}

// gvCtrlByteLengths maps every possible 6-bit control byte to the
// (v1, v2) byte lengths it encodes.
var gvCtrlByteLengths = func() [64][2]uint8 {
	var table [64][2]uint8
	for a := uint8(0); a < 8; a++ {
		for b := uint8(0); b < 8; b++ {
			table[a<<3|b] = [2]uint8{a + 1, b + 1}
		}
	}
	return table
}()

// encodeGroupVarint delta-encodes a sorted ascending slice of codes
// and packs the deltas two at a time via putUint64Pair. An odd final
// element is padded with a trailing zero delta, which decodeGroupVarint
// discards using the supplied count.
func encodeGroupVarint(sorted []uint64) []byte {
	count := len(sorted)
	if count == 0 {
		return nil
	}
	deltas := make([]uint64, count)
	var prev uint64
	for i, c := range sorted {
		deltas[i] = c - prev
		prev = c
	}

	out := make([]byte, 0, count*2)
	for i := 0; i < count; i += 2 {
		v1 := deltas[i]
		var v2 uint64
		if i+1 < count {
			v2 = deltas[i+1]
		}
		var buf [16]byte
		ctrl, n := putUint64Pair(buf[:], v1, v2)
		out = append(out, ctrl)
		out = append(out, buf[:n]...)
	}
	return out
}

// decodeGroupVarint reverses encodeGroupVarint, reconstructing exactly
// count ascending codes.
func decodeGroupVarint(data []byte, count int) []uint64 {
	codes := make([]uint64, 0, count)
	var prev uint64
	pos := 0
	for len(codes) < count {
		ctrl := data[pos]
		pos++
		values, n := getUint64Pair(ctrl, data[pos:])
		pos += n

		prev += values[0]
		codes = append(codes, prev)
		if len(codes) == count {
			break
		}
		prev += values[1]
		codes = append(codes, prev)
	}
	return codes
}
