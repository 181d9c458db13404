package index

import "testing"

func TestGroupVarintRoundTrip(t *testing.T) {
	cases := [][]uint64{
		nil,
		{5},
		{1, 2, 3},
		{0, 1, 300, 70000, 1 << 40, 1<<40 + 7},
		{10, 10, 10}, // duplicates collapse to zero deltas
	}
	for _, sorted := range cases {
		encoded := encodeGroupVarint(sorted)
		decoded := decodeGroupVarint(encoded, len(sorted))
		if len(decoded) != len(sorted) {
			t.Fatalf("len(decoded) = %d, want %d", len(decoded), len(sorted))
		}
		for i := range sorted {
			if decoded[i] != sorted[i] {
				t.Fatalf("case %v: decoded[%d] = %d, want %d", sorted, i, decoded[i], sorted[i])
			}
		}
	}
}

func TestGvByteLengthBoundaries(t *testing.T) {
	tests := []struct {
		n    uint64
		want uint8
	}{
		{0, 1},
		{255, 1},
		{256, 2},
		{1 << 56, 8},
		{^uint64(0), 8},
	}
	for _, tc := range tests {
		if got := gvByteLength(tc.n); got != tc.want {
			t.Fatalf("gvByteLength(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}
