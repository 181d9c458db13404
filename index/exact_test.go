package index

import "testing"

func TestExactKmerSetK15(t *testing.T) {
	s := newExactKmerSet()
	kmer := []byte("ACGTACGTACGTACG") // 15 bases
	if s.containsK15(kmer) {
		t.Fatal("unexpected membership before add")
	}
	s.addK15(kmer)
	if !s.containsK15(kmer) {
		t.Fatal("expected membership after add")
	}
	if s.numK15() != 1 {
		t.Fatalf("numK15 = %d, want 1", s.numK15())
	}
}

func TestExactKmerSetK7Saturation(t *testing.T) {
	s := newExactKmerSet()
	kmer := []byte("ACGTACG") // 7 bases
	for i := 0; i < 150; i++ {
		s.addK7(kmer)
	}
	if got := s.count7(kmer); got != 100 {
		t.Fatalf("count7 = %d, want saturated at 100", got)
	}
}

func TestExactKmerSetRejectsIllegalBase(t *testing.T) {
	s := newExactKmerSet()
	kmer := []byte("ACGTNCGTACGTACG")
	s.addK15(kmer)
	if s.numK15() != 0 {
		t.Fatalf("expected N-containing k-mer to be rejected, numK15 = %d", s.numK15())
	}
	if s.containsK15(kmer) {
		t.Fatal("containsK15 should be false for rejected k-mer")
	}
}

func TestExactKmerSetSortedCodes(t *testing.T) {
	s := newExactKmerSet()
	s.addK15([]byte("TTTTTTTTTTTTTTT"))
	s.addK15([]byte("AAAAAAAAAAAAAAA"))
	s.addK15([]byte("CCCCCCCCCCCCCCC"))
	codes := s.sortedK15Codes()
	if len(codes) != 3 {
		t.Fatalf("len(codes) = %d, want 3", len(codes))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not strictly ascending at %d: %d >= %d", i, codes[i-1], codes[i])
		}
	}
}

func TestExactKmerSetSortedK7Entries(t *testing.T) {
	s := newExactKmerSet()
	s.addK7([]byte("AAAAAAA"))
	s.addK7([]byte("AAAAAAA"))
	s.addK7([]byte("CCCCCCC"))
	codes, counts := s.sortedK7Entries()
	if len(codes) != 2 || len(counts) != 2 {
		t.Fatalf("len(codes)=%d len(counts)=%d, want 2 and 2", len(codes), len(counts))
	}
	total := int(counts[0]) + int(counts[1])
	if total != 3 {
		t.Fatalf("total counts = %d, want 3", total)
	}
}
