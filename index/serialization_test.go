package index

import (
	"bytes"
	"strings"
	"testing"
)

func TestSerializationRoundTripExact(t *testing.T) {
	genome := []byte(strings.Repeat("ACGTACGTACGTACGTACGTACGTACGTACGT", 10))
	g := NewGenomeIndexer(0, RetainFull)
	idx, err := g.Build(genome)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, idx); err != nil {
		t.Fatalf("Write: %v", err)
	}

	readBack, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if readBack.Variant() != VariantExact {
		t.Fatalf("Variant() = %v, want exact", readBack.Variant())
	}
	if present, _ := readBack.Contains15(genome[:15]); !present {
		t.Fatal("expected round-tripped index to retain membership of a known 15-mer")
	}
	if present, _ := readBack.Contains15([]byte("GGGGGGGGGGGGGGG")); present {
		t.Fatal("unrelated 15-mer should not be present after round trip")
	}
	if readBack.Stats().SourceLength != idx.Stats().SourceLength {
		t.Fatalf("SourceLength mismatch after round trip: got %d, want %d",
			readBack.Stats().SourceLength, idx.Stats().SourceLength)
	}
	if got, want := readBack.CountSubstring(genome[:21]), idx.CountSubstring(genome[:21]); got != want {
		t.Fatalf("CountSubstring after round trip = %d, want %d (retained sequence must survive serialization)", got, want)
	}
	if readBack.CountSubstring(genome[:21]) == 0 {
		t.Fatal("CountSubstring after round trip returned 0 for a substring known to occur")
	}
}

func TestSerializationRoundTripProbabilistic(t *testing.T) {
	genome := bytes.Repeat([]byte("ACGT"), (LargeFileThreshold/4)+100)
	g := NewGenomeIndexer(0, RetainFull)
	idx, err := g.Build(genome)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, idx); err != nil {
		t.Fatalf("Write: %v", err)
	}

	readBack, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if readBack.Variant() != VariantProbabilistic {
		t.Fatalf("Variant() = %v, want probabilistic", readBack.Variant())
	}
	if present, _ := readBack.Contains15(genome[:15]); !present {
		t.Fatal("expected round-tripped probabilistic index to retain membership")
	}
}

func TestSerializationRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBufferString("not an rnaiguard index file at all......")
	if _, err := Read(buf); err != ErrInvalidIndexFileFormat {
		t.Fatalf("err = %v, want ErrInvalidIndexFileFormat", err)
	}
}
