package index

import (
	"bytes"
	"strings"
	"testing"
)

func repeatSeq(unit string, times int) []byte {
	return []byte(strings.Repeat(unit, times))
}

func TestGenomeIndexerBuildExactSmall(t *testing.T) {
	genome := repeatSeq("ACGTACGTACGTACGTACGTACGTACGTACGT", 10)
	g := NewGenomeIndexer(0, RetainFull)
	idx, err := g.Build(genome)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if idx.Variant() != VariantExact {
		t.Fatalf("Variant() = %v, want exact", idx.Variant())
	}
	if present, _ := idx.Contains15(genome[:15]); !present {
		t.Fatal("expected the genome's own leading 15-mer to be present")
	}
	if present, _ := idx.Contains15([]byte("GGGGGGGGGGGGGGG")); present {
		t.Fatal("unrelated 15-mer should not be present")
	}
	stats := idx.Stats()
	if stats.SourceLength != int64(len(genome)) {
		t.Fatalf("SourceLength = %d, want %d", stats.SourceLength, len(genome))
	}
}

func TestGenomeIndexerBuildProbabilisticLarge(t *testing.T) {
	genome := bytes.Repeat([]byte("ACGT"), (LargeFileThreshold/4)+100)
	g := NewGenomeIndexer(0, RetainFull)
	idx, err := g.Build(genome)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if idx.Variant() != VariantProbabilistic {
		t.Fatalf("Variant() = %v, want probabilistic", idx.Variant())
	}
	if present, _ := idx.Contains15(genome[:15]); !present {
		t.Fatal("expected a genome-derived 15-mer to register as present")
	}
}

func TestGenomeIndexerMemoryCeiling(t *testing.T) {
	genome := bytes.Repeat([]byte("ACGT"), (LargeFileThreshold/4)+100)
	g := NewGenomeIndexer(1, RetainFull) // impossibly small ceiling
	_, err := g.Build(genome)
	if err == nil {
		t.Fatal("expected memory ceiling error")
	}
	if _, ok := err.(*ErrMemoryCeiling); !ok {
		t.Fatalf("err = %T, want *ErrMemoryCeiling", err)
	}
}

func TestGenomeIndexerCancel(t *testing.T) {
	genome := bytes.Repeat([]byte("ACGT"), 2_000_000/4)
	calls := 0
	g := NewGenomeIndexer(0, RetainFull)
	g.Cancel = func() bool {
		calls++
		return calls > 1
	}
	_, err := g.Build(genome)
	if err != ErrBuildCanceled {
		t.Fatalf("err = %v, want ErrBuildCanceled", err)
	}
}

func TestGenomeIndexerGCContent(t *testing.T) {
	genome := repeatSeq("GCGCGCGCGCGCGCGCGCGCGCGCGCGCGCGC", 5)
	g := NewGenomeIndexer(0, RetainFull)
	idx, err := g.Build(genome)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if gc := idx.Stats().GCContent; gc < 99 {
		t.Fatalf("GCContent = %f, want ~100", gc)
	}
}

func TestGenomeIndexerGCContentNoDoubleCountAtChunkBoundary(t *testing.T) {
	prefix := bytes.Repeat([]byte("A"), ChunkSize)
	suffix := bytes.Repeat([]byte("G"), 300)
	genome := append(prefix, suffix...)

	g := NewGenomeIndexer(0, RetainFull)
	idx, err := g.Build(genome)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := float64(len(suffix)) / float64(len(genome)) * 100
	got := idx.Stats().GCContent
	if diff := got - want; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("GCContent = %v, want %v (chunk overlap bytes must not be double-counted)", got, want)
	}
}

func TestGenomeIndexerCount7NoDoubleCountAtChunkBoundary(t *testing.T) {
	marker := []byte("GCATGCA")
	genome := make([]byte, 0, ChunkSize+300)
	genome = append(genome, bytes.Repeat([]byte("A"), ChunkSize-len(marker))...)
	genome = append(genome, marker...) // ends exactly at ChunkSize, inside the next chunk's overlap
	genome = append(genome, bytes.Repeat([]byte("A"), 300)...)

	g := NewGenomeIndexer(0, RetainFull)
	idx, err := g.Build(genome)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := idx.Count7(marker); got != 1 {
		t.Fatalf("Count7(%q) = %d, want 1 (a window straddling the chunk overlap must not be counted twice)", marker, got)
	}
}

func TestGenomeIndexerFingerprintDeterministic(t *testing.T) {
	genome := repeatSeq("ACGTACGTACGTACGTACGTACGTACGTACGT", 10)
	g1 := NewGenomeIndexer(0, RetainFull)
	g2 := NewGenomeIndexer(0, RetainFull)
	idx1, err := g1.Build(genome)
	if err != nil {
		t.Fatal(err)
	}
	idx2, err := g2.Build(genome)
	if err != nil {
		t.Fatal(err)
	}
	if idx1.Stats().Fingerprint != idx2.Stats().Fingerprint {
		t.Fatal("fingerprint should be deterministic for identical input")
	}
}
