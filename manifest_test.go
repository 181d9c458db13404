package rnaiguard

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rnaiguard/rnaiguard/index"
)

func TestManifestRoundTrip(t *testing.T) {
	g := index.NewGenomeIndexer(0, index.RetainFull)
	idx, err := g.Build([]byte(strings.Repeat("ACGTACGTACGTACGTACGTACGTACGTACGT", 50)))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	cfg := DefaultConfig()
	result := PipelineResult{
		Metrics:    RejectionMetrics{Safety: 3, Folding: 1, Efficacy: 2, DataQuality: 0},
		Candidates: []Candidate{{Sequence: "ACGTACGTACGTACGTACGTA", Position: 0, Efficacy: 80}},
	}
	m := NewRunManifest(time.Unix(0, 0).UTC(), cfg, idx, 1000, result)

	var buf bytes.Buffer
	if err := WriteManifest(&buf, m); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	readBack, err := ReadManifest(&buf)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if readBack.CandidateCount != 1 {
		t.Fatalf("CandidateCount = %d, want 1", readBack.CandidateCount)
	}
	if readBack.Metrics != m.Metrics {
		t.Fatalf("Metrics = %+v, want %+v", readBack.Metrics, m.Metrics)
	}
	if readBack.TargetLength != 1000 {
		t.Fatalf("TargetLength = %d, want 1000", readBack.TargetLength)
	}
}

func TestReadManifestRejectsNonGzip(t *testing.T) {
	buf := bytes.NewBufferString("not gzip data")
	if _, err := ReadManifest(buf); err == nil {
		t.Fatal("expected an error reading non-gzip data as a manifest")
	}
}
