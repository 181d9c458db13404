package rnaiguard

import (
	"reflect"
	"strings"
	"testing"

	"github.com/rnaiguard/rnaiguard/index"
)

func buildPipelineIndex(t *testing.T, nonTarget string) index.Index {
	t.Helper()
	g := index.NewGenomeIndexer(0, index.RetainFull)
	idx, err := g.Build([]byte(nonTarget))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return idx
}

// Scenario 1: toxic rejection.
func TestRunPipelineToxicRejection(t *testing.T) {
	nonTarget := strings.Repeat("A", 15) + strings.Repeat("CGTACGT", 2000)
	idx := buildPipelineIndex(t, nonTarget)
	target := []byte(strings.Repeat("A", 24))

	result := RunPipeline(target, idx, DefaultConfig(), nil, nil)

	if result.Metrics.Safety < 1 {
		t.Fatalf("metrics.safety = %d, want >= 1", result.Metrics.Safety)
	}
	for _, c := range result.Candidates {
		if strings.Contains(c.Sequence, strings.Repeat("A", 15)) {
			t.Fatalf("candidate %q contains the excluded 15-mer", c.Sequence)
		}
	}
}

// Scenario 2: invalid alphabet quarantine.
func TestRunPipelineInvalidAlphabetQuarantine(t *testing.T) {
	nonTarget := strings.Repeat("ACGTACGTACGTACGTACGTACGTACGTACGT", 50)
	idx := buildPipelineIndex(t, nonTarget)
	target := []byte(strings.Repeat("A", 100) + "X" + strings.Repeat("A", 1000))

	result := RunPipeline(target, idx, DefaultConfig(), nil, nil)

	if result.Metrics.DataQuality == 0 {
		t.Fatal("expected at least one data_quality rejection for the window overlapping X")
	}
	for _, c := range result.Candidates {
		if strings.Contains(c.Sequence, "X") {
			t.Fatalf("candidate %q should never contain the invalid byte", c.Sequence)
		}
	}
}

// Scenario 4: hairpin block.
func TestRunPipelineHairpinBlock(t *testing.T) {
	nonTarget := strings.Repeat("ACGTACGTACGTACGTACGTACGTACGTACGT", 50)
	idx := buildPipelineIndex(t, nonTarget)
	// The leading 21-mer "AATT"+13×G+"AATT" has matching first-4-bytes
	// with its own reverse complement, forcing fold_risk = 100.
	target := []byte("AATT" + strings.Repeat("G", 13) + "AATT" + strings.Repeat("C", 40))

	result := RunPipeline(target, idx, DefaultConfig(), nil, nil)

	if result.Metrics.Folding == 0 {
		t.Fatal("expected at least one folding rejection for the hairpin-forming window")
	}
}

// P1, P2, P3: invariant properties over the output.
func TestRunPipelineInvariants(t *testing.T) {
	nonTarget := strings.Repeat("ACGTACGTACGTACGTACGTACGTACGTACGT", 200)
	idx := buildPipelineIndex(t, nonTarget)
	target := []byte(strings.Repeat("ATGCGTGAGTGCATCTCCATCGGGCAATTGCA", 10))

	cfg := DefaultConfig()
	result := RunPipeline(target, idx, cfg, nil, nil)

	scanLimit := len(target) - SiRNALength
	if scanLimit > ScanLimit {
		scanLimit = ScanLimit
	}
	total := result.Metrics.Total() + len(result.Candidates)
	if total != scanLimit {
		t.Fatalf("P3: metrics total + |output| = %d, want %d", total, scanLimit)
	}

	for i, c := range result.Candidates {
		if len(c.Sequence) != SiRNALength {
			t.Fatalf("P1: candidate %d sequence length = %d, want %d", i, len(c.Sequence), SiRNALength)
		}
		if c.MatchLength >= index.K15 {
			t.Fatalf("P1: candidate %d match_length = %d, want < %d", i, c.MatchLength, index.K15)
		}
		if c.SafetyScore < safetyPassThreshold {
			t.Fatalf("P1: candidate %d safety_score = %f, want >= %f", i, c.SafetyScore, safetyPassThreshold)
		}
		if c.FoldRisk > foldRiskRejectThreshold {
			t.Fatalf("P1: candidate %d fold_risk = %d, want <= %d", i, c.FoldRisk, foldRiskRejectThreshold)
		}
		if c.Efficacy < cfg.EfficacyThreshold {
			t.Fatalf("P1: candidate %d efficacy = %d, want >= %d", i, c.Efficacy, cfg.EfficacyThreshold)
		}
		if i > 0 {
			prev := result.Candidates[i-1]
			if c.Efficacy > prev.Efficacy || (c.Efficacy == prev.Efficacy && c.Position < prev.Position) {
				t.Fatalf("P2: candidates not sorted correctly at index %d", i)
			}
		}
	}
}

// P4: determinism with the exact index.
func TestRunPipelineDeterministic(t *testing.T) {
	nonTarget := strings.Repeat("ACGTACGTACGTACGTACGTACGTACGTACGT", 200)
	idx := buildPipelineIndex(t, nonTarget)
	target := []byte(strings.Repeat("ATGCGTGAGTGCATCTCCATCGGGCAATTGCA", 10))
	cfg := DefaultConfig()

	first := RunPipeline(target, idx, cfg, nil, nil)
	second := RunPipeline(target, idx, cfg, nil, nil)

	if len(first.Candidates) != len(second.Candidates) {
		t.Fatalf("non-deterministic candidate count: %d vs %d", len(first.Candidates), len(second.Candidates))
	}
	for i := range first.Candidates {
		if !reflect.DeepEqual(first.Candidates[i], second.Candidates[i]) {
			t.Fatalf("non-deterministic candidate at %d: %+v vs %+v", i, first.Candidates[i], second.Candidates[i])
		}
	}
	if first.Metrics != second.Metrics {
		t.Fatalf("non-deterministic metrics: %+v vs %+v", first.Metrics, second.Metrics)
	}
}

func TestRunPipelineCancellation(t *testing.T) {
	nonTarget := strings.Repeat("ACGTACGTACGTACGTACGTACGTACGTACGT", 200)
	idx := buildPipelineIndex(t, nonTarget)
	target := []byte(strings.Repeat("ATGCGTGAGTGCATCTCCATCGGGCAATTGCA", 50))

	result := RunPipeline(target, idx, DefaultConfig(), nil, func() bool { return true })

	if !result.Canceled {
		t.Fatal("expected Canceled to be true")
	}
	if len(result.Candidates) != 0 {
		t.Fatal("a canceled run should return an empty candidate list")
	}
}

func TestRunPipelineScanLimit(t *testing.T) {
	nonTarget := strings.Repeat("ACGTACGTACGTACGTACGTACGTACGTACGT", 200)
	idx := buildPipelineIndex(t, nonTarget)
	target := []byte(strings.Repeat("A", SiRNALength+10))

	result := RunPipeline(target, idx, DefaultConfig(), nil, nil)
	wantLimit := len(target) - SiRNALength
	if got := result.Metrics.Total() + len(result.Candidates); got != wantLimit {
		t.Fatalf("total windows processed = %d, want %d", got, wantLimit)
	}
}
