package rnaiguard

import (
	"strings"
	"testing"

	"github.com/rnaiguard/rnaiguard/index"
)

func buildTestIndex(t *testing.T, genome string) index.Index {
	t.Helper()
	g := index.NewGenomeIndexer(0, index.RetainFull)
	idx, err := g.Build([]byte(genome))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return idx
}

func TestAnalyzeSafetyConfirmedToxic(t *testing.T) {
	nonTarget := strings.Repeat("A", 15) + strings.Repeat("CGT", 2000)
	idx := buildTestIndex(t, nonTarget)

	candidate := []byte(strings.Repeat("A", 21))
	a := AnalyzeSafety(candidate, idx)

	if a.Status != Toxic {
		t.Fatalf("Status = %v, want Toxic", a.Status)
	}
	if a.IsSafe {
		t.Fatal("IsSafe should be false for a Toxic candidate")
	}
	if a.OverallSafetyScore != 0 {
		t.Fatalf("OverallSafetyScore = %f, want 0", a.OverallSafetyScore)
	}
}

func TestAnalyzeSafetyClearedCandidate(t *testing.T) {
	nonTarget := strings.Repeat("ACGTACGTACGTACGTACGTACGTACGTACGT", 50)
	idx := buildTestIndex(t, nonTarget)

	// A candidate unrelated to the non-target's k-mer content.
	candidate := []byte("TTTTTGGGGGCCCCCAAAAAT")
	a := AnalyzeSafety(candidate, idx)

	if a.Status == Toxic {
		t.Fatal("unrelated candidate should not be Toxic")
	}
	if a.MatchLength >= index.K15 {
		t.Fatalf("MatchLength = %d, should be < 15 (I1)", a.MatchLength)
	}
	if a.SafetyMargin+a.MatchLength != index.K15 {
		t.Fatalf("safety_margin + match_length = %d, want %d (I2)", a.SafetyMargin+a.MatchLength, index.K15)
	}
}

func TestAnalyzeSafetyScenario7ArithmeticExample(t *testing.T) {
	// Mirrors the worked example: max_contiguous_match=13, seed_risk=30,
	// palindrome_risk=10, biological_risk=20, no confirmed hit ->
	// overall_safety_score = 100 - 20 - 9 - 1.5 - 2 = 67.5.
	score := 100.0
	score -= 20  // maxMatch >= 12 (13 falls in the 12-13 band)
	score -= 30 * 0.30
	score -= 10 * 0.15
	score -= 20 * 0.10
	if score != 67.5 {
		t.Fatalf("worked arithmetic = %f, want 67.5", score)
	}
}

func TestSeedRiskBuckets(t *testing.T) {
	cases := []struct {
		count int
		want  int
	}{
		{0, 0}, {1, 15}, {10, 15}, {11, 30}, {50, 30}, {51, 50}, {100, 50}, {101, 80},
	}
	for _, c := range cases {
		if got := seedRiskFor(c.count); got != c.want {
			t.Fatalf("seedRiskFor(%d) = %d, want %d", c.count, got, c.want)
		}
	}
}

func TestPalindromeRiskBuckets(t *testing.T) {
	cases := []struct {
		length int
		want   int
	}{
		{0, 0}, {3, 0}, {4, 10}, {5, 10}, {6, 30}, {7, 30}, {8, 60}, {12, 60},
	}
	for _, c := range cases {
		if got := palindromeRiskFor(c.length); got != c.want {
			t.Fatalf("palindromeRiskFor(%d) = %d, want %d", c.length, got, c.want)
		}
	}
}

func TestCountCpG(t *testing.T) {
	if got := countCpG([]byte("CGCGCGAAAA")); got != 3 {
		t.Fatalf("countCpG = %d, want 3 (non-overlapping)", got)
	}
	if got := countCpG([]byte("AAAAAAAAAAAAAAAAAAAAA")); got != 0 {
		t.Fatalf("countCpG = %d, want 0", got)
	}
}

func TestFindPolyRuns(t *testing.T) {
	found := findPolyRuns([]byte("ACGTAAAAACGTACGTACGT"))
	if len(found) != 1 || found[0] != "AAAA" {
		t.Fatalf("findPolyRuns = %v, want [AAAA]", found)
	}
}

func TestFindImmuneMotifsMatchesBothTAndU(t *testing.T) {
	foundT := findImmuneMotifs([]byte("AAAAATGGCAAAAAAAAAAA"))
	if len(foundT) == 0 {
		t.Fatal("expected UGGC-as-T (TGGC) to be found")
	}
	foundU := findImmuneMotifs([]byte("AAAAAUGGCAAAAAAAAAAA"))
	if len(foundU) == 0 {
		t.Fatal("expected UGGC to be found directly")
	}
}

func TestLongestPalindrome(t *testing.T) {
	// ACGT reverse-complemented is ACGT itself (A<->T, C<->G, reversed).
	candidate := []byte("GGGGGGGGGACGTGGGGGGG")
	length, pos := longestPalindrome(candidate)
	if length < 4 {
		t.Fatalf("expected a self-complementary run of at least 4, got %d at %d", length, pos)
	}
}
