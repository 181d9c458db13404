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

package rnaiguard

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rnaiguard/rnaiguard/index"
)

// SafetyAnalysis is the full report produced by the safety analyzer
// for one candidate (§3).
type SafetyAnalysis struct {
	MatchLength            int
	SafetyMargin           int
	Seed                    string
	ReverseComplementSeed   string
	HasSeedMatch            bool
	SeedMatchCount          int
	ExtendedSeed            string
	HasExtendedSeedMatch    bool
	ExtendedSeedMatchCount  int
	HasPalindrome           bool
	PalindromeLength        int
	PalindromePosition      int
	HasCpG                  bool
	CpGCount                int
	HasPolyRun              bool
	PolyRunDetails          []string
	ImmuneMotifs            []string
	BiologicalRiskScore     float64
	OverallSafetyScore      float64
	IsSafe                  bool
	Status                  Status
	RiskFactors             []string
	Notes                   []string
}

var polyRuns = []string{"AAAA", "UUUU", "TTTT", "GGGG", "CCCC"}
var immuneMotifs = []string{"UGUGU", "GUCCUUCAA", "UGGC", "GCCA"}

// AnalyzeSafety runs the five-layer firewall of §4.6 against candidate
// (a 21-nt window) using idx, the built non-target index.
func AnalyzeSafety(candidate []byte, idx index.Index) SafetyAnalysis {
	var a SafetyAnalysis

	// Layer 1 — 15-mer exclusion (hard gate).
	confirmedHit, maxMatch, unconfirmedBloom := layer1ExactExclusion(candidate, idx)
	a.MatchLength = maxMatch
	a.SafetyMargin = index.K15 - maxMatch

	if confirmedHit {
		a.Status = Toxic
		a.OverallSafetyScore = 0
		a.IsSafe = false
		a.RiskFactors = append(a.RiskFactors, "confirmed 15-mer exact match in non-target")
		return a
	}

	// Layer 2 — seed region.
	seed := candidate[1:8]
	seedRC := ReverseComplement(seed)
	a.Seed = string(seed)
	a.ReverseComplementSeed = string(seedRC)
	seedCount := idx.Count7(seed) + idx.Count7(seedRC)
	seedRisk := seedRiskFor(seedCount)
	a.HasSeedMatch = seedCount > 0
	a.SeedMatchCount = seedCount
	if a.HasSeedMatch {
		a.RiskFactors = append(a.RiskFactors, fmt.Sprintf("seed region occurs %d time(s) in non-target (or its reverse complement)", seedCount))
	}

	// Layer 3 — extended seed. Skipped entirely for sample-only
	// probabilistic indices (§4.6 Layer 3).
	extSeed := candidate[1:13]
	extSeedRC := ReverseComplement(extSeed)
	a.ExtendedSeed = string(extSeed)
	if idx.Stats().RetentionMode != index.RetainSamples || idx.Variant() == index.VariantExact {
		if hit, count := extendedSeedMatch(extSeed, extSeedRC, idx); hit {
			a.HasExtendedSeedMatch = true
			a.ExtendedSeedMatchCount = count
			a.Notes = append(a.Notes, fmt.Sprintf("extended seed matched non-target %d time(s) (not scored, §9)", count))
		}
	}

	// Layer 4 — palindrome detection.
	palLen, palPos := longestPalindrome(candidate)
	a.HasPalindrome = palLen > 0
	a.PalindromeLength = palLen
	a.PalindromePosition = palPos
	palindromeRisk := palindromeRiskFor(palLen)
	if a.HasPalindrome {
		a.RiskFactors = append(a.RiskFactors, fmt.Sprintf("self-complementary run of length %d at position %d", palLen, palPos))
	}

	// Layer 5 — biological motifs.
	cpgCount := countCpG(candidate)
	hasCpG := cpgCount >= 3
	polyRunsFound := findPolyRuns(candidate)
	hasPolyRun := len(polyRunsFound) > 0
	immuneFound := findImmuneMotifs(candidate)

	var bioRisk float64
	if hasCpG {
		bioRisk += 20
		a.RiskFactors = append(a.RiskFactors, fmt.Sprintf("%d CpG dinucleotides", cpgCount))
	}
	if hasPolyRun {
		bioRisk += 25
		a.RiskFactors = append(a.RiskFactors, "poly-nucleotide run: "+strings.Join(polyRunsFound, ", "))
	}
	if len(immuneFound) > 0 {
		bioRisk += 30
		a.RiskFactors = append(a.RiskFactors, "immune-stimulatory motif: "+strings.Join(immuneFound, ", "))
	}

	a.CpGCount = cpgCount
	a.HasCpG = hasCpG
	a.HasPolyRun = hasPolyRun
	a.PolyRunDetails = polyRunsFound
	a.ImmuneMotifs = immuneFound
	a.BiologicalRiskScore = bioRisk

	// Aggregate score.
	score := 100.0
	switch {
	case maxMatch >= 14:
		score -= 40
	case maxMatch >= 12:
		score -= 20
	case maxMatch >= 10:
		score -= 10
	}
	if unconfirmedBloom {
		score -= 30
		a.Notes = append(a.Notes, "unconfirmed Bloom-filter positive on 15-mer exclusion")
	}
	score -= float64(seedRisk) * 0.30
	score -= float64(palindromeRisk) * 0.15
	score -= bioRisk * 0.10
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	a.OverallSafetyScore = score

	switch {
	case a.HasSeedMatch && seedRisk >= 50:
		a.Status = SeedWarning
	case score < 80:
		a.Status = SeedWarning
	default:
		a.Status = Cleared
	}
	a.IsSafe = true
	return a
}

// layer1ExactExclusion slides seven 15-nt windows across candidate
// (21 - 15 + 1 = 7), reports whether any is a confirmed non-target
// match, the maximum contiguous match length found by the
// descending-length substring search (14 down to 4), and whether an
// unconfirmed Bloom positive was seen.
func layer1ExactExclusion(candidate []byte, idx index.Index) (confirmed bool, maxMatch int, unconfirmedBloom bool) {
	for i := 0; i+index.K15 <= len(candidate); i++ {
		window := candidate[i : i+index.K15]
		present, isConfirmed := idx.Contains15(window)
		if present && isConfirmed {
			confirmed = true
		} else if present && !isConfirmed {
			unconfirmedBloom = true
		}
	}

	for length := 14; length >= 4; length-- {
		found := false
		for i := 0; i+length <= len(candidate); i++ {
			if idx.CountSubstring(candidate[i:i+length]) > 0 {
				found = true
				break
			}
		}
		if found {
			maxMatch = length
			break
		}
	}
	return confirmed, maxMatch, unconfirmedBloom
}

func seedRiskFor(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 10:
		return 15
	case count <= 50:
		return 30
	case count <= 100:
		return 50
	default:
		return 80
	}
}

func palindromeRiskFor(length int) int {
	switch {
	case length >= 8:
		return 60
	case length >= 6:
		return 30
	case length >= 4:
		return 10
	default:
		return 0
	}
}

// extendedSeedMatch performs an exact substring test for extSeed and
// its reverse complement against idx's retained sequence (§4.6 Layer
// 3), reporting the summed occurrence count.
func extendedSeedMatch(extSeed, extSeedRC []byte, idx index.Index) (bool, int) {
	count := idx.CountSubstring(extSeed) + idx.CountSubstring(extSeedRC)
	return count > 0, count
}

// longestPalindrome searches candidate for the longest contiguous
// subsequence (length 12 down to 4) equal to its own reverse
// complement, returning its length and 0-indexed start position.
func longestPalindrome(candidate []byte) (length, position int) {
	for l := 12; l >= 4; l-- {
		for i := 0; i+l <= len(candidate); i++ {
			sub := candidate[i : i+l]
			if bytes.Equal(sub, ReverseComplement(sub)) {
				return l, i
			}
		}
	}
	return 0, 0
}

func countCpG(candidate []byte) int {
	count := 0
	for i := 0; i+1 < len(candidate); {
		if candidate[i] == 'C' && candidate[i+1] == 'G' {
			count++
			i += 2
			continue
		}
		i++
	}
	return count
}

func findPolyRuns(candidate []byte) []string {
	s := string(candidate)
	var found []string
	for _, run := range polyRuns {
		if strings.Contains(s, run) {
			found = append(found, run)
		}
	}
	return found
}

func findImmuneMotifs(candidate []byte) []string {
	s := string(candidate)
	sU := strings.ReplaceAll(s, "T", "U")
	seen := make(map[string]bool)
	var found []string
	for _, motif := range immuneMotifs {
		if (strings.Contains(s, motif) || strings.Contains(sU, motif)) && !seen[motif] {
			seen[motif] = true
			found = append(found, motif)
		}
	}
	return found
}
