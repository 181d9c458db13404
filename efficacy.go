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
	"strings"

	"github.com/will-rowe/nthash"
)

// ScoreEfficacy is the deterministic twelve-rule scorer of §4.7. It is
// a pure function of its arguments: no ambient randomness, no shared
// state.
func ScoreEfficacy(candidate []byte, species Species, foldRisk int) int {
	score := 50.0

	score += gcContentRule(candidate)
	score += positionSpecificRule(candidate)
	score += thermodynamicAsymmetryRule(candidate)
	score += threePrimeAURule(candidate)
	score += fivePrimePreferenceRule(candidate)
	score += position19Rule(candidate)
	score += dinucleotideEndpointsRule(candidate)
	score += repeatPenaltyRule(candidate)
	score += gQuadruplexRule(candidate)
	score -= float64(foldRisk) * 0.1
	score += speciesAdjustmentRule(candidate, species)
	score += deterministicVarianceRule(candidate)

	if score < 35 {
		score = 35
	}
	if score > 95 {
		score = 95
	}
	return int(score + 0.5)
}

func gcCount(candidate []byte) int {
	n := 0
	for _, b := range candidate {
		if b == 'G' || b == 'C' {
			n++
		}
	}
	return n
}

func isAU(b byte) bool { return b == 'A' || b == 'T' || b == 'U' }
func isGC(b byte) bool { return b == 'G' || b == 'C' }

// Rule 1: GC content.
func gcContentRule(candidate []byte) float64 {
	gc := float64(gcCount(candidate)) / float64(len(candidate)) * 100
	switch {
	case gc >= GCMin && gc <= GCMax:
		return 15 - 0.5*absf(gc-41)
	case gc >= 25 && gc <= 60:
		return 5
	case gc < 25:
		return -0.5 * (25 - gc)
	default:
		return -0.8 * (gc - 60)
	}
}

// Rule 2: position-specific nucleotide table (1-indexed).
func positionSpecificRule(candidate []byte) float64 {
	var score float64
	at := func(pos int) byte {
		if pos-1 < 0 || pos-1 >= len(candidate) {
			return 0
		}
		return candidate[pos-1]
	}

	switch b := at(1); {
	case isAU(b):
		score += 0
	case isGC(b):
		score -= 2
	}
	switch b := at(3); {
	case b == 'A':
		score += 3
	case b == 'T' || b == 'U':
		score += 1
	case isGC(b):
		score -= 1
	}
	switch b := at(7); {
	case b == 'A':
		score += 1
	case isGC(b):
		score -= 1
	}
	switch b := at(10); {
	case b == 'A':
		score += 3
	case b == 'T' || b == 'U':
		score += 2
	case isGC(b):
		score -= 2
	}
	switch b := at(13); {
	case isAU(b):
		score -= 1
	case b == 'G':
		score -= 2
	case b == 'C':
		score -= 1
	}
	switch b := at(19); {
	case b == 'A':
		score += 3
	case b == 'T' || b == 'U':
		score += 2
	case isGC(b):
		score -= 3
	}
	return score
}

func endEnergy(region []byte) float64 {
	var e float64
	for _, b := range region {
		if isAU(b) {
			e += -2
		} else if isGC(b) {
			e += -3
		}
	}
	return e
}

// Rule 3: thermodynamic asymmetry between the 5' and 3' ends.
func thermodynamicAsymmetryRule(candidate []byte) float64 {
	n := len(candidate)
	if n < 4 {
		return 0
	}
	fivePrime := endEnergy(candidate[:4])
	threePrime := endEnergy(candidate[n-4:])
	asymmetry := threePrime - fivePrime
	switch {
	case asymmetry > 2:
		return 8
	case asymmetry > 0:
		return 4
	case asymmetry < -2:
		return -6
	default:
		return 0
	}
}

// Rule 4: 3' A/U content over positions 15-19.
func threePrimeAURule(candidate []byte) float64 {
	start, end := 14, 19
	if end > len(candidate) {
		end = len(candidate)
	}
	if start >= end {
		return 0
	}
	count := 0
	for _, b := range candidate[start:end] {
		if isAU(b) {
			count++
		}
	}
	switch {
	case count >= 4:
		return 6
	case count == 3:
		return 3
	case count <= 1:
		return -5
	default:
		return 0
	}
}

// Rule 5: 5'-end preference.
func fivePrimePreferenceRule(candidate []byte) float64 {
	if len(candidate) == 0 {
		return 0
	}
	if isAU(candidate[0]) {
		return 5
	}
	return -3
}

// Rule 6: position 19 critical check.
func position19Rule(candidate []byte) float64 {
	if len(candidate) < 19 {
		return 0
	}
	b := candidate[18]
	switch {
	case isAU(b):
		return 4
	case b == 'G':
		return -5
	case b == 'C':
		return -3
	default:
		return 0
	}
}

var favorableDinucleotides = map[string]bool{
	"AA": true, "AU": true, "UA": true, "UU": true,
	"TT": true, "AT": true, "TA": true,
}

var unfavorableDinucleotidePenalty = map[string]float64{
	"GC": 1, "CG": 1, "GG": 2, "CC": 2,
}

// Rule 7: dinucleotide endpoints — the first dinucleotide and the two
// dinucleotides at the 3' end (positions 19-20 and 20-21).
func dinucleotideEndpointsRule(candidate []byte) float64 {
	n := len(candidate)
	if n < 2 {
		return 0
	}
	var score float64
	dinucs := []string{string(candidate[0:2])}
	if n >= 20 {
		dinucs = append(dinucs, string(candidate[18:20]))
	}
	if n >= 21 {
		dinucs = append(dinucs, string(candidate[19:21]))
	}
	for _, d := range dinucs {
		if favorableDinucleotides[d] {
			score += 2
		} else if penalty, ok := unfavorableDinucleotidePenalty[d]; ok {
			score -= penalty
		}
	}
	return score
}

// Rule 8: tandem-repeat and homopolymer-run penalty, capped at 20
// before being subtracted.
func repeatPenaltyRule(candidate []byte) float64 {
	penalty := 0.0

	s := string(candidate)
	for i := 0; i+4 <= len(s); i++ {
		pair := s[i : i+2]
		if pair == s[i+2:i+4] {
			if i+6 <= len(s) && pair == s[i+4:i+6] {
				penalty += 5
			} else {
				penalty += 2
			}
		}
	}
	for i := 0; i+6 <= len(s); i++ {
		triple := s[i : i+3]
		if triple == s[i+3:i+6] {
			penalty += 3
		}
	}

	runStart := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || s[i] != s[runStart] {
			runLen := i - runStart
			if runLen >= 4 {
				penalty += float64(2 * runLen)
			}
			runStart = i
		}
	}

	if penalty > 20 {
		penalty = 20
	}
	return -penalty
}

// Rule 9: G-quadruplex avoidance.
func gQuadruplexRule(candidate []byte) float64 {
	s := string(candidate)
	if strings.Contains(s, "GGGG") {
		return -10
	}
	if strings.Contains(s, "GGG") {
		return -3
	}
	return 0
}

// Rule 11: species-specific adjustment over positions 9-14.
func speciesAdjustmentRule(candidate []byte, species Species) float64 {
	if species != Lepidoptera && species != Coleoptera {
		return 0
	}
	start, end := 8, 14
	if end > len(candidate) {
		end = len(candidate)
	}
	if start >= end {
		return 0
	}
	gc := 0
	for _, b := range candidate[start:end] {
		if isGC(b) {
			gc++
		}
	}
	switch {
	case gc >= 4:
		return 4
	case gc <= 1:
		return -2
	default:
		return 0
	}
}

// Rule 12: deterministic variance from a 32-bit rolling hash, keeping
// the scorer pure while smoothing ties between otherwise-identical
// candidates. Uses nthash's one-shot Hash over the whole candidate as
// a single k=len(candidate) window rather than nthash's streaming
// hasher over a sliding series (see DESIGN.md for why the streaming
// form doesn't fit here).
func deterministicVarianceRule(candidate []byte) float64 {
	folded := foldUToT(candidate)
	hashes := nthash.Hash(folded, len(folded), 1, 0)
	if len(hashes) == 0 {
		return 0
	}
	frac := float64(hashes[0]%100) / 100
	return (frac - 0.5) * 4
}

func foldUToT(candidate []byte) []byte {
	out := make([]byte, len(candidate))
	for i, b := range candidate {
		if b == 'U' {
			out[i] = 'T'
		} else {
			out[i] = b
		}
	}
	return out
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
