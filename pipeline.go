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
	"github.com/twotwotwo/sorts/sortutil"

	"github.com/rnaiguard/rnaiguard/index"
)

const safetyPassThreshold = 75.0
const foldRiskRejectThreshold = 50

// RunPipeline scans target with a sliding 21-nt window against idx,
// applying the quality -> safety -> folding -> efficacy filter chain
// of §4.9 and returning the surviving candidates ranked by efficacy.
//
// progress is invoked at most every 100 windows; cancel is polled at
// the same cadence. Both may be nil.
func RunPipeline(target []byte, idx index.Index, cfg Config, progress index.ProgressFunc, cancel index.CancelFunc) PipelineResult {
	scanLimit := len(target) - SiRNALength
	if scanLimit > ScanLimit {
		scanLimit = ScanLimit
	}
	if scanLimit < 0 {
		scanLimit = 0
	}

	var result PipelineResult

	for i := 0; i < scanLimit; i++ {
		if i%100 == 0 {
			if progress != nil {
				progress(float64(i)/float64(scanLimit), "scan")
			}
			if cancel != nil && cancel() {
				result.Canceled = true
				result.Candidates = nil
				return result
			}
		}

		window := target[i : i+SiRNALength]

		if !windowInAlphabet(window) {
			result.Metrics.DataQuality++
			continue
		}

		safety := AnalyzeSafety(window, idx)
		if !safety.IsSafe || safety.OverallSafetyScore < safetyPassThreshold {
			result.Metrics.Safety++
			continue
		}

		foldRisk := ScoreFoldRisk(window)
		if foldRisk > foldRiskRejectThreshold {
			result.Metrics.Folding++
			continue
		}

		efficacy := ScoreEfficacy(window, cfg.Species, foldRisk)
		if efficacy < cfg.EfficacyThreshold {
			result.Metrics.Efficacy++
			continue
		}

		result.Candidates = append(result.Candidates, Candidate{
			Sequence:       string(window),
			Position:       i,
			GCContent:      gcFraction(window),
			MatchLength:    safety.MatchLength,
			Efficacy:       efficacy,
			FoldRisk:       foldRisk,
			SafetyScore:    safety.OverallSafetyScore,
			Seed:           safety.Seed,
			HasSeedMatch:   safety.HasSeedMatch,
			SeedMatchCount: safety.SeedMatchCount,
			HasPalindrome:  safety.HasPalindrome,
			PalindromeLen:  safety.PalindromeLength,
			HasCpG:         safety.HasCpG,
			HasPolyRun:     safety.HasPolyRun,
			Status:         safety.Status,
			RiskFactors:    safety.RiskFactors,
			SafetyNotes:    safety.Notes,
		})
	}

	if progress != nil {
		progress(1, "scan")
	}

	rankCandidates(result.Candidates)

	return result
}

// rankCandidates orders candidates by descending efficacy, breaking
// ties by ascending position, using the same parallel radix sort
// index/sort.go uses for k-mer codes rather than a comparison sort:
// each candidate collapses to one composite uint64 key, (inverted
// efficacy << 32) | position, so that ascending key order is exactly
// descending-efficacy/ascending-position order.
func rankCandidates(candidates []Candidate) {
	if len(candidates) < 2 {
		return
	}

	const efficacyCeiling = 1000 // comfortably above the [35,95] clamp range

	byPosition := make(map[int]Candidate, len(candidates))
	keys := make([]uint64, len(candidates))
	for i, c := range candidates {
		byPosition[c.Position] = c
		inverted := uint64(efficacyCeiling - c.Efficacy)
		keys[i] = (inverted << 32) | uint64(uint32(c.Position))
	}

	sortutil.Uint64s(keys)

	for i, k := range keys {
		position := int(uint32(k))
		candidates[i] = byPosition[position]
	}
}

func windowInAlphabet(window []byte) bool {
	for _, b := range window {
		if !isAllowedBase(b) {
			return false
		}
	}
	return true
}

func gcFraction(window []byte) float64 {
	return float64(gcCount(window)) / float64(len(window)) * 100
}
