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

// Status classifies a candidate's safety disposition (§3, §4.6).
type Status string

const (
	Cleared     Status = "Cleared"
	SeedWarning Status = "Seed-Warning"
	Toxic       Status = "Toxic"
)

// Candidate is the record produced for each surviving 21-nt window
// (§3).
type Candidate struct {
	Sequence        string
	Position        int
	GCContent       float64
	MatchLength     int
	Efficacy        int
	FoldRisk        int
	SafetyScore     float64
	Seed            string
	HasSeedMatch    bool
	SeedMatchCount  int
	HasPalindrome   bool
	PalindromeLen   int
	HasCpG          bool
	HasPolyRun      bool
	Status          Status
	RiskFactors     []string
	SafetyNotes     []string
}

// RejectionMetrics counts, per filter stage, how many scanned windows
// were rejected there. Each rejected candidate increments exactly one
// counter: the first stage that failed it (§3, I4).
type RejectionMetrics struct {
	Safety      int
	Folding     int
	Efficacy    int
	DataQuality int
}

// Total returns the sum of all four counters.
func (m RejectionMetrics) Total() int {
	return m.Safety + m.Folding + m.Efficacy + m.DataQuality
}

// PipelineResult is the output of RunPipeline (§6).
type PipelineResult struct {
	Candidates []Candidate
	Metrics    RejectionMetrics
	Canceled   bool
}
