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
	"encoding/json"
	"io"
	"time"

	gzip "github.com/klauspost/pgzip"

	"github.com/rnaiguard/rnaiguard/index"
)

// RunManifest is an audit record of one pipeline run: the inputs used,
// the config applied, and the outcome. It is not part of the core
// build_index/run_pipeline contract (§6); it exists purely so a caller
// can persist what produced a given candidate list.
type RunManifest struct {
	GeneratedAt    time.Time         `json:"generated_at"`
	Config         Config            `json:"config"`
	IndexStats     index.Stats       `json:"index_stats"`
	TargetLength   int               `json:"target_length"`
	Metrics        RejectionMetrics  `json:"metrics"`
	CandidateCount int               `json:"candidate_count"`
	Canceled       bool              `json:"canceled"`
}

// NewRunManifest assembles a manifest from a completed pipeline run.
func NewRunManifest(generatedAt time.Time, cfg Config, idx index.Index, targetLength int, result PipelineResult) RunManifest {
	return RunManifest{
		GeneratedAt:    generatedAt,
		Config:         cfg,
		IndexStats:     idx.Stats(),
		TargetLength:   targetLength,
		Metrics:        result.Metrics,
		CandidateCount: len(result.Candidates),
		Canceled:       result.Canceled,
	}
}

// WriteManifest writes m as gzip-compressed JSON to w, mirroring the
// teacher's outStream convention of wrapping a plain writer in a pgzip
// writer for transparent compression (unikmer/cmd/util-io.go).
func WriteManifest(w io.Writer, m RunManifest) error {
	gw := gzip.NewWriter(w)
	enc := json.NewEncoder(gw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		gw.Close()
		return err
	}
	return gw.Close()
}

// ReadManifest reads a manifest previously written by WriteManifest.
func ReadManifest(r io.Reader) (RunManifest, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return RunManifest{}, err
	}
	defer gr.Close()

	var m RunManifest
	if err := json.NewDecoder(gr).Decode(&m); err != nil {
		return RunManifest{}, err
	}
	return m, nil
}
