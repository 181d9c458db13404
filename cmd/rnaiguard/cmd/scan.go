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

package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/shenwei356/stable"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"

	"github.com/rnaiguard/rnaiguard"
	"github.com/rnaiguard/rnaiguard/index"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "scan a target transcript for RNAi candidates",
	Long: `scan a target transcript for RNAi candidates

Slides a 21-nt window across the target, screens each window against
a pre-built non-target index, scores the survivors, and writes a
ranked CSV candidate list.
`,
	Run: func(cmd *cobra.Command, args []string) {
		targetFile := getFlagString(cmd, "target")
		indexFile := getFlagString(cmd, "index")
		outFile := getFlagString(cmd, "out-file")
		manifestFile := getFlagString(cmd, "manifest")
		threshold := getFlagInt(cmd, "threshold")
		species := rnaiguard.Species(getFlagString(cmd, "species"))
		top := getFlagInt(cmd, "top")

		if targetFile == "" || indexFile == "" || outFile == "" {
			checkError(fmt.Errorf("flags --target, --index and --out-file are required"))
		}
		checkInFile("--target", targetFile)
		checkInFile("--index", indexFile)

		cfg := rnaiguard.DefaultConfig()
		if threshold > 0 {
			cfg.EfficacyThreshold = threshold
		}
		if species != "" {
			cfg.Species = species
		}
		checkError(errors.Wrap(cfg.Validate(), "config"))

		targetfh, err := xopen.Ropen(targetFile)
		checkError(errors.Wrap(err, "opening target file"))
		defer targetfh.Close()

		parsed, err := rnaiguard.ParseFASTA(targetfh)
		checkError(errors.Wrap(err, "parsing target FASTA"))

		indexfh, err := xopen.Ropen(indexFile)
		checkError(errors.Wrap(err, "opening index file"))
		defer indexfh.Close()

		idx, err := index.Read(indexfh)
		checkError(errors.Wrap(err, "reading index"))

		progress := func(fraction float64, phase string) {
			if verbose {
				log.Infof("%s: %.1f%%", phase, fraction*100)
			}
		}

		result := rnaiguard.RunPipeline(parsed.Sequence.Bytes(), idx, cfg, progress, nil)
		log.Infof("scan complete: %d candidate(s), %d rejected (safety %d, folding %d, efficacy %d, data-quality %d)",
			len(result.Candidates), result.Metrics.Total(),
			result.Metrics.Safety, result.Metrics.Folding, result.Metrics.Efficacy, result.Metrics.DataQuality)

		writeCandidateCSV(outFile, result.Candidates)

		if len(result.Candidates) > 0 {
			printSummaryTable(result.Candidates, top)
		}

		if manifestFile != "" {
			m := rnaiguard.NewRunManifest(time.Now(), cfg, idx, parsed.Sequence.Len(), result)
			writeManifestFile(manifestFile, m)
		}
	},
}

func init() {
	RootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringP("target", "t", "", "target transcript FASTA file, optionally gzipped")
	scanCmd.Flags().StringP("index", "x", "", "non-target index file produced by 'rnaiguard index'")
	scanCmd.Flags().StringP("out-file", "o", "", "output candidate CSV file")
	scanCmd.Flags().StringP("manifest", "", "", "optional gzip-compressed JSON run manifest output path")
	scanCmd.Flags().IntP("threshold", "", 0, "efficacy threshold override, in [50, 99] (default from config)")
	scanCmd.Flags().StringP("species", "", "", "species adjustment: Lepidoptera, Coleoptera, or Generic")
	scanCmd.Flags().IntP("top", "", 10, "number of top candidates to print in the summary table")
}

// writeCandidateCSV follows the exact field order and two-decimal
// float formatting of the candidate serialization contract.
func writeCandidateCSV(outFile string, candidates []rnaiguard.Candidate) {
	f, err := os.Create(outFile)
	checkError(errors.Wrap(err, "creating CSV output"))
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"sequence", "position", "efficiency", "safety_score", "gc_content",
		"status", "match_length", "fold_risk", "seed", "has_seed_match",
		"has_palindrome", "palindrome_length", "has_cpg_motif", "has_poly_run",
	}
	checkError(w.Write(header))

	for _, c := range candidates {
		row := []string{
			c.Sequence,
			strconv.Itoa(c.Position),
			strconv.Itoa(c.Efficacy),
			strconv.FormatFloat(c.SafetyScore, 'f', 2, 64),
			strconv.FormatFloat(c.GCContent, 'f', 2, 64),
			string(c.Status),
			strconv.Itoa(c.MatchLength),
			strconv.Itoa(c.FoldRisk),
			c.Seed,
			strconv.FormatBool(c.HasSeedMatch),
			strconv.FormatBool(c.HasPalindrome),
			strconv.Itoa(c.PalindromeLen),
			strconv.FormatBool(c.HasCpG),
			strconv.FormatBool(c.HasPolyRun),
		}
		checkError(w.Write(row))
	}
}

// printSummaryTable renders the top N candidates as a fixed-width
// table, the way unikmer's info/stats commands render summaries with
// github.com/shenwei356/stable.
func printSummaryTable(candidates []rnaiguard.Candidate, top int) {
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}

	style := &stable.TableStyle{
		Name:      "plain",
		HeaderRow: stable.RowStyle{Begin: "", Sep: "  ", End: ""},
		DataRow:   stable.RowStyle{Begin: "", Sep: "  ", End: ""},
		Padding:   "",
	}
	columns := []stable.Column{
		{Header: "position", Align: stable.AlignRight},
		{Header: "efficiency", Align: stable.AlignRight},
		{Header: "safety_score", Align: stable.AlignRight},
		{Header: "status", Align: stable.AlignLeft},
	}

	tbl := stable.New()
	tbl.HeaderWithFormat(columns)
	for _, c := range candidates[:top] {
		tbl.AddRow([]interface{}{
			c.Position,
			c.Efficacy,
			strconv.FormatFloat(c.SafetyScore, 'f', 2, 64),
			string(c.Status),
		})
	}
	os.Stdout.Write(tbl.Render(style))
}

func writeManifestFile(path string, m rnaiguard.RunManifest) {
	f, err := os.Create(path)
	checkError(errors.Wrap(err, "creating manifest file"))
	defer f.Close()
	checkError(errors.Wrap(rnaiguard.WriteManifest(f, m), "writing manifest"))
	log.Infof("run manifest written to %s", path)
}
