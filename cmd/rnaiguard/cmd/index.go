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
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"

	"github.com/rnaiguard/rnaiguard"
	"github.com/rnaiguard/rnaiguard/index"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "build a non-target genome index for safety screening",
	Long: `build a non-target genome index for safety screening

Reads a FASTA non-target (off-target) genome, chooses the exact or
probabilistic index variant based on its length, and writes a binary
index file consumed by 'rnaiguard scan'.
`,
	Run: func(cmd *cobra.Command, args []string) {
		nonTargetFile := getFlagString(cmd, "non-target")
		outFile := getFlagString(cmd, "out-file")
		memCeiling := getFlagByteSize(cmd, "mem-ceiling")
		retainSamples := getFlagBool(cmd, "retain-samples")
		if memCeiling == 0 {
			memCeiling = rnaiguard.DefaultConfig().MemCeilingBytes
		}

		if nonTargetFile == "" {
			checkError(fmt.Errorf("flag --non-target is required"))
		}
		if outFile == "" {
			checkError(fmt.Errorf("flag --out-file is required"))
		}
		checkInFile("--non-target", nonTargetFile)

		infh, err := xopen.Ropen(nonTargetFile)
		checkError(errors.Wrap(err, "opening non-target file"))
		defer infh.Close()

		parsed, err := rnaiguard.ParseFASTA(infh)
		checkError(errors.Wrap(err, "parsing non-target FASTA"))
		for _, w := range parsed.Warnings {
			log.Warning(w)
		}

		retention := index.RetainFull
		if retainSamples {
			retention = index.RetainSamples
		}

		indexer := index.NewGenomeIndexer(memCeiling, retention)
		indexer.Progress = func(fraction float64, phase string) {
			if verbose {
				log.Infof("%s: %.1f%%", phase, fraction*100)
			}
		}

		idx, err := indexer.Build(parsed.Sequence.Bytes())
		checkError(errors.Wrap(err, "building index"))

		stats := idx.Stats()
		log.Infof("variant: %s, retention: %s, GC content: %.2f%%, memory estimate: %s",
			stats.Variant, stats.RetentionMode, stats.GCContent*100, humanize.Bytes(uint64(stats.MemoryEstimate)))

		outfh, err := xopen.Wopen(outFile)
		checkError(errors.Wrap(err, "creating index file"))
		defer outfh.Close()

		checkError(errors.Wrap(index.Write(outfh, idx), "writing index"))
		log.Infof("index written to %s", outFile)
	},
}

func init() {
	RootCmd.AddCommand(indexCmd)

	indexCmd.Flags().StringP("non-target", "n", "", "non-target (off-target) genome FASTA file, optionally gzipped")
	indexCmd.Flags().StringP("out-file", "o", "", "output index file")
	indexCmd.Flags().StringP("mem-ceiling", "m", "", "memory ceiling for the built index, e.g. 1GB (default 1GiB)")
	indexCmd.Flags().BoolP("retain-samples", "", false, "retain only representative samples of the non-target sequence instead of the full copy (probabilistic variant only)")
}
