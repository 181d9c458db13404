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
	"os"

	"github.com/shenwei356/go-logging"
	"github.com/spf13/cobra"

	"github.com/rnaiguard/rnaiguard"
)

// VERSION is the version the CLI reports, taken from the core
// library so the two never drift apart.
const VERSION = rnaiguard.VERSION

var log = logging.MustGetLogger("rnaiguard")

// RootCmd is the base command when rnaiguard is invoked with no
// subcommand.
var RootCmd = &cobra.Command{
	Use:   "rnaiguard",
	Short: "RNAi guide-strand candidate design engine",
	Long: fmt.Sprintf(`rnaiguard - RNAi candidate design engine

Scans a target transcript for 21-nt siRNA/guide-strand candidates,
screens each against a non-target (off-target) genome index for
regulatory-grade exclusion, and ranks the survivors by a deterministic
efficacy score.

Version: %s

`, VERSION),
}

// Execute runs the root command, exiting the process non-zero on
// failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "", false, "print verbose information")
}
