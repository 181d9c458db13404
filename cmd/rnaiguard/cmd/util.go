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

	"github.com/pkg/errors"
	"github.com/shenwei356/util/bytesize"
	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"
)

// checkError prints err (with a stack trace in verbose mode via
// %+v) and exits. Nil is a no-op.
func checkError(err error) {
	if err == nil {
		return
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

var verbose bool

func getFlagString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	checkError(errors.Wrapf(err, "flag --%s", name))
	return v
}

func getFlagInt(cmd *cobra.Command, name string) int {
	v, err := cmd.Flags().GetInt(name)
	checkError(errors.Wrapf(err, "flag --%s", name))
	return v
}

func getFlagBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	checkError(errors.Wrapf(err, "flag --%s", name))
	return v
}

// getFlagByteSize parses a human byte-size flag ("1GB", "250MiB")
// using the same library the teacher's index-building commands use
// for block-size-like flags.
func getFlagByteSize(cmd *cobra.Command, name string) int64 {
	s := getFlagString(cmd, name)
	if s == "" {
		return 0
	}
	n, err := bytesize.Parse([]byte(s))
	checkError(errors.Wrapf(err, "flag --%s", name))
	return int64(n)
}

// checkInFile verifies file exists (or is "-" for stdin) before the
// command attempts to read it, mirroring unikmer/cmd/index.go's file
// checks.
func checkInFile(name, file string) {
	if file == "-" {
		return
	}
	ok, err := pathutil.Exists(file)
	checkError(errors.Wrapf(err, "checking %s", name))
	if !ok {
		checkError(fmt.Errorf("%s does not exist: %s", name, file))
	}
}
