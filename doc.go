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

// Package rnaiguard is the analysis core of an RNAi candidate design
// engine. It ingests a target (pest) and a non-target (beneficial
// organism) nucleotide sequence, builds a memory-bounded k-mer
// membership index over the non-target, and scans the target for
// 21-nt guide-strand candidates that pass a five-layer safety
// firewall and a twelve-rule efficacy score.
//
// The package has no knowledge of dashboards, file pickers, CSV
// export, or chart rendering; those are external collaborators that
// consume the two exported operations, index.GenomeIndexer.Build and
// RunPipeline.
package rnaiguard

// VERSION is the core library version. The CLI reports it verbatim in
// its "version" subcommand and in its root help text, so library and
// CLI releases stay tied to a single number.
const VERSION = "0.9.0"
