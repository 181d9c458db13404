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

import "github.com/rnaiguard/rnaiguard/index"

// Fixed constants from the specification. These are not configurable;
// config.go's Config struct only carries the handful of values the
// spec allows to vary per run.
const (
	PatentExclusionLength = 15
	SeedLength            = 7
	SiRNALength           = 21
	MaxGenomeSize         = 500_000_000
	MinGenomeSize         = 100
	LargeFileThreshold    = 10_000_000
	ChunkSize             = 1_000_000
	ChunkOverlap          = 50
	ScanLimit             = 5000
	GCMin                 = 30.0
	GCMax                 = 52.0

	defaultEfficacyThreshold = 70
	defaultMemCeilingBytes   = 1 << 30 // 1 GiB, per §5 memory discipline
)

// AllowedNucleotides is the full validation alphabet (§3, §6).
var AllowedNucleotides = [6]byte{'A', 'C', 'G', 'T', 'U', 'N'}

// Species is the target-organism adjustment used by the efficacy
// scorer's rule 11 (§4.7).
type Species string

const (
	Lepidoptera Species = "Lepidoptera"
	Coleoptera  Species = "Coleoptera"
	Generic     Species = "Generic"
)

// Config is the external configuration record described in spec.md
// §6. RnaiMode and DeliverySystem are informational only: the core
// algorithms never branch on them.
type Config struct {
	EfficacyThreshold int
	Species           Species
	HomologyThreshold int
	RnaiMode          string
	DeliverySystem    string

	// MemCeilingBytes bounds the estimated memory of a built index
	// (§5). Zero means "use the default of 1 GiB".
	MemCeilingBytes int64

	// Retention selects the probabilistic index's verification
	// policy (§9). The zero value is index.RetainFull.
	Retention index.RetentionMode
}

// DefaultConfig returns the spec's documented defaults: threshold 70,
// species Lepidoptera, homology threshold 15 (informational).
func DefaultConfig() Config {
	return Config{
		EfficacyThreshold: defaultEfficacyThreshold,
		Species:           Lepidoptera,
		HomologyThreshold: PatentExclusionLength,
		MemCeilingBytes:   defaultMemCeilingBytes,
		Retention:         index.RetainFull,
	}
}

// Validate checks the Config fields the core actually enforces
// (§6: efficacy_threshold in [50, 99], species in the closed set).
func (c Config) Validate() error {
	if c.EfficacyThreshold < 50 || c.EfficacyThreshold > 99 {
		return errValidationf("efficacy_threshold must be in [50, 99], got %d", c.EfficacyThreshold)
	}
	switch c.Species {
	case Lepidoptera, Coleoptera, Generic:
	default:
		return errValidationf("species must be one of Lepidoptera, Coleoptera, Generic, got %q", c.Species)
	}
	return nil
}
