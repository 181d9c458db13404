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

import "fmt"

// ValidationError is returned by ParseFASTA/Validate when the input
// sequence itself is unacceptable: empty, too short, too long, or
// carrying a byte outside the allowed alphabet, and by Config.Validate
// for an out-of-range config. The pipeline is never started when this
// error is returned (§7).
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return "rnaiguard: validation: " + e.msg }

func errValidationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// ResourceError describes an index whose estimated memory exceeds the
// configured ceiling (§5, §7). index.GenomeIndexer.Build reports that
// condition with its own *index.ErrMemoryCeiling; no function in this
// package returns ResourceError.
type ResourceError struct {
	msg string
}

func (e *ResourceError) Error() string { return "rnaiguard: resource: " + e.msg }

func errResourcef(format string, args ...interface{}) *ResourceError {
	return &ResourceError{msg: fmt.Sprintf(format, args...)}
}

// InternalInvariantViolation indicates a bug: a candidate reached the
// output stage without satisfying the invariants of §3. Callers
// should treat this as fatal and abort the run (§7).
type InternalInvariantViolation struct {
	msg string
}

func (e *InternalInvariantViolation) Error() string {
	return "rnaiguard: internal invariant violation: " + e.msg
}

func errInvariantf(format string, args ...interface{}) *InternalInvariantViolation {
	return &InternalInvariantViolation{msg: fmt.Sprintf(format, args...)}
}
