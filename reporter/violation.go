// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reporter

import (
	"errors"
	"fmt"
)

// Violation is raised when the emission state machine or the token queue
// observes a broken structural contract: a stack that must never be empty
// was found empty, or a bare newline was pushed as a literal fragment.
//
// Once a Violation has been observed the token queue can no longer be
// trusted, so it is raised with panic and never returned as a partial result.
// [Recover] turns it back into an error at the edge of a formatting run.
type Violation struct {
	// The package that detected the violation, e.g. "emit".
	Pkg string
	Msg string
}

// Error implements [error].
func (v *Violation) Error() string {
	return fmt.Sprintf("rbfmt/%s: %s", v.Pkg, v.Msg)
}

// Panicf aborts the current formatting run with a [Violation].
func Panicf(pkg string, format string, args ...any) {
	panic(&Violation{Pkg: pkg, Msg: fmt.Sprintf(format, args...)})
}

// Recover must be deferred directly. If the surrounding function is
// panicking with a [Violation], the panic is stopped and the violation is
// stored in *err. Any other panic value is re-raised unchanged.
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	v, ok := r.(*Violation)
	if !ok {
		panic(r)
	}
	*err = v
}

// IsViolation reports whether err is, or wraps, a [Violation].
func IsViolation(err error) bool {
	var v *Violation
	return errors.As(err, &v)
}
