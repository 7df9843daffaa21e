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

// ErrFormatFailed is a sentinel error returned by batch formatting when
// errors were reported for some sources but the configured ErrorReporter
// swallowed all of them.
var ErrFormatFailed = errors.New("format failed: invalid token stream")

// ErrorWithPath is an error about a single formatted source, carrying the
// name of that source.
//
// The value of Error() contains both the path and the underlying error.
// The value of Unwrap() is only the underlying error.
type ErrorWithPath interface {
	error
	Path() string
	Unwrap() error
}

// Error wraps err with the name of the source that produced it.
func Error(path string, err error) ErrorWithPath {
	return errorWithPath{path: path, underlying: err}
}

// Errorf is like [Error], but formats the underlying error.
func Errorf(path string, format string, args ...any) ErrorWithPath {
	return errorWithPath{path: path, underlying: fmt.Errorf(format, args...)}
}

type errorWithPath struct {
	underlying error
	path       string
}

func (e errorWithPath) Error() string {
	return fmt.Sprintf("%s: %v", e.path, e.underlying)
}

// Path implements [ErrorWithPath].
func (e errorWithPath) Path() string {
	return e.path
}

// Unwrap implements [ErrorWithPath].
func (e errorWithPath) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPath = errorWithPath{}
