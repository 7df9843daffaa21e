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

// Package reporter contains the error types raised while formatting, and
// the hooks a caller uses to observe them during batch runs.
package reporter

import "sync"

// ErrorReporter is responsible for reporting the given error. If the reporter
// returns a non-nil error, formatting aborts with that error. If the reporter
// returns nil, formatting continues with the remaining sources, and the
// failed source produces no output.
type ErrorReporter func(err ErrorWithPath) error

// WarningReporter is responsible for reporting the given warning. Warnings
// never stop formatting.
type WarningReporter func(ErrorWithPath)

// Reporter combines an [ErrorReporter] and a [WarningReporter].
type Reporter interface {
	Error(ErrorWithPath) error
	Warning(ErrorWithPath)
}

// NewReporter builds a [Reporter] from the given functions. Either may be nil;
// a nil ErrorReporter returns every error unchanged, which aborts the run.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPath) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPath) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler funnels errors from concurrently formatted sources into a single
// [Reporter], remembering the first error that the reporter let through.
//
// A Handler is safe for concurrent use.
type Handler struct {
	reporter Reporter

	mu           sync.Mutex
	errsReported bool
	err          error
}

// NewHandler wraps rep. A nil rep is replaced with NewReporter(nil, nil).
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleErrorf reports a formatted error for the source at path.
func (h *Handler) HandleErrorf(path string, format string, args ...any) error {
	return h.HandleError(Errorf(path, format, args...))
}

// HandleError reports err. Once the reporter has returned a non-nil error,
// every later call returns that same error without consulting the reporter.
func (h *Handler) HandleError(err ErrorWithPath) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	h.errsReported = true
	h.err = h.reporter.Error(err)
	return h.err
}

// HandleWarning reports a warning for the source at path.
func (h *Handler) HandleWarning(path string, err error) {
	// Warnings don't touch mutable fields, so no lock.
	h.reporter.Warning(Error(path, err))
}

// Error returns the error that aborted the run, or [ErrFormatFailed] if
// errors were reported but all of them were swallowed.
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrFormatFailed
	}
	return h.err
}

// ReporterError returns the error that aborted the run, if any, ignoring
// swallowed errors.
func (h *Handler) ReporterError() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.err
}
