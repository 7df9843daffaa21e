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

package rbfmt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/rivo/uniseg"
	"golang.org/x/sync/semaphore"

	"github.com/bufbuild/rbfmt/emit"
	"github.com/bufbuild/rbfmt/reporter"
)

// Formatter formats many sources in parallel.
//
// Each source gets its own [emit.State]; nothing is shared between sources
// except the reporter.
type Formatter struct {
	// Resolves paths into sources. This field is the only required field.
	Resolver Resolver
	// Turns the text returned by Resolver into a Source. Required only if
	// Resolver returns readers.
	Parser Parser
	// The maximum parallelism to use when formatting. If unspecified or set to
	// a non-positive value, then min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	// will be used.
	MaxParallelism int
	// A custom error and warning reporter. If unspecified a default reporter
	// is used. A default reporter fails the run after encountering any
	// errors and ignores all warnings.
	Reporter reporter.Reporter
	// Options used for every source.
	Options emit.Options
	// Receives a line for every source that fails. Nil means discard.
	Logger *log.Logger
}

// Result is the output for one formatted path. Output is nil if formatting
// the path failed and the reporter swallowed the error.
type Result struct {
	Path   string
	Output []byte
}

// Format formats the given paths. Results are returned in the order of
// paths; a path given more than once is formatted once.
func (f *Formatter) Format(ctx context.Context, paths ...string) ([]Result, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	par := f.MaxParallelism
	if par <= 0 {
		par = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}

	logger := f.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := executor{
		f:       f,
		h:       reporter.NewHandler(f.Reporter),
		s:       semaphore.NewWeighted(int64(par)),
		cancel:  cancel,
		logger:  logger,
		options: f.Options.WithDefaults(),
		results: map[string]*result{},
	}

	results := make([]*result, len(paths))
	for i, path := range paths {
		results[i] = e.format(ctx, path)
	}

	out := make([]Result, len(paths))
	for i, r := range results {
		select {
		case <-r.ready:
		case <-ctx.Done():
			return nil, e.abortError(ctx.Err())
		}
		if r.err != nil {
			return nil, e.abortError(r.err)
		}
		out[i] = Result{Path: paths[i], Output: r.res}
	}

	if err := e.h.Error(); err != nil {
		return out, err
	}
	return out, nil
}

// abortError picks the error to abort with. Once the reporter has failed the
// run, other sources may fail only because the run was canceled; the
// reporter's error is the one that matters.
func (e *executor) abortError(err error) error {
	if reported := e.h.ReporterError(); reported != nil {
		return reported
	}
	return err
}

type result struct {
	ready chan struct{}
	res   []byte
	err   error
}

func (r *result) fail(err error) {
	r.err = err
	close(r.ready)
}

func (r *result) complete(out []byte) {
	r.res = out
	close(r.ready)
}

type executor struct {
	f       *Formatter
	h       *reporter.Handler
	s       *semaphore.Weighted
	cancel  context.CancelFunc
	logger  *log.Logger
	options emit.Options

	mu      sync.Mutex
	results map[string]*result
}

func (e *executor) format(ctx context.Context, path string) *result {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := e.results[path]
	if r != nil {
		return r
	}

	r = &result{
		ready: make(chan struct{}),
	}
	e.results[path] = r
	go func() {
		e.doFormat(ctx, path, r)
	}()
	return r
}

func (e *executor) doFormat(ctx context.Context, path string, r *result) {
	if err := e.s.Acquire(ctx, 1); err != nil {
		r.fail(err)
		return
	}
	defer e.s.Release(1)

	out, err := e.formatPath(path)
	if err != nil {
		e.logger.Error("formatting failed", "path", path, "err", err)
		var ewp reporter.ErrorWithPath
		if !errors.As(err, &ewp) {
			ewp = reporter.Error(path, err)
		}
		if err := e.h.HandleError(ewp); err != nil {
			e.cancel()
			r.fail(err)
			return
		}
		r.complete(nil)
		return
	}

	e.checkWidth(path, out)
	r.complete(out)
}

func (e *executor) formatPath(path string) ([]byte, error) {
	sr, err := e.f.Resolver.FindSourceByPath(path)
	if err != nil {
		return nil, err
	}

	defer func() {
		// if results included a reader, don't leave it open if it can be closed
		if sr.Reader == nil {
			return
		}
		if c, ok := sr.Reader.(io.Closer); ok {
			_ = c.Close()
		}
	}()

	src := sr.Source
	if src == nil {
		if sr.Reader == nil {
			return nil, fmt.Errorf("search result for %q is empty", path)
		}
		if e.f.Parser == nil {
			return nil, fmt.Errorf("search result for %q needs parsing, but no parser is configured", path)
		}
		src, err = e.f.Parser(path, sr.Reader)
		if err != nil {
			return nil, err
		}
	}
	if src.Path == "" {
		src.Path = path
	}

	return Format(src, e.options)
}

// checkWidth warns about output lines wider than the maximum width, which
// happens when a line holds nothing that can be broken.
func (e *executor) checkWidth(path string, out []byte) {
	for i, line := range bytes.Split(out, []byte("\n")) {
		if width := uniseg.StringWidth(string(line)); width > e.options.Writer.MaxWidth {
			e.h.HandleWarning(path, fmt.Errorf("line %d is %d columns wide, more than %d", i+1, width, e.options.Writer.MaxWidth))
		}
	}
}
