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

package rbfmt_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/rbfmt"
	"github.com/bufbuild/rbfmt/emit"
	"github.com/bufbuild/rbfmt/internal/script"
	"github.com/bufbuild/rbfmt/reporter"
	"github.com/bufbuild/rbfmt/writer"
)

// scripts serves script text from memory.
func scripts(files map[string]string) rbfmt.Resolver {
	return &rbfmt.SourceResolver{
		Accessor: func(path string) (io.ReadCloser, error) {
			text, ok := files[path]
			if !ok {
				return nil, fmt.Errorf("%s: %w", path, rbfmt.ErrNotFound)
			}
			return io.NopCloser(strings.NewReader(text)), nil
		},
	}
}

// ident is a script emitting a single identifier on line 1.
func ident(name string) string {
	return fmt.Sprintf("events:\n  - line: 1\n  - ident: %s\n  - newline\n", name)
}

const badScript = "events:\n  - line: 1\n  - dedent:\n      - indent\n"

func TestFormatter(t *testing.T) {
	t.Parallel()

	f := rbfmt.Formatter{
		Resolver:       scripts(map[string]string{"a.rb": ident("a"), "b.rb": ident("b"), "c.rb": ident("c")}),
		Parser:         script.ParseSource,
		MaxParallelism: 2,
	}
	results, err := f.Format(context.Background(), "c.rb", "a.rb", "b.rb", "a.rb")
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, want := range []string{"c", "a", "b", "a"} {
		assert.Equal(t, want+".rb", results[i].Path)
		assert.Equal(t, want+"\n", string(results[i].Output))
	}
}

func TestFormatterNoPaths(t *testing.T) {
	t.Parallel()

	var f rbfmt.Formatter
	results, err := f.Format(context.Background())
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestFormatterFailsFast(t *testing.T) {
	t.Parallel()

	f := rbfmt.Formatter{
		Resolver: scripts(map[string]string{"ok.rb": ident("ok"), "bad.rb": badScript}),
		Parser:   script.ParseSource,
	}
	_, err := f.Format(context.Background(), "ok.rb", "bad.rb")
	require.Error(t, err)
	assert.True(t, reporter.IsViolation(err))

	_, err = f.Format(context.Background(), "missing.rb")
	require.ErrorIs(t, err, rbfmt.ErrNotFound)
}

func TestFormatterSwallowedErrors(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		failed []string
	)
	rep := reporter.NewReporter(func(err reporter.ErrorWithPath) error {
		mu.Lock()
		defer mu.Unlock()
		failed = append(failed, err.Path())
		return nil
	}, nil)

	f := rbfmt.Formatter{
		Resolver: scripts(map[string]string{"ok.rb": ident("ok"), "bad.rb": badScript}),
		Parser:   script.ParseSource,
		Reporter: rep,
	}
	results, err := f.Format(context.Background(), "ok.rb", "bad.rb")
	require.ErrorIs(t, err, reporter.ErrFormatFailed)
	require.Len(t, results, 2)
	assert.Equal(t, "ok\n", string(results[0].Output))
	assert.Nil(t, results[1].Output)
	assert.Equal(t, []string{"bad.rb"}, failed)
}

func TestFormatterWarnsAboutLongLines(t *testing.T) {
	t.Parallel()

	var warnings atomic.Int32
	f := rbfmt.Formatter{
		Resolver: scripts(map[string]string{"long.rb": ident("a_very_long_identifier"), "short.rb": ident("a")}),
		Parser:   script.ParseSource,
		Reporter: reporter.NewReporter(nil, func(err reporter.ErrorWithPath) {
			assert.Equal(t, "long.rb", err.Path())
			warnings.Add(1)
		}),
		Options: emit.Options{Writer: writer.Options{MaxWidth: 10}},
	}
	_, err := f.Format(context.Background(), "long.rb", "short.rb")
	require.NoError(t, err)
	assert.Equal(t, int32(1), warnings.Load())
}

func TestFormatterPrefersSources(t *testing.T) {
	t.Parallel()

	f := rbfmt.Formatter{
		Resolver: rbfmt.CompositeResolver{
			rbfmt.ResolverFunc(func(path string) (rbfmt.SearchResult, error) {
				if path != "direct.rb" {
					return rbfmt.SearchResult{}, rbfmt.ErrNotFound
				}
				return rbfmt.SearchResult{
					Reader: strings.NewReader("not a script"),
					Source: &rbfmt.Source{Visitor: rbfmt.VisitorFunc(hello)},
				}, nil
			}),
			scripts(map[string]string{"a.rb": ident("a")}),
		},
	}
	results, err := f.Format(context.Background(), "direct.rb")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(results[0].Output))

	// Readers need a parser.
	_, err = f.Format(context.Background(), "a.rb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parser")
}

func TestFormatterCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := rbfmt.Formatter{
		Resolver: scripts(map[string]string{"a.rb": ident("a")}),
		Parser:   script.ParseSource,
	}
	_, err := f.Format(ctx, "a.rb")
	require.ErrorIs(t, err, context.Canceled)
}
