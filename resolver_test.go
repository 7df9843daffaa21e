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
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/rbfmt"
)

func TestSourceResolver(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b", "x.rb"), []byte("x"), 0o644))

	r := &rbfmt.SourceResolver{SearchPaths: []string{filepath.Join(dir, "a"), filepath.Join(dir, "b")}}
	res, err := r.FindSourceByPath("x.rb")
	require.NoError(t, err)
	text, err := io.ReadAll(res.Reader)
	require.NoError(t, err)
	assert.Equal(t, "x", string(text))
	require.NoError(t, res.Reader.(io.Closer).Close())

	_, err = r.FindSourceByPath("y.rb")
	require.ErrorIs(t, err, fs.ErrNotExist)

	// Without search paths, the path is used as is.
	r = &rbfmt.SourceResolver{}
	res, err = r.FindSourceByPath(filepath.Join(dir, "b", "x.rb"))
	require.NoError(t, err)
	require.NoError(t, res.Reader.(io.Closer).Close())
}

func TestSourceResolverAccessorErrors(t *testing.T) {
	t.Parallel()

	errDenied := errors.New("denied")
	r := &rbfmt.SourceResolver{
		SearchPaths: []string{"a", "b"},
		Accessor: func(string) (io.ReadCloser, error) {
			return nil, errDenied
		},
	}
	_, err := r.FindSourceByPath("x.rb")
	require.ErrorIs(t, err, errDenied)
}

func TestCompositeResolver(t *testing.T) {
	t.Parallel()

	_, err := rbfmt.CompositeResolver{}.FindSourceByPath("x.rb")
	require.ErrorIs(t, err, rbfmt.ErrNotFound)

	errFirst := errors.New("first")
	found := &rbfmt.Source{Path: "x.rb"}
	r := rbfmt.CompositeResolver{
		rbfmt.ResolverFunc(func(string) (rbfmt.SearchResult, error) { return rbfmt.SearchResult{}, errFirst }),
		rbfmt.ResolverFunc(func(string) (rbfmt.SearchResult, error) { return rbfmt.SearchResult{Source: found}, nil }),
	}
	res, err := r.FindSourceByPath("x.rb")
	require.NoError(t, err)
	assert.Same(t, found, res.Source)

	_, err = r[:1].FindSourceByPath("x.rb")
	require.ErrorIs(t, err, errFirst)
}
