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
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by resolvers that have nothing for a path.
var ErrNotFound = errors.New("source not found")

type Resolver interface {
	FindSourceByPath(string) (SearchResult, error)
}

type SearchResult struct {
	// only one of the following must be set; if both are, the formatter
	// uses Source and ignores Reader. A Reader is turned into a Source by
	// the formatter's Parser.
	Reader io.Reader
	Source *Source
}

type ResolverFunc func(string) (SearchResult, error)

var _ Resolver = ResolverFunc(nil)

func (f ResolverFunc) FindSourceByPath(path string) (SearchResult, error) {
	return f(path)
}

type CompositeResolver []Resolver

var _ Resolver = CompositeResolver(nil)

func (f CompositeResolver) FindSourceByPath(path string) (SearchResult, error) {
	if len(f) == 0 {
		return SearchResult{}, ErrNotFound
	}
	var firstErr error
	for _, res := range f {
		r, err := res.FindSourceByPath(path)
		if err == nil {
			return r, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return SearchResult{}, firstErr
}

// SourceResolver opens paths with Accessor, trying each of SearchPaths in
// turn. A nil Accessor means [os.Open].
type SourceResolver struct {
	SearchPaths []string
	Accessor    func(string) (io.ReadCloser, error)
}

var _ Resolver = (*SourceResolver)(nil)

func (r *SourceResolver) FindSourceByPath(path string) (SearchResult, error) {
	if len(r.SearchPaths) == 0 {
		reader, err := r.open(path)
		if err != nil {
			return SearchResult{}, err
		}
		return SearchResult{Reader: reader}, nil
	}

	var e error
	for _, searchPath := range r.SearchPaths {
		reader, err := r.open(filepath.Join(searchPath, path))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				e = err
				continue
			}
			return SearchResult{}, err
		}
		return SearchResult{Reader: reader}, nil
	}
	return SearchResult{}, e
}

func (r *SourceResolver) open(path string) (io.ReadCloser, error) {
	if r.Accessor == nil {
		return os.Open(path)
	}
	return r.Accessor(path)
}
