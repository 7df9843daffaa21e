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

	"github.com/bufbuild/rbfmt/comment"
	"github.com/bufbuild/rbfmt/emit"
	"github.com/bufbuild/rbfmt/reporter"
)

// Visitor walks the syntax tree of one source file, calling emitters on the
// given [emit.State] in original source order.
type Visitor interface {
	Visit(*emit.State)
}

// VisitorFunc adapts a function to a [Visitor].
type VisitorFunc func(*emit.State)

var _ Visitor = VisitorFunc(nil)

// Visit implements [Visitor].
func (f VisitorFunc) Visit(s *emit.State) {
	f(s)
}

// Source is a single file ready to be formatted: the walker for its syntax
// tree, and the comments of the original text keyed by line.
type Source struct {
	Path     string
	Comments *comment.Store // May be nil.
	Visitor  Visitor
}

// Parser turns the text of a file into a [Source].
type Parser func(path string, r io.Reader) (*Source, error)

// Format formats a single source.
//
// Violations of the emission contract raised while visiting are returned as
// errors wrapped with the source path; any other panic is not recovered.
func Format(src *Source, options emit.Options) ([]byte, error) {
	s, err := run(src, options)
	if err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}

// FormatTo is like [Format], but writes the output to w with a single call to
// w.Write. Nothing is written if formatting fails.
func FormatTo(w io.Writer, src *Source, options emit.Options) error {
	s, err := run(src, options)
	if err != nil {
		return err
	}
	if err := s.Write(w); err != nil {
		return reporter.Error(src.Path, err)
	}
	return nil
}

func run(src *Source, options emit.Options) (*emit.State, error) {
	if src.Visitor == nil {
		return nil, reporter.Error(src.Path, errors.New("source has no visitor"))
	}

	s := emit.New(options, src.Comments)
	if err := visit(s, src.Visitor); err != nil {
		return nil, reporter.Error(src.Path, err)
	}
	return s, nil
}

func visit(s *emit.State, v Visitor) (err error) {
	defer reporter.Recover(&err)
	v.Visit(s)
	s.Finish()
	return nil
}
