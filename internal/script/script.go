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

// Package script decodes YAML event scripts: a recorded sequence of calls a
// syntax-tree walker would make on an [emit.State], along with the comments
// of the original file. Scripts stand in for a real parser in tests.
//
// A script looks like this:
//
//	width: 40
//	comments:
//	  2: ["# note"]
//	events:
//	  - line: 1
//	  - ident: foo
//	  - breakable:
//	      delims: parens
//	      body:
//	        - soft_indent
//	        - ident: a
//	  - newline
//
// Scalar events call emitters that take no argument. Mapping events have a
// single key naming the event, whose value is its argument or its body.
package script

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/rbfmt"
	"github.com/bufbuild/rbfmt/comment"
	"github.com/bufbuild/rbfmt/emit"
	"github.com/bufbuild/rbfmt/writer"
)

// Script is a decoded event script. It implements [rbfmt.Visitor].
type Script struct {
	width    int
	comments map[int][]string
	steps    []step
}

var _ rbfmt.Visitor = (*Script)(nil)

type document struct {
	Width    int              `yaml:"width"`
	Comments map[int][]string `yaml:"comments"`
	Events   []yaml.Node      `yaml:"events"`
}

// Parse decodes a script.
func Parse(r io.Reader) (*Script, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding script: %w", err)
	}

	steps, err := compile(doc.Events)
	if err != nil {
		return nil, err
	}
	return &Script{
		width:    doc.Width,
		comments: doc.Comments,
		steps:    steps,
	}, nil
}

// ParseSource is an [rbfmt.Parser] for scripts.
func ParseSource(path string, r io.Reader) (*rbfmt.Source, error) {
	s, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s.Source(path), nil
}

// Visit implements [rbfmt.Visitor].
func (s *Script) Visit(st *emit.State) {
	run(st, s.steps)
}

// Comments returns a fresh store holding this script's comments.
func (s *Script) Comments() *comment.Store {
	store := comment.NewStore()
	for line, texts := range s.comments {
		for _, text := range texts {
			store.Add(line, text)
		}
	}
	return store
}

// Options returns the options this script asks to be formatted with.
func (s *Script) Options() emit.Options {
	return emit.Options{Writer: writer.Options{MaxWidth: s.width}}
}

// Source returns a source that replays this script.
func (s *Script) Source(path string) *rbfmt.Source {
	return &rbfmt.Source{
		Path:     path,
		Comments: s.Comments(),
		Visitor:  s,
	}
}

// Run formats this script with its own options.
func (s *Script) Run() ([]byte, error) {
	return rbfmt.Format(s.Source("script"), s.Options())
}

// Run parses and formats a script in one go.
func Run(text []byte) ([]byte, error) {
	s, err := Parse(bytes.NewReader(text))
	if err != nil {
		return nil, err
	}
	return s.Run()
}
