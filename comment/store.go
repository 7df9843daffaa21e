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

// Package comment holds the comments of an original source file, keyed by
// the line they appear on, until the emission state machine is ready to
// place them in the token queue.
package comment

import (
	"strings"

	"github.com/tidwall/btree"
)

// Store maps original line numbers to the comments on those lines.
//
// A Store is populated once, before traversal, and is then drained in line
// order by [Store.ExtractUpTo]. Extraction is monotonic: a comment is
// returned at most once.
//
// A zero Store is empty and ready to use.
type Store struct {
	lines btree.Map[int, []string]
	count int
}

// NewStore returns a new, empty Store.
func NewStore() *Store {
	return new(Store)
}

// Add records a comment on the given line. Surrounding whitespace is
// removed; the comment is re-indented when it is placed.
//
// Comments on the same line are kept in the order they were added.
func (s *Store) Add(line int, text string) {
	text = strings.TrimSpace(text)
	prev, _ := s.lines.Get(line)
	s.lines.Set(line, append(prev, text))
	s.count++
}

// Len returns the number of comments not yet extracted.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Has returns whether there is an unextracted comment on the given line.
func (s *Store) Has(line int) bool {
	if s == nil {
		return false
	}
	_, ok := s.lines.Get(line)
	return ok
}

// LinesBetween returns the lines strictly between from and to that hold an
// unextracted comment, in ascending order.
func (s *Store) LinesBetween(from, to int) []int {
	if s == nil || to-from < 2 {
		return nil
	}

	var lines []int
	s.lines.Ascend(from+1, func(line int, _ []string) bool {
		if line >= to {
			return false
		}
		lines = append(lines, line)
		return true
	})
	return lines
}

// ExtractUpTo removes and returns every comment on a line less than or equal
// to line, in line order. Returns false if there were none.
func (s *Store) ExtractUpTo(line int) (Block, bool) {
	var block Block
	if s == nil {
		return block, false
	}

	for {
		next, texts, ok := s.lines.Min()
		if !ok || next > line {
			break
		}
		s.lines.Delete(next)
		s.count -= len(texts)
		for _, text := range texts {
			block.comments = append(block.comments, Comment{Line: next, Text: text})
		}
	}
	return block, !block.IsEmpty()
}

// ExtractAll removes and returns every remaining comment, in line order.
// Returns false if there were none.
func (s *Store) ExtractAll() (Block, bool) {
	if s == nil {
		return Block{}, false
	}
	last, _, ok := s.lines.Max()
	if !ok {
		return Block{}, false
	}
	return s.ExtractUpTo(last)
}
