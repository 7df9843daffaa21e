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

package emit

import (
	"github.com/bufbuild/rbfmt/internal/ext/slicesx"
	"github.com/bufbuild/rbfmt/token"
)

// OnLine is called whenever traversal crosses into a new line of the original
// source. It preserves blank lines, records the line against the open
// breakable entry and schedules any comments up to and including line.
//
// Calls with a line behind the cursor are ignored.
func (s *State) OnLine(line int) {
	if line < s.line {
		return
	}

	if line-s.line >= 2 {
		s.preserveBlankLine(s.line, line)
	}
	if e := s.openEntry(); e != nil {
		e.AddLine(line)
	}
	s.line = line

	block, ok := s.comments.ExtractUpTo(line)
	if !ok || s.SuppressingComments() {
		return
	}
	s.pending.Merge(block)
}

// WindLineForward advances the line cursor by one without visiting the line.
func (s *State) WindLineForward() {
	s.WindLines(1)
}

// WindLines advances the line cursor by n lines, as if each had been
// visited in turn.
func (s *State) WindLines(n int) {
	for range n {
		s.OnLine(s.line + 1)
	}
}

// ShiftComments inserts the pending comments right after the last newline in
// the main queue, so that they land above the line currently being built.
func (s *State) ShiftComments() {
	if s.pending.IsEmpty() {
		return
	}

	tokens := s.pending.ToTokens(s.lineDepth())
	if s.blankTrailer {
		tokens = append(tokens, token.New(token.HardNewline))
	}
	s.options.Logger.Debug("shifting comments", "count", s.pending.Len(), "line", s.line)

	s.queue = token.InsertAfterLastNewline(s.queue, tokens...)
	s.pending.Reset()
	s.blankTrailer = false
}

// preserveBlankLine handles a jump of the line cursor from one line to
// another at least two lines further down.
//
// Skipped lines holding comments are not blank. The blank lines that are
// left collapse into at most one before the skipped comments and one after
// them.
func (s *State) preserveBlankLine(from, to int) {
	if s.FormattingContext() == Heredoc {
		return
	}

	var commented []int
	if !s.SuppressingComments() {
		commented = s.comments.LinesBetween(from, to)
	}
	if len(commented) == 0 || commented[0] > from+1 {
		s.insertBlankLine(to, len(commented) > 0)
	}
	if len(commented) > 0 && commented[len(commented)-1] < to-1 {
		s.blankTrailer = true
	}
}

// insertBlankLine inserts a hard newline after the last newline of the
// current destination. beforeComments is set when the blank line precedes
// comments that are about to be scheduled.
func (s *State) insertBlankLine(line int, beforeComments bool) {
	blank := token.New(token.HardNewline)
	if e := s.openEntry(); e != nil {
		// The first newline of an entry is the one after its open delimiter;
		// a blank line there would separate the delimiter from the first item.
		if slicesx.LastIndexFunc(e.Contents(), token.Token.IsNewline) <= 0 {
			return
		}
		s.options.Logger.Debug("preserving blank line in breakable entry", "line", line)
		e.InsertAfterLastNewline(blank)
		return
	}

	switch {
	case !s.pending.IsEmpty():
		// The pending comments were seen before the blank line, but will be
		// inserted after it; move the blank line below them instead.
		// Comments about to be scheduled are separated from the pending ones
		// when the block is rendered.
		if !beforeComments {
			s.blankTrailer = true
		}
	case len(s.queue) == 0:
		// Nothing to separate from.
	default:
		s.options.Logger.Debug("preserving blank line", "line", line)
		s.queue = token.InsertAfterLastNewline(s.queue, blank)
	}
}

// lineDepth returns the indentation of the line pending comments will be
// placed above: the depth of its leading indent, or the current depth if
// the line has none yet.
func (s *State) lineDepth() int {
	idx := len(s.queue)
	for i := len(s.queue) - 1; i >= 0; i-- {
		if s.queue[i].IsNewline() {
			break
		}
		idx = i
	}
	if idx < len(s.queue) && s.queue[idx].Kind() == token.Indent {
		return s.queue[idx].Depth()
	}
	return s.Depth()
}
