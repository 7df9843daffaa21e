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

package token

import (
	"fmt"
	"strings"

	"github.com/tidwall/btree"

	"github.com/bufbuild/rbfmt/reporter"
)

// Mode is the rendering mode of a breakable group.
type Mode int8

const (
	SingleLine Mode = iota + 1 // Collapsed onto the current line.
	MultiLine                  // Exploded, one item per line.
)

// String implements [fmt.Stringer].
func (m Mode) String() string {
	switch m {
	case SingleLine:
		return "SingleLine"
	case MultiLine:
		return "MultiLine"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Entry is a breakable group: a sequence of tokens that may be rendered on
// the current line or exploded across several, along with the delimiters that
// frame it.
//
// An Entry is open while tokens are being pushed to it, and becomes
// immutable once [Entry.Seal] is called. Both renderings are derived from
// the same captured token sequence; nothing is re-emitted when switching
// modes.
//
// An Entry must not be copied.
type Entry struct {
	depth  int // Base indentation, in spaces.
	delims Delims
	tokens []Token
	lines  btree.Set[int] // Original source lines touched by the content.
	sealed bool
}

// NewEntry returns a new open entry with the given base indentation depth
// (in spaces) and delimiters.
func NewEntry(depth int, delims Delims) *Entry {
	return &Entry{depth: depth, delims: delims}
}

// Push appends a token to an open entry.
func (e *Entry) Push(t Token) {
	if e.sealed {
		reporter.Panicf("token", "push of %#v to a sealed entry", t)
	}
	e.tokens = append(e.tokens, t)
}

// InsertAfterLastNewline inserts t immediately after the last
// newline-equivalent token pushed so far, or at the start of the content if
// there is none.
func (e *Entry) InsertAfterLastNewline(t Token) {
	if e.sealed {
		reporter.Panicf("token", "insert of %#v into a sealed entry", t)
	}
	e.tokens = InsertAfterLastNewline(e.tokens, t)
}

// AddLine records that the content of this entry touches the given original
// source line.
func (e *Entry) AddLine(line int) {
	if e.sealed {
		reporter.Panicf("token", "line %d recorded on a sealed entry", line)
	}
	e.lines.Insert(line)
}

// Seal closes this entry and returns the [Breakable] token wrapping it.
func (e *Entry) Seal() Token {
	if e.sealed {
		reporter.Panicf("token", "entry sealed twice")
	}
	e.sealed = true
	return Token{kind: Breakable, entry: e}
}

// Sealed returns whether [Entry.Seal] has been called.
func (e *Entry) Sealed() bool {
	return e.sealed
}

// Depth returns the base indentation depth, in spaces, captured when the
// entry was created.
func (e *Entry) Depth() int {
	return e.depth
}

// Delims returns the delimiters framing this entry.
func (e *Entry) Delims() Delims {
	return e.delims
}

// Contents returns the tokens pushed to this entry, as pushed. The returned
// slice must not be modified.
func (e *Entry) Contents() []Token {
	return e.tokens
}

// Lines returns the original source lines this entry has touched, in
// ascending order.
func (e *Entry) Lines() []int {
	return e.lines.Keys()
}

// SpansLines returns whether the content of this entry came from more than
// one original source line.
func (e *Entry) SpansLines() bool {
	return e.lines.Len() > 1
}

// IsEmpty returns whether this entry has no content between its delimiters,
// ignoring separators and layout tokens.
func (e *Entry) IsEmpty() bool {
	return contentEnd(e.tokens) == 0
}

// MustBreak returns whether this entry has to be exploded no matter how much
// room is left on the line. That is the case when:
//
//  1. Its content spanned more than one line in the original source.
//
//  2. It contains a token that always ends a line: a hard newline or a
//     comment.
//
//  3. It contains an entry that must break.
//
// An empty entry never breaks.
func (e *Entry) MustBreak() bool {
	if e.IsEmpty() {
		return false
	}
	if e.SpansLines() {
		return true
	}
	for _, t := range e.tokens {
		switch t.kind {
		case HardNewline, Comment:
			return true
		case Breakable:
			if t.entry.MustBreak() {
				return true
			}
		}
	}
	return false
}

// Tokens returns the rendering of this entry in the given mode, delimiters
// included.
//
// The single-line form converts every token with [Token.AsSingleLine] and
// drops trailing separators. The multi-line form keeps every token, drops
// trailing separators, and then appends the trailing separator of the
// delimiters, a newline and indentation at the base depth before the closing
// delimiter.
//
// An empty entry is always rendered in single-line form.
func (e *Entry) Tokens(mode Mode) []Token {
	end := contentEnd(e.tokens)
	open, closer := e.delims.Open(mode), e.delims.Close(mode)
	if end == 0 {
		mode = SingleLine
		open = strings.TrimRight(e.delims.Open(mode), " ")
		closer = strings.TrimLeft(e.delims.Close(mode), " ")
	}

	out := make([]Token, 0, end+5)
	if open != "" {
		out = append(out, NewText(Delim, open))
	}

	switch mode {
	case SingleLine:
		for _, t := range e.tokens[:end] {
			out = append(out, t.AsSingleLine())
		}

	case MultiLine:
		for _, t := range e.tokens[:end] {
			out = append(out, t.AsMultiLine())
		}
		if trailing := e.delims.Trailing(); trailing != "" && !e.tokens[end-1].IsNewline() {
			if trailing == "," {
				out = append(out, New(Comma))
			} else {
				out = append(out, NewText(Delim, trailing))
			}
		}
		out = append(out, New(HardNewline), NewIndent(Indent, e.depth))

	default:
		reporter.Panicf("token", "unknown render mode %v", mode)
	}

	if closer != "" {
		out = append(out, NewText(Delim, closer))
	}
	return out
}

// String implements [fmt.Stringer], for debugging.
func (e *Entry) String() string {
	return fmt.Sprintf("%v depth=%d lines=%v tokens=%d", e.delims, e.depth, e.Lines(), len(e.tokens))
}

// contentEnd returns the index just past the last token of tokens that is
// not a separator or layout token. Everything after it is dropped when
// rendering; if it is zero, there is no content.
func contentEnd(tokens []Token) int {
	for i := len(tokens) - 1; i >= 0; i-- {
		switch tokens[i].kind {
		case SoftNewline, CollapsingNewline, SoftIndent:
			continue
		}
		if !tokens[i].IsFiller() {
			return i + 1
		}
	}
	return 0
}
