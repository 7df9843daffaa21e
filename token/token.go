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
	"slices"
	"strings"

	"github.com/bufbuild/rbfmt/internal/ext/slicesx"
	"github.com/bufbuild/rbfmt/reporter"
)

// Token is a single renderable unit in a token queue.
//
// The zero Token has kind [Unknown] and is not valid; every operation on it
// except [Token.Kind] is a fatal violation.
type Token struct {
	kind  Kind
	text  string // Used by kinds with [Kind.HasText].
	depth int    // Used by kinds with [Kind.HasDepth]; counted in spaces.
	entry *Entry // Used by kind == Breakable.
}

// New returns a token of a kind that carries no payload, such as [Comma] or
// [HardNewline].
func New(kind Kind) Token {
	if !kind.IsValid() || kind.HasText() || kind.HasDepth() || kind == Breakable {
		reporter.Panicf("token", "New called with %v", kind)
	}
	return Token{kind: kind}
}

// NewText returns a token of a kind that carries text, such as [Keyword] or
// [Direct].
func NewText(kind Kind, text string) Token {
	if !kind.HasText() {
		reporter.Panicf("token", "NewText called with %v", kind)
	}
	return Token{kind: kind, text: text}
}

// NewIndent returns an [Indent] or [SoftIndent] token of the given depth, in
// spaces.
func NewIndent(kind Kind, depth int) Token {
	if !kind.HasDepth() {
		reporter.Panicf("token", "NewIndent called with %v", kind)
	}
	if depth < 0 {
		reporter.Panicf("token", "negative indentation depth %d", depth)
	}
	return Token{kind: kind, depth: depth}
}

// Kind returns this token's kind.
func (t Token) Kind() Kind {
	return t.kind
}

// Text returns the text payload of this token. It is empty for kinds that
// do not carry text.
func (t Token) Text() string {
	return t.text
}

// Depth returns the indentation depth of an [Indent] or [SoftIndent] token.
func (t Token) Depth() int {
	return t.depth
}

// Entry returns the sealed entry wrapped by a [Breakable] token, or nil.
func (t Token) Entry() *Entry {
	return t.entry
}

// As converts this token to the given rendering mode.
func (t Token) As(mode Mode) Token {
	if mode == SingleLine {
		return t.AsSingleLine()
	}
	return t.AsMultiLine()
}

// AsSingleLine converts this token to its single-line rendering.
//
// Collapsing newlines and soft indentation become empty text, and soft
// newlines become a single space. Every other kind is returned unchanged.
func (t Token) AsSingleLine() Token {
	switch t.kind {
	case CollapsingNewline, SoftIndent:
		return NewText(Direct, "")
	case SoftNewline:
		return New(Space)
	case HardNewline, Indent, Keyword, Direct, CommaSpace, Comma, Space, Dot,
		ColonColon, LonelyOperator, OpenSquareBracket, CloseSquareBracket,
		OpenParen, CloseParen, Breakable, Op, DoubleQuote, StringContent,
		Slash, Comment, Delim, End:
		return t
	default:
		t.unhandled("AsSingleLine")
		return t
	}
}

// AsMultiLine converts this token to its multi-line rendering, which is
// always the token itself.
func (t Token) AsMultiLine() Token {
	if !t.kind.IsValid() {
		t.unhandled("AsMultiLine")
	}
	return t
}

// IsNewline returns whether this token renders as a newline when its group
// is exploded.
//
// A [Direct] token whose text is exactly "\n" means that some caller tried
// to emit a newline without going through the newline kinds, which would
// break comment and blank-line placement; this is a fatal violation.
func (t Token) IsNewline() bool {
	switch t.kind {
	case HardNewline, SoftNewline, CollapsingNewline:
		return true
	case Direct:
		if t.text == "\n" {
			reporter.Panicf("token", "bare newline emitted as a direct part")
		}
		return false
	case Indent, SoftIndent, Keyword, CommaSpace, Comma, Space, Dot,
		ColonColon, LonelyOperator, OpenSquareBracket, CloseSquareBracket,
		OpenParen, CloseParen, Breakable, Op, DoubleQuote, StringContent,
		Slash, Comment, Delim, End:
		return false
	default:
		t.unhandled("IsNewline")
		return false
	}
}

// IsFiller returns whether this token is decorative when judging whether a
// candidate single line carries any content: commas, spaces, soft newlines
// and empty text.
func (t Token) IsFiller() bool {
	switch t.kind {
	case Comma, Space, SoftNewline:
		return true
	case Direct:
		return t.text == ""
	case CollapsingNewline, HardNewline, Indent, SoftIndent, Keyword,
		CommaSpace, Dot, ColonColon, LonelyOperator, OpenSquareBracket,
		CloseSquareBracket, OpenParen, CloseParen, Breakable, Op, DoubleQuote,
		StringContent, Slash, Comment, Delim, End:
		return false
	default:
		t.unhandled("IsFiller")
		return false
	}
}

// String returns the literal text of this token.
//
// Newline kinds render as "\n" regardless of mode; callers are expected to
// have converted the token with [Token.As] first. A [Breakable] token renders
// its entry's single-line form. Choosing the right mode per entry is the
// writer's job.
func (t Token) String() string {
	switch t.kind {
	case CollapsingNewline, HardNewline, SoftNewline:
		return "\n"
	case Indent, SoftIndent:
		return strings.Repeat(" ", t.depth)
	case Keyword, Direct, Op, StringContent, Comment, Delim:
		return t.text
	case CommaSpace:
		return ", "
	case Comma:
		return ","
	case Space:
		return " "
	case Dot:
		return "."
	case ColonColon:
		return "::"
	case LonelyOperator:
		return "&."
	case OpenSquareBracket:
		return "["
	case CloseSquareBracket:
		return "]"
	case OpenParen:
		return "("
	case CloseParen:
		return ")"
	case Breakable:
		var buf strings.Builder
		for _, tok := range t.entry.Tokens(SingleLine) {
			buf.WriteString(tok.String())
		}
		return buf.String()
	case DoubleQuote:
		return "\""
	case Slash:
		return "\\"
	case End:
		return "end"
	default:
		t.unhandled("String")
		return ""
	}
}

// GoString implements [fmt.GoStringer], for debugging.
func (t Token) GoString() string {
	switch {
	case t.kind.HasText():
		return fmt.Sprintf("%v(%q)", t.kind, t.text)
	case t.kind.HasDepth():
		return fmt.Sprintf("%v(%d)", t.kind, t.depth)
	case t.kind == Breakable:
		return fmt.Sprintf("%v(%v)", t.kind, t.entry)
	default:
		return t.kind.String()
	}
}

func (t Token) unhandled(op string) {
	reporter.Panicf("token", "%s: unhandled token kind %v", op, t.kind)
}

// InsertAfterLastNewline returns tokens with extra inserted immediately after
// the last newline-equivalent token, or at the front if there is none.
func InsertAfterLastNewline(tokens []Token, extra ...Token) []Token {
	idx := slicesx.LastIndexFunc(tokens, Token.IsNewline) + 1
	return slices.Insert(tokens, idx, extra...)
}
