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

// Package writer turns a finished token queue into formatted source text.
//
// The queue is walked in order. Every breakable entry is laid out flat if it
// is allowed to and the line it lands on would stay within the configured
// width; otherwise it is exploded and its contents are laid out the same way,
// recursively. The top level of the queue is always treated as exploded.
package writer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/bufbuild/rbfmt/internal/ext/stringsx"
	"github.com/bufbuild/rbfmt/token"
)

// DefaultMaxWidth is the line width used when [Options.MaxWidth] is zero.
const DefaultMaxWidth = 120

// Options specifies configuration for [Write].
type Options struct {
	// The maximum number of columns a line may occupy before a breakable
	// entry on it is exploded. Zero means [DefaultMaxWidth].
	MaxWidth int

	// The number of columns a tab character counts as. Defaults to 2, the
	// width of one indentation level.
	TabstopWidth int
}

// WithDefaults replaces any unset (read: zero value) fields of an Options which
// specify a default value with that default value.
func (o Options) WithDefaults() Options {
	if o.MaxWidth == 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.TabstopWidth == 0 {
		o.TabstopWidth = 2
	}
	return o
}

// Write lays out queue and writes the result to sink.
//
// The output is built in memory first and handed to sink with a single call
// to Write, so a failing sink never receives a partial line from this
// function.
func Write(options Options, queue []token.Token, sink io.Writer) error {
	out := Render(options, queue)
	if _, err := sink.Write(out); err != nil {
		return fmt.Errorf("rbfmt/writer: writing formatted output: %w", err)
	}
	return nil
}

// Render lays out queue and returns the result.
func Render(options Options, queue []token.Token) []byte {
	p := printer{Options: options.WithDefaults()}
	p.print(queue)
	return p.out.Bytes()
}

// printer holds state for converting a token queue into bytes.
type printer struct {
	Options

	out    bytes.Buffer
	column int
	// Buffered spaces from whitespace tokens, including the space of a
	// comma-space. These are dropped if a newline comes next, so lines never
	// end in whitespace.
	spaces int
}

// print prints tokens whose enclosing group is exploded.
func (p *printer) print(tokens []token.Token) {
	for i, t := range tokens {
		if t.Kind() != token.Breakable {
			p.emit(t)
			continue
		}

		e := t.Entry()
		if !e.MustBreak() && p.fits(e, tokens[i+1:]) {
			p.printFlat(e.Tokens(token.SingleLine))
		} else {
			p.print(e.Tokens(token.MultiLine))
		}
	}
}

// printFlat prints tokens whose enclosing group is flat. Nested entries are
// flat too.
func (p *printer) printFlat(tokens []token.Token) {
	for _, t := range tokens {
		if t.Kind() == token.Breakable {
			p.printFlat(t.Entry().Tokens(token.SingleLine))
			continue
		}
		p.emit(t.AsSingleLine())
	}
}

// emit prints a single token that is not an entry.
func (p *printer) emit(t token.Token) {
	switch t.Kind() {
	case token.HardNewline, token.SoftNewline, token.CollapsingNewline:
		p.spaces = 0
		p.out.WriteByte('\n')
		p.column = 0
	case token.Space:
		p.spaces++
	case token.CommaSpace:
		p.write(",")
		p.spaces++
	case token.Indent, token.SoftIndent:
		p.spaces += t.Depth()
	default:
		p.write(t.String())
	}
}

// write appends text to the output, flushing any buffered spaces first.
func (p *printer) write(text string) {
	if text == "" {
		return
	}

	if p.spaces > 0 {
		p.out.WriteString(strings.Repeat(" ", p.spaces))
		p.column += p.spaces
		p.spaces = 0
	}

	p.out.WriteString(text)
	last := stringsx.LastLine(text)
	if len(last) < len(text) {
		p.column = 0
	}
	p.column = stringWidth(p.Options, p.column, last)
}

// fits returns whether e, laid out flat at the current column, leaves the
// rest of the line within the maximum width. rest is the sequence of tokens
// following e in its enclosing group; only the part of it up to the next
// newline is measured.
func (p *printer) fits(e *token.Entry, rest []token.Token) bool {
	column := p.column + p.spaces
	column = stringWidth(p.Options, column, flatText(e.Tokens(token.SingleLine)))
	if column > p.MaxWidth {
		return false
	}

	for _, t := range rest {
		if t.IsNewline() {
			break
		}
		text := t.String()
		if t.Kind() == token.Breakable {
			text = flatText(t.Entry().Tokens(token.SingleLine))
		}
		if first, _, cut := strings.Cut(text, "\n"); cut {
			column = stringWidth(p.Options, column, first)
			break
		}
		column = stringWidth(p.Options, column, text)
	}
	return column <= p.MaxWidth
}

// flatText renders tokens already converted to single-line form.
func flatText(tokens []token.Token) string {
	var buf strings.Builder
	for _, t := range tokens {
		buf.WriteString(t.AsSingleLine().String())
	}
	return buf.String()
}

// stringWidth calculates the rendered width of text if placed at the given
// column, accounting for tabstops.
func stringWidth(options Options, column int, text string) int {
	// We can't just use StringWidth, because that doesn't respect tabstops
	// correctly.
	for i, next := range strings.Split(text, "\t") {
		if i > 0 {
			column += options.TabstopWidth - (column % options.TabstopWidth)
		}
		column += uniseg.StringWidth(next)
	}
	return column
}
