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

package emit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/rbfmt/emit"
	"github.com/bufbuild/rbfmt/token"
)

// assign emits "name = opener" on the given line and schedules a heredoc
// with the given body lines.
func assign(line int, name, opener, symbol string, squiggly bool, body ...string) func(*emit.State) {
	return func(s *emit.State) {
		s.OnLine(line)
		s.EmitIndent()
		s.EmitIdent(name)
		s.EmitSpace()
		s.EmitOp("=")
		s.EmitSpace()
		s.EmitIdent(opener)
		s.PushHeredocContent(symbol, squiggly, func(s *emit.State) {
			s.NewBlock(func(s *emit.State) {
				for i, text := range body {
					s.OnLine(line + 1 + i)
					if squiggly {
						s.EmitIndent()
					}
					s.EmitStringContent(text)
					s.EmitNewline()
				}
			})
		})
	}
}

// terminator moves the cursor onto a heredoc's terminator line, the way a
// walker does before resuming below it.
func terminator(line int) func(*emit.State) {
	return func(s *emit.State) {
		s.WithFormattingContext(emit.Heredoc, func(s *emit.State) {
			s.OnLine(line)
		})
	}
}

func TestHeredoc(t *testing.T) {
	t.Parallel()

	s := newState(0, nil)
	assign(1, "x", "<<~SQL", "SQL", true, "SELECT 1")(s)
	assert.Equal(t, "x = <<~SQL", string(s.Bytes()))

	s.EmitNewline()
	assert.Equal(t, "x = <<~SQL\n  SELECT 1\nSQL\n", string(s.Bytes()))
	// No newline is left inside the trimmed body.
	assert.Equal(t, 1, s.Line())

	terminator(3)(s)
	statement(4, "y")(s)
	s.Finish()
	assert.Equal(t, "x = <<~SQL\n  SELECT 1\nSQL\ny\n", string(s.Bytes()))
}

func TestHeredocMultipleLines(t *testing.T) {
	t.Parallel()

	out := format(newState(0, nil), func(s *emit.State) {
		assign(1, "x", "<<~SQL", "SQL", true, "SELECT 1", "FROM t")(s)
		s.EmitNewline()
		assert.Equal(t, 2, s.Line())
		terminator(4)(s)
		statement(6, "y")(s)
	})
	assert.Equal(t, "x = <<~SQL\n  SELECT 1\n  FROM t\nSQL\n\ny\n", out)
}

func TestHeredocQuotedTerminator(t *testing.T) {
	t.Parallel()

	out := format(newState(0, nil), func(s *emit.State) {
		assign(1, "x", "<<-'EOS'", "'EOS'", false, "raw #{x}")(s)
		s.EmitNewline()
	})
	assert.Equal(t, "x = <<-'EOS'\nraw #{x}\nEOS\n", out)
}

func TestHeredocEmpty(t *testing.T) {
	t.Parallel()

	s := newState(0, nil)
	out := format(s, func(s *emit.State) {
		assign(1, "x", "<<A", "A", false)(s)
		s.EmitNewline()
	})
	assert.Equal(t, "x = <<A\nA\n", out)
	assert.Equal(t, 1, s.Line())
}

func TestHeredocIndented(t *testing.T) {
	t.Parallel()

	out := format(newState(0, nil), func(s *emit.State) {
		s.OnLine(1)
		s.EmitDef("foo")
		s.NewBlock(func(s *emit.State) {
			s.EmitNewline()
			assign(2, "x", "<<~EOS", "EOS", true, "hi")(s)
			s.EmitNewline()
			terminator(4)(s)
		})
		s.OnLine(5)
		s.EmitEnd()
	})
	assert.Equal(t, "def foo\n  x = <<~EOS\n    hi\n  EOS\nend\n", out)
}

func TestHeredocBlankLinesInBodyKept(t *testing.T) {
	t.Parallel()

	out := format(newState(0, nil), func(s *emit.State) {
		assign(1, "x", "<<A", "A", false, "a", "", "b")(s)
		s.EmitNewline()
	})
	assert.Equal(t, "x = <<A\na\n\nb\nA\n", out)
}

func TestHeredocRenderedAtFinish(t *testing.T) {
	t.Parallel()

	out := format(newState(0, nil), assign(1, "x", "<<A", "A", false, "a"))
	assert.Equal(t, "x = <<A\na\nA\n", out)
}

func TestHeredocSkipTrailingNewline(t *testing.T) {
	t.Parallel()

	s := newState(0, nil)
	assign(1, "x", "<<A", "A", false, "a")(s)
	s.EmitNewline()
	assert.Equal(t, "x = <<A\na\nA\n", string(s.Bytes()))

	s = newState(0, nil)
	assign(1, "foo(x", "<<A", "A", false, "a")(s)
	s.RenderHeredocs(true)
	s.EmitCloseParen()
	assert.Equal(t, "foo(x = <<A\na\nA)", string(s.Bytes()))
}

func TestNestedHeredocsAreChained(t *testing.T) {
	t.Parallel()

	out := format(newState(0, nil), func(s *emit.State) {
		s.OnLine(1)
		s.EmitIdent("x")
		s.PushHeredocContent("OUTER", false, func(s *emit.State) {
			s.OnLine(2)
			s.EmitStringContent("outer ")
			s.EmitIdent("y")
			s.PushHeredocContent("INNER", false, func(s *emit.State) {
				s.EmitStringContent("inner")
				s.EmitNewline()
			})
		})
		s.EmitNewline()
	})
	assert.Equal(t, "x\nouter y\nOUTER\ninner\nINNER\n", out)
}


func TestHeredocWithoutTerminatorLine(t *testing.T) {
	t.Parallel()

	// Without the walker moving onto the terminator line, the gap to the
	// next statement reads as a blank line.
	out := format(newState(0, nil), func(s *emit.State) {
		assign(1, "x", "<<A", "A", false, "a")(s)
		s.EmitNewline()
		statement(4, "y")(s)
	})
	assert.Equal(t, "x = <<A\na\nA\n\ny\n", out)
}

func TestHeredocIgnoredByMultilineCheck(t *testing.T) {
	t.Parallel()

	s := newState(0, nil)
	s.OnLine(1)
	multiline := s.WillRenderAsMultiline(func(s *emit.State) {
		s.EmitIdent("foo")
		s.BreakableOf(token.Parens(), func(s *emit.State) {
			s.EmitSoftIndent()
			s.EmitIdent("<<~A")
			s.PushHeredocContent("A", true, func(s *emit.State) {
				s.NewBlock(func(s *emit.State) {
					s.OnLine(2)
					s.EmitIndent()
					s.EmitStringContent("x")
					s.EmitNewline()
				})
			})
		})
	})
	assert.False(t, multiline)
	assert.Empty(t, s.Queue())
	assert.Equal(t, 1, s.Line())
}
