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
	"bytes"
	"strings"

	"github.com/bufbuild/rbfmt/internal/ext/slicesx"
	"github.com/bufbuild/rbfmt/internal/ext/stringsx"
	"github.com/bufbuild/rbfmt/token"
)

// heredoc is a rendered heredoc body waiting for its statement line to end.
type heredoc struct {
	symbol   string // Terminator, possibly quoted.
	squiggly bool   // Terminator is indented.
	body     []byte
}

// PushHeredocContent renders a heredoc body on an isolated child State and
// schedules it to be written after the current line ends.
//
// Heredocs opened while rendering the body are not nested inside it; they are
// scheduled on this State and written after it.
func (s *State) PushHeredocContent(symbol string, squiggly bool, body func(*State)) {
	c := s.child()
	body(c)
	s.heredocs = append(s.heredocs, c.heredocs...)
	c.heredocs = nil
	c.EmitNewline()

	s.heredocs = append(s.heredocs, heredoc{
		symbol:   symbol,
		squiggly: squiggly,
		body:     c.Bytes(),
	})
	s.options.Logger.Debug("deferring heredoc", "symbol", symbol, "squiggly", squiggly, "pending", len(s.heredocs))
}

// RenderHeredocs writes every pending heredoc, most recently scheduled first:
// its body verbatim, then its terminator on a line of its own. If skip is
// set, the line holding the last terminator is left open.
//
// Up to two trailing newlines are trimmed from each body, and the line
// cursor is advanced by the number of newlines left inside it. A walker that
// resumes below the terminator moves the cursor onto the terminator's line
// inside the [Heredoc] context, where no blank line is synthesized.
func (s *State) RenderHeredocs(skip bool) {
	for len(s.heredocs) > 0 {
		h, _ := slicesx.Pop(&s.heredocs)
		s.options.Logger.Debug("rendering heredoc", "symbol", h.symbol, "line", s.line)

		if last, ok := slicesx.Last(s.queue); !ok || !last.IsNewline() {
			s.Push(token.New(token.HardNewline))
		}

		body := stringsx.TrimNewlines(string(h.body), 2)
		lines := strings.Count(body, "\n")
		s.WithFormattingContext(Heredoc, func(s *State) {
			s.WindLines(lines)
		})

		if body != "" {
			for i, line := range strings.Split(body, "\n") {
				if i > 0 {
					s.Push(token.New(token.HardNewline))
				}
				s.Push(token.NewText(token.Direct, line))
			}
			s.newline()
		}
		if h.squiggly {
			s.EmitIndent()
		}
		s.EmitIdent(strings.Trim(h.symbol, `'"`))
		if !skip {
			s.newline()
		}
	}
}

// WillRenderAsMultiline renders what body emits on an isolated child State
// and reports whether the result spans more than one line. Heredocs opened by
// body are not rendered and do not count. Nothing body emits reaches this
// State.
func (s *State) WillRenderAsMultiline(body func(*State)) bool {
	c := s.child()
	body(c)
	return bytes.Contains(bytes.TrimSpace(c.Bytes()), []byte("\n"))
}
