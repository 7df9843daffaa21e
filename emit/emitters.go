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

// EmitIndent indents the current line to the current depth.
func (s *State) EmitIndent() {
	s.Push(token.NewIndent(token.Indent, s.Depth()))
}

// EmitSoftIndent indents to the current depth only if the enclosing entry is
// exploded.
func (s *State) EmitSoftIndent() {
	s.Push(token.NewIndent(token.SoftIndent, s.Depth()))
}

// EmitNewline flushes pending comments above the current line, ends it, and
// renders any heredocs whose bodies were waiting for it.
func (s *State) EmitNewline() {
	s.newline()
	s.RenderHeredocs(false)
}

// EmitSoftNewline emits a newline that collapses to a space when the
// enclosing entry is laid out flat.
func (s *State) EmitSoftNewline() { s.Push(token.New(token.SoftNewline)) }

// EmitCollapsingNewline emits a newline that disappears when the enclosing
// entry is laid out flat.
func (s *State) EmitCollapsingNewline() { s.Push(token.New(token.CollapsingNewline)) }

// Text emitters.

func (s *State) EmitIdent(name string) { s.Push(token.NewText(token.Direct, name)) }
func (s *State) EmitKeyword(kw string) { s.Push(token.NewText(token.Keyword, kw)) }
func (s *State) EmitOp(op string) { s.Push(token.NewText(token.Op, op)) }
func (s *State) EmitStringContent(text string) { s.Push(token.NewText(token.StringContent, text)) }
func (s *State) EmitDelim(delim string) { s.Push(token.NewText(token.Delim, delim)) }

// Punctuation emitters.

func (s *State) EmitDoubleQuote() { s.Push(token.New(token.DoubleQuote)) }
func (s *State) EmitComma() { s.Push(token.New(token.Comma)) }
func (s *State) EmitCommaSpace() { s.Push(token.New(token.CommaSpace)) }
func (s *State) EmitSpace() { s.Push(token.New(token.Space)) }
func (s *State) EmitDot() { s.Push(token.New(token.Dot)) }
func (s *State) EmitColonColon() { s.Push(token.New(token.ColonColon)) }
func (s *State) EmitLonelyOperator() { s.Push(token.New(token.LonelyOperator)) }
func (s *State) EmitSlash() { s.Push(token.New(token.Slash)) }
func (s *State) EmitOpenParen() { s.Push(token.New(token.OpenParen)) }
func (s *State) EmitCloseParen() { s.Push(token.New(token.CloseParen)) }

func (s *State) EmitOpenSquareBracket() { s.Push(token.New(token.OpenSquareBracket)) }
func (s *State) EmitCloseSquareBracket() { s.Push(token.New(token.CloseSquareBracket)) }

// EmitDef emits "def" followed by the method name.
func (s *State) EmitDef(name string) {
	s.EmitKeyword("def")
	s.EmitSpace()
	s.EmitIdent(name)
}

// Keyword emitters.

func (s *State) EmitDo() { s.EmitKeyword("do") }
func (s *State) EmitClass() { s.EmitKeyword("class") }
func (s *State) EmitModule() { s.EmitKeyword("module") }
func (s *State) EmitCase() { s.EmitKeyword("case") }
func (s *State) EmitWhen() { s.EmitKeyword("when") }
func (s *State) EmitRescue() { s.EmitKeyword("rescue") }
func (s *State) EmitEnsure() { s.EmitKeyword("ensure") }
func (s *State) EmitBegin() { s.EmitKeyword("begin") }
func (s *State) EmitElse() { s.EmitKeyword("else") }

// EmitEnd closes a block with "end" on a line of its own.
func (s *State) EmitEnd() {
	if last, ok := slicesx.Last(s.queue); !ok || !last.IsNewline() {
		s.EmitNewline()
	}
	if s.AtStartOfLine() {
		s.EmitIndent()
	}
	s.Push(token.New(token.End))
}

// newline ends the current line without rendering heredocs.
func (s *State) newline() {
	s.ShiftComments()
	s.Push(token.New(token.HardNewline))
}
