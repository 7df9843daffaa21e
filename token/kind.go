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

import "fmt"

// Kind identifies which variant of [Token] a token is.
type Kind int8

const (
	Unknown Kind = iota

	CollapsingNewline // Newline, or nothing when rendered on a single line.
	HardNewline       // Always a newline.
	SoftNewline       // Newline, or a space when rendered on a single line.

	Indent     // Indentation to a fixed depth.
	SoftIndent // Indentation, or nothing when rendered on a single line.

	Keyword
	Direct // Arbitrary text: identifiers, literals, pre-rendered bodies.
	CommaSpace
	Comma
	Space
	Dot
	ColonColon
	LonelyOperator // &.
	OpenSquareBracket
	CloseSquareBracket
	OpenParen
	CloseParen
	Breakable // A sealed [Entry].
	Op
	DoubleQuote
	StringContent
	Slash
	Comment // Comment text; always followed by a newline when rendered.
	Delim
	End

	kindCount
)

var kindNames = [...]string{
	Unknown:            "Unknown",
	CollapsingNewline:  "CollapsingNewline",
	HardNewline:        "HardNewline",
	SoftNewline:        "SoftNewline",
	Indent:             "Indent",
	SoftIndent:         "SoftIndent",
	Keyword:            "Keyword",
	Direct:             "Direct",
	CommaSpace:         "CommaSpace",
	Comma:              "Comma",
	Space:              "Space",
	Dot:                "Dot",
	ColonColon:         "ColonColon",
	LonelyOperator:     "LonelyOperator",
	OpenSquareBracket:  "OpenSquareBracket",
	CloseSquareBracket: "CloseSquareBracket",
	OpenParen:          "OpenParen",
	CloseParen:         "CloseParen",
	Breakable:          "Breakable",
	Op:                 "Op",
	DoubleQuote:        "DoubleQuote",
	StringContent:      "StringContent",
	Slash:              "Slash",
	Comment:            "Comment",
	Delim:              "Delim",
	End:                "End",
}

// Kinds returns every valid kind, in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := Unknown + 1; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsValid returns whether this is one of the kinds in [Kinds].
func (k Kind) IsValid() bool {
	return k > Unknown && k < kindCount
}

// HasText returns whether tokens of this kind carry caller-provided text.
func (k Kind) HasText() bool {
	switch k {
	case Keyword, Direct, Op, StringContent, Comment, Delim:
		return true
	default:
		return false
	}
}

// HasDepth returns whether tokens of this kind carry an indentation depth.
func (k Kind) HasDepth() bool {
	return k == Indent || k == SoftIndent
}
