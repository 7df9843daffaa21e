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

import "strings"

// Delims is the pair of delimiters framing a breakable group, along with the
// separator appended after the last item when the group is exploded.
//
// The flat and broken forms may differ: a bare list such as the values of a
// return statement has no delimiters on one line, but becomes an explicit
// array literal when exploded.
type Delims struct {
	flatOpen, flatClose     string
	brokenOpen, brokenClose string
	trailing                string
}

// NewDelims returns delimiters that render the same way in both modes.
func NewDelims(open, closer, trailing string) Delims {
	return Delims{
		flatOpen: open, flatClose: closer,
		brokenOpen: open, brokenClose: closer,
		trailing: trailing,
	}
}

// Parens delimits call arguments and parameter lists.
func Parens() Delims { return NewDelims("(", ")", ",") }

// Brackets delimits array literals and index arguments.
func Brackets() Delims { return NewDelims("[", "]", ",") }

// Braces delimits hash literals. On a single line the contents are padded
// with one space on each side.
func Braces() Delims {
	return Delims{
		flatOpen: "{ ", flatClose: " }",
		brokenOpen: "{", brokenClose: "}",
		trailing: ",",
	}
}

// Pipes delimits block parameters. Exploded block parameters take no
// trailing separator.
func Pipes() Delims { return NewDelims("|", "|", "") }

// Bare is used for lists with no delimiters of their own, such as the values
// of a return statement. When exploded, the list is wrapped in brackets.
func Bare() Delims {
	return Delims{
		brokenOpen: "[", brokenClose: "]",
		trailing: ",",
	}
}

// Open returns the opening delimiter for the given mode.
func (d Delims) Open(mode Mode) string {
	if mode == SingleLine {
		return d.flatOpen
	}
	return d.brokenOpen
}

// Close returns the closing delimiter for the given mode.
func (d Delims) Close(mode Mode) string {
	if mode == SingleLine {
		return d.flatClose
	}
	return d.brokenClose
}

// Trailing returns the separator appended after the last item of an
// exploded group. May be empty.
func (d Delims) Trailing() string {
	return d.trailing
}

// String implements [fmt.Stringer].
func (d Delims) String() string {
	open := strings.TrimSpace(d.flatOpen)
	if open == "" {
		open = d.brokenOpen
	}
	closer := strings.TrimSpace(d.flatClose)
	if closer == "" {
		closer = d.brokenClose
	}
	return open + "..." + closer
}
