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

import "fmt"

// Context is a formatting context tag, pushed around a sub-render to bias
// formatting decisions made further down.
type Context int8

const (
	Main Context = iota
	Assign
	Binary
	ClassOrModule
	Def
	CurlyBlock
	ArgsList
	Heredoc
)

var contextNames = [...]string{
	Main:          "Main",
	Assign:        "Assign",
	Binary:        "Binary",
	ClassOrModule: "ClassOrModule",
	Def:           "Def",
	CurlyBlock:    "CurlyBlock",
	ArgsList:      "ArgsList",
	Heredoc:       "Heredoc",
}

// String implements [fmt.Stringer].
func (c Context) String() string {
	if c < 0 || int(c) >= len(contextNames) {
		return fmt.Sprintf("Context(%d)", int(c))
	}
	return contextNames[c]
}

// ParseContext is the inverse of [Context.String].
func ParseContext(name string) (Context, bool) {
	for c, n := range contextNames {
		if n == name {
			return Context(c), true
		}
	}
	return 0, false
}
