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

// Package token defines the atomic units that the emission state machine
// queues up for rendering.
//
// A [Token] is a value of a closed set of kinds (see [Kind]). Most kinds are
// fixed pieces of text, such as a comma or the "end" keyword. A few carry
// layout meaning instead: newlines and indentation that render differently
// depending on whether the group containing them is laid out on one line or
// exploded across many. Those groups are [Entry] values, which are themselves
// wrapped into a token of kind [Breakable] once they are sealed.
//
// Every function in this package that switches over [Kind] is exhaustive,
// and a token of a kind outside the set is a fatal [reporter.Violation].
package token
