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

// Package emit contains the emission state machine that sits between a
// syntax-tree walker and the [writer].
//
// A walker calls one emitter per syntactic construct on a [State], and calls
// [State.OnLine] whenever it crosses into a new line of the original source.
// The State turns those calls into a flat queue of [token.Token] values,
// placing comments and preserved blank lines along the way, deferring heredoc
// bodies until their statement line is complete, and capturing breakable
// groups into [token.Entry] values whose layout is decided later by the
// writer.
//
// A State is single-threaded and exclusively owned by one traversal. Heredoc
// bodies and multi-line probes are rendered on isolated child States that
// inherit only the indentation of their parent.
//
// # Failure
//
// Emitting in a way that breaks the State's structural contract, such as
// leaving a scoped stack empty or emitting a raw "\n" as a direct part,
// panics with a [*reporter.Violation]. Callers that want an error instead
// should defer [reporter.Recover].
package emit
