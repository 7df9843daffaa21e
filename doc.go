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

// Package rbfmt is the rendering core of a formatter for Ruby source code.
//
// A formatter front end parses a file, collects its comments into a
// [comment.Store] and walks its syntax tree, calling one emitter per
// construct on an [emit.State]. This package drives that walk: [Format]
// formats one [Source], and a [Formatter] formats many of them in parallel.
//
// The packages underneath do the actual work:
//   - token: the closed set of line tokens and breakable entries.
//   - comment: comments waiting to be placed, keyed by original line.
//   - emit: the emission state machine the walker talks to.
//   - writer: width-aware layout of the finished token queue.
//   - reporter: error reporting for batch runs, and the fatal violations
//     raised when a walker breaks the emission contract.
//
// Output is deterministic: the same walk over the same comments, with the
// same width, always produces the same bytes.
package rbfmt
