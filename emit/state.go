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
	"io"

	"github.com/charmbracelet/log"

	"github.com/bufbuild/rbfmt/comment"
	"github.com/bufbuild/rbfmt/internal/ext/slicesx"
	"github.com/bufbuild/rbfmt/reporter"
	"github.com/bufbuild/rbfmt/token"
	"github.com/bufbuild/rbfmt/writer"
)

// IndentWidth is the number of spaces one indentation level occupies.
const IndentWidth = 2

// Options specifies configuration for a [State].
type Options struct {
	// Options for the writer that renders this State's queue. Heredoc
	// bodies and multi-line probes are rendered with the same options.
	Writer writer.Options

	// Receives debug traces. Nil means discard.
	Logger *log.Logger
}

// WithDefaults replaces any unset (read: zero value) fields of an Options which
// specify a default value with that default value.
func (o Options) WithDefaults() Options {
	o.Writer = o.Writer.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// State is the emission state machine. See the package documentation.
//
// A zero State is not ready to use; call [New].
type State struct {
	options Options

	depths      []int // Indentation levels, not spaces.
	startOfLine []bool
	suppress    []bool
	contexts    []Context
	entries     []*token.Entry // Open breakable entries, innermost last.

	queue []token.Token
	line  int

	comments     *comment.Store
	pending      comment.Block
	blankTrailer bool // A blank line follows the pending comments.

	heredocs  []heredoc
	absorbing int
}

// New returns a new State that draws comments from the given store, which
// may be nil.
func New(options Options, comments *comment.Store) *State {
	return &State{
		options:     options.WithDefaults(),
		depths:      []int{0},
		startOfLine: []bool{true},
		suppress:    []bool{false},
		contexts:    []Context{Main},
		comments:    comments,
	}
}

// child returns an isolated State sharing this State's options, indentation
// and line cursor, and nothing else.
func (s *State) child() *State {
	c := New(s.options, nil)
	c.depths = append(c.depths[:0], s.depths...)
	c.line = s.line
	return c
}

// Push is the single point every token goes through: it appends t to the
// innermost open breakable entry, or to the main queue if none is open.
func (s *State) Push(t token.Token) {
	if e := s.openEntry(); e != nil {
		e.Push(t)
		return
	}
	s.queue = append(s.queue, t)
}

// Queue returns the main token queue. The returned slice must not be
// modified.
func (s *State) Queue() []token.Token {
	return s.queue
}

// Line returns the current original-source line cursor.
func (s *State) Line() int {
	return s.line
}

// Depth returns the current indentation, in spaces.
func (s *State) Depth() int {
	return top(s.depths, "depth") * IndentWidth
}

// AtStartOfLine returns whether the innermost start-of-line flag is set.
func (s *State) AtStartOfLine() bool {
	return top(s.startOfLine, "start-of-line")
}

// SuppressingComments returns whether comments are currently dropped instead
// of being scheduled.
func (s *State) SuppressingComments() bool {
	return top(s.suppress, "comment suppression")
}

// FormattingContext returns the innermost formatting context.
func (s *State) FormattingContext() Context {
	return top(s.contexts, "formatting context")
}

// IsAbsorbingIndents returns whether an absorbing indent block is active.
func (s *State) IsAbsorbingIndents() bool {
	return s.absorbing > 0
}

// NewBlock runs body one indentation level deeper.
func (s *State) NewBlock(body func(*State)) {
	s.shiftDepth(1)
	defer s.shiftDepth(-1)
	body(s)
}

// Dedent runs body one indentation level shallower.
func (s *State) Dedent(body func(*State)) {
	s.shiftDepth(-1)
	defer s.shiftDepth(1)
	body(s)
}

// WithAbsorbingIndentBlock runs body one indentation level deeper, unless an
// absorbing block is already active, in which case body runs at the current
// level.
func (s *State) WithAbsorbingIndentBlock(body func(*State)) {
	nested := s.IsAbsorbingIndents()
	s.absorbing++
	defer func() { s.absorbing-- }()

	if nested {
		body(s)
		return
	}
	s.NewBlock(body)
}

// WithStartOfLine runs body with the start-of-line flag set to v.
func (s *State) WithStartOfLine(v bool, body func(*State)) {
	scoped(s, &s.startOfLine, v, body)
}

// WithSuppressComments runs body with comment suppression set to v.
func (s *State) WithSuppressComments(v bool, body func(*State)) {
	scoped(s, &s.suppress, v, body)
}

// WithFormattingContext runs body inside the given formatting context.
func (s *State) WithFormattingContext(c Context, body func(*State)) {
	scoped(s, &s.contexts, c, body)
}

// BreakableOf captures everything body emits into a new breakable entry framed
// by delims, and pushes the sealed entry as a single token.
//
// The contents are indented one level deeper than the current depth; the
// writer decides later whether the entry is laid out on one line or exploded.
func (s *State) BreakableOf(delims token.Delims, body func(*State)) {
	e := token.NewEntry(s.Depth(), delims)
	if s.line > 0 {
		e.AddLine(s.line)
	}
	s.options.Logger.Debug("opening breakable entry", "delims", delims, "line", s.line, "depth", e.Depth())

	func() {
		s.entries = append(s.entries, e)
		defer slicesx.Pop(&s.entries)

		s.EmitCollapsingNewline()
		s.NewBlock(body)
		s.EmitSoftIndent()
	}()

	s.Push(e.Seal())
}

// Finish completes the queue once traversal is done: pending heredocs and
// comments are flushed, and comments past the last visited line are appended
// at the end.
//
// Finish must be called exactly once, outside of any breakable entry.
func (s *State) Finish() {
	if len(s.entries) > 0 {
		reporter.Panicf("emit", "finish with %d open breakable entries", len(s.entries))
	}

	if last, ok := slicesx.Last(s.queue); ok && !last.IsNewline() {
		s.EmitNewline()
	} else {
		s.ShiftComments()
		s.RenderHeredocs(false)
	}

	if s.SuppressingComments() {
		return
	}
	rest, ok := s.comments.ExtractAll()
	if !ok {
		return
	}
	first := rest.Comments()[0]
	if len(s.queue) > 0 && first.Line-s.line >= 2 {
		s.queue = append(s.queue, token.New(token.HardNewline))
	}
	s.queue = append(s.queue, rest.ToTokens(0)...)
	s.line = rest.Comments()[rest.Len()-1].Line
}

// Bytes renders the main queue.
func (s *State) Bytes() []byte {
	return writer.Render(s.options.Writer, s.queue)
}

// Write renders the main queue to w with a single call to w.Write.
func (s *State) Write(w io.Writer) error {
	return writer.Write(s.options.Writer, s.queue, w)
}

func (s *State) openEntry() *token.Entry {
	e, _ := slicesx.Last(s.entries)
	return e
}

func (s *State) shiftDepth(by int) {
	depth := slicesx.LastPointer(s.depths)
	if depth == nil {
		reporter.Panicf("emit", "depth stack is empty")
	}
	*depth += by
}

// scoped pushes v onto stack for the duration of body.
func scoped[T any](s *State, stack *[]T, v T, body func(*State)) {
	*stack = append(*stack, v)
	defer slicesx.Pop(stack)
	body(s)
}

func top[T any](stack []T, what string) T {
	v, ok := slicesx.Last(stack)
	if !ok {
		reporter.Panicf("emit", "%s stack is empty", what)
	}
	return v
}
