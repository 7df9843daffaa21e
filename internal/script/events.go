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

package script

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/rbfmt/emit"
	"github.com/bufbuild/rbfmt/token"
)

type step func(*emit.State)

func run(s *emit.State, steps []step) {
	for _, f := range steps {
		f(s)
	}
}

// body wraps steps for the scoped helpers of [emit.State].
func body(steps []step) func(*emit.State) {
	return func(s *emit.State) { run(s, steps) }
}

var scalars = map[string]step{
	"newline":            (*emit.State).EmitNewline,
	"soft_newline":       (*emit.State).EmitSoftNewline,
	"collapsing_newline": (*emit.State).EmitCollapsingNewline,
	"indent":             (*emit.State).EmitIndent,
	"soft_indent":        (*emit.State).EmitSoftIndent,
	"comma":              (*emit.State).EmitComma,
	"comma_space":        (*emit.State).EmitCommaSpace,
	"space":              (*emit.State).EmitSpace,
	"dot":                (*emit.State).EmitDot,
	"colon_colon":        (*emit.State).EmitColonColon,
	"lonely_operator":    (*emit.State).EmitLonelyOperator,
	"slash":              (*emit.State).EmitSlash,
	"double_quote":       (*emit.State).EmitDoubleQuote,
	"open_paren":         (*emit.State).EmitOpenParen,
	"close_paren":        (*emit.State).EmitCloseParen,
	"open_bracket":       (*emit.State).EmitOpenSquareBracket,
	"close_bracket":      (*emit.State).EmitCloseSquareBracket,
	"do":                 (*emit.State).EmitDo,
	"class":              (*emit.State).EmitClass,
	"module":             (*emit.State).EmitModule,
	"case":               (*emit.State).EmitCase,
	"when":               (*emit.State).EmitWhen,
	"rescue":             (*emit.State).EmitRescue,
	"ensure":             (*emit.State).EmitEnsure,
	"begin":              (*emit.State).EmitBegin,
	"else":               (*emit.State).EmitElse,
	"end":                (*emit.State).EmitEnd,
	"wind_line":          (*emit.State).WindLineForward,
	"shift_comments":     (*emit.State).ShiftComments,
}

var texts = map[string]func(*emit.State, string){
	"ident":   (*emit.State).EmitIdent,
	"keyword": (*emit.State).EmitKeyword,
	"op":      (*emit.State).EmitOp,
	"string":  (*emit.State).EmitStringContent,
	"delim":   (*emit.State).EmitDelim,
	"def":     (*emit.State).EmitDef,
}

var blocks = map[string]func(*emit.State, func(*emit.State)){
	"block":     (*emit.State).NewBlock,
	"dedent":    (*emit.State).Dedent,
	"absorbing": (*emit.State).WithAbsorbingIndentBlock,
}

var delims = map[string]func() token.Delims{
	"parens":   token.Parens,
	"brackets": token.Brackets,
	"braces":   token.Braces,
	"pipes":    token.Pipes,
	"bare":     token.Bare,
}

func compile(nodes []yaml.Node) ([]step, error) {
	steps := make([]step, 0, len(nodes))
	for i := range nodes {
		f, err := compileEvent(&nodes[i])
		if err != nil {
			return nil, err
		}
		steps = append(steps, f)
	}
	return steps, nil
}

func compileEvent(n *yaml.Node) (step, error) {
	if n.Kind == yaml.ScalarNode {
		if f, ok := scalars[n.Value]; ok {
			return f, nil
		}
		return nil, fmt.Errorf("line %d: unknown event %q", n.Line, n.Value)
	}

	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return nil, fmt.Errorf("line %d: an event must be a name or a single-key mapping", n.Line)
	}
	name, arg := n.Content[0].Value, n.Content[1]

	if f, ok := texts[name]; ok {
		var text string
		if err := arg.Decode(&text); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", n.Line, name, err)
		}
		return func(s *emit.State) { f(s, text) }, nil
	}

	if scope, ok := blocks[name]; ok {
		steps, err := compileBody(arg)
		if err != nil {
			return nil, err
		}
		return func(s *emit.State) { scope(s, body(steps)) }, nil
	}

	switch name {
	case "line", "wind":
		var line int
		if err := arg.Decode(&line); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", n.Line, name, err)
		}
		if name == "wind" {
			return func(s *emit.State) { s.WindLines(line) }, nil
		}
		return func(s *emit.State) { s.OnLine(line) }, nil

	case "render_heredocs":
		var skip bool
		if err := arg.Decode(&skip); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", n.Line, name, err)
		}
		return func(s *emit.State) { s.RenderHeredocs(skip) }, nil

	case "suppress_comments", "start_of_line":
		var v struct {
			Value bool      `yaml:"value"`
			Body  yaml.Node `yaml:"body"`
		}
		if err := arg.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", n.Line, name, err)
		}
		steps, err := compileBody(&v.Body)
		if err != nil {
			return nil, err
		}
		if name == "suppress_comments" {
			return func(s *emit.State) { s.WithSuppressComments(v.Value, body(steps)) }, nil
		}
		return func(s *emit.State) { s.WithStartOfLine(v.Value, body(steps)) }, nil

	case "context":
		var v struct {
			Name string    `yaml:"name"`
			Body yaml.Node `yaml:"body"`
		}
		if err := arg.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", n.Line, name, err)
		}
		c, ok := emit.ParseContext(v.Name)
		if !ok {
			return nil, fmt.Errorf("line %d: unknown formatting context %q", n.Line, v.Name)
		}
		steps, err := compileBody(&v.Body)
		if err != nil {
			return nil, err
		}
		return func(s *emit.State) { s.WithFormattingContext(c, body(steps)) }, nil

	case "breakable":
		var v struct {
			Delims string    `yaml:"delims"`
			Body   yaml.Node `yaml:"body"`
		}
		if err := arg.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", n.Line, name, err)
		}
		d, ok := delims[v.Delims]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown delimiters %q", n.Line, v.Delims)
		}
		steps, err := compileBody(&v.Body)
		if err != nil {
			return nil, err
		}
		return func(s *emit.State) { s.BreakableOf(d(), body(steps)) }, nil

	case "heredoc":
		var v struct {
			Symbol   string    `yaml:"symbol"`
			Squiggly bool      `yaml:"squiggly"`
			Body     yaml.Node `yaml:"body"`
		}
		if err := arg.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", n.Line, name, err)
		}
		steps, err := compileBody(&v.Body)
		if err != nil {
			return nil, err
		}
		return func(s *emit.State) { s.PushHeredocContent(v.Symbol, v.Squiggly, body(steps)) }, nil

	case "probe":
		// Chooses between two renderings depending on whether body would
		// span several lines.
		var v struct {
			Body      yaml.Node `yaml:"body"`
			Multiline yaml.Node `yaml:"multiline"`
			Flat      yaml.Node `yaml:"flat"`
		}
		if err := arg.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", n.Line, name, err)
		}
		probe, err := compileBody(&v.Body)
		if err != nil {
			return nil, err
		}
		multi, err := compileBody(&v.Multiline)
		if err != nil {
			return nil, err
		}
		flat, err := compileBody(&v.Flat)
		if err != nil {
			return nil, err
		}
		return func(s *emit.State) {
			if s.WillRenderAsMultiline(body(probe)) {
				run(s, multi)
			} else {
				run(s, flat)
			}
		}, nil
	}

	return nil, fmt.Errorf("line %d: unknown event %q", n.Line, name)
}

// compileBody compiles a sequence of events. A missing body is empty.
func compileBody(n *yaml.Node) ([]step, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.SequenceNode:
		steps := make([]step, 0, len(n.Content))
		for _, event := range n.Content {
			f, err := compileEvent(event)
			if err != nil {
				return nil, err
			}
			steps = append(steps, f)
		}
		return steps, nil
	default:
		return nil, fmt.Errorf("line %d: a body must be a sequence of events", n.Line)
	}
}
