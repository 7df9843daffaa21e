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

package rbfmt_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/rbfmt"
	"github.com/bufbuild/rbfmt/comment"
	"github.com/bufbuild/rbfmt/emit"
	"github.com/bufbuild/rbfmt/internal/corpora"
	"github.com/bufbuild/rbfmt/internal/script"
	"github.com/bufbuild/rbfmt/reporter"
)

func TestCorpus(t *testing.T) {
	t.Parallel()

	corpus := corpora.Corpus{
		Root:      "testdata",
		Refresh:   "RBFMT_REFRESH",
		Extension: "yaml",
		Outputs: []corpora.Output{
			{Extension: "rb"},
			{Extension: "err"},
		},
		Test: func(t *testing.T, path, text string) []string {
			out, err := script.Run([]byte(text))
			if err != nil {
				return []string{"", err.Error() + "\n"}
			}
			return []string{string(out), ""}
		},
	}
	corpus.Run(t)
}

func hello(s *emit.State) {
	s.OnLine(1)
	s.EmitIndent()
	s.EmitIdent("hello")
}

func TestFormat(t *testing.T) {
	t.Parallel()

	comments := comment.NewStore()
	comments.Add(2, "# bye")
	out, err := rbfmt.Format(&rbfmt.Source{
		Path:     "hello.rb",
		Comments: comments,
		Visitor:  rbfmt.VisitorFunc(hello),
	}, emit.Options{})
	require.NoError(t, err)
	assert.Equal(t, "hello\n# bye\n", string(out))
}

func TestFormatViolation(t *testing.T) {
	t.Parallel()

	out, err := rbfmt.Format(&rbfmt.Source{
		Path: "bad.rb",
		Visitor: rbfmt.VisitorFunc(func(s *emit.State) {
			s.EmitIdent("\n")
			s.EmitEnd()
		}),
	}, emit.Options{})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, reporter.IsViolation(err))

	var ewp reporter.ErrorWithPath
	require.ErrorAs(t, err, &ewp)
	assert.Equal(t, "bad.rb", ewp.Path())
	assert.Equal(t, "bad.rb: rbfmt/token: bare newline emitted as a direct part", err.Error())
}

func TestFormatOtherPanicsPropagate(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "boom", func() {
		_, _ = rbfmt.Format(&rbfmt.Source{
			Visitor: rbfmt.VisitorFunc(func(*emit.State) { panic("boom") }),
		}, emit.Options{})
	})
}

func TestFormatNoVisitor(t *testing.T) {
	t.Parallel()

	_, err := rbfmt.Format(&rbfmt.Source{Path: "empty.rb"}, emit.Options{})
	require.Error(t, err)
	assert.False(t, reporter.IsViolation(err))
}

type failingSink struct{}

var errSink = errors.New("disk full")

func (failingSink) Write([]byte) (int, error) { return 0, errSink }

func TestFormatTo(t *testing.T) {
	t.Parallel()

	src := func() *rbfmt.Source {
		return &rbfmt.Source{Path: "hello.rb", Visitor: rbfmt.VisitorFunc(hello)}
	}

	var buf bytes.Buffer
	require.NoError(t, rbfmt.FormatTo(&buf, src(), emit.Options{}))
	assert.Equal(t, "hello\n", buf.String())

	err := rbfmt.FormatTo(failingSink{}, src(), emit.Options{})
	require.ErrorIs(t, err, errSink)
	assert.Contains(t, err.Error(), "hello.rb")
}
