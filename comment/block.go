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

package comment

import "github.com/bufbuild/rbfmt/token"

// Comment is a single comment and the original line it was found on.
type Comment struct {
	Line int
	Text string
}

// Block is an ordered run of comments detached from a [Store], waiting to be
// inserted into a token queue.
//
// A zero Block is empty and ready to use.
type Block struct {
	comments []Comment
}

// NewBlock returns a block containing the given comments, in order.
func NewBlock(comments ...Comment) Block {
	return Block{comments: comments}
}

// Len returns the number of comments in this block.
func (b Block) Len() int {
	return len(b.comments)
}

// IsEmpty returns whether this block has no comments.
func (b Block) IsEmpty() bool {
	return len(b.comments) == 0
}

// Comments returns the comments in this block. The returned slice must not
// be modified.
func (b Block) Comments() []Comment {
	return b.comments
}

// Merge appends the comments of other to this block, preserving the relative
// order of both.
func (b *Block) Merge(other Block) {
	b.comments = append(b.comments, other.comments...)
}

// Reset empties this block.
func (b *Block) Reset() {
	b.comments = nil
}

// ToTokens renders this block as tokens: every comment is indented to depth
// spaces and followed by a hard newline.
//
// When two consecutive comments were separated by blank lines in the
// original source, a single blank line is kept between them.
func (b Block) ToTokens(depth int) []token.Token {
	tokens := make([]token.Token, 0, 3*len(b.comments))
	for i, c := range b.comments {
		if i > 0 && c.Line-b.comments[i-1].Line >= 2 {
			tokens = append(tokens, token.New(token.HardNewline))
		}
		if depth > 0 {
			tokens = append(tokens, token.NewIndent(token.Indent, depth))
		}
		tokens = append(tokens,
			token.NewText(token.Comment, c.Text),
			token.New(token.HardNewline),
		)
	}
	return tokens
}
