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

package stringsx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/rbfmt/internal/ext/stringsx"
)

func TestLastLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", stringsx.LastLine("abc"))
	assert.Equal(t, "def", stringsx.LastLine("abc\ndef"))
	assert.Empty(t, stringsx.LastLine("abc\n"))
	assert.Empty(t, stringsx.LastLine(""))
}

func TestTrimNewlines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a", stringsx.TrimNewlines("a\n\n", 2))
	assert.Equal(t, "a\n", stringsx.TrimNewlines("a\n\n\n", 2))
	assert.Equal(t, "a\n", stringsx.TrimNewlines("a\n\n", 1))
	assert.Equal(t, "a", stringsx.TrimNewlines("a", 2))
	assert.Empty(t, stringsx.TrimNewlines("\n", 2))
	assert.Equal(t, "a\n", stringsx.TrimNewlines("a\n", 0))
}
