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
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/rbfmt"
	"github.com/bufbuild/rbfmt/writer"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	config, err := rbfmt.LoadConfig(strings.NewReader("max_width: 80\ntabstop_width: 4\nmax_parallelism: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, rbfmt.Config{MaxWidth: 80, TabstopWidth: 4, MaxParallelism: 3}, config)

	options := config.Options()
	assert.Equal(t, 80, options.Writer.MaxWidth)
	assert.Equal(t, 4, options.Writer.TabstopWidth)
	assert.NotNil(t, options.Logger)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	config, err := rbfmt.LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, rbfmt.Config{}, config)
	assert.Equal(t, writer.DefaultMaxWidth, config.Options().Writer.MaxWidth)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"max_width: wide\n",
		"max_widht: 80\n",
		"max_width: -1\n",
		"tabstop_width: -2\n",
	} {
		_, err := rbfmt.LoadConfig(strings.NewReader(text))
		assert.Error(t, err, "%q", text)
	}
}

func TestConfigApply(t *testing.T) {
	t.Parallel()

	logger := log.New(io.Discard)
	var f rbfmt.Formatter
	f.Options.Logger = logger

	rbfmt.Config{MaxWidth: 60, MaxParallelism: 2}.Apply(&f)
	assert.Equal(t, 60, f.Options.Writer.MaxWidth)
	assert.Equal(t, 2, f.MaxParallelism)
	assert.Same(t, logger, f.Options.Logger)
}
