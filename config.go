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

package rbfmt

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/rbfmt/emit"
	"github.com/bufbuild/rbfmt/writer"
)

// Config is the on-disk configuration of a formatting run.
//
//	max_width: 100
//	tabstop_width: 2
//	max_parallelism: 4
type Config struct {
	MaxWidth       int `yaml:"max_width"`
	TabstopWidth   int `yaml:"tabstop_width"`
	MaxParallelism int `yaml:"max_parallelism"`
}

// LoadConfig decodes a YAML configuration. Unknown keys are an error. An
// empty document yields the zero Config, which means every default.
func LoadConfig(r io.Reader) (Config, error) {
	var config Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("rbfmt: decoding config: %w", err)
	}

	switch {
	case config.MaxWidth < 0:
		return Config{}, fmt.Errorf("rbfmt: max_width must not be negative, got %d", config.MaxWidth)
	case config.TabstopWidth < 0:
		return Config{}, fmt.Errorf("rbfmt: tabstop_width must not be negative, got %d", config.TabstopWidth)
	}
	return config, nil
}

// Options returns the emission options described by this config.
func (c Config) Options() emit.Options {
	return emit.Options{
		Writer: writer.Options{
			MaxWidth:     c.MaxWidth,
			TabstopWidth: c.TabstopWidth,
		},
	}.WithDefaults()
}

// Apply copies this config onto f.
func (c Config) Apply(f *Formatter) {
	logger := f.Options.Logger
	f.Options = c.Options()
	if logger != nil {
		f.Options.Logger = logger
	}
	f.MaxParallelism = c.MaxParallelism
}
