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

// Package stringsx contains extensions to Go's package strings.
package stringsx

import "strings"

// LastLine returns the substring of s after the last newline. If s has no
// newline, it returns s.
func LastLine(s string) string {
	return s[strings.LastIndexByte(s, '\n')+1:]
}

// TrimNewlines removes up to n trailing newline characters from s.
func TrimNewlines(s string, n int) string {
	for ; n > 0 && strings.HasSuffix(s, "\n"); n-- {
		s = s[:len(s)-1]
	}
	return s
}
