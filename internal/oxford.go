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

// Package internal contains helpers shared by parsec's packages.
package internal

import "strings"

// Oxford joins a list of phrases with commas, using the given conjunction
// (such as "or") before the last one. An Oxford comma is included only when
// there are more than two phrases.
func Oxford(conjunction string, phrases ...string) string {
	switch len(phrases) {
	case 0:
		return ""
	case 1:
		return phrases[0]
	case 2:
		return phrases[0] + " " + conjunction + " " + phrases[1]
	}

	var out strings.Builder
	for _, p := range phrases[:len(phrases)-1] {
		out.WriteString(p)
		out.WriteString(", ")
	}
	out.WriteString(conjunction)
	out.WriteString(" ")
	out.WriteString(phrases[len(phrases)-1])
	return out.String()
}
