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

package report

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// TabstopWidth is the size we render all tabstops as.
const TabstopWidth int = 4

// NonPrint defines whether or not a rune is considered "unprintable for the
// purposes of diagnostics", that is, whether it is a rune that the renderer
// will replace with <U+NNNN> when printing.
func NonPrint(r rune) bool {
	return !strings.ContainsRune(" \r\t\n", r) && !unicode.IsPrint(r)
}

// expand renders text for display starting at the given column: tabs are
// expanded to the next tabstop, and unprintable runes are escaped.
//
// Returns the rendered text and the column just past it.
func expand(column int, text string) (string, int) {
	var out strings.Builder
	for text != "" {
		next := strings.IndexFunc(text, func(r rune) bool { return r == '\t' || NonPrint(r) })
		chunk := text
		if next != -1 {
			chunk = text[:next]
		}
		out.WriteString(chunk)
		column += uniseg.StringWidth(chunk)
		if next == -1 {
			break
		}

		r, n := utf8.DecodeRuneInString(text[next:])
		text = text[next+n:]
		if r == '\t' {
			tab := TabstopWidth - (column % TabstopWidth)
			out.WriteString(strings.Repeat(" ", tab))
			column += tab
			continue
		}

		escape := fmt.Sprintf("<U+%04X>", r)
		out.WriteString(escape)
		column += len(escape)
	}
	return out.String(), column
}
