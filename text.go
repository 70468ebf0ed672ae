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

package parsec

import (
	"unicode/utf8"
)

// Text is a materialized [Input] over the runes of a string.
//
// Text never copies its source: [Text.Clone] is a handful of words, and
// [Text.Diff] and [Recognize] return substrings of the original string.
// Invalid UTF-8 is read as [utf8.RuneError], one byte at a time.
type Text struct {
	origin *textOrigin
	off    int
	pos    Position
	live   tracker
}

// textOrigin identifies the source of a family of cloned Texts.
type textOrigin struct {
	src  string
	memo *memoTable
}

var (
	_ Input[rune] = (*Text)(nil)
	_ spanner     = (*Text)(nil)
)

// NewText returns a new input over s.
func NewText(s string) *Text {
	return &Text{
		origin: &textOrigin{src: s},
		pos:    StartPosition(),
	}
}

// Next implements [Input].
func (t *Text) Next() (rune, bool) {
	r, n := t.decode()
	if n == 0 {
		return 0, false
	}
	t.off += n
	t.pos.Advance(r == '\n', n)
	return r, true
}

// Peek implements [Input].
func (t *Text) Peek() (rune, bool) {
	r, n := t.decode()
	return r, n > 0
}

// Pos implements [Input].
func (t *Text) Pos() Position {
	return t.pos
}

// Cursor implements [Input].
func (t *Text) Cursor() *Cursor {
	return newCursor(t)
}

// Offset returns the byte offset of the next rune.
func (t *Text) Offset() int {
	return t.off
}

// Rest returns the text that has not been consumed yet.
func (t *Text) Rest() string {
	return t.origin.src[t.off:]
}

// Clone returns an independent view of the same input, at the same position.
//
// Backtracking by cloning is an alternative to using a [Cursor]: try a branch
// on the clone, and throw it away if the branch fails.
func (t *Text) Clone() *Text {
	return &Text{origin: t.origin, off: t.off, pos: t.pos}
}

// Diff returns the text consumed between t and a later view of the same
// input, such as a clone of t that has since been advanced.
//
// Panics if the two views are not from the same call to [NewText], or if
// later is behind t.
func (t *Text) Diff(later *Text) string {
	if t.origin != later.origin {
		panic("parsec: Diff of views of unrelated inputs")
	}
	if later.off < t.off {
		panic("parsec: Diff argument is behind the receiver")
	}
	return t.origin.src[t.off:later.off]
}

func (t *Text) decode() (rune, int) {
	rest := t.Rest()
	if rest == "" {
		return 0, 0
	}
	if b := rest[0]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(rest)
}

func (t *Text) mark() mark { return mark{offset: t.off, pos: t.pos} }
func (t *Text) rewind(m mark) { t.off, t.pos = m.offset, m.pos }
func (t *Text) cursors() *tracker { return &t.live }
func (t *Text) release() {}
func (t *Text) spanSince(m mark) string { return t.origin.src[m.offset:t.off] }
