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

// Slice is a materialized [Input] over a slice of arbitrary tokens, such as
// bytes or the output of a separate lexer.
//
// Positions count tokens rather than bytes. A token equal to '\n' (as a rune
// or a byte) starts a new line.
type Slice[T comparable] struct {
	origin *[]T
	off    int
	pos    Position
	live   tracker
}

// NewSlice returns a new input over tokens. The slice must not be modified
// while the input is in use.
func NewSlice[T comparable](tokens []T) *Slice[T] {
	return &Slice[T]{origin: &tokens, pos: StartPosition()}
}

// Next implements [Input].
func (s *Slice[T]) Next() (T, bool) {
	tok, ok := s.Peek()
	if ok {
		s.off++
		s.pos.Advance(isNewline(tok), 1)
	}
	return tok, ok
}

// Peek implements [Input].
func (s *Slice[T]) Peek() (T, bool) {
	if rest := s.Rest(); len(rest) > 0 {
		return rest[0], true
	}
	var z T
	return z, false
}

// Pos implements [Input].
func (s *Slice[T]) Pos() Position {
	return s.pos
}

// Cursor implements [Input].
func (s *Slice[T]) Cursor() *Cursor {
	return newCursor(s)
}

// Rest returns the tokens that have not been consumed yet.
func (s *Slice[T]) Rest() []T {
	return (*s.origin)[s.off:]
}

// Clone returns an independent view of the same input, at the same position.
func (s *Slice[T]) Clone() *Slice[T] {
	return &Slice[T]{origin: s.origin, off: s.off, pos: s.pos}
}

// Diff returns the tokens consumed between s and a later view of the same
// input. The result aliases the original slice.
//
// Panics if the two views are not from the same call to [NewSlice], or if
// later is behind s.
func (s *Slice[T]) Diff(later *Slice[T]) []T {
	if s.origin != later.origin {
		panic("parsec: Diff of views of unrelated inputs")
	}
	if later.off < s.off {
		panic("parsec: Diff argument is behind the receiver")
	}
	return (*s.origin)[s.off:later.off:later.off]
}

func (s *Slice[T]) mark() mark { return mark{offset: s.off, pos: s.pos} }
func (s *Slice[T]) rewind(m mark) { s.off, s.pos = m.offset, m.pos }
func (s *Slice[T]) cursors() *tracker { return &s.live }
func (s *Slice[T]) release() {}
func (s *Slice[T]) spanSince(m mark) []T {
	return (*s.origin)[m.offset:s.off:s.off]
}
