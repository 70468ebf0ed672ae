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
	"fmt"
)

// Position represents a position within an input.
type Position struct {
	// The number of bytes consumed so far. For a [Slice] input, this is the
	// number of tokens consumed instead.
	Offset int
	// One-based line and column numbers. Columns count tokens, not bytes.
	Line, Column int
}

// StartPosition returns the Position for the start of an input.
func StartPosition() Position {
	return Position{Line: 1, Column: 1}
}

// Advance updates the position, given the token encountered at the current
// position and the number of bytes used to encode it.
//
// A newline moves to the start of the next line; anything else moves one
// column to the right.
func (pos *Position) Advance(newline bool, size int) {
	if size < 0 {
		panic("parsec: negative token size")
	}

	pos.Offset += size
	if newline {
		pos.Line++
		pos.Column = 1
	} else {
		pos.Column++
	}
}

// String implements [fmt.Stringer].
func (pos Position) String() string {
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

// isNewline reports whether a token of arbitrary type is a line feed.
func isNewline[T comparable](tok T) bool {
	switch tok := any(tok).(type) {
	case rune:
		return tok == '\n'
	case byte:
		return tok == '\n'
	default:
		return false
	}
}
