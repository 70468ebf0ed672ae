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

// Input is a sequence of tokens that parsers consume.
//
// An Input is mutable: consuming a token advances it, and the value passed to
// a [Parser] is left positioned at the parser's continuation. Rolling back is
// done with a [Cursor].
type Input[T comparable] interface {
	// Next consumes and returns the next token. Returns false at the end of
	// the input.
	Next() (T, bool)

	// Peek returns the next token without consuming it.
	Peek() (T, bool)

	// Pos returns the position of the next token.
	Pos() Position

	// Cursor opens a speculative region; see [Cursor].
	Cursor() *Cursor
}

// mark is a snapshot of an input's read state.
type mark struct {
	offset int // Backend-specific read offset.
	pos    Position
}

// backend is the cursor-facing side of an [Input] implementation.
type backend interface {
	mark() mark
	rewind(mark)
	cursors() *tracker

	// release is called when the last outstanding cursor is resolved.
	release()
}

// tracker counts a backend's outstanding cursors.
type tracker struct {
	open int
}

// Cursor is a scoped handle on a speculative read region of an [Input].
//
// A cursor is acquired with [Input.Cursor], which snapshots the input's
// position, and must be resolved exactly once before the function that
// acquired it returns: either by [Cursor.Restore], which rolls the input back
// to the snapshot, or by [Cursor.Commit], which keeps everything consumed
// since. The usual idiom is
//
//	c := in.Cursor()
//	defer c.Commit()
//
// so that the cursor is committed on every path that does not explicitly
// restore it.
//
// Cursors nest, and must be resolved in the reverse of the order they were
// acquired in. While any cursor on a [Stream] is outstanding, the stream
// retains every token read since the oldest one was acquired.
type Cursor struct {
	in       backend
	snapshot mark
	depth    int
	resolved bool
}

func newCursor(in backend) *Cursor {
	t := in.cursors()
	t.open++
	return &Cursor{in: in, snapshot: in.mark(), depth: t.open}
}

// Pos returns the position of the input when this cursor was acquired.
func (c *Cursor) Pos() Position {
	return c.snapshot.pos
}

// Restore rolls the input back to the position it was at when this cursor was
// acquired, and resolves the cursor.
//
// Panics if the cursor has already been resolved.
func (c *Cursor) Restore() {
	if c.resolved {
		panic("parsec: restored a cursor that was already resolved")
	}
	c.in.rewind(c.snapshot)
	c.resolve()
}

// Commit resolves this cursor, keeping everything consumed since it was
// acquired. Does nothing if the cursor has already been resolved.
func (c *Cursor) Commit() {
	if c.resolved {
		return
	}
	c.resolve()
}

func (c *Cursor) resolve() {
	t := c.in.cursors()
	if c.depth != t.open {
		panic("parsec: cursor resolved while a cursor acquired after it is still outstanding")
	}

	c.resolved = true
	t.open--
	if t.open == 0 {
		c.in.release()
	}
}

// spanner is implemented by rune inputs that can return the text consumed
// since a cursor was acquired, while that cursor is outstanding.
type spanner interface {
	spanSince(mark) string
}

// sliceSpanner is like spanner, for [Slice] inputs.
type sliceSpanner[T comparable] interface {
	spanSince(mark) []T
}

// Outstanding returns the number of unresolved cursors on in.
func Outstanding[T comparable](in Input[T]) int {
	if b, ok := in.(backend); ok {
		return b.cursors().open
	}
	return 0
}
