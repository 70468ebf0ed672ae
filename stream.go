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
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/bufbuild/parsec/decode"
	"github.com/bufbuild/parsec/internal/ext/slicesx"
)

// DefaultCapacity is the initial capacity of a [Stream]'s token buffer, if
// [Options.Capacity] is not set.
const DefaultCapacity = 64

// Options configures a [Stream].
//
// The zero value is ready to use.
type Options struct {
	// The initial number of decoded tokens the stream can hold for
	// backtracking before its buffer has to grow.
	//
	// Default is DefaultCapacity.
	Capacity int

	// The number of bytes to read from the source at a time.
	//
	// Default is decode.DefaultChunkSize.
	ChunkSize int

	// Receives debug logs about buffer management, and warnings about I/O
	// errors.
	//
	// Default is a no-op logger.
	Logger *zap.Logger
}

// Stream is an [Input] that decodes runes from an [io.Reader] as they are
// needed.
//
// Malformed UTF-8 is read as [utf8.RuneError]; see [decode.Lossy]. Runes
// that have been read but may still be replayed by an outstanding [Cursor]
// are kept in a ring buffer, which is emptied whenever the last outstanding
// cursor is resolved.
type Stream struct {
	dec    *decode.Lossy
	buf    *slicesx.Queue[streamToken]
	off    int // Index into buf of the next token.
	pos    Position
	live   tracker
	err    error // The first I/O error from the source.
	eof    bool
	logger *zap.Logger
}

// streamToken is a decoded rune and the number of bytes it came from.
type streamToken struct {
	r    rune
	size int
}

var (
	_ Input[rune] = (*Stream)(nil)
	_ spanner     = (*Stream)(nil)
)

// NewStream returns a new input that reads from r.
func NewStream(r io.Reader, o Options) *Stream {
	capacity := o.Capacity
	if capacity < 0 {
		panic("parsec: Capacity < 0")
	}
	if capacity == 0 {
		capacity = DefaultCapacity
	}

	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Stream{
		dec:    decode.NewLossy(r, decode.Options{ChunkSize: o.ChunkSize}),
		buf:    slicesx.NewQueue[streamToken](capacity),
		pos:    StartPosition(),
		logger: logger,
	}
}

// Next implements [Input].
func (s *Stream) Next() (rune, bool) {
	tok, ok := s.fill()
	if !ok {
		return 0, false
	}

	s.off++
	s.pos.Advance(tok.r == '\n', tok.size)
	if s.live.open == 0 {
		// Nothing can rewind to this token anymore.
		s.discard()
	}
	return tok.r, true
}

// Peek implements [Input].
func (s *Stream) Peek() (rune, bool) {
	tok, ok := s.fill()
	return tok.r, ok
}

// Pos implements [Input].
func (s *Stream) Pos() Position {
	return s.pos
}

// Cursor implements [Input].
func (s *Stream) Cursor() *Cursor {
	return newCursor(s)
}

// Err returns the first error returned by the underlying reader, other than
// [io.EOF]. Once an error has occurred, the stream ends.
func (s *Stream) Err() error {
	return s.err
}

// Buffered returns the number of decoded tokens currently held for
// backtracking, including any that have been peeked but not consumed.
func (s *Stream) Buffered() int {
	return s.buf.Len()
}

// fill ensures that the token at s.off is in the buffer, and returns it.
func (s *Stream) fill() (streamToken, bool) {
	if s.off < s.buf.Len() {
		return s.buf.At(s.off), true
	}
	if s.eof || s.err != nil {
		return streamToken{}, false
	}

	r, n, err := s.dec.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.eof = true
		} else {
			s.err = err
			s.logger.Warn("stream read failed",
				zap.Error(err),
				zap.Int("offset", s.pos.Offset),
			)
		}
		return streamToken{}, false
	}

	tok := streamToken{r: r, size: n}
	oldCap := s.buf.Cap()
	s.buf.PushBack(tok)
	if newCap := s.buf.Cap(); newCap != oldCap {
		s.logger.Debug("grew stream buffer",
			zap.Int("old_cap", oldCap),
			zap.Int("new_cap", newCap),
			zap.Int("outstanding", s.live.open),
		)
	}
	return tok, true
}

// discard drops every buffered token before s.off.
func (s *Stream) discard() int {
	n := s.off
	s.buf.TruncateFront(n)
	s.off = 0
	return n
}

func (s *Stream) mark() mark { return mark{offset: s.off, pos: s.pos} }
func (s *Stream) rewind(m mark) { s.off, s.pos = m.offset, m.pos }
func (s *Stream) cursors() *tracker { return &s.live }

func (s *Stream) release() {
	if n := s.discard(); n > 0 {
		s.logger.Debug("released stream window",
			zap.Int("tokens", n),
			zap.Int("offset", s.pos.Offset),
		)
	}
}

func (s *Stream) spanSince(m mark) string {
	var out strings.Builder
	for i := m.offset; i < s.off; i++ {
		out.WriteRune(s.buf.At(i).r)
	}
	return out.String()
}
