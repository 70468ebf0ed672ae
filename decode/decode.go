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

// Package decode provides incremental UTF-8 decoding of byte streams.
//
// A [Decoder] reports every malformed sequence as a [*DecodeError] and then
// carries on with the next byte, so that one bad byte never blocks the rest
// of the stream. [Lossy] substitutes U+FFFD for such sequences instead.
package decode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"unicode/utf8"
)

// DecodeError is a malformed UTF-8 sequence.
type DecodeError struct {
	// The bytes of the sequence that were consumed. Only the first Len bytes
	// are meaningful.
	Bytes [utf8.UTFMax]byte
	Len   int
}

// Error implements [error].
func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-8 sequence: % x", e.Bytes[:e.Len])
}

// Decoder decodes Unicode scalar values from a byte source.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder returns a new decoder reading from r.
func NewDecoder(r io.Reader, o Options) *Decoder {
	return &Decoder{r: newReader(r, o)}
}

// Next decodes the next code point, returning it along with the number of
// bytes consumed.
//
// At the end of the source, returns [io.EOF]. A malformed sequence is
// reported as a [*DecodeError] covering exactly the bytes consumed; a byte
// that cannot continue the sequence is left unread, and will begin the next
// call's sequence. Any other error comes from the source.
func (d *Decoder) Next() (rune, int, error) {
	lead, err := d.r.ReadByte()
	if err != nil {
		return 0, 0, err
	}

	var (
		need  int
		point rune
		least rune // The smallest value that needs this many bytes.
	)
	switch {
	case lead < 0x80:
		return rune(lead), 1, nil
	case lead&0xe0 == 0xc0:
		need, point, least = 1, rune(lead&0x1f), 0x80
	case lead&0xf0 == 0xe0:
		need, point, least = 2, rune(lead&0x0f), 0x800
	case lead&0xf8 == 0xf0:
		need, point, least = 3, rune(lead&0x07), 0x10000
	default:
		return 0, 1, &DecodeError{Bytes: [utf8.UTFMax]byte{lead}, Len: 1}
	}

	bad := &DecodeError{Bytes: [utf8.UTFMax]byte{lead}, Len: 1}
	for range need {
		b, err := d.r.ReadByte()
		if errors.Is(err, io.EOF) {
			return 0, bad.Len, bad
		} else if err != nil {
			return 0, bad.Len, err
		}

		if b&0xc0 != 0x80 {
			// This byte cannot have been consumed by a ReadByte that failed,
			// so UnreadByte cannot fail here.
			if err := d.r.UnreadByte(); err != nil {
				panic(fmt.Sprintf("parsec/decode: cannot push back byte %#02x: %v", b, err))
			}
			return 0, bad.Len, bad
		}

		bad.Bytes[bad.Len] = b
		bad.Len++
		point = point<<6 | rune(b&0x3f)
	}

	if point < least || !utf8.ValidRune(point) {
		// Overlong encodings, surrogates, and values past U+10FFFF.
		return 0, bad.Len, bad
	}
	return point, bad.Len, nil
}

// All returns an iterator over the rest of the source.
//
// The iterator yields each code point or [*DecodeError] in turn. It ends at
// the end of the source, or after yielding an I/O error from the source.
func (d *Decoder) All() iter.Seq2[rune, error] {
	return all(d.Next)
}

// Lossy is a [Decoder] that replaces malformed sequences with
// [utf8.RuneError], U+FFFD.
type Lossy struct {
	d *Decoder
}

// NewLossy returns a new lossy decoder reading from r.
func NewLossy(r io.Reader, o Options) *Lossy {
	return &Lossy{d: NewDecoder(r, o)}
}

// Next is like [Decoder.Next], but never returns a [*DecodeError].
//
// A replacement character's size is the number of bytes in the malformed
// sequence it stands for.
func (l *Lossy) Next() (rune, int, error) {
	r, n, err := l.d.Next()
	if _, ok := err.(*DecodeError); ok {
		return utf8.RuneError, n, nil
	}
	return r, n, err
}

// All is like [Decoder.All], but never yields a [*DecodeError].
func (l *Lossy) All() iter.Seq2[rune, error] {
	return all(l.Next)
}

func all(next func() (rune, int, error)) iter.Seq2[rune, error] {
	return func(yield func(rune, error) bool) {
		for {
			r, _, err := next()
			switch err.(type) {
			case nil, *DecodeError:
				if !yield(r, err) {
					return
				}
				continue
			}

			if !errors.Is(err, io.EOF) {
				yield(0, err)
			}
			return
		}
	}
}
