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
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/bufbuild/parsec/internal"
)

// Satisfy returns a parser that consumes one token for which pred returns
// true. want describes the accepted tokens, for error messages.
func Satisfy[T comparable](want string, pred func(T) bool) Parser[T, T] {
	return Func[T, T](func(in Input[T]) (T, error) {
		tok, ok := in.Peek()
		if !ok || !pred(tok) {
			var z T
			return z, failAt(in, in.Pos(), want)
		}
		in.Next()
		return tok, nil
	})
}

// Any returns a parser that consumes any one token. It only fails at the end
// of the input.
func Any[T comparable]() Parser[T, T] {
	return Func[T, T](func(in Input[T]) (T, error) {
		tok, ok := in.Next()
		if !ok {
			return tok, unexpected(in)
		}
		return tok, nil
	})
}

// EOF returns a parser that succeeds, consuming nothing, only at the end of
// the input.
func EOF[T comparable]() Parser[T, struct{}] {
	return Func[T, struct{}](func(in Input[T]) (struct{}, error) {
		if _, ok := in.Peek(); ok {
			return struct{}{}, failAt(in, in.Pos(), "end of input")
		}
		return struct{}{}, nil
	})
}

// Token returns a parser that consumes one token equal to want.
func Token[T comparable](want T) Parser[T, T] {
	return Satisfy(describe(want), func(tok T) bool { return tok == want })
}

// OneOf returns a parser that consumes one token equal to any of set.
func OneOf[T comparable](set ...T) Parser[T, T] {
	wants := make([]string, len(set))
	for i, tok := range set {
		wants[i] = describe(tok)
	}

	return Func[T, T](func(in Input[T]) (T, error) {
		tok, ok := in.Peek()
		if !ok || !slices.Contains(set, tok) {
			var z T
			return z, failAt(in, in.Pos(), wants...)
		}
		in.Next()
		return tok, nil
	})
}

// NoneOf returns a parser that consumes one token that is not in set.
func NoneOf[T comparable](set ...T) Parser[T, T] {
	wants := make([]string, len(set))
	for i, tok := range set {
		wants[i] = describe(tok)
	}
	want := "anything but " + internal.Oxford("or", wants...)

	return Satisfy(want, func(tok T) bool { return !slices.Contains(set, tok) })
}

// Char returns a parser that consumes the rune r.
func Char(r rune) Parser[rune, rune] {
	return Token(r)
}

// CharFold is like [Char], but matches r case-insensitively, under Unicode
// simple case folding.
func CharFold(r rune) Parser[rune, rune] {
	return Satisfy(describe(r), func(tok rune) bool { return equalFold(tok, r) })
}

// String returns a parser that consumes the runes of s.
//
// String either consumes all of s or nothing: a partial match is restored,
// and reported at the position where s should have started.
func String(s string) Parser[rune, string] {
	return literal(s, func(a, b rune) bool { return a == b })
}

// StringFold is like [String], but matches case-insensitively. It produces
// the text actually consumed.
func StringFold(s string) Parser[rune, string] {
	return literal(s, equalFold)
}

func literal(s string, eq func(a, b rune) bool) Parser[rune, string] {
	want := describe(s)
	return Func[rune, string](func(in Input[rune]) (string, error) {
		c := in.Cursor()
		defer c.Commit()

		var text strings.Builder
		for _, r := range s {
			tok, ok := in.Peek()
			if !ok || !eq(tok, r) {
				c.Restore()
				return "", failAt(in, c.Pos(), want)
			}
			in.Next()
			text.WriteRune(tok)
		}
		return text.String(), nil
	})
}

func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// Integer returns a parser for a decimal integer of type N. Signed types
// accept a leading '+' or '-', unsigned types only '+'.
//
// A literal that does not fit in N is rejected at its starting position
// without being consumed.
func Integer[N constraints.Integer]() Parser[rune, N] {
	var zero N
	signed := ^zero < 0
	bits := int(unsafe.Sizeof(zero)) * 8
	want := fmt.Sprintf("integer that fits in %T", zero)

	return Func[rune, N](func(in Input[rune]) (N, error) {
		c := in.Cursor()
		defer c.Commit()

		var text []byte
		if tok, ok := in.Peek(); ok && (tok == '+' || (signed && tok == '-')) {
			in.Next()
			text = utf8.AppendRune(text, tok)
		}
		digits := len(text) // Index of the first digit.
		for {
			tok, ok := in.Peek()
			if !ok || tok < '0' || tok > '9' {
				break
			}
			in.Next()
			text = append(text, byte(tok))
		}

		if len(text) == digits {
			c.Restore()
			return 0, failAt(in, c.Pos(), "digit")
		}

		var v N
		var err error
		if signed {
			var n int64
			n, err = strconv.ParseInt(string(text), 10, bits)
			v = N(n)
		} else {
			var n uint64
			n, err = strconv.ParseUint(string(text[digits:]), 10, bits)
			v = N(n)
		}
		if err != nil {
			c.Restore()
			return 0, failAt(in, c.Pos(), want)
		}
		return v, nil
	})
}
