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
	"fmt"
)

// Parser is a parser that consumes tokens of type T and produces values of
// type O.
//
// On success, Parse leaves in positioned just after the tokens it consumed.
// On failure it returns an error, usually an [*Error], and in may have been
// advanced past tokens consumed before the failure was detected; combinators
// that need to try something else restore it with a [Cursor].
//
// Parsers hold no state between calls to Parse, so a single Parser may be
// applied any number of times, including concurrently to different inputs.
type Parser[T comparable, O any] interface {
	Parse(in Input[T]) (O, error)
}

// Func adapts a function into a [Parser].
type Func[T comparable, O any] func(in Input[T]) (O, error)

// Parse implements [Parser].
func (f Func[T, O]) Parse(in Input[T]) (O, error) {
	return f(in)
}

// Parse runs p against in.
//
// On success, in is left at the continuation: [Text.Rest] and friends
// return whatever p did not consume. If reading a [Stream] failed, the
// read error is returned, wrapped, in place of whatever parse error it
// caused.
//
// Panics if p leaves a [Cursor] unresolved.
func Parse[T comparable, O any](p Parser[T, O], in Input[T]) (O, error) {
	outstanding := Outstanding(in)
	v, err := p.Parse(in)
	if Outstanding(in) != outstanding {
		panic(fmt.Sprintf("parsec: parser returned with %d unresolved cursors", Outstanding(in)-outstanding))
	}

	if s, ok := in.(interface{ Err() error }); ok && s.Err() != nil {
		var z O
		return z, fmt.Errorf("parsec: reading input at offset %d: %w", in.Pos().Offset, s.Err())
	}
	return v, err
}

// Run is like [Parse], but additionally requires p to consume all of in.
func Run[T comparable, O any](p Parser[T, O], in Input[T]) (O, error) {
	return Parse(AndL(p, EOF[T]()), in)
}

// ParseError returns the [*Error] inside err, if there is one.
func ParseError(err error) (*Error, bool) {
	var perr *Error
	ok := errors.As(err, &perr)
	return perr, ok
}

// Pure returns a parser that consumes nothing and produces v.
func Pure[T comparable, O any](v O) Parser[T, O] {
	return Func[T, O](func(Input[T]) (O, error) {
		return v, nil
	})
}

// Fail returns a parser that consumes nothing and fails, expecting want.
func Fail[T comparable, O any](want string) Parser[T, O] {
	return Func[T, O](func(in Input[T]) (O, error) {
		var z O
		return z, failAt(in, in.Pos(), want)
	})
}

// Lazy returns a parser that calls f to obtain the parser to run each time it
// is applied. This is used to build recursive grammars:
//
//	var expr parsec.Parser[rune, int]
//	parens := parsec.Between(parsec.Char('('), parsec.Lazy(func() parsec.Parser[rune, int] {
//		return expr
//	}), parsec.Char(')'))
func Lazy[T comparable, O any](f func() Parser[T, O]) Parser[T, O] {
	return Func[T, O](func(in Input[T]) (O, error) {
		return f().Parse(in)
	})
}

// attempt runs p, restoring in if p fails.
func attempt[T comparable, O any](p Parser[T, O], in Input[T]) (O, error) {
	c := in.Cursor()
	defer c.Commit()

	v, err := p.Parse(in)
	if err != nil {
		c.Restore()
	}
	return v, err
}

// fatal returns whether err is an error that speculative combinators must
// propagate rather than treat as a failed attempt: anything other than a
// parse error.
func fatal(err error) bool {
	if err == nil {
		return false
	}
	_, ok := ParseError(err)
	return !ok
}
