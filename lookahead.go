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

// Attempt returns a parser that runs p, restoring the input if p fails.
//
// Every speculative combinator in this package already does this for the
// parsers it tries; Attempt is for making the same guarantee at the boundary
// of a grammar's own parsers.
func Attempt[T comparable, O any](p Parser[T, O]) Parser[T, O] {
	return Func[T, O](func(in Input[T]) (O, error) {
		return attempt(p, in)
	})
}

// Peek returns a parser that runs p and then restores the input, whether or
// not p succeeded. It produces p's result.
func Peek[T comparable, O any](p Parser[T, O]) Parser[T, O] {
	return Func[T, O](func(in Input[T]) (O, error) {
		c := in.Cursor()
		defer c.Restore()

		return p.Parse(in)
	})
}

// Not returns a parser that succeeds, consuming nothing, if and only if p
// fails.
func Not[T comparable, O any](p Parser[T, O]) Parser[T, struct{}] {
	return Func[T, struct{}](func(in Input[T]) (struct{}, error) {
		c := in.Cursor()
		_, err := p.Parse(in)
		c.Restore()

		switch {
		case fatal(err):
			return struct{}{}, err
		case err == nil:
			return struct{}{}, unexpected(in)
		default:
			return struct{}{}, nil
		}
	})
}

// Expect returns a parser that runs p, and if p fails with a parse error,
// replaces it with one saying that want was expected at the position where p
// started. The input is restored to that position.
//
// A labeled parser still fails; to tolerate its absence, wrap it in [Opt].
func Expect[T comparable, O any](p Parser[T, O], want string) Parser[T, O] {
	return Func[T, O](func(in Input[T]) (O, error) {
		c := in.Cursor()
		defer c.Commit()

		v, err := p.Parse(in)
		if err != nil && !fatal(err) {
			c.Restore()
			return v, failAt(in, c.Pos(), want)
		}
		return v, err
	})
}

// Label is an alias for [Expect].
func Label[T comparable, O any](p Parser[T, O], want string) Parser[T, O] {
	return Expect(p, want)
}

// Recognize returns a parser that runs p and produces the text it consumed,
// discarding p's value.
//
// On a [Text], the result is a substring of the input and is not copied. On
// a [Stream], it is rebuilt from the runes held for backtracking.
//
// Panics if the input is not one of this package's rune inputs.
func Recognize[O any](p Parser[rune, O]) Parser[rune, string] {
	return Func[rune, string](func(in Input[rune]) (string, error) {
		s, ok := in.(spanner)
		if !ok {
			panic("parsec: Recognize requires a *Text or *Stream input")
		}

		c := in.Cursor()
		defer c.Commit()

		if _, err := p.Parse(in); err != nil {
			return "", err
		}
		return s.spanSince(c.snapshot), nil
	})
}

// RecognizeSlice is like [Recognize], for [Slice] inputs. The result aliases
// the input's slice.
func RecognizeSlice[T comparable, O any](p Parser[T, O]) Parser[T, []T] {
	return Func[T, []T](func(in Input[T]) ([]T, error) {
		s, ok := in.(sliceSpanner[T])
		if !ok {
			panic("parsec: RecognizeSlice requires a *Slice input")
		}

		c := in.Cursor()
		defer c.Commit()

		if _, err := p.Parse(in); err != nil {
			return nil, err
		}
		return s.spanSince(c.snapshot), nil
	})
}

// Here returns a parser that consumes nothing and produces the current
// position.
func Here[T comparable]() Parser[T, Position] {
	return Func[T, Position](func(in Input[T]) (Position, error) {
		return in.Pos(), nil
	})
}
