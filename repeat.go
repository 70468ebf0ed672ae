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

// Maybe is the result of [Opt]: a value that may be absent.
type Maybe[O any] struct {
	Value   O
	Present bool
}

// Opt returns a parser that tries p. If p fails, the input is restored and
// Opt succeeds with an absent value.
//
// Like all speculative combinators, Opt only recovers from parse errors, that
// is, [*Error]s. Any other error from p is propagated.
func Opt[T comparable, O any](p Parser[T, O]) Parser[T, Maybe[O]] {
	return Func[T, Maybe[O]](func(in Input[T]) (Maybe[O], error) {
		v, err := attempt(p, in)
		if fatal(err) {
			return Maybe[O]{}, err
		} else if err != nil {
			return Maybe[O]{}, nil
		}
		return Maybe[O]{Value: v, Present: true}, nil
	})
}

// Many returns a parser that applies p as many times as it succeeds,
// possibly zero times, collecting its values. The attempt that fails is
// rolled back.
//
// Panics if p succeeds without consuming anything, since that would repeat
// forever.
func Many[T comparable, O any](p Parser[T, O]) Parser[T, []O] {
	return many(p, 0)
}

// Many1 is like [Many], but p must succeed at least once.
func Many1[T comparable, O any](p Parser[T, O]) Parser[T, []O] {
	return many(p, 1)
}

// SkipMany is like [Many], but discards p's values.
func SkipMany[T comparable, O any](p Parser[T, O]) Parser[T, struct{}] {
	return skipMany(p, 0)
}

// SkipMany1 is like [Many1], but discards p's values.
func SkipMany1[T comparable, O any](p Parser[T, O]) Parser[T, struct{}] {
	return skipMany(p, 1)
}

// Count returns a parser that applies p exactly n times.
//
// Like [Seq], the first failure aborts and is returned as-is.
func Count[T comparable, O any](n int, p Parser[T, O]) Parser[T, []O] {
	if n < 0 {
		panic(fmt.Sprintf("parsec: negative Count %d", n))
	}

	return Func[T, []O](func(in Input[T]) ([]O, error) {
		out := make([]O, 0, n)
		for range n {
			v, err := p.Parse(in)
			if err != nil {
				return out, err
			}
			out = append(out, v)
		}
		return out, nil
	})
}

// SepBy returns a parser for zero or more occurrences of p, separated by sep.
// A trailing separator is not consumed.
func SepBy[T comparable, O, S any](p Parser[T, O], sep Parser[T, S]) Parser[T, []O] {
	return Func[T, []O](func(in Input[T]) ([]O, error) {
		first, err := attempt(p, in)
		if fatal(err) {
			return nil, err
		} else if err != nil {
			return nil, nil
		}
		return sepByRest(first, p, sep, in)
	})
}

// SepBy1 is like [SepBy], but p must occur at least once.
func SepBy1[T comparable, O, S any](p Parser[T, O], sep Parser[T, S]) Parser[T, []O] {
	return Func[T, []O](func(in Input[T]) ([]O, error) {
		first, err := p.Parse(in)
		if err != nil {
			return nil, err
		}
		return sepByRest(first, p, sep, in)
	})
}

func sepByRest[T comparable, O, S any](first O, p Parser[T, O], sep Parser[T, S], in Input[T]) ([]O, error) {
	out := []O{first}
	_, err := repeat(AndR(sep, p), in, func(v O) { out = append(out, v) })
	if fatal(err) {
		return out, err
	}
	return out, nil
}

// EndBy returns a parser for zero or more occurrences of p, each followed by
// sep.
func EndBy[T comparable, O, S any](p Parser[T, O], sep Parser[T, S]) Parser[T, []O] {
	return Many(AndL(p, sep))
}

// EndBy1 is like [EndBy], but p must occur at least once.
func EndBy1[T comparable, O, S any](p Parser[T, O], sep Parser[T, S]) Parser[T, []O] {
	return Many1(AndL(p, sep))
}

func many[T comparable, O any](p Parser[T, O], atLeast int) Parser[T, []O] {
	return Func[T, []O](func(in Input[T]) ([]O, error) {
		var out []O
		n, err := repeat(p, in, func(v O) { out = append(out, v) })
		if fatal(err) || n < atLeast {
			return out, err
		}
		return out, nil
	})
}

func skipMany[T comparable, O any](p Parser[T, O], atLeast int) Parser[T, struct{}] {
	return Func[T, struct{}](func(in Input[T]) (struct{}, error) {
		n, err := repeat(p, in, func(O) {})
		if fatal(err) || n < atLeast {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
}

// repeat applies p until it fails, passing each value to yield. The failed
// attempt is rolled back.
//
// Returns the number of successes, and the error that ended the loop. If that
// error is [fatal], the caller must propagate it.
func repeat[T comparable, O any](p Parser[T, O], in Input[T], yield func(O)) (int, error) {
	var n int
	for {
		start := in.Pos().Offset
		v, err := attempt(p, in)
		if err != nil {
			return n, err
		}
		if in.Pos().Offset == start {
			panic("parsec: repeated parser succeeded without consuming input")
		}
		yield(v)
		n++
	}
}
