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

// Pair is the result of sequencing two parsers with [And].
type Pair[A, B any] struct {
	First  A
	Second B
}

// Map returns a parser that runs p and transforms its value with f.
func Map[T comparable, A, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	return Func[T, B](func(in Input[T]) (B, error) {
		v, err := p.Parse(in)
		if err != nil {
			var z B
			return z, err
		}
		return f(v), nil
	})
}

// MapErr returns a parser that runs p and transforms any error it returns
// with f.
func MapErr[T comparable, O any](p Parser[T, O], f func(error) error) Parser[T, O] {
	return Func[T, O](func(in Input[T]) (O, error) {
		v, err := p.Parse(in)
		if err != nil {
			return v, f(err)
		}
		return v, nil
	})
}

// And returns a parser that runs p and then q, producing both values.
//
// The first failure aborts the sequence and is returned as-is.
func And[T comparable, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, Pair[A, B]] {
	return Func[T, Pair[A, B]](func(in Input[T]) (Pair[A, B], error) {
		var out Pair[A, B]
		var err error
		if out.First, err = p.Parse(in); err != nil {
			return out, err
		}
		if out.Second, err = q.Parse(in); err != nil {
			return out, err
		}
		return out, nil
	})
}

// AndL is like [And], but keeps only the value of p.
func AndL[T comparable, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, A] {
	return Map(And(p, q), func(v Pair[A, B]) A { return v.First })
}

// AndR is like [And], but keeps only the value of q.
func AndR[T comparable, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, B] {
	return Map(And(p, q), func(v Pair[A, B]) B { return v.Second })
}

// Seq returns a parser that runs each of ps in order, collecting their
// values.
//
// The first failure aborts the sequence and is returned as-is.
func Seq[T comparable, O any](ps ...Parser[T, O]) Parser[T, []O] {
	return Func[T, []O](func(in Input[T]) ([]O, error) {
		out := make([]O, 0, len(ps))
		for _, p := range ps {
			v, err := p.Parse(in)
			if err != nil {
				return out, err
			}
			out = append(out, v)
		}
		return out, nil
	})
}

// AndThen returns a parser that runs p, passes its value to f, and then runs
// the parser f returns.
func AndThen[T comparable, A, B any](p Parser[T, A], f func(A) Parser[T, B]) Parser[T, B] {
	return Func[T, B](func(in Input[T]) (B, error) {
		v, err := p.Parse(in)
		if err != nil {
			var z B
			return z, err
		}
		return f(v).Parse(in)
	})
}

// Between returns a parser that runs opening, p, and closing in order, keeping only
// the value of p.
func Between[T comparable, A, O, B any](opening Parser[T, A], p Parser[T, O], closing Parser[T, B]) Parser[T, O] {
	return AndL(AndR(opening, p), closing)
}
