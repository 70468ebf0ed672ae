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

// ChainL1 returns a parser for one or more occurrences of p separated by op,
// folded left-associatively: "a - b - c" is op(op(a, b), c).
//
// This is the usual way of parsing infix operators; precedence is expressed
// by nesting chains, with the tightest-binding operators innermost.
func ChainL1[T comparable, O any](p Parser[T, O], op Parser[T, func(O, O) O]) Parser[T, O] {
	step := And(op, p)
	return Func[T, O](func(in Input[T]) (O, error) {
		acc, err := p.Parse(in)
		if err != nil {
			return acc, err
		}

		_, err = repeat(step, in, func(v Pair[func(O, O) O, O]) {
			acc = v.First(acc, v.Second)
		})
		if fatal(err) {
			return acc, err
		}
		return acc, nil
	})
}

// ChainL is like [ChainL1], but produces def if there are no occurrences of
// p.
func ChainL[T comparable, O any](p Parser[T, O], op Parser[T, func(O, O) O], def O) Parser[T, O] {
	return orDefault(ChainL1(p, op), def)
}

// ChainR1 is like [ChainL1], but folds right-associatively: "a ^ b ^ c" is
// op(a, op(b, c)).
func ChainR1[T comparable, O any](p Parser[T, O], op Parser[T, func(O, O) O]) Parser[T, O] {
	step := And(op, p)
	return Func[T, O](func(in Input[T]) (O, error) {
		first, err := p.Parse(in)
		if err != nil {
			return first, err
		}

		var rest []Pair[func(O, O) O, O]
		_, err = repeat(step, in, func(v Pair[func(O, O) O, O]) {
			rest = append(rest, v)
		})
		if fatal(err) {
			return first, err
		}
		if len(rest) == 0 {
			return first, nil
		}

		// Fold from the right: each operator combines the operand to its left
		// with everything to its right.
		acc := rest[len(rest)-1].Second
		for i := len(rest) - 1; i > 0; i-- {
			acc = rest[i].First(rest[i-1].Second, acc)
		}
		return rest[0].First(first, acc), nil
	})
}

// ChainR is like [ChainR1], but produces def if there are no occurrences of
// p.
func ChainR[T comparable, O any](p Parser[T, O], op Parser[T, func(O, O) O], def O) Parser[T, O] {
	return orDefault(ChainR1(p, op), def)
}

func orDefault[T comparable, O any](p Parser[T, O], def O) Parser[T, O] {
	return Func[T, O](func(in Input[T]) (O, error) {
		v, err := attempt(p, in)
		if fatal(err) {
			return v, err
		} else if err != nil {
			return def, nil
		}
		return v, nil
	})
}
