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

// Or returns a parser that tries each of ps in order, and produces the value
// of the first one that succeeds.
//
// Each alternative starts from the same position: a failing alternative's
// consumption is rolled back before the next one is tried. If all of them
// fail, the result is the [Merge] of their errors. An error that is not an
// [*Error] is returned immediately, without trying the remaining
// alternatives.
//
// Panics if ps is empty.
func Or[T comparable, O any](ps ...Parser[T, O]) Parser[T, O] {
	if len(ps) == 0 {
		panic("parsec: Or requires at least one alternative")
	}

	return Func[T, O](func(in Input[T]) (O, error) {
		var failure error
		for _, p := range ps {
			v, err := attempt(p, in)
			if err == nil || fatal(err) {
				return v, err
			}
			failure = mergeErrors(failure, err)
		}

		var z O
		return z, failure
	})
}
