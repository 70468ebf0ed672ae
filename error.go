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
	"slices"

	"github.com/bufbuild/parsec/internal"
)

// Kind is the kind of a parse [Error].
type Kind int8

const (
	// Unexpected means a token, or the end of input, was found where it
	// cannot occur. [Error.Expected] is empty.
	Unexpected Kind = 1 + iota
	// Expected means something specific was required at the error position,
	// as given by [Error.Expected].
	Expected
)

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Unexpected:
		return "unexpected"
	case Expected:
		return "expected"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// Error is a parse failure.
type Error struct {
	Kind Kind
	// Where the failure occurred.
	Pos Position

	// The token found at Pos, if any. If EOF is set, Pos is at the end of the
	// input and Found is nil.
	Found any
	EOF   bool

	// Descriptions of what would have been accepted at Pos, in the order
	// they were tried. Set when Kind is Expected.
	Expected []string
}

// Error implements [error].
func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Pos, e.Message())
}

// Message returns the Error's message without its position.
func (e *Error) Message() string {
	found := "end of input"
	if !e.EOF {
		found = describe(e.Found)
	}

	if e.Kind != Expected || len(e.Expected) == 0 {
		return "unexpected " + found
	}

	msg := "expected " + internal.Oxford("or", e.Expected...)
	if e.EOF || e.Found != nil {
		msg += "; found " + found
	}
	return msg
}

// Merge combines the errors from two alternatives that both failed into one
// representative error.
//
// The error that occurred furthest into the input wins, since it represents
// the alternative that made the most progress. When both occurred at the
// same offset, their expectations are combined, resulting in an error like
// "expected 'a' or 'b'". Either argument may be nil.
func Merge(a, b *Error) *Error {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.Pos.Offset > b.Pos.Offset:
		return a
	case b.Pos.Offset > a.Pos.Offset:
		return b
	}

	merged := &Error{Kind: Unexpected, Pos: a.Pos, Found: a.Found, EOF: a.EOF}
	if !a.EOF && a.Found == nil {
		merged.Found, merged.EOF = b.Found, b.EOF
	}

	merged.Expected = slices.Clone(a.Expected)
	for _, want := range b.Expected {
		if !slices.Contains(merged.Expected, want) {
			merged.Expected = append(merged.Expected, want)
		}
	}
	if len(merged.Expected) > 0 {
		merged.Kind = Expected
	}
	return merged
}

// mergeErrors is like [Merge], for arbitrary errors.
//
// Errors that are not [*Error]s cannot be ranked by position; the most
// recent such error wins.
func mergeErrors(a, b error) error {
	var pa, pb *Error
	if a == nil || !errors.As(a, &pa) || !errors.As(b, &pb) {
		return b
	}
	return Merge(pa, pb)
}

// unexpected constructs an [Unexpected] error for the next token in in.
func unexpected[T comparable](in Input[T]) *Error {
	return failAt(in, in.Pos())
}

// failAt constructs an error at pos, which must be the current position of
// in, expecting each of want. With no descriptions, this is an [Unexpected]
// error.
func failAt[T comparable](in Input[T], pos Position, want ...string) *Error {
	err := &Error{Kind: Unexpected, Pos: pos, Expected: want}
	if tok, ok := in.Peek(); ok {
		err.Found = tok
	} else {
		err.EOF = true
	}
	if len(want) > 0 {
		err.Kind = Expected
	}
	return err
}

// describe formats a token for an error message.
func describe(tok any) string {
	switch tok := tok.(type) {
	case rune:
		return fmt.Sprintf("%q", tok)
	case byte:
		return fmt.Sprintf("%q", tok)
	case string:
		return fmt.Sprintf("%q", tok)
	case fmt.Stringer:
		return tok.String()
	default:
		return fmt.Sprint(tok)
	}
}
