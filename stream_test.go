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

package parsec_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bufbuild/parsec"
)

func TestStream(t *testing.T) {
	t.Parallel()

	in := parsec.NewStream(iotest.OneByteReader(strings.NewReader("añ\n日")), parsec.Options{})
	var got []rune
	for {
		r, ok := in.Next()
		if !ok {
			break
		}
		got = append(got, r)
	}
	assert.Equal(t, []rune("añ\n日"), got)
	assert.Equal(t, parsec.Position{Offset: 7, Line: 2, Column: 2}, in.Pos())
	require.NoError(t, in.Err())
}

func TestStreamInvalidUTF8(t *testing.T) {
	t.Parallel()

	in := parsec.NewStream(strings.NewReader("a\xe4\xb8b"), parsec.Options{})
	var got []rune
	for {
		r, ok := in.Next()
		if !ok {
			break
		}
		got = append(got, r)
	}
	// One replacement character stands for the whole truncated sequence.
	assert.Equal(t, []rune{'a', utf8.RuneError, 'b'}, got)
	assert.Equal(t, 4, in.Pos().Offset)
}

func TestStreamWindow(t *testing.T) {
	t.Parallel()

	in := parsec.NewStream(strings.NewReader("abcdefgh"), parsec.Options{Capacity: 4})

	// With no cursors outstanding, consumed tokens are dropped at once.
	in.Next()
	in.Next()
	assert.Equal(t, 0, in.Buffered())
	in.Peek()
	assert.Equal(t, 1, in.Buffered())

	outer := in.Cursor()
	in.Next()
	inner := in.Cursor()
	in.Next()
	in.Next()
	assert.Equal(t, 3, in.Buffered())

	inner.Restore()
	assert.Equal(t, 3, in.Buffered())
	r, _ := in.Next()
	assert.Equal(t, 'd', r)

	outer.Restore()
	// Resolving the last cursor drops everything before the read position,
	// leaving the tokens that will be replayed.
	assert.Equal(t, 3, in.Buffered())
	r, _ = in.Next()
	assert.Equal(t, 'c', r)
	assert.Equal(t, 2, in.Buffered())

	c := in.Cursor()
	in.Next()
	c.Commit()
	assert.Equal(t, 1, in.Buffered())
	assert.Equal(t, parsec.Position{Offset: 4, Line: 1, Column: 5}, in.Pos())
}

func TestStreamBacktracking(t *testing.T) {
	t.Parallel()

	p := parsec.Or(
		parsec.String("abcx"),
		parsec.String("abcd"),
	)
	in := parsec.NewStream(iotest.HalfReader(strings.NewReader("abcdef")), parsec.Options{Capacity: 1})

	v, err := parsec.Parse(p, in)
	require.NoError(t, err)
	assert.Equal(t, "abcd", v)

	rest, err := parsec.Parse(parsec.Recognize(parsec.Many(parsec.Any[rune]())), in)
	require.NoError(t, err)
	assert.Equal(t, "ef", rest)
	assert.Equal(t, 0, parsec.Outstanding[rune](in))
}

func TestStreamLogging(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	in := parsec.NewStream(strings.NewReader("abcdefgh"), parsec.Options{
		Capacity: 5,
		Logger:   zap.New(core),
	})

	c := in.Cursor()
	for range 6 {
		in.Next()
	}
	c.Restore()

	grew := logs.FilterMessage("grew stream buffer").AllUntimed()
	require.Len(t, grew, 1)
	assert.Equal(t, map[string]any{
		"old_cap":     int64(5),
		"new_cap":     int64(10),
		"outstanding": int64(1),
	}, grew[0].ContextMap())

	// Nothing was consumed past the restore point, so nothing was released.
	assert.Equal(t, 0, logs.FilterMessage("released stream window").Len())

	c = in.Cursor()
	in.Next()
	in.Next()
	c.Commit()
	released := logs.FilterMessage("released stream window").AllUntimed()
	require.Len(t, released, 1)
	assert.Equal(t, int64(2), released[0].ContextMap()["tokens"])
}

func TestStreamReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	core, logs := observer.New(zapcore.WarnLevel)
	in := parsec.NewStream(
		io.MultiReader(strings.NewReader("12"), iotest.ErrReader(boom)),
		parsec.Options{Logger: zap.New(core)},
	)

	digits := parsec.Recognize(parsec.Many1(parsec.Satisfy("digit", isDigit)))
	_, err := parsec.Run(digits, in)
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, in.Err(), boom)
	assert.Equal(t, "parsec: reading input at offset 2: boom", err.Error())

	_, ok := parsec.ParseError(err)
	assert.False(t, ok)

	warned := logs.FilterMessage("stream read failed").AllUntimed()
	require.Len(t, warned, 1)
	assert.Equal(t, zapcore.WarnLevel, warned[0].Level)
}

func TestStreamOptions(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { parsec.NewStream(strings.NewReader(""), parsec.Options{Capacity: -1}) })

	in := parsec.NewStream(strings.NewReader(""), parsec.Options{})
	_, ok := in.Peek()
	assert.False(t, ok)
	require.NoError(t, in.Err())
}
