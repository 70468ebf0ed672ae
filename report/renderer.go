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

// Package report renders parse errors as human-readable diagnostics.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/bufbuild/parsec"
)

// Renderer configures a diagnostic rendering operation.
type Renderer struct {
	// If set, uses a compact one-line format for each diagnostic.
	Compact bool

	// If set, rendering results are enriched with ANSI color escapes.
	Colorize bool
}

// Render renders err, which was returned while parsing src, to out.
//
// path is the name src is reported under. If err is not a [*parsec.Error],
// it is rendered without a source window.
//
// The returned error is an error writing to out.
func (r Renderer) Render(out io.Writer, path, src string, err error) error {
	_, werr := fmt.Fprintln(out, r.Diagnostic(path, src, err))
	return werr
}

// RenderString is a helper for calling [Renderer.Render] with a [strings.Builder].
func (r Renderer) RenderString(path, src string, err error) string {
	var buf strings.Builder
	_ = r.Render(&buf, path, src, err)
	return buf.String()
}

// Diagnostic renders a single error to a string, without a trailing newline.
func (r Renderer) Diagnostic(path, src string, err error) string {
	c := newStyleSheet(r)

	var perr *parsec.Error
	if !errors.As(err, &perr) {
		if path == "" {
			return fmt.Sprint(c.nError, "error: ", err.Error(), c.reset)
		}
		return fmt.Sprint(c.nError, "error: ", path, ": ", err.Error(), c.reset)
	}

	pos := perr.Pos
	if r.Compact {
		return fmt.Sprintf(
			"%serror: %s:%d:%d: %s%s",
			c.nError,
			path,
			pos.Line,
			pos.Column,
			perr.Message(),
			c.reset,
		)
	}

	// Imitate the Rust compiler. See
	// https://github.com/rust-lang/rustc-dev-guide/blob/master/src/diagnostics.md
	var out strings.Builder
	fmt.Fprint(&out, c.bError, "error: ", perr.Message(), c.reset)

	lineBarWidth := max(2, len(strconv.Itoa(pos.Line)))

	out.WriteByte('\n')
	out.WriteString(c.nAccent)
	padBy(&out, lineBarWidth)
	fmt.Fprintf(&out, "--> %s:%d:%d", path, pos.Line, pos.Column)

	before, after := lineAt(src, pos.Offset)
	prefix, column := expand(0, before)
	text, _ := expand(column, after)

	out.WriteByte('\n')
	padBy(&out, lineBarWidth)
	out.WriteString(" |")

	out.WriteByte('\n')
	fmt.Fprintf(&out, "%*d | %s", lineBarWidth, pos.Line, c.reset)
	out.WriteString(prefix)
	out.WriteString(text)

	out.WriteByte('\n')
	out.WriteString(c.nAccent)
	padBy(&out, lineBarWidth)
	out.WriteString(" | ")
	padBy(&out, column)
	out.WriteString(c.bError)
	out.WriteString(strings.Repeat("^", caretWidth(perr)))

	out.WriteString(c.reset)
	return out.String()
}

// lineAt splits the line containing offset into the text before and after
// it. The line terminator is not included.
func lineAt(src string, offset int) (before, after string) {
	offset = min(max(offset, 0), len(src))
	start := strings.LastIndexByte(src[:offset], '\n') + 1
	before = src[start:offset]
	after = src[offset:]
	if end := strings.IndexByte(after, '\n'); end != -1 {
		after = after[:end]
	}
	return strings.TrimSuffix(before, "\r"), strings.TrimSuffix(after, "\r")
}

// caretWidth returns how many columns the underline for err should cover.
func caretWidth(err *parsec.Error) int {
	switch found := err.Found.(type) {
	case rune:
		if found == '\t' {
			return 1
		}
		return max(1, uniseg.StringWidth(string(found)))
	case string:
		return max(1, uniseg.StringWidth(found))
	default:
		return 1
	}
}

func padBy(out *strings.Builder, spaces int) {
	for range spaces {
		out.WriteByte(' ')
	}
}
