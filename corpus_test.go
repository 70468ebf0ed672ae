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
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/parsec"
	"github.com/bufbuild/parsec/internal/golden"
	"github.com/bufbuild/parsec/report"
)

// corpusCase is the contents of a file in testdata.
type corpusCase struct {
	// One of the keys of corpusGrammars.
	Grammar string `yaml:"grammar"`
	Input   string `yaml:"input"`
	// Read the input through a Stream rather than a Text.
	Stream bool `yaml:"stream"`
	// Render errors in the compact format.
	Compact bool `yaml:"compact"`
}

var corpusGrammars = map[string]func() parsec.Parser[rune, any]{
	"calc": func() parsec.Parser[rune, any] { return anyOf(calculator()) },
	"list": func() parsec.Parser[rune, any] {
		spaces := parsec.SkipMany(parsec.Char(' '))
		return anyOf(parsec.Between(
			lexeme(parsec.Char('['), spaces),
			parsec.SepBy(lexeme(parsec.Integer[int](), spaces), lexeme(parsec.Char(','), spaces)),
			lexeme(parsec.Char(']'), spaces),
		))
	},
	"keyword": func() parsec.Parser[rune, any] {
		ident := parsec.Expect(parsec.Recognize(parsec.Many1(parsec.Satisfy("letter", func(r rune) bool {
			return r >= 'a' && r <= 'z'
		}))), "identifier")
		return anyOf(parsec.AndR(
			parsec.AndL(parsec.StringFold("let"), parsec.SkipMany1(parsec.Char(' '))),
			ident,
		))
	},
}

func TestCorpus(t *testing.T) {
	t.Parallel()

	corpus := golden.Corpus{
		Root:      "testdata",
		Refresh:   "PARSEC_REFRESH",
		Extension: "yaml",
		Outputs: []golden.Output{
			{Extension: "stdout"},
			{Extension: "stderr"},
		},
		Test: func(t *testing.T, name, text string) []string {
			var tc corpusCase
			require.NoError(t, yaml.Unmarshal([]byte(text), &tc))

			grammar, ok := corpusGrammars[tc.Grammar]
			require.True(t, ok, "unknown grammar %q", tc.Grammar)

			var in parsec.Input[rune] = parsec.NewText(tc.Input)
			if tc.Stream {
				in = parsec.NewStream(strings.NewReader(tc.Input), parsec.Options{Capacity: 4})
			}

			v, err := parsec.Run(grammar(), in)
			if err != nil {
				r := report.Renderer{Compact: tc.Compact}
				return []string{"", r.RenderString(name, tc.Input, err)}
			}
			return []string{fmt.Sprintln(v), ""}
		},
	}
	corpus.Run(t)
}
