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

// Package golden runs table-driven tests whose table lives in the file
// system: each case is an input file, next to files holding its expected
// outputs.
package golden

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus is a directory of test cases.
type Corpus struct {
	// The root of the test data directory, relative to the file that calls
	// [Corpus.Run].
	Root string

	// An environment variable holding a glob. Cases whose names match it are
	// run in "refresh" mode: their outputs are written instead of compared.
	Refresh string

	// The file extension (without a dot) of files which define a test case,
	// e.g. "yaml".
	Extension string

	// The outputs of each case. A missing output file is treated as empty.
	Outputs []Output

	// Test runs one case, given its name and the contents of its file.
	// Returns one string per element of Outputs.
	Test func(t *testing.T, name, text string) []string
}

// Output is one of the outputs of a test case.
type Output struct {
	// The suffix appended to the case's file name to find this output: for
	// a case "foo.yaml" and an extension "stderr", "foo.yaml.stderr".
	Extension string

	// Compares the output produced with the expected one. May be nil, in
	// which case they must match exactly.
	Compare Compare
}

// Compare compares a test result with its expected value. Returns the empty
// string if they match, and a description of the mismatch otherwise.
type Compare func(got, want string) string

// Run runs every case in the corpus as a subtest of t.
func (c Corpus) Run(t *testing.T) {
	t.Helper()

	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)

	cases, err := doublestar.Glob(os.DirFS(root), "**/*."+c.Extension)
	if err != nil {
		t.Fatalf("golden: searching %q: %v", root, err)
	}
	if len(cases) == 0 {
		t.Fatalf("golden: no .%s files in %q", c.Extension, root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if refresh != "" && !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("golden: refreshing test data because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, name := range cases {
		path := filepath.Join(root, filepath.FromSlash(name))
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			input, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("golden: loading input %q: %v", path, err)
			}

			results := c.Test(t, name, string(input))
			if len(results) != len(c.Outputs) {
				t.Fatalf("golden: test returned %d outputs, want %d", len(results), len(c.Outputs))
			}

			rewrite, _ := doublestar.Match(refresh, name)
			for i, output := range c.Outputs {
				path := fmt.Sprint(path, ".", output.Extension)
				if rewrite {
					if err := write(path, results[i]); err != nil {
						t.Errorf("golden: refreshing %q: %v", path, err)
					}
					continue
				}

				want, err := os.ReadFile(path)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("golden: loading output %q: %v", path, err)
					continue
				}

				compare := output.Compare
				if compare == nil {
					compare = Diff
				}
				if msg := compare(results[i], string(want)); msg != "" {
					t.Errorf("output mismatch for %q:\n%s", path, msg)
				}
			}
		})
	}
}

// write replaces the output file at path. An empty output is represented by
// deleting the file.
func write(path, output string) error {
	if output == "" {
		err := os.Remove(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.WriteFile(path, []byte(output), 0o644)
}

// Diff is the default [Compare]: an exact match, reporting mismatches as a
// colorized unified diff.
func Diff(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = "\033[1;92m" + line + "\033[0m"
		case strings.HasPrefix(line, "-"):
			lines[i] = "\033[1;91m" + line + "\033[0m"
		}
	}
	return strings.Join(lines, "\n")
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("golden: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
