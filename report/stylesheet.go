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

package report

// styleSheet is the colors used for pretty-rendering diagnostics.
type styleSheet struct {
	reset string
	// Normal colors.
	nError, nAccent string
	// Bold colors.
	bError string
}

func newStyleSheet(r Renderer) styleSheet {
	if !r.Colorize {
		return styleSheet{}
	}

	return styleSheet{
		reset: "\033[0m",
		// Red.
		nError: "\033[0;31m",
		bError: "\033[1;31m",

		// Blue. Used for "accents" such as line numbers and the sidebar, to
		// clearly separate them from the source text.
		nAccent: "\033[0;34m",
	}
}
