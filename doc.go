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

// Package parsec is a parser-combinator engine.
//
// Grammars are built by composing small [Parser] values with combinators
// such as [And], [Or], [Many] and [ChainL1], and then run against an
// [Input]. Two kinds of input are provided:
//
//   - [Text] and [Slice] are materialized inputs. They borrow an in-memory
//     buffer, backtrack for free, and can hand out consumed spans without
//     copying.
//   - [Stream] decodes UTF-8 incrementally from an [io.Reader], keeping only
//     the window of tokens that outstanding cursors may still need to
//     replay.
//
// # Backtracking
//
// Combinators that speculate, such as [Or], [Opt] and [Many], open a
// [Cursor] on the input before trying a branch, and restore it if the branch
// fails. A failed speculative attempt therefore never leaks consumption into
// the alternatives that follow it. Grammars that call [Input.Cursor]
// directly should follow the same discipline:
//
//	c := in.Cursor()
//	defer c.Commit()
//	if _, err := p.Parse(in); err != nil {
//		c.Restore()
//		...
//	}
//
// # Errors
//
// Parse failures are reported as [*Error] values. When every branch of an
// alternation fails, the errors are combined with [Merge], which prefers the
// failure that got furthest into the input.
package parsec
