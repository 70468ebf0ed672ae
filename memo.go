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
	"slices"
	"sync/atomic"

	"github.com/tidwall/btree"
)

// memoIDs allocates identities for memoized parsers.
var memoIDs atomic.Uint64

// memoTable records the outcomes of memoized parsers on a [Text], by the
// offset they were applied at.
type memoTable struct {
	rows btree.Map[int, []memoEntry]
}

type memoEntry struct {
	id    uint64
	end   mark // Where the parser left the input.
	value any
	err   error
}

func (m *memoTable) get(offset int, id uint64) (memoEntry, bool) {
	row, _ := m.rows.Get(offset)
	i := slices.IndexFunc(row, func(e memoEntry) bool { return e.id == id })
	if i < 0 {
		return memoEntry{}, false
	}
	return row[i], true
}

func (m *memoTable) put(offset int, e memoEntry) {
	row, _ := m.rows.Get(offset)
	m.rows.Set(offset, append(row, e))
}

// size returns the number of recorded outcomes.
func (m *memoTable) size() int {
	var n int
	m.rows.Scan(func(_ int, row []memoEntry) bool {
		n += len(row)
		return true
	})
	return n
}

// Memo returns a parser that behaves like p, but when applied to a [Text]
// records p's outcome at each offset, so that applying it again at the same
// offset (after backtracking, say) replays the outcome instead of parsing
// again. The record is shared by all clones of the Text.
//
// p must be context-free: its outcome may depend only on the input at the
// offset it is applied at. Left-recursive use is not supported.
//
// On other inputs, Memo simply runs p.
func Memo[O any](p Parser[rune, O]) Parser[rune, O] {
	id := memoIDs.Add(1)
	return Func[rune, O](func(in Input[rune]) (O, error) {
		t, ok := in.(*Text)
		if !ok {
			return p.Parse(in)
		}

		if t.origin.memo == nil {
			t.origin.memo = new(memoTable)
		}
		table := t.origin.memo

		start := t.off
		if e, ok := table.get(start, id); ok {
			t.rewind(e.end)
			v, _ := e.value.(O)
			return v, e.err
		}

		v, err := p.Parse(in)
		table.put(start, memoEntry{id: id, end: t.mark(), value: v, err: err})
		return v, err
	})
}
