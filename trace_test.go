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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"

	"github.com/bufbuild/parsec"
)

func TestTrace(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	p := parsec.Trace(zap.New(core), "number", parsec.Integer[int]())

	_, err := parsec.Parse(p, parsec.NewText("12"))
	require.NoError(t, err)
	_, err = parsec.Parse(p, parsec.NewText("x"))
	require.Error(t, err)

	var messages []string
	for _, entry := range logs.AllUntimed() {
		assert.Equal(t, "number", entry.ContextMap()["parser"])
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{"enter", "ok", "enter", "fail"}, messages)

	ok := logs.FilterMessage("ok").AllUntimed()[0].ContextMap()
	assert.Equal(t, int64(2), ok["offset"])
	assert.Equal(t, int64(3), ok["column"])
	assert.Equal(t, int64(12), ok["value"])

	fail := logs.FilterMessage("fail").AllUntimed()[0].ContextMap()
	assert.Equal(t, "1:1: expected digit; found 'x'", fail["error"])
}

func TestTraceDisabled(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	p := parsec.Trace(zap.New(core), "char", parsec.Char('a'))
	_, err := parsec.Parse(p, parsec.NewText("a"))
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}

// TestConcurrentReuse applies one grammar to many inputs at once.
func TestConcurrentReuse(t *testing.T) {
	t.Parallel()

	grammar := calculator()
	var group errgroup.Group
	results := make([]int, 64)
	for i := range results {
		group.Go(func() error {
			src := fmt.Sprintf("%d * (%d + 1)", i, i)
			v, err := parsec.Run(grammar, parsec.NewText(src))
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	require.NoError(t, group.Wait())

	for i, v := range results {
		assert.Equal(t, i*(i+1), v)
	}
}
