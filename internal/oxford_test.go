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

package internal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/parsec/internal"
)

func TestOxford(t *testing.T) {
	t.Parallel()

	assert.Empty(t, internal.Oxford("or"))
	assert.Equal(t, "digit", internal.Oxford("or", "digit"))
	assert.Equal(t, "'+' or '-'", internal.Oxford("or", "'+'", "'-'"))
	assert.Equal(t, "'+', '-', or '*'", internal.Oxford("or", "'+'", "'-'", "'*'"))
	assert.Equal(t, "a, b, c, and d", internal.Oxford("and", "a", "b", "c", "d"))
}
