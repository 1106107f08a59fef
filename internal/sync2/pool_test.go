// Copyright 2025 The Boxon Authors.
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

package sync2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxoncodec/boxon/internal/sync2"
)

func TestPoolGetConstructsWithZeroValueByDefault(t *testing.T) {
	t.Parallel()

	var p sync2.Pool[[]byte]
	v, drop := p.Get()
	require.NotNil(t, v)
	assert.Nil(t, *v)
	drop()
}

func TestPoolGetUsesCustomConstructor(t *testing.T) {
	t.Parallel()

	p := sync2.Pool[[]byte]{
		New: func() *[]byte { b := make([]byte, 0, 64); return &b },
	}
	v, drop := p.Get()
	require.NotNil(t, v)
	assert.Equal(t, 64, cap(*v))
	drop()
}

func TestPoolResetRunsBeforeReuse(t *testing.T) {
	t.Parallel()

	resetCalls := 0
	p := sync2.Pool[[]byte]{
		Reset: func(b *[]byte) { resetCalls++; *b = (*b)[:0] },
	}

	v, drop := p.Get()
	*v = append(*v, 1, 2, 3)
	drop()

	assert.Equal(t, 1, resetCalls)
}
