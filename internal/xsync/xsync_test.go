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

package xsync_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxoncodec/boxon/internal/xsync"
)

func TestMapLoadStore(t *testing.T) {
	t.Parallel()

	var m xsync.Map[string, int]
	_, ok := m.Load("a")
	assert.False(t, ok)

	m.Store("a", 1)
	v, ok := m.Load("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestMapLoadOrStoreOnlyConstructsOnce(t *testing.T) {
	t.Parallel()

	var m xsync.Map[string, int]
	calls := 0
	make1 := func() int { calls++; return 7 }

	v, loaded := m.LoadOrStore("k", make1)
	assert.False(t, loaded)
	assert.Equal(t, 7, v)

	v, loaded = m.LoadOrStore("k", make1)
	assert.True(t, loaded)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls)
}

func TestMapAllVisitsEveryEntry(t *testing.T) {
	t.Parallel()

	var m xsync.Map[string, int]
	m.Store("a", 1)
	m.Store("b", 2)

	var keys []string
	for k := range m.All() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestSetLoadStore(t *testing.T) {
	t.Parallel()

	var s xsync.Set[string]
	assert.False(t, s.Load("x"))
	s.Store("x")
	assert.True(t, s.Load("x"))
}

func TestSetAllVisitsEveryValue(t *testing.T) {
	t.Parallel()

	var s xsync.Set[int]
	s.Store(1)
	s.Store(2)

	var got []int
	for v := range s.All() {
		got = append(got, v)
	}
	sort.Ints(got)
	assert.Equal(t, []int{1, 2}, got)
}
