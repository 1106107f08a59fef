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

package checksum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxoncodec/boxon/internal/checksum"
)

func TestLookupKnownAlgorithms(t *testing.T) {
	t.Parallel()

	for _, id := range []string{
		"CRC-16/CCITT-FALSE", "CRC-16/XMODEM", "CRC-16/MODBUS", "CRC-8",
		"CRC-32", "CRC-32C", "CRC-64/ISO", "CRC-64/ECMA",
		"ADLER-32", "BLAKE2B-256-TRUNC8",
	} {
		a, ok := checksum.Lookup(id)
		require.True(t, ok, id)
		assert.Positive(t, a.Width(), id)
	}
}

func TestLookupUnknownAlgorithm(t *testing.T) {
	t.Parallel()

	_, ok := checksum.Lookup("CRC-99")
	assert.False(t, ok)
}

func TestComputeIsDeterministic(t *testing.T) {
	t.Parallel()

	a, ok := checksum.Lookup("CRC-16/CCITT-FALSE")
	require.True(t, ok)

	window := []byte("123456789")
	first := a.Compute(window, 0xFFFF, checksum.BigEndian)
	second := a.Compute(window, 0xFFFF, checksum.BigEndian)
	assert.Equal(t, first, second)
	assert.Len(t, first, a.Width())
}

func TestComputeWidthMatchesDeclaredWidth(t *testing.T) {
	t.Parallel()

	for id, wantWidth := range map[string]int{
		"CRC-8":       1,
		"CRC-16/XMODEM": 2,
		"CRC-32":      4,
		"CRC-64/ISO":  8,
		"ADLER-32":    4,
	} {
		a, ok := checksum.Lookup(id)
		require.True(t, ok, id)
		assert.Equal(t, wantWidth, a.Width(), id)
		out := a.Compute([]byte("hello"), 0, checksum.BigEndian)
		assert.Len(t, out, wantWidth, id)
	}
}

func TestComputeLittleEndianIsByteReversalOfBigEndian(t *testing.T) {
	t.Parallel()

	a, ok := checksum.Lookup("CRC-32")
	require.True(t, ok)

	window := []byte("the quick brown fox")
	big := a.Compute(window, 0, checksum.BigEndian)
	little := a.Compute(window, 0, checksum.LittleEndian)

	require.Len(t, big, len(little))
	for i := range big {
		assert.Equal(t, big[i], little[len(little)-1-i])
	}
}

func TestComputeDiffersAcrossWindows(t *testing.T) {
	t.Parallel()

	a, ok := checksum.Lookup("CRC-16/MODBUS")
	require.True(t, ok)

	out1 := a.Compute([]byte("alpha"), 0xFFFF, checksum.BigEndian)
	out2 := a.Compute([]byte("bravo"), 0xFFFF, checksum.BigEndian)
	assert.NotEqual(t, out1, out2)
}

func TestSeededStartValueChangesResult(t *testing.T) {
	t.Parallel()

	a, ok := checksum.Lookup("CRC-32")
	require.True(t, ok)

	window := []byte("seed test")
	out1 := a.Compute(window, 0, checksum.BigEndian)
	out2 := a.Compute(window, 0xFFFFFFFF, checksum.BigEndian)
	assert.NotEqual(t, out1, out2)
}
