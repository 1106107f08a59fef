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

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxoncodec/boxon/internal/validate"
)

func TestRangeAcceptsWithinBounds(t *testing.T) {
	t.Parallel()
	v := validate.Range(0, 10)
	assert.NoError(t, v.Validate(int64(0)))
	assert.NoError(t, v.Validate(int64(10)))
	assert.NoError(t, v.Validate(int64(5)))
}

func TestRangeRejectsOutsideBounds(t *testing.T) {
	t.Parallel()
	v := validate.Range(0, 10)
	assert.Error(t, v.Validate(int64(-1)))
	assert.Error(t, v.Validate(int64(11)))
}

func TestRangeRejectsWrongType(t *testing.T) {
	t.Parallel()
	v := validate.Range(0, 10)
	assert.Error(t, v.Validate("not an int"))
}

func TestOneOfAcceptsMember(t *testing.T) {
	t.Parallel()
	v := validate.OneOf(1, 2, 3)
	assert.NoError(t, v.Validate(int64(2)))
	assert.Error(t, v.Validate(int64(4)))
}

func TestOneOfStringAcceptsMember(t *testing.T) {
	t.Parallel()
	v := validate.OneOfString("a", "b")
	assert.NoError(t, v.Validate("a"))
	assert.Error(t, v.Validate("c"))
}

func TestMaxLengthRejectsLongValue(t *testing.T) {
	t.Parallel()
	v := validate.MaxLength(3)
	assert.NoError(t, v.Validate("abc"))
	assert.Error(t, v.Validate("abcd"))
}

func TestMinLengthRejectsShortValue(t *testing.T) {
	t.Parallel()
	v := validate.MinLength(2)
	assert.NoError(t, v.Validate("ab"))
	assert.Error(t, v.Validate("a"))
}

func TestNotEmptyRejectsEmptyValue(t *testing.T) {
	t.Parallel()
	v := validate.NotEmpty()
	assert.Error(t, v.Validate(""))
	assert.Error(t, v.Validate([]byte{}))
	assert.NoError(t, v.Validate("x"))
}

func TestRegisterRejectsDuplicateID(t *testing.T) {
	t.Parallel()
	require.NoError(t, validate.Register("validate_test.dup", validate.NotEmpty()))
	err := validate.Register("validate_test.dup", validate.NotEmpty())
	assert.Error(t, err)
}

func TestLookupFindsBuiltinNotEmpty(t *testing.T) {
	t.Parallel()
	v, ok := validate.Lookup("not_empty")
	require.True(t, ok)
	assert.Error(t, v.Validate(""))
}

func TestLookupReportsMissing(t *testing.T) {
	t.Parallel()
	_, ok := validate.Lookup("validate_test.does_not_exist")
	assert.False(t, ok)
}
