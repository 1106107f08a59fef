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

package boxon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	boxon "github.com/boxoncodec/boxon"
	"github.com/boxoncodec/boxon/internal/bitio"
	"github.com/boxoncodec/boxon/internal/tmpl"
)

func buildAPIFrameTemplate(t *testing.T, name string) *tmpl.Template {
	t.Helper()
	tp, err := tmpl.Build(tmpl.Descriptor{
		Name:   name,
		Header: &tmpl.Header{Start: [][]byte{{0xAA}}},
		Steps: []tmpl.Step{
			&tmpl.BindStep{FieldName: "length", Binding: tmpl.IntegerBinding{WidthBits: 8, Order: bitio.Big}},
			&tmpl.BindStep{
				FieldName: "body",
				Binding:   tmpl.FixedStringBinding{Charset: "ASCII", SizeExpr: "self.length"},
			},
		},
	})
	require.NoError(t, err)
	return tp
}

func TestParseComposeRoundTrip(t *testing.T) {
	t.Parallel()

	tp := buildAPIFrameTemplate(t, "api_test.roundtrip_frame")

	rec := boxon.NewRecord()
	rec.Set("length", uint64(5))
	rec.Set("body", "hello")

	data, err := boxon.Compose(tp, rec)
	require.NoError(t, err)

	got, n, err := boxon.Parse(tp, data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)

	body, ok := got.Get("body")
	require.True(t, ok)
	assert.Equal(t, "hello", body)
}

func TestParseNestedObjectResolvesAgainstRegistry(t *testing.T) {
	t.Parallel()

	inner, err := tmpl.Build(tmpl.Descriptor{
		Name: "api_test.nested_inner",
		Steps: []tmpl.Step{
			&tmpl.BindStep{FieldName: "flag", Binding: tmpl.IntegerBinding{WidthBits: 8, Order: bitio.Big}},
		},
	})
	require.NoError(t, err)
	require.NoError(t, boxon.RegisterTemplate(inner))

	outer, err := tmpl.Build(tmpl.Descriptor{
		Name: "api_test.nested_outer",
		Steps: []tmpl.Step{
			&tmpl.BindStep{FieldName: "child", Binding: tmpl.ObjectBinding{TypeName: "api_test.nested_inner"}},
		},
	})
	require.NoError(t, err)

	childRec := boxon.NewRecord()
	childRec.Set("flag", uint64(1))
	outerRec := boxon.NewRecord()
	outerRec.Set("child", childRec)

	data, err := boxon.Compose(outer, outerRec)
	require.NoError(t, err)

	got, _, err := boxon.Parse(outer, data)
	require.NoError(t, err)

	childVal, ok := got.Get("child")
	require.True(t, ok)
	childGot, ok := childVal.(*boxon.Record)
	require.True(t, ok)
	flag, ok := childGot.Get("flag")
	require.True(t, ok)
	assert.Equal(t, uint64(1), flag)
}

func TestFindNextMessageReturnsEarliestMatch(t *testing.T) {
	t.Parallel()

	a, err := tmpl.Build(tmpl.Descriptor{Name: "api_test.find_a", Header: &tmpl.Header{Start: [][]byte{{0xAA}}}})
	require.NoError(t, err)
	b, err := tmpl.Build(tmpl.Descriptor{Name: "api_test.find_b", Header: &tmpl.Header{Start: [][]byte{{0xBB}}}})
	require.NoError(t, err)

	data := []byte{0x00, 0x00, 0xBB, 0x00, 0xAA}
	pos, match, ok := boxon.FindNextMessage([]*tmpl.Template{a, b}, data, 0)
	require.True(t, ok)
	assert.Equal(t, 2, pos)
	assert.Equal(t, "api_test.find_b", match.Name())
}

func TestFindNextMessagePrefersLongerPrefixMatch(t *testing.T) {
	t.Parallel()

	short, err := tmpl.Build(tmpl.Descriptor{Name: "api_test.prefix_short", Header: &tmpl.Header{Start: [][]byte{{0xAA}}}})
	require.NoError(t, err)
	long, err := tmpl.Build(tmpl.Descriptor{Name: "api_test.prefix_long", Header: &tmpl.Header{Start: [][]byte{{0xAA, 0xBB}}}})
	require.NoError(t, err)

	data := []byte{0xAA, 0xBB}
	pos, match, ok := boxon.FindNextMessage([]*tmpl.Template{short, long}, data, 0)
	require.True(t, ok)
	assert.Equal(t, 0, pos)
	assert.Equal(t, "api_test.prefix_long", match.Name())
}

func TestFindNextMessageNoMatch(t *testing.T) {
	t.Parallel()

	a, err := tmpl.Build(tmpl.Descriptor{Name: "api_test.nomatch", Header: &tmpl.Header{Start: [][]byte{{0xAA}}}})
	require.NoError(t, err)

	_, _, ok := boxon.FindNextMessage([]*tmpl.Template{a}, []byte{0x01, 0x02, 0x03}, 0)
	assert.False(t, ok)
}

func TestDescribeRendersTemplateName(t *testing.T) {
	t.Parallel()

	tp := buildAPIFrameTemplate(t, "api_test.describe_frame")
	out := boxon.Describe(tp)
	assert.Equal(t, "api_test.describe_frame", out["name"])
}
