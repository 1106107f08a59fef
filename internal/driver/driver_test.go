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

package driver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxoncodec/boxon/internal/bitio"
	"github.com/boxoncodec/boxon/internal/driver"
	"github.com/boxoncodec/boxon/internal/record"
	"github.com/boxoncodec/boxon/internal/tmpl"
)

func buildFrameTemplate(t *testing.T) *tmpl.Template {
	t.Helper()
	tp, err := tmpl.Build(tmpl.Descriptor{
		Name:   "frame",
		Header: &tmpl.Header{Start: [][]byte{{0xAA}}},
		Steps: []tmpl.Step{
			&tmpl.BindStep{FieldName: "length", Binding: tmpl.IntegerBinding{WidthBits: 8, Order: bitio.Big}},
			&tmpl.BindStep{
				FieldName: "body",
				Binding:   tmpl.FixedStringBinding{Charset: "ASCII", SizeExpr: "self.length"},
			},
			&tmpl.ChecksumStep{FieldName: "crc", AlgorithmID: "CRC-8"},
		},
	})
	require.NoError(t, err)
	return tp
}

func TestEncodeThenDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	tp := buildFrameTemplate(t)
	store := driver.MapStore{"frame": tp}

	rec := record.New()
	rec.Set("length", uint64(5))
	rec.Set("body", "hello")

	w := bitio.NewWriter()
	require.NoError(t, driver.Encode(tp, store, w, rec, nil))

	r := bitio.NewReader(w.Array())
	got, nbits, err := driver.Decode(tp, store, r, nil)
	require.NoError(t, err)
	assert.Positive(t, nbits)

	length, ok := got.Get("length")
	require.True(t, ok)
	assert.Equal(t, uint64(5), length)
	body, ok := got.Get("body")
	require.True(t, ok)
	assert.Equal(t, "hello", body)
	_, ok = got.Get("crc")
	assert.True(t, ok)
}

func TestDecodeRejectsWrongHeaderStart(t *testing.T) {
	t.Parallel()

	tp := buildFrameTemplate(t)
	store := driver.MapStore{"frame": tp}

	r := bitio.NewReader([]byte{0xBB, 0x01, 'x'})
	_, _, err := driver.Decode(tp, store, r, nil)
	require.Error(t, err)
	var hdrErr *driver.HeaderMismatchError
	assert.ErrorAs(t, err, &hdrErr)
}

func TestDecodeRejectsCorruptedChecksum(t *testing.T) {
	t.Parallel()

	tp := buildFrameTemplate(t)
	store := driver.MapStore{"frame": tp}

	rec := record.New()
	rec.Set("length", uint64(1))
	rec.Set("body", "x")

	w := bitio.NewWriter()
	require.NoError(t, driver.Encode(tp, store, w, rec, nil))
	data := w.Array()
	data[len(data)-1] ^= 0xFF // corrupt the checksum byte

	r := bitio.NewReader(data)
	_, _, err := driver.Decode(tp, store, r, nil)
	require.Error(t, err)
	var mismatch *driver.ChecksumMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func selfReferentialTemplate(t *testing.T) *tmpl.Template {
	t.Helper()
	tp, err := tmpl.Build(tmpl.Descriptor{
		Name: "rec",
		Steps: []tmpl.Step{
			&tmpl.BindStep{FieldName: "child", Binding: tmpl.ObjectBinding{TypeName: "rec"}},
		},
	})
	require.NoError(t, err)
	return tp
}

func TestDecodeWithOptionsEnforcesMaxDepth(t *testing.T) {
	t.Parallel()

	tp := selfReferentialTemplate(t)
	store := driver.MapStore{"rec": tp}

	_, _, err := driver.DecodeWithOptions(tp, store, bitio.NewReader(nil), nil, driver.Options{MaxDepth: 3})
	require.Error(t, err)
	var dataErr *driver.DataError
	require.ErrorAs(t, err, &dataErr)
}

func TestEncodeWithOptionsEnforcesMaxDepth(t *testing.T) {
	t.Parallel()

	tp := selfReferentialTemplate(t)
	store := driver.MapStore{"rec": tp}

	rec := record.New()
	// self-referencing: a record pointing at itself never bottoms out,
	// exercising the same guard encodeAt enforces on the decode side.
	rec.Set("child", rec)

	err := driver.EncodeWithOptions(tp, store, bitio.NewWriter(), rec, nil, driver.Options{MaxDepth: 3})
	require.Error(t, err)
	var encErr *driver.EncodeError
	require.ErrorAs(t, err, &encErr)
}

type recordingListener struct {
	driver.NopListener
	decoding []string
	decoded  []string
}

func (l *recordingListener) DecodingField(template, field string) {
	l.decoding = append(l.decoding, field)
}
func (l *recordingListener) DecodedField(template, field string, value any) {
	l.decoded = append(l.decoded, field)
}

func TestListenerReceivesPerFieldEvents(t *testing.T) {
	t.Parallel()

	tp := buildFrameTemplate(t)
	store := driver.MapStore{"frame": tp}

	rec := record.New()
	rec.Set("length", uint64(2))
	rec.Set("body", "hi")

	w := bitio.NewWriter()
	require.NoError(t, driver.Encode(tp, store, w, rec, nil))

	l := &recordingListener{}
	_, _, err := driver.DecodeWithOptions(tp, store, bitio.NewReader(w.Array()), nil, driver.Options{Listener: l})
	require.NoError(t, err)

	assert.Equal(t, []string{"length", "body"}, l.decoding)
	assert.Equal(t, []string{"length", "body"}, l.decoded)
}

func TestConditionalFieldSkippedWhenFalse(t *testing.T) {
	t.Parallel()

	tp, err := tmpl.Build(tmpl.Descriptor{
		Name: "opt",
		Steps: []tmpl.Step{
			&tmpl.BindStep{FieldName: "flag", Binding: tmpl.IntegerBinding{WidthBits: 8, Order: bitio.Big}},
			&tmpl.BindStep{
				FieldName: "extra",
				Condition: "self.flag == 1",
				Binding:   tmpl.IntegerBinding{WidthBits: 8, Order: bitio.Big},
			},
		},
	})
	require.NoError(t, err)
	store := driver.MapStore{"opt": tp}

	r := bitio.NewReader([]byte{0x00})
	got, _, err := driver.Decode(tp, store, r, nil)
	require.NoError(t, err)
	_, ok := got.Get("extra")
	assert.False(t, ok)
}

func TestSkipBitsRoundTripsThroughEncodeDecode(t *testing.T) {
	t.Parallel()

	tp, err := tmpl.Build(tmpl.Descriptor{
		Name: "padded",
		Steps: []tmpl.Step{
			&tmpl.BindStep{FieldName: "a", Binding: tmpl.IntegerBinding{WidthBits: 8, Order: bitio.Big}},
			&tmpl.SkipStep{Mode: tmpl.SkipBits{SizeExpr: "8"}},
			&tmpl.BindStep{FieldName: "b", Binding: tmpl.IntegerBinding{WidthBits: 8, Order: bitio.Big}},
		},
	})
	require.NoError(t, err)
	store := driver.MapStore{"padded": tp}

	rec := record.New()
	rec.Set("a", uint64(1))
	rec.Set("b", uint64(2))

	w := bitio.NewWriter()
	require.NoError(t, driver.Encode(tp, store, w, rec, nil))
	assert.Equal(t, []byte{0x01, 0x00, 0x02}, w.Array())

	got, nbits, err := driver.Decode(tp, store, bitio.NewReader(w.Array()), nil)
	require.NoError(t, err)
	assert.Equal(t, 24, nbits)

	a, ok := got.Get("a")
	require.True(t, ok)
	assert.Equal(t, uint64(1), a)
	b, ok := got.Get("b")
	require.True(t, ok)
	assert.Equal(t, uint64(2), b)
}

func TestSkipUntilTerminatorRoundTripsThroughEncodeDecode(t *testing.T) {
	t.Parallel()

	tp, err := tmpl.Build(tmpl.Descriptor{
		Name: "terminated_pad",
		Steps: []tmpl.Step{
			&tmpl.SkipStep{Mode: tmpl.SkipUntilTerminator{Terminator: 0x00, Consume: true}},
			&tmpl.BindStep{FieldName: "b", Binding: tmpl.IntegerBinding{WidthBits: 8, Order: bitio.Big}},
		},
	})
	require.NoError(t, err)
	store := driver.MapStore{"terminated_pad": tp}

	rec := record.New()
	rec.Set("b", uint64(9))

	w := bitio.NewWriter()
	require.NoError(t, driver.Encode(tp, store, w, rec, nil))
	// SkipUntilTerminator writes just the terminator byte itself on encode.
	assert.Equal(t, []byte{0x00, 0x09}, w.Array())

	r := bitio.NewReader([]byte{0xAB, 0xCD, 0x00, 0x09})
	require.NoError(t, r.Skip(16))
	got, _, err := driver.Decode(tp, store, r, nil)
	require.NoError(t, err)
	b, ok := got.Get("b")
	require.True(t, ok)
	assert.Equal(t, uint64(9), b)
}

func TestPostProcessRewritesFieldDuringEncodeOnly(t *testing.T) {
	t.Parallel()

	tp, err := tmpl.Build(tmpl.Descriptor{
		Name: "rewritten",
		Steps: []tmpl.Step{
			&tmpl.BindStep{
				FieldName:   "count",
				Binding:     tmpl.IntegerBinding{WidthBits: 8, Order: bitio.Big},
				PostProcess: &tmpl.Rewrite{Expr: "self.count + 1u"},
			},
		},
	})
	require.NoError(t, err)
	store := driver.MapStore{"rewritten": tp}

	rec := record.New()
	rec.Set("count", uint64(4))

	w := bitio.NewWriter()
	require.NoError(t, driver.Encode(tp, store, w, rec, nil))
	assert.Equal(t, []byte{0x05}, w.Array(), "PostProcess must rewrite the field before it reaches the wire")

	// Decode never runs PostProcess: the wire value comes back unchanged.
	got, _, err := driver.Decode(tp, store, bitio.NewReader(w.Array()), nil)
	require.NoError(t, err)
	count, ok := got.Get("count")
	require.True(t, ok)
	assert.Equal(t, uint64(5), count)
}

func TestEvaluatedFieldComputedAfterSteps(t *testing.T) {
	t.Parallel()

	tp, err := tmpl.Build(tmpl.Descriptor{
		Name: "withderived",
		Steps: []tmpl.Step{
			&tmpl.BindStep{FieldName: "count", Binding: tmpl.IntegerBinding{WidthBits: 8, Order: bitio.Big}},
		},
		Evaluated: []tmpl.EvaluatedField{
			{Name: "isEmpty", Expr: "self.count == 0"},
		},
	})
	require.NoError(t, err)
	store := driver.MapStore{"withderived": tp}

	r := bitio.NewReader([]byte{0x00})
	got, _, err := driver.Decode(tp, store, r, nil)
	require.NoError(t, err)
	v, ok := got.Get("isEmpty")
	require.True(t, ok)
	assert.Equal(t, true, v)
}
