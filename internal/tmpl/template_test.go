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

package tmpl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxoncodec/boxon/internal/bitio"
	"github.com/boxoncodec/boxon/internal/tmpl"
)

func TestBuildRejectsUnnamedTemplate(t *testing.T) {
	t.Parallel()

	_, err := tmpl.Build(tmpl.Descriptor{})
	require.Error(t, err)
	var annErr *tmpl.AnnotationError
	require.ErrorAs(t, err, &annErr)
}

func TestBuildRejectsHeaderWithNoStart(t *testing.T) {
	t.Parallel()

	_, err := tmpl.Build(tmpl.Descriptor{
		Name:   "frame",
		Header: &tmpl.Header{},
	})
	require.Error(t, err)
}

func TestBuildRejectsDuplicateFieldNames(t *testing.T) {
	t.Parallel()

	_, err := tmpl.Build(tmpl.Descriptor{
		Name: "frame",
		Steps: []tmpl.Step{
			&tmpl.BindStep{FieldName: "len", Binding: tmpl.IntegerBinding{WidthBits: 8}},
			&tmpl.BindStep{FieldName: "len", Binding: tmpl.IntegerBinding{WidthBits: 8}},
		},
	})
	require.Error(t, err)
	var annErr *tmpl.AnnotationError
	require.ErrorAs(t, err, &annErr)
	assert.Equal(t, "len", annErr.Field)
}

func TestBuildRejectsUnknownCharset(t *testing.T) {
	t.Parallel()

	_, err := tmpl.Build(tmpl.Descriptor{
		Name: "frame",
		Steps: []tmpl.Step{
			&tmpl.BindStep{
				FieldName: "name",
				Binding:   tmpl.FixedStringBinding{Charset: "klingon", SizeExpr: "8"},
			},
		},
	})
	require.Error(t, err)
}

func TestBuildRejectsObjectBindingWithNoTypeOrChoices(t *testing.T) {
	t.Parallel()

	_, err := tmpl.Build(tmpl.Descriptor{
		Name: "frame",
		Steps: []tmpl.Step{
			&tmpl.BindStep{FieldName: "payload", Binding: tmpl.ObjectBinding{}},
		},
	})
	require.Error(t, err)
}

func TestBuildRejectsEmptyRequiredChoiceSet(t *testing.T) {
	t.Parallel()

	_, err := tmpl.Build(tmpl.Descriptor{
		Name: "frame",
		Steps: []tmpl.Step{
			&tmpl.BindStep{
				FieldName: "payload",
				Binding:   tmpl.ObjectBinding{Choices: &tmpl.ChoiceSet{}},
			},
		},
	})
	require.Error(t, err)
}

func TestBuildRejectsMalformedExpression(t *testing.T) {
	t.Parallel()

	_, err := tmpl.Build(tmpl.Descriptor{
		Name: "frame",
		Steps: []tmpl.Step{
			&tmpl.BindStep{
				FieldName: "len",
				Condition: "self.)(garbage",
				Binding:   tmpl.IntegerBinding{WidthBits: 8},
			},
		},
	})
	require.Error(t, err)
}

func TestBuildAcceptsWellFormedTemplate(t *testing.T) {
	t.Parallel()

	d := tmpl.Descriptor{
		Name: "frame",
		Header: &tmpl.Header{
			Start: [][]byte{{0xDE, 0xAD}},
			End:   []byte{0xFF},
		},
		Steps: []tmpl.Step{
			&tmpl.BindStep{FieldName: "length", Binding: tmpl.IntegerBinding{WidthBits: 16, Order: bitio.Big}},
			&tmpl.BindStep{
				FieldName: "body",
				Condition: "self.length > 0",
				Binding:   tmpl.FixedStringBinding{Charset: "ASCII", SizeExpr: "self.length"},
			},
			&tmpl.ChecksumStep{FieldName: "crc", AlgorithmID: "CRC-16/CCITT-FALSE"},
		},
		Evaluated: []tmpl.EvaluatedField{
			{Name: "isEmpty", Expr: "self.length == 0"},
		},
	}

	tp, err := tmpl.Build(d)
	require.NoError(t, err)
	assert.Equal(t, "frame", tp.Name())
	assert.Len(t, tp.Steps(), 3)
	assert.Len(t, tp.EvaluatedFields(), 1)

	hdr, ok := tp.Header()
	require.True(t, ok)
	assert.Equal(t, []byte{0xFF}, hdr.End)

	require.NotNil(t, tp.Evaluator())
}

func TestBuildRejectsDuplicateEvaluatedFieldName(t *testing.T) {
	t.Parallel()

	_, err := tmpl.Build(tmpl.Descriptor{
		Name: "frame",
		Steps: []tmpl.Step{
			&tmpl.BindStep{FieldName: "flag", Binding: tmpl.IntegerBinding{WidthBits: 8}},
		},
		Evaluated: []tmpl.EvaluatedField{
			{Name: "flag", Expr: "1"},
		},
	})
	require.Error(t, err)
}

func TestConverterChoicesResolve(t *testing.T) {
	t.Parallel()

	// Pointers, so that assert.Equal compares identity: ConverterFunc values
	// hold funcs, which reflect.DeepEqual never reports as equal.
	upper := &tmpl.ConverterFunc{
		DecodeFn: func(wire any) (any, error) { return wire, nil },
		EncodeFn: func(rec any) (any, error) { return rec, nil },
	}
	lower := &tmpl.ConverterFunc{
		DecodeFn: func(wire any) (any, error) { return wire, nil },
		EncodeFn: func(rec any) (any, error) { return rec, nil },
	}
	cc := &tmpl.ConverterChoices{
		Alternatives: []tmpl.ConverterAlternative{
			{Condition: "false", Converter: upper},
		},
		Default: lower,
	}

	got, err := cc.Resolve(func(cond string) (bool, error) { return cond != "false", nil })
	require.NoError(t, err)
	assert.Equal(t, lower, got)
}

func TestConverterChoicesResolveNilIsNoop(t *testing.T) {
	t.Parallel()

	var cc *tmpl.ConverterChoices
	got, err := cc.Resolve(func(string) (bool, error) { return true, nil })
	require.NoError(t, err)
	assert.Nil(t, got)
}
