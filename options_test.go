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
	"github.com/boxoncodec/boxon/internal/tmpl"
)

func selfReferentialAPITemplate(t *testing.T, name string) *tmpl.Template {
	t.Helper()
	tp, err := tmpl.Build(tmpl.Descriptor{
		Name: name,
		Steps: []tmpl.Step{
			&tmpl.BindStep{FieldName: "child", Binding: tmpl.ObjectBinding{TypeName: name}},
		},
	})
	require.NoError(t, err)
	require.NoError(t, boxon.RegisterTemplate(tp))
	return tp
}

func TestWithMaxDepthBoundsParseRecursion(t *testing.T) {
	t.Parallel()

	tp := selfReferentialAPITemplate(t, "options_test.rec_decode")

	_, _, err := boxon.Parse(tp, nil, boxon.WithMaxDepth(3))
	require.Error(t, err)
	var dataErr *boxon.DataError
	assert.ErrorAs(t, err, &dataErr)
}

func TestWithComposeMaxDepthBoundsEncodeRecursion(t *testing.T) {
	t.Parallel()

	tp := selfReferentialAPITemplate(t, "options_test.rec_encode")

	rec := boxon.NewRecord()
	rec.Set("child", rec)

	_, err := boxon.Compose(tp, rec, boxon.WithComposeMaxDepth(3))
	require.Error(t, err)
	var encErr *boxon.EncodeError
	assert.ErrorAs(t, err, &encErr)
}
