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

// Package describer projects a compiled tmpl.Template into a plain,
// introspectable tree of maps and slices — the shape Describe hands back to
// callers that want to render documentation, a debugging dump, or a schema
// view without depending on boxon's internal types.
package describer

import (
	"github.com/stoewer/go-strcase"

	"github.com/boxoncodec/boxon/internal/tmpl"
)

// Describe renders t into a nested map keyed in snake_case, regardless of
// the Go-side field names used to build it.
func Describe(t *tmpl.Template) map[string]any {
	out := map[string]any{
		"name": t.Name(),
	}
	if hdr, ok := t.Header(); ok {
		h := map[string]any{}
		if len(hdr.Start) > 0 {
			h["start"] = hdr.Start
		}
		if len(hdr.End) > 0 {
			h["end"] = hdr.End
		}
		if hdr.Charset != "" {
			h["charset"] = hdr.Charset
		}
		out["header"] = h
	}

	var steps []any
	for _, s := range t.Steps() {
		steps = append(steps, describeStep(s))
	}
	out["steps"] = steps

	var evaluated []any
	for _, e := range t.EvaluatedFields() {
		evaluated = append(evaluated, map[string]any{
			key("name"):      e.Name,
			key("condition"): e.Condition,
			key("expr"):      e.Expr,
		})
	}
	if evaluated != nil {
		out["evaluated_fields"] = evaluated
	}

	return out
}

func describeStep(s tmpl.Step) map[string]any {
	switch v := s.(type) {
	case *tmpl.SkipStep:
		return map[string]any{
			key("kind"):      "skip",
			key("condition"): v.Condition,
		}
	case *tmpl.BindStep:
		m := map[string]any{
			key("kind"):      "bind",
			key("field"):     v.FieldName,
			key("condition"): v.Condition,
			key("binding"):   describeBinding(v.Binding),
		}
		if v.Converters != nil {
			m[key("has_converter")] = true
		}
		if v.Validator != nil {
			m[key("has_validator")] = true
		}
		if v.PostProcess != nil {
			m[key("post_process")] = v.PostProcess.Expr
		}
		return m
	case *tmpl.ChecksumStep:
		return map[string]any{
			key("kind"):       "checksum",
			key("field"):      v.FieldName,
			key("algorithm"):  v.AlgorithmID,
			key("byte_order"): v.ByteOrder.String(),
		}
	default:
		return map[string]any{key("kind"): "unknown"}
	}
}

func describeBinding(b tmpl.FieldBinding) map[string]any {
	m := map[string]any{key("kind"): b.Kind().String()}
	switch v := b.(type) {
	case tmpl.IntegerBinding:
		m[key("width_bits")] = v.WidthBits
		m[key("signed")] = v.Signed
		m[key("order")] = v.Order.String()
	case tmpl.FloatBinding:
		m[key("width_bits")] = v.WidthBits
		m[key("order")] = v.Order.String()
	case tmpl.BitsBinding:
		m[key("size_expr")] = v.SizeExpr
		m[key("signed")] = v.Signed
	case tmpl.FixedStringBinding:
		m[key("charset")] = v.Charset
		m[key("size_expr")] = v.SizeExpr
	case tmpl.TerminatedStringBinding:
		m[key("charset")] = v.Charset
	case tmpl.BitSetBinding:
		m[key("size_expr")] = v.SizeExpr
	case tmpl.ObjectBinding:
		if v.Choices != nil {
			var alts []any
			for _, alt := range v.Choices.Alternatives {
				alts = append(alts, map[string]any{
					key("type_name"): alt.TypeName,
					key("condition"): alt.Condition,
				})
			}
			m[key("choices")] = alts
		} else {
			m[key("type_name")] = v.TypeName
		}
	case tmpl.ArrayPrimitiveBinding:
		m[key("size_expr")] = v.SizeExpr
		m[key("element")] = describeBinding(v.Element)
	case tmpl.ArrayObjectBinding:
		m[key("size_expr")] = v.SizeExpr
		m[key("element")] = describeBinding(v.Element)
	case tmpl.ListBinding:
		m[key("element")] = describeBinding(v.Element)
	}
	return m
}

func key(s string) string { return strcase.SnakeCase(s) }
