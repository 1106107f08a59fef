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

package tmpl

import (
	"fmt"

	"github.com/boxoncodec/boxon/internal/charset"
	"github.com/boxoncodec/boxon/internal/eval"
)

// Header describes the optional fixed preamble and trailer a message of
// this Template must carry: one of several accepted start sequences (a
// protocol revision may accept more than one), and an exact end sequence.
type Header struct {
	Start   [][]byte
	End     []byte
	Charset string
}

// Descriptor is the unvalidated input to Build: the raw annotation data a
// loader (hand-written Go, or internal/descriptoryaml) produces. Build
// never mutates it; the returned Template shares its Header pointer and its
// Steps and Evaluated slices rather than copying them, so those must not be
// changed after Build returns.
type Descriptor struct {
	Name           string
	Header         *Header
	Steps          []Step
	Evaluated      []EvaluatedField
	ContextValues  map[string]any
	ContextMethods []eval.Method
}

// Template is the compiled, validated, immutable form of a Descriptor. It
// is safe for concurrent use by any number of parses once Build returns it.
type Template struct {
	name      string
	header    *Header
	steps     []Step
	evaluated []EvaluatedField
	evaluator *eval.Evaluator
}

func (t *Template) Name() string               { return t.name }
func (t *Template) Header() (Header, bool)     { if t.header == nil { return Header{}, false }; return *t.header, true }
func (t *Template) Steps() []Step              { return t.steps }
func (t *Template) EvaluatedFields() []EvaluatedField { return t.evaluated }
func (t *Template) Evaluator() *eval.Evaluator { return t.evaluator }

// Build validates a Descriptor and compiles it into a Template. Every
// condition, size and value expression it contains is compiled eagerly here
// (via the Evaluator's Prepare), so a malformed expression is reported as a
// build-time AnnotationError rather than surfacing mid-parse.
func Build(d Descriptor) (*Template, error) {
	if d.Name == "" {
		return nil, &AnnotationError{Reason: "template has no name"}
	}

	if d.Header != nil {
		if len(d.Header.Start) == 0 {
			return nil, &AnnotationError{Template: d.Name, Reason: "header declared with no start sequence"}
		}
		if d.Header.Charset != "" {
			if _, err := charset.Lookup(d.Header.Charset); err != nil {
				return nil, &AnnotationError{Template: d.Name, Reason: fmt.Sprintf("header charset: %v", err)}
			}
		}
	}

	seen := make(map[string]bool)
	var exprs []string
	for _, s := range d.Steps {
		if err := validateStep(d.Name, s, seen, &exprs); err != nil {
			return nil, err
		}
	}
	for _, ev := range d.Evaluated {
		if ev.Name == "" {
			return nil, &AnnotationError{Template: d.Name, Reason: "evaluated field has no name"}
		}
		if seen[ev.Name] {
			return nil, &AnnotationError{Template: d.Name, Field: ev.Name, Reason: "duplicated key"}
		}
		seen[ev.Name] = true
		exprs = append(exprs, ev.Condition, ev.Expr)
	}

	ev, err := eval.New(d.ContextValues, d.ContextMethods)
	if err != nil {
		return nil, &AnnotationError{Template: d.Name, Reason: err.Error()}
	}
	for _, e := range exprs {
		if err := ev.Prepare(e); err != nil {
			return nil, &AnnotationError{Template: d.Name, Reason: err.Error()}
		}
	}

	return &Template{
		name:      d.Name,
		header:    d.Header,
		steps:     d.Steps,
		evaluated: d.Evaluated,
		evaluator: ev,
	}, nil
}

func validateStep(tmplName string, s Step, seen map[string]bool, exprs *[]string) error {
	switch st := s.(type) {
	case *SkipStep:
		*exprs = append(*exprs, st.Condition)
		if b, ok := st.Mode.(SkipBits); ok {
			*exprs = append(*exprs, b.SizeExpr)
		}
	case *BindStep:
		if st.FieldName == "" {
			return &AnnotationError{Template: tmplName, Reason: "bind step has no field name"}
		}
		if seen[st.FieldName] {
			return &AnnotationError{Template: tmplName, Field: st.FieldName, Reason: "duplicated key"}
		}
		seen[st.FieldName] = true
		*exprs = append(*exprs, st.Condition)
		if st.PostProcess != nil {
			*exprs = append(*exprs, st.PostProcess.Expr)
		}
		if st.Converters != nil {
			for _, alt := range st.Converters.Alternatives {
				*exprs = append(*exprs, alt.Condition)
			}
		}
		if err := validateBinding(tmplName, st.FieldName, st.Binding, exprs); err != nil {
			return err
		}
	case *ChecksumStep:
		if st.FieldName == "" {
			return &AnnotationError{Template: tmplName, Reason: "checksum step has no field name"}
		}
		if seen[st.FieldName] {
			return &AnnotationError{Template: tmplName, Field: st.FieldName, Reason: "duplicated key"}
		}
		seen[st.FieldName] = true
	default:
		return &AnnotationError{Template: tmplName, Reason: "unknown step type"}
	}
	return nil
}

func validateBinding(tmplName, field string, b FieldBinding, exprs *[]string) error {
	switch v := b.(type) {
	case FixedStringBinding:
		if _, err := charset.Lookup(v.Charset); err != nil {
			return &AnnotationError{Template: tmplName, Field: field, Reason: err.Error()}
		}
		*exprs = append(*exprs, v.SizeExpr)
	case TerminatedStringBinding:
		if _, err := charset.Lookup(v.Charset); err != nil {
			return &AnnotationError{Template: tmplName, Field: field, Reason: err.Error()}
		}
	case BitsBinding:
		*exprs = append(*exprs, v.SizeExpr)
	case BitSetBinding:
		*exprs = append(*exprs, v.SizeExpr)
	case ObjectBinding:
		if v.Choices != nil {
			if len(v.Choices.Alternatives) == 0 && v.Choices.DefaultType == "" {
				return &AnnotationError{Template: tmplName, Field: field, Reason: "empty required choice set"}
			}
			for _, alt := range v.Choices.Alternatives {
				*exprs = append(*exprs, alt.Condition)
			}
		} else if v.TypeName == "" {
			return &AnnotationError{Template: tmplName, Field: field, Reason: "object binding names no type and has no choice set"}
		}
	case ArrayPrimitiveBinding:
		*exprs = append(*exprs, v.SizeExpr)
		if err := validateBinding(tmplName, field, v.Element, exprs); err != nil {
			return err
		}
	case ArrayObjectBinding:
		*exprs = append(*exprs, v.SizeExpr)
		if err := validateBinding(tmplName, field, v.Element, exprs); err != nil {
			return err
		}
	case ListBinding:
		if err := validateBinding(tmplName, field, v.Element, exprs); err != nil {
			return err
		}
	case IntegerBinding, FloatBinding:
		// fixed-width, nothing to validate beyond the Go type system.
	default:
		return &AnnotationError{Template: tmplName, Field: field, Reason: "unsupported field binding type"}
	}
	return nil
}
