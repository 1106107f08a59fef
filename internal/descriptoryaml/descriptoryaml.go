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

// Package descriptoryaml loads a tmpl.Descriptor from YAML, so a message
// layout can be authored as data rather than as a literal Go struct
// expression. It is a thin syntax layer only: every field it reads maps
// directly onto a tmpl package type, and all the real validation still
// happens in tmpl.Build once Load hands it a Descriptor.
package descriptoryaml

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/boxoncodec/boxon/internal/bitio"
	"github.com/boxoncodec/boxon/internal/tmpl"
	"github.com/boxoncodec/boxon/internal/validate"
)

// Load parses a single YAML document into a tmpl.Descriptor.
func Load(data []byte) (tmpl.Descriptor, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return tmpl.Descriptor{}, fmt.Errorf("descriptoryaml: %w", err)
	}
	return doc.toDescriptor()
}

type document struct {
	Name      string        `yaml:"name"`
	Header    *headerDoc    `yaml:"header"`
	Steps     []stepDoc     `yaml:"steps"`
	Evaluated []evaluatedDoc `yaml:"evaluated_fields"`
}

type headerDoc struct {
	Start   []string `yaml:"start"`
	End     string   `yaml:"end"`
	Charset string   `yaml:"charset"`
}

type evaluatedDoc struct {
	Name      string `yaml:"name"`
	Condition string `yaml:"condition"`
	Expr      string `yaml:"expr"`
}

// stepDoc is the union of every step shape; Type selects which fields are
// meaningful, the way a tagged YAML map would in a more elaborate schema.
// Kept flat deliberately: nested "oneof"-style YAML is harder to author by
// hand than a handful of ignored fields.
type stepDoc struct {
	Type      string `yaml:"type"` // "skip", "bind", "checksum"
	Condition string `yaml:"condition"`

	// skip
	SkipBits       string `yaml:"skip_bits"`
	SkipUntilByte  *int   `yaml:"skip_until_byte"`
	SkipConsume    bool   `yaml:"skip_consume"`

	// bind
	Field       string       `yaml:"field"`
	Binding     *bindingDoc  `yaml:"binding"`
	PostProcess string       `yaml:"post_process"`
	Validator   string       `yaml:"validator"`

	// checksum
	Algorithm     string `yaml:"algorithm"`
	SkipStartBits int    `yaml:"skip_start_bits"`
	SkipEndBits   int    `yaml:"skip_end_bits"`
	StartValue    uint64 `yaml:"start_value"`
	ByteOrder     string `yaml:"byte_order"`
}

type bindingDoc struct {
	Kind string `yaml:"kind"`

	WidthBits int    `yaml:"width_bits"`
	Signed    bool   `yaml:"signed"`
	Order     string `yaml:"order"`

	SizeExpr string `yaml:"size_expr"`

	Charset     string `yaml:"charset"`
	Terminator  *int   `yaml:"terminator"`
	ConsumeTerm bool   `yaml:"consume_terminator"`

	TypeName string          `yaml:"type_name"`
	Choices  *choiceSetDoc   `yaml:"choices"`

	Element *bindingDoc `yaml:"element"`

	Separator *int `yaml:"separator"`
}

type choiceSetDoc struct {
	PrefixLengthBits int                `yaml:"prefix_length_bits"`
	Default          string             `yaml:"default"`
	Alternatives     []alternativeDoc   `yaml:"alternatives"`
}

type alternativeDoc struct {
	Condition   string `yaml:"condition"`
	PrefixValue *int   `yaml:"prefix_value"`
	TypeName    string `yaml:"type_name"`
}

func (d document) toDescriptor() (tmpl.Descriptor, error) {
	desc := tmpl.Descriptor{Name: d.Name}

	if d.Header != nil {
		hdr := tmpl.Header{Charset: d.Header.Charset}
		for _, s := range d.Header.Start {
			b, err := decodeByteString(s)
			if err != nil {
				return tmpl.Descriptor{}, fmt.Errorf("descriptoryaml: header.start: %w", err)
			}
			hdr.Start = append(hdr.Start, b)
		}
		if d.Header.End != "" {
			b, err := decodeByteString(d.Header.End)
			if err != nil {
				return tmpl.Descriptor{}, fmt.Errorf("descriptoryaml: header.end: %w", err)
			}
			hdr.End = b
		}
		desc.Header = &hdr
	}

	for i, s := range d.Steps {
		step, err := s.toStep()
		if err != nil {
			return tmpl.Descriptor{}, fmt.Errorf("descriptoryaml: steps[%d]: %w", i, err)
		}
		desc.Steps = append(desc.Steps, step)
	}

	for _, e := range d.Evaluated {
		desc.Evaluated = append(desc.Evaluated, tmpl.EvaluatedField{
			Name: e.Name, Condition: e.Condition, Expr: e.Expr,
		})
	}

	return desc, nil
}

func (s stepDoc) toStep() (tmpl.Step, error) {
	switch s.Type {
	case "skip":
		var mode tmpl.SkipMode
		switch {
		case s.SkipBits != "":
			mode = tmpl.SkipBits{SizeExpr: s.SkipBits}
		case s.SkipUntilByte != nil:
			mode = tmpl.SkipUntilTerminator{Terminator: byte(*s.SkipUntilByte), Consume: s.SkipConsume}
		default:
			return nil, fmt.Errorf("skip step needs skip_bits or skip_until_byte")
		}
		return &tmpl.SkipStep{Condition: s.Condition, Mode: mode}, nil

	case "bind":
		if s.Binding == nil {
			return nil, fmt.Errorf("bind step %q: missing binding", s.Field)
		}
		b, err := s.Binding.toBinding()
		if err != nil {
			return nil, fmt.Errorf("bind step %q: %w", s.Field, err)
		}
		step := &tmpl.BindStep{FieldName: s.Field, Condition: s.Condition, Binding: b}
		if s.PostProcess != "" {
			step.PostProcess = &tmpl.Rewrite{Expr: s.PostProcess}
		}
		if s.Validator != "" {
			v, ok := validate.Lookup(s.Validator)
			if !ok {
				return nil, fmt.Errorf("bind step %q: unknown validator %q", s.Field, s.Validator)
			}
			step.Validator = v
		}
		return step, nil

	case "checksum":
		order := bitio.Big
		if s.ByteOrder == "little" {
			order = bitio.Little
		}
		return &tmpl.ChecksumStep{
			FieldName:     s.Field,
			AlgorithmID:   s.Algorithm,
			SkipStartBits: s.SkipStartBits,
			SkipEndBits:   s.SkipEndBits,
			StartValue:    s.StartValue,
			ByteOrder:     order,
		}, nil

	default:
		return nil, fmt.Errorf("unknown step type %q", s.Type)
	}
}

func (b bindingDoc) toBinding() (tmpl.FieldBinding, error) {
	order := bitio.Big
	if b.Order == "little" {
		order = bitio.Little
	}

	switch b.Kind {
	case "integer":
		return tmpl.IntegerBinding{WidthBits: b.WidthBits, Signed: b.Signed, Order: order}, nil
	case "float":
		return tmpl.FloatBinding{WidthBits: b.WidthBits, Order: order}, nil
	case "bits":
		return tmpl.BitsBinding{SizeExpr: b.SizeExpr, Signed: b.Signed, Order: order}, nil
	case "fixed_string":
		return tmpl.FixedStringBinding{Charset: b.Charset, SizeExpr: b.SizeExpr}, nil
	case "terminated_string":
		if b.Terminator == nil {
			return nil, fmt.Errorf("terminated_string binding needs a terminator")
		}
		return tmpl.TerminatedStringBinding{Charset: b.Charset, Terminator: byte(*b.Terminator), ConsumeTerm: b.ConsumeTerm}, nil
	case "bitset":
		return tmpl.BitSetBinding{SizeExpr: b.SizeExpr, Order: order}, nil
	case "object":
		ob := tmpl.ObjectBinding{TypeName: b.TypeName}
		if b.Choices != nil {
			cs, err := b.Choices.toChoiceSet()
			if err != nil {
				return nil, err
			}
			ob.Choices = cs
		}
		return ob, nil
	case "array_primitive":
		if b.Element == nil {
			return nil, fmt.Errorf("array_primitive binding needs an element")
		}
		elem, err := b.Element.toBinding()
		if err != nil {
			return nil, err
		}
		return tmpl.ArrayPrimitiveBinding{Element: elem, SizeExpr: b.SizeExpr}, nil
	case "array_object":
		if b.Element == nil {
			return nil, fmt.Errorf("array_object binding needs an element")
		}
		elem, err := b.Element.toBinding()
		if err != nil {
			return nil, err
		}
		return tmpl.ArrayObjectBinding{Element: elem, SizeExpr: b.SizeExpr}, nil
	case "list":
		if b.Element == nil {
			return nil, fmt.Errorf("list binding needs an element")
		}
		elem, err := b.Element.toBinding()
		if err != nil {
			return nil, err
		}
		lb := tmpl.ListBinding{Element: elem}
		if b.Separator != nil {
			sep := byte(*b.Separator)
			lb.Separator = &sep
		}
		if b.Terminator != nil {
			term := byte(*b.Terminator)
			lb.Terminator = &term
		}
		return lb, nil
	default:
		return nil, fmt.Errorf("unknown binding kind %q", b.Kind)
	}
}

func (c choiceSetDoc) toChoiceSet() (*tmpl.ChoiceSet, error) {
	cs := &tmpl.ChoiceSet{PrefixLengthBits: c.PrefixLengthBits, DefaultType: c.Default}
	for i, a := range c.Alternatives {
		alt := tmpl.Alternative{Condition: a.Condition, TypeName: a.TypeName}
		if a.PrefixValue != nil {
			alt.HasPrefix = true
			alt.PrefixValue = uint64(*a.PrefixValue)
		}
		if alt.TypeName == "" {
			return nil, fmt.Errorf("choices.alternatives[%d]: missing type_name", i)
		}
		cs.Alternatives = append(cs.Alternatives, alt)
	}
	return cs, nil
}

// decodeByteString interprets s as either a sequence of hex bytes
// ("de:ad:be:ef" or "deadbeef") or, failing that, its literal bytes, so a
// YAML author can write ASCII magic numbers directly.
func decodeByteString(s string) ([]byte, error) {
	hexOnly := true
	clean := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ':' || c == ' ' {
			continue
		}
		if !isHexDigit(c) {
			hexOnly = false
			break
		}
		clean = append(clean, c)
	}
	if hexOnly && len(clean) > 0 && len(clean)%2 == 0 {
		out := make([]byte, len(clean)/2)
		for i := range out {
			hi, err := hexVal(clean[2*i])
			if err != nil {
				return nil, err
			}
			lo, err := hexVal(clean[2*i+1])
			if err != nil {
				return nil, err
			}
			out[i] = hi<<4 | lo
		}
		return out, nil
	}
	return []byte(s), nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, fmt.Errorf("invalid hex digit %q", c)
	}
}
