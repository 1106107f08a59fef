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

package codec

import (
	"fmt"

	"github.com/boxoncodec/boxon/internal/bitio"
	"github.com/boxoncodec/boxon/internal/tmpl"
)

// Decode reads one field's wire representation from buf according to b,
// returning the decoded Go value. field is the name used for error
// attribution only.
func Decode(buf *bitio.Buffer, field string, b tmpl.FieldBinding, hooks Hooks) (any, error) {
	if c, ok := lookupOverride(b.Kind()); ok {
		return c.Decode(buf, field, b, hooks)
	}
	switch v := b.(type) {
	case tmpl.IntegerBinding:
		return decodeInteger(buf, field, v)
	case tmpl.FloatBinding:
		return decodeFloat(buf, field, v)
	case tmpl.BitsBinding:
		return decodeBits(buf, field, v, hooks)
	case tmpl.FixedStringBinding:
		return decodeFixedString(buf, field, v, hooks)
	case tmpl.TerminatedStringBinding:
		s, err := buf.ReadTextUntil(v.Terminator, v.ConsumeTerm, v.Charset)
		if err != nil {
			return nil, &Error{Field: field, Reason: "terminated string", Err: err}
		}
		return s, nil
	case tmpl.BitSetBinding:
		n, err := hooks.Size(v.SizeExpr)
		if err != nil {
			return nil, &Error{Field: field, Reason: "bitset size", Err: err}
		}
		bs, err := buf.ReadBitSet(n, v.Order)
		if err != nil {
			return nil, &Error{Field: field, Reason: "bitset", Err: err}
		}
		return bs, nil
	case tmpl.ObjectBinding:
		return decodeObject(buf, field, v, hooks)
	case tmpl.ArrayPrimitiveBinding:
		return decodeArray(buf, field, v.Element, v.SizeExpr, hooks)
	case tmpl.ArrayObjectBinding:
		return decodeArray(buf, field, v.Element, v.SizeExpr, hooks)
	case tmpl.ListBinding:
		return decodeList(buf, field, v, hooks)
	default:
		return nil, &Error{Field: field, Reason: fmt.Sprintf("unsupported binding %T", b)}
	}
}

func decodeInteger(buf *bitio.Buffer, field string, v tmpl.IntegerBinding) (any, error) {
	if v.Signed {
		n, err := buf.ReadBitsSigned(v.WidthBits, v.Order)
		if err != nil {
			return nil, &Error{Field: field, Reason: "integer", Err: err}
		}
		return n, nil
	}
	n, err := buf.ReadBits(v.WidthBits, v.Order)
	if err != nil {
		return nil, &Error{Field: field, Reason: "integer", Err: err}
	}
	return n, nil
}

func decodeFloat(buf *bitio.Buffer, field string, v tmpl.FloatBinding) (any, error) {
	switch v.WidthBits {
	case 32:
		f, err := buf.ReadFloat(v.Order)
		if err != nil {
			return nil, &Error{Field: field, Reason: "float32", Err: err}
		}
		return f, nil
	case 64:
		f, err := buf.ReadDouble(v.Order)
		if err != nil {
			return nil, &Error{Field: field, Reason: "float64", Err: err}
		}
		return f, nil
	default:
		return nil, &Error{Field: field, Reason: fmt.Sprintf("unsupported float width %d", v.WidthBits)}
	}
}

func decodeBits(buf *bitio.Buffer, field string, v tmpl.BitsBinding, hooks Hooks) (any, error) {
	n, err := hooks.Size(v.SizeExpr)
	if err != nil {
		return nil, &Error{Field: field, Reason: "bits width", Err: err}
	}
	if v.Signed {
		val, err := buf.ReadBitsSigned(n, v.Order)
		if err != nil {
			return nil, &Error{Field: field, Reason: "bits", Err: err}
		}
		return val, nil
	}
	val, err := buf.ReadBits(n, v.Order)
	if err != nil {
		return nil, &Error{Field: field, Reason: "bits", Err: err}
	}
	return val, nil
}

func decodeFixedString(buf *bitio.Buffer, field string, v tmpl.FixedStringBinding, hooks Hooks) (any, error) {
	n, err := hooks.Size(v.SizeExpr)
	if err != nil {
		return nil, &Error{Field: field, Reason: "string size", Err: err}
	}
	s, err := buf.ReadText(n, v.Charset)
	if err != nil {
		return nil, &Error{Field: field, Reason: "fixed string", Err: err}
	}
	return s, nil
}

func decodeObject(buf *bitio.Buffer, field string, v tmpl.ObjectBinding, hooks Hooks) (any, error) {
	typeName, err := resolveChoice(buf, v.Choices, v.TypeName, hooks)
	if err != nil {
		return nil, &Error{Field: field, Reason: "choice resolution", Err: err}
	}
	rec, err := hooks.DecodeNested(typeName)
	if err != nil {
		return nil, &Error{Field: field, Reason: "nested decode", Err: err}
	}
	return rec, nil
}

// resolveChoice reads an optional prefix and evaluates each Alternative's
// condition in order, returning the first match's type name.
func resolveChoice(buf *bitio.Buffer, cs *tmpl.ChoiceSet, fixedType string, hooks Hooks) (string, error) {
	if cs == nil {
		return fixedType, nil
	}

	var prefix uint64
	if cs.PrefixLengthBits > 0 {
		p, err := buf.ReadBits(cs.PrefixLengthBits, bitio.Big)
		if err != nil {
			return "", err
		}
		prefix = p
	}

	for _, alt := range cs.Alternatives {
		if alt.HasPrefix && alt.PrefixValue != prefix {
			continue
		}
		if alt.Condition != "" {
			ok, err := hooks.Condition(alt.Condition, prefix, cs.PrefixLengthBits > 0)
			if err != nil {
				return "", err
			}
			if !ok {
				continue
			}
		}
		return alt.TypeName, nil
	}
	if cs.DefaultType != "" {
		return cs.DefaultType, nil
	}
	return "", fmt.Errorf("no alternative matched prefix %#x", prefix)
}

func decodeArray(buf *bitio.Buffer, field string, element tmpl.FieldBinding, sizeExpr string, hooks Hooks) (any, error) {
	n, err := hooks.Size(sizeExpr)
	if err != nil {
		return nil, &Error{Field: field, Reason: "array size", Err: err}
	}
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		v, err := Decode(buf, fmt.Sprintf("%s[%d]", field, i), element, hooks)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeList(buf *bitio.Buffer, field string, v tmpl.ListBinding, hooks Hooks) (any, error) {
	var out []any
	for i := 0; ; i++ {
		if v.Terminator != nil {
			b, err := buf.PeekByte()
			if err == nil && b == *v.Terminator {
				if _, err := buf.ReadByte(); err != nil {
					return nil, &Error{Field: field, Reason: "list terminator", Err: err}
				}
				break
			}
			if err != nil {
				break // out of data: terminator-less end of buffer ends the list.
			}
		}
		if i > 0 && v.Separator != nil {
			b, err := buf.ReadByte()
			if err != nil {
				return nil, &Error{Field: field, Reason: "list separator", Err: err}
			}
			if b != *v.Separator {
				return nil, &Error{Field: field, Reason: "list separator mismatch"}
			}
		}
		val, err := Decode(buf, fmt.Sprintf("%s[%d]", field, i), v.Element, hooks)
		if err != nil {
			return nil, err
		}
		out = append(out, val)
		if v.Terminator == nil && buf.Remaining() == 0 {
			break
		}
	}
	return out, nil
}
