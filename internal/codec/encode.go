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

// Encode writes value's wire representation to buf according to b.
func Encode(buf *bitio.Buffer, field string, b tmpl.FieldBinding, value any, hooks Hooks) error {
	if c, ok := lookupOverride(b.Kind()); ok {
		return c.Encode(buf, field, b, value, hooks)
	}
	switch v := b.(type) {
	case tmpl.IntegerBinding:
		return encodeInteger(buf, field, v, value)
	case tmpl.FloatBinding:
		return encodeFloat(buf, field, v, value)
	case tmpl.BitsBinding:
		return encodeBits(buf, field, v, value, hooks)
	case tmpl.FixedStringBinding:
		n, err := hooks.Size(v.SizeExpr)
		if err != nil {
			return &Error{Field: field, Reason: "string size", Err: err}
		}
		s, ok := value.(string)
		if !ok {
			return &Error{Field: field, Reason: fmt.Sprintf("expected string, got %T", value)}
		}
		if err := buf.WriteText(s, v.Charset); err != nil {
			return &Error{Field: field, Reason: "fixed string", Err: err}
		}
		_ = n // the declared size is informational; WriteText writes exactly len(s) bytes.
		return nil
	case tmpl.TerminatedStringBinding:
		s, ok := value.(string)
		if !ok {
			return &Error{Field: field, Reason: fmt.Sprintf("expected string, got %T", value)}
		}
		if err := buf.WriteText(s, v.Charset); err != nil {
			return &Error{Field: field, Reason: "terminated string", Err: err}
		}
		if err := buf.WriteTerminator(v.Terminator); err != nil {
			return &Error{Field: field, Reason: "terminated string terminator", Err: err}
		}
		return nil
	case tmpl.BitSetBinding:
		bs, ok := value.(bitio.BitSet)
		if !ok {
			return &Error{Field: field, Reason: fmt.Sprintf("expected BitSet, got %T", value)}
		}
		if err := buf.WriteBitSet(bs); err != nil {
			return &Error{Field: field, Reason: "bitset", Err: err}
		}
		return nil
	case tmpl.ObjectBinding:
		return encodeObject(buf, field, v, value, hooks)
	case tmpl.ArrayPrimitiveBinding:
		return encodeArray(buf, field, v.Element, value, hooks)
	case tmpl.ArrayObjectBinding:
		return encodeArray(buf, field, v.Element, value, hooks)
	case tmpl.ListBinding:
		return encodeList(buf, field, v, value, hooks)
	default:
		return &Error{Field: field, Reason: fmt.Sprintf("unsupported binding %T", b)}
	}
}

func encodeInteger(buf *bitio.Buffer, field string, v tmpl.IntegerBinding, value any) error {
	if v.Signed {
		n, ok := asSigned(value)
		if !ok {
			return &Error{Field: field, Reason: fmt.Sprintf("expected integer, got %T", value)}
		}
		if err := buf.WriteBitsSigned(v.WidthBits, n, v.Order); err != nil {
			return &Error{Field: field, Reason: "integer", Err: err}
		}
		return nil
	}
	n, ok := asUnsigned(value)
	if !ok {
		return &Error{Field: field, Reason: fmt.Sprintf("expected integer, got %T", value)}
	}
	if err := buf.WriteBits(v.WidthBits, n, v.Order); err != nil {
		return &Error{Field: field, Reason: "integer", Err: err}
	}
	return nil
}

func encodeFloat(buf *bitio.Buffer, field string, v tmpl.FloatBinding, value any) error {
	f, ok := asFloat(value)
	if !ok {
		return &Error{Field: field, Reason: fmt.Sprintf("expected float, got %T", value)}
	}
	switch v.WidthBits {
	case 32:
		if err := buf.WriteFloat(float32(f), v.Order); err != nil {
			return &Error{Field: field, Reason: "float32", Err: err}
		}
	case 64:
		if err := buf.WriteDouble(f, v.Order); err != nil {
			return &Error{Field: field, Reason: "float64", Err: err}
		}
	default:
		return &Error{Field: field, Reason: fmt.Sprintf("unsupported float width %d", v.WidthBits)}
	}
	return nil
}

func encodeBits(buf *bitio.Buffer, field string, v tmpl.BitsBinding, value any, hooks Hooks) error {
	n, err := hooks.Size(v.SizeExpr)
	if err != nil {
		return &Error{Field: field, Reason: "bits width", Err: err}
	}
	if v.Signed {
		s, ok := asSigned(value)
		if !ok {
			return &Error{Field: field, Reason: fmt.Sprintf("expected integer, got %T", value)}
		}
		if err := buf.WriteBitsSigned(n, s, v.Order); err != nil {
			return &Error{Field: field, Reason: "bits", Err: err}
		}
		return nil
	}
	u, ok := asUnsigned(value)
	if !ok {
		return &Error{Field: field, Reason: fmt.Sprintf("expected integer, got %T", value)}
	}
	if err := buf.WriteBits(n, u, v.Order); err != nil {
		return &Error{Field: field, Reason: "bits", Err: err}
	}
	return nil
}

func encodeObject(buf *bitio.Buffer, field string, v tmpl.ObjectBinding, value any, hooks Hooks) error {
	typeName, err := resolveChoiceEncode(buf, v.Choices, v.TypeName, hooks)
	if err != nil {
		return &Error{Field: field, Reason: "choice resolution", Err: err}
	}
	if err := hooks.EncodeNested(typeName, value); err != nil {
		return &Error{Field: field, Reason: "nested encode", Err: err}
	}
	return nil
}

// resolveChoiceEncode mirrors resolveChoice, additionally writing the
// matched Alternative's prefix (if any) before the nested value is encoded.
func resolveChoiceEncode(buf *bitio.Buffer, cs *tmpl.ChoiceSet, fixedType string, hooks Hooks) (string, error) {
	if cs == nil {
		return fixedType, nil
	}

	for _, alt := range cs.Alternatives {
		if alt.Condition != "" {
			ok, err := hooks.Condition(alt.Condition, alt.PrefixValue, cs.PrefixLengthBits > 0)
			if err != nil {
				return "", err
			}
			if !ok {
				continue
			}
		}
		if cs.PrefixLengthBits > 0 {
			if err := buf.WriteBits(cs.PrefixLengthBits, alt.PrefixValue, bitio.Big); err != nil {
				return "", err
			}
		}
		return alt.TypeName, nil
	}
	if cs.DefaultType != "" {
		return cs.DefaultType, nil
	}
	return "", fmt.Errorf("no alternative matched")
}

func encodeArray(buf *bitio.Buffer, field string, element tmpl.FieldBinding, value any, hooks Hooks) error {
	items, ok := value.([]any)
	if !ok {
		return &Error{Field: field, Reason: fmt.Sprintf("expected []any, got %T", value)}
	}
	for i, item := range items {
		if err := Encode(buf, fmt.Sprintf("%s[%d]", field, i), element, item, hooks); err != nil {
			return err
		}
	}
	return nil
}

func encodeList(buf *bitio.Buffer, field string, v tmpl.ListBinding, value any, hooks Hooks) error {
	items, ok := value.([]any)
	if !ok {
		return &Error{Field: field, Reason: fmt.Sprintf("expected []any, got %T", value)}
	}
	for i, item := range items {
		if i > 0 && v.Separator != nil {
			if err := buf.WriteByte(*v.Separator); err != nil {
				return &Error{Field: field, Reason: "list separator", Err: err}
			}
		}
		if err := Encode(buf, fmt.Sprintf("%s[%d]", field, i), v.Element, item, hooks); err != nil {
			return err
		}
	}
	if v.Terminator != nil {
		if err := buf.WriteByte(*v.Terminator); err != nil {
			return &Error{Field: field, Reason: "list terminator", Err: err}
		}
	}
	return nil
}

func asUnsigned(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case uint32:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case int:
		return uint64(n), true
	case int64:
		return uint64(n), true
	default:
		return 0, false
	}
}

func asSigned(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case int:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
