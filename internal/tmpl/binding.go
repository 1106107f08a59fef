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

import "github.com/boxoncodec/boxon/internal/bitio"

// FieldBinding is the closed set of wire shapes a Bind step can carry. It is
// a sum type implemented as a sealed interface: every concrete binding lives
// in this file, and isFieldBinding is unexported so no package outside tmpl
// can add a new member.
type FieldBinding interface {
	Kind() Kind
	isFieldBinding()
}

// IntegerBinding reads or writes a fixed-width two's-complement integer of
// 8, 16, 32 or 64 bits.
type IntegerBinding struct {
	WidthBits int
	Signed    bool
	Order     bitio.Order
}

func (IntegerBinding) Kind() Kind    { return KindInteger }
func (IntegerBinding) isFieldBinding() {}

// FloatBinding reads or writes an IEEE-754 binary32 or binary64 value.
type FloatBinding struct {
	WidthBits int // 32 or 64
	Order     bitio.Order
}

func (FloatBinding) Kind() Kind    { return KindFloat }
func (FloatBinding) isFieldBinding() {}

// BitsBinding reads or writes an arbitrary-width (1..64 bit) integer whose
// width is itself a size expression, for sub-byte and non-power-of-two
// fields.
type BitsBinding struct {
	SizeExpr string
	Signed   bool
	Order    bitio.Order
}

func (BitsBinding) Kind() Kind    { return KindBits }
func (BitsBinding) isFieldBinding() {}

// FixedStringBinding reads or writes a charset-decoded string of a known
// byte length.
type FixedStringBinding struct {
	Charset  string
	SizeExpr string
}

func (FixedStringBinding) Kind() Kind    { return KindFixedString }
func (FixedStringBinding) isFieldBinding() {}

// TerminatedStringBinding reads or writes a charset-decoded string that
// continues until a terminator byte.
type TerminatedStringBinding struct {
	Charset     string
	Terminator  byte
	ConsumeTerm bool
}

func (TerminatedStringBinding) Kind() Kind    { return KindTerminatedString }
func (TerminatedStringBinding) isFieldBinding() {}

// BitSetBinding reads or writes a fixed-size run of individually addressable
// bits.
type BitSetBinding struct {
	SizeExpr string
	Order    bitio.Order
}

func (BitSetBinding) Kind() Kind    { return KindBitSet }
func (BitSetBinding) isFieldBinding() {}

// ObjectBinding recurses into a nested Template, resolved by name through
// the template store the driver is given. When Choices is non-nil the
// nested type is polymorphic and resolved per the specification's
// ChoiceSet algorithm instead of being fixed to TypeName.
type ObjectBinding struct {
	TypeName string
	Choices  *ChoiceSet
}

func (ObjectBinding) Kind() Kind    { return KindObject }
func (ObjectBinding) isFieldBinding() {}

// ArrayPrimitiveBinding reads or writes a fixed-length homogeneous run of a
// primitive binding (never another array or object).
type ArrayPrimitiveBinding struct {
	Element  FieldBinding
	SizeExpr string
}

func (ArrayPrimitiveBinding) Kind() Kind    { return KindArrayPrimitive }
func (ArrayPrimitiveBinding) isFieldBinding() {}

// ArrayObjectBinding reads or writes a fixed-length homogeneous run of
// nested objects.
type ArrayObjectBinding struct {
	Element  FieldBinding // must be ObjectBinding
	SizeExpr string
}

func (ArrayObjectBinding) Kind() Kind    { return KindArrayObject }
func (ArrayObjectBinding) isFieldBinding() {}

// ListBinding reads or writes a variable-length homogeneous run that ends at
// a terminator rather than a known count, optionally separated between
// elements.
type ListBinding struct {
	Element    FieldBinding
	Separator  *byte
	Terminator *byte
}

func (ListBinding) Kind() Kind    { return KindList }
func (ListBinding) isFieldBinding() {}
