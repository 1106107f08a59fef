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

// Step is the closed set of instructions a Template's body is compiled
// into: skip some bits, bind a field, or compute and place a checksum. Like
// FieldBinding, it is a sealed interface; isStep is unexported so the set
// cannot grow outside this package.
type Step interface {
	isStep()
}

// SkipMode is the closed set of ways a SkipStep can decide how much to skip.
type SkipMode interface {
	isSkipMode()
}

// SkipBits skips a number of bits computed from a size expression.
type SkipBits struct {
	SizeExpr string
}

func (SkipBits) isSkipMode() {}

// SkipUntilTerminator skips bytes up to (and optionally consuming) the next
// occurrence of Terminator. The stream must be byte-aligned when this mode
// runs.
type SkipUntilTerminator struct {
	Terminator byte
	Consume    bool
}

func (SkipUntilTerminator) isSkipMode() {}

// SkipStep discards bits without binding them to the record, typically
// padding or a reserved region.
type SkipStep struct {
	Condition string
	Mode      SkipMode
}

func (*SkipStep) isStep() {}

// Rewrite is a post-process expression run during encode, after a BindStep's
// source value has been taken from the record but before it reaches the
// converter/codec, overwriting the field with the expression's result.
// Decode never runs it: the value on the wire is what decoding produces.
type Rewrite struct {
	Expr string
}

// BindStep reads (or writes) one field and stores (or sources) it under
// FieldName on the record.
type BindStep struct {
	FieldName   string
	Condition   string
	Binding     FieldBinding
	Converters  *ConverterChoices
	Validator   Validator
	PostProcess *Rewrite
}

func (*BindStep) isStep() {}

// ChecksumStep computes a checksum over a window of already-read (or
// already-written) bytes and verifies it against (or patches it into) the
// wire representation.
type ChecksumStep struct {
	FieldName   string
	AlgorithmID string
	SkipStartBits int
	SkipEndBits   int
	StartValue    uint64
	ByteOrder     bitio.Order
}

func (*ChecksumStep) isStep() {}
