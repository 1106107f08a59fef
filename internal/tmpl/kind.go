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

// Package tmpl is the compiled, validated intermediate form of a message
// layout described by the specification: an ordered sequence of field
// steps, each carrying the metadata the template parser and codec registry
// need to decode or encode it. Templates are built once, by Build, and are
// immutable and safe to share read-only across concurrent parses from that
// point on.
package tmpl

// Kind identifies the wire-level shape of a field binding, and is the key
// the codec registry dispatches on.
type Kind uint8

const (
	KindInteger Kind = iota
	KindFloat
	KindBits
	KindFixedString
	KindTerminatedString
	KindBitSet
	KindObject
	KindArrayPrimitive
	KindArrayObject
	KindList
	KindChecksum
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBits:
		return "bits"
	case KindFixedString:
		return "fixed-string"
	case KindTerminatedString:
		return "terminated-string"
	case KindBitSet:
		return "bitset"
	case KindObject:
		return "object"
	case KindArrayPrimitive:
		return "array-primitive"
	case KindArrayObject:
		return "array-object"
	case KindList:
		return "list"
	case KindChecksum:
		return "checksum"
	default:
		return "unknown"
	}
}
