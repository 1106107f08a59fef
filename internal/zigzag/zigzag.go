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

// Package zigzag implements zigzag encoding, which maps signed integers to
// unsigned ones so that small-magnitude values (positive or negative) end
// up with a small bit pattern. Boxon exposes it as a built-in converter for
// protocols whose wire values use it directly instead of plain
// two's-complement.
package zigzag

import "unsafe"

// Number is the set of signed integer widths zigzag can operate over.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Encode zigzag-encodes a signed value of any Number width, widened to
// uint64.
func Encode[T Number](v T) uint64 {
	x := int64(v)
	z := (uint64(x) << 1) ^ uint64(x>>63)
	return z & mask(uintptr(unsafe.Sizeof(v))*8)
}

// Decode decodes a zigzag-encoded value carried in T's own bit pattern back
// to a plain signed value of the same width.
//
// Sign extension only works correctly when raw actually carries a value
// zigzag-encoded at T's width; a value encoded at a narrower width and then
// widened must be re-narrowed first.
func Decode[T Number](raw T) T {
	n := uint64(raw) & mask(uintptr(unsafe.Sizeof(raw))*8)
	return T((n >> 1) ^ -(n & 1))
}

// Decode64 decodes a zigzag-encoded value out of a raw 64-bit container,
// narrowing the result to T after decoding.
func Decode64[T Number](raw uint64) T {
	return T((raw >> 1) ^ -(raw & 1))
}

func mask(bits uintptr) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << bits) - 1
}
