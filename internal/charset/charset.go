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

// Package charset is the whitelist of text encodings a Template's strings
// may declare: ASCII, UTF-8, UTF-16BE, UTF-16LE and ISO-8859-1. Anything
// else fails at Template build time, not at decode, per the design note in
// the specification this package implements.
package charset

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Error is returned for an unrecognized charset name.
type Error string

func (e Error) Error() string { return "charset: " + string(e) }

// ErrUnsupported is returned by Lookup for any name outside the whitelist.
const ErrUnsupported Error = "unsupported charset"

// names maps the canonical spellings accepted in a Template's header or
// string bindings to their golang.org/x/text encoding. ASCII and UTF-8 use
// encoding.Nop-equivalent identity transforms since Go strings are already
// UTF-8 and 7-bit ASCII is a strict subset.
var names = map[string]encoding.Encoding{
	"US-ASCII":   encoding.Nop,
	"ASCII":      encoding.Nop,
	"UTF-8":      encoding.Nop,
	"UTF-16BE":   unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"UTF-16LE":   unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"ISO-8859-1": charmap.ISO8859_1,
}

// Lookup validates that name is a supported charset, returning a
// normalized key for it. Callers should call this once, at Template build
// time, and stash the normalized name rather than calling it again on every
// decode.
func Lookup(name string) (string, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if _, ok := names[key]; !ok {
		return "", ErrUnsupported
	}
	return key, nil
}

// Decode decodes raw bytes under the named charset. name should already
// have been validated by Lookup.
func Decode(name string, raw []byte) (string, error) {
	key, err := Lookup(name)
	if err != nil {
		return "", err
	}
	enc := names[key]
	if enc == encoding.Nop {
		return string(raw), nil
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Encode encodes s under the named charset. name should already have been
// validated by Lookup.
func Encode(name string, s string) ([]byte, error) {
	key, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	enc := names[key]
	if enc == encoding.Nop {
		return []byte(s), nil
	}
	return enc.NewEncoder().Bytes([]byte(s))
}
