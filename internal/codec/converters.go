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

	"github.com/boxoncodec/boxon/internal/tmpl"
	"github.com/boxoncodec/boxon/internal/xsync"
	"github.com/boxoncodec/boxon/internal/zigzag"
)

// namedConverters holds every converter registered under a string id,
// starting with boxon's built-ins, and grown at process start by
// RegisterConverter. It is read-only once the first Template is built, the same
// publish-before-use discipline as the root package's other registries.
var namedConverters xsync.Map[string, tmpl.Converter]

func init() {
	namedConverters.Store("zigzag32", tmpl.ConverterFunc{
		DecodeFn: func(wire any) (any, error) {
			raw, ok := asInt64(wire)
			if !ok {
				return nil, fmt.Errorf("zigzag32: expected integer wire value, got %T", wire)
			}
			return int64(zigzag.Decode64[int32](uint64(raw))), nil
		},
		EncodeFn: func(record any) (any, error) {
			v, ok := asInt64(record)
			if !ok {
				return nil, fmt.Errorf("zigzag32: expected integer record value, got %T", record)
			}
			return int64(zigzag.Encode(int32(v))), nil
		},
	})
	namedConverters.Store("zigzag64", tmpl.ConverterFunc{
		DecodeFn: func(wire any) (any, error) {
			raw, ok := asInt64(wire)
			if !ok {
				return nil, fmt.Errorf("zigzag64: expected integer wire value, got %T", wire)
			}
			return int64(zigzag.Decode64[int64](uint64(raw))), nil
		},
		EncodeFn: func(record any) (any, error) {
			v, ok := asInt64(record)
			if !ok {
				return nil, fmt.Errorf("zigzag64: expected integer record value, got %T", record)
			}
			return int64(zigzag.Encode(v)), nil
		},
	})
}

// RegisterConverter publishes a named Converter for use from a BindStep's
// ConverterChoices. Registering the same id twice is a caller error caught
// at registration time, not silently overwritten.
func RegisterConverter(id string, c tmpl.Converter) error {
	if _, loaded := namedConverters.LoadOrStore(id, func() tmpl.Converter { return c }); loaded {
		return fmt.Errorf("codec: converter %q already registered", id)
	}
	return nil
}

// LookupConverter returns the converter registered under id.
func LookupConverter(id string) (tmpl.Converter, bool) {
	return namedConverters.Load(id)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case uint32:
		return int64(n), true
	default:
		return 0, false
	}
}
