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

// Package validate supplies the built-in tmpl.Validator constructors: range
// checks, allowed-value sets and length bounds, the protocol-level
// constraints a BindStep names by annotation rather than by hand-writing a
// ValidatorFunc closure. Every constructor here returns a tmpl.Validator; the
// package never talks to a BitBuffer or a Record directly.
package validate

import (
	"fmt"

	"github.com/boxoncodec/boxon/internal/tmpl"
	"github.com/boxoncodec/boxon/internal/xsync"
)

// Range rejects any value outside [min, max], inclusive. The value must be
// one of the integer kinds a codec decodes into (int64, uint64) or a float64;
// anything else is rejected as a type mismatch rather than silently passed.
func Range(min, max int64) tmpl.Validator {
	return tmpl.ValidatorFunc(func(value any) error {
		v, ok := asInt64(value)
		if !ok {
			return fmt.Errorf("validate: range [%d, %d]: expected an integer value, got %T", min, max, value)
		}
		if v < min || v > max {
			return fmt.Errorf("validate: %d outside range [%d, %d]", v, min, max)
		}
		return nil
	})
}

// OneOf rejects any integer value not equal to one of allowed.
func OneOf(allowed ...int64) tmpl.Validator {
	return tmpl.ValidatorFunc(func(value any) error {
		v, ok := asInt64(value)
		if !ok {
			return fmt.Errorf("validate: one_of %v: expected an integer value, got %T", allowed, value)
		}
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return fmt.Errorf("validate: %d is not one of %v", v, allowed)
	})
}

// OneOfString rejects any string value not equal to one of allowed.
func OneOfString(allowed ...string) tmpl.Validator {
	return tmpl.ValidatorFunc(func(value any) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("validate: one_of %v: expected a string value, got %T", allowed, value)
		}
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return fmt.Errorf("validate: %q is not one of %v", s, allowed)
	})
}

// MaxLength rejects a string or []byte value longer than n.
func MaxLength(n int) tmpl.Validator {
	return tmpl.ValidatorFunc(func(value any) error {
		l, ok := lengthOf(value)
		if !ok {
			return fmt.Errorf("validate: max_length %d: expected a string or []byte, got %T", n, value)
		}
		if l > n {
			return fmt.Errorf("validate: length %d exceeds max_length %d", l, n)
		}
		return nil
	})
}

// MinLength rejects a string or []byte value shorter than n.
func MinLength(n int) tmpl.Validator {
	return tmpl.ValidatorFunc(func(value any) error {
		l, ok := lengthOf(value)
		if !ok {
			return fmt.Errorf("validate: min_length %d: expected a string or []byte, got %T", n, value)
		}
		if l < n {
			return fmt.Errorf("validate: length %d below min_length %d", l, n)
		}
		return nil
	})
}

// NotEmpty rejects a zero-length string or []byte value.
func NotEmpty() tmpl.Validator {
	return MinLength(1)
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
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func lengthOf(v any) (int, bool) {
	switch s := v.(type) {
	case string:
		return len(s), true
	case []byte:
		return len(s), true
	default:
		return 0, false
	}
}

// namedValidators holds every built-in registered under a string id, grown
// at process start only, so a YAML-authored BindStep can name a validator by
// id the same way it names a converter (internal/codec.LookupConverter).
var namedValidators xsync.Map[string, tmpl.Validator]

func init() {
	namedValidators.Store("not_empty", NotEmpty())
}

// Register publishes a named Validator for use from a BindStep's validator
// id. Registering the same id twice is a caller error caught at registration
// time, not silently overwritten.
func Register(id string, v tmpl.Validator) error {
	if _, loaded := namedValidators.LoadOrStore(id, func() tmpl.Validator { return v }); loaded {
		return fmt.Errorf("validate: validator %q already registered", id)
	}
	return nil
}

// Lookup returns the validator registered under id.
func Lookup(id string) (tmpl.Validator, bool) {
	return namedValidators.Load(id)
}
