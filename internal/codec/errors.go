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

// Package codec implements the wire-level read and write logic for every
// tmpl.Kind: it turns a FieldBinding plus a bit cursor into a decoded Go
// value, and the reverse. It knows nothing about steps, conditions or
// templates as a whole; internal/driver owns that orchestration and calls
// back into codec one binding at a time, supplying Hooks for the bindings
// that recurse into a nested template.
package codec

import "fmt"

// Error reports a failure to decode or encode one field's wire
// representation: a value that does not fit its declared width, an
// unresolved choice, an unsupported binding kind reached at runtime despite
// tmpl.Build's validation, and so on.
type Error struct {
	Field  string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("codec: %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("codec: %s: %s", e.Field, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }
