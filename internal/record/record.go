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

// Package record implements the decoded/composable message value boxon
// hands back from a parse and accepts for composition: an order-preserving
// map from field name to value, standing in for the class boxon's original
// inspiration would have generated from a schema.
package record

import "github.com/tiendc/go-deepcopy"

// Record is an ordered map of field name to decoded value. Nested messages
// are themselves *Record values; arrays and lists are []any.
type Record struct {
	order  []string
	values map[string]any
}

// New returns an empty Record.
func New() *Record {
	return &Record{values: make(map[string]any)}
}

// FromOrdered builds a Record from a slice of keys (in the order they were
// bound) and the value map they index into. Keys not present in values are
// skipped.
func FromOrdered(order []string, values map[string]any) *Record {
	r := &Record{order: make([]string, 0, len(order)), values: make(map[string]any, len(order))}
	for _, k := range order {
		v, ok := values[k]
		if !ok {
			continue
		}
		r.order = append(r.order, k)
		r.values[k] = v
	}
	return r
}

// Set stores value under key, appending key to the iteration order the
// first time it is used.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.order = append(r.order, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Delete removes key, if present.
func (r *Record) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Keys returns the field names in the order they were first set.
func (r *Record) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of fields in the record.
func (r *Record) Len() int { return len(r.order) }

// Range calls fn for every field in insertion order, stopping early if fn
// returns false.
func (r *Record) Range(fn func(key string, value any) bool) {
	for _, k := range r.order {
		if !fn(k, r.values[k]) {
			return
		}
	}
}

// ShallowMap renders the record as a plain map without recursing into
// nested *Record values, which are kept as-is. Used to seed the driver's
// eval.Context self value, where nested object fields must stay identifiable
// as records for the codec to hand them back to a nested Encode call.
func (r *Record) ShallowMap() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// AsMap renders the record as a plain map, for CEL evaluation and JSON
// serialization; order is not preserved by the returned value.
func (r *Record) AsMap() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		if nested, ok := v.(*Record); ok {
			out[k] = nested.AsMap()
		} else {
			out[k] = v
		}
	}
	return out
}

// Clone returns a deep copy of the record, so a decoded message can be used
// as the starting point (a "prototype") for a new one without the two
// sharing mutable state.
func (r *Record) Clone() (*Record, error) {
	clone := &Record{order: make([]string, len(r.order)), values: make(map[string]any, len(r.values))}
	copy(clone.order, r.order)
	if err := deepcopy.Copy(&clone.values, &r.values); err != nil {
		return nil, err
	}
	return clone, nil
}
