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

package driver

import "github.com/boxoncodec/boxon/internal/tmpl"

// TemplateStore resolves a type name named by an ObjectBinding or a
// ChoiceSet Alternative to the Template that describes it. The root
// package's process-wide registry is the only production implementation;
// tests may supply a map-backed one.
type TemplateStore interface {
	Lookup(name string) (*tmpl.Template, bool)
}

// MapStore is a trivial TemplateStore backed by a plain map, exported for
// tests and for single-template callers that have no cross-references.
type MapStore map[string]*tmpl.Template

func (m MapStore) Lookup(name string) (*tmpl.Template, bool) {
	t, ok := m[name]
	return t, ok
}
