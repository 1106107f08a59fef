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

import (
	"iter"

	"github.com/boxoncodec/boxon/internal/scc"
)

// ReferencedTypeNames returns every nested type name t's bindings can
// recurse into: a non-polymorphic ObjectBinding's TypeName, and every
// Alternative's TypeName (plus DefaultType) of a polymorphic one, at any
// depth of array/list nesting.
func ReferencedTypeNames(t *Template) []string {
	var names []string
	var walk func(b FieldBinding)
	walk = func(b FieldBinding) {
		switch v := b.(type) {
		case ObjectBinding:
			if v.Choices != nil {
				for _, alt := range v.Choices.Alternatives {
					names = append(names, alt.TypeName)
				}
				if v.Choices.DefaultType != "" {
					names = append(names, v.Choices.DefaultType)
				}
			} else {
				names = append(names, v.TypeName)
			}
		case ArrayPrimitiveBinding:
			walk(v.Element)
		case ArrayObjectBinding:
			walk(v.Element)
		case ListBinding:
			walk(v.Element)
		}
	}
	for _, s := range t.Steps() {
		if bs, ok := s.(*BindStep); ok {
			walk(bs.Binding)
		}
	}
	return names
}

// DependencyGraph builds a strongly-connected-component DAG over a set of
// registered templates, where an edge from A to B means A's body can
// recurse into B. Nothing in boxon itself calls it (the describer does
// not); it is available to callers that want to flag self-referential (recursive) structures before they ship a
// protocol definition; boxon's core driver does not require acyclicity, so
// this check is advisory rather than enforced by Build.
func DependencyGraph(root string, templates map[string]*Template) *scc.DAG[string] {
	deps := func(name string) iter.Seq[string] {
		return func(yield func(string) bool) {
			t, ok := templates[name]
			if !ok {
				return
			}
			for _, n := range ReferencedTypeNames(t) {
				if !yield(n) {
					return
				}
			}
		}
	}
	return scc.Sort(root, deps)
}
