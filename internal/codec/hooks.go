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

// Hooks lets the driver supply the pieces a binding's codec needs but that
// codec itself has no business owning: expression evaluation (which needs
// the per-parse eval.Context) and recursion into a nested template (which
// needs the template store). Every field is required except Size and
// Condition, which are only consulted by bindings that actually declare
// expressions.
type Hooks struct {
	// Size evaluates a size expression, returning the number of
	// bits/bytes/elements it names depending on the binding.
	Size func(expr string) (int, error)

	// Condition evaluates a boolean condition expression. prefix/hasPrefix
	// carry the most recently read (or, on encode, about to be written)
	// ChoiceSet prefix value, so the expression can reference it via the
	// reserved "prefix"/"choicePrefix" context variables.
	Condition func(expr string, prefix uint64, hasPrefix bool) (bool, error)

	// DecodeNested decodes a nested message of the named template and
	// returns its record value.
	DecodeNested func(typeName string) (any, error)

	// EncodeNested encodes value as a nested message of the named
	// template.
	EncodeNested func(typeName string, value any) error
}
