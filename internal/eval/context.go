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

package eval

// Reserved context keys, exposed to every expression in addition to
// whatever the user has registered via RegisterContext.
const (
	KeySelf         = "self"
	KeyPrefix       = "prefix"
	KeyChoicePrefix = "choicePrefix"
)

// Context is the per-parse binding set an expression is evaluated against:
// the record under construction (self), the most recent choice prefix, and
// the process-wide user context (methods and named values), which is
// published once before any parse begins and never mutated during a parse.
type Context struct {
	Self   any
	Prefix uint64
	HasPrefix bool
	User   map[string]any
}

// activation renders a Context into the variable bindings cel-go expects.
func (c Context) activation() map[string]any {
	vars := make(map[string]any, len(c.User)+3)
	for k, v := range c.User {
		vars[k] = v
	}
	vars[KeySelf] = c.Self
	if c.HasPrefix {
		vars[KeyPrefix] = c.Prefix
		vars[KeyChoicePrefix] = c.Prefix
	} else {
		vars[KeyPrefix] = int64(0)
		vars[KeyChoicePrefix] = int64(0)
	}
	return vars
}
