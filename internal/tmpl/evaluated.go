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

// EvaluatedField is computed after every step in the template body has run,
// from the fully-bound record rather than from the wire. It has no width on
// the wire: on decode it is written once per successful parse; on encode it
// is read-only derived data and is skipped.
type EvaluatedField struct {
	Name      string
	Condition string
	Expr      string
}
