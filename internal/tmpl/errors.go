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

import "fmt"

// AnnotationError reports a malformed Template caught at Build time: a bad
// charset name, a duplicated field name, an empty required choice set, and
// so on. It always carries the template and, where known, the field it
// applies to, so a caller can point a protocol author at the exact spot.
type AnnotationError struct {
	Template string
	Field    string
	Reason   string
}

func (e *AnnotationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("tmpl: %s: %s", e.Template, e.Reason)
	}
	return fmt.Sprintf("tmpl: %s.%s: %s", e.Template, e.Field, e.Reason)
}
