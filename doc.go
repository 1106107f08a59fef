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

// Package boxon is a declarative binary-message codec: instead of
// generating code from a schema, it builds a [tmpl.Template] describing a
// message's layout — field by field, bit by bit — and interprets that
// Template directly against a byte stream in either direction.
//
// A Template is produced by [tmpl.Build] from a [tmpl.Descriptor]
// (hand-built in Go, or loaded from YAML via internal/descriptoryaml) and
// registered once with [RegisterTemplate]:
//
//	t, err := tmpl.Build(descriptor)
//	if err != nil {
//		// handle malformed template
//	}
//	if err := boxon.RegisterTemplate(t); err != nil {
//		// handle duplicate name
//	}
//
// [Parse] reads one message off the wire:
//
//	rec, consumed, err := boxon.Parse(t, data)
//
// [Compose] writes a [Record] back out:
//
//	data, err := boxon.Compose(t, rec)
//
// Templates may reference one another through ObjectBinding and ChoiceSet
// fields, and their expressions may read the message under construction
// (self), the most recently read choice prefix (prefix / choicePrefix),
// and a process-wide context of named values and methods published
// through [RegisterContext] and [RegisterContextMethod]. Decoding and
// encoding resolve polymorphic fields through the same condition-based
// logic, so a Record built by hand and one produced by Parse compose
// identically.
//
// [Describe] renders a built Template as a plain map, for documentation,
// debugging, or schema tooling that would rather not depend on boxon's
// internal types. [FindNextMessage] scans a byte stream for the next
// offset at which the header of one of the Templates passed to it matches,
// for resynchronizing after a corrupt or truncated message; Templates
// registered through [RegisterTemplate] are not consulted.
//
// [SetListener] installs hooks observing every parse and compose call; the
// default listener logs through internal/trace when built with the debug
// build tag and does nothing otherwise.
package boxon
