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

// Listener observes the per-field events of a single Decode or Encode
// call. Every method is advisory: a Listener must never influence control
// flow, and the driver calls each hook synchronously and unconditionally
// regardless of what it does with the notification.
type Listener interface {
	DecodingField(template, field string)
	DecodedField(template, field string, value any)
	WritingField(template, field string, value any)
	WrittenField(template, field string)
	EvaluatingField(template, field, expr string)
	EvaluatedField(template, field string, value any)
}

// NopListener implements Listener with no-op methods, and is the default
// used by Decode/Encode when Options.Listener is nil.
type NopListener struct{}

func (NopListener) DecodingField(string, string)             {}
func (NopListener) DecodedField(string, string, any)          {}
func (NopListener) WritingField(string, string, any)          {}
func (NopListener) WrittenField(string, string)               {}
func (NopListener) EvaluatingField(string, string, string)    {}
func (NopListener) EvaluatedField(string, string, any)        {}

var nop Listener = NopListener{}

func (o Options) listener() Listener {
	if o.Listener != nil {
		return o.Listener
	}
	return nop
}
