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

package boxon

import (
	"sync/atomic"

	"github.com/boxoncodec/boxon/internal/dbg"
	"github.com/boxoncodec/boxon/internal/driver"
	"github.com/boxoncodec/boxon/internal/tmpl"
	"github.com/boxoncodec/boxon/internal/trace"
)

// Listener observes the lifecycle of a Template (LoadingTemplate through
// LoadedTemplate or CannotLoad) and the per-field events of every Parse
// and Compose call. Every method is advisory and is called synchronously;
// a Listener must never block or influence control flow, and a slow
// Listener slows down every parse.
type Listener interface {
	driver.Listener

	// LoadingTemplate fires before RegisterTemplate installs t.
	LoadingTemplate(name string)
	// LoadedTemplate fires after RegisterTemplate installs t successfully.
	LoadedTemplate(name string)
	// CannotLoad fires when a Parse or Compose call fails outright, before
	// any per-field event for it could occur.
	CannotLoad(name string, err error)
	// AlreadyGenerated fires when RegisterTemplate is called twice for the
	// same name.
	AlreadyGenerated(name string)
}

// nopListener is the zero-value Listener: every hook does nothing.
type nopListener struct{ driver.NopListener }

func (nopListener) LoadingTemplate(string)        {}
func (nopListener) LoadedTemplate(string)         {}
func (nopListener) CannotLoad(string, error)      {}
func (nopListener) AlreadyGenerated(string)       {}

// traceListener is the default non-nop Listener: it writes one trace.Log
// line per event, compiled in only under the debug build tag (internal/trace
// is a no-op package otherwise). Field values are wrapped in dbg.Dict so
// that formatting them costs nothing unless trace.Log actually renders the
// line (it does not, once filtered out by -boxon.filter).
type traceListener struct{}

func (traceListener) DecodingField(template, field string) {
	trace.Log([]any{"%s", template}, "decoding", "%s", field)
}
func (traceListener) DecodedField(template, field string, value any) {
	trace.Log([]any{"%s", template}, "decoded", "%v", dbg.Dict(field, "value", value))
}
func (traceListener) WritingField(template, field string, value any) {
	trace.Log([]any{"%s", template}, "writing", "%v", dbg.Dict(field, "value", value))
}
func (traceListener) WrittenField(template, field string) {
	trace.Log([]any{"%s", template}, "written", "%s", field)
}
func (traceListener) EvaluatingField(template, field, expr string) {
	trace.Log([]any{"%s", template}, "evaluating", "%v", dbg.Dict(field, "expr", expr))
}
func (traceListener) EvaluatedField(template, field string, value any) {
	trace.Log([]any{"%s", template}, "evaluated", "%v", dbg.Dict(field, "value", value))
}

func (traceListener) LoadingTemplate(name string) {
	trace.Log([]any{"%s", name}, "loading", "")
}
func (traceListener) LoadedTemplate(name string) {
	trace.Log([]any{"%s", name}, "loaded", "")
}
func (traceListener) CannotLoad(name string, err error) {
	trace.Log([]any{"%s", name}, "cannot-load", "%v", err)
}
func (traceListener) AlreadyGenerated(name string) {
	trace.Log([]any{"%s", name}, "already-generated", "")
}

var activeListener atomic.Pointer[Listener]

func init() {
	var l Listener
	if trace.Enabled {
		l = traceListener{}
	} else {
		l = nopListener{}
	}
	activeListener.Store(&l)
}

// SetListener installs l as the process-wide Listener for every subsequent
// Parse, Compose and RegisterTemplate call. Passing nil restores the
// default (a trace.Log-backed listener under the debug build tag, silent
// otherwise).
func SetListener(l Listener) {
	if l == nil {
		if trace.Enabled {
			l = traceListener{}
		} else {
			l = nopListener{}
		}
	}
	activeListener.Store(&l)
}

func currentListener() Listener {
	return *activeListener.Load()
}

func listenerLoading(t *tmpl.Template)              { currentListener().LoadingTemplate(t.Name()) }
func listenerLoaded(t *tmpl.Template, _ *Record)     { currentListener().LoadedTemplate(t.Name()) }
func listenerCannotLoad(t *tmpl.Template, err error) { currentListener().CannotLoad(t.Name(), err) }
