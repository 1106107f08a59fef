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
	"fmt"
	"reflect"

	"github.com/boxoncodec/boxon/internal/codec"
	"github.com/boxoncodec/boxon/internal/eval"
	"github.com/boxoncodec/boxon/internal/tmpl"
	"github.com/boxoncodec/boxon/internal/xsync"
)

// registry is the process-wide store backing RegisterTemplate,
// RegisterContext and RegisterContextMethod. It also implements
// driver.TemplateStore, so it is what every Parse and Compose call
// resolves ObjectBinding and ChoiceSet type names against.
type registry struct {
	templates      xsync.Map[string, *tmpl.Template]
	contextValues  xsync.Map[string, any]
	contextMethods xsync.Map[string, eval.Method]
}

var globalRegistry = &registry{}

// Lookup implements driver.TemplateStore.
func (r *registry) Lookup(name string) (*tmpl.Template, bool) {
	return r.templates.Load(name)
}

func (r *registry) contextSnapshot() map[string]any {
	out := make(map[string]any)
	for k, v := range r.contextValues.All() {
		out[k] = v
	}
	return out
}

// MethodSnapshot returns every method registered so far, for loaders
// (such as internal/descriptoryaml) that need to pass the full process-wide
// context into tmpl.Build's Descriptor.ContextMethods.
func MethodSnapshot() []eval.Method {
	var out []eval.Method
	for _, m := range globalRegistry.contextMethods.All() {
		out = append(out, m)
	}
	return out
}

// ContextSnapshot returns every named value registered so far, for loaders
// that need to pass the full process-wide context into tmpl.Build's
// Descriptor.ContextValues.
func ContextSnapshot() map[string]any {
	return globalRegistry.contextSnapshot()
}

// RegisterTemplate installs t under its own name, making it resolvable
// from any other Template's ObjectBinding or ChoiceSet references, and
// from Parse/Compose/Describe callers that look it up by name. It returns
// a *TemplateError if a Template with the same name is already registered.
func RegisterTemplate(t *tmpl.Template) error {
	listenerLoading(t)
	_, loaded := globalRegistry.templates.LoadOrStore(t.Name(), func() *tmpl.Template { return t })
	if loaded {
		currentListener().AlreadyGenerated(t.Name())
		return &TemplateError{Name: t.Name(), Reason: "a template with this name is already registered"}
	}
	currentListener().LoadedTemplate(t.Name())
	return nil
}

// LookupTemplate returns the Template registered under name, if any.
func LookupTemplate(name string) (*tmpl.Template, bool) {
	return globalRegistry.Lookup(name)
}

// RegisterCodec installs c as the wire-level handler for every FieldBinding
// of the given Kind, in place of boxon's builtin handling of it.
func RegisterCodec(kind codec.Kind, c codec.Codec) error {
	return codec.RegisterCodec(kind, c)
}

// RegisterContext publishes a named value that every Template's
// expressions can read going forward. Per the evaluation model, context
// values are meant to be finalized before any Template referencing them is
// built; registering one after templates are already in use does not
// retroactively reach them, since each Template's Evaluator captures its
// own copy of the context at tmpl.Build time.
func RegisterContext(key string, value any) error {
	_, loaded := globalRegistry.contextValues.LoadOrStore(key, func() any { return value })
	if loaded {
		return &TemplateError{Name: key, Reason: "a context value with this key is already registered"}
	}
	return nil
}

// RegisterContextMethod publishes a Go function under name, callable from
// any expression with the declared parameter types drawn from the call
// site. fn must be a function value; it may return a single value, a
// single error, or a (value, error) pair.
func RegisterContextMethod(name string, fn any) error {
	method, err := adaptMethod(name, fn)
	if err != nil {
		return err
	}
	_, loaded := globalRegistry.contextMethods.LoadOrStore(name, func() eval.Method { return method })
	if loaded {
		return &TemplateError{Name: name, Reason: "a context method with this name is already registered"}
	}
	return nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func adaptMethod(name string, fn any) (eval.Method, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return eval.Method{}, &TemplateError{Name: name, Reason: fmt.Sprintf("RegisterContextMethod requires a function, got %T", fn)}
	}
	t := v.Type()
	if t.IsVariadic() {
		return eval.Method{}, &TemplateError{Name: name, Reason: "RegisterContextMethod does not support variadic functions"}
	}
	argc := t.NumIn()

	wrapped := func(args ...any) (any, error) {
		if len(args) != argc {
			return nil, fmt.Errorf("method %q: expected %d arguments, got %d", name, argc, len(args))
		}
		in := make([]reflect.Value, argc)
		for i := 0; i < argc; i++ {
			want := t.In(i)
			arg := reflect.ValueOf(args[i])
			if !arg.IsValid() {
				in[i] = reflect.Zero(want)
				continue
			}
			if !arg.Type().AssignableTo(want) {
				if !arg.Type().ConvertibleTo(want) {
					return nil, fmt.Errorf("method %q: argument %d: cannot use %s as %s", name, i, arg.Type(), want)
				}
				arg = arg.Convert(want)
			}
			in[i] = arg
		}

		out := v.Call(in)
		switch len(out) {
		case 0:
			return nil, nil
		case 1:
			if t.Out(0) == errType {
				if out[0].IsNil() {
					return nil, nil
				}
				return nil, out[0].Interface().(error)
			}
			return out[0].Interface(), nil
		default:
			var retErr error
			if last := out[len(out)-1]; t.Out(len(out)-1) == errType && !last.IsNil() {
				retErr = last.Interface().(error)
			}
			return out[0].Interface(), retErr
		}
	}

	return eval.Method{Name: name, Argc: argc, Fn: wrapped}, nil
}
