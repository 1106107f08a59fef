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

// Package eval evaluates the condition, size and value expressions that
// appear throughout a Template, against a per-parse Context. It is backed
// by github.com/google/cel-go: CEL's property-path-plus-operators-plus-call
// grammar is exactly the "simple expression" language the specification
// calls for, and it gives boxon compiled, cacheable programs for free.
package eval

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// Error is returned when an expression fails to compile or evaluate. It
// never aborts a parse on its own; the driver decides whether to propagate
// it, per the specification's determinism contract.
type Error struct {
	Expr string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("eval: %q: %v", e.Expr, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// ErrInvalidSize is returned by EvaluateSize when the expression evaluates
// to a negative or non-numeric result.
type ErrInvalidSize struct{ Expr string }

func (e *ErrInvalidSize) Error() string {
	return fmt.Sprintf("eval: %q did not evaluate to a non-negative integer", e.Expr)
}

// Evaluator compiles and caches CEL programs for the expressions found in
// one Template. It is built once, at Template build time, and is safe to
// share across concurrent parses afterward: Build compiles every expression
// of its Template eagerly through Prepare, and an expression not yet seen
// is compiled on first use by an Evaluate* call, under the cache's lock.
type Evaluator struct {
	env *cel.Env

	mu       sync.RWMutex
	programs map[string]cel.Program
}

// Method is a user-registered function available to every expression by
// name. Declared parameter types are drawn from the call site, matching the
// specification's "invoked with its declared parameter types drawn from the
// current scope."
type Method struct {
	Name string
	Argc int
	Fn   func(args ...any) (any, error)
}

// New builds an Evaluator. userValues are constant named values (registered
// via RegisterContext); methods are user functions (registered via
// RegisterContextMethod). Both are process-wide and must be finalized
// before New is called, per the specification's "published before any parse
// begins."
func New(userValues map[string]any, methods []Method) (*Evaluator, error) {
	opts := []cel.EnvOption{
		cel.Variable(KeySelf, cel.DynType),
		cel.Variable(KeyPrefix, cel.IntType),
		cel.Variable(KeyChoicePrefix, cel.IntType),
	}
	for name := range userValues {
		opts = append(opts, cel.Variable(name, cel.DynType))
	}
	for _, m := range methods {
		opts = append(opts, methodOption(m))
	}

	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("eval: building environment: %w", err)
	}
	return &Evaluator{env: env, programs: make(map[string]cel.Program)}, nil
}

func methodOption(m Method) cel.EnvOption {
	argTypes := make([]*cel.Type, m.Argc)
	for i := range argTypes {
		argTypes[i] = cel.DynType
	}
	overloadID := m.Name + "_overload"
	return cel.Function(m.Name,
		cel.Overload(overloadID, argTypes, cel.DynType,
			cel.FunctionBinding(func(args ...ref.Val) ref.Val {
				native := make([]any, len(args))
				for i, a := range args {
					native[i] = a.Value()
				}
				out, err := m.Fn(native...)
				if err != nil {
					return types.NewErr("%s: %v", m.Name, err)
				}
				return types.DefaultTypeAdapter.NativeToValue(out)
			}),
		),
	)
}

// Prepare compiles expr and caches the resulting program, so that a later
// Evaluate* call for the same string is a pure interpretation step with no
// compilation cost. An empty expression is never compiled; it is handled
// specially by EvaluateBoolean.
func (e *Evaluator) Prepare(expr string) error {
	if expr == "" {
		return nil
	}
	e.mu.RLock()
	_, ok := e.programs[expr]
	e.mu.RUnlock()
	if ok {
		return nil
	}

	ast, iss := e.env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return &Error{Expr: expr, Err: iss.Err()}
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return &Error{Expr: expr, Err: err}
	}

	e.mu.Lock()
	e.programs[expr] = prg
	e.mu.Unlock()
	return nil
}

func (e *Evaluator) eval(expr string, ctx Context) (ref.Val, error) {
	if err := e.Prepare(expr); err != nil {
		return nil, err
	}
	e.mu.RLock()
	prg := e.programs[expr]
	e.mu.RUnlock()

	out, _, err := prg.Eval(ctx.activation())
	if err != nil {
		return nil, &Error{Expr: expr, Err: err}
	}
	return out, nil
}

// EvaluateBoolean evaluates expr as a condition. An empty expression is
// always true, per the specification's "always process" rule.
func (e *Evaluator) EvaluateBoolean(expr string, ctx Context) (bool, error) {
	if expr == "" {
		return true, nil
	}
	out, err := e.eval(expr, ctx)
	if err != nil {
		return false, err
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, &Error{Expr: expr, Err: fmt.Errorf("expected bool, got %T", out.Value())}
	}
	return b, nil
}

// EvaluateSize evaluates expr as a size expression, which must yield a
// non-negative integer.
func (e *Evaluator) EvaluateSize(expr string, ctx Context) (int, error) {
	out, err := e.eval(expr, ctx)
	if err != nil {
		return 0, err
	}
	n, ok := asInt(out.Value())
	if !ok || n < 0 {
		return 0, &ErrInvalidSize{Expr: expr}
	}
	return n, nil
}

// EvaluateValue evaluates expr and returns its raw dynamic result; callers
// coerce it to the field's declared type.
func (e *Evaluator) EvaluateValue(expr string, ctx Context) (any, error) {
	out, err := e.eval(expr, ctx)
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case int:
		return n, true
	case uint64:
		return int(n), true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
