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

import (
	"fmt"

	"github.com/boxoncodec/boxon/internal/bitio"
	"github.com/boxoncodec/boxon/internal/checksum"
	"github.com/boxoncodec/boxon/internal/codec"
	"github.com/boxoncodec/boxon/internal/eval"
	"github.com/boxoncodec/boxon/internal/record"
	"github.com/boxoncodec/boxon/internal/tmpl"
)

// pendingChecksum is a reserved-but-not-yet-computed checksum field: the
// placeholder bytes have been written (as zeros), and the window they cover
// is only known once encoding finishes, since SkipEndBits is measured from
// whichever cursor position the message ends up at, which may be after
// fields the checksum step itself precedes.
type pendingChecksum struct {
	step        *tmpl.ChecksumStep
	byteOffset  int
	windowStart int
}

// Encode writes rec as a message of Template t into buf.
func Encode(t *tmpl.Template, store TemplateStore, buf *bitio.Buffer, rec *record.Record, userValues map[string]any) error {
	return EncodeWithOptions(t, store, buf, rec, userValues, Options{})
}

// EncodeWithOptions is Encode with caller-supplied Options.
func EncodeWithOptions(t *tmpl.Template, store TemplateStore, buf *bitio.Buffer, rec *record.Record, userValues map[string]any, opts Options) error {
	return encodeAt(t, store, buf, rec, userValues, opts, 0)
}

func encodeAt(t *tmpl.Template, store TemplateStore, buf *bitio.Buffer, rec *record.Record, userValues map[string]any, opts Options, depth int) error {
	if depth > opts.maxDepth() {
		return &EncodeError{Template: t.Name(), Field: "<object>", Err: fmt.Errorf("max nesting depth %d exceeded", opts.maxDepth())}
	}
	start := buf.Position()

	if hdr, ok := t.Header(); ok && len(hdr.Start) > 0 {
		if err := buf.WriteBytes(hdr.Start[0]); err != nil {
			return &EncodeError{Template: t.Name(), Field: "<header>", Err: err}
		}
	}

	self := rec.ShallowMap()
	ev := t.Evaluator()
	ctx := func() eval.Context { return eval.Context{Self: self, User: userValues} }

	var pending []pendingChecksum

	for _, step := range t.Steps() {
		switch s := step.(type) {
		case *tmpl.SkipStep:
			ok, err := ev.EvaluateBoolean(s.Condition, ctx())
			if err != nil {
				return &EvaluationError{Template: t.Name(), Field: "<skip>", Err: err}
			}
			if !ok {
				continue
			}
			if err := runSkipEncode(buf, s.Mode, ev, ctx); err != nil {
				return &EncodeError{Template: t.Name(), Field: "<skip>", Err: err}
			}

		case *tmpl.BindStep:
			ok, err := ev.EvaluateBoolean(s.Condition, ctx())
			if err != nil {
				return &EvaluationError{Template: t.Name(), Field: s.FieldName, Err: err}
			}
			if !ok {
				continue
			}

			val, ok := self[s.FieldName]
			if !ok {
				return &EncodeError{Template: t.Name(), Field: s.FieldName, Err: fmt.Errorf("record has no value for field")}
			}

			if s.PostProcess != nil {
				nv, err := ev.EvaluateValue(s.PostProcess.Expr, ctx())
				if err != nil {
					return &EvaluationError{Template: t.Name(), Field: s.FieldName, Err: err}
				}
				self[s.FieldName] = nv
				val = nv
			}

			opts.listener().WritingField(t.Name(), s.FieldName, val)

			wire := val
			conv, err := s.Converters.Resolve(condPass(ev, ctx))
			if err != nil {
				return &EvaluationError{Template: t.Name(), Field: s.FieldName, Err: err}
			}
			if conv != nil {
				wire, err = conv.Encode(val)
				if err != nil {
					return &EncodeError{Template: t.Name(), Field: s.FieldName, Err: err}
				}
			}
			if s.Validator != nil {
				if err := s.Validator.Validate(val); err != nil {
					return &EncodeError{Template: t.Name(), Field: s.FieldName, Err: err}
				}
			}

			hooks := encodeHooks(store, buf, userValues, ev, self, opts, depth)
			if err := codec.Encode(buf, s.FieldName, s.Binding, wire, hooks); err != nil {
				return &EncodeError{Template: t.Name(), Field: s.FieldName, Err: err}
			}
			opts.listener().WrittenField(t.Name(), s.FieldName)

		case *tmpl.ChecksumStep:
			algo, ok := checksum.Lookup(s.AlgorithmID)
			if !ok {
				return &EncodeError{Template: t.Name(), Field: s.FieldName, Err: fmt.Errorf("unknown checksum algorithm %q", s.AlgorithmID)}
			}
			offset := buf.Position() / 8
			if err := buf.WriteBytes(make([]byte, algo.Width())); err != nil {
				return &EncodeError{Template: t.Name(), Field: s.FieldName, Err: err}
			}
			pending = append(pending, pendingChecksum{step: s, byteOffset: offset, windowStart: start + s.SkipStartBits})

		default:
			return &EncodeError{Template: t.Name(), Field: "<step>", Err: fmt.Errorf("unknown step %T", step)}
		}
	}

	if hdr, ok := t.Header(); ok && len(hdr.End) > 0 {
		if err := buf.WriteBytes(hdr.End); err != nil {
			return &EncodeError{Template: t.Name(), Field: "<header>", Err: err}
		}
	}

	finalPos := buf.Position()
	for _, p := range pending {
		algo, _ := checksum.Lookup(p.step.AlgorithmID)
		window := buf.Window(p.windowStart, finalPos-p.step.SkipEndBits)
		sum := algo.Compute(window, p.step.StartValue, toByteOrder(p.step.ByteOrder))
		if err := buf.PatchBytes(p.byteOffset, sum); err != nil {
			return &EncodeError{Template: t.Name(), Field: p.step.FieldName, Err: err}
		}
	}

	return nil
}

func runSkipEncode(buf *bitio.Buffer, mode tmpl.SkipMode, ev *eval.Evaluator, ctx func() eval.Context) error {
	switch m := mode.(type) {
	case tmpl.SkipBits:
		n, err := ev.EvaluateSize(m.SizeExpr, ctx())
		if err != nil {
			return err
		}
		return buf.Skip(n)
	case tmpl.SkipUntilTerminator:
		return buf.WriteTerminator(m.Terminator)
	default:
		return fmt.Errorf("unknown skip mode %T", mode)
	}
}

func encodeHooks(store TemplateStore, buf *bitio.Buffer, userValues map[string]any, ev *eval.Evaluator, self map[string]any, opts Options, depth int) codec.Hooks {
	ctxWith := func(prefix uint64, hasPrefix bool) eval.Context {
		return eval.Context{Self: self, Prefix: prefix, HasPrefix: hasPrefix, User: userValues}
	}
	return codec.Hooks{
		Size: func(expr string) (int, error) {
			return ev.EvaluateSize(expr, eval.Context{Self: self, User: userValues})
		},
		Condition: func(expr string, prefix uint64, hasPrefix bool) (bool, error) {
			return ev.EvaluateBoolean(expr, ctxWith(prefix, hasPrefix))
		},
		EncodeNested: func(typeName string, value any) error {
			nested, ok := store.Lookup(typeName)
			if !ok {
				return fmt.Errorf("unknown template %q", typeName)
			}
			nr, ok := value.(*record.Record)
			if !ok {
				return fmt.Errorf("expected *record.Record for nested field, got %T", value)
			}
			return encodeAt(nested, store, buf, nr, userValues, opts, depth+1)
		},
	}
}
