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
	"bytes"
	"fmt"

	"github.com/boxoncodec/boxon/internal/bitio"
	"github.com/boxoncodec/boxon/internal/checksum"
	"github.com/boxoncodec/boxon/internal/codec"
	"github.com/boxoncodec/boxon/internal/eval"
	"github.com/boxoncodec/boxon/internal/record"
	"github.com/boxoncodec/boxon/internal/tmpl"
)

// DefaultMaxDepth bounds ObjectBinding/ChoiceSet recursion when a caller
// does not supply its own limit: generous enough for any legitimate nested
// format, tight enough to turn a self-referential template with no base
// case into an error instead of an unbounded stack.
const DefaultMaxDepth = 64

// Options controls a single Decode or Encode call.
type Options struct {
	// MaxDepth caps how many ObjectBinding/ChoiceSet levels may nest before
	// decoding or encoding fails with a DataError/EncodeError. Zero selects
	// DefaultMaxDepth.
	MaxDepth int

	// Listener receives per-field events as decoding or encoding proceeds.
	// Nil selects NopListener.
	Listener Listener
}

func (o Options) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}

// Decode reads one message of Template t out of buf, returning the
// resulting Record and the number of bits consumed. userValues is the
// process-wide context published via RegisterContext.
func Decode(t *tmpl.Template, store TemplateStore, buf *bitio.Buffer, userValues map[string]any) (*record.Record, int, error) {
	return DecodeWithOptions(t, store, buf, userValues, Options{})
}

// DecodeWithOptions is Decode with caller-supplied Options.
func DecodeWithOptions(t *tmpl.Template, store TemplateStore, buf *bitio.Buffer, userValues map[string]any, opts Options) (*record.Record, int, error) {
	return decodeAt(t, store, buf, userValues, opts, 0)
}

func decodeAt(t *tmpl.Template, store TemplateStore, buf *bitio.Buffer, userValues map[string]any, opts Options, depth int) (*record.Record, int, error) {
	if depth > opts.maxDepth() {
		return nil, 0, &DataError{Template: t.Name(), Field: "<object>", Err: fmt.Errorf("max nesting depth %d exceeded", opts.maxDepth())}
	}
	start := buf.Position()

	if hdr, ok := t.Header(); ok {
		if err := matchHeaderStart(buf, hdr); err != nil {
			return nil, 0, &HeaderMismatchError{Template: t.Name(), Reason: err.Error()}
		}
	}

	self := make(map[string]any)
	var order []string
	ev := t.Evaluator()
	ctx := func() eval.Context { return eval.Context{Self: self, User: userValues} }

	for _, step := range t.Steps() {
		switch s := step.(type) {
		case *tmpl.SkipStep:
			ok, err := ev.EvaluateBoolean(s.Condition, ctx())
			if err != nil {
				return nil, 0, &EvaluationError{Template: t.Name(), Field: "<skip>", Err: err}
			}
			if !ok {
				continue
			}
			if err := runSkip(buf, s.Mode, ev, ctx); err != nil {
				return nil, 0, &DataError{Template: t.Name(), Field: "<skip>", Err: err}
			}

		case *tmpl.BindStep:
			ok, err := ev.EvaluateBoolean(s.Condition, ctx())
			if err != nil {
				return nil, 0, &EvaluationError{Template: t.Name(), Field: s.FieldName, Err: err}
			}
			if !ok {
				continue
			}

			opts.listener().DecodingField(t.Name(), s.FieldName)
			hooks := decodeHooks(t, store, buf, userValues, ev, self, opts, depth)
			wire, err := codec.Decode(buf, s.FieldName, s.Binding, hooks)
			if err != nil {
				return nil, 0, &DataError{Template: t.Name(), Field: s.FieldName, Err: err}
			}
			opts.listener().DecodedField(t.Name(), s.FieldName, wire)

			val := wire
			conv, err := s.Converters.Resolve(condPass(ev, ctx))
			if err != nil {
				return nil, 0, &EvaluationError{Template: t.Name(), Field: s.FieldName, Err: err}
			}
			if conv != nil {
				val, err = conv.Decode(wire)
				if err != nil {
					return nil, 0, &DataError{Template: t.Name(), Field: s.FieldName, Err: err}
				}
			}
			if s.Validator != nil {
				if err := s.Validator.Validate(val); err != nil {
					return nil, 0, &DataError{Template: t.Name(), Field: s.FieldName, Err: err}
				}
			}

			self[s.FieldName] = val
			order = append(order, s.FieldName)

		case *tmpl.ChecksumStep:
			if err := runChecksumDecode(t, buf, start, s); err != nil {
				return nil, 0, err
			}
			self[s.FieldName] = true
			order = append(order, s.FieldName)

		default:
			return nil, 0, &DataError{Template: t.Name(), Field: "<step>", Err: fmt.Errorf("unknown step %T", step)}
		}
	}

	for _, evf := range t.EvaluatedFields() {
		ok, err := ev.EvaluateBoolean(evf.Condition, ctx())
		if err != nil {
			return nil, 0, &EvaluationError{Template: t.Name(), Field: evf.Name, Err: err}
		}
		if !ok {
			continue
		}
		opts.listener().EvaluatingField(t.Name(), evf.Name, evf.Expr)
		v, err := ev.EvaluateValue(evf.Expr, ctx())
		if err != nil {
			return nil, 0, &EvaluationError{Template: t.Name(), Field: evf.Name, Err: err}
		}
		self[evf.Name] = v
		order = append(order, evf.Name)
		opts.listener().EvaluatedField(t.Name(), evf.Name, v)
	}

	if hdr, ok := t.Header(); ok && len(hdr.End) > 0 {
		got, err := buf.ReadBytes(len(hdr.End))
		if err != nil || !bytes.Equal(got, hdr.End) {
			return nil, 0, &HeaderMismatchError{Template: t.Name(), Reason: "trailing end sequence did not match"}
		}
	}

	return record.FromOrdered(order, self), buf.Position() - start, nil
}

func runSkip(buf *bitio.Buffer, mode tmpl.SkipMode, ev *eval.Evaluator, ctx func() eval.Context) error {
	switch m := mode.(type) {
	case tmpl.SkipBits:
		n, err := ev.EvaluateSize(m.SizeExpr, ctx())
		if err != nil {
			return err
		}
		return buf.Skip(n)
	case tmpl.SkipUntilTerminator:
		return buf.SkipUntil(m.Terminator, m.Consume)
	default:
		return fmt.Errorf("unknown skip mode %T", mode)
	}
}

func runChecksumDecode(t *tmpl.Template, buf *bitio.Buffer, start int, s *tmpl.ChecksumStep) error {
	algo, ok := checksum.Lookup(s.AlgorithmID)
	if !ok {
		return &DataError{Template: t.Name(), Field: s.FieldName, Err: fmt.Errorf("unknown checksum algorithm %q", s.AlgorithmID)}
	}
	windowEnd := buf.Position() - s.SkipEndBits
	window := buf.Window(start+s.SkipStartBits, windowEnd)
	want := algo.Compute(window, s.StartValue, toByteOrder(s.ByteOrder))

	got, err := buf.ReadBytes(len(want))
	if err != nil {
		return &DataError{Template: t.Name(), Field: s.FieldName, Err: err}
	}
	if !bytes.Equal(got, want) {
		return &ChecksumMismatchError{Template: t.Name(), Field: s.FieldName, Want: want, Got: got}
	}
	return nil
}

func decodeHooks(t *tmpl.Template, store TemplateStore, buf *bitio.Buffer, userValues map[string]any, ev *eval.Evaluator, self map[string]any, opts Options, depth int) codec.Hooks {
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
		DecodeNested: func(typeName string) (any, error) {
			nested, ok := store.Lookup(typeName)
			if !ok {
				return nil, fmt.Errorf("unknown template %q", typeName)
			}
			rec, _, err := decodeAt(nested, store, buf, userValues, opts, depth+1)
			if err != nil {
				return nil, err
			}
			return rec, nil
		},
	}
}

func condPass(ev *eval.Evaluator, ctx func() eval.Context) func(string) (bool, error) {
	return func(expr string) (bool, error) { return ev.EvaluateBoolean(expr, ctx()) }
}

func matchHeaderStart(buf *bitio.Buffer, hdr tmpl.Header) error {
	for _, seq := range hdr.Start {
		byteIdx, bitIdx := buf.SaveCursor()
		got, err := buf.ReadBytes(len(seq))
		if err == nil && bytes.Equal(got, seq) {
			return nil
		}
		buf.RestoreCursor(byteIdx, bitIdx)
	}
	return fmt.Errorf("no declared start sequence matched")
}

func toByteOrder(o bitio.Order) checksum.ByteOrder {
	if o == bitio.Little {
		return checksum.LittleEndian
	}
	return checksum.BigEndian
}
