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

	"github.com/boxoncodec/boxon/internal/bitio"
	"github.com/boxoncodec/boxon/internal/codec"
	"github.com/boxoncodec/boxon/internal/driver"
	"github.com/boxoncodec/boxon/internal/eval"
	"github.com/boxoncodec/boxon/internal/tmpl"
)

// AnnotationError reports a malformed Template: an expression that failed
// to compile, a missing field, a charset unknown to internal/charset. It
// is returned only from tmpl.Build, never from Parse or Compose.
type AnnotationError = tmpl.AnnotationError

// CodecError reports a failure to decode or encode a single field's wire
// representation once its Template has already been accepted by Build.
type CodecError = codec.Error

// EvaluationError reports a condition, size or value expression that
// compiled but failed to evaluate against the live parse context.
type EvaluationError = driver.EvaluationError

// DataError reports a failure to read or structurally interpret the wire
// data itself, distinct from a checksum mismatch or a header mismatch.
type DataError = driver.DataError

// EncodeError reports a Record that cannot be written as a message of its
// Template: a missing field, a value of the wrong shape, an unresolved
// ChoiceSet.
type EncodeError = driver.EncodeError

// ChecksumMismatchError reports a checksum field whose computed value does
// not match what was found on the wire.
type ChecksumMismatchError = driver.ChecksumMismatchError

// HeaderMismatchError reports a message whose framing bytes did not match
// any of its Template's declared header.start sequences, or whose trailing
// bytes did not match header.end.
type HeaderMismatchError = driver.HeaderMismatchError

// BufferError reports a failure at the bit-cursor level: running past the
// end of the buffer, operating on a misaligned cursor, or failing to find
// a declared terminator. The three sentinel values below cover those cases;
// internal/bitio also defines ErrBadCharset, ErrValueOverflow and
// ErrInvalidWidth, which are not re-exported here. Compare against them
// with errors.Is.
type BufferError = bitio.Error

const (
	ErrUnexpectedEOF      = bitio.ErrUnexpectedEOF
	ErrMisaligned         = bitio.ErrMisaligned
	ErrTerminatorNotFound = bitio.ErrTerminatorNotFound
)

// ExpressionError reports a CEL expression that failed to compile or run;
// it is the cause wrapped by most AnnotationError and EvaluationError
// values, and is exported so callers can errors.As past the boxon-level
// wrapping straight to the offending expression text.
type ExpressionError = eval.Error

// TemplateError reports a failure to register or resolve a Template by
// name: a duplicate RegisterTemplate call, or a reference to a type name
// no Template has ever been registered under.
type TemplateError struct {
	Name   string
	Reason string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("boxon: template %q: %s", e.Name, e.Reason)
}
