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

package bitio

// Error is a sentinel error type for this package, following the
// string-constant error idiom so that comparisons via errors.Is are cheap
// and the error set stays closed.
type Error string

func (e Error) Error() string { return "bitio: " + string(e) }

// Sentinel errors returned by Buffer's read and write operations. Compare
// against these with errors.Is; BufferError at the boxon package level is
// an alias of Error, so these values are BufferError values themselves.
const (
	ErrUnexpectedEOF      Error = "unexpected end of buffer"
	ErrMisaligned         Error = "cursor is not byte-aligned"
	ErrTerminatorNotFound Error = "terminator not found before end of buffer"
	ErrBadCharset         Error = "unsupported charset"
	ErrValueOverflow      Error = "value does not fit in the declared width"
	ErrInvalidWidth       Error = "bit width out of range [1, 64]"
)
