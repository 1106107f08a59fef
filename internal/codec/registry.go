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

package codec

import (
	"fmt"

	"github.com/boxoncodec/boxon/internal/bitio"
	"github.com/boxoncodec/boxon/internal/tmpl"
	"github.com/boxoncodec/boxon/internal/xsync"
)

// Kind identifies which wire shape a FieldBinding uses; it is the same
// enumeration tmpl.Kind defines, re-exported here so callers that only
// need to talk about codec dispatch never have to import internal/tmpl.
type Kind = tmpl.Kind

// Codec implements the wire-level read and write logic for one Kind,
// overriding boxon's builtin handling of it. Registering one lets a caller
// reinterpret an existing Kind's bytes (for example, to apply a
// domain-specific numeric encoding to every integer field) without
// changing how Templates describe that Kind.
type Codec interface {
	Decode(buf *bitio.Buffer, field string, b tmpl.FieldBinding, hooks Hooks) (any, error)
	Encode(buf *bitio.Buffer, field string, b tmpl.FieldBinding, value any, hooks Hooks) error
}

var overrides xsync.Map[Kind, Codec]

// RegisterCodec installs c as the handler for every FieldBinding of the
// given Kind, in place of the builtin implementation. It returns an error
// if a Codec is already registered for kind.
func RegisterCodec(kind Kind, c Codec) error {
	_, loaded := overrides.LoadOrStore(kind, func() Codec { return c })
	if loaded {
		return fmt.Errorf("codec: a codec is already registered for kind %s", kind)
	}
	return nil
}

func lookupOverride(kind Kind) (Codec, bool) {
	return overrides.Load(kind)
}
