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
	"bytes"

	"github.com/boxoncodec/boxon/internal/bitio"
	"github.com/boxoncodec/boxon/internal/describer"
	"github.com/boxoncodec/boxon/internal/driver"
	"github.com/boxoncodec/boxon/internal/tmpl"
)

// Parse decodes one message of Template t out of data, returning the
// resulting Record and the number of bytes consumed. Nested ObjectBinding
// and ChoiceSet fields are resolved against templates registered with
// RegisterTemplate.
func Parse(t *tmpl.Template, data []byte, opts ...ParseOption) (*Record, int, error) {
	buf, drop := getReader(data)
	defer drop()

	listenerLoading(t)
	dopts := parseOptions(opts)
	dopts.Listener = currentListener()
	rec, bits, err := driver.DecodeWithOptions(t, globalRegistry, buf, globalRegistry.contextSnapshot(), dopts)
	if err != nil {
		listenerCannotLoad(t, err)
		return nil, 0, err
	}
	listenerLoaded(t, rec)
	return rec, bits / 8, nil
}

// Compose encodes rec as a message of Template t, returning the wire
// bytes. Nested *Record field values are encoded recursively against
// templates registered with RegisterTemplate.
func Compose(t *tmpl.Template, rec *Record, opts ...ComposeOption) ([]byte, error) {
	buf, drop := getWriter()
	defer drop()

	eopts := composeOptions(opts)
	eopts.Listener = currentListener()
	if err := driver.EncodeWithOptions(t, globalRegistry, buf, rec, globalRegistry.contextSnapshot(), eopts); err != nil {
		listenerCannotLoad(t, err)
		return nil, err
	}
	if err := buf.Flush(); err != nil {
		listenerCannotLoad(t, err)
		return nil, err
	}

	out := make([]byte, len(buf.Array()))
	copy(out, buf.Array())
	return out, nil
}

// Describe renders t as a plain, JSON/YAML-friendly tree of maps and
// slices, for documentation and debugging tools that should not have to
// depend on boxon's internal Template representation.
func Describe(t *tmpl.Template) map[string]any {
	return describer.Describe(t)
}

// FindNextMessage scans data starting at offset for the earliest position
// at which any of templates' declared header.start sequences matches,
// returning that offset and the matching Template. If two templates' start
// sequences both match at the same offset and one is a proper prefix of
// the other, the longer match wins. It reports false if no template's
// header ever matches.
func FindNextMessage(templates []*tmpl.Template, data []byte, offset int) (int, *tmpl.Template, bool) {
	for pos := offset; pos < len(data); pos++ {
		var best *tmpl.Template
		bestLen := -1
		for _, t := range templates {
			hdr, ok := t.Header()
			if !ok {
				continue
			}
			for _, seq := range hdr.Start {
				if len(seq) == 0 || pos+len(seq) > len(data) {
					continue
				}
				if bytes.Equal(data[pos:pos+len(seq)], seq) && len(seq) > bestLen {
					best, bestLen = t, len(seq)
				}
			}
		}
		if best != nil {
			return pos, best, true
		}
	}
	return 0, nil, false
}

func getReader(data []byte) (*bitio.Buffer, func()) {
	buf, drop := bufferPool.Get()
	buf.Reset(data)
	return buf, drop
}

func getWriter() (*bitio.Buffer, func()) {
	buf, drop := bufferPool.Get()
	buf.ResetWriter()
	return buf, drop
}
