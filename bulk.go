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
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/boxoncodec/boxon/internal/tmpl"
)

// ComposeAll encodes every record in records as a message of Template t,
// fanning the work out across a bounded worker pool. Every message is
// independent — t is read-only once built, and each call gets its own
// bitio.Buffer — so the results are identical to calling Compose in a loop,
// only faster under load.
//
// A failure composing one record does not stop the others: the returned
// errs slice is the same length as records and in the same order, with a
// nil entry for every record that composed successfully.
func ComposeAll(t *tmpl.Template, records []*Record, opts ...ComposeOption) (out [][]byte, errs []error) {
	out = make([][]byte, len(records))
	errs = make([]error, len(records))

	var g errgroup.Group
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))

	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			data, err := Compose(t, rec, opts...)
			out[i], errs[i] = data, err
			return nil
		})
	}
	_ = g.Wait()
	return out, errs
}
