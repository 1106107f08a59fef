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
	"github.com/boxoncodec/boxon/internal/bitio"
	"github.com/boxoncodec/boxon/internal/sync2"
)

// bufferPool recycles bitio.Buffer values across Parse and Compose calls.
// A Buffer carries no state past Reset/ResetWriter, so putting one back
// after use is always safe regardless of which direction it was last used
// for.
var bufferPool = sync2.Pool[bitio.Buffer]{
	New: func() *bitio.Buffer { return bitio.NewReader(nil) },
}
