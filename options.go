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

import "github.com/boxoncodec/boxon/internal/driver"

// ParseOption is a configuration setting for [Parse].
type ParseOption struct{ apply func(*driver.Options) }

// ComposeOption is a configuration setting for [Compose].
type ComposeOption struct{ apply func(*driver.Options) }

// WithMaxDepth bounds how many ObjectBinding/ChoiceSet levels Parse may
// recurse through before failing with a DataError, instead of the default
// of [driver.DefaultMaxDepth].
//
// A Template that references itself (directly, or through a cycle of
// ObjectBinding references) has no depth limit of its own; this guards
// against such a template, or maliciously deep input, exhausting the
// goroutine stack.
func WithMaxDepth(depth int) ParseOption {
	return ParseOption{func(o *driver.Options) { o.MaxDepth = depth }}
}

// WithComposeMaxDepth is WithMaxDepth for [Compose]. A Record built by hand
// can nest arbitrarily deep without Parse ever having bounded it, so
// Compose carries the same guard.
func WithComposeMaxDepth(depth int) ComposeOption {
	return ComposeOption{func(o *driver.Options) { o.MaxDepth = depth }}
}

func parseOptions(opts []ParseOption) driver.Options {
	var o driver.Options
	for _, opt := range opts {
		opt.apply(&o)
	}
	return o
}

func composeOptions(opts []ComposeOption) driver.Options {
	var o driver.Options
	for _, opt := range opts {
		opt.apply(&o)
	}
	return o
}
