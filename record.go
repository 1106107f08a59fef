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

import "github.com/boxoncodec/boxon/internal/record"

// Record is a decoded or to-be-composed message: an order-preserving map
// from field name to value. Nested object fields hold *Record values;
// arrays and lists hold []any. Parse returns one; Compose accepts one.
type Record = record.Record

// NewRecord returns an empty Record, ready for Set calls ahead of a
// Compose, with no Template-declared field order to preserve.
func NewRecord() *Record { return record.New() }
