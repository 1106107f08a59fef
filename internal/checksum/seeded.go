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

package checksum

import (
	"encoding/binary"
	"hash"
	"hash/crc32"
	"hash/crc64"
)

// seededCRC32 and seededCRC64 let a checksum step's start_value seed the
// stdlib CRC-32/CRC-64 implementations, which otherwise only start from
// their algorithm's conventional initial value.
type seededCRC32 struct {
	crc   uint32
	table *crc32.Table
}

func crc32Seeded(start uint32, table *crc32.Table) hash.Hash {
	return &seededCRC32{crc: start, table: table}
}

func (s *seededCRC32) Write(p []byte) (int, error) {
	s.crc = crc32.Update(s.crc, s.table, p)
	return len(p), nil
}
func (s *seededCRC32) Sum(b []byte) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], s.crc)
	return append(b, buf[:]...)
}
func (s *seededCRC32) Reset()         { s.crc = 0 }
func (s *seededCRC32) Size() int      { return 4 }
func (s *seededCRC32) BlockSize() int { return 1 }

type seededCRC64 struct {
	crc   uint64
	table *crc64.Table
}

func crc64Seeded(start uint64, table *crc64.Table) hash.Hash {
	return &seededCRC64{crc: start, table: table}
}

func (s *seededCRC64) Write(p []byte) (int, error) {
	s.crc = crc64.Update(s.crc, s.table, p)
	return len(p), nil
}
func (s *seededCRC64) Sum(b []byte) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], s.crc)
	return append(b, buf[:]...)
}
func (s *seededCRC64) Reset()         { s.crc = 0 }
func (s *seededCRC64) Size() int      { return 8 }
func (s *seededCRC64) BlockSize() int { return 1 }
