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

//go:build debug

// Package trace includes debugging helpers that are compiled in only under
// the debug build tag, so that production builds pay nothing for them.
package trace

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/timandy/routine"

	"github.com/boxoncodec/boxon/internal/flag2"
)

// Enabled is true if the binary is being built with the debug tag.
const Enabled = true

var pattern *regexp.Regexp

func init() {
	flag.Bool("boxon.nocapture", false, "skip syncing stderr after every trace line")
}

func init() {
	flag.Func("boxon.filter", "regexp to filter trace logs by", func(s string) (err error) {
		pattern, err = regexp.Compile(s)
		return err
	})
}

// Log prints tracing information to stderr, tagged with the calling
// package, file, line and goroutine id. context is an optional leading
// fmt.Printf-style pair ([format, args...]) rendered before operation, for
// grouping related log lines under a shared identifier such as a parse id.
func Log(context []any, operation string, format string, args ...any) {
	skip := 1
again:
	pc, file, line, _ := runtime.Caller(skip)
	fn := runtime.FuncForPC(pc)
	name := fn.Name()
	name = name[strings.LastIndex(name, ".")+1:]
	if strings.HasPrefix(name, "log") || strings.Contains(name, "Log") {
		skip++
		goto again
	}

	pkg := fn.Name()
	pkg = strings.TrimPrefix(pkg, "github.com/boxoncodec/boxon/")
	pkg = strings.TrimPrefix(pkg, "internal/")
	if idx := strings.Index(pkg, "."); idx >= 0 {
		pkg = pkg[:idx]
	}

	file = filepath.Base(file)

	buf := new(strings.Builder)
	_, _ = fmt.Fprintf(buf, "%s/%s:%d [g%04d", pkg, file, line, routine.Goid())
	if len(context) >= 1 {
		_, _ = fmt.Fprintf(buf, ", "+context[0].(string), context[1:]...)
	}
	_, _ = fmt.Fprintf(buf, "] %s: ", operation)
	_, _ = fmt.Fprintf(buf, format, args...)

	if pattern != nil && !pattern.MatchString(buf.String()) {
		return
	}

	_, _ = buf.Write([]byte{'\n'})
	_, _ = os.Stderr.WriteString(buf.String())
	if !flag2.Lookup[bool]("boxon.nocapture") {
		_ = os.Stderr.Sync()
	}
}

// Assert panics if cond is false. Only compiled in under the debug tag, so
// it must never guard behavior that production also depends on.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("boxon: internal assertion failed: "+format, args...))
	}
}
