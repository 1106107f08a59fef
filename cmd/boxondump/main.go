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

// Command boxondump loads a YAML Template descriptor, builds it, and
// prints its Describe tree as JSON. It exists to let a descriptor be
// sanity-checked (does it build at all, what steps does boxon see) without
// writing a throwaway Go program against the library.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/boxoncodec/boxon/internal/descriptoryaml"
	"github.com/boxoncodec/boxon/internal/tmpl"

	"github.com/boxoncodec/boxon"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <descriptor.yaml>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "boxondump:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	desc, err := descriptoryaml.Load(data)
	if err != nil {
		return err
	}
	desc.ContextValues = boxon.ContextSnapshot()
	desc.ContextMethods = boxon.MethodSnapshot()

	t, err := tmpl.Build(desc)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(boxon.Describe(t))
}
