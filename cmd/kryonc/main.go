// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command kryonc is a small command line tool for inspecting and
// converting KIR documents, mirroring the subcommand-dispatch shape of
// cmd/core/core.go (Setup/Build/Run/Pack/...) without pulling in the
// cli/cobra/viper machinery those commands are built on: a handful of
// flag.FlagSet subcommands is a better fit for a single-purpose
// compiler-adjacent tool than a full app-lifecycle CLI framework.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/kryonlabs/kryon-sub005/ir"
	"github.com/kryonlabs/kryon-sub005/kir"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "inspect":
		err = runInspect(os.Args[2:])
	case "to-binary":
		err = runConvert(os.Args[2:], true)
	case "to-json":
		err = runConvert(os.Args[2:], false)
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "kryonc: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("kryonc", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `kryonc is a tool for working with KIR documents.

Usage:

	kryonc inspect <file>      print a summary of a KIR document
	kryonc to-binary <in> <out>  convert a KIR JSON document to binary IR
	kryonc to-json <in> <out>    convert a binary IR document to KIR JSON`)
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("kryonc inspect: expected exactly one file argument")
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	ctx := ir.NewContext()
	doc, err := decode(data, ctx)
	if err != nil {
		return err
	}

	fmt.Printf("root: %s\n", describeTree(doc.Root, 0))
	if doc.Manifest != nil {
		fmt.Printf("variables: %d, bindings: %d, conditionals: %d, for_loops: %d\n",
			len(doc.Manifest.Variables), len(doc.Manifest.Bindings),
			len(doc.Manifest.Conditionals), len(doc.Manifest.ForLoops))
	}
	if doc.Bytecode != nil {
		fmt.Printf("functions: %d, states: %d, host_functions: %d\n",
			len(doc.Bytecode.Functions), len(doc.Bytecode.States), len(doc.Bytecode.HostFunctions))
	}
	return nil
}

func describeTree(c *ir.Component, depth int) string {
	if c == nil {
		return "<none>"
	}
	s := fmt.Sprintf("%s#%d", c.Variant.String(), c.ID())
	for _, child := range c.Children {
		s += fmt.Sprintf("\n%*s%s", (depth+1)*2, "", describeTree(child, depth+1))
	}
	return s
}

func runConvert(args []string, toBinary bool) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("kryonc: expected input and output file arguments")
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	ctx := ir.NewContext()
	doc, err := decode(data, ctx)
	if err != nil {
		return err
	}

	var out []byte
	if toBinary {
		out, err = kir.MarshalBinary(doc)
	} else {
		out, err = kir.Marshal(doc)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(fs.Arg(1), out, 0o644)
}

// decode sniffs the KRY\0 binary magic and dispatches to the matching
// decoder, so inspect/convert accept either encoding transparently.
func decode(data []byte, ctx *ir.Context) (*kir.Document, error) {
	if len(data) >= 4 && data[0] == kir.Magic[0] && data[1] == kir.Magic[1] && data[2] == kir.Magic[2] && data[3] == kir.Magic[3] {
		return kir.UnmarshalBinary(data, ctx)
	}
	return kir.Unmarshal(data, ctx)
}
