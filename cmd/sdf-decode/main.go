// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// sdf-decode decodes an SDF file, or its ASCII export, to JSON.
//
// Usage: sdf-decode [OPTIONS] {sdf|ascii} INPUT OUTPUT.json
//
// For the sdf file type, INPUT is the path to the SDF file.
// For the ascii file type, INPUT is the path to the ASCII export, without
// its .X and .TXT extensions.
//
// Example:
//
//	$> sdf-decode sdf ./testdata/SPEC.DAT out.json
//	$> sdf-decode ascii ./testdata/SPEC out.json
package main // import "github.com/go-lpc/sdfascii/cmd/sdf-decode"

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-lpc/sdfascii"
	"github.com/go-lpc/sdfascii/ascii"
	"github.com/go-lpc/sdfascii/sdf"
)

var (
	msg = log.New(os.Stdout, "sdf-decode: ", 0)
)

func main() {
	var (
		version = flag.Bool("version", false, "print version and exit")
		verbose = flag.Bool("v", false, "enable verbose mode")
	)

	flag.Usage = func() {
		fmt.Printf(`sdf-decode decodes an SDF file, or its ASCII export, to JSON.

Usage: sdf-decode [OPTIONS] {sdf|ascii} INPUT OUTPUT.json

ex:
 $> sdf-decode sdf ./testdata/SPEC.DAT out.json
 $> sdf-decode ascii ./testdata/SPEC out.json

options:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		v, sum := sdfascii.Version()
		fmt.Printf("sdf-decode %s %s\n", v, sum)
		return
	}

	if flag.NArg() != 3 {
		flag.Usage()
		msg.Fatalf("invalid number of arguments (got=%d, want=3)", flag.NArg())
	}

	var opts []sdf.Option
	if *verbose {
		opts = append(opts, sdf.WithLogger(msg))
	}

	err := process(flag.Arg(2), flag.Arg(0), flag.Arg(1), opts...)
	if err != nil {
		msg.Fatalf("could not decode %q: %+v", flag.Arg(1), err)
	}
}

func process(oname, ftype, fname string, opts ...sdf.Option) error {
	var (
		v   interface{}
		err error
	)
	switch ftype {
	case "sdf":
		v, err = sdf.ReadFile(fname, opts...)
	case "ascii":
		v, err = ascii.ReadFiles(fname)
	default:
		return fmt.Errorf("invalid file type %q (want sdf or ascii)", ftype)
	}
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal to JSON: %w", err)
	}
	raw = append(raw, '\n')

	err = os.WriteFile(oname, raw, 0644)
	if err != nil {
		return fmt.Errorf("could not write JSON file: %w", err)
	}

	return nil
}
