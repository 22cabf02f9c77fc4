// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command sdf-cnv converts the trace of an SDF file to YODA, ROOT, LCIO
// or to an ASCII export.
//
// The output format is selected from the extension of the output file:
// .yoda, .root, .lcio or .txt. The ASCII export of out.txt is written
// to out.X and out.TXT.
package main // import "github.com/go-lpc/sdfascii/cmd/sdf-cnv"

import (
	"compress/flate"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-lpc/sdfascii/ascii"
	"github.com/go-lpc/sdfascii/internal/xcnv"
	"github.com/go-lpc/sdfascii/sdf"
	"go-hep.org/x/hep/lcio"
)

var (
	msg = log.New(os.Stdout, "sdf-cnv: ", 0)
)

func main() {
	var (
		oname = flag.String("o", "out.yoda", "path to output file (.yoda, .root, .lcio or .txt)")
		run   = flag.Int("run", 0, "run number for output LCIO file")
		compr = flag.Int("lvl", flate.DefaultCompression, "compression level for output LCIO file")
	)

	flag.Usage = func() {
		fmt.Printf(`Usage: sdf-cnv [OPTIONS] file.sdf

ex:
 $> sdf-cnv -o out.root ./SPEC.DAT
 $> sdf-cnv -o out.lcio -run=42 -lvl=9 ./SPEC.DAT

options:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		msg.Fatalf("missing input SDF file")
	}

	if *oname == "" {
		flag.Usage()
		msg.Fatalf("invalid output file name")
	}

	err := process(*oname, int32(*run), *compr, flag.Arg(0))
	if err != nil {
		msg.Fatalf("could not convert SDF file: %+v", err)
	}
}

func process(oname string, run int32, lvl int, fname string) error {
	f, err := sdf.ReadFile(fname)
	if err != nil {
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(oname)); ext {
	case ".yoda":
		return toYODA(oname, f)
	case ".root":
		return xcnv.SDF2ROOT(oname, f)
	case ".lcio", ".slcio":
		return toLCIO(oname, run, lvl, f)
	case ".txt":
		return toASCII(strings.TrimSuffix(oname, filepath.Ext(oname)), f)
	default:
		return fmt.Errorf("unknown output file format %q", ext)
	}
}

func toYODA(oname string, f *sdf.File) error {
	o, err := os.Create(oname)
	if err != nil {
		return fmt.Errorf("could not create output YODA file: %w", err)
	}
	defer o.Close()

	err = xcnv.SDF2YODA(o, f)
	if err != nil {
		return fmt.Errorf("could not convert SDF to YODA: %w", err)
	}

	err = o.Close()
	if err != nil {
		return fmt.Errorf("could not close output YODA file: %w", err)
	}

	return nil
}

func toLCIO(oname string, run int32, lvl int, f *sdf.File) error {
	w, err := lcio.Create(oname)
	if err != nil {
		return fmt.Errorf("could not create output LCIO file: %w", err)
	}
	defer w.Close()

	w.SetCompressionLevel(lvl)

	err = xcnv.SDF2LCIO(w, f, run, msg)
	if err != nil {
		return fmt.Errorf("could not convert SDF to LCIO: %w", err)
	}

	err = w.Close()
	if err != nil {
		return fmt.Errorf("could not close output LCIO file: %w", err)
	}

	return nil
}

func toASCII(base string, f *sdf.File) error {
	s2d, err := xcnv.Trace(f)
	if err != nil {
		return err
	}

	d := ascii.Data{
		Frequency: make([]float64, s2d.Len()),
		Amplitude: make([]float64, s2d.Len()),
	}
	for i := range d.Frequency {
		d.Frequency[i], d.Amplitude[i] = s2d.XY(i)
	}

	return ascii.WriteFiles(base, &d)
}
