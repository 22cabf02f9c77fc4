// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command sdf-plot plots the calibrated trace of an SDF file.
//
// The image format is selected from the extension of the output file
// (.png, .pdf, .svg, ...).
package main // import "github.com/go-lpc/sdfascii/cmd/sdf-plot"

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/go-lpc/sdfascii/internal/xcnv"
	"github.com/go-lpc/sdfascii/sdf"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	msg = log.New(os.Stdout, "sdf-plot: ", 0)
)

func main() {
	var (
		oname  = flag.String("o", "out.png", "path to output image file")
		width  = flag.Float64("w", 20, "width of output image (in cm)")
		height = flag.Float64("h", -1, "height of output image (in cm)")
	)

	flag.Usage = func() {
		fmt.Printf(`Usage: sdf-plot [OPTIONS] file.sdf

ex:
 $> sdf-plot -o spec.png ./SPEC.DAT
 $> sdf-plot -o spec.pdf -w 30 ./SPEC.DAT

options:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		msg.Fatalf("missing input SDF file")
	}

	w := vg.Length(*width) * vg.Centimeter
	h := vg.Length(*height) * vg.Centimeter
	if *height <= 0 {
		h = -1
	}

	err := process(*oname, w, h, flag.Arg(0))
	if err != nil {
		msg.Fatalf("could not plot SDF file: %+v", err)
	}
}

func process(oname string, w, h vg.Length, fname string) error {
	f, err := sdf.ReadFile(fname)
	if err != nil {
		return err
	}

	s2d, err := xcnv.Trace(f)
	if err != nil {
		return err
	}

	p := hplot.New()
	p.Title.Text = s2d.Annotation()["title"].(string)
	p.X.Label.Text = label("x", f.DataHdrs[0].XUnit.Label)
	p.Y.Label.Text = label("amplitude", f.DataHdrs[0].YUnit.Label)

	line, err := plotter.NewLine(s2d)
	if err != nil {
		return fmt.Errorf("could not create trace plotter: %w", err)
	}
	line.Color = color.RGBA{B: 255, A: 255}

	p.Add(line, hplot.NewGrid())

	if h < 0 {
		h = w / 1.6
	}

	err = p.Save(w, h, oname)
	if err != nil {
		return fmt.Errorf("could not save plot: %w", err)
	}
	msg.Printf("plot saved to %q (%d points)", oname, s2d.Len())

	return nil
}

func label(name, unit string) string {
	if unit == "" {
		return name
	}
	return fmt.Sprintf("%s [%s]", name, unit)
}
