// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// sdf-dump decodes and displays SDF files.
//
// Usage: sdf-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//	$> sdf-dump ./testdata/SPEC.DAT
//	=== ./testdata/SPEC.DAT ===
//	Revision:             2
//	Application: HP 35665A
//	Start:       2013-02-13 09:08:00
//	Title:       Source 10mVrms 3kHz
//	Domain:      Frequency domain
//	Data type:   Auto-power spectrum
//	Channels:             1
//	Correction:  4
//	Points:               5
//	Abscissa:    [0, 32] Hz
//	Amplitude:   min=0 max=4 mean=2
package main // import "github.com/go-lpc/sdfascii/cmd/sdf-dump"

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"math/cmplx"
	"os"

	"github.com/go-lpc/sdfascii/sdf"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

func main() {
	log.SetPrefix("sdf-dump: ")
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Printf(`sdf-dump decodes and displays SDF files.

Usage: sdf-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> sdf-dump ./testdata/SPEC.DAT

`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		log.Fatalf("missing path to input SDF file")
	}

	err := process(os.Stdout, flag.Args())
	if err != nil {
		log.Fatalf("could not dump files: %+v", err)
	}
}

func process(w io.Writer, fnames []string) error {
	var (
		grp   errgroup.Group
		files = make([]*sdf.File, len(fnames))
	)
	for i := range fnames {
		i := i
		grp.Go(func() error {
			f, err := sdf.ReadFile(fnames[i])
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}

	err := grp.Wait()
	if err != nil {
		return err
	}

	wbuf := bufio.NewWriter(w)
	defer wbuf.Flush()

	for i, f := range files {
		dump(wbuf, fnames[i], f)
	}

	return wbuf.Flush()
}

func dump(w io.Writer, fname string, f *sdf.File) {
	fmt.Fprintf(w, "=== %s ===\n", fname)
	fmt.Fprintf(w, "Revision:    % 10d\n", f.FileHdr.Revision)
	fmt.Fprintf(w, "Application: %v\n", f.FileHdr.Application)
	fmt.Fprintf(w, "Start:       %s\n", f.FileHdr.MeasStart.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Title:       %s\n", f.MeasHdr.Title)
	if len(f.DataHdrs) > 0 {
		dh := f.DataHdrs[0]
		fmt.Fprintf(w, "Domain:      %v\n", dh.Domain)
		fmt.Fprintf(w, "Data type:   %v\n", dh.DataType)
	}
	fmt.Fprintf(w, "Channels:    % 10d\n", len(f.ChannelHdrs))
	if corr, err := f.TraceCorrection(); err == nil {
		fmt.Fprintf(w, "Correction:  %g\n", corr)
	}

	if f.Data == nil {
		fmt.Fprintf(w, "Points:      % 10d\n", 0)
		return
	}

	n := f.Data.Len()
	fmt.Fprintf(w, "Points:      % 10d\n", n)
	if n == 0 {
		return
	}

	xs := f.Abscissa(n)
	if len(xs) == n {
		fmt.Fprintf(w, "Abscissa:    [%g, %g] %s\n", xs[0], xs[n-1], f.DataHdrs[0].XUnit.Label)
	}

	ys := make([]float64, n)
	for i := range ys {
		ys[i] = cmplx.Abs(f.Data.At(i))
	}
	fmt.Fprintf(w, "Amplitude:   min=%.3g max=%.3g mean=%.3g\n",
		floats.Min(ys), floats.Max(ys), floats.Sum(ys)/float64(n),
	)
}
