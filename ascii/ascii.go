// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ascii reads and writes the ASCII export of an SDF trace:
// a pair of files holding the frequencies (<base>.X) and the
// amplitudes (<base>.TXT) of the trace, one value per line.
package ascii // import "github.com/go-lpc/sdfascii/ascii"

import (
	"fmt"

	"go-hep.org/x/hep/csvutil"
)

const (
	xExt = ".X"
	yExt = ".TXT"
)

// Data is a frequency/amplitude trace.
type Data struct {
	Frequency []float64 `json:"frequency"`
	Amplitude []float64 `json:"amplitude"`
}

// Len returns the number of points of the trace.
func (d *Data) Len() int { return len(d.Frequency) }

// ReadFiles loads the trace stored in base.X and base.TXT.
func ReadFiles(base string) (*Data, error) {
	xs, err := readColumn(base + xExt)
	if err != nil {
		return nil, fmt.Errorf("ascii: could not read frequencies: %w", err)
	}

	ys, err := readColumn(base + yExt)
	if err != nil {
		return nil, fmt.Errorf("ascii: could not read amplitudes: %w", err)
	}

	if len(xs) != len(ys) {
		return nil, fmt.Errorf(
			"ascii: frequency/amplitude length mismatch (x=%d, y=%d)",
			len(xs), len(ys),
		)
	}

	return &Data{Frequency: xs, Amplitude: ys}, nil
}

// WriteFiles stores the trace d in base.X and base.TXT.
func WriteFiles(base string, d *Data) error {
	if len(d.Frequency) != len(d.Amplitude) {
		return fmt.Errorf(
			"ascii: frequency/amplitude length mismatch (x=%d, y=%d)",
			len(d.Frequency), len(d.Amplitude),
		)
	}

	err := writeColumn(base+xExt, d.Frequency)
	if err != nil {
		return fmt.Errorf("ascii: could not write frequencies: %w", err)
	}

	err = writeColumn(base+yExt, d.Amplitude)
	if err != nil {
		return fmt.Errorf("ascii: could not write amplitudes: %w", err)
	}

	return nil
}

func readColumn(fname string) ([]float64, error) {
	tbl, err := csvutil.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", fname, err)
	}
	defer tbl.Close()

	tbl.Reader.Comma = ' '
	tbl.Reader.Comment = '#'
	tbl.Reader.TrimLeadingSpace = true

	rows, err := tbl.ReadRows(0, -1)
	if err != nil {
		return nil, fmt.Errorf("could not read rows of %q: %w", fname, err)
	}
	defer rows.Close()

	var vs []float64
	for rows.Next() {
		var v float64
		err = rows.Scan(&v)
		if err != nil {
			return nil, fmt.Errorf("could not scan line %d of %q: %w", len(vs)+1, fname, err)
		}
		vs = append(vs, v)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("could not iterate over rows of %q: %w", fname, err)
	}

	return vs, nil
}

func writeColumn(fname string, vs []float64) error {
	tbl, err := csvutil.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", fname, err)
	}
	defer tbl.Close()

	tbl.Writer.Comma = ' '

	for i, v := range vs {
		err = tbl.WriteRow(v)
		if err != nil {
			return fmt.Errorf("could not write line %d of %q: %w", i+1, fname, err)
		}
	}

	err = tbl.Close()
	if err != nil {
		return fmt.Errorf("could not close %q: %w", fname, err)
	}

	return nil
}
