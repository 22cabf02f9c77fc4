// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sdftest provides SDF fixtures for commands tests.
package sdftest // import "github.com/go-lpc/sdfascii/internal/sdftest"

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-lpc/sdfascii/sdf"
)

// Header returns the header graph of a single channel revision 2
// power spectrum of n points, starting at 0 Hz with a 8 Hz resolution.
func Header(title string, n int) *sdf.Header {
	return &sdf.Header{
		FileHdr: sdf.FileHeader{
			Revision:    2,
			Application: sdf.AppHP35665A,
			MeasStart:   time.Date(2013, time.February, 13, 9, 8, 0, 0, time.UTC),
			AppVersion:  "A.01.11",
		},
		MeasHdr: sdf.MeasHeader{
			OffsetUnique: -1,
			BlockSize:    4096,
			FreqRange:    &sdf.FreqRange{Start: 0, Stop: int16(n - 1)},
			AverageNum:   1,
			Title:        title,
			MeasType:     3,
		},
		DataHdrs: []sdf.DataHeader{{
			OffsetUnique:   -1,
			Title:          "Pwr Spec",
			Domain:         sdf.DomainFrequency,
			DataType:       sdf.DataAutoPowerSpec,
			XDataType:      sdf.NumFloat,
			YDataType:      sdf.NumFloat,
			YPerPoint:      1,
			YIsPowerData:   true,
			YIsValid:       true,
			TotalRows:      1,
			TotalCols:      1,
			XUnit:          sdf.Unit{Label: "Hz", Factor: 1},
			YUnitValid:     true,
			YUnit:          sdf.Unit{Label: "V^2", Factor: 1},
			AbscissaDeltaX: 8,
		}},
		VectorHdrs: []sdf.VectorHeader{{
			OffsetUnique:    -1,
			ChannelRecord:   [2]int16{0, -1},
			ChannelPower48x: [2]int16{96, 0},
		}},
		ChannelHdrs: []sdf.ChannelHeader{{
			OffsetUnique: -1,
			Label:        "Chan  1",
			ModuleID:     "HP35665A",
			Window:       sdf.Window{NarrowBandCorr: 1},
			IntLabel:     "V",
			EngUnit:      sdf.Unit{Label: "V", Factor: 1},
			Int2EngUnit:  0.5,
			ChannelScale: 1,
		}},
	}
}

// Samples returns n raw samples, i/4 for i in [0, n).
func Samples(n int) sdf.Vector {
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = float64(i) / 4
	}
	return sdf.Vector{Real: vs}
}

// WriteFile encodes a n points trace titled title to fname.
// Decoded samples are i for i in [0, n).
func WriteFile(fname, title string, n int) error {
	buf := new(bytes.Buffer)
	err := sdf.NewEncoder(buf).Encode(Header(title, n), Samples(n))
	if err != nil {
		return fmt.Errorf("could not encode SDF file: %w", err)
	}

	err = os.WriteFile(fname, buf.Bytes(), 0644)
	if err != nil {
		return fmt.Errorf("could not write SDF file: %w", err)
	}
	return nil
}
