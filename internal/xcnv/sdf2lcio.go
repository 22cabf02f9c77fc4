// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"fmt"
	"log"

	"github.com/go-lpc/sdfascii/sdf"
	"go-hep.org/x/hep/lcio"
)

const (
	lcioDetector   = "SDF"
	lcioCollection = "SDF_TRACE"
)

// SDF2LCIO writes the trace of f to w as a single LCIO event of run run.
//
// The trace is stored as a generic object holding the abscissa, the real
// parts and, for complex traces, the imaginary parts of the samples.
func SDF2LCIO(w *lcio.Writer, f *sdf.File, run int32, msg *log.Logger) error {
	if f.Data == nil || f.Data.Len() == 0 {
		return fmt.Errorf("xcnv: SDF file has no y-data")
	}

	var (
		n  = f.Data.Len()
		xs = f.Abscissa(n)
		re = make([]float64, n)
		im []float64
	)
	if len(xs) != n {
		return fmt.Errorf("xcnv: SDF file has no data header")
	}
	if f.Data.Complex {
		im = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		v := f.Data.At(i)
		re[i] = real(v)
		if im != nil {
			im[i] = imag(v)
		}
	}

	err := w.WriteRunHeader(&lcio.RunHeader{
		RunNumber: run,
		Detector:  lcioDetector,
		Descr:     f.MeasHdr.Title,
		Params: lcio.Params{
			Strings: map[string][]string{
				"Application": {f.FileHdr.Application.String()},
				"Version":     {f.FileHdr.AppVersion},
			},
			Ints: map[string][]int32{
				"Revision": {int32(f.FileHdr.Revision)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("xcnv: could not write run header: %w", err)
	}

	obj := &lcio.GenericObject{
		Data: []lcio.GenericObjectData{
			{F64s: xs},
			{F64s: re},
		},
	}
	if im != nil {
		obj.Data = append(obj.Data, lcio.GenericObjectData{F64s: im})
	}

	evt := lcio.Event{
		RunNumber:   run,
		EventNumber: 0,
		TimeStamp:   f.FileHdr.MeasStart.UnixNano(),
		Detector:    lcioDetector,
	}
	evt.Add(lcioCollection, obj)

	err = w.WriteEvent(&evt)
	if err != nil {
		return fmt.Errorf("xcnv: could not write SDF event: %w", err)
	}
	msg.Printf("wrote %d samples to run %d", n, run)

	return nil
}
