// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xcnv provides tools to convert decoded SDF traces to YODA, ROOT
// and LCIO.
package xcnv // import "github.com/go-lpc/sdfascii/internal/xcnv"

import (
	"fmt"
	"math/cmplx"

	"github.com/go-lpc/sdfascii/sdf"
	"go-hep.org/x/hep/hbook"
)

// Trace returns the calibrated trace of f as a (x, |y|) scatter.
// Complex samples are reduced to their modulus.
func Trace(f *sdf.File) (*hbook.S2D, error) {
	if f.Data == nil || f.Data.Len() == 0 {
		return nil, fmt.Errorf("xcnv: SDF file has no y-data")
	}

	var (
		n   = f.Data.Len()
		xs  = f.Abscissa(n)
		pts = make([]hbook.Point2D, n)
	)
	if len(xs) != n {
		return nil, fmt.Errorf("xcnv: SDF file has no data header")
	}
	for i := range pts {
		pts[i] = hbook.Point2D{X: xs[i], Y: cmplx.Abs(f.Data.At(i))}
	}

	s2d := hbook.NewS2D(pts...)
	s2d.Annotation()["name"] = "trace"
	s2d.Annotation()["title"] = title(f)
	return s2d, nil
}

func title(f *sdf.File) string {
	if len(f.DataHdrs) > 0 && f.DataHdrs[0].Title != "" {
		return f.DataHdrs[0].Title
	}
	return f.MeasHdr.Title
}
