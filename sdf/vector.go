// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import (
	"encoding/binary"
	"math"
	"math/cmplx"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// Vector holds the calibrated samples of a trace.
// Only one of Real and Cmplx is populated, depending on Complex.
type Vector struct {
	Complex bool
	Real    []float64
	Cmplx   []complex128
}

// Len returns the number of samples.
func (v *Vector) Len() int {
	if v.Complex {
		return len(v.Cmplx)
	}
	return len(v.Real)
}

// At returns the i-th sample.
func (v *Vector) At(i int) complex128 {
	if v.Complex {
		return v.Cmplx[i]
	}
	return complex(v.Real[i], 0)
}

// MarshalJSON renders real samples as numbers and complex samples as
// [re, im] pairs. Non-finite values render as null.
func (v Vector) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 16*v.Len()+2)
	buf = append(buf, '[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			buf = append(buf, ',')
		}
		if !v.Complex {
			buf = appendFloat(buf, v.Real[i])
			continue
		}
		c := v.Cmplx[i]
		buf = append(buf, '[')
		buf = appendFloat(buf, real(c))
		buf = append(buf, ',')
		buf = appendFloat(buf, imag(c))
		buf = append(buf, ']')
	}
	buf = append(buf, ']')
	return buf, nil
}

func appendFloat(buf []byte, v float64) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(buf, "null"...)
	}
	return strconv.AppendFloat(buf, v, 'g', -1, 64)
}

// extract decodes and calibrates the samples of the y-data record p
// located at offset off, using the first data header.
func (hdr *Header) extract(off int64, p []byte) (*Vector, error) {
	if len(hdr.DataHdrs) == 0 {
		return nil, &IndexOutOfRangeError{Collection: "data header", Index: 0, Len: 0}
	}
	var (
		dh   = &hdr.DataHdrs[0]
		body = p[prefixSize:]
		size = realSampleSize
	)
	if dh.YIsComplex {
		size = complexSampleSize
	}

	_, decl := prefix(p)
	var (
		n    = len(body) / size
		want = (int(decl) - prefixSize) / size
	)
	if dh.Sampling != nil {
		want = int(dh.Sampling.NumPoints)
	}
	if want < 0 || want > n {
		return nil, &TruncatedVectorDataError{Offset: off, Want: want, Got: n}
	}
	n = want

	corr, err := hdr.TraceCorrection()
	if err != nil {
		return nil, err
	}

	vec := &Vector{Complex: dh.YIsComplex}
	switch {
	case dh.YIsComplex:
		vec.Cmplx = make([]complex128, n)
		c := complex(corr, 0)
		for i := range vec.Cmplx {
			beg := i * complexSampleSize
			re := math.Float64frombits(binary.BigEndian.Uint64(body[beg : beg+8]))
			im := math.Float64frombits(binary.BigEndian.Uint64(body[beg+8 : beg+16]))
			vec.Cmplx[i] = c * complex(re, im)
		}
	default:
		vec.Real = make([]float64, n)
		for i := range vec.Real {
			beg := i * realSampleSize
			vec.Real[i] = float64(math.Float32frombits(binary.BigEndian.Uint32(body[beg : beg+4])))
		}
		floats.Scale(corr, vec.Real)
	}

	if hdr.FileHdr.Application == AppHP35670A {
		toRMS(vec)
	}

	return vec.slice(hdr.MeasHdr.FreqRange)
}

// toRMS converts HP 35670A samples from squared peak units to RMS.
func toRMS(vec *Vector) {
	switch {
	case vec.Complex:
		for i, c := range vec.Cmplx {
			vec.Cmplx[i] = cmplx.Sqrt(c) / math.Sqrt2
		}
	default:
		for i, x := range vec.Real {
			vec.Real[i] = math.Sqrt(x) / math.Sqrt2
		}
	}
}

// slice restricts vec to the inclusive index range fr.
// A nil range keeps the whole vector.
func (vec *Vector) slice(fr *FreqRange) (*Vector, error) {
	if fr == nil {
		return vec, nil
	}
	var (
		n     = vec.Len()
		start = int(fr.Start)
		stop  = int(fr.Stop)
	)
	switch {
	case start < 0 || start >= n:
		return nil, &IndexOutOfRangeError{Collection: "start freq", Index: start, Len: n}
	case stop < start || stop >= n:
		return nil, &IndexOutOfRangeError{Collection: "stop freq", Index: stop, Len: n}
	}
	if vec.Complex {
		vec.Cmplx = vec.Cmplx[start : stop+1 : stop+1]
	} else {
		vec.Real = vec.Real[start : stop+1 : stop+1]
	}
	return vec, nil
}
