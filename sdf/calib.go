// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import (
	"math"
)

// TraceCorrection returns the calibration factor applied to the samples
// of the trace described by the first data header.
//
// The factor is the product of the response and exciter channel factors.
// A channel contributes (w/eu)^(p/48), where eu is its internal to
// engineering unit factor, p its power in the vector header, and w its
// narrow band window correction for frequency and channel domain data
// (1 otherwise). An absent channel (index -1) contributes 1.
func (hdr *Header) TraceCorrection() (float64, error) {
	if len(hdr.DataHdrs) == 0 {
		return 0, &IndexOutOfRangeError{Collection: "data header", Index: 0, Len: 0}
	}
	dh := &hdr.DataHdrs[0]

	ivec := int(dh.FirstVectorRecord)
	if ivec < 0 || ivec >= len(hdr.VectorHdrs) {
		return 0, &IndexOutOfRangeError{
			Collection: "vector header",
			Index:      ivec,
			Len:        len(hdr.VectorHdrs),
		}
	}
	vh := &hdr.VectorHdrs[ivec]

	corr := 1.0
	for _, role := range []int{Response, Exciter} {
		f, err := hdr.channelFactor(dh.Domain, vh.ChannelRecord[role], vh.ChannelPower48x[role])
		if err != nil {
			return 0, err
		}
		corr *= f
	}
	return corr, nil
}

func (hdr *Header) channelFactor(domain Domain, ich, pow48 int16) (float64, error) {
	if ich == -1 {
		return 1, nil
	}
	if ich < 0 || int(ich) >= len(hdr.ChannelHdrs) {
		return 0, &IndexOutOfRangeError{
			Collection: "channel header",
			Index:      int(ich),
			Len:        len(hdr.ChannelHdrs),
		}
	}
	ch := &hdr.ChannelHdrs[ich]

	window := 1.0
	switch domain {
	case DomainFrequency, DomainChannel:
		window = float64(ch.Window.NarrowBandCorr)
	}
	eu := float64(ch.Int2EngUnit)

	return math.Pow(window/eu, float64(pow48)/48), nil
}

// Abscissa returns the x-values of the n first samples of the extracted
// trace, starting at the first index of the measurement frequency range.
func (hdr *Header) Abscissa(n int) []float64 {
	if len(hdr.DataHdrs) == 0 || n <= 0 {
		return nil
	}
	var (
		dh  = &hdr.DataHdrs[0]
		beg = 0
		xs  = make([]float64, n)
	)
	if fr := hdr.MeasHdr.FreqRange; fr != nil {
		beg = int(fr.Start)
	}
	for i := range xs {
		xs[i] = dh.AbscissaFirstX + float64(beg+i)*dh.AbscissaDeltaX
	}
	return xs
}
