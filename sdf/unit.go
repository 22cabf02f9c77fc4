// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

// DecodeUnit decodes the 22 bytes of an SDF_UNIT structure.
func DecodeUnit(p []byte) (Unit, error) {
	if len(p) != unitSize {
		return Unit{}, &TruncatedRecordError{Field: "unit", Need: unitSize, Have: len(p)}
	}
	r := newRBuf(0, p)
	u := Unit{
		Label:            r.str("label", 0, 10),
		Factor:           r.f32("factor", 10),
		Mass:             r.i8("mass", 14),
		Length:           r.i8("length", 15),
		Time:             r.i8("time", 16),
		Current:          r.i8("current", 17),
		Temperature:      r.i8("temperature", 18),
		LuminalIntensity: r.i8("luminal intensity", 19),
		Mole:             r.i8("mole", 20),
		PlaneAngle:       r.i8("plane angle", 21),
	}
	return u, r.err
}

// DecodeWindow decodes the 24 bytes of an SDF_WINDOW structure.
func DecodeWindow(p []byte) (Window, error) {
	if len(p) != windowSize {
		return Window{}, &TruncatedRecordError{Field: "window", Need: windowSize, Have: len(p)}
	}
	r := newRBuf(0, p)
	w := Window{
		Type:           WindowType(r.enum(&windowTypes, 0)),
		CorrectionMode: CorrectionMode(r.enum(&correctionModes, 2)),
		BW:             r.f32("bw", 4),
		TimeConst:      r.f32("time constant", 8),
		Trunc:          r.f32("truncation", 12),
		WideBandCorr:   r.f32("wide band correction", 16),
		NarrowBandCorr: r.f32("narrow band correction", 20),
	}
	if r.err != nil {
		return Window{}, r.err
	}
	return w, nil
}
