// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import (
	"encoding/binary"
	"io"
	"math"

	"golang.org/x/xerrors"
)

// Encoder writes SDF files to an output stream.
//
// Records are laid out back to back: file header, measurement header,
// data, vector and channel header tables, scan struct and y-data.
// Record sizes, counts and offsets of the file header are computed from
// the header graph; unique and x-data records are never written.
type Encoder struct {
	w   io.Writer
	buf []byte
	err error
}

// NewEncoder returns a new Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the header graph hdr and the raw (uncalibrated) samples
// raw as a complete SDF file.
// The y-data record is omitted when raw holds no sample slice.
func (enc *Encoder) Encode(hdr *Header, raw Vector) error {
	if hdr == nil {
		return nil
	}
	rev := hdr.FileHdr.Revision
	if !rev.valid() {
		return &UnsupportedRevisionError{Revision: rev}
	}
	if raw.Complex != hdr.yIsComplex() {
		return xerrors.Errorf("sdf: y-data sample kind does not match data header")
	}

	var (
		fsize = fileHdrSize
		dsize = dataHdrSize
	)
	switch rev {
	case 1:
		dsize = dataHdrSizeV1
	case 3:
		fsize = fileHdrSizeV3
	}

	fh := hdr.FileHdr
	fh.NumDataHdrs = int16(len(hdr.DataHdrs))
	fh.NumVectorHdrs = int16(len(hdr.VectorHdrs))
	fh.NumChannelHdrs = int16(len(hdr.ChannelHdrs))
	fh.NumUniques = 0
	fh.NumScanStructs = 0
	fh.NumXData = 0

	off := int32(len(Magic) + fsize + measHdrSize)
	table := func(n, size int) int32 {
		if n == 0 {
			return -1
		}
		beg := off
		off += int32(n * size)
		return beg
	}
	fh.OffsetDataHdr = table(len(hdr.DataHdrs), dsize)
	fh.OffsetVectorHdr = table(len(hdr.VectorHdrs), vectorHdrSize)
	fh.OffsetChannelHdr = table(len(hdr.ChannelHdrs), channelHdrSize)
	fh.OffsetUnique = -1
	fh.OffsetScanStruct = -1
	if hdr.ScanStruct != nil {
		fh.NumScanStructs = 1
		fh.OffsetScanStruct = table(1, scanStructAlign)
	}
	fh.OffsetXData = -1
	fh.OffsetYData = -1
	if raw.Real != nil || raw.Cmplx != nil {
		fh.OffsetYData = off
	}

	enc.buf = enc.buf[:0]
	enc.buf = append(enc.buf, Magic...)
	enc.writeFileHdr(fsize, &fh)
	enc.writeMeasHdr(rev, &hdr.MeasHdr)
	for i := range hdr.DataHdrs {
		enc.writeDataHdr(rev, dsize, &hdr.DataHdrs[i], raw.Len())
	}
	for i := range hdr.VectorHdrs {
		enc.writeVectorHdr(&hdr.VectorHdrs[i])
	}
	for i := range hdr.ChannelHdrs {
		enc.writeChannelHdr(&hdr.ChannelHdrs[i])
	}
	if hdr.ScanStruct != nil {
		enc.writeScanStruct(hdr.ScanStruct)
	}
	if fh.OffsetYData >= 0 {
		enc.writeYData(raw)
	}

	if enc.err != nil {
		return enc.err
	}
	_, err := enc.w.Write(enc.buf)
	if err != nil {
		return xerrors.Errorf("sdf: could not write SDF file: %w", err)
	}
	return nil
}

func (hdr *Header) yIsComplex() bool {
	if len(hdr.DataHdrs) == 0 {
		return false
	}
	return hdr.DataHdrs[0].YIsComplex
}

// record appends a zeroed record of the given type and size to the
// output buffer and returns a writer over it.
func (enc *Encoder) record(rec RecordType, size int) *wbuf {
	beg := len(enc.buf)
	enc.buf = append(enc.buf, make([]byte, size)...)
	w := &wbuf{p: enc.buf[beg : beg+size]}
	w.i16(0, int16(rec))
	w.i32(2, int32(size))
	return w
}

func (enc *Encoder) writeFileHdr(size int, hdr *FileHeader) {
	w := enc.record(FileHdrRecord, size)
	w.i16(6, int16(hdr.Revision))
	w.i16(8, int16(hdr.Application))

	t := hdr.MeasStart
	w.i16(10, int16(t.Year()))
	w.i16(12, int16(int(t.Month())*100+t.Day()))
	w.i16(14, int16(t.Hour()*100+t.Minute()))
	w.str(16, 8, hdr.AppVersion)

	for i, v := range []int16{
		hdr.NumDataHdrs, hdr.NumVectorHdrs, hdr.NumChannelHdrs,
		hdr.NumUniques, hdr.NumScanStructs, hdr.NumXData,
	} {
		w.i16(24+2*i, v)
	}
	for i, v := range []int32{
		hdr.OffsetDataHdr, hdr.OffsetVectorHdr, hdr.OffsetChannelHdr,
		hdr.OffsetUnique, hdr.OffsetScanStruct, hdr.OffsetXData,
		hdr.OffsetYData,
	} {
		w.i32(36+4*i, v)
	}
}

func (enc *Encoder) writeMeasHdr(rev Revision, hdr *MeasHeader) {
	w := enc.record(MeasHdrRecord, measHdrSize)
	w.i32(6, hdr.OffsetUnique)
	w.i32(18, hdr.BlockSize)
	w.bool(22, hdr.ZoomModeOn)
	if rev >= 2 && hdr.FreqRange != nil {
		w.i16(24, hdr.FreqRange.Start)
		w.i16(26, hdr.FreqRange.Stop)
	}
	w.i16(28, int16(hdr.AverageType))
	w.i32(30, hdr.AverageNum)
	w.f32(34, hdr.PctOverlap)
	w.str(38, 60, hdr.Title)
	w.f32(98, hdr.VideoBW)
	w.f64(102, hdr.CenterFreq)
	w.f64(110, hdr.SpanFreq)
	w.f64(118, hdr.SweepFreq)
	w.i16(126, int16(hdr.MeasType))
	w.i16(128, int16(hdr.RealTime))
	w.i16(130, int16(hdr.Detection))
	w.f64(132, hdr.SweepTime)
}

func (enc *Encoder) writeDataHdr(rev Revision, size int, hdr *DataHeader, n int) {
	w := enc.record(DataHdrRecord, size)
	w.i32(6, hdr.OffsetUnique)
	w.str(10, 16, hdr.Title)
	w.i16(26, int16(hdr.Domain))
	w.i16(28, int16(hdr.DataType))
	w.i16(42, int16(hdr.XResolution))
	w.i16(44, int16(hdr.XDataType))
	w.i16(46, hdr.XPerPoint)
	w.i16(48, int16(hdr.YDataType))
	w.i16(50, hdr.YPerPoint)
	w.bool(52, hdr.YIsComplex)
	w.bool(54, hdr.YIsNormalized)
	w.bool(56, hdr.YIsPowerData)
	w.bool(58, hdr.YIsValid)
	w.i32(60, hdr.FirstVectorRecord)
	w.i16(64, hdr.TotalRows)
	w.i16(66, hdr.TotalCols)
	w.unit(68, &hdr.XUnit)
	w.bool(90, hdr.YUnitValid)
	w.unit(92, &hdr.YUnit)

	if rev == 1 {
		w.f32(34, float32(hdr.AbscissaFirstX))
		w.f32(38, float32(hdr.AbscissaDeltaX))
		return
	}

	smp := Sampling{NumPoints: int16(n), LastValidIndex: int16(n - 1)}
	if hdr.Sampling != nil {
		smp = *hdr.Sampling
	}
	w.i16(30, smp.NumPoints)
	w.i16(32, smp.LastValidIndex)
	w.f64(114, hdr.AbscissaFirstX)
	w.f64(122, hdr.AbscissaDeltaX)
	w.bool(130, smp.ScanData)
	w.bool(132, smp.WindowApplied)
}

func (enc *Encoder) writeVectorHdr(hdr *VectorHeader) {
	w := enc.record(VectorHdrRecord, vectorHdrSize)
	w.i32(6, hdr.OffsetUnique)
	w.i16(10, hdr.ChannelRecord[Response])
	w.i16(12, hdr.ChannelRecord[Exciter])
	w.i16(14, hdr.ChannelPower48x[Response])
	w.i16(16, hdr.ChannelPower48x[Exciter])
}

func (enc *Encoder) writeChannelHdr(hdr *ChannelHeader) {
	w := enc.record(ChannelHdrRecord, channelHdrSize)
	w.i32(6, hdr.OffsetUnique)
	w.str(10, 30, hdr.Label)
	w.str(40, 12, hdr.ModuleID)
	w.str(52, 12, hdr.SerialNumber)
	w.window(64, &hdr.Window)
	w.i16(88, int16(hdr.Weight))
	w.f32(90, hdr.Delay)
	w.f32(94, hdr.Range)
	w.i16(98, int16(hdr.Direction))
	w.i16(100, hdr.PointNum)
	w.i16(102, int16(hdr.Coupling))
	w.bool(104, hdr.Overloaded)
	w.str(106, 10, hdr.IntLabel)
	w.unit(116, &hdr.EngUnit)
	w.f32(138, hdr.Int2EngUnit)
	w.f32(142, hdr.InputImpedance)
	w.i16(146, int16(hdr.Attribute))
	w.bool(148, hdr.AliasProtected)
	w.bool(150, hdr.DigitalChannel)
	w.f64(152, hdr.ChannelScale)
	w.f64(160, hdr.ChannelOffset)
	w.f64(168, hdr.GateBegin)
	w.f64(176, hdr.GateEnd)
	w.f64(184, hdr.UserDelay)
}

func (enc *Encoder) writeScanStruct(ss *ScanStruct) {
	w := enc.record(ScanStructRecord, scanStructAlign)
	w.i16(6, ss.NumScans)
	w.i16(8, ss.LastScanIndex)
	w.i16(10, int16(ss.ScanType))
	w.i16(12, int16(ss.ScanVarType))
	w.unit(14, &ss.ScanUnit)
}

func (enc *Encoder) writeYData(raw Vector) {
	size := prefixSize + realSampleSize*len(raw.Real)
	if raw.Complex {
		size = prefixSize + complexSampleSize*len(raw.Cmplx)
	}
	if size > math.MaxInt32 {
		enc.err = xerrors.Errorf("sdf: y-data record too big (size=%d)", size)
		return
	}
	w := enc.record(YDataRecord, size)
	switch {
	case raw.Complex:
		for i, c := range raw.Cmplx {
			w.f64(prefixSize+i*complexSampleSize, real(c))
			w.f64(prefixSize+i*complexSampleSize+8, imag(c))
		}
	default:
		for i, v := range raw.Real {
			w.f32(prefixSize+i*realSampleSize, float32(v))
		}
	}
}

// wbuf writes big-endian fields at fixed offsets of a record.
type wbuf struct {
	p []byte
}

func (w *wbuf) i8(off int, v int8) { w.p[off] = uint8(v) }

func (w *wbuf) i16(off int, v int16) {
	binary.BigEndian.PutUint16(w.p[off:off+2], uint16(v))
}

func (w *wbuf) i32(off int, v int32) {
	binary.BigEndian.PutUint32(w.p[off:off+4], uint32(v))
}

func (w *wbuf) f32(off int, v float32) {
	binary.BigEndian.PutUint32(w.p[off:off+4], math.Float32bits(v))
}

func (w *wbuf) f64(off int, v float64) {
	binary.BigEndian.PutUint64(w.p[off:off+8], math.Float64bits(v))
}

func (w *wbuf) bool(off int, v bool) {
	if v {
		w.i16(off, 1)
	}
}

// str writes s NUL-padded (or truncated) to n bytes.
func (w *wbuf) str(off, n int, s string) {
	copy(w.p[off:off+n], s)
}

func (w *wbuf) unit(off int, u *Unit) {
	w.str(off, 10, u.Label)
	w.f32(off+10, u.Factor)
	for i, v := range []int8{
		u.Mass, u.Length, u.Time, u.Current,
		u.Temperature, u.LuminalIntensity, u.Mole, u.PlaneAngle,
	} {
		w.i8(off+14+i, v)
	}
}

func (w *wbuf) window(off int, win *Window) {
	w.i16(off+0, int16(win.Type))
	w.i16(off+2, int16(win.CorrectionMode))
	w.f32(off+4, win.BW)
	w.f32(off+8, win.TimeConst)
	w.f32(off+12, win.Trunc)
	w.f32(off+16, win.WideBandCorr)
	w.f32(off+20, win.NarrowBandCorr)
}
