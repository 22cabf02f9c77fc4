// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import (
	"encoding/binary"
	"time"

	"golang.org/x/xerrors"
)

// prefix returns the record type and declared record size of the record
// starting at p.
func prefix(p []byte) (RecordType, int32) {
	return RecordType(binary.BigEndian.Uint16(p[0:2])),
		int32(binary.BigEndian.Uint32(p[2:6]))
}

// checkRecord validates the prefix of the record p against the expected
// record type, and the revision it is decoded for.
func checkRecord(want RecordType, rev Revision, p []byte) error {
	if len(p) < prefixSize {
		return &TruncatedRecordError{
			Record: want,
			Field:  "record prefix",
			Need:   prefixSize,
			Have:   len(p),
		}
	}
	typ, size := prefix(p)
	if typ != want {
		return &UnexpectedRecordTypeError{Want: want, Got: typ}
	}
	if int(size) != len(p) {
		return &RecordSizeMismatchError{Record: want, Declared: size, Actual: len(p)}
	}
	if !rev.valid() {
		return &UnsupportedRevisionError{Revision: rev}
	}
	return nil
}

// DecodeFileHeader decodes a SDF_FILE_HDR record.
// The revision of the file is read from the record itself.
func DecodeFileHeader(p []byte) (FileHeader, error) {
	var rev Revision
	if len(p) >= 8 {
		rev = Revision(binary.BigEndian.Uint16(p[6:8]))
	}
	err := checkRecord(FileHdrRecord, rev, p)
	if err != nil {
		// report a truncated record before a bogus revision.
		if len(p) < 8 {
			if _, ok := err.(*UnsupportedRevisionError); ok {
				err = &TruncatedRecordError{
					Record: FileHdrRecord, Field: "sdf revision",
					Offset: 6, Need: 2, Have: len(p),
				}
			}
		}
		return FileHeader{}, err
	}

	r := newRBuf(FileHdrRecord, p)
	hdr := FileHeader{
		RecordSize:  int32(len(p)),
		Revision:    rev,
		Application: Application(r.enum(&applications, 8)),
	}

	var (
		year   = r.i16("measurement year", 10)
		mday   = r.i16("measurement month-day", 12)
		hmin   = r.i16("measurement hour-minute", 14)
		month  = mday / 100
		day    = mday % 100
		hour   = hmin / 100
		minute = hmin % 100
	)
	if r.err == nil {
		hdr.MeasStart, r.err = measStart(year, month, day, hour, minute)
	}

	hdr.AppVersion = r.str("application version", 16, 8)

	hdr.NumDataHdrs = r.i16("num data hdr records", 24)
	hdr.NumVectorHdrs = r.i16("num vector hdr records", 26)
	hdr.NumChannelHdrs = r.i16("num channel hdr records", 28)
	hdr.NumUniques = r.i16("num unique records", 30)
	hdr.NumScanStructs = r.i16("num scan struct records", 32)
	hdr.NumXData = r.i16("num xdata records", 34)

	hdr.OffsetDataHdr = r.i32("offset data hdr record", 36)
	hdr.OffsetVectorHdr = r.i32("offset vector record", 40)
	hdr.OffsetChannelHdr = r.i32("offset channel record", 44)
	hdr.OffsetUnique = r.i32("offset unique record", 48)
	hdr.OffsetScanStruct = r.i32("offset scan struct record", 52)
	hdr.OffsetXData = r.i32("offset xdata record", 56)
	hdr.OffsetYData = r.i32("offset ydata record", 60)

	if r.err != nil {
		return FileHeader{}, r.err
	}
	return hdr, nil
}

func measStart(year, month, day, hour, minute int16) (time.Time, error) {
	switch {
	case month < 1 || month > 12,
		day < 1 || day > 31,
		hour < 0 || hour > 23,
		minute < 0 || minute > 59:
		return time.Time{}, xerrors.Errorf(
			"sdf: invalid measurement start %04d-%02d-%02d %02d:%02d",
			year, month, day, hour, minute,
		)
	}
	t := time.Date(int(year), time.Month(month), int(day), int(hour), int(minute), 0, 0, time.UTC)
	if t.Day() != int(day) {
		return time.Time{}, xerrors.Errorf(
			"sdf: invalid measurement start %04d-%02d-%02d %02d:%02d",
			year, month, day, hour, minute,
		)
	}
	return t, nil
}

// DecodeMeasHeader decodes a SDF_MEAS_HDR record.
func DecodeMeasHeader(rev Revision, p []byte) (MeasHeader, error) {
	err := checkRecord(MeasHdrRecord, rev, p)
	if err != nil {
		return MeasHeader{}, err
	}

	r := newRBuf(MeasHdrRecord, p)
	hdr := MeasHeader{
		RecordSize:   int32(len(p)),
		OffsetUnique: r.i32("offset unique record", 6),
		BlockSize:    r.i32("block size", 18),
		ZoomModeOn:   r.bool("zoom mode on", 22),
	}
	if rev >= 2 {
		hdr.FreqRange = &FreqRange{
			Start: r.i16("start freq index", 24),
			Stop:  r.i16("stop freq index", 26),
		}
	}
	hdr.AverageType = AverageType(r.enum(&averageTypes, 28))
	hdr.AverageNum = r.i32("average num", 30)
	hdr.PctOverlap = r.f32("pct overlap", 34)
	hdr.Title = r.str("meas title", 38, 60)
	hdr.VideoBW = r.f32("video bw", 98)
	hdr.CenterFreq = r.f64("center freq", 102)
	hdr.SpanFreq = r.f64("span freq", 110)
	hdr.SweepFreq = r.f64("sweep freq", 118)
	hdr.MeasType = MeasType(r.enum(&measTypes, 126))
	hdr.RealTime = RealTime(r.enum(&realTimes, 128))
	hdr.Detection = Detection(r.enum(&detections, 130))
	hdr.SweepTime = r.f64("sweep time", 132)

	if r.err != nil {
		return MeasHeader{}, r.err
	}
	return hdr, nil
}

// DecodeDataHeader decodes a SDF_DATA_HDR record.
//
// Revision 1 records store the abscissa as float32 and carry no sampling
// information.
func DecodeDataHeader(rev Revision, p []byte) (DataHeader, error) {
	err := checkRecord(DataHdrRecord, rev, p)
	if err != nil {
		return DataHeader{}, err
	}

	r := newRBuf(DataHdrRecord, p)
	hdr := DataHeader{
		RecordSize:    int32(len(p)),
		OffsetUnique:  r.i32("offset unique record", 6),
		Title:         r.str("data title", 10, 16),
		Domain:        Domain(r.enum(&domains, 26)),
		DataType:      DataType(r.enum(&dataTypes, 28)),
		XResolution:   XResolutionType(r.enum(&xResolutionTypes, 42)),
		XDataType:     NumType(r.enum(&numTypes, 44)),
		XPerPoint:     r.i16("x per point", 46),
		YDataType:     NumType(r.enum(&numTypes, 48)),
		YPerPoint:     r.i16("y per point", 50),
		YIsComplex:    r.bool("y is complex", 52),
		YIsNormalized: r.bool("y is normalized", 54),
		YIsPowerData:  r.bool("y is power data", 56),
		YIsValid:      r.bool("y is valid", 58),

		FirstVectorRecord: r.i32("first vector record num", 60),
		TotalRows:         r.i16("total rows", 64),
		TotalCols:         r.i16("total cols", 66),

		XUnit:      r.unit("xunit", 68),
		YUnitValid: r.bool("y unit valid", 90),
		YUnit:      r.unit("yunit", 92),
	}

	switch rev {
	case 1:
		hdr.AbscissaFirstX = float64(r.f32("abscissa first x", 34))
		hdr.AbscissaDeltaX = float64(r.f32("abscissa delta x", 38))
	default:
		hdr.Sampling = &Sampling{
			NumPoints:      r.i16("num points", 30),
			LastValidIndex: r.i16("last valid index", 32),
		}
		hdr.AbscissaFirstX = r.f64("abscissa first x", 114)
		hdr.AbscissaDeltaX = r.f64("abscissa delta x", 122)
		hdr.Sampling.ScanData = r.bool("scan data", 130)
		hdr.Sampling.WindowApplied = r.bool("window applied", 132)
	}

	if r.err != nil {
		return DataHeader{}, r.err
	}
	return hdr, nil
}

// DecodeVectorHeader decodes a SDF_VECTOR_HDR record.
func DecodeVectorHeader(rev Revision, p []byte) (VectorHeader, error) {
	err := checkRecord(VectorHdrRecord, rev, p)
	if err != nil {
		return VectorHeader{}, err
	}

	r := newRBuf(VectorHdrRecord, p)
	hdr := VectorHeader{
		RecordSize:   int32(len(p)),
		OffsetUnique: r.i32("offset unique record", 6),
		ChannelRecord: [2]int16{
			r.i16("response channel record", 10),
			r.i16("exciter channel record", 12),
		},
		ChannelPower48x: [2]int16{
			r.i16("response channel power 48x", 14),
			r.i16("exciter channel power 48x", 16),
		},
	}

	if r.err != nil {
		return VectorHeader{}, r.err
	}
	return hdr, nil
}

// DecodeChannelHeader decodes a SDF_CHANNEL_HDR record.
func DecodeChannelHeader(rev Revision, p []byte) (ChannelHeader, error) {
	err := checkRecord(ChannelHdrRecord, rev, p)
	if err != nil {
		return ChannelHeader{}, err
	}

	r := newRBuf(ChannelHdrRecord, p)
	hdr := ChannelHeader{
		RecordSize:     int32(len(p)),
		OffsetUnique:   r.i32("offset unique record", 6),
		Label:          r.str("channel label", 10, 30),
		ModuleID:       r.str("module id", 40, 12),
		SerialNumber:   r.str("serial number", 52, 12),
		Window:         r.window("window", 64),
		Weight:         Weight(r.enum(&weights, 88)),
		Delay:          r.f32("delay", 90),
		Range:          r.f32("range", 94),
		Direction:      Direction(r.enum(&directions, 98)),
		PointNum:       r.i16("point num", 100),
		Coupling:       Coupling(r.enum(&couplings, 102)),
		Overloaded:     r.bool("overloaded", 104),
		IntLabel:       r.str("int label", 106, 10),
		EngUnit:        r.unit("eng unit", 116),
		Int2EngUnit:    r.f32("int 2 eng unit", 138),
		InputImpedance: r.f32("input impedance", 142),
		Attribute:      ChannelAttribute(r.enum(&channelAttributes, 146)),
		AliasProtected: r.bool("alias protected", 148),
		DigitalChannel: r.bool("digital channel", 150),
		ChannelScale:   r.f64("channel scale", 152),
		ChannelOffset:  r.f64("channel offset", 160),
		GateBegin:      r.f64("gate begin", 168),
		GateEnd:        r.f64("gate end", 176),
		UserDelay:      r.f64("user delay", 184),
	}

	if r.err != nil {
		return ChannelHeader{}, r.err
	}
	return hdr, nil
}

// DecodeScanStruct decodes a SDF_SCAN_STRUCT record.
func DecodeScanStruct(rev Revision, p []byte) (ScanStruct, error) {
	err := checkRecord(ScanStructRecord, rev, p)
	if err != nil {
		return ScanStruct{}, err
	}

	r := newRBuf(ScanStructRecord, p)
	ss := ScanStruct{
		RecordSize:    int32(len(p)),
		NumScans:      r.i16("num of scans", 6),
		LastScanIndex: r.i16("last scan index", 8),
		ScanType:      ScanType(r.enum(&scanTypes, 10)),
		ScanVarType:   ScanVarType(r.enum(&scanVarTypes, 12)),
		ScanUnit:      r.unit("scan unit", 14),
	}

	if r.err != nil {
		return ScanStruct{}, r.err
	}
	return ss, nil
}
