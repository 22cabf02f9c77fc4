// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"
)

const (
	nSamples = 2049
	nBins    = 1601
)

// newTestHeader returns the header graph of a 2-channel auto-power
// spectrum measured by an HP 35670A, laid out as the Encoder writes it.
func newTestHeader(rev Revision) *Header {
	chn := func(label string) ChannelHeader {
		return ChannelHeader{
			RecordSize:   channelHdrSize,
			OffsetUnique: -1,
			Label:        label,
			ModuleID:     "HP35670A",
			SerialNumber: "MY42506778",
			Window: Window{
				Type:           WindowFlatTop,
				CorrectionMode: CorrectionNarrowBand,
				BW:             3.8193,
				WideBandCorr:   3.8193,
				NarrowBandCorr: 4.68691444,
			},
			Range:     -32.943313598,
			Direction: 3,
			Coupling:  CouplingDC,
			IntLabel:  "V",
			EngUnit: Unit{
				Label:   "V",
				Factor:  1,
				Mass:    2,
				Length:  4,
				Time:    -6,
				Current: -2,
			},
			Int2EngUnit:    1,
			InputImpedance: 50,
			ChannelScale:   1,
		}
	}

	hdr := &Header{
		FileHdr: FileHeader{
			RecordSize:       fileHdrSize,
			Revision:         rev,
			Application:      AppHP35670A,
			MeasStart:        time.Date(2013, time.February, 13, 9, 8, 0, 0, time.UTC),
			AppVersion:       "A.01.11",
			NumDataHdrs:      1,
			NumVectorHdrs:    1,
			NumChannelHdrs:   2,
			NumScanStructs:   1,
			OffsetDataHdr:    206,
			OffsetVectorHdr:  340,
			OffsetChannelHdr: 358,
			OffsetUnique:     -1,
			OffsetScanStruct: 742,
			OffsetXData:      -1,
			OffsetYData:      782,
		},
		MeasHdr: MeasHeader{
			RecordSize:   measHdrSize,
			OffsetUnique: -1,
			BlockSize:    4096,
			FreqRange:    &FreqRange{Start: 0, Stop: nBins - 1},
			AverageType:  0,
			AverageNum:   1,
			Title:        "Source 10mVrms 3kHz",
			CenterFreq:   8192,
			SpanFreq:     16384,
			MeasType:     3,
			RealTime:     1,
			Detection:    0,
		},
		DataHdrs: []DataHeader{{
			RecordSize:   dataHdrSize,
			OffsetUnique: -1,
			Title:        "Pwr Spec",
			Domain:       DomainFrequency,
			DataType:     DataAutoPowerSpec,
			XDataType:    NumFloat,
			XPerPoint:    0,
			YDataType:    NumFloat,
			YPerPoint:    1,
			YIsPowerData: true,
			YIsValid:     true,
			TotalRows:    1,
			TotalCols:    1,
			XUnit: Unit{
				Label:      "Hz",
				Factor:     6.28318977,
				Time:       -2,
				PlaneAngle: 2,
			},
			YUnitValid: true,
			YUnit: Unit{
				Label:   "V^2",
				Factor:  1,
				Mass:    2,
				Length:  4,
				Time:    -6,
				Current: -2,
			},
			AbscissaFirstX: 0,
			AbscissaDeltaX: 8,
			Sampling: &Sampling{
				NumPoints:      nSamples,
				LastValidIndex: nSamples - 1,
			},
		}},
		VectorHdrs: []VectorHeader{{
			RecordSize:      vectorHdrSize,
			OffsetUnique:    -1,
			ChannelRecord:   [2]int16{0, -1},
			ChannelPower48x: [2]int16{96, 0},
		}},
		ChannelHdrs: []ChannelHeader{chn("Chan  1"), chn("Chan  2")},
		ScanStruct: &ScanStruct{
			RecordSize:    scanStructAlign,
			NumScans:      1,
			LastScanIndex: 0,
			ScanType:      ScanScan,
			ScanVarType:   3,
			ScanUnit:      Unit{Label: "count", Factor: 1},
		},
	}

	switch rev {
	case 1:
		hdr.MeasHdr.FreqRange = nil
		dh := &hdr.DataHdrs[0]
		dh.RecordSize = dataHdrSizeV1
		dh.Sampling = nil
		hdr.FileHdr.OffsetVectorHdr = 320
		hdr.FileHdr.OffsetChannelHdr = 338
		hdr.FileHdr.OffsetScanStruct = 722
		hdr.FileHdr.OffsetYData = 762
	case 3:
		hdr.FileHdr.RecordSize = fileHdrSizeV3
		hdr.FileHdr.OffsetDataHdr += 16
		hdr.FileHdr.OffsetVectorHdr += 16
		hdr.FileHdr.OffsetChannelHdr += 16
		hdr.FileHdr.OffsetScanStruct += 16
		hdr.FileHdr.OffsetYData += 16
		hdr.Undecoded = []string{"file header[64:80]"}
	}

	return hdr
}

// newTestSamples returns n raw real samples, exactly representable as float32.
func newTestSamples(n int) Vector {
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = float64(i%100) / 4
	}
	return Vector{Real: vs}
}

func encodeTestFile(t *testing.T, hdr *Header, raw Vector) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	err := NewEncoder(buf).Encode(hdr, raw)
	if err != nil {
		t.Fatalf("could not encode SDF file: %+v", err)
	}
	return buf.Bytes()
}

func put16(p []byte, off int, v int16) {
	binary.BigEndian.PutUint16(p[off:off+2], uint16(v))
}

func put32(p []byte, off int, v int32) {
	binary.BigEndian.PutUint32(p[off:off+4], uint32(v))
}
