// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import "strconv"

// RecordType identifies the kind of an SDF record.
type RecordType int16

const (
	FileHdrRecord    RecordType = 10
	MeasHdrRecord    RecordType = 11
	DataHdrRecord    RecordType = 12
	VectorHdrRecord  RecordType = 13
	ChannelHdrRecord RecordType = 14
	ScanStructRecord RecordType = 15
	XDataRecord      RecordType = 16
	YDataRecord      RecordType = 17
	ScanBigRecord    RecordType = 18
	ScanVarRecord    RecordType = 19
	CommentRecord    RecordType = 20
)

func (rt RecordType) String() string {
	switch rt {
	case FileHdrRecord:
		return "file header"
	case MeasHdrRecord:
		return "measurement header"
	case DataHdrRecord:
		return "data header"
	case VectorHdrRecord:
		return "vector header"
	case ChannelHdrRecord:
		return "channel header"
	case ScanStructRecord:
		return "scan struct"
	case XDataRecord:
		return "x-data"
	case YDataRecord:
		return "y-data"
	case ScanBigRecord:
		return "scan big"
	case ScanVarRecord:
		return "scan var"
	case CommentRecord:
		return "comment"
	}
	return "record-type(" + strconv.Itoa(int(rt)) + ")"
}

// Magic is the 2-byte identifier every SDF file starts with.
const Magic = "B\x00"

const (
	prefixSize = 6 // record type (int16) + record size (int32)

	unitSize   = 22
	windowSize = 24

	fileHdrSize     = 64
	fileHdrSizeV3   = 80
	measHdrSize     = 140
	dataHdrSizeV1   = 114
	dataHdrSize     = 134
	vectorHdrSize   = 18
	channelHdrSize  = 192
	scanStructSize  = 36
	scanStructAlign = 40 // size written by HP instruments
)

// Sample sizes in the y-data record.
const (
	realSampleSize    = 4  // big-endian float32
	complexSampleSize = 16 // two big-endian float64
)
