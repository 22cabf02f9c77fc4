// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import (
	"fmt"
)

// InvalidContainerError is returned when a file does not start with Magic.
type InvalidContainerError struct {
	Got []byte
}

func (e *InvalidContainerError) Error() string {
	return fmt.Sprintf("sdf: invalid file identifier (got=%q, want=%q)", e.Got, Magic)
}

// UnexpectedRecordTypeError is returned when the record found at a given
// position is not of the kind the file layout requires there.
type UnexpectedRecordTypeError struct {
	Offset int64
	Want   RecordType
	Got    RecordType
}

func (e *UnexpectedRecordTypeError) Error() string {
	return fmt.Sprintf(
		"sdf: unexpected record type at offset %d (got=%d, want=%d (%v))",
		e.Offset, int16(e.Got), int16(e.Want), e.Want,
	)
}

// UnsupportedRevisionError is returned for SDF revisions other than 1, 2 or 3.
type UnsupportedRevisionError struct {
	Revision Revision
}

func (e *UnsupportedRevisionError) Error() string {
	return fmt.Sprintf("sdf: unsupported SDF revision %d", int16(e.Revision))
}

// UnknownEnumCodeError is returned when a coded field holds a value with
// no entry in its decoding table.
type UnknownEnumCodeError struct {
	Field string
	Code  int16
}

func (e *UnknownEnumCodeError) Error() string {
	return fmt.Sprintf("sdf: unknown %s code %d", e.Field, e.Code)
}

// RecordSizeMismatchError is returned when the size declared in a record
// prefix disagrees with the number of bytes handed to its decoder.
type RecordSizeMismatchError struct {
	Record   RecordType
	Declared int32
	Actual   int
}

func (e *RecordSizeMismatchError) Error() string {
	return fmt.Sprintf(
		"sdf: %v record size mismatch (declared=%d, actual=%d)",
		e.Record, e.Declared, e.Actual,
	)
}

// TruncatedRecordError is returned when a record holds fewer bytes than
// its layout requires.
type TruncatedRecordError struct {
	Record RecordType // zero for Unit and Window structures
	Field  string
	Offset int // offset of the field within the record
	Need   int // number of bytes needed from Offset
	Have   int // number of bytes in the record
}

func (e *TruncatedRecordError) Error() string {
	if e.Record == 0 {
		return fmt.Sprintf(
			"sdf: truncated %s: needs %d bytes (got=%d)",
			e.Field, e.Need, e.Have,
		)
	}
	return fmt.Sprintf(
		"sdf: truncated %v record: field %q needs %d bytes at offset %d (record size=%d)",
		e.Record, e.Field, e.Need, e.Offset, e.Have,
	)
}

// TruncatedVectorDataError is returned when the y-data record holds fewer
// samples than the data header declares.
type TruncatedVectorDataError struct {
	Offset int64
	Want   int
	Got    int
}

func (e *TruncatedVectorDataError) Error() string {
	return fmt.Sprintf(
		"sdf: truncated y-data at offset %d (got=%d samples, want=%d)",
		e.Offset, e.Got, e.Want,
	)
}

// IndexOutOfRangeError is returned when a cross-record reference points
// outside of the referenced collection.
type IndexOutOfRangeError struct {
	Collection string
	Index      int
	Len        int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf(
		"sdf: %s index %d out of range [0, %d)",
		e.Collection, e.Index, e.Len,
	)
}
