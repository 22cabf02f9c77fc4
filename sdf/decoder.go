// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import (
	"fmt"
	"io"
	"log"

	"github.com/go-lpc/sdfascii/internal/mmap"
	"golang.org/x/xerrors"
)

type state uint8

const (
	expectIdentifier state = iota
	expectFileHdr
	expectMeasHdr
	scanDataHdrs
	scanVectorHdrs
	scanChannelHdrs
	scanScanStructs
	extractYData
	done
)

// Decoder decodes an SDF file from an underlying random-access data source.
type Decoder struct {
	r   io.ReaderAt
	msg *log.Logger

	size int64 // size of the data source, -1 if unknown
	st   state
	err  error
	rev  Revision
	hdr  Header
	data *Vector

	measOff int64 // offset of the measurement header
}

// NewDecoder creates a decoder reading an SDF file from r.
func NewDecoder(r io.ReaderAt, opts ...Option) *Decoder {
	cfg := newConfig(opts)
	dec := &Decoder{
		r:    r,
		msg:  cfg.msg,
		size: -1,
	}
	if sz, ok := r.(interface{ Size() int64 }); ok {
		dec.size = sz.Size()
	}
	return dec
}

// Decode decodes the whole SDF file.
// No partial result is returned on failure.
func (dec *Decoder) Decode() (*File, error) {
	dec.st = expectIdentifier
	dec.err = nil
	dec.hdr = Header{}
	dec.data = nil

	for dec.st != done {
		switch dec.st {
		case expectIdentifier:
			dec.readIdentifier()
			dec.st = expectFileHdr
		case expectFileHdr:
			dec.readFileHdr()
			dec.st = expectMeasHdr
		case expectMeasHdr:
			dec.readMeasHdr()
			dec.st = scanDataHdrs
		case scanDataHdrs:
			dec.scanDataHdrs()
			dec.st = scanVectorHdrs
		case scanVectorHdrs:
			dec.scanVectorHdrs()
			dec.st = scanChannelHdrs
		case scanChannelHdrs:
			dec.scanChannelHdrs()
			dec.st = scanScanStructs
		case scanScanStructs:
			dec.scanScanStructs()
			dec.st = extractYData
		case extractYData:
			dec.readYData()
			dec.st = done
		}
		if dec.err != nil {
			return nil, dec.err
		}
	}

	return &File{Header: dec.hdr, Data: dec.data}, nil
}

// ReadFile decodes the SDF file fname.
func ReadFile(fname string, opts ...Option) (*File, error) {
	h, err := mmap.Open(fname)
	if err != nil {
		return nil, xerrors.Errorf("sdf: could not open %q: %w", fname, err)
	}
	defer h.Close()

	f, err := NewDecoder(h, opts...).Decode()
	if err != nil {
		return nil, xerrors.Errorf("sdf: could not decode %q: %w", fname, err)
	}

	return f, nil
}

func (dec *Decoder) readIdentifier() {
	buf := make([]byte, len(Magic))
	n, err := dec.r.ReadAt(buf, 0)
	if string(buf[:n]) != Magic {
		dec.err = &InvalidContainerError{Got: buf[:n]}
		return
	}
	if err != nil && err != io.EOF {
		dec.err = xerrors.Errorf("sdf: could not read file identifier: %w", err)
		return
	}
	dec.msg.Printf("file identifier: %q", buf)
}

// readRecord reads the whole record at offset off, checking its type.
// A y-data record cut short by the end of the file is returned as is:
// its samples are counted against the data header during extraction.
func (dec *Decoder) readRecord(off int64, want RecordType) []byte {
	if dec.err != nil {
		return nil
	}

	var pfx [prefixSize]byte
	n, err := dec.r.ReadAt(pfx[:], off)
	if n < prefixSize {
		if err == nil || err == io.EOF {
			dec.wrap(want, off, &TruncatedRecordError{
				Record: want,
				Field:  "record prefix",
				Need:   prefixSize,
				Have:   n,
			})
			return nil
		}
		dec.err = xerrors.Errorf(
			"sdf: could not read %v record prefix at offset %d: %w",
			want, off, err,
		)
		return nil
	}

	typ, size := prefix(pfx[:])
	if typ != want {
		dec.err = &UnexpectedRecordTypeError{Offset: off, Want: want, Got: typ}
		return nil
	}

	if size < prefixSize {
		dec.err = &RecordSizeMismatchError{Record: want, Declared: size, Actual: prefixSize}
		return nil
	}

	p, err := dec.load(off, size)
	if err != nil {
		dec.err = xerrors.Errorf("sdf: could not read %v record at offset %d: %w", want, off, err)
		return nil
	}
	if len(p) < int(size) && want != YDataRecord {
		dec.wrap(want, off, &TruncatedRecordError{
			Record: want,
			Field:  "record",
			Need:   int(size),
			Have:   len(p),
		})
		return nil
	}

	dec.msg.Printf("%v record: offset=%d size=%d", want, off, size)
	return p
}

// load reads at most size bytes at offset off.
// Without a known source size, the buffer only grows with the bytes
// actually read, so a corrupted size field can not trigger a large
// allocation.
func (dec *Decoder) load(off int64, size int32) ([]byte, error) {
	if dec.size < 0 {
		p, err := io.ReadAll(io.NewSectionReader(dec.r, off, int64(size)))
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	n := int64(size)
	if avail := dec.size - off; avail < n {
		n = max(avail, 0)
	}
	p := make([]byte, n)
	nn, err := dec.r.ReadAt(p, off)
	if err != nil && !(err == io.EOF && nn == len(p)) {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return p, nil
}

// trailer flags the revision 3 bytes of a record past the decoded layout.
func (dec *Decoder) trailer(name string, layout int, size int32) {
	if dec.rev != 3 || int(size) <= layout {
		return
	}
	dec.hdr.Undecoded = append(
		dec.hdr.Undecoded,
		fmt.Sprintf("%s[%d:%d]", name, layout, size),
	)
}

func (dec *Decoder) wrap(rec RecordType, off int64, err error) {
	if err == nil || dec.err != nil {
		return
	}
	dec.err = xerrors.Errorf("sdf: could not decode %v record at offset %d: %w", rec, off, err)
}

func (dec *Decoder) readFileHdr() {
	const off = int64(len(Magic))
	p := dec.readRecord(off, FileHdrRecord)
	if dec.err != nil {
		return
	}

	hdr, err := DecodeFileHeader(p)
	if err != nil {
		dec.wrap(FileHdrRecord, off, err)
		return
	}
	dec.hdr.FileHdr = hdr
	dec.rev = hdr.Revision
	dec.measOff = off + int64(hdr.RecordSize)
	dec.trailer("file header", fileHdrSize, hdr.RecordSize)
	dec.msg.Printf("sdf revision: %d, application: %v", dec.rev, hdr.Application)
}

func (dec *Decoder) readMeasHdr() {
	off := dec.measOff
	p := dec.readRecord(off, MeasHdrRecord)
	if dec.err != nil {
		return
	}

	hdr, err := DecodeMeasHeader(dec.rev, p)
	if err != nil {
		dec.wrap(MeasHdrRecord, off, err)
		return
	}
	dec.hdr.MeasHdr = hdr
	dec.trailer("measurement header", measHdrSize, hdr.RecordSize)
}

// scan visits the n records of a table starting at offset beg.
// Record i is located at beg + i*size, where size is the size of
// record i-1.
func (dec *Decoder) scan(rec RecordType, n int16, beg int32, f func(i int, off int64, p []byte) (int32, error)) {
	if dec.err != nil || n == 0 {
		return
	}
	switch {
	case n < 0:
		dec.err = xerrors.Errorf("sdf: invalid number of %v records (n=%d)", rec, n)
		return
	case beg < 0:
		dec.err = xerrors.Errorf(
			"sdf: invalid offset for %d %v records (offset=%d)",
			n, rec, beg,
		)
		return
	}

	var (
		off  int64
		size int32
	)
	for i := 0; i < int(n); i++ {
		off = int64(beg) + int64(i)*int64(size)
		p := dec.readRecord(off, rec)
		if dec.err != nil {
			return
		}
		var err error
		size, err = f(i, off, p)
		if err != nil {
			dec.wrap(rec, off, err)
			return
		}
	}
}

func (dec *Decoder) scanDataHdrs() {
	fh := &dec.hdr.FileHdr
	dec.hdr.DataHdrs = make([]DataHeader, 0, max(fh.NumDataHdrs, 0))
	dec.scan(DataHdrRecord, fh.NumDataHdrs, fh.OffsetDataHdr, func(i int, off int64, p []byte) (int32, error) {
		hdr, err := DecodeDataHeader(dec.rev, p)
		if err != nil {
			return 0, err
		}
		dec.hdr.DataHdrs = append(dec.hdr.DataHdrs, hdr)
		dec.trailer(fmt.Sprintf("data header #%d", i), dataHdrSize, hdr.RecordSize)
		return hdr.RecordSize, nil
	})
}

func (dec *Decoder) scanVectorHdrs() {
	fh := &dec.hdr.FileHdr
	dec.hdr.VectorHdrs = make([]VectorHeader, 0, max(fh.NumVectorHdrs, 0))
	dec.scan(VectorHdrRecord, fh.NumVectorHdrs, fh.OffsetVectorHdr, func(i int, off int64, p []byte) (int32, error) {
		hdr, err := DecodeVectorHeader(dec.rev, p)
		if err != nil {
			return 0, err
		}
		dec.hdr.VectorHdrs = append(dec.hdr.VectorHdrs, hdr)
		return hdr.RecordSize, nil
	})
}

func (dec *Decoder) scanChannelHdrs() {
	fh := &dec.hdr.FileHdr
	dec.hdr.ChannelHdrs = make([]ChannelHeader, 0, max(fh.NumChannelHdrs, 0))
	dec.scan(ChannelHdrRecord, fh.NumChannelHdrs, fh.OffsetChannelHdr, func(i int, off int64, p []byte) (int32, error) {
		hdr, err := DecodeChannelHeader(dec.rev, p)
		if err != nil {
			return 0, err
		}
		dec.hdr.ChannelHdrs = append(dec.hdr.ChannelHdrs, hdr)
		dec.trailer(fmt.Sprintf("channel header #%d", i), channelHdrSize, hdr.RecordSize)
		return hdr.RecordSize, nil
	})
}

func (dec *Decoder) scanScanStructs() {
	fh := &dec.hdr.FileHdr
	dec.scan(ScanStructRecord, fh.NumScanStructs, fh.OffsetScanStruct, func(i int, off int64, p []byte) (int32, error) {
		ss, err := DecodeScanStruct(dec.rev, p)
		if err != nil {
			return 0, err
		}
		dec.hdr.ScanStruct = &ss
		return ss.RecordSize, nil
	})
}

func (dec *Decoder) readYData() {
	off := int64(dec.hdr.FileHdr.OffsetYData)
	if off < 0 {
		dec.msg.Printf("no y-data record")
		return
	}

	p := dec.readRecord(off, YDataRecord)
	if dec.err != nil {
		return
	}

	vec, err := dec.hdr.extract(off, p)
	if err != nil {
		dec.err = xerrors.Errorf("sdf: could not extract y-data at offset %d: %w", off, err)
		return
	}
	dec.data = vec
}
