// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/floats"
)

func TestDecode(t *testing.T) {
	for _, tc := range []struct {
		name string
		rev  Revision
		n    int // number of returned samples
	}{
		{name: "rev-1", rev: 1, n: nSamples},
		{name: "rev-2", rev: 2, n: nBins},
		{name: "rev-3", rev: 3, n: nBins},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var (
				want = newTestHeader(tc.rev)
				raw  = newTestSamples(nSamples)
				buf  = encodeTestFile(t, want, raw)
			)

			got, err := NewDecoder(bytes.NewReader(buf)).Decode()
			if err != nil {
				t.Fatalf("could not decode SDF file: %+v", err)
			}

			if diff := cmp.Diff(*want, got.Header, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("invalid header (-want +got):\n%s", diff)
			}

			if got.Data == nil {
				t.Fatalf("missing y-data")
			}
			if got.Data.Complex {
				t.Fatalf("invalid y-data kind: got complex samples")
			}
			if got, want := got.Data.Len(), tc.n; got != want {
				t.Fatalf("invalid number of samples: got=%d, want=%d", got, want)
			}

			corr := math.Pow(float64(float32(4.68691444)), 2)
			exp := make([]float64, tc.n)
			for i := range exp {
				exp[i] = math.Sqrt(corr*raw.Real[i]) / math.Sqrt2
			}
			if !floats.EqualApprox(got.Data.Real, exp, 1e-12) {
				t.Fatalf("invalid samples:\ngot= %v\nwant=%v", got.Data.Real[:8], exp[:8])
			}
		})
	}
}

func TestDecodeLayout(t *testing.T) {
	buf := encodeTestFile(t, newTestHeader(2), newTestSamples(nSamples))

	f, err := NewDecoder(bytes.NewReader(buf)).Decode()
	if err != nil {
		t.Fatalf("could not decode SDF file: %+v", err)
	}

	fh := f.FileHdr
	for _, tc := range []struct {
		name string
		got  int64
		want int64
	}{
		{"file-hdr-size", int64(fh.RecordSize), 64},
		{"revision", int64(fh.Revision), 2},
		{"num-data-hdrs", int64(fh.NumDataHdrs), 1},
		{"num-vector-hdrs", int64(fh.NumVectorHdrs), 1},
		{"num-channel-hdrs", int64(fh.NumChannelHdrs), 2},
		{"num-scan-structs", int64(fh.NumScanStructs), 1},
		{"num-xdata", int64(fh.NumXData), 0},
		{"offset-data-hdr", int64(fh.OffsetDataHdr), 206},
		{"offset-vector-hdr", int64(fh.OffsetVectorHdr), 340},
		{"offset-channel-hdr", int64(fh.OffsetChannelHdr), 358},
		{"offset-scan-struct", int64(fh.OffsetScanStruct), 742},
		{"offset-xdata", int64(fh.OffsetXData), -1},
		{"offset-ydata", int64(fh.OffsetYData), 782},
		{"meas-hdr-size", int64(f.MeasHdr.RecordSize), 140},
		{"data-hdr-size", int64(f.DataHdrs[0].RecordSize), 134},
		{"channel-hdr-size", int64(f.ChannelHdrs[1].RecordSize), 192},
		{"scan-struct-size", int64(f.ScanStruct.RecordSize), 40},
		{"file-size", int64(len(buf)), 782 + 6 + 4*nSamples},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("got=%d, want=%d", tc.got, tc.want)
			}
		})
	}

	if got, want := f.FileHdr.Application.String(), "HP 35670A"; got != want {
		t.Fatalf("invalid application: got=%q, want=%q", got, want)
	}
	if got, want := f.FileHdr.MeasStart.Format("2006-01-02 15:04"), "2013-02-13 09:08"; got != want {
		t.Fatalf("invalid measurement start: got=%q, want=%q", got, want)
	}
	if got, want := f.DataHdrs[0].DataType.String(), "Auto-power spectrum"; got != want {
		t.Fatalf("invalid data type: got=%q, want=%q", got, want)
	}
	if got, want := f.ChannelHdrs[0].Window.Type.String(), "Flat Top"; got != want {
		t.Fatalf("invalid window type: got=%q, want=%q", got, want)
	}
	if got, want := f.ScanStruct.ScanType.String(), "Scan"; got != want {
		t.Fatalf("invalid scan type: got=%q, want=%q", got, want)
	}
}

func TestDecodeNoYData(t *testing.T) {
	hdr := newTestHeader(2)
	buf := encodeTestFile(t, hdr, Vector{})

	f, err := NewDecoder(bytes.NewReader(buf)).Decode()
	if err != nil {
		t.Fatalf("could not decode SDF file: %+v", err)
	}
	if f.Data != nil {
		t.Fatalf("unexpected y-data: %v", f.Data)
	}
	if got, want := f.FileHdr.OffsetYData, int32(-1); got != want {
		t.Fatalf("invalid y-data offset: got=%d, want=%d", got, want)
	}
}

func TestDecodeComplex(t *testing.T) {
	hdr := newTestHeader(2)
	hdr.FileHdr.Application = AppHP35665A
	dh := &hdr.DataHdrs[0]
	dh.Domain = DomainTime
	dh.DataType = DataFreqResponse
	dh.YIsComplex = true
	dh.YDataType = NumDouble
	dh.Sampling.NumPoints = 8
	dh.Sampling.LastValidIndex = 7
	hdr.MeasHdr.FreqRange = &FreqRange{Start: 2, Stop: 5}
	hdr.VectorHdrs[0].ChannelRecord = [2]int16{0, 1}
	hdr.VectorHdrs[0].ChannelPower48x = [2]int16{48, -48}
	hdr.ChannelHdrs[0].Int2EngUnit = 0.5
	hdr.ChannelHdrs[1].Int2EngUnit = 0.25

	raw := Vector{Complex: true, Cmplx: make([]complex128, 8)}
	for i := range raw.Cmplx {
		raw.Cmplx[i] = complex(float64(i), -float64(i)/2)
	}

	f, err := NewDecoder(bytes.NewReader(encodeTestFile(t, hdr, raw))).Decode()
	if err != nil {
		t.Fatalf("could not decode SDF file: %+v", err)
	}

	// time domain: no window correction. (1/0.5)^1 * (1/0.25)^-1 = 0.5
	const corr = 0.5
	want := []complex128{
		corr * raw.Cmplx[2],
		corr * raw.Cmplx[3],
		corr * raw.Cmplx[4],
		corr * raw.Cmplx[5],
	}
	if !f.Data.Complex {
		t.Fatalf("invalid y-data kind: got real samples")
	}
	if diff := cmp.Diff(want, f.Data.Cmplx); diff != "" {
		t.Fatalf("invalid samples (-want +got):\n%s", diff)
	}
	if got, want := f.Data.At(1), corr*raw.Cmplx[3]; got != want {
		t.Fatalf("invalid sample: got=%v, want=%v", got, want)
	}
}

func TestDecodeError(t *testing.T) {
	for _, tc := range []struct {
		name  string
		patch func(p []byte) []byte
		as    func(error) bool
		want  string
	}{
		{
			name:  "empty",
			patch: func(p []byte) []byte { return nil },
			as:    errorAs[*InvalidContainerError],
			want:  `sdf: invalid file identifier (got="", want="B\x00")`,
		},
		{
			name: "bad-magic",
			patch: func(p []byte) []byte {
				p[0] = 'A'
				return p
			},
			as:   errorAs[*InvalidContainerError],
			want: `sdf: invalid file identifier (got="A\x00", want="B\x00")`,
		},
		{
			name:  "truncated-prefix",
			patch: func(p []byte) []byte { return p[:4] },
			as:    errorAs[*TruncatedRecordError],
			want:  `sdf: could not decode file header record at offset 2: sdf: truncated file header record: field "record prefix" needs 6 bytes at offset 0 (record size=2)`,
		},
		{
			name:  "truncated-file-hdr",
			patch: func(p []byte) []byte { return p[:40] },
			as:    errorAs[*TruncatedRecordError],
			want:  `sdf: could not decode file header record at offset 2: sdf: truncated file header record: field "record" needs 64 bytes at offset 0 (record size=38)`,
		},
		{
			name: "unexpected-file-hdr",
			patch: func(p []byte) []byte {
				put16(p, 2, int16(MeasHdrRecord))
				return p
			},
			as:   errorAs[*UnexpectedRecordTypeError],
			want: "sdf: unexpected record type at offset 2 (got=11, want=10 (file header))",
		},
		{
			name: "unsupported-revision",
			patch: func(p []byte) []byte {
				put16(p, 2+6, 4)
				return p
			},
			as:   errorAs[*UnsupportedRevisionError],
			want: "sdf: could not decode file header record at offset 2: sdf: unsupported SDF revision 4",
		},
		{
			name: "unknown-application",
			patch: func(p []byte) []byte {
				put16(p, 2+8, 5)
				return p
			},
			as:   errorAs[*UnknownEnumCodeError],
			want: "sdf: could not decode file header record at offset 2: sdf: unknown application code 5",
		},
		{
			name: "invalid-date",
			patch: func(p []byte) []byte {
				put16(p, 2+12, 1332)
				return p
			},
			want: "sdf: could not decode file header record at offset 2: sdf: invalid measurement start 2013-13-32 09:08",
		},
		{
			name: "meas-hdr-past-eof",
			patch: func(p []byte) []byte {
				put32(p, 66+2, 100000)
				return p
			},
			as:   errorAs[*TruncatedRecordError],
			want: `sdf: could not decode measurement header record at offset 66: sdf: truncated measurement header record: field "record" needs 100000 bytes at offset 0 (record size=8918)`,
		},
		{
			name: "meas-hdr-too-small",
			patch: func(p []byte) []byte {
				put32(p, 66+2, 4)
				return p
			},
			as:   errorAs[*RecordSizeMismatchError],
			want: "sdf: measurement header record size mismatch (declared=4, actual=6)",
		},
		{
			name: "truncated-meas-hdr",
			patch: func(p []byte) []byte {
				put32(p, 66+2, 100)
				return p
			},
			as:   errorAs[*TruncatedRecordError],
			want: `sdf: could not decode measurement header record at offset 66: sdf: truncated measurement header record: field "video bw" needs 4 bytes at offset 98 (record size=100)`,
		},
		{
			name: "unknown-domain",
			patch: func(p []byte) []byte {
				put16(p, 206+26, 7)
				return p
			},
			as:   errorAs[*UnknownEnumCodeError],
			want: "sdf: could not decode data header record at offset 206: sdf: unknown domain code 7",
		},
		{
			name: "unknown-window",
			patch: func(p []byte) []byte {
				put16(p, 358+192+64, 42)
				return p
			},
			as:   errorAs[*UnknownEnumCodeError],
			want: "sdf: could not decode channel header record at offset 550: sdf: unknown window type code 42",
		},
		{
			name: "missing-data-hdr-table",
			patch: func(p []byte) []byte {
				put32(p, 2+36, -1)
				return p
			},
			want: "sdf: invalid offset for 1 data header records (offset=-1)",
		},
		{
			name: "negative-count",
			patch: func(p []byte) []byte {
				put16(p, 2+28, -2)
				return p
			},
			want: "sdf: invalid number of channel header records (n=-2)",
		},
		{
			name: "unexpected-vector-hdr",
			patch: func(p []byte) []byte {
				put32(p, 2+40, 206)
				return p
			},
			as:   errorAs[*UnexpectedRecordTypeError],
			want: "sdf: unexpected record type at offset 206 (got=12, want=13 (vector header))",
		},
		{
			name: "unexpected-ydata",
			patch: func(p []byte) []byte {
				put32(p, 2+60, 742)
				return p
			},
			as:   errorAs[*UnexpectedRecordTypeError],
			want: "sdf: unexpected record type at offset 742 (got=15, want=17 (y-data))",
		},
		{
			name: "truncated-ydata",
			patch: func(p []byte) []byte {
				put16(p, 206+30, 3000)
				return p
			},
			as:   errorAs[*TruncatedVectorDataError],
			want: "sdf: could not extract y-data at offset 782: sdf: truncated y-data at offset 782 (got=2049 samples, want=3000)",
		},
		{
			name:  "truncated-file",
			patch: func(p []byte) []byte { return p[:len(p)-100] },
			as:    errorAs[*TruncatedVectorDataError],
			want:  "sdf: could not extract y-data at offset 782: sdf: truncated y-data at offset 782 (got=2024 samples, want=2049)",
		},
		{
			name:  "truncated-ydata-prefix",
			patch: func(p []byte) []byte { return p[:785] },
			as:    errorAs[*TruncatedRecordError],
			want:  `sdf: could not decode y-data record at offset 782: sdf: truncated y-data record: field "record prefix" needs 6 bytes at offset 0 (record size=3)`,
		},
		{
			name: "vector-index",
			patch: func(p []byte) []byte {
				put32(p, 206+60, 1)
				return p
			},
			as:   errorAs[*IndexOutOfRangeError],
			want: "sdf: could not extract y-data at offset 782: sdf: vector header index 1 out of range [0, 1)",
		},
		{
			name: "channel-index",
			patch: func(p []byte) []byte {
				put16(p, 340+10, 5)
				return p
			},
			as:   errorAs[*IndexOutOfRangeError],
			want: "sdf: could not extract y-data at offset 782: sdf: channel header index 5 out of range [0, 2)",
		},
		{
			name: "freq-range",
			patch: func(p []byte) []byte {
				put16(p, 66+26, 3000)
				return p
			},
			as:   errorAs[*IndexOutOfRangeError],
			want: "sdf: could not extract y-data at offset 782: sdf: stop freq index 3000 out of range [0, 2049)",
		},
		{
			name: "no-data-hdr",
			patch: func(p []byte) []byte {
				put16(p, 2+24, 0)
				return p
			},
			as:   errorAs[*IndexOutOfRangeError],
			want: "sdf: could not extract y-data at offset 782: sdf: data header index 0 out of range [0, 0)",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf := encodeTestFile(t, newTestHeader(2), newTestSamples(nSamples))
			buf = tc.patch(buf)

			f, err := NewDecoder(bytes.NewReader(buf)).Decode()
			if err == nil {
				t.Fatalf("expected an error")
			}
			if f != nil {
				t.Fatalf("unexpected partial result")
			}
			if got, want := err.Error(), tc.want; got != want {
				t.Fatalf("invalid error:\ngot= %v\nwant=%v", got, want)
			}
			if tc.as != nil && !tc.as(err) {
				t.Fatalf("invalid error type %T", err)
			}
		})
	}
}

// sizelessReader hides the Size method of the underlying reader.
type sizelessReader struct {
	r io.ReaderAt
}

func (r sizelessReader) ReadAt(p []byte, off int64) (int, error) {
	return r.r.ReadAt(p, off)
}

func TestDecodeSizelessReader(t *testing.T) {
	for _, tc := range []struct {
		name  string
		patch func(p []byte) []byte
		want  string
	}{
		{
			name:  "valid",
			patch: func(p []byte) []byte { return p },
		},
		{
			name: "huge-meas-hdr",
			patch: func(p []byte) []byte {
				put32(p, 66+2, math.MaxInt32)
				return p
			},
			want: `sdf: could not decode measurement header record at offset 66: sdf: truncated measurement header record: field "record" needs 2147483647 bytes at offset 0 (record size=8918)`,
		},
		{
			name:  "truncated-file",
			patch: func(p []byte) []byte { return p[:len(p)-100] },
			want:  "sdf: could not extract y-data at offset 782: sdf: truncated y-data at offset 782 (got=2024 samples, want=2049)",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf := encodeTestFile(t, newTestHeader(2), newTestSamples(nSamples))
			buf = tc.patch(buf)

			f, err := NewDecoder(sizelessReader{bytes.NewReader(buf)}).Decode()
			if tc.want == "" {
				if err != nil {
					t.Fatalf("could not decode: %+v", err)
				}
				if diff := cmp.Diff(*newTestHeader(2), f.Header, cmpopts.EquateEmpty()); diff != "" {
					t.Fatalf("invalid header (-want +got):\n%s", diff)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected an error")
			}
			if got, want := err.Error(), tc.want; got != want {
				t.Fatalf("invalid error:\ngot= %v\nwant=%v", got, want)
			}
		})
	}
}

func TestDecodeTableStride(t *testing.T) {
	hdr := newTestHeader(2)
	vh := hdr.VectorHdrs[0]
	hdr.VectorHdrs = []VectorHeader{vh, vh, vh}
	buf := encodeTestFile(t, hdr, newTestSamples(nSamples))

	// vector headers #0 and #1 are 18 and 24 bytes long: header #2 sits
	// at 2*24 bytes from the beginning of the table.
	const (
		beg  = 340
		step = 24 - vectorHdrSize
	)
	out := append([]byte(nil), buf[:beg+vectorHdrSize]...)
	rec := append(append([]byte(nil), buf[beg+vectorHdrSize:beg+2*vectorHdrSize]...), make([]byte, step)...)
	put32(rec, 2, 24)
	out = append(out, rec...)
	out = append(out, make([]byte, 2*24-(vectorHdrSize+24))...)
	out = append(out, buf[beg+2*vectorHdrSize:]...)
	for _, pos := range []int{2 + 44, 2 + 52, 2 + 60} {
		v := int32(binary.BigEndian.Uint32(out[pos:]))
		put32(out, pos, v+2*step)
	}

	f, err := NewDecoder(bytes.NewReader(out)).Decode()
	if err != nil {
		t.Fatalf("could not decode: %+v", err)
	}

	if got, want := len(f.VectorHdrs), 3; got != want {
		t.Fatalf("invalid number of vector headers: got=%d, want=%d", got, want)
	}
	for i, want := range []int32{vectorHdrSize, 24, vectorHdrSize} {
		if got := f.VectorHdrs[i].RecordSize; got != want {
			t.Fatalf("invalid vector header #%d size: got=%d, want=%d", i, got, want)
		}
	}
	if got, want := f.Data.Len(), nBins; got != want {
		t.Fatalf("invalid number of samples: got=%d, want=%d", got, want)
	}
}

func errorAs[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

func TestReadFile(t *testing.T) {
	tmp, err := os.MkdirTemp("", "sdfascii-sdf-")
	if err != nil {
		t.Fatalf("could not create tmp dir: %+v", err)
	}
	defer os.RemoveAll(tmp)

	fname := filepath.Join(tmp, "SDF3KHZ.DAT")
	err = os.WriteFile(fname, encodeTestFile(t, newTestHeader(2), newTestSamples(nSamples)), 0644)
	if err != nil {
		t.Fatalf("could not create SDF file: %+v", err)
	}

	out := new(strings.Builder)
	f, err := ReadFile(fname, WithLogger(log.New(out, "sdf: ", 0)))
	if err != nil {
		t.Fatalf("could not read SDF file: %+v", err)
	}
	if got, want := f.Data.Len(), nBins; got != want {
		t.Fatalf("invalid number of samples: got=%d, want=%d", got, want)
	}
	if !strings.Contains(out.String(), "y-data record: offset=782 size=8202") {
		t.Fatalf("invalid log output:\n%s", out.String())
	}

	_, err = ReadFile(filepath.Join(tmp, "not-there.dat"))
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("invalid error: %+v", err)
	}

	empty := filepath.Join(tmp, "empty.dat")
	err = os.WriteFile(empty, nil, 0644)
	if err != nil {
		t.Fatalf("could not create empty file: %+v", err)
	}
	_, err = ReadFile(empty)
	var ierr *InvalidContainerError
	if !errors.As(err, &ierr) {
		t.Fatalf("invalid error: %+v", err)
	}
}
