// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import (
	"bytes"
	"encoding/binary"
	"math"
)

// rbuf reads big-endian fields at fixed offsets of a record.
// The first error is sticky: once set, all reads return zero values.
type rbuf struct {
	rec RecordType
	p   []byte
	err error
}

func newRBuf(rec RecordType, p []byte) *rbuf {
	return &rbuf{rec: rec, p: p}
}

func (r *rbuf) load(field string, off, n int) []byte {
	if r.err != nil {
		return nil
	}
	if off < 0 || off+n > len(r.p) {
		r.err = &TruncatedRecordError{
			Record: r.rec,
			Field:  field,
			Offset: off,
			Need:   n,
			Have:   len(r.p),
		}
		return nil
	}
	return r.p[off : off+n]
}

func (r *rbuf) i8(field string, off int) int8 {
	p := r.load(field, off, 1)
	if p == nil {
		return 0
	}
	return int8(p[0])
}

func (r *rbuf) i16(field string, off int) int16 {
	p := r.load(field, off, 2)
	if p == nil {
		return 0
	}
	return int16(binary.BigEndian.Uint16(p))
}

func (r *rbuf) i32(field string, off int) int32 {
	p := r.load(field, off, 4)
	if p == nil {
		return 0
	}
	return int32(binary.BigEndian.Uint32(p))
}

func (r *rbuf) f32(field string, off int) float32 {
	p := r.load(field, off, 4)
	if p == nil {
		return 0
	}
	return math.Float32frombits(binary.BigEndian.Uint32(p))
}

func (r *rbuf) f64(field string, off int) float64 {
	p := r.load(field, off, 8)
	if p == nil {
		return 0
	}
	return math.Float64frombits(binary.BigEndian.Uint64(p))
}

// bool reads a 16-bit flag.
func (r *rbuf) bool(field string, off int) bool {
	return r.i16(field, off) != 0
}

func (r *rbuf) str(field string, off, n int) string {
	p := r.load(field, off, n)
	if p == nil {
		return ""
	}
	return cstring(p)
}

// enum reads a 16-bit code and checks it against tbl.
func (r *rbuf) enum(tbl *enumTable, off int) int16 {
	v := r.i16(tbl.field, off)
	if r.err != nil {
		return 0
	}
	r.err = tbl.decode(v)
	return v
}

func (r *rbuf) unit(field string, off int) Unit {
	p := r.load(field, off, unitSize)
	if p == nil {
		return Unit{}
	}
	u, err := DecodeUnit(p)
	if err != nil {
		r.err = err
	}
	return u
}

func (r *rbuf) window(field string, off int) Window {
	p := r.load(field, off, windowSize)
	if p == nil {
		return Window{}
	}
	w, err := DecodeWindow(p)
	if err != nil {
		r.err = err
	}
	return w
}

// cstring decodes p as UTF-8 text cut at its first NUL byte.
// Each invalid byte is replaced with U+FFFD.
func cstring(p []byte) string {
	if i := bytes.IndexByte(p, 0); i >= 0 {
		p = p[:i]
	}
	return string([]rune(string(p)))
}
