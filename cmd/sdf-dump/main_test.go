// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-lpc/sdfascii/internal/sdftest"
)

const dumpFmt = `=== %s ===
Revision:             2
Application: HP 35665A
Start:       2013-02-13 09:08:00
Title:       %s
Domain:      Frequency domain
Data type:   Auto-power spectrum
Channels:             1
Correction:  4
Points:               5
Abscissa:    [0, 32] Hz
Amplitude:   min=0 max=4 mean=2
`

func TestProcess(t *testing.T) {
	tmp, err := os.MkdirTemp("", "sdf-dump-")
	if err != nil {
		t.Fatalf("could not create tmp dir: %+v", err)
	}
	defer os.RemoveAll(tmp)

	var (
		titles = []string{"trace-1", "trace-2", "trace-3"}
		fnames = make([]string, len(titles))
		want   = new(strings.Builder)
	)
	for i, title := range titles {
		fnames[i] = filepath.Join(tmp, title+".dat")
		err := sdftest.WriteFile(fnames[i], title, 5)
		if err != nil {
			t.Fatalf("could not create SDF file: %+v", err)
		}
	}

	// files are displayed in the order of the command line.
	order := []string{fnames[2], fnames[0], fnames[1]}
	for _, fname := range order {
		title := strings.TrimSuffix(filepath.Base(fname), ".dat")
		fmt.Fprintf(want, dumpFmt, fname, title)
	}

	out := new(strings.Builder)
	err = process(out, order)
	if err != nil {
		t.Fatalf("could not dump files: %+v", err)
	}

	if got, want := out.String(), want.String(); got != want {
		t.Fatalf("invalid sdf-dump output:\ngot:\n%s\nwant:\n%s\n", got, want)
	}
}

func TestProcessError(t *testing.T) {
	tmp, err := os.MkdirTemp("", "sdf-dump-")
	if err != nil {
		t.Fatalf("could not create tmp dir: %+v", err)
	}
	defer os.RemoveAll(tmp)

	var (
		good = filepath.Join(tmp, "good.dat")
		bad  = filepath.Join(tmp, "bad.dat")
	)
	err = sdftest.WriteFile(good, "good", 5)
	if err != nil {
		t.Fatalf("could not create SDF file: %+v", err)
	}
	err = os.WriteFile(bad, []byte("B\x00\x00\x0a"), 0644)
	if err != nil {
		t.Fatalf("could not create invalid SDF file: %+v", err)
	}

	out := new(strings.Builder)
	err = process(out, []string{good, bad})
	if err == nil {
		t.Fatalf("expected an error")
	}

	want := fmt.Sprintf("sdf: could not decode %q: sdf: could not decode file header record at offset 2: sdf: truncated file header record: field \"record prefix\" needs 6 bytes at offset 0 (record size=2)", bad)
	if got := err.Error(); got != want {
		t.Fatalf("invalid error:\ngot= %v\nwant=%v", got, want)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}
