// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestEnumLabels(t *testing.T) {
	for _, tc := range []struct {
		v    fmt.Stringer
		want string
	}{
		{AppHP35670A, "HP 35670A"},
		{Application(-4), "HP 3562A, HP 3563A"},
		{Application(5), "application(5)"},
		{AverageType(2), "RMS Exponential"},
		{MeasType(3), "FFT measurement"},
		{RealTime(1), "Continuous"},
		{Detection(3), "Rose-and-fell detection"},
		{DomainFrequency, "Frequency domain"},
		{DomainChannel, "Channel"},
		{DataAutoPowerSpec, "Auto-power spectrum"},
		{DataType(16), "Cumulative density function"},
		{DataType(67), "data type(67)"},
		{DataType(68), "IQ measured time"},
		{XResolutionType(2), "Arbitrary, one per file"},
		{NumDouble, "double"},
		{WindowFlatTop, "Flat Top"},
		{CorrectionNarrowBand, "Narrow band correction applied"},
		{Weight(1), "A-weighting"},
		{Direction(-1), "-X"},
		{Direction(1), "X"},
		{CouplingAC, "AC"},
		{ChannelAttribute(-99), "Unknown attribute"},
		{ScanDepth, "Depth"},
		{ScanType(1), "Scan"},
		{ScanVarType(3), "Float"},
		{YDataRecord, "y-data"},
		{RecordType(42), "record-type(42)"},
	} {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.v.String(); got != tc.want {
				t.Fatalf("invalid label: got=%q, want=%q", got, tc.want)
			}
		})
	}
}

func TestEnumJSON(t *testing.T) {
	v := struct {
		App    Application `json:"app"`
		Domain Domain      `json:"domain"`
	}{AppHP35670A, DomainTime}

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("could not marshal enums: %+v", err)
	}
	if got, want := string(raw), `{"app":"HP 35670A","domain":"Time domain"}`; got != want {
		t.Fatalf("invalid JSON:\ngot= %s\nwant=%s", got, want)
	}
}
