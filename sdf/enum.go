// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import (
	"strconv"
)

// enumTable maps the codes of one SDF coded field to their labels.
// Tables are never modified after package initialization.
type enumTable struct {
	field  string
	labels map[int16]string
}

func (tbl *enumTable) decode(code int16) error {
	if _, ok := tbl.labels[code]; !ok {
		return &UnknownEnumCodeError{Field: tbl.field, Code: code}
	}
	return nil
}

func (tbl *enumTable) label(code int16) string {
	if v, ok := tbl.labels[code]; ok {
		return v
	}
	return tbl.field + "(" + strconv.Itoa(int(code)) + ")"
}

// Application is the instrument or program that produced a file.
type Application int16

const (
	AppUnknown  Application = -99
	AppHPVista  Application = -1
	AppHP35665A Application = 2
	AppHP35670A Application = 10
)

// AverageType is the averaging mode of a measurement.
type AverageType int16

// MeasType is the kind of measurement.
type MeasType int16

// RealTime tells whether a measurement was continuous.
type RealTime int16

// Detection is the detection mode of a swept measurement.
type Detection int16

// Domain is the domain of a data trace.
type Domain int16

const (
	DomainUnknown   Domain = -99
	DomainFrequency Domain = 0
	DomainTime      Domain = 1
	DomainAmplitude Domain = 2
	DomainRPM       Domain = 3
	DomainOrder     Domain = 4
	DomainChannel   Domain = 5
	DomainOctave    Domain = 6
)

// DataType is the kind of data held by a trace.
type DataType int16

const (
	DataTime          DataType = 0
	DataLinearSpec    DataType = 1
	DataAutoPowerSpec DataType = 2
	DataFreqResponse  DataType = 4
)

// XResolutionType describes the spacing of the abscissa.
type XResolutionType int16

// NumType is the storage type of x or y values.
type NumType int16

const (
	NumShort  NumType = 1
	NumLong   NumType = 2
	NumFloat  NumType = 3
	NumDouble NumType = 4
)

// WindowType is the window function applied to a channel.
type WindowType int16

const (
	WindowNone    WindowType = 0
	WindowHanning WindowType = 1
	WindowFlatTop WindowType = 2
	WindowUniform WindowType = 3
)

// CorrectionMode is the window correction applied to a channel.
type CorrectionMode int16

const (
	CorrectionNone       CorrectionMode = 0
	CorrectionNarrowBand CorrectionMode = 1
	CorrectionWideBand   CorrectionMode = 2
)

// Weight is the frequency weighting of a channel.
type Weight int16

// Direction is the measurement direction of a channel.
type Direction int16

// Coupling is the input coupling of a channel.
type Coupling int16

const (
	CouplingDC Coupling = 0
	CouplingAC Coupling = 1
)

// ChannelAttribute is the role attribute of a channel.
type ChannelAttribute int16

// ScanType is the kind of scan of a scan structure.
//
// The HP documentation gives 0=Depth and 1=Scan; files written by the
// HP 35670A have been seen to use 1 for depth scans. The documented
// mapping is used.
type ScanType int16

const (
	ScanDepth ScanType = 0
	ScanScan  ScanType = 1
)

// ScanVarType is the storage type of the scan variable.
type ScanVarType int16

var (
	applications = enumTable{
		field: "application",
		labels: map[int16]string{
			-1:  "HP VISTA",
			-2:  "HP SINE",
			-3:  "HP 35660A",
			-4:  "HP 3562A, HP 3563A",
			-5:  "HP 3588A",
			-6:  "HP 3589A",
			-99: "Unknown",
			1:   "HP 3566A, HP 3567A",
			2:   "HP 35665A",
			3:   "HP 3560A",
			4:   "HP 89410A, HP 89440A",
			7:   "HP 35635R",
			8:   "HP 35654A-S1A",
			9:   "HP 3569A",
			10:  "HP 35670A",
			11:  "HP 3587S",
		},
	}

	averageTypes = enumTable{
		field: "average type",
		labels: map[int16]string{
			0: "None",
			1: "RMS",
			2: "RMS Exponential",
			3: "Vector",
			4: "Vector Exponential",
			5: "Continuous Peak Hold",
			6: "Peak",
		},
	}

	measTypes = enumTable{
		field: "measurement type",
		labels: map[int16]string{
			-99: "Unknown measurement",
			0:   "Spectrum measurement",
			1:   "Network measurement",
			2:   "Swept measurement",
			3:   "FFT measurement",
			4:   "Orders measurement",
			5:   "Octave measurement",
			6:   "Capture measurement",
			7:   "Correlation measurement",
			8:   "Histogram measurement",
			9:   "Swept network measurement",
			10:  "FFT network measurement",
		},
	}

	realTimes = enumTable{
		field: "real time",
		labels: map[int16]string{
			0: "Not continuous",
			1: "Continuous",
		},
	}

	detections = enumTable{
		field: "detection",
		labels: map[int16]string{
			-99: "Unknown detection type",
			0:   "Sample detection",
			1:   "Positive peak detection",
			2:   "Negative peak detection",
			3:   "Rose-and-fell detection",
		},
	}

	domains = enumTable{
		field: "domain",
		labels: map[int16]string{
			-99: "Unknown",
			0:   "Frequency domain",
			1:   "Time domain",
			2:   "Amplitude domain",
			3:   "RPM",
			4:   "Order",
			5:   "Channel",
			6:   "Octave",
		},
	}

	dataTypes = enumTable{
		field: "data type",
		labels: map[int16]string{
			-99: "Unknown",
			0:   "Time",
			1:   "Linear spectrum",
			2:   "Auto-power spectrum",
			3:   "Cross-power spectrum",
			4:   "Frequency response",
			5:   "Auto-correlation",
			6:   "Cross-correlation",
			7:   "Impulse response",
			8:   "Ordinary coherence",
			9:   "Partial coherence",
			10:  "Multiple coherence",
			11:  "Full octave",
			12:  "Third octave",
			13:  "Convolution",
			14:  "Histogram",
			15:  "Probability density function",
			16:  "Cumulative density function",
			17:  "Power spectrum order tracking",
			18:  "Composite power tracking",
			19:  "Phase order tracking",
			20:  "RPM spectral",
			21:  "Order ratio",
			22:  "Orbit",
			23:  "HP 35650 series calibration",
			24:  "Sine rms pwr data",
			25:  "Sine variance data",
			26:  "Sine range data",
			27:  "Sine settle time data",
			28:  "Sine integ time data",
			29:  "Sine source data",
			30:  "Sine overload data",
			31:  "Sine linear data",
			32:  "Synthesis",
			33:  "Curve fit weighting function",
			34:  "Frequency corrections (for capture)",
			35:  "All pass time data",
			36:  "Norm reference data",
			37:  "tachometer data",
			38:  "limit line data",
			39:  "twelfth octave data",
			40:  "S11 data",
			41:  "S21 data",
			42:  "S12 data",
			43:  "S22 data",
			44:  "PSD data",
			45:  "decimated time data",
			46:  "overload data",
			47:  "compressed time data",
			48:  "external trigger data",
			49:  "pressure data",
			50:  "intensity data",
			51:  "PI index data",
			52:  "velocity data",
			53:  "PV index data",
			54:  "sound power data",
			55:  "field indicator data",
			56:  "partial power data",
			57:  "Ln 1 data",
			58:  "Ln 10 data",
			59:  "Ln 50 data",
			60:  "Ln 90 data",
			61:  "Ln 99 data",
			62:  "Ln user data",
			63:  "T20 data",
			64:  "T30 data",
			65:  "RT60 data",
			66:  "average count data",
			68:  "IQ measured time",
			69:  "IQ measured spectrum",
			70:  "IQ reference time",
			71:  "IQ reference spectrum",
			72:  "IQ error magnitude",
			73:  "IQ error phase",
			74:  "IQ error vector time",
			75:  "IQ error vector spectrum",
			76:  "symbol table data",
		},
	}

	xResolutionTypes = enumTable{
		field: "x resolution type",
		labels: map[int16]string{
			0: "Linear",
			1: "Logarithmic",
			2: "Arbitrary, one per file",
			3: "Arbitrary, one per data type",
			4: "Arbitrary, one per trace",
		},
	}

	numTypes = enumTable{
		field: "numeric type",
		labels: map[int16]string{
			1: "short",
			2: "long",
			3: "float",
			4: "double",
		},
	}

	windowTypes = enumTable{
		field: "window type",
		labels: map[int16]string{
			0:  "Window not applied",
			1:  "Hanning",
			2:  "Flat Top",
			3:  "Uniform",
			4:  "Force",
			5:  "Response",
			6:  "user-defined",
			7:  "Hamming",
			8:  "P301",
			9:  "P310",
			10: "Kaiser-Bessel",
			11: "Harris",
			12: "Blackman",
			13: "Resolution filter",
			14: "Correlation Lead Lag",
			15: "Correlation Lag",
			16: "Gated",
			17: "P400",
		},
	}

	correctionModes = enumTable{
		field: "correction mode",
		labels: map[int16]string{
			0: "Correction not applied",
			1: "Narrow band correction applied",
			2: "Wide band correction applied",
		},
	}

	weights = enumTable{
		field: "weight",
		labels: map[int16]string{
			0: "No weighting",
			1: "A-weighting",
			2: "B-weighting",
			3: "C-weighting",
		},
	}

	directions = enumTable{
		field: "direction",
		labels: map[int16]string{
			-9: "-TZ",
			-8: "-TY",
			-7: "-TX",
			-3: "-Z",
			-2: "-Y",
			-1: "-X",
			0:  "No direction specified",
			1:  "X",
			2:  "Y",
			3:  "Z",
			4:  "Radial",
			5:  "Tangential, theta angle",
			6:  "Tangential, phi angle",
			7:  "TX",
			8:  "TY",
			9:  "TZ",
		},
	}

	couplings = enumTable{
		field: "coupling",
		labels: map[int16]string{
			0: "DC",
			1: "AC",
		},
	}

	channelAttributes = enumTable{
		field: "channel attribute",
		labels: map[int16]string{
			-99: "Unknown attribute",
			0:   "No attribute",
			1:   "Tach attribute",
			2:   "Reference attribute",
			3:   "Tach and reference attribute",
			4:   "Clockwise attribute",
		},
	}

	scanTypes = enumTable{
		field: "scan type",
		labels: map[int16]string{
			0: "Depth",
			1: "Scan",
		},
	}

	scanVarTypes = enumTable{
		field: "scan var type",
		labels: map[int16]string{
			1: "Short",
			2: "Long",
			3: "Float",
			4: "Double",
		},
	}
)

func (v Application) String() string      { return applications.label(int16(v)) }
func (v AverageType) String() string      { return averageTypes.label(int16(v)) }
func (v MeasType) String() string         { return measTypes.label(int16(v)) }
func (v RealTime) String() string         { return realTimes.label(int16(v)) }
func (v Detection) String() string        { return detections.label(int16(v)) }
func (v Domain) String() string           { return domains.label(int16(v)) }
func (v DataType) String() string         { return dataTypes.label(int16(v)) }
func (v XResolutionType) String() string  { return xResolutionTypes.label(int16(v)) }
func (v NumType) String() string          { return numTypes.label(int16(v)) }
func (v WindowType) String() string       { return windowTypes.label(int16(v)) }
func (v CorrectionMode) String() string   { return correctionModes.label(int16(v)) }
func (v Weight) String() string           { return weights.label(int16(v)) }
func (v Direction) String() string        { return directions.label(int16(v)) }
func (v Coupling) String() string         { return couplings.label(int16(v)) }
func (v ChannelAttribute) String() string { return channelAttributes.label(int16(v)) }
func (v ScanType) String() string         { return scanTypes.label(int16(v)) }
func (v ScanVarType) String() string      { return scanVarTypes.label(int16(v)) }

// Coded fields render as their labels in JSON and other text encodings.

func (v Application) MarshalText() ([]byte, error)      { return []byte(v.String()), nil }
func (v AverageType) MarshalText() ([]byte, error)      { return []byte(v.String()), nil }
func (v MeasType) MarshalText() ([]byte, error)         { return []byte(v.String()), nil }
func (v RealTime) MarshalText() ([]byte, error)         { return []byte(v.String()), nil }
func (v Detection) MarshalText() ([]byte, error)        { return []byte(v.String()), nil }
func (v Domain) MarshalText() ([]byte, error)           { return []byte(v.String()), nil }
func (v DataType) MarshalText() ([]byte, error)         { return []byte(v.String()), nil }
func (v XResolutionType) MarshalText() ([]byte, error)  { return []byte(v.String()), nil }
func (v NumType) MarshalText() ([]byte, error)          { return []byte(v.String()), nil }
func (v WindowType) MarshalText() ([]byte, error)       { return []byte(v.String()), nil }
func (v CorrectionMode) MarshalText() ([]byte, error)   { return []byte(v.String()), nil }
func (v Weight) MarshalText() ([]byte, error)           { return []byte(v.String()), nil }
func (v Direction) MarshalText() ([]byte, error)        { return []byte(v.String()), nil }
func (v Coupling) MarshalText() ([]byte, error)         { return []byte(v.String()), nil }
func (v ChannelAttribute) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
func (v ScanType) MarshalText() ([]byte, error)         { return []byte(v.String()), nil }
func (v ScanVarType) MarshalText() ([]byte, error)      { return []byte(v.String()), nil }
