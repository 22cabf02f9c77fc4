// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sdf decodes files in the Standard Data Format (SDF) produced
// by HP/Agilent dynamic signal analyzers.
//
// An SDF file is a big-endian container: a 2-byte identifier followed by
// type-tagged, length-prefixed records. The file header gives the number
// and the absolute offsets of the data, vector, channel and scan-struct
// header records, and the offset of the y-data record.
// Three revisions of the format exist; revision 3 specific fields are
// not decoded.
package sdf // import "github.com/go-lpc/sdfascii/sdf"

import (
	"time"
)

// Revision is the SDF format revision of a file.
type Revision int16

func (rev Revision) valid() bool { return 1 <= rev && rev <= 3 }

// File is a decoded SDF file: its header graph and the calibrated samples
// of its first trace, if the file holds y-data.
type File struct {
	Header
	Data *Vector `json:"data,omitempty"`
}

// Header is the graph of all the header records of an SDF file.
// Records refer to each other through indices into the DataHdrs,
// VectorHdrs and ChannelHdrs slices.
type Header struct {
	FileHdr     FileHeader      `json:"file_hdr"`
	MeasHdr     MeasHeader      `json:"meas_hdr"`
	DataHdrs    []DataHeader    `json:"data_hdr"`
	VectorHdrs  []VectorHeader  `json:"vector_hdr"`
	ChannelHdrs []ChannelHeader `json:"channel_hdr"`
	ScanStruct  *ScanStruct     `json:"scan_struct,omitempty"`

	// Undecoded lists the record fields present in the file that were
	// not decoded (revision 3 extensions).
	Undecoded []string `json:"undecoded,omitempty"`
}

// FileHeader is the SDF_FILE_HDR record.
type FileHeader struct {
	RecordSize  int32       `json:"record_size"`
	Revision    Revision    `json:"sdf_revision"`
	Application Application `json:"application"`
	MeasStart   time.Time   `json:"measurement_start_datetime"`
	AppVersion  string      `json:"application_version"`

	NumDataHdrs    int16 `json:"num_data_hdr_records"`
	NumVectorHdrs  int16 `json:"num_vector_hdr_records"`
	NumChannelHdrs int16 `json:"num_channel_hdr_records"`
	NumUniques     int16 `json:"num_unique_records"`
	NumScanStructs int16 `json:"num_scan_struct_records"`
	NumXData       int16 `json:"num_xdata_records"`

	// Absolute offsets of the record tables. -1 means absent.
	OffsetDataHdr    int32 `json:"offset_data_hdr_record"`
	OffsetVectorHdr  int32 `json:"offset_vector_record"`
	OffsetChannelHdr int32 `json:"offset_channel_record"`
	OffsetUnique     int32 `json:"offset_unique_record"`
	OffsetScanStruct int32 `json:"offset_scan_struct_record"`
	OffsetXData      int32 `json:"offset_xdata_record"`
	OffsetYData      int32 `json:"offset_ydata_record"`
}

// MeasHeader is the SDF_MEAS_HDR record.
type MeasHeader struct {
	RecordSize   int32 `json:"record_size"`
	OffsetUnique int32 `json:"offset_unique_record"`
	BlockSize    int32 `json:"block_size"`
	ZoomModeOn   bool  `json:"zoom_mode_on"`

	// FreqRange is only present in revisions 2 and 3.
	FreqRange *FreqRange `json:"freq_range,omitempty"`

	AverageType AverageType `json:"average_type"`
	AverageNum  int32       `json:"average_num"`
	PctOverlap  float32     `json:"pct_overlap"`
	Title       string      `json:"meas_title"`
	VideoBW     float32     `json:"video_bw"`
	CenterFreq  float64     `json:"center_freq"`
	SpanFreq    float64     `json:"span_freq"`
	SweepFreq   float64     `json:"sweep_freq"`
	MeasType    MeasType    `json:"meas_type"`
	RealTime    RealTime    `json:"real_time"`
	Detection   Detection   `json:"detection"`
	SweepTime   float64     `json:"sweep_time"`
}

// FreqRange is the inclusive range of valid frequency bins of a trace.
type FreqRange struct {
	Start int16 `json:"start_freq_index"`
	Stop  int16 `json:"stop_freq_index"`
}

// DataHeader is the SDF_DATA_HDR record.
type DataHeader struct {
	RecordSize    int32           `json:"record_size"`
	OffsetUnique  int32           `json:"offset_unique_record"`
	Title         string          `json:"data_title"`
	Domain        Domain          `json:"domain"`
	DataType      DataType        `json:"data_type"`
	XResolution   XResolutionType `json:"x_resolution_type"`
	XDataType     NumType         `json:"x_data_type"`
	XPerPoint     int16           `json:"x_per_point"`
	YDataType     NumType         `json:"y_data_type"`
	YPerPoint     int16           `json:"y_per_point"`
	YIsComplex    bool            `json:"y_is_complex"`
	YIsNormalized bool            `json:"y_is_normalized"`
	YIsPowerData  bool            `json:"y_is_power_data"`
	YIsValid      bool            `json:"y_is_valid"`

	FirstVectorRecord int32 `json:"first_vector_record_num"`
	TotalRows         int16 `json:"total_rows"`
	TotalCols         int16 `json:"total_cols"`

	XUnit      Unit `json:"xunit"`
	YUnitValid bool `json:"y_unit_valid"`
	YUnit      Unit `json:"yunit"`

	// Stored as float32 in revision 1 files, float64 afterwards.
	AbscissaFirstX float64 `json:"abscissa_first_x"`
	AbscissaDeltaX float64 `json:"abscissa_delta_x"`

	// Sampling is only present from revision 2 onwards.
	Sampling *Sampling `json:"sampling,omitempty"`
}

// Sampling holds the data header fields introduced by revision 2.
type Sampling struct {
	NumPoints      int16 `json:"num_points"`
	LastValidIndex int16 `json:"last_valid_index"`
	ScanData       bool  `json:"scan_data"`
	WindowApplied  bool  `json:"window_applied"`
}

// Channel roles in a vector header.
const (
	Response = 0
	Exciter  = 1
)

// VectorHeader is the SDF_VECTOR_HDR record.
type VectorHeader struct {
	RecordSize   int32 `json:"record_size"`
	OffsetUnique int32 `json:"offset_unique_record"`

	// ChannelRecord holds the indices of the response and exciter
	// channel headers. -1 means no channel.
	ChannelRecord [2]int16 `json:"channel_record"`

	// ChannelPower48x holds 48 times the power to which each channel
	// contributes to the trace.
	ChannelPower48x [2]int16 `json:"channel_power_48x"`
}

// ChannelHeader is the SDF_CHANNEL_HDR record.
type ChannelHeader struct {
	RecordSize     int32            `json:"record_size"`
	OffsetUnique   int32            `json:"offset_unique_record"`
	Label          string           `json:"channel_label"`
	ModuleID       string           `json:"module_id"`
	SerialNumber   string           `json:"serial_number"`
	Window         Window           `json:"window"`
	Weight         Weight           `json:"weight"`
	Delay          float32          `json:"delay"`
	Range          float32          `json:"range"`
	Direction      Direction        `json:"direction"`
	PointNum       int16            `json:"point_num"`
	Coupling       Coupling         `json:"coupling"`
	Overloaded     bool             `json:"overloaded"`
	IntLabel       string           `json:"int_label"`
	EngUnit        Unit             `json:"eng_unit"`
	Int2EngUnit    float32          `json:"int_2_eng_unit"`
	InputImpedance float32          `json:"input_impedance"`
	Attribute      ChannelAttribute `json:"channel_attribute"`
	AliasProtected bool             `json:"alias_protected"`
	DigitalChannel bool             `json:"digital_channel"`
	ChannelScale   float64          `json:"channel_scale"`
	ChannelOffset  float64          `json:"channel_offset"`
	GateBegin      float64          `json:"gate_begin"`
	GateEnd        float64          `json:"gate_end"`
	UserDelay      float64          `json:"user_delay"`
}

// ScanStruct is the SDF_SCAN_STRUCT record.
type ScanStruct struct {
	RecordSize    int32       `json:"record_size"`
	NumScans      int16       `json:"num_of_scans"`
	LastScanIndex int16       `json:"last_scan_index"`
	ScanType      ScanType    `json:"scan_type"`
	ScanVarType   ScanVarType `json:"scan_var_type"`
	ScanUnit      Unit        `json:"scan_unit"`
}

// Unit describes a physical unit: a label, a scale factor and the
// exponents of the SI base dimensions.
type Unit struct {
	Label            string  `json:"label"`
	Factor           float32 `json:"factor"`
	Mass             int8    `json:"mass"`
	Length           int8    `json:"length"`
	Time             int8    `json:"time"`
	Current          int8    `json:"current"`
	Temperature      int8    `json:"temperature"`
	LuminalIntensity int8    `json:"luminal_intensity"`
	Mole             int8    `json:"mole"`
	PlaneAngle       int8    `json:"plane_angle"`
}

// Window describes the window function applied to a channel and its
// correction coefficients.
type Window struct {
	Type           WindowType     `json:"window_type"`
	CorrectionMode CorrectionMode `json:"correction_mode"`
	BW             float32        `json:"bw"`
	TimeConst      float32        `json:"time_const"`
	Trunc          float32        `json:"trunc"`
	WideBandCorr   float32        `json:"wide_band_corr"`
	NarrowBandCorr float32        `json:"narrow_band_corr"`
}
