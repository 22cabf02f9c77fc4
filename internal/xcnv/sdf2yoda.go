// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"fmt"
	"io"

	"github.com/go-lpc/sdfascii/sdf"
)

// SDF2YODA writes the trace of f to w as a YODA scatter.
func SDF2YODA(w io.Writer, f *sdf.File) error {
	s2d, err := Trace(f)
	if err != nil {
		return err
	}

	raw, err := s2d.MarshalYODA()
	if err != nil {
		return fmt.Errorf("xcnv: could not marshal trace to YODA: %w", err)
	}

	_, err = w.Write(raw)
	if err != nil {
		return fmt.Errorf("xcnv: could not write YODA trace: %w", err)
	}

	return nil
}
