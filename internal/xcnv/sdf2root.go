// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"fmt"

	"github.com/go-lpc/sdfascii/sdf"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
)

// SDF2ROOT writes the trace of f to the ROOT file fname, as a TGraph
// named "trace".
func SDF2ROOT(fname string, f *sdf.File) error {
	s2d, err := Trace(f)
	if err != nil {
		return err
	}

	o, err := groot.Create(fname)
	if err != nil {
		return fmt.Errorf("xcnv: could not create ROOT file: %w", err)
	}
	defer o.Close()

	err = o.Put("trace", rhist.NewGraphFrom(s2d))
	if err != nil {
		return fmt.Errorf("xcnv: could not write trace to ROOT file: %w", err)
	}

	err = o.Close()
	if err != nil {
		return fmt.Errorf("xcnv: could not close ROOT file: %w", err)
	}

	return nil
}
