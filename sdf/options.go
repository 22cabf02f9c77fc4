// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import (
	"io"
	"log"
)

type config struct {
	msg *log.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		msg: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a Decoder.
type Option func(*config)

// WithLogger traces the records visited while decoding to msg.
func WithLogger(msg *log.Logger) Option {
	return func(cfg *config) {
		if msg == nil {
			return
		}
		cfg.msg = msg
	}
}
