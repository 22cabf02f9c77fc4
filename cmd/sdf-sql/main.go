// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command sdf-sql indexes SDF files into the measurements catalog.
package main // import "github.com/go-lpc/sdfascii/cmd/sdf-sql"

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/go-lpc/sdfascii/catalog"
	"github.com/go-lpc/sdfascii/sdf"
)

type store interface {
	Insert(ctx context.Context, path string, f *sdf.File) error
	Measurements(ctx context.Context) ([]catalog.Measurement, error)
}

func main() {
	log.SetPrefix("sdf-sql: ")
	log.SetFlags(0)

	var (
		dsn  = flag.String("db", "sdf@tcp(localhost:3306)/sdf", "MySQL data source name of the catalog")
		list = flag.Bool("list", false, "list catalogued measurements")
	)

	flag.Usage = func() {
		fmt.Printf(`Usage: sdf-sql [OPTIONS] [FILE1 [FILE2 ...]]

ex:
 $> sdf-sql -db "user:pass@tcp(localhost:3306)/sdf" ./SPEC1.DAT ./SPEC2.DAT
 $> sdf-sql -db "user:pass@tcp(localhost:3306)/sdf" -list

options:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 && !*list {
		flag.Usage()
		log.Fatalf("missing path to input SDF file")
	}

	db, err := catalog.Open(*dsn)
	if err != nil {
		log.Fatalf("could not open catalog: %+v", err)
	}
	defer db.Close()

	ctx := context.Background()
	err = db.Setup(ctx)
	if err != nil {
		log.Fatalf("could not setup catalog: %+v", err)
	}

	err = process(ctx, db, flag.Args())
	if err != nil {
		log.Fatalf("could not index SDF files: %+v", err)
	}

	if *list {
		err = dump(ctx, os.Stdout, db)
		if err != nil {
			log.Fatalf("could not list measurements: %+v", err)
		}
	}
}

func process(ctx context.Context, db store, fnames []string) error {
	for _, fname := range fnames {
		f, err := sdf.ReadFile(fname)
		if err != nil {
			return err
		}

		path, err := filepath.Abs(fname)
		if err != nil {
			return fmt.Errorf("could not resolve path of %q: %w", fname, err)
		}

		err = db.Insert(ctx, path, f)
		if err != nil {
			return fmt.Errorf("could not index %q: %w", fname, err)
		}
		log.Printf("indexed %q", path)
	}

	return nil
}

func dump(ctx context.Context, w io.Writer, db store) error {
	ms, err := db.Measurements(ctx)
	if err != nil {
		return err
	}

	for _, m := range ms {
		corr := "n/a"
		if m.TraceCorr.Valid {
			corr = fmt.Sprintf("%g", m.TraceCorr.Float64)
		}
		fmt.Fprintf(w, "%s %-20s rev=%d points=%-5d corr=%-8s %q %s\n",
			m.Start.Format("2006-01-02 15:04:05"), m.Application,
			m.Revision, m.Points, corr, m.Title, m.Path,
		)
	}

	return nil
}
