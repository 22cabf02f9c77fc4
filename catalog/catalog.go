// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalog indexes decoded SDF measurements in a MySQL database.
package catalog // import "github.com/go-lpc/sdfascii/catalog"

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-lpc/sdfascii/sdf"
	"github.com/go-sql-driver/mysql"
)

const timeout = 5 * time.Second

var (
	drvName = "mysql"
)

// DB exposes convenience methods to store and retrieve the summary of
// SDF measurements.
type DB struct {
	db   *sql.DB
	name string // name of the catalog database
}

// Measurement is the summary of one SDF file.
type Measurement struct {
	Path        string
	Application string
	Revision    int
	Start       time.Time
	Title       string
	Domain      string
	DataType    string
	Points      int
	TraceCorr   sql.NullFloat64 // NULL when the file holds no trace
}

// Open opens a connection to the catalog database described by the
// MySQL data source name dsn.
func Open(dsn string) (*DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("catalog: could not parse DSN: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	db, err := sql.Open(drvName, cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("catalog: could not open %q db: %w", cfg.DBName, err)
	}

	err = ping(db, cfg.DBName)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{db: db, name: cfg.DBName}, nil
}

func ping(db *sql.DB, dbname string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("catalog: could not ping %q db: %w", dbname, err)
	}

	return nil
}

func (db *DB) Close() error {
	return db.db.Close()
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// Setup creates the measurements table if it does not exist yet.
func (db *DB) Setup(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := db.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS measurements (
	path        VARCHAR(255) NOT NULL PRIMARY KEY,
	application VARCHAR(64)  NOT NULL,
	revision    SMALLINT     NOT NULL,
	start       DATETIME     NOT NULL,
	title       VARCHAR(64)  NOT NULL,
	domain      VARCHAR(64)  NOT NULL,
	data_type   VARCHAR(64)  NOT NULL,
	points      INT          NOT NULL,
	trace_corr  DOUBLE
)`)
	if err != nil {
		return fmt.Errorf("catalog: could not create measurements table in %q: %w", db.name, err)
	}

	return nil
}

// Insert stores the summary of the SDF file f read from path.
// An existing entry for path is replaced.
func (db *DB) Insert(ctx context.Context, path string, f *sdf.File) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	m := summary(path, f)
	_, err := db.db.ExecContext(
		ctx,
		`REPLACE INTO measurements
(path, application, revision, start, title, domain, data_type, points, trace_corr)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Path, m.Application, m.Revision, m.Start, m.Title,
		m.Domain, m.DataType, m.Points, m.TraceCorr,
	)
	if err != nil {
		return fmt.Errorf("catalog: could not insert %q: %w", path, err)
	}

	return nil
}

func summary(path string, f *sdf.File) Measurement {
	m := Measurement{
		Path:        path,
		Application: f.FileHdr.Application.String(),
		Revision:    int(f.FileHdr.Revision),
		Start:       f.FileHdr.MeasStart,
		Title:       f.MeasHdr.Title,
	}
	if len(f.DataHdrs) > 0 {
		m.Domain = f.DataHdrs[0].Domain.String()
		m.DataType = f.DataHdrs[0].DataType.String()
	}
	if f.Data != nil {
		m.Points = f.Data.Len()
		corr, err := f.TraceCorrection()
		if err == nil {
			m.TraceCorr = sql.NullFloat64{Float64: corr, Valid: true}
		}
	}
	return m
}

// Measurements returns all the catalogued measurements, oldest first.
func (db *DB) Measurements(ctx context.Context) ([]Measurement, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var ms []Measurement
	rows, err := db.db.QueryContext(
		ctx,
		`SELECT path, application, revision, start, title, domain, data_type, points, trace_corr
FROM measurements ORDER BY start`,
	)
	if err != nil {
		return ms, fmt.Errorf("catalog: could not run measurements query: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		var m Measurement
		err = rows.Scan(
			&m.Path, &m.Application, &m.Revision, &m.Start, &m.Title,
			&m.Domain, &m.DataType, &m.Points, &m.TraceCorr,
		)
		if err != nil {
			return ms, fmt.Errorf("catalog: could not scan row %d of measurements: %w", i, err)
		}
		i++

		ms = append(ms, m)
	}

	if err := rows.Err(); err != nil {
		return ms, fmt.Errorf("catalog: could not scan db for measurements: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return ms, fmt.Errorf("catalog: context error while retrieving measurements: %w", err)
	}

	return ms, nil
}
