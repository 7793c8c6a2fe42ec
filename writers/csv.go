//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Copyright (C) 2025 Aaron Mathis aaron.mathis@gmail.com
//
// This file is part of GoMart.
//
// GoMart is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GoMart is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GoMart. If not, see https://www.gnu.org/licenses/.

package writers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/aaronlmathis/gomart/table"
)

// CSVWriterError wraps CSV-specific write errors with context.
type CSVWriterError struct {
	Op  string
	Err error
}

func (e *CSVWriterError) Error() string {
	return fmt.Sprintf("csv writer %s: %v", e.Op, e.Err)
}

func (e *CSVWriterError) Unwrap() error {
	return e.Err
}

// CSVWriterStats holds CSV write statistics.
type CSVWriterStats struct {
	RecordsWritten int64
	LastWriteTime  time.Time
}

// CSVWriterOptions configures the CSV writer.
type CSVWriterOptions struct {
	Comma        rune
	WriteHeaders bool
	Columns      []string // output order; first row's sorted keys when empty
	FlushEvery   int
}

// CSVWriterOption represents a configuration function.
type CSVWriterOption func(*CSVWriterOptions)

// WithCSVWriterComma sets the field delimiter.
func WithCSVWriterComma(comma rune) CSVWriterOption {
	return func(opts *CSVWriterOptions) { opts.Comma = comma }
}

// WithWriteHeaders controls the header row.
func WithWriteHeaders(write bool) CSVWriterOption {
	return func(opts *CSVWriterOptions) { opts.WriteHeaders = write }
}

// WithCSVColumns sets the columns to write, in order.
func WithCSVColumns(columns ...string) CSVWriterOption {
	return func(opts *CSVWriterOptions) {
		opts.Columns = append([]string(nil), columns...)
	}
}

// CSVWriter implements gomart.DataSink for CSV output. Used for archival
// dumps of cleaned tables alongside the database load.
type CSVWriter struct {
	writer    *csv.Writer
	closer    io.Closer
	opts      CSVWriterOptions
	columns   []string
	wroteHead bool
	pending   int
	stats     CSVWriterStats
}

// NewCSVWriter creates a CSV writer over w.
func NewCSVWriter(w io.WriteCloser, options ...CSVWriterOption) *CSVWriter {
	opts := CSVWriterOptions{
		Comma:        ',',
		WriteHeaders: true,
		FlushEvery:   100,
	}
	for _, opt := range options {
		opt(&opts)
	}

	cw := csv.NewWriter(w)
	cw.Comma = opts.Comma
	return &CSVWriter{writer: cw, closer: w, opts: opts, columns: opts.Columns}
}

// Write implements the gomart.DataSink interface. Null cells render as
// empty fields.
func (w *CSVWriter) Write(ctx context.Context, row table.Row) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if w.columns == nil {
		w.columns = sortedKeys(row)
	}
	if w.opts.WriteHeaders && !w.wroteHead {
		if err := w.writer.Write(w.columns); err != nil {
			return &CSVWriterError{Op: "write header", Err: err}
		}
		w.wroteHead = true
	}

	fields := make([]string, len(w.columns))
	for i, col := range w.columns {
		fields[i] = row[col].String()
	}
	if err := w.writer.Write(fields); err != nil {
		return &CSVWriterError{Op: "write row", Err: err}
	}

	w.stats.RecordsWritten++
	w.stats.LastWriteTime = time.Now()
	w.pending++
	if w.pending >= w.opts.FlushEvery {
		w.writer.Flush()
		w.pending = 0
	}
	return w.writer.Error()
}

// Flush implements the gomart.DataSink interface.
func (w *CSVWriter) Flush() error {
	w.writer.Flush()
	return w.writer.Error()
}

// Close implements the gomart.DataSink interface.
func (w *CSVWriter) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.closer.Close()
		return &CSVWriterError{Op: "close", Err: err}
	}
	return w.closer.Close()
}

// Stats returns write statistics.
func (w *CSVWriter) Stats() CSVWriterStats {
	return w.stats
}
