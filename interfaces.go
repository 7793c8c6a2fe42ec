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

package gomart

import (
	"context"

	"github.com/aaronlmathis/gomart/table"
)

// Package gomart centralises heterogeneous retail source data into a star
// schema. Extractors produce tables, pure cleaners normalise them, loaders
// persist them.
//
// This file contains the interfaces the core consumes and produces. The core
// does not know whether a table originated from SQL, a scraped PDF, a
// paginated API, or object storage; it only sees rows.

// DataSource defines the interface for data extraction.
// Implementations stream rows from a source (e.g., CSV, PDF, PostgreSQL).
type DataSource interface {
	// Read returns the next row or io.EOF when no more rows are available.
	Read(ctx context.Context) (table.Row, error)
	// Close releases any resources held by the data source.
	Close() error
}

// DataSink defines the interface for data loading.
// Implementations write rows to a destination (e.g., PostgreSQL, CSV).
type DataSink interface {
	// Write outputs a single row to the sink.
	Write(ctx context.Context, row table.Row) error
	// Flush ensures all buffered data is written to the sink.
	Flush() error
	// Close releases any resources held by the data sink.
	Close() error
}

// RowTransform rewrites a row in place and returns it. Transforms are pure
// with respect to everything except the row they are handed; coercion
// failures surface as Null cells, never as errors.
type RowTransform func(row table.Row) table.Row

// RowPredicate reports whether a row should be kept.
type RowPredicate func(row table.Row) bool

// CleanFunc is a whole-table cleaning stage: it takes ownership of the input
// table and returns the cleaned table. The only error it may return is a
// contract violation such as a missing required column.
type CleanFunc func(t *table.Table) (*table.Table, error)

// ErrorStrategy defines how the pipeline handles row-level extraction errors.
type ErrorStrategy int

const (
	// FailFast stops the entity pipeline on the first extraction error.
	FailFast ErrorStrategy = iota
	// SkipErrors drops unreadable rows and keeps extracting.
	SkipErrors
)
