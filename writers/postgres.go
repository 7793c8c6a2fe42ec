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
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/aaronlmathis/gomart/table"
)

// Package writers provides implementations of gomart.DataSink for the
// destinations cleaned tables are loaded into.

// PostgresWriterError wraps PostgreSQL-specific write errors with context
// about the operation.
type PostgresWriterError struct {
	Op  string
	Err error
}

func (e *PostgresWriterError) Error() string {
	return fmt.Sprintf("postgres writer %s: %v", e.Op, e.Err)
}

func (e *PostgresWriterError) Unwrap() error {
	return e.Err
}

// PostgresWriterStats holds PostgreSQL write statistics.
type PostgresWriterStats struct {
	RecordsWritten int64
	BatchesWritten int64
	LastWriteTime  time.Time
}

// PostgresWriterOptions configures the PostgreSQL writer.
type PostgresWriterOptions struct {
	DSN           string
	TableName     string
	Columns       []string // insert order; first row's sorted keys when empty
	BatchSize     int
	TruncateTable bool // truncate before the first batch (replace semantics)
	QueryTimeout  time.Duration
}

// PostgresWriterOption represents a configuration function.
type PostgresWriterOption func(*PostgresWriterOptions)

// WithPostgresDSN sets the connection string.
func WithPostgresDSN(dsn string) PostgresWriterOption {
	return func(opts *PostgresWriterOptions) { opts.DSN = dsn }
}

// WithTableName sets the destination table.
func WithTableName(name string) PostgresWriterOption {
	return func(opts *PostgresWriterOptions) { opts.TableName = name }
}

// WithColumns sets the columns to write, in order.
func WithColumns(columns ...string) PostgresWriterOption {
	return func(opts *PostgresWriterOptions) {
		opts.Columns = append([]string(nil), columns...)
	}
}

// WithPostgresBatchSize sets the number of rows per INSERT batch.
func WithPostgresBatchSize(size int) PostgresWriterOption {
	return func(opts *PostgresWriterOptions) { opts.BatchSize = size }
}

// WithTruncateTable enables truncation before the first write.
func WithTruncateTable(truncate bool) PostgresWriterOption {
	return func(opts *PostgresWriterOptions) { opts.TruncateTable = truncate }
}

// PostgresWriter implements gomart.DataSink for PostgreSQL tables using
// batched multi-row INSERTs. Append semantics by default; TruncateTable
// gives replace semantics.
type PostgresWriter struct {
	db      *sql.DB
	opts    PostgresWriterOptions
	columns []string
	batch   []table.Row
	primed  bool
	stats   PostgresWriterStats
}

// NewPostgresWriter connects to the destination database.
func NewPostgresWriter(ctx context.Context, options ...PostgresWriterOption) (*PostgresWriter, error) {
	opts := PostgresWriterOptions{
		BatchSize:    500,
		QueryTimeout: 30 * time.Second,
	}
	for _, opt := range options {
		opt(&opts)
	}
	if opts.TableName == "" {
		return nil, &PostgresWriterError{Op: "configure", Err: fmt.Errorf("table name is required")}
	}

	db, err := sql.Open("postgres", opts.DSN)
	if err != nil {
		return nil, &PostgresWriterError{Op: "connect", Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &PostgresWriterError{Op: "ping", Err: err}
	}
	return &PostgresWriter{db: db, opts: opts, columns: opts.Columns}, nil
}

// Write implements the gomart.DataSink interface. Rows are buffered and
// flushed in batches.
func (w *PostgresWriter) Write(ctx context.Context, row table.Row) error {
	if w.columns == nil {
		w.columns = sortedKeys(row)
	}
	w.batch = append(w.batch, row)
	if len(w.batch) >= w.opts.BatchSize {
		return w.flush(ctx)
	}
	return nil
}

// Flush implements the gomart.DataSink interface.
func (w *PostgresWriter) Flush() error {
	return w.flush(context.Background())
}

// Close implements the gomart.DataSink interface.
func (w *PostgresWriter) Close() error {
	return w.db.Close()
}

// Stats returns write statistics.
func (w *PostgresWriter) Stats() PostgresWriterStats {
	return w.stats
}

func (w *PostgresWriter) flush(ctx context.Context) error {
	if !w.primed {
		if w.opts.TruncateTable {
			truncate := fmt.Sprintf(`TRUNCATE TABLE %q`, w.opts.TableName)
			if _, err := w.db.ExecContext(ctx, truncate); err != nil {
				return &PostgresWriterError{Op: "truncate", Err: err}
			}
		}
		w.primed = true
	}
	if len(w.batch) == 0 {
		return nil
	}

	query, args := w.buildInsert()
	queryCtx, cancel := context.WithTimeout(ctx, w.opts.QueryTimeout)
	defer cancel()

	tx, err := w.db.BeginTx(queryCtx, nil)
	if err != nil {
		return &PostgresWriterError{Op: "begin", Err: err}
	}
	if _, err := tx.ExecContext(queryCtx, query, args...); err != nil {
		tx.Rollback()
		return &PostgresWriterError{Op: "insert", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &PostgresWriterError{Op: "commit", Err: err}
	}

	w.stats.RecordsWritten += int64(len(w.batch))
	w.stats.BatchesWritten++
	w.stats.LastWriteTime = time.Now()
	w.batch = w.batch[:0]
	return nil
}

func (w *PostgresWriter) buildInsert() (string, []interface{}) {
	cols := make([]string, len(w.columns))
	for i, c := range w.columns {
		cols[i] = fmt.Sprintf("%q", c)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `INSERT INTO %q (%s) VALUES `, w.opts.TableName, strings.Join(cols, ", "))

	args := make([]interface{}, 0, len(w.batch)*len(w.columns))
	for i, row := range w.batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j, col := range w.columns {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", len(args)+1)
			args = append(args, row[col].Value())
		}
		sb.WriteByte(')')
	}
	return sb.String(), args
}

func sortedKeys(row table.Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
