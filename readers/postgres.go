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

package readers

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/aaronlmathis/gomart/table"
)

// PostgresReaderError provides structured error information for Postgres
// reader operations.
type PostgresReaderError struct {
	Op  string // Operation that failed (e.g., "connect", "query", "scan")
	Err error
}

func (e *PostgresReaderError) Error() string {
	return fmt.Sprintf("postgres reader %s: %v", e.Op, e.Err)
}

func (e *PostgresReaderError) Unwrap() error {
	return e.Err
}

// PostgresReaderOptions configures the Postgres reader.
type PostgresReaderOptions struct {
	DSN          string
	TableName    string        // read SELECT * FROM TableName; ignored when Query set
	Query        string        // explicit SQL overriding TableName
	Params       []interface{} // optional query parameters
	QueryTimeout time.Duration
	MaxOpenConns int
	MaxIdleConns int
}

// PostgresReaderOption represents a configuration function.
type PostgresReaderOption func(*PostgresReaderOptions)

// WithPostgresDSN sets the connection string.
func WithPostgresDSN(dsn string) PostgresReaderOption {
	return func(opts *PostgresReaderOptions) { opts.DSN = dsn }
}

// WithPostgresTable reads every row of the named table.
func WithPostgresTable(name string) PostgresReaderOption {
	return func(opts *PostgresReaderOptions) { opts.TableName = name }
}

// WithPostgresQuery sets an explicit SQL query and optional parameters.
func WithPostgresQuery(query string, params ...interface{}) PostgresReaderOption {
	return func(opts *PostgresReaderOptions) {
		opts.Query = query
		opts.Params = append([]interface{}(nil), params...)
	}
}

// WithPostgresQueryTimeout sets the query execution timeout.
func WithPostgresQueryTimeout(timeout time.Duration) PostgresReaderOption {
	return func(opts *PostgresReaderOptions) { opts.QueryTimeout = timeout }
}

// PostgresReader implements gomart.DataSource for PostgreSQL tables.
type PostgresReader struct {
	db      *sql.DB
	rows    *sql.Rows
	cancel  context.CancelFunc
	columns []string
	opts    PostgresReaderOptions
}

// NewPostgresReader connects and executes the configured query. The result
// set is streamed row by row through Read.
func NewPostgresReader(ctx context.Context, options ...PostgresReaderOption) (*PostgresReader, error) {
	opts := PostgresReaderOptions{
		QueryTimeout: 30 * time.Second,
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	}
	for _, opt := range options {
		opt(&opts)
	}
	if opts.Query == "" {
		if opts.TableName == "" {
			return nil, &PostgresReaderError{Op: "configure", Err: fmt.Errorf("either a table name or a query is required")}
		}
		opts.Query = fmt.Sprintf(`SELECT * FROM %q`, opts.TableName)
	}

	db, err := sql.Open("postgres", opts.DSN)
	if err != nil {
		return nil, &PostgresReaderError{Op: "connect", Err: err}
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &PostgresReaderError{Op: "ping", Err: err}
	}

	// The timeout covers the whole result set; cancel happens in Close so
	// the stream is not torn down while Read is still draining it.
	queryCtx, cancel := context.WithTimeout(ctx, opts.QueryTimeout)
	rows, err := db.QueryContext(queryCtx, opts.Query, opts.Params...)
	if err != nil {
		cancel()
		db.Close()
		return nil, &PostgresReaderError{Op: "query", Err: err}
	}
	columns, err := rows.Columns()
	if err != nil {
		cancel()
		rows.Close()
		db.Close()
		return nil, &PostgresReaderError{Op: "columns", Err: err}
	}

	return &PostgresReader{db: db, rows: rows, cancel: cancel, columns: columns, opts: opts}, nil
}

// Read implements the gomart.DataSource interface.
func (p *PostgresReader) Read(ctx context.Context) (table.Row, error) {
	select {
	case <-ctx.Done():
		return nil, &PostgresReaderError{Op: "read", Err: ctx.Err()}
	default:
	}

	if !p.rows.Next() {
		if err := p.rows.Err(); err != nil {
			return nil, &PostgresReaderError{Op: "read", Err: err}
		}
		return nil, io.EOF
	}

	values := make([]interface{}, len(p.columns))
	ptrs := make([]interface{}, len(p.columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := p.rows.Scan(ptrs...); err != nil {
		return nil, &PostgresReaderError{Op: "scan", Err: err}
	}

	row := make(table.Row, len(p.columns))
	for i, col := range p.columns {
		row[col] = driverCell(values[i])
	}
	return row, nil
}

// Close implements the gomart.DataSource interface.
func (p *PostgresReader) Close() error {
	var firstErr error
	if p.cancel != nil {
		p.cancel()
	}
	if p.rows != nil {
		if err := p.rows.Close(); err != nil {
			firstErr = err
		}
	}
	if p.db != nil {
		if err := p.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// driverCell converts a database/sql scan value into a Cell.
func driverCell(v interface{}) table.Cell {
	switch val := v.(type) {
	case nil:
		return table.Null()
	case []byte:
		return table.Text(string(val))
	case string:
		return table.Text(val)
	case int64:
		return table.Int(val)
	case float64:
		return table.Float(val)
	case bool:
		return table.Bool(val)
	case time.Time:
		return table.Timestamp(val)
	default:
		return table.Text(fmt.Sprintf("%v", val))
	}
}
