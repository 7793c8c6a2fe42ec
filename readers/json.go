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
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aaronlmathis/gomart/table"
)

// JSONReaderError wraps structured error information for the JSON reader.
type JSONReaderError struct {
	Op  string
	Err error
}

func (e *JSONReaderError) Error() string {
	return fmt.Sprintf("json reader %s: %v", e.Op, e.Err)
}

func (e *JSONReaderError) Unwrap() error {
	return e.Err
}

// JSONReader implements gomart.DataSource for a JSON array of objects or
// line-delimited JSON objects. The layout is sniffed from the first
// non-space byte.
type JSONReader struct {
	dec    *json.Decoder
	lines  *bufio.Scanner
	closer io.Closer
}

// NewJSONReader creates a JSON reader over r.
func NewJSONReader(r io.ReadCloser) (*JSONReader, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil && err != io.EOF {
		return nil, &JSONReaderError{Op: "peek", Err: err}
	}

	j := &JSONReader{closer: r}
	if first == '[' {
		dec := json.NewDecoder(br)
		if _, err := dec.Token(); err != nil { // consume the opening bracket
			return nil, &JSONReaderError{Op: "open_array", Err: err}
		}
		j.dec = dec
	} else {
		j.lines = bufio.NewScanner(br)
	}
	return j, nil
}

// Read implements the gomart.DataSource interface.
func (j *JSONReader) Read(ctx context.Context) (table.Row, error) {
	select {
	case <-ctx.Done():
		return nil, &JSONReaderError{Op: "read", Err: ctx.Err()}
	default:
	}

	var obj map[string]interface{}
	if j.dec != nil {
		if !j.dec.More() {
			return nil, io.EOF
		}
		if err := j.dec.Decode(&obj); err != nil {
			return nil, &JSONReaderError{Op: "decode", Err: err}
		}
	} else {
		if !j.lines.Scan() {
			if err := j.lines.Err(); err != nil {
				return nil, &JSONReaderError{Op: "scan", Err: err}
			}
			return nil, io.EOF
		}
		if err := json.Unmarshal(j.lines.Bytes(), &obj); err != nil {
			return nil, &JSONReaderError{Op: "decode", Err: err}
		}
	}

	row := make(table.Row, len(obj))
	for k, v := range obj {
		row[k] = jsonCell(v)
	}
	return row, nil
}

// Close implements the gomart.DataSource interface.
func (j *JSONReader) Close() error {
	if j.closer != nil {
		return j.closer.Close()
	}
	return nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.Peek(1)
		if err != nil {
			return 0, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := br.ReadByte(); err != nil {
				return 0, err
			}
		default:
			return b[0], nil
		}
	}
}

// jsonCell converts a decoded JSON value into a Cell.
func jsonCell(v interface{}) table.Cell {
	switch val := v.(type) {
	case nil:
		return table.Null()
	case string:
		if val == "" {
			return table.Null()
		}
		return table.Text(val)
	case float64:
		if val == float64(int64(val)) {
			return table.Int(int64(val))
		}
		return table.Float(val)
	case bool:
		return table.Bool(val)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return table.Null()
		}
		return table.Text(string(raw))
	}
}
