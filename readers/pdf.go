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
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/aaronlmathis/gomart/table"
)

// PDFReaderError provides structured error information for PDF reader
// operations.
type PDFReaderError struct {
	Op  string
	Err error
}

func (e *PDFReaderError) Error() string {
	return fmt.Sprintf("pdf reader %s: %v", e.Op, e.Err)
}

func (e *PDFReaderError) Unwrap() error {
	return e.Err
}

// PDFReaderOptions configures the PDF table reader. The reader recovers one
// logical table spread across every page: each text row is split into words
// and mapped onto the declared columns, with one column absorbing the extra
// words of multi-word values.
type PDFReaderOptions struct {
	Path         string   // local file; ignored when URL is set
	URL          string   // remote document, downloaded before parsing
	Columns      []string // destination column names, in page order
	AbsorbColumn int      // index of the column taking surplus words
	Timeout      time.Duration
	Client       *http.Client
}

// ReaderOptionPDF allows functional customization of PDFReader.
type ReaderOptionPDF func(*PDFReaderOptions)

func WithPDFPath(path string) ReaderOptionPDF {
	return func(o *PDFReaderOptions) { o.Path = path }
}

func WithPDFURL(url string) ReaderOptionPDF {
	return func(o *PDFReaderOptions) { o.URL = url }
}

func WithPDFColumns(absorb int, columns ...string) ReaderOptionPDF {
	return func(o *PDFReaderOptions) {
		o.Columns = columns
		o.AbsorbColumn = absorb
	}
}

func WithPDFClient(client *http.Client) ReaderOptionPDF {
	return func(o *PDFReaderOptions) { o.Client = client }
}

// PDFReader implements gomart.DataSource for a table embedded in a PDF.
// The whole document is parsed at construction; PDFs here are small.
type PDFReader struct {
	rows []table.Row
	next int
}

// NewPDFReader downloads (when configured with a URL) and parses the
// document, materialising every table row.
func NewPDFReader(ctx context.Context, options ...ReaderOptionPDF) (*PDFReader, error) {
	opts := PDFReaderOptions{Timeout: 60 * time.Second}
	for _, opt := range options {
		opt(&opts)
	}
	if len(opts.Columns) == 0 {
		return nil, &PDFReaderError{Op: "configure", Err: fmt.Errorf("columns are required")}
	}
	if opts.AbsorbColumn < 0 || opts.AbsorbColumn >= len(opts.Columns) {
		return nil, &PDFReaderError{Op: "configure", Err: fmt.Errorf("absorb column out of range")}
	}

	path := opts.Path
	if opts.URL != "" {
		downloaded, err := download(ctx, &opts)
		if err != nil {
			return nil, err
		}
		defer os.Remove(downloaded)
		path = downloaded
	}
	if path == "" {
		return nil, &PDFReaderError{Op: "configure", Err: fmt.Errorf("either a path or a URL is required")}
	}

	f, doc, err := pdf.Open(path)
	if err != nil {
		return nil, &PDFReaderError{Op: "open", Err: err}
	}
	defer f.Close()

	reader := &PDFReader{}
	for pageNum := 1; pageNum <= doc.NumPage(); pageNum++ {
		page := doc.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		textRows, err := page.GetTextByRow()
		if err != nil {
			return nil, &PDFReaderError{Op: "extract", Err: fmt.Errorf("page %d: %w", pageNum, err)}
		}
		for _, textRow := range textRows {
			words := make([]string, 0, len(textRow.Content))
			for _, word := range textRow.Content {
				if word.S != "" {
					words = append(words, word.S)
				}
			}
			if row, ok := mapWords(words, opts.Columns, opts.AbsorbColumn); ok {
				reader.rows = append(reader.rows, row)
			}
		}
	}
	return reader, nil
}

// Read implements the gomart.DataSource interface.
func (p *PDFReader) Read(ctx context.Context) (table.Row, error) {
	select {
	case <-ctx.Done():
		return nil, &PDFReaderError{Op: "read", Err: ctx.Err()}
	default:
	}
	if p.next >= len(p.rows) {
		return nil, io.EOF
	}
	row := p.rows[p.next]
	p.next++
	return row, nil
}

// Close implements the gomart.DataSource interface.
func (p *PDFReader) Close() error {
	return nil
}

// mapWords assigns a text row's words to the declared columns. Columns
// before the absorb column take one word each from the left, columns after
// it one word each from the right, and the absorb column joins whatever is
// left. Header repeats and short rows are rejected.
func mapWords(words, columns []string, absorb int) (table.Row, bool) {
	if len(words) < len(columns) {
		return nil, false
	}
	if words[0] == columns[0] {
		return nil, false // repeated page header
	}

	row := make(table.Row, len(columns))
	for i := 0; i < absorb; i++ {
		row[columns[i]] = wordCell(words[i])
	}
	tail := len(columns) - absorb - 1
	for i := 0; i < tail; i++ {
		row[columns[len(columns)-1-i]] = wordCell(words[len(words)-1-i])
	}
	joined := ""
	for i := absorb; i < len(words)-tail; i++ {
		if joined != "" {
			joined += " "
		}
		joined += words[i]
	}
	row[columns[absorb]] = wordCell(joined)
	return row, true
}

func wordCell(s string) table.Cell {
	if s == "" {
		return table.Null()
	}
	return table.Text(s)
}

func download(ctx context.Context, opts *PDFReaderOptions) (string, error) {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return "", &PDFReaderError{Op: "download", Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &PDFReaderError{Op: "download", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &PDFReaderError{Op: "download", Err: fmt.Errorf("status %d for %s", resp.StatusCode, opts.URL)}
	}

	tmp, err := os.CreateTemp("", "gomart-*.pdf")
	if err != nil {
		return "", &PDFReaderError{Op: "download", Err: err}
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", &PDFReaderError{Op: "download", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", &PDFReaderError{Op: "download", Err: err}
	}
	return tmp.Name(), nil
}
