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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aaronlmathis/gomart/table"
)

// StoreAPIReaderError provides structured error information for store API
// reader operations.
type StoreAPIReaderError struct {
	Op         string
	StatusCode int
	URL        string
	Err        error
}

func (e *StoreAPIReaderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("store api reader %s [%d] %s: %v", e.Op, e.StatusCode, e.URL, e.Err)
	}
	return fmt.Sprintf("store api reader %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *StoreAPIReaderError) Unwrap() error {
	return e.Err
}

// StoreAPIReaderStats holds statistics about the store API reader's progress.
type StoreAPIReaderStats struct {
	RequestCount int64
	RetryCount   int64
	RecordsRead  int64
	LastReadTime time.Time
}

// StoreAPIReaderOptions configures the store API reader. The API exposes a
// count endpoint and one detail endpoint per store number; the reader pages
// through every store.
type StoreAPIReaderOptions struct {
	NumberURL     string // endpoint returning {"number_stores": N}
	DetailURL     string // endpoint with a {store_number} placeholder
	NumberField   string // JSON field carrying the store count
	APIKeyHeader  string
	APIKey        string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	Client        *http.Client
}

// ReaderOptionStoreAPI allows functional customization of StoreAPIReader.
type ReaderOptionStoreAPI func(*StoreAPIReaderOptions)

func WithStoreAPIEndpoints(numberURL, detailURL string) ReaderOptionStoreAPI {
	return func(o *StoreAPIReaderOptions) {
		o.NumberURL = numberURL
		o.DetailURL = detailURL
	}
}

func WithStoreAPIKey(header, key string) ReaderOptionStoreAPI {
	return func(o *StoreAPIReaderOptions) {
		o.APIKeyHeader = header
		o.APIKey = key
	}
}

func WithStoreAPIRetries(attempts int, delay time.Duration) ReaderOptionStoreAPI {
	return func(o *StoreAPIReaderOptions) {
		o.RetryAttempts = attempts
		o.RetryDelay = delay
	}
}

func WithStoreAPITimeout(timeout time.Duration) ReaderOptionStoreAPI {
	return func(o *StoreAPIReaderOptions) { o.Timeout = timeout }
}

func WithStoreAPIClient(client *http.Client) ReaderOptionStoreAPI {
	return func(o *StoreAPIReaderOptions) { o.Client = client }
}

// StoreAPIReader implements gomart.DataSource for the paginated store detail
// API. The store count is fetched on the first Read; one detail request is
// made per store after that.
type StoreAPIReader struct {
	opts   StoreAPIReaderOptions
	client *http.Client
	total  int
	next   int
	primed bool
	stats  StoreAPIReaderStats
}

// NewStoreAPIReader creates a store API reader.
func NewStoreAPIReader(options ...ReaderOptionStoreAPI) (*StoreAPIReader, error) {
	opts := StoreAPIReaderOptions{
		NumberField:   "number_stores",
		APIKeyHeader:  "x-api-key",
		Timeout:       30 * time.Second,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
	for _, opt := range options {
		opt(&opts)
	}
	if opts.NumberURL == "" || opts.DetailURL == "" {
		return nil, &StoreAPIReaderError{Op: "configure", Err: fmt.Errorf("both endpoints are required")}
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &StoreAPIReader{opts: opts, client: client}, nil
}

// Read implements the gomart.DataSource interface.
func (s *StoreAPIReader) Read(ctx context.Context) (table.Row, error) {
	if !s.primed {
		total, err := s.fetchCount(ctx)
		if err != nil {
			return nil, err
		}
		s.total = total
		s.primed = true
	}
	if s.next >= s.total {
		return nil, io.EOF
	}

	url := strings.ReplaceAll(s.opts.DetailURL, "{store_number}", strconv.Itoa(s.next))
	body, err := s.get(ctx, url)
	if err != nil {
		return nil, err
	}
	s.next++

	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, &StoreAPIReaderError{Op: "decode", URL: url, Err: err}
	}

	row := make(table.Row, len(obj))
	for k, v := range obj {
		row[k] = jsonCell(v)
	}
	s.stats.RecordsRead++
	s.stats.LastReadTime = time.Now()
	return row, nil
}

// Close implements the gomart.DataSource interface.
func (s *StoreAPIReader) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// Stats returns store API reader progress stats.
func (s *StoreAPIReader) Stats() StoreAPIReaderStats {
	return s.stats
}

func (s *StoreAPIReader) fetchCount(ctx context.Context) (int, error) {
	body, err := s.get(ctx, s.opts.NumberURL)
	if err != nil {
		return 0, err
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err != nil {
		return 0, &StoreAPIReaderError{Op: "decode_count", URL: s.opts.NumberURL, Err: err}
	}
	n, ok := obj[s.opts.NumberField].(float64)
	if !ok {
		return 0, &StoreAPIReaderError{Op: "decode_count", URL: s.opts.NumberURL,
			Err: fmt.Errorf("missing numeric field %q", s.opts.NumberField)}
	}
	return int(n), nil
}

// get performs one request with bounded retry on transport errors and 5xx
// responses. Client errors (4xx) fail immediately.
func (s *StoreAPIReader) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= s.opts.RetryAttempts; attempt++ {
		if attempt > 0 {
			s.stats.RetryCount++
			select {
			case <-ctx.Done():
				return nil, &StoreAPIReaderError{Op: "request", URL: url, Err: ctx.Err()}
			case <-time.After(s.opts.RetryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, &StoreAPIReaderError{Op: "request", URL: url, Err: err}
		}
		if s.opts.APIKey != "" {
			req.Header.Set(s.opts.APIKeyHeader, s.opts.APIKey)
		}

		s.stats.RequestCount++
		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return body, nil
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("server error")
			continue
		default:
			return nil, &StoreAPIReaderError{Op: "request", StatusCode: resp.StatusCode, URL: url,
				Err: fmt.Errorf("unexpected status")}
		}
	}
	return nil, &StoreAPIReaderError{Op: "request", URL: url, Err: lastErr}
}
