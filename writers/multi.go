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
	"errors"

	"github.com/aaronlmathis/gomart/table"
)

// MultiSink fans every row out to all wrapped sinks. Used to archive a
// cleaned table as CSV while loading it into the warehouse.
type MultiSink struct {
	sinks []sink
}

type sink interface {
	Write(ctx context.Context, row table.Row) error
	Flush() error
	Close() error
}

// NewMultiSink creates a sink that duplicates writes across sinks.
func NewMultiSink(sinks ...sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Write writes the row to every sink, stopping at the first error.
func (m *MultiSink) Write(ctx context.Context, row table.Row) error {
	for _, s := range m.sinks {
		if err := s.Write(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every sink.
func (m *MultiSink) Flush() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
