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
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronlmathis/gomart/table"
)

// sliceSource feeds rows from memory, optionally injecting a read error.
type sliceSource struct {
	rows   []table.Row
	errAt  int // 1-based read index that errors; 0 disables
	next   int
	closed bool
}

func (s *sliceSource) Read(ctx context.Context) (table.Row, error) {
	s.next++
	if s.errAt > 0 && s.next == s.errAt {
		return nil, fmt.Errorf("bad row")
	}
	idx := s.next - 1
	if s.errAt > 0 && s.next > s.errAt {
		idx--
	}
	if idx >= len(s.rows) {
		return nil, io.EOF
	}
	return s.rows[idx], nil
}

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

// memorySink collects written rows, optionally failing on Flush.
type memorySink struct {
	rows     []table.Row
	flushErr error
	flushed  bool
	closed   bool
}

func (m *memorySink) Write(ctx context.Context, row table.Row) error {
	m.rows = append(m.rows, row)
	return nil
}

func (m *memorySink) Flush() error {
	m.flushed = true
	return m.flushErr
}

func (m *memorySink) Close() error {
	m.closed = true
	return nil
}

func passthrough(t *table.Table) (*table.Table, error) {
	return t, nil
}

func TestPipeline_BuildRequiresStages(t *testing.T) {
	_, err := NewPipeline("x").Build()
	assert.Error(t, err)

	_, err = NewPipeline("x").From(&sliceSource{}).Build()
	assert.Error(t, err)

	_, err = NewPipeline("x").From(&sliceSource{}).Clean(passthrough).Build()
	assert.Error(t, err)

	_, err = NewPipeline("x").From(&sliceSource{}).Clean(passthrough).To(&memorySink{}).Build()
	assert.NoError(t, err)
}

func TestPipeline_ExtractCleanLoad(t *testing.T) {
	source := &sliceSource{rows: []table.Row{
		{"n": table.Int(1)},
		{"n": table.Int(-2)},
		{"n": table.Int(3)},
	}}
	sink := &memorySink{}

	clean := func(tbl *table.Table) (*table.Table, error) {
		tbl.Filter(func(r table.Row) bool {
			v, _ := r["n"].Int()
			return v > 0
		})
		return tbl, nil
	}

	p, err := NewPipeline("numbers").From(source).Clean(clean).To(sink).Build()
	require.NoError(t, err)
	require.NoError(t, p.Execute(context.Background()))

	require.Len(t, sink.rows, 2)
	assert.True(t, source.closed)
	assert.True(t, sink.flushed)
	assert.True(t, sink.closed)
}

func TestPipeline_SkipErrorsDropsBadRows(t *testing.T) {
	source := &sliceSource{
		rows:  []table.Row{{"n": table.Int(1)}, {"n": table.Int(2)}},
		errAt: 2,
	}
	sink := &memorySink{}

	p, err := NewPipeline("numbers").
		From(source).
		Clean(passthrough).
		To(sink).
		WithErrorStrategy(SkipErrors).
		Build()
	require.NoError(t, err)

	require.NoError(t, p.Execute(context.Background()))
	assert.Len(t, sink.rows, 2)
}

func TestPipeline_FailFastStopsOnBadRow(t *testing.T) {
	source := &sliceSource{
		rows:  []table.Row{{"n": table.Int(1)}},
		errAt: 1,
	}
	sink := &memorySink{}

	p, err := NewPipeline("numbers").
		From(source).
		Clean(passthrough).
		To(sink).
		WithErrorStrategy(FailFast).
		Build()
	require.NoError(t, err)

	err = p.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract")
	assert.Empty(t, sink.rows)
	assert.True(t, source.closed)
}

func TestPipeline_CleanErrorAborts(t *testing.T) {
	source := &sliceSource{rows: []table.Row{{"n": table.Int(1)}}}
	sink := &memorySink{}

	broken := func(tbl *table.Table) (*table.Table, error) {
		return nil, fmt.Errorf("contract violated")
	}

	p, err := NewPipeline("numbers").From(source).Clean(broken).To(sink).Build()
	require.NoError(t, err)

	err = p.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clean")
	assert.Empty(t, sink.rows)
}

func TestPipeline_ValidatorGatesTheLoad(t *testing.T) {
	source := &sliceSource{rows: []table.Row{{"n": table.Int(1)}}}
	sink := &memorySink{}

	p, err := NewPipeline("numbers").
		From(source).
		Clean(passthrough).
		Validate(func(tbl *table.Table) error { return fmt.Errorf("key repeats") }).
		To(sink).
		Build()
	require.NoError(t, err)

	err = p.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate")
	assert.Empty(t, sink.rows)
}

func TestPipeline_FlushFailureIsALoadFailure(t *testing.T) {
	source := &sliceSource{rows: []table.Row{
		{"n": table.Int(1)},
		{"n": table.Int(2)},
		{"n": table.Int(3)},
	}}
	sink := &memorySink{flushErr: fmt.Errorf("insert failed: connection reset")}

	p, err := NewPipeline("numbers").From(source).Clean(passthrough).To(sink).Build()
	require.NoError(t, err)

	err = p.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load")
	assert.Contains(t, err.Error(), "connection reset")
	assert.True(t, sink.closed)
}

func TestPipeline_AbortedRunNeverFlushes(t *testing.T) {
	source := &sliceSource{rows: []table.Row{{"n": table.Int(1)}}}
	sink := &memorySink{}

	p, err := NewPipeline("numbers").
		From(source).
		Clean(passthrough).
		Validate(func(tbl *table.Table) error { return fmt.Errorf("key repeats") }).
		To(sink).
		Build()
	require.NoError(t, err)

	require.Error(t, p.Execute(context.Background()))
	assert.False(t, sink.flushed)
	assert.True(t, sink.closed)
}

func TestRunner_ReportsPerPipelineResults(t *testing.T) {
	ok, err := NewPipeline("ok").
		From(&sliceSource{rows: []table.Row{{"n": table.Int(1)}}}).
		Clean(passthrough).
		To(&memorySink{}).
		Build()
	require.NoError(t, err)

	bad, err := NewPipeline("bad").
		From(&sliceSource{rows: []table.Row{{"n": table.Int(1)}}, errAt: 1}).
		Clean(passthrough).
		To(&memorySink{}).
		WithErrorStrategy(FailFast).
		Build()
	require.NoError(t, err)

	results := NewRunner(nil).Run(context.Background(), ok, bad)
	require.Len(t, results, 2)
	assert.Equal(t, "ok", results[0].Pipeline)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "bad", results[1].Pipeline)
	assert.Error(t, results[1].Err)
}
