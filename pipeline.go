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
	"sync"

	"go.uber.org/zap"

	"github.com/aaronlmathis/gomart/table"
)

// PipelineBuilder provides a fluent API for constructing entity pipelines.
// Use NewPipeline to create a builder, then chain From, Clean, Validate, To,
// and configuration methods.
type PipelineBuilder struct {
	pipeline *Pipeline
}

// NewPipeline creates a builder for the named entity pipeline.
func NewPipeline(name string) *PipelineBuilder {
	return &PipelineBuilder{
		pipeline: &Pipeline{
			name:     name,
			strategy: SkipErrors,
			logger:   zap.NewNop(),
		},
	}
}

// From sets the DataSource the pipeline extracts from.
func (pb *PipelineBuilder) From(source DataSource) *PipelineBuilder {
	pb.pipeline.source = source
	return pb
}

// Clean sets the cleaning stage applied to the materialized table.
func (pb *PipelineBuilder) Clean(fn CleanFunc) *PipelineBuilder {
	pb.pipeline.cleaner = fn
	return pb
}

// Validate sets an optional invariant gate run on the cleaned table before
// any row reaches the sink.
func (pb *PipelineBuilder) Validate(fn func(t *table.Table) error) *PipelineBuilder {
	pb.pipeline.validator = fn
	return pb
}

// To sets the DataSink the cleaned table is loaded into.
func (pb *PipelineBuilder) To(sink DataSink) *PipelineBuilder {
	pb.pipeline.sink = sink
	return pb
}

// WithErrorStrategy sets how row-level extraction errors are handled.
func (pb *PipelineBuilder) WithErrorStrategy(strategy ErrorStrategy) *PipelineBuilder {
	pb.pipeline.strategy = strategy
	return pb
}

// WithLogger sets the pipeline logger.
func (pb *PipelineBuilder) WithLogger(logger *zap.Logger) *PipelineBuilder {
	pb.pipeline.logger = logger
	return pb
}

// Build validates and constructs the Pipeline.
func (pb *PipelineBuilder) Build() (*Pipeline, error) {
	if pb.pipeline.source == nil {
		return nil, fmt.Errorf("pipeline %s requires a data source", pb.pipeline.name)
	}
	if pb.pipeline.cleaner == nil {
		return nil, fmt.Errorf("pipeline %s requires a cleaning stage", pb.pipeline.name)
	}
	if pb.pipeline.sink == nil {
		return nil, fmt.Errorf("pipeline %s requires a data sink", pb.pipeline.name)
	}
	return pb.pipeline, nil
}

// Pipeline runs one entity end to end: materialize the raw table from the
// source, hand it to the cleaning stage, and load the cleaned table into the
// sink. The pipeline owns no cleaning logic itself.
type Pipeline struct {
	name      string
	source    DataSource
	cleaner   CleanFunc
	validator func(t *table.Table) error
	sink      DataSink
	strategy  ErrorStrategy
	logger    *zap.Logger
}

// Name returns the entity name the pipeline was built for.
func (p *Pipeline) Name() string {
	return p.name
}

// Execute extracts, cleans, and loads the entity.
//
// Row-level extraction errors are handled per the configured ErrorStrategy;
// a contract violation from the cleaner or validator aborts the pipeline.
func (p *Pipeline) Execute(ctx context.Context) error {
	defer func() {
		p.source.Close()
		p.sink.Close()
	}()

	raw := table.New()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		row, err := p.source.Read(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			if p.strategy == FailFast {
				return fmt.Errorf("pipeline %s: extract: %w", p.name, err)
			}
			p.logger.Warn("skipping unreadable row",
				zap.String("pipeline", p.name), zap.Error(err))
			continue
		}
		if len(row) == 0 {
			continue
		}
		raw.Append(row)
	}

	extracted := raw.Len()
	cleaned, err := p.cleaner(raw)
	if err != nil {
		return fmt.Errorf("pipeline %s: clean: %w", p.name, err)
	}
	if p.validator != nil {
		if err := p.validator(cleaned); err != nil {
			return fmt.Errorf("pipeline %s: validate: %w", p.name, err)
		}
	}

	for i := 0; i < cleaned.Len(); i++ {
		if err := p.sink.Write(ctx, cleaned.Row(i)); err != nil {
			return fmt.Errorf("pipeline %s: load: %w", p.name, err)
		}
	}
	// Sinks buffer; the final batch lands in Flush, so a flush failure is a
	// load failure. Flush is not deferred: an aborted pipeline must not
	// touch the destination.
	if err := p.sink.Flush(); err != nil {
		return fmt.Errorf("pipeline %s: load: %w", p.name, err)
	}

	p.logger.Info("pipeline complete",
		zap.String("pipeline", p.name),
		zap.Int("rows_extracted", extracted),
		zap.Int("rows_loaded", cleaned.Len()))
	return nil
}

// Result reports the outcome of one entity pipeline.
type Result struct {
	Pipeline string
	Err      error
}

// Runner executes entity pipelines concurrently. The pipelines are
// independent: each owns its table end to end, so one entity failing is
// logged and does not disturb the others.
type Runner struct {
	logger *zap.Logger
}

// NewRunner creates a Runner. A nil logger disables logging.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger}
}

// Run executes every pipeline and returns one Result per pipeline, in the
// order given.
func (r *Runner) Run(ctx context.Context, pipelines ...*Pipeline) []Result {
	results := make([]Result, len(pipelines))
	var wg sync.WaitGroup
	for i, p := range pipelines {
		wg.Add(1)
		go func(i int, p *Pipeline) {
			defer wg.Done()
			err := p.Execute(ctx)
			if err != nil {
				r.logger.Error("pipeline failed",
					zap.String("pipeline", p.Name()), zap.Error(err))
			}
			results[i] = Result{Pipeline: p.Name(), Err: err}
		}(i, p)
	}
	wg.Wait()
	return results
}
