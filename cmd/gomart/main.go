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

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aaronlmathis/gomart"
	"github.com/aaronlmathis/gomart/clean"
	"github.com/aaronlmathis/gomart/config"
	"github.com/aaronlmathis/gomart/connector"
	"github.com/aaronlmathis/gomart/readers"
	"github.com/aaronlmathis/gomart/table"
	"github.com/aaronlmathis/gomart/validate"
	"github.com/aaronlmathis/gomart/writers"
)

// Command gomart extracts the retail source data, cleans each entity and
// loads the star schema into the destination warehouse.

func main() {
	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx := context.Background()

	target, err := connector.LoadCredentials(cfg.TargetCredsPath)
	if err != nil {
		logger.Fatal("target credentials", zap.Error(err))
	}

	source, err := connector.ConnectFile(ctx, cfg.SourceCredsPath)
	if err != nil {
		logger.Fatal("source database", zap.Error(err))
	}
	defer source.Close()

	app := &app{
		cfg:       cfg,
		logger:    logger,
		source:    source,
		targetDSN: target.DSN(),
	}

	var pipelines []*gomart.Pipeline
	builders := []struct {
		name  string
		build func(context.Context) (*gomart.Pipeline, error)
	}{
		{"users", app.usersPipeline},
		{"cards", app.cardsPipeline},
		{"stores", app.storesPipeline},
		{"products", app.productsPipeline},
		{"orders", app.ordersPipeline},
		{"dates", app.datesPipeline},
	}
	for _, b := range builders {
		p, err := b.build(ctx)
		if err != nil {
			logger.Warn("skipping pipeline", zap.String("pipeline", b.name), zap.Error(err))
			continue
		}
		pipelines = append(pipelines, p)
	}

	results := gomart.NewRunner(logger).Run(ctx, pipelines...)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.Info("run complete",
		zap.Int("pipelines", len(results)),
		zap.Int("failed", failed))
	if failed > 0 {
		os.Exit(1)
	}
}

type app struct {
	cfg       config.Config
	logger    *zap.Logger
	source    *connector.Connector
	targetDSN string
}

func (a *app) usersPipeline(ctx context.Context) (*gomart.Pipeline, error) {
	src, err := a.sourceTable(ctx, "legacy_users")
	if err != nil {
		return nil, err
	}
	sink, err := a.sink(ctx, "dim_users")
	if err != nil {
		src.Close()
		return nil, err
	}
	rules := clean.DefaultUserRules()
	return gomart.NewPipeline("users").
		From(src).
		Clean(func(t *table.Table) (*table.Table, error) { return clean.Users(t, rules) }).
		Validate(validate.TableRules{
			RequiredNonNull: []string{"user_uuid", "email_address", "join_date", "date_of_birth"},
			UniqueKey:       []string{"user_uuid"},
			MinRows:         1,
		}.Check).
		To(sink).
		WithLogger(a.logger).
		Build()
}

func (a *app) cardsPipeline(ctx context.Context) (*gomart.Pipeline, error) {
	src, err := readers.NewPDFReader(ctx,
		readers.WithPDFURL(a.cfg.CardPDFURL),
		readers.WithPDFColumns(2, "card_number", "expiry_date", "card_provider", "date_payment_confirmed"),
	)
	if err != nil {
		return nil, err
	}
	sink, err := a.sink(ctx, "dim_card_details")
	if err != nil {
		src.Close()
		return nil, err
	}
	rules := clean.DefaultCardRules()
	return gomart.NewPipeline("cards").
		From(src).
		Clean(func(t *table.Table) (*table.Table, error) { return clean.Cards(t, rules) }).
		Validate(validate.TableRules{
			RequiredNonNull: []string{"card_number", "expiry_date", "date_payment_confirmed"},
			UniqueKey:       []string{"card_number"},
			MinRows:         1,
		}.Check).
		To(sink).
		WithLogger(a.logger).
		Build()
}

func (a *app) storesPipeline(ctx context.Context) (*gomart.Pipeline, error) {
	src, err := readers.NewStoreAPIReader(
		readers.WithStoreAPIEndpoints(a.cfg.StoreNumberURL, a.cfg.StoreDetailURL),
		readers.WithStoreAPIKey("x-api-key", a.cfg.StoreAPIKey),
	)
	if err != nil {
		return nil, err
	}
	sink, err := a.sink(ctx, "dim_store_details")
	if err != nil {
		src.Close()
		return nil, err
	}
	rules := clean.DefaultStoreRules()
	return gomart.NewPipeline("stores").
		From(src).
		Clean(func(t *table.Table) (*table.Table, error) { return clean.Stores(t, rules) }).
		Validate(validate.TableRules{
			RequiredNonNull: []string{"store_code", "opening_date"},
			UniqueKey:       []string{"store_code"},
			MinRows:         1,
		}.Check).
		To(sink).
		WithLogger(a.logger).
		Build()
}

func (a *app) productsPipeline(ctx context.Context) (*gomart.Pipeline, error) {
	src, err := readers.NewS3Reader(ctx,
		readers.WithS3Address(a.cfg.ProductsS3),
		readers.WithS3Region(a.cfg.AWSRegion),
		readers.WithS3Profile(a.cfg.AWSProfile),
	)
	if err != nil {
		return nil, err
	}
	sink, err := a.sink(ctx, "dim_products")
	if err != nil {
		src.Close()
		return nil, err
	}
	rules := clean.DefaultProductRules()
	return gomart.NewPipeline("products").
		From(src).
		Clean(func(t *table.Table) (*table.Table, error) { return clean.Products(t, rules) }).
		Validate(validate.TableRules{
			RequiredNonNull: []string{"product_code", "product_price", "weight", "date_added", "uuid"},
			UniqueKey:       []string{"product_code"},
			MinRows:         1,
		}.Check).
		To(sink).
		WithLogger(a.logger).
		Build()
}

func (a *app) ordersPipeline(ctx context.Context) (*gomart.Pipeline, error) {
	src, err := a.sourceTable(ctx, "orders_table")
	if err != nil {
		return nil, err
	}
	sink, err := a.sink(ctx, "orders_table")
	if err != nil {
		src.Close()
		return nil, err
	}
	rules := clean.DefaultOrderRules()
	return gomart.NewPipeline("orders").
		From(src).
		Clean(func(t *table.Table) (*table.Table, error) { return clean.Orders(t, rules) }).
		Validate(validate.TableRules{
			RequiredNonNull: []string{"user_uuid", "card_number", "store_code", "product_code", "product_quantity"},
			MinRows:         1,
		}.Check).
		To(sink).
		WithLogger(a.logger).
		Build()
}

func (a *app) datesPipeline(ctx context.Context) (*gomart.Pipeline, error) {
	src, err := readers.NewS3Reader(ctx,
		readers.WithS3Address(a.cfg.DateDetailsS3),
		readers.WithS3Region(a.cfg.AWSRegion),
		readers.WithS3Profile(a.cfg.AWSProfile),
	)
	if err != nil {
		return nil, err
	}
	sink, err := a.sink(ctx, "dim_date_times")
	if err != nil {
		src.Close()
		return nil, err
	}
	rules := clean.DefaultDateRules()
	return gomart.NewPipeline("dates").
		From(src).
		Clean(func(t *table.Table) (*table.Table, error) { return clean.Dates(t, rules) }).
		Validate(validate.TableRules{
			RequiredNonNull: []string{"timestamp", "date_uuid"},
			UniqueKey:       []string{"date_uuid"},
			MinRows:         1,
		}.Check).
		To(sink).
		WithLogger(a.logger).
		Build()
}

// sourceTable verifies the table exists in the source database before
// opening a reader on it.
func (a *app) sourceTable(ctx context.Context, name string) (*readers.PostgresReader, error) {
	ok, err := a.source.HasTable(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("source table %s not found", name)
	}
	return readers.NewPostgresReader(ctx,
		readers.WithPostgresDSN(a.source.DSN()),
		readers.WithPostgresTable(name),
	)
}

// sink builds the warehouse loader for one destination table, with an
// optional CSV archive alongside.
func (a *app) sink(ctx context.Context, tableName string) (gomart.DataSink, error) {
	pg, err := writers.NewPostgresWriter(ctx,
		writers.WithPostgresDSN(a.targetDSN),
		writers.WithTableName(tableName),
		writers.WithTruncateTable(true),
	)
	if err != nil {
		return nil, err
	}
	if a.cfg.DumpDir == "" {
		return pg, nil
	}

	f, err := os.Create(filepath.Join(a.cfg.DumpDir, tableName+".csv"))
	if err != nil {
		pg.Close()
		return nil, err
	}
	return writers.NewMultiSink(pg, writers.NewCSVWriter(f)), nil
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger
}
