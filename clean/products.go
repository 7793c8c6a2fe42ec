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

package clean

import (
	"github.com/aaronlmathis/gomart/coerce"
	"github.com/aaronlmathis/gomart/filter"
	"github.com/aaronlmathis/gomart/table"
	"github.com/aaronlmathis/gomart/transform"
)

// ProductRules configures the product cleaner.
type ProductRules struct {
	Required       []string
	WeightColumn   string // free-text quantity+unit, converted to kilograms
	PriceColumn    string
	DateColumn     string
	DateLayouts    []string
	UUIDColumn     string
	RemovedColumn  string
	RemovedMapping map[string]table.Cell
	IndexColumn    string
	DedupeKeys     []string
}

// DefaultProductRules returns the rules for the products.csv -> dim_products
// load. The removed-status spellings are the source's, typo included.
func DefaultProductRules() ProductRules {
	return ProductRules{
		Required:      []string{"product_name", "product_price", "category", "EAN", "date_added", "uuid", "product_code"},
		WeightColumn:  "weight",
		PriceColumn:   "product_price",
		DateColumn:    "date_added",
		UUIDColumn:    "uuid",
		RemovedColumn: "removed",
		RemovedMapping: map[string]table.Cell{
			"Still_avaliable": table.Bool(true),
			"Removed":         table.Bool(false),
		},
		IndexColumn: "index",
		DedupeKeys:  []string{"product_code"},
	}
}

// Products cleans the product listing into the shape dim_products requires.
// Weights are normalised to kilograms first, in the source's unit-density
// convention for liquids; rows whose weight or price cannot be parsed are
// dropped.
func Products(t *table.Table, r ProductRules) (*table.Table, error) {
	if err := requireColumns("product", t, r.Required...); err != nil {
		return nil, err
	}
	if err := requireColumns("product", t, r.WeightColumn); err != nil {
		return nil, err
	}

	t.Filter(filter.NotNull(r.Required...))

	t.Apply(r.WeightColumn, coerce.QuantityToKg)
	t.Apply(r.PriceColumn, func(c table.Cell) table.Cell {
		return coerce.ParseNumber(coerce.StripCurrency(c))
	})
	t.Apply(r.DateColumn, func(c table.Cell) table.Cell {
		return coerce.ParseDate(c, r.DateLayouts...)
	})
	t.Apply(r.UUIDColumn, coerce.CanonicalUUID)
	if t.HasColumn(r.RemovedColumn) {
		applyRows(t, transform.MapValues(r.RemovedColumn, r.RemovedMapping, table.KindBool))
	}

	t.Filter(filter.NotNull(r.WeightColumn, r.PriceColumn, r.DateColumn, r.UUIDColumn))

	t.DedupeBy(r.DedupeKeys...)

	t.DropColumns(r.IndexColumn)
	return t, nil
}
