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
	"github.com/aaronlmathis/gomart/filter"
	"github.com/aaronlmathis/gomart/table"
	"github.com/aaronlmathis/gomart/transform"
)

// OrderRules configures the orders fact-table cleaner.
type OrderRules struct {
	Required       []string
	CardColumn     string
	QuantityColumn string
	DropColumns    []string // row-index artifacts and denormalised name fields
}

// DefaultOrderRules returns the rules for the orders_table fact load.
func DefaultOrderRules() OrderRules {
	return OrderRules{
		Required:       []string{"user_uuid", "card_number", "store_code", "product_code", "product_quantity"},
		CardColumn:     "card_number",
		QuantityColumn: "product_quantity",
		DropColumns:    []string{"index", "level_0", "1", "first_name", "last_name"},
	}
}

// Orders cleans the raw order rows into the fact table joining the
// dimensions. Column names are normalised before the contract check so the
// required set is stated in destination terms.
func Orders(t *table.Table, r OrderRules) (*table.Table, error) {
	t.NormalizeColumns()

	if err := requireColumns("order", t, r.Required...); err != nil {
		return nil, err
	}

	t.DropColumns(r.DropColumns...)

	t.Filter(filter.NotNull(r.Required...))

	applyRows(t, transform.ToText(r.CardColumn))
	applyRows(t, transform.ParseNumber(r.QuantityColumn))

	t.Filter(filter.NotNull(r.QuantityColumn))

	t.Filter(filter.NonNegative(r.QuantityColumn))

	t.DedupeRows()
	return t, nil
}
