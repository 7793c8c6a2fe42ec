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

// StoreRules configures the store cleaner.
type StoreRules struct {
	Required      []string
	OpeningColumn string
	DateLayouts   []string
	LatColumn     string
	LonColumn     string
	LatAlias      string // optional column back-filled from LatColumn
	StaffColumn   string
	TypeColumn    string
	TypeDefault   string
	WebPortalType string // store type exempt from the coordinate requirement
	TrimColumns   []string
	IndexColumn   string // positional artifact dropped from the output
	DedupeKeys    []string
}

// DefaultStoreRules returns the rules for the store API -> dim_store_details
// load.
func DefaultStoreRules() StoreRules {
	return StoreRules{
		Required:      []string{"store_code", "opening_date"},
		OpeningColumn: "opening_date",
		LatColumn:     "latitude",
		LonColumn:     "longitude",
		LatAlias:      "lat",
		StaffColumn:   "staff_numbers",
		TypeColumn:    "store_type",
		TypeDefault:   "Unknown",
		WebPortalType: "Web Portal",
		TrimColumns:   []string{"country_code", "continent"},
		IndexColumn:   "index",
		DedupeKeys:    []string{"store_code"},
	}
}

// Stores cleans the store detail table into the shape dim_store_details
// requires. A row survives the location check if its type is the web portal
// type or both coordinates are present.
func Stores(t *table.Table, r StoreRules) (*table.Table, error) {
	if err := requireColumns("store", t, r.Required...); err != nil {
		return nil, err
	}

	t.Filter(filter.NotNull(r.Required...))

	t.Apply(r.OpeningColumn, func(c table.Cell) table.Cell {
		return coerce.ParseDate(c, r.DateLayouts...)
	})
	t.Apply(r.LatColumn, coerce.ParseNumber)
	t.Apply(r.LonColumn, coerce.ParseNumber)
	if t.HasColumn(r.StaffColumn) {
		// Staff counts arrive with stray letters; salvage the digits.
		t.Apply(r.StaffColumn, func(c table.Cell) table.Cell {
			return coerce.ParseNumber(coerce.DigitsOnly(c))
		})
	}
	applyRows(t, transform.TrimSpace(r.TrimColumns...))

	t.Filter(filter.NotNull(r.OpeningColumn))

	t.Filter(filter.Any(
		filter.Equals(r.TypeColumn, table.Text(r.WebPortalType)),
		filter.All(filter.NotNull(r.LatColumn), filter.NotNull(r.LonColumn)),
	))
	if t.HasColumn(r.StaffColumn) {
		t.Filter(filter.NullOr(r.StaffColumn, filter.NonNegative(r.StaffColumn)))
	}

	applyRows(t, transform.DefaultFill(r.TypeColumn, table.Text(r.TypeDefault)))
	if t.HasColumn(r.LatAlias) {
		applyRows(t, transform.CopyIfNull(r.LatAlias, r.LatColumn))
	}

	t.DedupeBy(r.DedupeKeys...)

	t.DropColumns(r.IndexColumn)
	return t, nil
}
