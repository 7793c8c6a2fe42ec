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
	"time"

	"github.com/aaronlmathis/gomart/coerce"
	"github.com/aaronlmathis/gomart/filter"
	"github.com/aaronlmathis/gomart/table"
)

// UserRules configures the user cleaner. Every tunable the cleaner uses is
// declared here so the rules are independently testable.
type UserRules struct {
	Required      []string // columns that must be non-null
	DateColumns   []string // columns coerced to calendar dates
	DateLayouts   []string // layouts tried for date coercion; empty = defaults
	EmailColumn   string
	EmailPattern  string
	PhoneColumn   string // normalised to digits when present
	BirthColumn   string
	ReferenceYear int // year age is computed against
	MaxAge        int
	DedupeKeys    []string
}

// DefaultUserRules returns the rules for the legacy_users -> dim_users load.
func DefaultUserRules() UserRules {
	return UserRules{
		Required:      []string{"first_name", "last_name", "email_address", "join_date", "date_of_birth"},
		DateColumns:   []string{"join_date", "date_of_birth"},
		EmailColumn:   "email_address",
		EmailPattern:  `^[\w.-]+@[\w.-]+\.\w+$`,
		PhoneColumn:   "phone_number",
		BirthColumn:   "date_of_birth",
		ReferenceYear: time.Now().Year(),
		MaxAge:        120,
		DedupeKeys:    []string{"email_address", "user_uuid"},
	}
}

// Users cleans the legacy user table into the shape dim_users requires.
func Users(t *table.Table, r UserRules) (*table.Table, error) {
	if err := requireColumns("user", t, r.Required...); err != nil {
		return nil, err
	}
	if err := requireColumns("user", t, r.DedupeKeys...); err != nil {
		return nil, err
	}

	t.Filter(filter.NotNull(r.Required...))

	for _, col := range r.DateColumns {
		t.Apply(col, func(c table.Cell) table.Cell {
			return coerce.ParseDate(c, r.DateLayouts...)
		})
	}
	if t.HasColumn(r.PhoneColumn) {
		t.Apply(r.PhoneColumn, coerce.DigitsOnly)
	}

	// A failed date parse is now a Null; the second pass turns it into a drop.
	t.Filter(filter.NotNull(r.DateColumns...))

	t.Filter(filter.MatchesRegex(r.EmailColumn, r.EmailPattern))
	t.Filter(func(row table.Row) bool {
		born, ok := row[r.BirthColumn].Time()
		if !ok {
			return false
		}
		age := r.ReferenceYear - born.Year()
		return age >= 0 && age <= r.MaxAge
	})

	t.DedupeBy(r.DedupeKeys...)
	return t, nil
}
