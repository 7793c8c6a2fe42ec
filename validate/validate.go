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

package validate

import (
	"fmt"
	"strings"

	"github.com/aaronlmathis/gomart/table"
)

// Package validate checks destination invariants on a cleaned table before
// it is loaded. A failed check means the cleaning stage has a bug; it is a
// contract error that fails the pipeline, never a data defect to absorb.

// TableRules declares the invariants a cleaned table must satisfy.
type TableRules struct {
	RequiredNonNull []string // columns that must be present and non-null in every row
	UniqueKey       []string // composite key that must not repeat
	MinRows         int
}

// Check validates the table against the rules, returning a descriptive error
// for the first violation found.
func (r TableRules) Check(t *table.Table) error {
	if t.Len() < r.MinRows {
		return fmt.Errorf("validate: %d rows, need at least %d", t.Len(), r.MinRows)
	}
	if err := t.Require(r.RequiredNonNull...); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := t.Require(r.UniqueKey...); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		for _, col := range r.RequiredNonNull {
			if row[col].IsNull() {
				return fmt.Errorf("validate: row %d has null %s", i, col)
			}
		}
	}

	if len(r.UniqueKey) > 0 {
		seen := make(map[string]int, t.Len())
		for i := 0; i < t.Len(); i++ {
			key := rowKey(t.Row(i), r.UniqueKey)
			if first, dup := seen[key]; dup {
				return fmt.Errorf("validate: rows %d and %d share key (%s)",
					first, i, strings.Join(r.UniqueKey, ","))
			}
			seen[key] = i
		}
	}
	return nil
}

func rowKey(row table.Row, cols []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = row[c].Kind().String() + ":" + row[c].String()
	}
	return strings.Join(parts, "\x1f")
}
