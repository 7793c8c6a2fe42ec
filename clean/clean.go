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
	"fmt"

	"github.com/aaronlmathis/gomart"
	"github.com/aaronlmathis/gomart/table"
)

// Package clean holds the per-entity cleaning stages. Each cleaner is a pure
// function over a table it exclusively owns, applying the same fixed step
// order: null-filter on required columns, type coercions, a second
// null-filter for columns whose coercion can introduce Nulls, entity
// predicates, default fills, key dedupe, and working-column drops.
//
// Cleaners never raise on bad rows; bad rows are filtered. The only hard
// failure is a ContractError for a column the extractor should have
// delivered.

// ContractError reports a violated cleaner contract: the table schema is
// missing a column the entity's rules declare. This is an extractor or
// caller bug, not a data-quality issue, and fails the pipeline fast.
type ContractError struct {
	Entity string
	Err    error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("clean %s: %v", e.Entity, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

func requireColumns(entity string, t *table.Table, cols ...string) error {
	if err := t.Require(cols...); err != nil {
		return &ContractError{Entity: entity, Err: err}
	}
	return nil
}

func applyRows(t *table.Table, fn gomart.RowTransform) {
	for i := 0; i < t.Len(); i++ {
		fn(t.Row(i))
	}
}
