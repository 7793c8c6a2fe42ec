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

package table

import (
	"fmt"
	"strings"
)

// Row maps a column name to a cell. Columns absent from the row read as Null.
type Row map[string]Cell

// Get returns the cell for a column, or Null when the row has no entry.
func (r Row) Get(col string) Cell {
	return r[col]
}

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// MissingColumnError reports a column the table schema was required to have
// but does not. It indicates an extractor or caller bug, not a data defect.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table missing required column %q", e.Column)
}

// Table is an ordered sequence of rows with a declared column order.
// A cleaner exclusively owns the table it is handed; all mutating methods
// operate in place and preserve the relative order of the rows they keep.
type Table struct {
	cols []string
	rows []Row
}

// New creates an empty table with the given column order.
func New(cols ...string) *Table {
	return &Table{cols: append([]string(nil), cols...)}
}

// Columns returns the declared column names in order.
func (t *Table) Columns() []string {
	return t.cols
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the i-th row.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Append adds a row. Keys not yet declared as columns are appended to the
// column order so tables built row-by-row stay self-describing.
func (t *Table) Append(r Row) {
	for k := range r {
		if !t.HasColumn(k) {
			t.cols = append(t.cols, k)
		}
	}
	t.rows = append(t.rows, r)
}

// AddColumn declares a column if it is not already present. Existing rows
// read Null for it until written.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.cols = append(t.cols, name)
	}
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.cols {
		if c == name {
			return true
		}
	}
	return false
}

// Require verifies that every named column is declared, returning a
// MissingColumnError for the first absent one.
func (t *Table) Require(cols ...string) error {
	for _, c := range cols {
		if !t.HasColumn(c) {
			return &MissingColumnError{Column: c}
		}
	}
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{cols: append([]string(nil), t.cols...)}
	out.rows = make([]Row, len(t.rows))
	for i, r := range t.rows {
		out.rows[i] = r.Clone()
	}
	return out
}

// Filter keeps only the rows for which keep returns true, preserving order.
func (t *Table) Filter(keep func(Row) bool) {
	kept := t.rows[:0]
	for _, r := range t.rows {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	t.rows = kept
}

// Apply rewrites every cell of a column through fn. Missing entries are
// presented to fn as Null.
func (t *Table) Apply(col string, fn func(Cell) Cell) {
	for _, r := range t.rows {
		r[col] = fn(r[col])
	}
}

// Rename changes a column's name in the schema and in every row.
func (t *Table) Rename(old, new string) {
	if old == new || !t.HasColumn(old) {
		return
	}
	for i, c := range t.cols {
		if c == old {
			t.cols[i] = new
		}
	}
	for _, r := range t.rows {
		if cell, ok := r[old]; ok {
			delete(r, old)
			r[new] = cell
		}
	}
}

// DropColumns removes the named columns from the schema and every row.
// Unknown names are ignored.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := t.cols[:0]
	for _, c := range t.cols {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	t.cols = kept
	for _, r := range t.rows {
		for n := range drop {
			delete(r, n)
		}
	}
}

// NormalizeColumns rewrites every column name to trimmed lower case with
// inner spaces replaced by underscores. A column whose normalized name is
// already taken by another column keeps its original name, so no column is
// silently overwritten.
func (t *Table) NormalizeColumns() {
	for _, c := range t.cols {
		norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(c)), " ", "_")
		if norm != c && t.HasColumn(norm) {
			continue
		}
		t.Rename(c, norm)
	}
}

// DedupeBy removes rows sharing the same composite key over the given
// columns. The first occurrence in original order survives.
func (t *Table) DedupeBy(cols ...string) {
	seen := make(map[string]bool, len(t.rows))
	t.Filter(func(r Row) bool {
		key := rowKey(r, cols)
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	})
}

// DedupeRows removes exact duplicate rows over every declared column,
// first occurrence wins.
func (t *Table) DedupeRows() {
	t.DedupeBy(t.cols...)
}

func rowKey(r Row, cols []string) string {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		b.WriteString(r[c].keyString())
	}
	return b.String()
}
