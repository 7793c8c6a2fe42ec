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

package transform

import (
	"strings"

	"github.com/aaronlmathis/gomart"
	"github.com/aaronlmathis/gomart/coerce"
	"github.com/aaronlmathis/gomart/table"
)

// Package transform provides reusable row-level transformer combinators for
// GoMart cleaning pipelines.
//
// Every combinator returns a gomart.RowTransform. Coercions write Null on
// failure rather than erroring; whether a Null then drops the row is the
// cleaner's decision, made by a later filter pass.

// ParseDate coerces a field to a calendar date, Null on failure.
func ParseDate(field string, layouts ...string) gomart.RowTransform {
	return func(row table.Row) table.Row {
		row[field] = coerce.ParseDate(row[field], layouts...)
		return row
	}
}

// ParseTimestamp coerces a field to a date-plus-time value, Null on failure.
func ParseTimestamp(field string, layouts ...string) gomart.RowTransform {
	return func(row table.Row) table.Row {
		row[field] = coerce.ParseTimestamp(row[field], layouts...)
		return row
	}
}

// ParseNumber coerces a field to a float, Null on failure.
func ParseNumber(field string) gomart.RowTransform {
	return func(row table.Row) table.Row {
		row[field] = coerce.ParseNumber(row[field])
		return row
	}
}

// StripCurrency removes currency symbols and group separators from a text
// field so a later ParseNumber can take it.
func StripCurrency(field string) gomart.RowTransform {
	return func(row table.Row) table.Row {
		row[field] = coerce.StripCurrency(row[field])
		return row
	}
}

// DigitsOnly strips every non-digit character from a field, keeping the
// result as text.
func DigitsOnly(field string) gomart.RowTransform {
	return func(row table.Row) table.Row {
		row[field] = coerce.DigitsOnly(row[field])
		return row
	}
}

// WeightToKg parses a quantity-plus-unit field into kilograms, Null on
// failure.
func WeightToKg(field string) gomart.RowTransform {
	return func(row table.Row) table.Row {
		row[field] = coerce.QuantityToKg(row[field])
		return row
	}
}

// CanonicalUUID rewrites a field to the canonical UUID string form, Null
// when the value is not a well-formed UUID.
func CanonicalUUID(field string) gomart.RowTransform {
	return func(row table.Row) table.Row {
		row[field] = coerce.CanonicalUUID(row[field])
		return row
	}
}

// TrimSpace trims surrounding whitespace from the given text fields.
// Non-text cells are left untouched.
func TrimSpace(fields ...string) gomart.RowTransform {
	return func(row table.Row) table.Row {
		for _, field := range fields {
			if s, ok := row[field].Text(); ok {
				row[field] = table.Text(strings.TrimSpace(s))
			}
		}
		return row
	}
}

// ToText renders a field into its textual form. Null stays Null. Used for
// identifiers such as card numbers that must never pass through a numeric
// type.
func ToText(field string) gomart.RowTransform {
	return func(row table.Row) table.Row {
		c := row[field]
		if c.IsNull() || c.Kind() == table.KindText {
			return row
		}
		row[field] = table.Text(c.String())
		return row
	}
}

// DefaultFill writes def into a field holding Null or empty text.
func DefaultFill(field string, def table.Cell) gomart.RowTransform {
	return func(row table.Row) table.Row {
		c := row[field]
		if c.IsNull() {
			row[field] = def
			return row
		}
		if s, ok := c.Text(); ok && strings.TrimSpace(s) == "" {
			row[field] = def
		}
		return row
	}
}

// MapValues replaces a text field's value according to the mapping. Values
// without a mapping become Null; cells already holding a mapped target type
// pass through.
func MapValues(field string, mapping map[string]table.Cell, passKinds ...table.Kind) gomart.RowTransform {
	return func(row table.Row) table.Row {
		c := row[field]
		for _, k := range passKinds {
			if c.Kind() == k {
				return row
			}
		}
		s, ok := c.Text()
		if !ok {
			row[field] = table.Null()
			return row
		}
		mapped, ok := mapping[s]
		if !ok {
			row[field] = table.Null()
			return row
		}
		row[field] = mapped
		return row
	}
}

// CopyIfNull back-fills dst from src when dst is Null.
func CopyIfNull(dst, src string) gomart.RowTransform {
	return func(row table.Row) table.Row {
		if row[dst].IsNull() {
			row[dst] = row[src]
		}
		return row
	}
}

// Chain composes transforms left to right.
func Chain(transforms ...gomart.RowTransform) gomart.RowTransform {
	return func(row table.Row) table.Row {
		for _, t := range transforms {
			row = t(row)
		}
		return row
	}
}
