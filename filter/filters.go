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

package filter

import (
	"regexp"

	"github.com/aaronlmathis/gomart"
	"github.com/aaronlmathis/gomart/table"
)

// Package filter provides reusable row predicates for GoMart cleaning
// pipelines. A predicate returning false drops the row; predicates never
// error, because a row failing a check is data, not a fault.

// NotNull keeps rows where none of the given fields is Null or empty text.
func NotNull(fields ...string) gomart.RowPredicate {
	return func(row table.Row) bool {
		for _, field := range fields {
			c := row[field]
			if c.IsNull() {
				return false
			}
			if s, ok := c.Text(); ok && s == "" {
				return false
			}
		}
		return true
	}
}

// MatchesRegex keeps rows where the text field matches the pattern.
// Null and non-text cells do not match.
func MatchesRegex(field, pattern string) gomart.RowPredicate {
	re := regexp.MustCompile(pattern)
	return func(row table.Row) bool {
		s, ok := row[field].Text()
		if !ok {
			return false
		}
		return re.MatchString(s)
	}
}

// DigitsLen keeps rows where the field is text of exactly n decimal digits.
func DigitsLen(field string, n int) gomart.RowPredicate {
	return func(row table.Row) bool {
		s, ok := row[field].Text()
		if !ok || len(s) != n {
			return false
		}
		for i := 0; i < len(s); i++ {
			if s[i] < '0' || s[i] > '9' {
				return false
			}
		}
		return true
	}
}

// InRange keeps rows where the field is numeric and min <= v <= max.
func InRange(field string, min, max float64) gomart.RowPredicate {
	return func(row table.Row) bool {
		v, ok := row[field].Float()
		if !ok {
			return false
		}
		return v >= min && v <= max
	}
}

// NonNegative keeps rows where the field is numeric and >= 0.
func NonNegative(field string) gomart.RowPredicate {
	return func(row table.Row) bool {
		v, ok := row[field].Float()
		if !ok {
			return false
		}
		return v >= 0
	}
}

// Equals keeps rows where the field equals the given cell.
func Equals(field string, want table.Cell) gomart.RowPredicate {
	return func(row table.Row) bool {
		return row[field].Equal(want)
	}
}

// NullOr keeps rows where the field is Null or the wrapped predicate holds.
// Used for optional numeric fields that must be valid when present.
func NullOr(field string, p gomart.RowPredicate) gomart.RowPredicate {
	return func(row table.Row) bool {
		if row[field].IsNull() {
			return true
		}
		return p(row)
	}
}

// Any keeps rows satisfying at least one of the predicates.
func Any(preds ...gomart.RowPredicate) gomart.RowPredicate {
	return func(row table.Row) bool {
		for _, p := range preds {
			if p(row) {
				return true
			}
		}
		return false
	}
}

// All keeps rows satisfying every predicate.
func All(preds ...gomart.RowPredicate) gomart.RowPredicate {
	return func(row table.Row) bool {
		for _, p := range preds {
			if !p(row) {
				return false
			}
		}
		return true
	}
}
