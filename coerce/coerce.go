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

package coerce

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aaronlmathis/gomart/table"
)

// Package coerce provides the field-level coercion primitives every cleaner
// is built from. Coercion failures are data, not exceptions: each primitive
// returns a Null cell on failure instead of an error. Primitives pass cells
// that already carry the target type through unchanged, which is what makes
// the cleaners idempotent.

// DateLayouts are the formats tried, in order, by ParseDate when no explicit
// layout is given. They cover the shapes seen across the legacy sources.
var DateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006 January 02",
	"2006 January 2",
	"January 2006 02",
	"January 2006 2",
	"02 January 2006",
	"2 January 2006",
	"2006-01-02 15:04:05",
}

// TimestampLayouts are the formats tried by ParseTimestamp.
var TimestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-1-2 15:04:05",
	time.RFC3339,
}

var (
	emailRe    = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	quantityRe = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*(kg|ml|g|l)\s*$`)
	nonDigitRe = regexp.MustCompile(`\D`)
	currencyRe = regexp.MustCompile(`[£$€,\s]`)
	numberRe   = regexp.MustCompile(`^[+-]?\d+(?:\.\d+)?$`)
)

// ParseDate coerces a cell to a calendar date. Text cells are parsed against
// the given layouts (DateLayouts when none are given); Date cells pass
// through; Timestamp cells are truncated. Anything else, including a failed
// parse, yields Null.
func ParseDate(c table.Cell, layouts ...string) table.Cell {
	switch c.Kind() {
	case table.KindDate:
		return c
	case table.KindTimestamp:
		t, _ := c.Time()
		return table.Date(t)
	case table.KindText:
		s, _ := c.Text()
		if len(layouts) == 0 {
			layouts = DateLayouts
		}
		s = strings.TrimSpace(s)
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return table.Date(t)
			}
		}
		return table.Null()
	default:
		return table.Null()
	}
}

// ParseTimestamp coerces a cell to a date-plus-time value with the same
// null-on-failure contract as ParseDate.
func ParseTimestamp(c table.Cell, layouts ...string) table.Cell {
	switch c.Kind() {
	case table.KindTimestamp:
		return c
	case table.KindDate:
		t, _ := c.Time()
		return table.Timestamp(t)
	case table.KindText:
		s, _ := c.Text()
		if len(layouts) == 0 {
			layouts = TimestampLayouts
		}
		s = strings.TrimSpace(s)
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return table.Timestamp(t)
			}
		}
		return table.Null()
	default:
		return table.Null()
	}
}

// ParseNumber coerces a cell to a float. Numeric cells pass through; text is
// trimmed and parsed strictly. Garbage yields Null.
func ParseNumber(c table.Cell) table.Cell {
	switch c.Kind() {
	case table.KindFloat, table.KindInt:
		f, _ := c.Float()
		return table.Float(f)
	case table.KindText:
		s, _ := c.Text()
		s = strings.TrimSpace(s)
		if !numberRe.MatchString(s) {
			return table.Null()
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return table.Null()
		}
		return table.Float(f)
	default:
		return table.Null()
	}
}

// StripCurrency removes currency symbols, group separators, and whitespace
// from a text cell so price fields can be handed to ParseNumber. Non-text
// cells pass through untouched.
func StripCurrency(c table.Cell) table.Cell {
	s, ok := c.Text()
	if !ok {
		return c
	}
	return table.Text(currencyRe.ReplaceAllString(s, ""))
}

// DigitsOnly strips every non-digit character from the cell's textual form,
// yielding a text cell. Numeric cells are rendered to text first so card
// numbers that arrived as numbers survive as digit strings. Null stays Null.
func DigitsOnly(c table.Cell) table.Cell {
	if c.IsNull() {
		return c
	}
	return table.Text(nonDigitRe.ReplaceAllString(c.String(), ""))
}

// QuantityToKg extracts a leading numeric literal and a unit of g, kg, ml,
// or l from a text cell and converts to kilograms: grams and millilitres
// divide by 1000, kilograms and litres pass as-is. Litres are treated as
// mass-equivalent kilograms under a unit-density assumption. Numeric cells
// are taken to be kilograms already. Any other shape yields Null.
func QuantityToKg(c table.Cell) table.Cell {
	switch c.Kind() {
	case table.KindFloat, table.KindInt:
		f, _ := c.Float()
		return table.Float(f)
	case table.KindText:
		s, _ := c.Text()
		m := quantityRe.FindStringSubmatch(s)
		if m == nil {
			return table.Null()
		}
		f, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return table.Null()
		}
		switch strings.ToLower(m[2]) {
		case "g", "ml":
			return table.Float(f / 1000)
		case "kg", "l":
			return table.Float(f)
		default:
			return table.Null()
		}
	default:
		return table.Null()
	}
}

// EmailOK reports whether the cell holds text matching the address pattern.
// Null and non-text cells are non-matching, not errors.
func EmailOK(c table.Cell) bool {
	s, ok := c.Text()
	if !ok {
		return false
	}
	return emailRe.MatchString(s)
}

// CanonicalUUID coerces a text cell to the canonical UUID string form.
// Unparseable text and non-text cells yield Null.
func CanonicalUUID(c table.Cell) table.Cell {
	s, ok := c.Text()
	if !ok {
		return table.Null()
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return table.Null()
	}
	return table.Text(id.String())
}
