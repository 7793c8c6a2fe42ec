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
	"strconv"
	"time"
)

// Package table defines the in-memory tabular value model shared by every
// extractor, cleaner, and loader in GoMart.
//
// A Cell is a tagged union with an explicit Null variant. Coercion failures
// are represented as Null cells rather than errors; a cell's type is a
// property of its value, not of its column.

// Kind identifies the variant held by a Cell.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindInt
	KindFloat
	KindDate
	KindTimestamp
	KindBool
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	case KindTimestamp:
		return "timestamp"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Cell is a single tabular value. The zero value is Null.
type Cell struct {
	kind Kind
	text string
	i    int64
	f    float64
	t    time.Time
	b    bool
}

// Null returns the Null cell.
func Null() Cell {
	return Cell{}
}

// Text returns a text cell.
func Text(s string) Cell {
	return Cell{kind: KindText, text: s}
}

// Int returns an integer cell.
func Int(v int64) Cell {
	return Cell{kind: KindInt, i: v}
}

// Float returns a float cell.
func Float(v float64) Cell {
	return Cell{kind: KindFloat, f: v}
}

// Date returns a calendar-date cell. Any time-of-day component is discarded.
func Date(t time.Time) Cell {
	y, m, d := t.Date()
	return Cell{kind: KindDate, t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Timestamp returns a date-plus-time cell.
func Timestamp(t time.Time) Cell {
	return Cell{kind: KindTimestamp, t: t}
}

// Bool returns a boolean cell.
func Bool(v bool) Cell {
	return Cell{kind: KindBool, b: v}
}

// Kind reports the variant held by the cell.
func (c Cell) Kind() Kind {
	return c.kind
}

// IsNull reports whether the cell is the Null variant.
func (c Cell) IsNull() bool {
	return c.kind == KindNull
}

// Text returns the text payload. ok is false for non-text cells.
func (c Cell) Text() (string, bool) {
	if c.kind != KindText {
		return "", false
	}
	return c.text, true
}

// Int returns the integer payload. ok is false for non-integer cells.
func (c Cell) Int() (int64, bool) {
	if c.kind != KindInt {
		return 0, false
	}
	return c.i, true
}

// Float returns the numeric payload as a float64. Integer cells convert.
func (c Cell) Float() (float64, bool) {
	switch c.kind {
	case KindFloat:
		return c.f, true
	case KindInt:
		return float64(c.i), true
	default:
		return 0, false
	}
}

// Time returns the time payload of a Date or Timestamp cell.
func (c Cell) Time() (time.Time, bool) {
	if c.kind != KindDate && c.kind != KindTimestamp {
		return time.Time{}, false
	}
	return c.t, true
}

// Bool returns the boolean payload. ok is false for non-bool cells.
func (c Cell) Bool() (bool, bool) {
	if c.kind != KindBool {
		return false, false
	}
	return c.b, true
}

// String renders the cell for display and text sinks. Null renders empty.
func (c Cell) String() string {
	switch c.kind {
	case KindNull:
		return ""
	case KindText:
		return c.text
	case KindInt:
		return strconv.FormatInt(c.i, 10)
	case KindFloat:
		return strconv.FormatFloat(c.f, 'f', -1, 64)
	case KindDate:
		return c.t.Format("2006-01-02")
	case KindTimestamp:
		return c.t.Format("2006-01-02 15:04:05")
	case KindBool:
		return strconv.FormatBool(c.b)
	default:
		return ""
	}
}

// Value returns the cell payload as a database/sql driver argument.
func (c Cell) Value() interface{} {
	switch c.kind {
	case KindNull:
		return nil
	case KindText:
		return c.text
	case KindInt:
		return c.i
	case KindFloat:
		return c.f
	case KindDate, KindTimestamp:
		return c.t
	case KindBool:
		return c.b
	default:
		return nil
	}
}

// Equal reports whether two cells hold the same variant and payload.
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindNull:
		return true
	case KindText:
		return c.text == o.text
	case KindInt:
		return c.i == o.i
	case KindFloat:
		return c.f == o.f
	case KindDate, KindTimestamp:
		return c.t.Equal(o.t)
	case KindBool:
		return c.b == o.b
	default:
		return false
	}
}

// keyString renders the cell into a string usable as part of a dedupe key.
// The kind prefix keeps Text("1") distinct from Int(1).
func (c Cell) keyString() string {
	return strconv.Itoa(int(c.kind)) + ":" + c.String()
}
