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

// DateRules configures the date-dimension cleaner.
type DateRules struct {
	TimestampColumn  string // full timestamp, or time-of-day when Y/M/D split out
	YearColumn       string
	MonthColumn      string
	DayColumn        string
	TimestampLayouts []string
	UUIDColumn       string // canonical identifier column name
	UUIDSource       string // identifier column as delivered by the extractor
	PeriodColumn     string
	PeriodDefault    string
}

// DefaultDateRules returns the rules for the date_details.json ->
// dim_date_times load.
func DefaultDateRules() DateRules {
	return DateRules{
		TimestampColumn: "timestamp",
		YearColumn:      "year",
		MonthColumn:     "month",
		DayColumn:       "day",
		UUIDColumn:      "date_uuid",
		UUIDSource:      "date_uuid",
		PeriodColumn:    "time_period",
		PeriodDefault:   "Unknown",
	}
}

// Dates cleans the date-detail table into the shape dim_date_times requires.
// When the source splits the calendar date across year/month/day columns,
// the timestamp is synthesised by joining them with the time-of-day string
// before parsing; rows whose timestamp cannot be parsed are dropped.
func Dates(t *table.Table, r DateRules) (*table.Table, error) {
	split := t.HasColumn(r.YearColumn) && t.HasColumn(r.MonthColumn) && t.HasColumn(r.DayColumn)
	if !split {
		if err := requireColumns("date", t, r.TimestampColumn); err != nil {
			return nil, err
		}
	}
	if err := requireColumns("date", t, r.UUIDSource); err != nil {
		return nil, err
	}

	if split {
		t.AddColumn(r.TimestampColumn)
		for i := 0; i < t.Len(); i++ {
			row := t.Row(i)
			c := row[r.TimestampColumn]
			if c.Kind() == table.KindTimestamp {
				continue
			}
			joined := row[r.YearColumn].String() + "-" +
				row[r.MonthColumn].String() + "-" +
				row[r.DayColumn].String() + " " + c.String()
			row[r.TimestampColumn] = coerce.ParseTimestamp(table.Text(joined), r.TimestampLayouts...)
		}
	} else {
		t.Apply(r.TimestampColumn, func(c table.Cell) table.Cell {
			return coerce.ParseTimestamp(c, r.TimestampLayouts...)
		})
	}

	t.Filter(filter.NotNull(r.TimestampColumn))

	t.Rename(r.UUIDSource, r.UUIDColumn)

	t.AddColumn(r.PeriodColumn)
	applyRows(t, transform.DefaultFill(r.PeriodColumn, table.Text(r.PeriodDefault)))

	return t, nil
}
