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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronlmathis/gomart/table"
)

func TestParseDateTransform(t *testing.T) {
	row := table.Row{"join_date": table.Text("2019-07-05")}
	row = ParseDate("join_date")(row)
	got, ok := row["join_date"].Time()
	require.True(t, ok)
	assert.Equal(t, time.Date(2019, 7, 5, 0, 0, 0, 0, time.UTC), got)

	row = table.Row{"join_date": table.Text("garbage")}
	row = ParseDate("join_date")(row)
	assert.True(t, row["join_date"].IsNull())
}

func TestTrimSpace(t *testing.T) {
	row := table.Row{
		"country_code": table.Text("  GB "),
		"continent":    table.Text("Europe"),
		"staff":        table.Int(5),
	}
	row = TrimSpace("country_code", "continent", "staff")(row)

	s, _ := row["country_code"].Text()
	assert.Equal(t, "GB", s)
	// Non-text cells are left untouched.
	v, _ := row["staff"].Int()
	assert.Equal(t, int64(5), v)
}

func TestToText(t *testing.T) {
	row := table.Row{"card_number": table.Int(4971858637664481)}
	row = ToText("card_number")(row)
	s, ok := row["card_number"].Text()
	require.True(t, ok)
	assert.Equal(t, "4971858637664481", s)

	// Null stays Null rather than becoming empty text.
	row = table.Row{"card_number": table.Null()}
	row = ToText("card_number")(row)
	assert.True(t, row["card_number"].IsNull())
}

func TestDefaultFill(t *testing.T) {
	def := table.Text("Unknown")

	row := table.Row{"provider": table.Null()}
	row = DefaultFill("provider", def)(row)
	s, _ := row["provider"].Text()
	assert.Equal(t, "Unknown", s)

	row = table.Row{"provider": table.Text("   ")}
	row = DefaultFill("provider", def)(row)
	s, _ = row["provider"].Text()
	assert.Equal(t, "Unknown", s)

	row = table.Row{"provider": table.Text("VISA 16 digit")}
	row = DefaultFill("provider", def)(row)
	s, _ = row["provider"].Text()
	assert.Equal(t, "VISA 16 digit", s)
}

func TestMapValues(t *testing.T) {
	mapping := map[string]table.Cell{
		"Still_avaliable": table.Bool(true),
		"Removed":         table.Bool(false),
	}

	row := table.Row{"removed": table.Text("Still_avaliable")}
	row = MapValues("removed", mapping, table.KindBool)(row)
	b, ok := row["removed"].Bool()
	require.True(t, ok)
	assert.True(t, b)

	// Unmapped values become Null.
	row = table.Row{"removed": table.Text("maybe")}
	row = MapValues("removed", mapping, table.KindBool)(row)
	assert.True(t, row["removed"].IsNull())

	// Already-mapped cells pass through, so a second run is a no-op.
	row = table.Row{"removed": table.Bool(false)}
	row = MapValues("removed", mapping, table.KindBool)(row)
	b, ok = row["removed"].Bool()
	require.True(t, ok)
	assert.False(t, b)
}

func TestCopyIfNull(t *testing.T) {
	row := table.Row{"lat": table.Null(), "latitude": table.Float(51.5)}
	row = CopyIfNull("lat", "latitude")(row)
	v, _ := row["lat"].Float()
	assert.Equal(t, 51.5, v)

	row = table.Row{"lat": table.Float(48.8), "latitude": table.Float(51.5)}
	row = CopyIfNull("lat", "latitude")(row)
	v, _ = row["lat"].Float()
	assert.Equal(t, 48.8, v)
}

func TestChain(t *testing.T) {
	row := table.Row{"price": table.Text("£3.99")}
	row = Chain(StripCurrency("price"), ParseNumber("price"))(row)
	v, ok := row["price"].Float()
	require.True(t, ok)
	assert.Equal(t, 3.99, v)
}
