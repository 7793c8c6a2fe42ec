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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aaronlmathis/gomart/table"
)

func TestNotNull(t *testing.T) {
	p := NotNull("a", "b")

	assert.True(t, p(table.Row{"a": table.Int(1), "b": table.Text("x")}))
	assert.False(t, p(table.Row{"a": table.Null(), "b": table.Text("x")}))
	// Empty text counts as null; missing columns read as Null.
	assert.False(t, p(table.Row{"a": table.Int(1), "b": table.Text("")}))
	assert.False(t, p(table.Row{"a": table.Int(1)}))
}

func TestMatchesRegex(t *testing.T) {
	p := MatchesRegex("email", `^[\w.-]+@[\w.-]+\.\w+$`)
	assert.True(t, p(table.Row{"email": table.Text("a@b.com")}))
	assert.False(t, p(table.Row{"email": table.Text("nope")}))
	assert.False(t, p(table.Row{"email": table.Null()}))
}

func TestDigitsLen(t *testing.T) {
	p := DigitsLen("card_number", 16)
	assert.True(t, p(table.Row{"card_number": table.Text("4252720361802860")}))
	assert.False(t, p(table.Row{"card_number": table.Text("425272036180286")}))
	assert.False(t, p(table.Row{"card_number": table.Text("425272036180286x")}))
	assert.False(t, p(table.Row{"card_number": table.Int(4252720361802860)}))
}

func TestInRange(t *testing.T) {
	p := InRange("age", 0, 120)
	assert.True(t, p(table.Row{"age": table.Int(34)}))
	assert.True(t, p(table.Row{"age": table.Float(0)}))
	assert.False(t, p(table.Row{"age": table.Int(150)}))
	assert.False(t, p(table.Row{"age": table.Text("34")}))
}

func TestNonNegative(t *testing.T) {
	p := NonNegative("qty")
	assert.True(t, p(table.Row{"qty": table.Float(0)}))
	assert.False(t, p(table.Row{"qty": table.Float(-1)}))
	assert.False(t, p(table.Row{"qty": table.Null()}))
}

func TestEquals(t *testing.T) {
	p := Equals("store_type", table.Text("Web Portal"))
	assert.True(t, p(table.Row{"store_type": table.Text("Web Portal")}))
	assert.False(t, p(table.Row{"store_type": table.Text("Local")}))
}

func TestNullOr(t *testing.T) {
	p := NullOr("staff", NonNegative("staff"))
	assert.True(t, p(table.Row{"staff": table.Null()}))
	assert.True(t, p(table.Row{"staff": table.Float(12)}))
	assert.False(t, p(table.Row{"staff": table.Float(-3)}))
}

func TestAnyAll(t *testing.T) {
	portal := Equals("store_type", table.Text("Web Portal"))
	located := All(NotNull("latitude"), NotNull("longitude"))
	keep := Any(portal, located)

	assert.True(t, keep(table.Row{
		"store_type": table.Text("Web Portal"),
		"latitude":   table.Null(),
		"longitude":  table.Null(),
	}))
	assert.True(t, keep(table.Row{
		"store_type": table.Text("Local"),
		"latitude":   table.Float(51.5),
		"longitude":  table.Float(-0.1),
	}))
	assert.False(t, keep(table.Row{
		"store_type": table.Text("Local"),
		"latitude":   table.Null(),
		"longitude":  table.Float(-0.1),
	}))
}
