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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_ZeroValueIsNull(t *testing.T) {
	var c Cell
	assert.True(t, c.IsNull())
	assert.Equal(t, KindNull, c.Kind())
	assert.Equal(t, "", c.String())
	assert.Nil(t, c.Value())
}

func TestCell_DateDiscardsTimeOfDay(t *testing.T) {
	c := Date(time.Date(2022, 5, 10, 14, 30, 45, 0, time.UTC))
	got, ok := c.Time()
	require.True(t, ok)
	assert.Equal(t, time.Date(2022, 5, 10, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2022-05-10", c.String())
}

func TestCell_String(t *testing.T) {
	assert.Equal(t, "hello", Text("hello").String())
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "3.14", Float(3.14).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "2022-05-10 09:30:00",
		Timestamp(time.Date(2022, 5, 10, 9, 30, 0, 0, time.UTC)).String())
}

func TestCell_FloatConvertsInt(t *testing.T) {
	f, ok := Int(7).Float()
	require.True(t, ok)
	assert.Equal(t, 7.0, f)

	_, ok = Text("7").Float()
	assert.False(t, ok)
}

func TestCell_Equal(t *testing.T) {
	assert.True(t, Text("a").Equal(Text("a")))
	assert.True(t, Null().Equal(Null()))
	assert.False(t, Text("1").Equal(Int(1)))
	assert.False(t, Int(1).Equal(Float(1)))
}

func TestRow_GetMissingIsNull(t *testing.T) {
	row := Row{"a": Int(1)}
	assert.True(t, row.Get("missing").IsNull())
}

func TestRow_CloneIsIndependent(t *testing.T) {
	row := Row{"a": Int(1)}
	clone := row.Clone()
	clone["a"] = Int(2)
	v, _ := row["a"].Int()
	assert.Equal(t, int64(1), v)
}

func TestTable_AppendDeclaresNewColumns(t *testing.T) {
	tbl := New("a")
	tbl.Append(Row{"a": Int(1), "b": Text("x")})
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_RequireReportsMissingColumn(t *testing.T) {
	tbl := New("a")
	require.NoError(t, tbl.Require("a"))

	err := tbl.Require("a", "b")
	require.Error(t, err)
	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "b", missing.Column)
}

func TestTable_FilterPreservesOrder(t *testing.T) {
	tbl := New("n")
	for i := 0; i < 6; i++ {
		tbl.Append(Row{"n": Int(int64(i))})
	}
	tbl.Filter(func(r Row) bool {
		v, _ := r["n"].Int()
		return v%2 == 0
	})
	require.Equal(t, 3, tbl.Len())
	for i, want := range []int64{0, 2, 4} {
		v, _ := tbl.Row(i)["n"].Int()
		assert.Equal(t, want, v)
	}
}

func TestTable_Rename(t *testing.T) {
	tbl := New("lat")
	tbl.Append(Row{"lat": Float(51.5)})
	tbl.Rename("lat", "latitude")
	assert.Equal(t, []string{"latitude"}, tbl.Columns())
	assert.False(t, tbl.Row(0)["latitude"].IsNull())
	assert.True(t, tbl.Row(0)["lat"].IsNull())
}

func TestTable_DropColumns(t *testing.T) {
	tbl := New("index", "code")
	tbl.Append(Row{"index": Int(0), "code": Text("A")})
	tbl.DropColumns("index", "no_such_column")
	assert.Equal(t, []string{"code"}, tbl.Columns())
	_, present := tbl.Row(0)["index"]
	assert.False(t, present)
}

func TestTable_NormalizeColumns(t *testing.T) {
	tbl := New(" First Name ", "CARD number")
	tbl.Append(Row{" First Name ": Text("Jo"), "CARD number": Text("1")})
	tbl.NormalizeColumns()
	assert.Equal(t, []string{"first_name", "card_number"}, tbl.Columns())
	s, _ := tbl.Row(0)["first_name"].Text()
	assert.Equal(t, "Jo", s)
}

func TestTable_NormalizeColumnsKeepsCollidingColumn(t *testing.T) {
	tbl := New("first_name", "First Name")
	tbl.Append(Row{"first_name": Text("keep"), "First Name": Text("raw")})
	tbl.NormalizeColumns()

	assert.Equal(t, []string{"first_name", "First Name"}, tbl.Columns())
	s, _ := tbl.Row(0)["first_name"].Text()
	assert.Equal(t, "keep", s)
	s, _ = tbl.Row(0)["First Name"].Text()
	assert.Equal(t, "raw", s)
}

func TestTable_DedupeByFirstOccurrenceWins(t *testing.T) {
	tbl := New("key", "val")
	tbl.Append(Row{"key": Text("a"), "val": Int(1)})
	tbl.Append(Row{"key": Text("b"), "val": Int(2)})
	tbl.Append(Row{"key": Text("a"), "val": Int(3)})
	tbl.DedupeBy("key")

	require.Equal(t, 2, tbl.Len())
	v, _ := tbl.Row(0)["val"].Int()
	assert.Equal(t, int64(1), v)
	v, _ = tbl.Row(1)["val"].Int()
	assert.Equal(t, int64(2), v)
}

func TestTable_DedupeKeyDistinguishesKinds(t *testing.T) {
	tbl := New("key")
	tbl.Append(Row{"key": Text("1")})
	tbl.Append(Row{"key": Int(1)})
	tbl.DedupeBy("key")
	assert.Equal(t, 2, tbl.Len())
}

func TestTable_DedupeRows(t *testing.T) {
	tbl := New("a", "b")
	tbl.Append(Row{"a": Int(1), "b": Text("x")})
	tbl.Append(Row{"a": Int(1), "b": Text("x")})
	tbl.Append(Row{"a": Int(1), "b": Text("y")})
	tbl.DedupeRows()
	assert.Equal(t, 2, tbl.Len())
}

func TestTable_CloneIsDeep(t *testing.T) {
	tbl := New("a")
	tbl.Append(Row{"a": Int(1)})
	clone := tbl.Clone()
	clone.Row(0)["a"] = Int(9)
	v, _ := tbl.Row(0)["a"].Int()
	assert.Equal(t, int64(1), v)
}
