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

package readers

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronlmathis/gomart/table"
)

func TestCSVReader_InfersCellTypes(t *testing.T) {
	data := `product_code,product_price,in_stock,weight
P1,3.99,true,250g
P2,12,false,1.5kg`

	reader, err := NewCSVReader(io.NopCloser(strings.NewReader(data)))
	require.NoError(t, err)
	defer reader.Close()

	ctx := context.Background()

	row, err := reader.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, table.KindText, row["product_code"].Kind())
	assert.Equal(t, table.KindFloat, row["product_price"].Kind())
	assert.Equal(t, table.KindBool, row["in_stock"].Kind())
	assert.Equal(t, table.KindText, row["weight"].Kind())

	row, err = reader.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, table.KindInt, row["product_price"].Kind())

	_, err = reader.Read(ctx)
	assert.Equal(t, io.EOF, err)
}

func TestCSVReader_EmptyFieldsAreNull(t *testing.T) {
	data := `a,b
1,
,2`

	reader, err := NewCSVReader(io.NopCloser(strings.NewReader(data)))
	require.NoError(t, err)
	defer reader.Close()

	ctx := context.Background()

	row, err := reader.Read(ctx)
	require.NoError(t, err)
	assert.True(t, row["b"].IsNull())

	row, err = reader.Read(ctx)
	require.NoError(t, err)
	assert.True(t, row["a"].IsNull())

	stats := reader.Stats()
	assert.Equal(t, int64(2), stats.RecordsRead)
	assert.Equal(t, int64(1), stats.NullValueCounts["a"])
	assert.Equal(t, int64(1), stats.NullValueCounts["b"])
}

func TestCSVReader_CustomComma(t *testing.T) {
	data := "a;b\n1;2\n"

	reader, err := NewCSVReader(io.NopCloser(strings.NewReader(data)), WithCSVComma(';'))
	require.NoError(t, err)
	defer reader.Close()

	row, err := reader.Read(context.Background())
	require.NoError(t, err)
	v, _ := row["b"].Int()
	assert.Equal(t, int64(2), v)
}

func TestCSVReader_NoHeaders(t *testing.T) {
	data := "x,y\n"

	reader, err := NewCSVReader(io.NopCloser(strings.NewReader(data)), WithCSVHasHeaders(false))
	require.NoError(t, err)
	defer reader.Close()

	row, err := reader.Read(context.Background())
	require.NoError(t, err)
	s, _ := row["col_0"].Text()
	assert.Equal(t, "x", s)
}
