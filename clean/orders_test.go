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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronlmathis/gomart/table"
)

func orderTable(rows ...table.Row) *table.Table {
	t := table.New("level_0", "index", "user_uuid", "First Name", "Last Name",
		"card_number", "store_code", "product_code", "product_quantity")
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

func validOrder() table.Row {
	return table.Row{
		"level_0":          table.Int(0),
		"index":            table.Int(0),
		"user_uuid":        table.Text("3b8b1a2f-93b7-4a2e-9f1c-0d5a6f3e1b22"),
		"First Name":       table.Text("Sigfried"),
		"Last Name":        table.Text("Noel"),
		"card_number":      table.Int(4971858637664481),
		"store_code":       table.Text("HI-9B97EE4E"),
		"product_code":     table.Text("P1"),
		"product_quantity": table.Text("3"),
	}
}

func TestOrders_DropsArtifactAndNameColumns(t *testing.T) {
	tbl := orderTable(validOrder())

	out, err := Orders(tbl, DefaultOrderRules())
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())

	for _, col := range []string{"level_0", "index", "first_name", "last_name"} {
		assert.False(t, out.HasColumn(col), "column %s should be dropped", col)
	}
}

func TestOrders_CardNumbersBecomeText(t *testing.T) {
	tbl := orderTable(validOrder())

	out, err := Orders(tbl, DefaultOrderRules())
	require.NoError(t, err)

	num, ok := out.Row(0)["card_number"].Text()
	require.True(t, ok)
	assert.Equal(t, "4971858637664481", num)
}

func TestOrders_QuantityMustBeNonNegativeNumber(t *testing.T) {
	negative := validOrder()
	negative["product_code"] = table.Text("P2")
	negative["product_quantity"] = table.Text("-2")

	garbage := validOrder()
	garbage["product_code"] = table.Text("P3")
	garbage["product_quantity"] = table.Text("lots")

	tbl := orderTable(validOrder(), negative, garbage)

	out, err := Orders(tbl, DefaultOrderRules())
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())

	qty, ok := out.Row(0)["product_quantity"].Float()
	require.True(t, ok)
	assert.Equal(t, 3.0, qty)
}

func TestOrders_ExactDuplicatesCollapse(t *testing.T) {
	tbl := orderTable(validOrder(), validOrder())

	out, err := Orders(tbl, DefaultOrderRules())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
}

func TestOrders_MissingRequiredColumnIsContractError(t *testing.T) {
	tbl := table.New("user_uuid", "card_number")
	tbl.Append(table.Row{"user_uuid": table.Text("u"), "card_number": table.Int(1)})

	_, err := Orders(tbl, DefaultOrderRules())
	require.Error(t, err)

	var contract *ContractError
	require.True(t, errors.As(err, &contract))
	assert.Equal(t, "order", contract.Entity)
}

func TestOrders_Idempotent(t *testing.T) {
	tbl := orderTable(validOrder())

	once, err := Orders(tbl, DefaultOrderRules())
	require.NoError(t, err)

	twice, err := Orders(once.Clone(), DefaultOrderRules())
	require.NoError(t, err)
	require.Equal(t, once.Len(), twice.Len())
	assert.True(t, once.Row(0)["card_number"].Equal(twice.Row(0)["card_number"]))
	assert.True(t, once.Row(0)["product_quantity"].Equal(twice.Row(0)["product_quantity"]))
}
