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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cardColumns = []string{"card_number", "expiry_date", "card_provider", "date_payment_confirmed"}

func TestMapWords_AbsorbsMultiWordProvider(t *testing.T) {
	words := []string{"30060773296197", "09/26", "Diners", "Club", "/", "Carte", "Blanche", "2015-11-25"}

	row, ok := mapWords(words, cardColumns, 2)
	require.True(t, ok)

	num, _ := row["card_number"].Text()
	assert.Equal(t, "30060773296197", num)
	provider, _ := row["card_provider"].Text()
	assert.Equal(t, "Diners Club / Carte Blanche", provider)
	confirmed, _ := row["date_payment_confirmed"].Text()
	assert.Equal(t, "2015-11-25", confirmed)
}

func TestMapWords_SingleWordPerColumn(t *testing.T) {
	words := []string{"4252720361802860", "09/26", "VISA", "2022-03-10"}

	row, ok := mapWords(words, cardColumns, 2)
	require.True(t, ok)
	provider, _ := row["card_provider"].Text()
	assert.Equal(t, "VISA", provider)
}

func TestMapWords_RejectsShortRowsAndHeaders(t *testing.T) {
	_, ok := mapWords([]string{"4252720361802860", "09/26"}, cardColumns, 2)
	assert.False(t, ok)

	_, ok = mapWords(cardColumns, cardColumns, 2)
	assert.False(t, ok)
}

func TestNewPDFReader_RequiresConfiguration(t *testing.T) {
	ctx := context.Background()

	_, err := NewPDFReader(ctx)
	assert.Error(t, err)

	_, err = NewPDFReader(ctx, WithPDFColumns(2, cardColumns...))
	assert.Error(t, err) // neither path nor URL

	_, err = NewPDFReader(ctx, WithPDFColumns(9, cardColumns...), WithPDFPath("x.pdf"))
	assert.Error(t, err) // absorb column out of range
}
