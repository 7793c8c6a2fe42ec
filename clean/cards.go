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

// CardRules configures the card cleaner.
type CardRules struct {
	Required        []string
	NumberColumn    string
	NumberLength    int
	ExpiryColumn    string
	ExpiryLayout    string // month / two-digit year
	ConfirmedColumn string
	DateLayouts     []string
	ProviderColumn  string
	ProviderDefault string
	DedupeKeys      []string
}

// DefaultCardRules returns the rules for the card PDF -> dim_card_details load.
func DefaultCardRules() CardRules {
	return CardRules{
		Required:        []string{"card_number", "expiry_date", "card_provider", "date_payment_confirmed"},
		NumberColumn:    "card_number",
		NumberLength:    16,
		ExpiryColumn:    "expiry_date",
		ExpiryLayout:    "01/06",
		ConfirmedColumn: "date_payment_confirmed",
		ProviderColumn:  "card_provider",
		ProviderDefault: "Unknown",
		DedupeKeys:      []string{"card_number"},
	}
}

// Cards cleans the scraped card table into the shape dim_card_details
// requires. Rows with a Null provider are dropped before the provider
// default could apply; the fill step is kept for providers that arrive as
// empty text.
func Cards(t *table.Table, r CardRules) (*table.Table, error) {
	if err := requireColumns("card", t, r.Required...); err != nil {
		return nil, err
	}

	t.Filter(filter.NotNull(r.Required...))

	// Card numbers stay text end to end; a numeric type would lose digits.
	t.Apply(r.NumberColumn, coerce.DigitsOnly)
	t.Apply(r.ExpiryColumn, func(c table.Cell) table.Cell {
		return coerce.ParseDate(c, r.ExpiryLayout)
	})
	t.Apply(r.ConfirmedColumn, func(c table.Cell) table.Cell {
		return coerce.ParseDate(c, r.DateLayouts...)
	})

	t.Filter(filter.NotNull(r.ExpiryColumn, r.ConfirmedColumn))

	t.Filter(filter.DigitsLen(r.NumberColumn, r.NumberLength))

	applyRows(t, transform.DefaultFill(r.ProviderColumn, table.Text(r.ProviderDefault)))

	t.DedupeBy(r.DedupeKeys...)
	return t, nil
}
