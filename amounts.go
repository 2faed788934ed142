package main

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const currencySymbol = "R$"

// NormalizeAmount converts cell to amount. Never fails, everything unparseable is zero.
func NormalizeAmount(cell Cell) decimal.Decimal {
	switch cell.Kind {
	case CellNumber:
		if math.IsNaN(cell.Number) || math.IsInf(cell.Number, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(cell.Number)
	case CellText:
		return ParseAmountString(cell.Text)
	}
	return decimal.Zero
}

// ParseAmountString parses "1.234,56", "R$ 1.234,56", "1234,56" or "1234.56" to amount.
// If both "." and "," are present then "." is a thousands separator (Brazilian notation),
// otherwise "," is a decimal point. Returns zero for blank, "-" or garbage.
func ParseAmountString(s string) decimal.Decimal {
	s = strings.ReplaceAll(s, currencySymbol, "")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\u00a0':
			return -1
		}
		return r
	}, s)
	if s == "" || s == "-" {
		return decimal.Zero
	}
	if strings.Contains(s, ".") && strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.ReplaceAll(s, ",", ".")
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
