// Package money formats ledger amounts for display.
package money

import (
	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Format renders amount in currency using the currency's symbol, grouping and
// number of fraction digits. Unknown currency codes fall back to two digits.
func Format(amount decimal.Decimal, currency string) string {
	cur := gomoney.GetCurrency(currency)
	if cur == nil {
		cur = gomoney.AddCurrency(currency, currency+" ", "$1", ".", ",", 2)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}

// Round rounds amount to the number of fraction digits used by currency.
func Round(amount decimal.Decimal, currency string) decimal.Decimal {
	fraction := 2
	if cur := gomoney.GetCurrency(currency); cur != nil {
		fraction = cur.Fraction
	}
	return amount.Round(int32(fraction))
}
