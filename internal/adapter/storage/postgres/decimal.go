package postgres

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts travel as text so NUMERIC precision survives the round trip.
func parseNumeric(column, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %s %q: %w", column, s, err)
	}
	return d, nil
}
