package service

import (
	"strings"

	"finance-ledger/internal/core/ports"
	"finance-ledger/pkg/apperror"

	"github.com/shopspring/decimal"
)

// CurrencyNormalizer converts amounts between the display currency and the
// canonical storage currency. The rate is always passed in: display = canonical * rate.
type CurrencyNormalizer struct {
	pair ports.CurrencyPair
}

// NewCurrencyNormalizer creates a normalizer for the given currency codes.
func NewCurrencyNormalizer(canonical, display string) *CurrencyNormalizer {
	return &CurrencyNormalizer{pair: ports.CurrencyPair{
		Canonical: strings.ToUpper(canonical),
		Display:   strings.ToUpper(display),
	}}
}

// Pair returns the configured currency codes.
func (n *CurrencyNormalizer) Pair() ports.CurrencyPair {
	return n.pair
}

// ValidateRate rejects zero and negative rates.
func ValidateRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return apperror.ErrInvalidExchangeRate()
	}
	return nil
}

// ParseRate parses a textual rate, e.g. the content of the rate input field.
// Unparsable text, NaN and infinities are exchange rate errors, not validation errors.
func ParseRate(s string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, apperror.ErrInvalidExchangeRate()
	}
	if err := ValidateRate(rate); err != nil {
		return decimal.Zero, err
	}
	return rate, nil
}

// ToCanonical converts amount into the canonical currency.
func (n *CurrencyNormalizer) ToCanonical(amount decimal.Decimal, isDisplayCurrency bool, rate decimal.Decimal) (decimal.Decimal, error) {
	if !isDisplayCurrency {
		return amount, nil
	}
	if err := ValidateRate(rate); err != nil {
		return decimal.Zero, err
	}
	return amount.Div(rate), nil
}

// ToDisplay converts a canonical amount into the display currency.
func (n *CurrencyNormalizer) ToDisplay(canonicalAmount decimal.Decimal, rate decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateRate(rate); err != nil {
		return decimal.Zero, err
	}
	return canonicalAmount.Mul(rate), nil
}

// IsDisplay resolves a currency code supplied by the caller. An empty code means
// canonical. When both units share a code, amounts are treated as canonical.
func (n *CurrencyNormalizer) IsDisplay(currency string) (bool, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	switch code {
	case "", n.pair.Canonical:
		return false, nil
	case n.pair.Display:
		return true, nil
	}
	return false, apperror.Validationf("unsupported currency %q: expected %s or %s", currency, n.pair.Canonical, n.pair.Display)
}

// Normalize resolves currency and converts amount into the canonical unit.
func (n *CurrencyNormalizer) Normalize(amount decimal.Decimal, currency string, rate decimal.Decimal) (decimal.Decimal, error) {
	isDisplay, err := n.IsDisplay(currency)
	if err != nil {
		return decimal.Zero, err
	}
	return n.ToCanonical(amount, isDisplay, rate)
}
