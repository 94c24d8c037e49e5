package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerSnapshot is the complete persisted state of the ledger.
type LedgerSnapshot struct {
	Wallets      []Wallet        `json:"wallets"`
	Transactions []Transaction   `json:"transactions"`
	Loans        []Loan          `json:"loans"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	SavedAt      time.Time       `json:"saved_at"`
}

// IsEmpty returns true if nothing has ever been saved.
func (s *LedgerSnapshot) IsEmpty() bool {
	return len(s.Wallets) == 0 && len(s.Transactions) == 0 && len(s.Loans) == 0
}
